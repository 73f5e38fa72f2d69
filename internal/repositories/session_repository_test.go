package repositories

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelguide/internal/models/response_models"
	"travelguide/internal/planner"
	mem "travelguide/pkg/memcache"
)

func newMemoryRepo() *MemorySessionRepository {
	return NewMemorySessionRepository(mem.NewTTLStore[*planner.TripSession](time.Hour))
}

func newRedisRepo(t *testing.T) (*RedisSessionRepository, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisSessionRepository(client, "test:session:", 30*time.Minute), mr
}

// repoContract runs the behaviour both stores must share.
func repoContract(t *testing.T, repo SessionRepository) {
	ctx := context.Background()

	t.Run("missing session is fresh", func(t *testing.T) {
		s, err := repo.Get(ctx, "unknown")
		require.NoError(t, err)
		assert.Equal(t, []string{""}, s.Form.Destinations)
		assert.Equal(t, planner.StateIdle, s.Page.State())
	})

	t.Run("update persists", func(t *testing.T) {
		_, err := repo.Update(ctx, "s1", func(s *planner.TripSession) error {
			s.Form.Destinations = []string{"Paris", "Lyon"}
			s.Page.Succeed(&response_models.TravelGuide{
				Destinations: []response_models.LocationDetail{{Name: "Paris"}},
				TotalDays:    3,
			})
			return nil
		})
		require.NoError(t, err)

		s, err := repo.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Paris", "Lyon"}, s.Form.Destinations)
		require.NotNil(t, s.Page.Guide)
		assert.Equal(t, 3, s.Page.Guide.TotalDays)
		assert.Equal(t, planner.StateSuccess, s.Page.State())
	})

	t.Run("failed update is not stored", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := repo.Update(ctx, "s1", func(s *planner.TripSession) error {
			s.Form.Destinations = []string{"lost"}
			return boom
		})
		assert.ErrorIs(t, err, boom)

		s, err := repo.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, []string{"Paris", "Lyon"}, s.Form.Destinations)
	})

	t.Run("returned copies are detached", func(t *testing.T) {
		s, err := repo.Get(ctx, "s1")
		require.NoError(t, err)
		s.Form.Destinations[0] = "mutated"

		again, err := repo.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Paris", again.Form.Destinations[0])
	})

	t.Run("concurrent updates serialise", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Update(ctx, "counter", func(s *planner.TripSession) error {
					s.Form.AddDestination()
					return nil
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()

		s, err := repo.Get(ctx, "counter")
		require.NoError(t, err)
		assert.Len(t, s.Form.Destinations, 5)
	})

	t.Run("delete resets", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "s1"))
		s, err := repo.Get(ctx, "s1")
		require.NoError(t, err)
		assert.Nil(t, s.Page.Guide)
	})
}

func TestMemorySessionRepository(t *testing.T) {
	repoContract(t, newMemoryRepo())
}

func TestRedisSessionRepository(t *testing.T) {
	repo, _ := newRedisRepo(t)
	repoContract(t, repo)
}

func TestRedisSessionRepository_SetsTTL(t *testing.T) {
	repo, mr := newRedisRepo(t)

	_, err := repo.Update(context.Background(), "ttl", func(s *planner.TripSession) error {
		s.Form.SetDays("4")
		return nil
	})
	require.NoError(t, err)

	assert.True(t, mr.Exists("test:session:ttl"))
	assert.Equal(t, 30*time.Minute, mr.TTL("test:session:ttl"))

	mr.FastForward(31 * time.Minute)
	s, err := repo.Get(context.Background(), "ttl")
	require.NoError(t, err)
	assert.Empty(t, s.Form.Days)
}

func TestRedisSessionRepository_CorruptRecord(t *testing.T) {
	repo, mr := newRedisRepo(t)
	require.NoError(t, mr.Set("test:session:bad", "{not json"))

	_, err := repo.Get(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode session")
}

func TestMemorySessionRepository_Sweep(t *testing.T) {
	store := mem.NewTTLStore[*planner.TripSession](time.Nanosecond)
	repo := NewMemorySessionRepository(store)
	_, err := repo.Update(context.Background(), "a", func(*planner.TripSession) error { return nil })
	require.NoError(t, err)

	assert.Equal(t, 1, repo.Len())

	time.Sleep(time.Millisecond)
	assert.Equal(t, 1, repo.Sweep())
	assert.Equal(t, 0, repo.Len())
}
