package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"travelguide/internal/planner"
	"travelguide/pkg/utils"
)

const maxSessionUpdateAttempts = 10

// stringGetter is satisfied by both *redis.Client and *redis.Tx.
type stringGetter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// RedisSessionRepository stores sessions as JSON documents with a TTL so that
// several frontend replicas can serve the same browser.
type RedisSessionRepository struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

func NewRedisSessionRepository(client *redis.Client, keyPrefix string, ttl time.Duration) *RedisSessionRepository {
	return &RedisSessionRepository{
		client:    client,
		keyPrefix: keyPrefix,
		ttl:       ttl,
	}
}

func (r *RedisSessionRepository) key(sessionID string) string {
	return r.keyPrefix + sessionID
}

func (r *RedisSessionRepository) Get(ctx context.Context, sessionID string) (*planner.TripSession, error) {
	return r.load(ctx, r.client, r.key(sessionID))
}

// Update uses WATCH/MULTI so concurrent writers to the same session retry
// instead of overwriting each other.
func (r *RedisSessionRepository) Update(ctx context.Context, sessionID string, fn func(s *planner.TripSession) error) (*planner.TripSession, error) {
	key := r.key(sessionID)
	var result *planner.TripSession

	txf := func(tx *redis.Tx) error {
		s, err := r.load(ctx, tx, key)
		if err != nil {
			return err
		}
		if err := fn(s); err != nil {
			return err
		}
		s.Normalize()

		payload, err := json.Marshal(s)
		if err != nil {
			return fmt.Errorf("encode session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, payload, r.ttl)
			return nil
		})
		if err != nil {
			return err
		}
		result = s
		return nil
	}

	for attempt := 0; attempt < maxSessionUpdateAttempts; attempt++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return result, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return nil, err
	}
	return nil, fmt.Errorf("update session %s: too much contention: %w", sessionID, utils.ErrSessionStore)
}

func (r *RedisSessionRepository) Delete(ctx context.Context, sessionID string) error {
	if err := r.client.Del(ctx, r.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %v: %w", err, utils.ErrSessionStore)
	}
	return nil
}

func (r *RedisSessionRepository) load(ctx context.Context, c stringGetter, key string) (*planner.TripSession, error) {
	raw, err := c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return planner.NewTripSession(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %v: %w", err, utils.ErrSessionStore)
	}

	var s planner.TripSession
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("decode session: %v: %w", err, utils.ErrSessionStore)
	}
	s.Normalize()
	return &s, nil
}
