package repositories

import (
	"context"

	"travelguide/internal/planner"
	mem "travelguide/pkg/memcache"
)

// SessionRepository keeps one TripSession per browser session. Callers always
// get copies; the only way to change a stored session is Update, which applies
// fn atomically.
type SessionRepository interface {
	Get(ctx context.Context, sessionID string) (*planner.TripSession, error)
	Update(ctx context.Context, sessionID string, fn func(s *planner.TripSession) error) (*planner.TripSession, error)
	Delete(ctx context.Context, sessionID string) error
}

type MemorySessionRepository struct {
	store *mem.TTLStore[*planner.TripSession]
}

func NewMemorySessionRepository(store *mem.TTLStore[*planner.TripSession]) *MemorySessionRepository {
	return &MemorySessionRepository{store: store}
}

func (r *MemorySessionRepository) Get(ctx context.Context, sessionID string) (*planner.TripSession, error) {
	s, ok := r.store.Get(sessionID)
	if !ok {
		return planner.NewTripSession(), nil
	}
	return s.Clone(), nil
}

func (r *MemorySessionRepository) Update(ctx context.Context, sessionID string, fn func(s *planner.TripSession) error) (*planner.TripSession, error) {
	stored, err := r.store.Update(sessionID, func(current *planner.TripSession, ok bool) (*planner.TripSession, error) {
		next := planner.NewTripSession()
		if ok {
			next = current.Clone()
		}
		if err := fn(next); err != nil {
			return nil, err
		}
		next.Normalize()
		return next, nil
	})
	if err != nil {
		return nil, err
	}
	return stored.Clone(), nil
}

func (r *MemorySessionRepository) Delete(ctx context.Context, sessionID string) error {
	r.store.Delete(sessionID)
	return nil
}

// Sweep drops expired sessions.
func (r *MemorySessionRepository) Sweep() int {
	return r.store.Sweep()
}

func (r *MemorySessionRepository) Len() int {
	return r.store.Len()
}
