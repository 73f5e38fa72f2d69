package session_fx

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelguide/internal/config"
	"travelguide/internal/planner"
	"travelguide/internal/repositories"
	mem "travelguide/pkg/memcache"
)

var Module = fx.Provide(provideSessionRepository)

func provideSessionRepository(lc fx.Lifecycle, cfg config.Config, logger *zap.Logger) (repositories.SessionRepository, error) {
	log := logger.Named("Sessions")

	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		client := redis.NewClient(&redis.Options{
			Addr:         cfg.Redis.Address,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
		})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				if err := client.Ping(ctx).Err(); err != nil {
					return fmt.Errorf("redis ping failed: %w", err)
				}
				log.Info("Using redis session store", zap.String("addr", cfg.Redis.Address))
				return nil
			},
			OnStop: func(ctx context.Context) error {
				return client.Close()
			},
		})
		return repositories.NewRedisSessionRepository(client, cfg.Redis.KeyPrefix, cfg.Session.TTL), nil

	default:
		repo := repositories.NewMemorySessionRepository(mem.NewTTLStore[*planner.TripSession](cfg.Session.TTL))
		stop := make(chan struct{})
		done := make(chan struct{})
		lc.Append(fx.Hook{
			OnStart: func(ctx context.Context) error {
				log.Info("Using in-memory session store", zap.Duration("ttl", cfg.Session.TTL))
				go sweepLoop(repo, cfg.Session.SweepInterval, log, stop, done)
				return nil
			},
			OnStop: func(ctx context.Context) error {
				close(stop)
				select {
				case <-done:
				case <-ctx.Done():
				}
				return nil
			},
		})
		return repo, nil
	}
}

func sweepLoop(repo *repositories.MemorySessionRepository, interval time.Duration, log *zap.Logger, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if n := repo.Sweep(); n > 0 {
				log.Debug("Expired sessions removed", zap.Int("count", n), zap.Int("remaining", repo.Len()))
			}
		}
	}
}
