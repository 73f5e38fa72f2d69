package logger_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelguide/internal/config"
	"travelguide/pkg/logger"
)

var Module = fx.Provide(provideLogger)

func provideLogger(lc fx.Lifecycle, cfg config.Config) *zap.Logger {
	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// stderr sync fails on some terminals
			_ = log.Sync()
			return nil
		},
	})
	return log
}
