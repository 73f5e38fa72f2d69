package guide_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"travelguide/internal/config"
	"travelguide/internal/repositories"
	"travelguide/internal/services"
)

var Module = fx.Provide(
	provideGuideClient, providePlannerService)

func provideGuideClient(cfg config.Config, logger *zap.Logger) services.GuideClientInterface {
	return services.NewGuideAPIClient(cfg.GuideAPI.BaseURL, logger)
}

func providePlannerService(lc fx.Lifecycle, sessions repositories.SessionRepository, client services.GuideClientInterface, logger *zap.Logger) services.PlannerServiceInterface {
	svc := services.NewPlannerService(sessions, client, logger)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			// unfinished pages expire on their own
			if err := svc.Wait(ctx); err != nil {
				logger.Warn("Stopped with guide generations still running", zap.Error(err))
			}
			return nil
		},
	})
	return svc
}
