package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"travelguide/cmd/fx/config_fx"
	"travelguide/cmd/fx/controllers_fx"
	"travelguide/cmd/fx/guide_fx"
	"travelguide/cmd/fx/logger_fx"
	"travelguide/cmd/fx/session_fx"
	"travelguide/internal/api/controllers"
	"travelguide/internal/config"
	"travelguide/internal/views"
	"travelguide/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		session_fx.Module,
		guide_fx.Module,
		controllers_fx.Module,

		fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: log.Named("fx")}
		}),
		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: engine,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("Starting HTTP server",
					zap.String("addr", server.Addr),
					zap.String("guide_api", cfg.GuideAPI.BaseURL),
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("Failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("Stopping HTTP server")
			shutdownCtx, cancel := context.WithTimeout(ctx, cfg.Server.ShutdownTimeout)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func ProvideRouter(
	cfg config.Config,
	log *zap.Logger,
	renderer *views.Renderer,
	guideController *controllers.GuideController,
	healthController *controllers.HealthController) *gin.Engine {

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.SessionMiddleware(cfg.Session.CookieName, cfg.Session.TTL, cfg.Session.SecureCookie))
	r.Use(middleware.RequestLogger(log.Named("http")))
	r.SetHTMLTemplate(renderer.Templates())

	RegisterRoutes(r, guideController, healthController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	guideController *controllers.GuideController,
	healthController *controllers.HealthController) {

	r.GET("/", guideController.ShowPage)

	tripGroup := r.Group("/trip")
	tripGroup.POST("/destinations", guideController.AddDestination)
	tripGroup.POST("/destinations/remove", guideController.RemoveDestination)
	tripGroup.POST("/generate", guideController.Generate)
	tripGroup.POST("/new-search", guideController.NewSearch)

	r.GET("/health", healthController.Health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
