package controllers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelguide/internal/models/response_models"
	"travelguide/internal/services"
	"travelguide/pkg/utils"
)

type HealthReport struct {
	Frontend     string                        `json:"frontend"`
	GuideService *response_models.HealthStatus `json:"guide_service"`
}

type HealthController struct {
	plannerService services.PlannerServiceInterface
	logger         *zap.Logger
}

func NewHealthController(plannerService services.PlannerServiceInterface, logger *zap.Logger) *HealthController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthController{
		plannerService: plannerService,
		logger:         logger.Named("HealthController"),
	}
}

func (hc *HealthController) Health(c *gin.Context) {
	status, err := hc.plannerService.CheckHealth(c.Request.Context())
	if err != nil {
		hc.logger.Warn("Guide service health check failed", zap.Error(err))
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, HealthReport{Frontend: "ok", GuideService: status}, "Guide service reachable")
}
