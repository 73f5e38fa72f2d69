package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"travelguide/internal/models/request_models"
	"travelguide/internal/services"
	"travelguide/internal/views"
	"travelguide/pkg/middleware"
	"travelguide/pkg/utils"
)

type GuideController struct {
	plannerService services.PlannerServiceInterface
	logger         *zap.Logger
}

func NewGuideController(plannerService services.PlannerServiceInterface, logger *zap.Logger) *GuideController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GuideController{
		plannerService: plannerService,
		logger:         logger.Named("GuideController"),
	}
}

func (gc *GuideController) ShowPage(c *gin.Context) {
	session, scroll, err := gc.plannerService.OpenPage(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		gc.logger.Error("Failed to open page", zap.String("session_id", middleware.SessionID(c)), zap.Error(err))
		utils.HandleServiceError(c, err)
		return
	}
	c.HTML(http.StatusOK, views.PageTemplate, views.BuildPage(session, scroll))
}

func (gc *GuideController) AddDestination(c *gin.Context) {
	input, ok := gc.bindForm(c)
	if !ok {
		return
	}
	err := gc.plannerService.AddDestination(c.Request.Context(), middleware.SessionID(c), input)
	gc.finish(c, err)
}

func (gc *GuideController) RemoveDestination(c *gin.Context) {
	input, ok := gc.bindForm(c)
	if !ok {
		return
	}
	index, err := strconv.Atoi(c.Query("index"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid destination index")
		return
	}
	err = gc.plannerService.RemoveDestination(c.Request.Context(), middleware.SessionID(c), input, index)
	gc.finish(c, err)
}

// Generate returns as soon as the page is loading; the loading page
// refreshes until the outcome is stored.
func (gc *GuideController) Generate(c *gin.Context) {
	input, ok := gc.bindForm(c)
	if !ok {
		return
	}
	err := gc.plannerService.Generate(c.Request.Context(), middleware.SessionID(c), input)
	gc.finish(c, err)
}

// NewSearch serves both "Plan Another Trip" and "Try Again".
func (gc *GuideController) NewSearch(c *gin.Context) {
	err := gc.plannerService.NewSearch(c.Request.Context(), middleware.SessionID(c))
	gc.finish(c, err)
}

func (gc *GuideController) bindForm(c *gin.Context) (request_models.TripFormInput, bool) {
	var input request_models.TripFormInput
	if err := c.ShouldBind(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid form data")
		return input, false
	}
	return input, true
}

// finish redirects back to the page. Rejections the page already explains
// (notice, disabled form, single slot) are not errors for the browser.
func (gc *GuideController) finish(c *gin.Context, err error) {
	switch {
	case err == nil:
	case errors.Is(err, utils.ErrNoDestinations),
		errors.Is(err, utils.ErrGenerationInFlight),
		errors.Is(err, utils.ErrLastDestination),
		errors.Is(err, utils.ErrInvalidDestinationIndex):
		gc.logger.Debug("Form action rejected",
			zap.String("path", c.Request.URL.Path),
			zap.String("session_id", middleware.SessionID(c)),
			zap.Error(err),
		)
	default:
		gc.logger.Error("Form action failed",
			zap.String("path", c.Request.URL.Path),
			zap.String("session_id", middleware.SessionID(c)),
			zap.Error(err),
		)
		utils.HandleServiceError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}
