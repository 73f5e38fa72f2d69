package controllers_fx

import (
	"go.uber.org/fx"

	"travelguide/internal/api/controllers"
	"travelguide/internal/views"
)

var Module = fx.Options(
	fx.Provide(views.NewRenderer),
	fx.Provide(controllers.NewGuideController),
	fx.Provide(controllers.NewHealthController))
