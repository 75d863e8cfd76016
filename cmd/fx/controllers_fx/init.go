package controllers_fx

import (
	"go.uber.org/fx"

	"tripmate/internal/api/controllers"
)

var Module = fx.Options(
	fx.Provide(controllers.NewHealthController),
	fx.Provide(controllers.NewPlacesController),
	fx.Provide(controllers.NewItineraryController))
