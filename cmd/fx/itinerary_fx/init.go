package itinerary_fx

import (
	"go.uber.org/fx"

	"tripmate/internal/repositories"
	"tripmate/internal/services"
)

var Module = fx.Options(
	fx.Provide(repositories.NewItineraryRepository),
	fx.Provide(services.NewItineraryBuilder),
	fx.Provide(services.NewItineraryService),
)
