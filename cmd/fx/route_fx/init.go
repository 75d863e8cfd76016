package route_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmate/internal/services"
	"tripmate/pkg/config"
)

var Module = fx.Options(
	fx.Provide(provideMatrixService),
	fx.Provide(provideRouteOptimizer),
	fx.Provide(services.NewDayRouteAdapter),
)

func provideMatrixService(cfg *config.Config, log *zap.Logger) services.DistanceMatrixService {
	haversine := services.NewHaversineMatrix()
	if cfg.Mapbox.AccessToken == "" {
		return haversine
	}
	return &services.FallbackMatrix{
		Primary:   services.NewMapboxMatrixClient(cfg.Mapbox.AccessToken, cfg.Providers.HTTPTimeout, services.NewInMemoryPairCache()),
		Secondary: haversine,
		Log:       log,
	}
}

func provideRouteOptimizer(matrix services.DistanceMatrixService) services.RouteOptimizer {
	return services.NewNearestNeighborOptimizer(matrix, services.DefaultTransportModels())
}
