package main

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripmate/cmd/fx/config_fx"
	"tripmate/cmd/fx/controllers_fx"
	"tripmate/cmd/fx/db_fx"
	"tripmate/cmd/fx/itinerary_fx"
	"tripmate/cmd/fx/logger_fx"
	"tripmate/cmd/fx/memcache_fx"
	"tripmate/cmd/fx/places_fx"
	"tripmate/cmd/fx/route_fx"
	"tripmate/internal/api/controllers"
	"tripmate/pkg/config"
	"tripmate/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		places_fx.Module,
		route_fx.Module,
		itinerary_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine, cfg *config.Config, log *zap.Logger) {
	srv := &http.Server{Addr: ":" + cfg.Server.Port, Handler: engine}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				log.Info("starting HTTP server", zap.String("addr", srv.Addr))
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("failed to start server", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

func ProvideRouter(
	log *zap.Logger,
	healthController *controllers.HealthController,
	placesController *controllers.PlacesController,
	itineraryController *controllers.ItineraryController) *gin.Engine {

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, healthController, placesController, itineraryController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	healthController *controllers.HealthController,
	placesController *controllers.PlacesController,
	itineraryController *controllers.ItineraryController) {

	r.GET("/health", healthController.Health)

	placesGroup := r.Group("/places")
	placesGroup.GET("/search", placesController.SearchPlaces)

	regionsGroup := r.Group("/regions")
	regionsGroup.GET("/:region/places", placesController.GetPopularPlacesByRegion)

	itineraryGroup := r.Group("/itineraries")
	itineraryGroup.POST("", itineraryController.CreateItinerary)
	itineraryGroup.GET("/:id", itineraryController.GetItineraryById)
	itineraryGroup.GET("/:id/days/:day/metrics", itineraryController.GetDayMetrics)
}
