package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"tripwise/cmd/fx/config_fx"
	"tripwise/cmd/fx/controllers_fx"
	"tripwise/cmd/fx/db_fx"
	"tripwise/cmd/fx/itinerary_fx"
	"tripwise/cmd/fx/logger_fx"
	"tripwise/cmd/fx/memcache_fx"
	"tripwise/cmd/fx/metrics_fx"
	"tripwise/cmd/fx/prompt_fx"
	"tripwise/cmd/fx/status_fx"
	"tripwise/internal/api/controllers"
	"tripwise/internal/config"
	"tripwise/pkg/metrics"
	"tripwise/pkg/middleware"
)

func main() {
	app := fx.New(
		config_fx.Module,
		logger_fx.Module,
		db_fx.Module,
		memcache_fx.Module,
		metrics_fx.Module,
		prompt_fx.Module,
		itinerary_fx.Module,
		status_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, cfg config.Config, engine *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			log.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal("http server stopped", zap.Error(err))
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
	cfg config.Config,
	log *zap.Logger,
	m *metrics.Metrics,
	itineraryController *controllers.ItineraryController,
	statusController *controllers.StatusController) *gin.Engine {

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORSMiddleware(cfg.CORSOrigins))

	RegisterRoutes(r, m, itineraryController, statusController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	m *metrics.Metrics,
	itineraryController *controllers.ItineraryController,
	statusController *controllers.StatusController) {

	r.GET("/healthz", statusController.Healthz)
	r.GET("/metrics", gin.WrapH(m.Handler()))

	api := r.Group("/api")
	api.GET("/", statusController.Root)
	api.POST("/status", statusController.CreateStatusCheck)
	api.GET("/status", statusController.ListStatusChecks)

	api.POST("/generate-itinerary", itineraryController.GenerateItinerary)
	api.GET("/itineraries", itineraryController.ListItineraries)
	api.GET("/itineraries/:id", itineraryController.GetItinerary)
}
