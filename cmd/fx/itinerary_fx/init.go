package itinerary_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tripwise/internal/config"
	"tripwise/internal/normalizer"
	"tripwise/internal/repositories"
	"tripwise/internal/services"
	mem "tripwise/pkg/memcache"
	"tripwise/pkg/metrics"
	"tripwise/pkg/utils"
)

var Module = fx.Provide(
	provideItineraryRepo, provideItineraryService)

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepositoryInterface {
	return repositories.NewItineraryRepository(db)
}

type serviceParams struct {
	fx.In

	Config   config.Config
	Model    utils.ItineraryModelClient
	Pipeline *normalizer.Pipeline
	Repo     repositories.ItineraryRepositoryInterface
	Plans    mem.PlanStore `optional:"true"`
	Recorder metrics.Recorder
	Logger   *zap.Logger
}

func provideItineraryService(p serviceParams) services.ItineraryServiceInterface {
	return services.NewItineraryService(
		p.Model,
		p.Pipeline,
		p.Repo,
		p.Plans,
		p.Recorder,
		p.Logger,
		services.ItineraryServiceConfig{
			ModelTimeout:   p.Config.ModelTimeout,
			PersistTimeout: p.Config.PersistTimeout,
			CacheTTL:       p.Config.PlanCacheTTL,
			ListLimit:      p.Config.ItineraryListLimit,
		},
	)
}
