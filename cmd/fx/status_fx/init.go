package status_fx

import (
	"go.uber.org/fx"
	"gorm.io/gorm"

	"tripwise/internal/repositories"
	"tripwise/internal/services"
)

var Module = fx.Provide(
	provideStatusRepo, provideStatusService)

func provideStatusRepo(db *gorm.DB) repositories.StatusRepositoryInterface {
	return repositories.NewStatusRepository(db)
}

func provideStatusService(repo repositories.StatusRepositoryInterface) services.StatusServiceInterface {
	return services.NewStatusService(repo)
}
