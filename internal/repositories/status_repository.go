package repositories

import (
	"context"

	"gorm.io/gorm"

	"tripwise/internal/models/db_models"
)

type StatusRepositoryInterface interface {
	CreateStatusCheck(ctx context.Context, check *db_models.StatusCheck) error
	ListStatusChecks(ctx context.Context, limit int) ([]db_models.StatusCheck, error)
}

func NewStatusRepository(db *gorm.DB) StatusRepositoryInterface {
	return &StatusRepository{db: db}
}

type StatusRepository struct {
	db *gorm.DB
}

func (r *StatusRepository) CreateStatusCheck(ctx context.Context, check *db_models.StatusCheck) error {
	return r.db.WithContext(ctx).Create(check).Error
}

func (r *StatusRepository) ListStatusChecks(ctx context.Context, limit int) ([]db_models.StatusCheck, error) {
	var checks []db_models.StatusCheck
	if err := r.db.WithContext(ctx).Order("created_at DESC").Limit(limit).Find(&checks).Error; err != nil {
		return nil, err
	}
	return checks, nil
}
