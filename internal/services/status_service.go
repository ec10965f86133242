package services

import (
	"context"
	"fmt"
	"strings"

	"tripwise/internal/models/db_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/repositories"
	"tripwise/pkg/utils"
)

const statusListLimit = 1000

type StatusServiceInterface interface {
	CreateStatusCheck(ctx context.Context, clientName string) (*response_models.StatusCheck, error)
	ListStatusChecks(ctx context.Context) ([]response_models.StatusCheck, error)
}

type StatusService struct {
	repo repositories.StatusRepositoryInterface
}

func NewStatusService(repo repositories.StatusRepositoryInterface) StatusServiceInterface {
	return &StatusService{repo: repo}
}

func (s *StatusService) CreateStatusCheck(ctx context.Context, clientName string) (*response_models.StatusCheck, error) {
	clientName = strings.TrimSpace(clientName)
	if clientName == "" {
		return nil, fmt.Errorf("%w: client_name is required", utils.ErrInvalidInput)
	}

	check := db_models.StatusCheck{ClientName: clientName}
	if err := s.repo.CreateStatusCheck(ctx, &check); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	resp := toStatusCheckResponse(check)
	return &resp, nil
}

func (s *StatusService) ListStatusChecks(ctx context.Context) ([]response_models.StatusCheck, error) {
	checks, err := s.repo.ListStatusChecks(ctx, statusListLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	out := make([]response_models.StatusCheck, 0, len(checks))
	for _, check := range checks {
		out = append(out, toStatusCheckResponse(check))
	}
	return out, nil
}

func toStatusCheckResponse(check db_models.StatusCheck) response_models.StatusCheck {
	return response_models.StatusCheck{
		ID:         check.ID.String(),
		ClientName: check.ClientName,
		Timestamp:  utils.FromUnixSeconds(check.CreatedAt),
	}
}
