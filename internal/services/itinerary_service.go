package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"tripwise/internal/models/db_models"
	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/normalizer"
	"tripwise/internal/repositories"
	mem "tripwise/pkg/memcache"
	"tripwise/pkg/metrics"
	"tripwise/pkg/utils"
)

type ItineraryServiceInterface interface {
	GenerateItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.Itinerary, error)
	ListItineraries(ctx context.Context) ([]response_models.Itinerary, error)
	GetItineraryByID(ctx context.Context, id string) (*response_models.Itinerary, error)
}

type ItineraryServiceConfig struct {
	ModelTimeout   time.Duration
	PersistTimeout time.Duration
	// CacheTTL of zero disables the plan cache.
	CacheTTL  time.Duration
	ListLimit int
}

type ItineraryService struct {
	model    utils.ItineraryModelClient
	pipeline *normalizer.Pipeline
	repo     repositories.ItineraryRepositoryInterface
	plans    mem.PlanStore
	metrics  metrics.Recorder
	logger   *zap.Logger
	cfg      ItineraryServiceConfig
}

func NewItineraryService(
	model utils.ItineraryModelClient,
	pipeline *normalizer.Pipeline,
	repo repositories.ItineraryRepositoryInterface,
	plans mem.PlanStore,
	recorder metrics.Recorder,
	logger *zap.Logger,
	cfg ItineraryServiceConfig,
) ItineraryServiceInterface {
	if pipeline == nil {
		pipeline = normalizer.New()
	}
	if recorder == nil {
		recorder = metrics.Nop{}
	}
	return &ItineraryService{
		model:    model,
		pipeline: pipeline,
		repo:     repo,
		plans:    plans,
		metrics:  recorder,
		logger:   logger.Named("itinerary"),
		cfg:      cfg,
	}
}

func (s *ItineraryService) GenerateItinerary(ctx context.Context, req request_models.ItineraryRequest) (*response_models.Itinerary, error) {
	if err := validateItineraryRequest(req); err != nil {
		s.metrics.ObserveGeneration(metrics.OutcomeInvalid, "")
		return nil, err
	}

	key := requestFingerprint(req)
	if cached := s.cachedItinerary(ctx, key); cached != nil {
		s.metrics.ObserveGeneration(metrics.OutcomeCached, "")
		return cached, nil
	}

	systemPrompt, userPrompt := BuildItineraryPrompts(req)
	raw, err := s.callModel(ctx, systemPrompt, userPrompt)
	if err != nil {
		s.metrics.ObserveGeneration(modelOutcome(err), "")
		s.logger.Warn("model call failed",
			zap.String("destination", req.Destination),
			zap.Error(err),
		)
		return nil, err
	}

	trip, err := s.pipeline.Normalize(raw)
	if err != nil {
		s.logNormalizeFailure(raw, err)
		return nil, fmt.Errorf("%w: %w", utils.ErrItineraryGeneration, err)
	}

	itinerary := response_models.NewItinerary(trip)
	s.persist(ctx, itinerary)
	s.cacheItinerary(ctx, key, itinerary)
	s.metrics.ObserveGeneration(metrics.OutcomeSuccess, "")

	s.logger.Info("itinerary generated",
		zap.String("itinerary_id", itinerary.ID),
		zap.String("destination", trip.Destination),
		zap.Int("days", len(trip.Days)),
	)
	return &itinerary, nil
}

func validateItineraryRequest(req request_models.ItineraryRequest) error {
	if req.NumTravelers <= 0 {
		return fmt.Errorf("%w: num_travelers must be positive", utils.ErrInvalidInput)
	}
	start, end, err := req.Dates()
	if err != nil {
		return fmt.Errorf("%w: dates must use YYYY-MM-DD", utils.ErrInvalidInput)
	}
	if end.Before(start) {
		return fmt.Errorf("%w: end_date is before start_date", utils.ErrInvalidInput)
	}
	return nil
}

// callModel runs one model call under its own deadline and classifies the failure.
func (s *ItineraryService) callModel(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	callCtx, cancel := context.WithTimeout(ctx, s.cfg.ModelTimeout)
	defer cancel()

	started := time.Now()
	raw, err := s.model.GenerateItineraryText(callCtx, systemPrompt, userPrompt)
	s.metrics.ObserveModelCall(time.Since(started))
	if err == nil {
		return raw, nil
	}

	switch {
	case errors.Is(err, utils.ErrModelTimeout), errors.Is(err, utils.ErrModelBlocked):
		return "", err
	case errors.Is(callCtx.Err(), context.DeadlineExceeded):
		return "", fmt.Errorf("%w: %w", utils.ErrModelTimeout, err)
	case errors.Is(err, utils.ErrModelUnavailable):
		return "", err
	default:
		return "", fmt.Errorf("%w: %w", utils.ErrModelUnavailable, err)
	}
}

func modelOutcome(err error) string {
	switch {
	case errors.Is(err, utils.ErrModelTimeout):
		return metrics.OutcomeTimeout
	case errors.Is(err, utils.ErrModelBlocked):
		return metrics.OutcomeBlocked
	default:
		return metrics.OutcomeModel
	}
}

func (s *ItineraryService) logNormalizeFailure(raw string, err error) {
	fields := []zap.Field{zap.Error(err)}

	var nerr *normalizer.Error
	if errors.As(err, &nerr) {
		s.metrics.ObserveGeneration(metrics.OutcomeNormalize, string(nerr.Code))
		fields = append(fields, zap.String("error_code", string(nerr.Code)))
		if nerr.Path != "" {
			fields = append(fields, zap.String("path", nerr.Path))
		}
		excerpt := nerr.Excerpt
		if excerpt == "" {
			excerpt = normalizer.Excerpt(raw)
		}
		fields = append(fields, zap.String("excerpt", excerpt))
	} else {
		s.metrics.ObserveGeneration(metrics.OutcomeNormalize, "")
		fields = append(fields, zap.String("excerpt", normalizer.Excerpt(raw)))
	}

	s.logger.Warn("could not normalize model response", fields...)
}

// persist saves the itinerary best effort. It survives request cancellation
// but is bounded by PersistTimeout; failures are only logged.
func (s *ItineraryService) persist(ctx context.Context, itinerary response_models.Itinerary) {
	record, err := toItineraryRecord(itinerary)
	if err != nil {
		s.metrics.ObservePersistFailure()
		s.logger.Error("failed to encode itinerary", zap.String("itinerary_id", itinerary.ID), zap.Error(err))
		return
	}

	persistCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PersistTimeout)
	defer cancel()

	if err := s.repo.CreateItinerary(persistCtx, record); err != nil {
		s.metrics.ObservePersistFailure()
		s.logger.Error("failed to save itinerary", zap.String("itinerary_id", itinerary.ID), zap.Error(err))
	}
}

func (s *ItineraryService) cacheEnabled() bool {
	return s.plans != nil && s.cfg.CacheTTL > 0
}

func (s *ItineraryService) cachedItinerary(ctx context.Context, key string) *response_models.Itinerary {
	if !s.cacheEnabled() {
		return nil
	}
	value, ok, err := s.plans.Get(ctx, key)
	if err != nil {
		s.logger.Warn("plan cache lookup failed", zap.Error(err))
		return nil
	}
	if !ok {
		return nil
	}

	var itinerary response_models.Itinerary
	if err := json.Unmarshal(value, &itinerary); err != nil {
		s.logger.Warn("dropping unreadable cached plan", zap.Error(err))
		return nil
	}
	s.logger.Debug("plan cache hit", zap.String("itinerary_id", itinerary.ID))
	return &itinerary
}

func (s *ItineraryService) cacheItinerary(ctx context.Context, key string, itinerary response_models.Itinerary) {
	if !s.cacheEnabled() {
		return
	}
	value, err := json.Marshal(itinerary)
	if err != nil {
		s.logger.Warn("could not encode plan for cache", zap.Error(err))
		return
	}
	if err := s.plans.Set(ctx, key, value, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("plan cache store failed", zap.Error(err))
	}
}

func requestFingerprint(req request_models.ItineraryRequest) string {
	norm := func(s string) string { return strings.ToLower(strings.TrimSpace(s)) }
	return utils.Fingerprint(
		norm(req.Destination),
		req.StartDate,
		req.EndDate,
		strconv.Itoa(req.NumTravelers),
		norm(req.TravelerType),
		norm(req.TravelStyle),
		norm(req.Budget),
		norm(req.Interests),
		norm(req.SpecialRequests),
	)
}

func (s *ItineraryService) ListItineraries(ctx context.Context) ([]response_models.Itinerary, error) {
	records, err := s.repo.ListItineraries(ctx, s.cfg.ListLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}

	itineraries := make([]response_models.Itinerary, 0, len(records))
	for _, record := range records {
		itinerary, err := fromItineraryRecord(record)
		if err != nil {
			s.logger.Warn("skipping unreadable itinerary", zap.String("itinerary_id", record.ID.String()), zap.Error(err))
			continue
		}
		itineraries = append(itineraries, itinerary)
	}
	return itineraries, nil
}

func (s *ItineraryService) GetItineraryByID(ctx context.Context, id string) (*response_models.Itinerary, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return nil, fmt.Errorf("%w: id must be a UUID", utils.ErrInvalidInput)
	}

	record, err := s.repo.GetItineraryByID(ctx, parsed)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	if record == nil {
		return nil, utils.ErrItineraryNotFound
	}

	itinerary, err := fromItineraryRecord(*record)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrDatabaseError, err)
	}
	return &itinerary, nil
}

func toItineraryRecord(itinerary response_models.Itinerary) (*db_models.Itinerary, error) {
	id, err := uuid.Parse(itinerary.ID)
	if err != nil {
		return nil, err
	}
	trip, err := json.Marshal(itinerary.Trip)
	if err != nil {
		return nil, err
	}
	return &db_models.Itinerary{
		ID:          id,
		AppName:     itinerary.AppName,
		Destination: itinerary.Trip.Destination,
		Trip:        trip,
		CreatedAt:   itinerary.CreatedAt,
	}, nil
}

func fromItineraryRecord(record db_models.Itinerary) (response_models.Itinerary, error) {
	var trip response_models.Trip
	if err := json.Unmarshal(record.Trip, &trip); err != nil {
		return response_models.Itinerary{}, err
	}
	return response_models.Itinerary{
		AppName:   record.AppName,
		ID:        record.ID.String(),
		Trip:      trip,
		CreatedAt: record.CreatedAt.UTC(),
	}, nil
}
