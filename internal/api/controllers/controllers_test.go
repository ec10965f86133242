package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"tripwise/internal/models/request_models"
	"tripwise/internal/models/response_models"
	"tripwise/internal/normalizer"
	"tripwise/pkg/utils"
)

type fakeItineraryService struct {
	itinerary *response_models.Itinerary
	err       error
	got       request_models.ItineraryRequest
	calls     int
}

func (f *fakeItineraryService) GenerateItinerary(_ context.Context, req request_models.ItineraryRequest) (*response_models.Itinerary, error) {
	f.calls++
	f.got = req
	return f.itinerary, f.err
}

func (f *fakeItineraryService) ListItineraries(context.Context) ([]response_models.Itinerary, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []response_models.Itinerary{*f.itinerary}, nil
}

func (f *fakeItineraryService) GetItineraryByID(_ context.Context, id string) (*response_models.Itinerary, error) {
	if f.err != nil {
		return nil, f.err
	}
	if id != f.itinerary.ID {
		return nil, utils.ErrItineraryNotFound
	}
	return f.itinerary, nil
}

type fakeStatusService struct {
	checks []response_models.StatusCheck
}

func (f *fakeStatusService) CreateStatusCheck(_ context.Context, clientName string) (*response_models.StatusCheck, error) {
	check := response_models.StatusCheck{ID: fmt.Sprintf("check-%d", len(f.checks)+1), ClientName: clientName, Timestamp: time.Now().UTC()}
	f.checks = append(f.checks, check)
	return &check, nil
}

func (f *fakeStatusService) ListStatusChecks(context.Context) ([]response_models.StatusCheck, error) {
	return f.checks, nil
}

func sampleItinerary() *response_models.Itinerary {
	return &response_models.Itinerary{
		AppName: response_models.AppName,
		ID:      "7f1d8c1e-2b7e-4f0e-9a37-0d1a4f5b6c7d",
		Trip: response_models.Trip{
			Destination: "Paris",
			Days:        []response_models.Day{{Day: 1, Title: "Arrival"}},
		},
		CreatedAt: time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC),
	}
}

func newRouter(itineraries *fakeItineraryService, statuses *fakeStatusService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set(utils.TraceIDKey, "trace-test")
		c.Next()
	})

	ic := NewItineraryController(itineraries)
	sc := NewStatusController(statuses)
	api := r.Group("/api")
	api.GET("/", sc.Root)
	api.POST("/status", sc.CreateStatusCheck)
	api.GET("/status", sc.ListStatusChecks)
	api.POST("/generate-itinerary", ic.GenerateItinerary)
	api.GET("/itineraries", ic.ListItineraries)
	api.GET("/itineraries/:id", ic.GetItinerary)
	r.GET("/healthz", sc.Healthz)
	return r
}

func do(r http.Handler, method, path, body string) (*httptest.ResponseRecorder, map[string]any) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var decoded map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &decoded)
	return w, decoded
}

const validRequest = `{
	"destination": "Paris",
	"start_date": "2025-09-01",
	"end_date": "2025-09-03",
	"num_travelers": 2,
	"traveler_type": "couple",
	"travel_style": "relaxed",
	"budget": "1500",
	"interests": "art, food"
}`

func TestGenerateItinerary_ok(t *testing.T) {
	svc := &fakeItineraryService{itinerary: sampleItinerary()}
	r := newRouter(svc, &fakeStatusService{})

	w, body := do(r, http.MethodPost, "/api/generate-itinerary", validRequest)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "success", body["status"])
	require.Equal(t, "trace-test", body["trace_id"])
	data := body["data"].(map[string]any)
	require.Equal(t, "TripWise", data["app_name"])
	require.Equal(t, "Paris", data["trip"].(map[string]any)["destination"])
	require.Equal(t, 2, svc.got.NumTravelers)
	require.Empty(t, svc.got.SpecialRequests)
}

func TestGenerateItinerary_badRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{"destination": `},
		{"missing destination", strings.Replace(validRequest, `"destination": "Paris",`, "", 1)},
		{"zero travelers", strings.Replace(validRequest, `"num_travelers": 2`, `"num_travelers": 0`, 1)},
		{"bad date", strings.Replace(validRequest, `"2025-09-03"`, `"03/09/2025"`, 1)},
		{"travelers as text", strings.Replace(validRequest, `"num_travelers": 2`, `"num_travelers": "two"`, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeItineraryService{itinerary: sampleItinerary()}
			r := newRouter(svc, &fakeStatusService{})

			w, body := do(r, http.MethodPost, "/api/generate-itinerary", tt.body)

			require.Equal(t, http.StatusBadRequest, w.Code)
			require.Equal(t, "error", body["status"])
			require.Zero(t, svc.calls)
		})
	}
}

func TestGenerateItinerary_pipelineFailure(t *testing.T) {
	cause := &normalizer.Error{Code: normalizer.CodeMalformedJSON, Excerpt: "{\"trip\": secret model text"}
	svc := &fakeItineraryService{err: fmt.Errorf("%w: %w", utils.ErrItineraryGeneration, cause)}
	r := newRouter(svc, &fakeStatusService{})

	w, body := do(r, http.MethodPost, "/api/generate-itinerary", validRequest)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	require.Equal(t, "Could not generate itinerary", body["message"])
	require.Equal(t, "MALFORMED_JSON", body["error_code"])
	require.NotContains(t, w.Body.String(), "secret model text")
}

func TestGenerateItinerary_modelErrors(t *testing.T) {
	for err, status := range map[error]int{
		utils.ErrModelTimeout:     http.StatusGatewayTimeout,
		utils.ErrModelBlocked:     http.StatusBadGateway,
		utils.ErrModelUnavailable: http.StatusBadGateway,
		utils.ErrInvalidInput:     http.StatusBadRequest,
	} {
		svc := &fakeItineraryService{err: fmt.Errorf("wrapped: %w", err)}
		r := newRouter(svc, &fakeStatusService{})

		w, _ := do(r, http.MethodPost, "/api/generate-itinerary", validRequest)

		require.Equal(t, status, w.Code, err.Error())
	}
}

func TestItineraryReads(t *testing.T) {
	itinerary := sampleItinerary()
	r := newRouter(&fakeItineraryService{itinerary: itinerary}, &fakeStatusService{})

	w, body := do(r, http.MethodGet, "/api/itineraries", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["data"], 1)

	w, body = do(r, http.MethodGet, "/api/itineraries/"+itinerary.ID, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, itinerary.ID, body["data"].(map[string]any)["id"])

	w, _ = do(r, http.MethodGet, "/api/itineraries/00000000-0000-0000-0000-000000000000", "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestStatusEndpoints(t *testing.T) {
	r := newRouter(&fakeItineraryService{}, &fakeStatusService{})

	w, body := do(r, http.MethodGet, "/api/", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "WanderLust AI Travel Planner API", body["message"])

	w, _ = do(r, http.MethodPost, "/api/status", `{}`)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w, body = do(r, http.MethodPost, "/api/status", `{"client_name": "frontend"}`)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "frontend", body["data"].(map[string]any)["client_name"])

	w, body = do(r, http.MethodGet, "/api/status", "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, body["data"], 1)

	w, _ = do(r, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, w.Code)
}
