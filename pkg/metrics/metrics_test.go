package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetrics(t *testing.T) {
	m := New()

	m.ObserveGeneration(OutcomeSuccess, "")
	m.ObserveGeneration(OutcomeNormalize, "MALFORMED_JSON")
	m.ObserveGeneration(OutcomeNormalize, "MALFORMED_JSON")
	m.ObserveModelCall(3 * time.Second)
	m.ObservePersistFailure()

	require.InDelta(t, 1, testutil.ToFloat64(m.generations.WithLabelValues(OutcomeSuccess, "")), 0)
	require.InDelta(t, 2, testutil.ToFloat64(m.generations.WithLabelValues(OutcomeNormalize, "MALFORMED_JSON")), 0)
	require.InDelta(t, 1, testutil.ToFloat64(m.persistFails), 0)

	w := httptest.NewRecorder()
	m.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), "tripwise_itinerary_generations_total")
	require.Contains(t, w.Body.String(), "tripwise_model_call_duration_seconds_bucket")
}
