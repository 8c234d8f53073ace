package observability

import (
	"net/http"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestObserveHTTP(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/v1/workouts/:id", "200"))

	ObserveHTTP(http.MethodGet, "/api/v1/workouts/:id", http.StatusOK, 15*time.Millisecond)

	after := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "/api/v1/workouts/:id", "200"))
	require.Equal(t, before+1, after)
}

func TestObserveHTTP_UnmatchedRoute(t *testing.T) {
	before := testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404"))
	ObserveHTTP(http.MethodGet, "", http.StatusNotFound, time.Millisecond)
	require.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues(http.MethodGet, "unmatched", "404")))
}

func TestIntegrityCounters(t *testing.T) {
	before := testutil.ToFloat64(cascadeDeletes.WithLabelValues("workout"))
	RecordCascadeDelete("workout")
	require.Equal(t, before+1, testutil.ToFloat64(cascadeDeletes.WithLabelValues("workout")))

	blockedBefore := testutil.ToFloat64(blockedDeletes)
	RecordBlockedExerciseDelete()
	require.Equal(t, blockedBefore+1, testutil.ToFloat64(blockedDeletes))
}
