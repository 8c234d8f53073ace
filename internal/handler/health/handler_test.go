package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

type pingerFunc func(ctx context.Context) error

func (f pingerFunc) Ping(ctx context.Context) error { return f(ctx) }

func serve(h *Handler) (*httptest.ResponseRecorder, HealthResponse) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/health/db", h.HealthDB)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health/db", nil))
	var body HealthResponse
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestHealthDB(t *testing.T) {
	w, body := serve(NewHandler(pingerFunc(func(context.Context) error { return nil }), "memory", "development"))
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "memory", body.Storage)

	down := pingerFunc(func(context.Context) error { return errors.New("connection refused") })

	w, body = serve(NewHandler(down, "postgres", "development"))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	require.Contains(t, body.Message, "connection refused")

	_, body = serve(NewHandler(down, "postgres", "production"))
	require.NotContains(t, body.Message, "connection refused")

	w, _ = serve(NewHandler(nil, "postgres", "production"))
	require.Equal(t, http.StatusServiceUnavailable, w.Code)
}
