package response

import (
	"bytes"
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/petedillo/fitness-api/internal/apperror"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func render(err error) (*httptest.ResponseRecorder, map[string]ErrorBody) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)
	FromError(c, "test", err)

	var body map[string]ErrorBody
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestFromError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", apperror.Validation("bad"), http.StatusBadRequest, "validation_error"},
		{"not found", apperror.NotFound(apperror.EntityWorkout), http.StatusNotFound, "workout_not_found"},
		{"conflict", apperror.Conflict("exercise_in_use", "in use"), http.StatusConflict, "exercise_in_use"},
		{"plain error", errors.New("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := render(tt.err)
			require.Equal(t, tt.status, w.Code)
			require.Equal(t, tt.code, body["error"].Code)
		})
	}
}

func TestFromError_HidesInternalDetails(t *testing.T) {
	_, body := render(apperror.Internal(errors.New("pq: password authentication failed")))
	require.NotContains(t, body["error"].Message, "password")
	require.Nil(t, body["error"].Details)
}

func TestFromError_KeepsDetails(t *testing.T) {
	err := apperror.NotFound(apperror.EntityExercise).
		WithDetails(map[string]interface{}{"missingExerciseIds": []int64{7}})

	w, _ := render(err)
	require.JSONEq(t,
		`{"error":{"code":"exercise_not_found","message":"exercise not found","details":{"missingExerciseIds":[7]}}}`,
		w.Body.String())
}

func TestFromError_LogsOnlyInternal(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	t.Cleanup(func() { log.SetOutput(os.Stderr) })

	render(apperror.Validation("bad"))
	render(apperror.NotFound(apperror.EntityWorkout))
	render(apperror.Conflict("exercise_in_use", "in use"))
	require.Empty(t, buf.String())

	render(apperror.Internal(errors.New("connection reset")))
	require.Contains(t, buf.String(), "internal error in test")
	require.Equal(t, 1, strings.Count(buf.String(), "connection reset"))
}
