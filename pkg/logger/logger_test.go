package logger

import (
	"bytes"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStdLogger_FieldsAreSorted(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0))

	l.Info("workout created", map[string]any{"workout_id": 7, "exercises": 3})

	require.Equal(t, "INFO: workout created exercises=3 workout_id=7\n", buf.String())
}

func TestStdLogger_NoFields(t *testing.T) {
	var buf bytes.Buffer
	l := New(log.New(&buf, "", 0))

	l.Error("boom", nil)

	require.Equal(t, "ERROR: boom\n", buf.String())
}
