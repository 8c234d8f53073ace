package migrations

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMigrations_UpAndDownArePaired(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, f := range files {
		switch {
		case strings.HasSuffix(f, ".up.sql"):
			ups[strings.TrimSuffix(f, ".up.sql")] = true
		case strings.HasSuffix(f, ".down.sql"):
			downs[strings.TrimSuffix(f, ".down.sql")] = true
		default:
			t.Fatalf("unexpected migration file name: %s", f)
		}
	}
	require.Equal(t, ups, downs)
}

func TestMigrations_DeclareIntegrityConstraints(t *testing.T) {
	body, err := fs.ReadFile(Migrations, "000004_create_workout_exercises_table.up.sql")
	require.NoError(t, err)

	sql := string(body)
	require.Contains(t, sql, "idx_workout_exercises_workout_exercise_order_unique")
	require.Contains(t, sql, "ON DELETE RESTRICT")
	require.Contains(t, sql, "(workout_id, exercise_id, sort_order)")
}
