package migrations

import "embed"

// Migrations содержит SQL файлы схемы users, exercises, workouts,
// workout_exercises и workout_logs, встроенные в бинарник.
//
//go:embed *.sql
var Migrations embed.FS
