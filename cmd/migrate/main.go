package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/petedillo/fitness-api/internal/config"
	"github.com/petedillo/fitness-api/internal/database"
)

var rootCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Управление схемой базы данных fitness-api",
	Long: `Утилита применяет встроенные SQL миграции fitness-api.

ПРИМЕРЫ:

  $ migrate up            # Применить все миграции
  $ migrate down          # Откатить все миграции
  $ migrate steps 2       # Применить 2 миграции
  $ migrate steps -- -1   # Откатить 1 миграцию
  $ migrate version       # Показать текущую версию
  $ migrate force 3       # Принудительно выставить версию 3
  $ migrate check         # Проверить подключение к базе данных

Параметры подключения берутся из переменных окружения DB_* и файла .env.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		color.Red("✗ %v", err)
		os.Exit(1)
	}
}

// withMigrator загружает конфигурацию, открывает мигратор и гарантирует его закрытие.
func withMigrator(fn func(m *database.Migrator) error) error {
	cfg, err := config.LoadDatabase()
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	migrator, err := database.NewMigratorFromConfig(&cfg.Database)
	if err != nil {
		return fmt.Errorf("ошибка создания мигратора: %w", err)
	}
	defer func() {
		if cerr := migrator.Close(); cerr != nil {
			color.Yellow("Ошибка закрытия мигратора: %v", cerr)
		}
	}()

	return fn(migrator)
}
