package main

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/petedillo/fitness-api/internal/config"
	"github.com/petedillo/fitness-api/internal/database"
)

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Применить все доступные миграции",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *database.Migrator) error {
			if err := m.Up(); err != nil {
				if errors.Is(err, database.ErrNoChange) {
					color.Yellow("Нет миграций для применения. База данных уже актуальна.")
					return nil
				}
				return err
			}
			color.Green("✓ Все миграции успешно применены")
			return nil
		})
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Откатить все примененные миграции",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *database.Migrator) error {
			if err := m.Down(); err != nil {
				if errors.Is(err, database.ErrNoChange) {
					color.Yellow("Нет миграций для отката. База данных уже в базовом состоянии.")
					return nil
				}
				return err
			}
			color.Green("✓ Миграции успешно откачены")
			return nil
		})
	},
}

var stepsCmd = &cobra.Command{
	Use:   "steps N",
	Short: "Применить (N > 0) или откатить (N < 0) N миграций",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("неверный формат числа шагов: %w", err)
		}
		if n == 0 {
			color.Yellow("Ноль миграций для применения/отката")
			return nil
		}

		return withMigrator(func(m *database.Migrator) error {
			if err := m.Steps(n); err != nil {
				if errors.Is(err, database.ErrNoChange) {
					color.Yellow("Нет миграций для применения в этом направлении.")
					return nil
				}
				return err
			}
			color.Green("✓ Применено шагов: %d", n)
			return nil
		})
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Показать текущую версию схемы",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMigrator(func(m *database.Migrator) error {
			version, dirty, err := m.Version()
			if err != nil {
				return err
			}
			if version == 0 {
				fmt.Println("Версия: нет примененных миграций")
				return nil
			}
			if dirty {
				color.Red("Версия: %d (ГРЯЗНОЕ СОСТОЯНИЕ - требуется migrate force)", version)
				return database.ErrDirtyState
			}
			fmt.Printf("Версия: %d\n", version)
			return nil
		})
	},
}

var forceCmd = &cobra.Command{
	Use:   "force VERSION",
	Short: "Принудительно выставить версию без применения миграций",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		version, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("неверный формат версии: %w", err)
		}
		return withMigrator(func(m *database.Migrator) error {
			if err := m.Force(version); err != nil {
				return err
			}
			if _, err := m.CheckDirty(); err != nil {
				return err
			}
			color.Green("✓ Версия установлена: %d", version)
			return nil
		})
	},
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Проверить подключение к базе данных",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadDatabase()
		if err != nil {
			return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
		}

		fmt.Println("Параметры подключения:")
		fmt.Printf("  Host: %s\n", cfg.Database.Host)
		fmt.Printf("  Port: %s\n", cfg.Database.Port)
		fmt.Printf("  User: %s\n", cfg.Database.User)
		fmt.Printf("  Database: %s\n", cfg.Database.DBName)
		fmt.Printf("  SSL Mode: %s\n", cfg.Database.SSLMode)

		db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
		if err != nil {
			return err
		}
		defer func() {
			if cerr := db.Close(); cerr != nil {
				color.Yellow("Ошибка закрытия подключения: %v", cerr)
			}
		}()

		ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return err
		}
		color.Green("✓ Ping прошел успешно")

		var result int
		if err := db.WithContext(ctx).Raw("SELECT 1").Scan(&result).Error; err != nil {
			return fmt.Errorf("ошибка выполнения тестового запроса: %w", err)
		}
		if result != 1 {
			return fmt.Errorf("неожиданный результат тестового запроса: %d", result)
		}
		color.Green("✓ Тестовый запрос выполнен успешно. База данных готова к работе.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(upCmd, downCmd, stepsCmd, versionCmd, forceCmd, checkCmd)
}
