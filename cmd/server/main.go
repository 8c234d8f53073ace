package main

//go:generate swag init -g cmd/server/main.go -d ../../ -o ../../internal/docs --parseInternal

import (
	"log"

	"github.com/petedillo/fitness-api/internal/config"
	"github.com/petedillo/fitness-api/internal/database"
	repo "github.com/petedillo/fitness-api/internal/repository/interfaces"
	"github.com/petedillo/fitness-api/internal/repository/memory"
	"github.com/petedillo/fitness-api/internal/repository/postgres"
	"github.com/petedillo/fitness-api/internal/server"
)

// @title           Fitness API
// @version         1.0
// @description     REST API для учета упражнений, тренировок и журнала подходов.
// @BasePath        /api/v1
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
func main() {
	log.Println("Fitness API Server Starting...")

	// Загружаем конфигурацию
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	log.Printf("Конфигурация загружена успешно")
	log.Printf("Сервер будет запущен на %s", cfg.Server.Address())

	var store repo.Store
	switch cfg.Storage.Driver {
	case config.StorageDriverMemory:
		log.Println("Хранилище: in-memory (данные не сохраняются между запусками)")
		store = memory.NewStore()
	default:
		log.Printf("База данных: %s@%s:%s/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

		if cfg.Storage.AutoMigrate {
			if err := database.MigrateUp(cfg.Database.DSN()); err != nil {
				log.Fatalf("Ошибка применения миграций: %v", err)
			}
		}

		db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
		if err != nil {
			log.Fatalf("Ошибка подключения к базе данных: %v", err)
		}
		defer func() {
			if err := db.Close(); err != nil {
				log.Printf("Ошибка закрытия подключения к базе данных: %v", err)
			}
		}()
		store = postgres.NewStore(db.DB)
	}

	srv := server.NewServer(cfg, store)
	if err := srv.Start(); err != nil {
		log.Printf("Сервер остановлен с ошибкой: %v", err)
	}
}
