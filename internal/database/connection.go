package database

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/petedillo/fitness-api/internal/config"
)

// Значения пула соединений по умолчанию
const (
	defaultMaxOpenConns    = 25
	defaultMaxIdleConns    = 5
	defaultConnMaxLifetime = 5 * time.Minute
	defaultConnMaxIdleTime = 10 * time.Minute
)

// DB оборачивает подключение GORM к PostgreSQL.
type DB struct {
	*gorm.DB
}

// NewConnection открывает подключение по конфигурации и настраивает пул.
//
//	db, err := database.NewConnection(&cfg.Database, cfg.AppEnv)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
func NewConnection(cfg *config.DatabaseConfig, appEnv string) (*DB, error) {
	if cfg == nil {
		return nil, fmt.Errorf("конфигурация базы данных не может быть nil")
	}
	return open(cfg.DSN(), poolSettings{
		maxOpenConns:    cfg.MaxOpenConns,
		maxIdleConns:    cfg.MaxIdleConns,
		connMaxLifetime: cfg.ConnMaxLifetime,
		connMaxIdleTime: cfg.ConnMaxIdleTime,
	}, appEnv)
}

// NewConnectionFromDSN открывает подключение по готовой строке DSN
// с настройками пула по умолчанию. Используется в интеграционных тестах.
func NewConnectionFromDSN(dsn, appEnv string) (*DB, error) {
	return open(dsn, poolSettings{}, appEnv)
}

type poolSettings struct {
	maxOpenConns    int
	maxIdleConns    int
	connMaxLifetime time.Duration
	connMaxIdleTime time.Duration
}

func (p poolSettings) withDefaults() poolSettings {
	if p.maxOpenConns == 0 {
		p.maxOpenConns = defaultMaxOpenConns
	}
	if p.maxIdleConns == 0 {
		p.maxIdleConns = defaultMaxIdleConns
	}
	if p.connMaxLifetime == 0 {
		p.connMaxLifetime = defaultConnMaxLifetime
	}
	if p.connMaxIdleTime == 0 {
		p.connMaxIdleTime = defaultConnMaxIdleTime
	}
	return p
}

func open(dsn string, pool poolSettings, appEnv string) (*DB, error) {
	log.Println("Инициализация подключения к базе данных...")

	// В development логируем все SQL-запросы
	gormLogger := logger.Default.LogMode(logger.Warn)
	if strings.ToLower(appEnv) == "development" {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormLogger,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к базе данных: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("ошибка получения sql.DB: %w", err)
	}

	pool = pool.withDefaults()
	sqlDB.SetMaxOpenConns(pool.maxOpenConns)
	sqlDB.SetMaxIdleConns(pool.maxIdleConns)
	sqlDB.SetConnMaxLifetime(pool.connMaxLifetime)
	sqlDB.SetConnMaxIdleTime(pool.connMaxIdleTime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("ошибка проверки подключения к базе данных: %w", err)
	}

	log.Println("Подключение к базе данных установлено успешно")
	return &DB{DB: db}, nil
}

// Close закрывает подключение к базе данных.
func (db *DB) Close() error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB для закрытия: %w", err)
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("ошибка закрытия подключения к базе данных: %w", err)
	}
	log.Println("Подключение к базе данных закрыто")
	return nil
}

// Ping проверяет доступность базы данных с учетом контекста.
func (db *DB) Ping(ctx context.Context) error {
	sqlDB, err := db.DB.DB()
	if err != nil {
		return fmt.Errorf("ошибка получения sql.DB: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ошибка ping базы данных: %w", err)
	}
	return nil
}
