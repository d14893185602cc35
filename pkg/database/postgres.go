package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"taskpro-backend/pkg/config"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open picks the driver from cfg.DatabaseURL: "sqlite://<dsn>" opens sqlite for
// local runs, anything else is handed to postgres.
func Open(cfg *config.Config) (*gorm.DB, error) {
	if IsSQLite(cfg.DatabaseURL) {
		log.Printf("[Database] Using sqlite at %s", strings.TrimPrefix(cfg.DatabaseURL, SQLitePrefix))
		return NewSQLiteConnection(strings.TrimPrefix(cfg.DatabaseURL, SQLitePrefix))
	}
	return NewPostgresConnection(cfg)
}

// NewPostgresConnection opens the application database and configures the pool.
func NewPostgresConnection(cfg *config.Config) (*gorm.DB, error) {
	level := logger.Warn
	if cfg.IsDevelopment() {
		level = logger.Info
	}

	gormLogger := logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  cfg.IsDevelopment(),
	})

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	log.Printf("[Database] Connected to postgres")
	return db, nil
}
