package database

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SQLitePrefix marks a DATABASE_URL that should be opened with sqlite.
const SQLitePrefix = "sqlite://"

// NewSQLiteConnection opens a sqlite database. The pool is pinned to one
// connection so ":memory:" databases survive across queries; callers running
// transactions must issue every statement through the transaction handle.
func NewSQLiteConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Silent,
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)
	return db, nil
}

// IsSQLite reports whether url selects the sqlite driver.
func IsSQLite(url string) bool {
	return strings.HasPrefix(url, SQLitePrefix)
}
