package database

import (
	"testing"

	"taskpro-backend/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type widget struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"uniqueIndex"`
}

func TestOpen_SQLite(t *testing.T) {
	db, err := Open(&config.Config{DatabaseURL: "sqlite://:memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&widget{}))

	require.NoError(t, db.Create(&widget{ID: "1", Name: "a"}).Error)
	err = db.Create(&widget{ID: "2", Name: "a"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestIsSQLite(t *testing.T) {
	assert.True(t, IsSQLite("sqlite://taskpro.db"))
	assert.False(t, IsSQLite("postgres://localhost/taskpro"))
}
