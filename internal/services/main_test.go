package services

import (
	"testing"

	"sonar/internal/db"
	"sonar/internal/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	// one connection so every query sees the same in-memory database
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(gdb))
	db.DB = gdb
}

func mustUser(t *testing.T, username string) *models.User {
	t.Helper()
	u, err := CreateUser(username, "test_pw", username+"@example.com", "")
	require.NoError(t, err)
	return u
}

func mustPing(t *testing.T, user *models.User, text string) *models.Ping {
	t.Helper()
	p, err := CreatePing(user, text, nil)
	require.NoError(t, err)
	return p
}

func feedQueryFirst(dest *models.Ping, id uint) error {
	return db.DB.First(dest, id).Error
}

func setCreatedAt(id uint, at interface{}) error {
	return db.DB.Model(&models.Ping{}).Where("id = ?", id).UpdateColumn("created_at", at).Error
}
