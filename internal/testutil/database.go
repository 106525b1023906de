// Package testutil opens throwaway sqlite databases for package tests.
package testutil

import (
	"testing"

	"musiclabel/internal/database"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// NewTestDB returns a migrated in-memory database with foreign keys enforced.
// The pool holds a single connection because every sqlite memory connection
// is its own database, so queries inside a transaction must use the tx handle.
func NewTestDB(t *testing.T) database.DB {
	t.Helper()

	gormConfig := database.GormConfig()
	gormConfig.Logger = gormLogger.Default.LogMode(gormLogger.Silent)

	sqlDB, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), gormConfig)
	require.NoError(t, err)

	raw, err := sqlDB.DB()
	require.NoError(t, err)
	raw.SetMaxOpenConns(1)

	db := database.NewFromGorm(sqlDB)
	require.NoError(t, db.MigrateModels())
	require.NoError(t, db.CreateIndexes())

	t.Cleanup(func() {
		_ = raw.Close()
	})

	return db
}
