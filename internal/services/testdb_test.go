package services

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/sahmapp/sahm/internal/db"
	"github.com/sahmapp/sahm/internal/models"
)

// newTestDB opens an isolated in-memory SQLite database with the full schema.
// Service-level tests run against it through the real repositories; the
// Postgres-specific paths are covered by the integration suite.
func newTestDB(t *testing.T) *db.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	gormDB, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := gormDB.DB()
	require.NoError(t, err)
	// A shared-cache memory database disappears with its last connection.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, gormDB.AutoMigrate(
		&models.Settings{},
		&models.Investor{},
		&models.Transaction{},
		&models.FinancialYear{},
		&models.Distribution{},
	))

	return &db.DB{DB: gormDB}
}
