// Package modelstest provides database helpers for tests.
package modelstest

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/huangang/boardmaster/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB returns a migrated, private in-memory SQLite database that is
// closed when the test ends.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := models.Open(sqlite.Open(dsn), logger.Silent)
	if err != nil {
		t.Fatalf("open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// One connection keeps the shared in-memory database alive and avoids
	// SQLITE_LOCKED between pooled connections.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.Migrate(db); err != nil {
		t.Fatalf("migrate test database: %v", err)
	}
	return db
}
