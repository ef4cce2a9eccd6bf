// Package dbtest opens throwaway SQLite databases for tests.
package dbtest

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"fsanano/go-orders/internal/config"
	"fsanano/go-orders/internal/database"
	"fsanano/go-orders/internal/metrics"
)

// New returns a migrated database in a file under t.TempDir. It is closed
// when the test ends.
func New(t testing.TB) *gorm.DB {
	t.Helper()
	return NewWithMetrics(t, nil)
}

func NewWithMetrics(t testing.TB, m *metrics.Metrics) *gorm.DB {
	t.Helper()

	cfg := config.DatabaseConfig{
		Driver:          "sqlite",
		URL:             filepath.Join(t.TempDir(), "test.sqlite"),
		MaxOpenConns:    4,
		MaxIdleConns:    4,
		ConnMaxLifetime: time.Minute,
	}

	db, err := database.Open(cfg, zerolog.Nop(), m)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return db
}
