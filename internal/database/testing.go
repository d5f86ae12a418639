package database

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/yourusername/early-innings/internal/config"
)

// TestDSNEnv names the variable holding a Postgres DSN for integration tests
const TestDSNEnv = "EARLY_INNINGS_TEST_DATABASE_DSN"

// SetupTestDB connects to the integration database, skipping the test when none is configured
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	dsn := os.Getenv(TestDSNEnv)
	if dsn == "" {
		t.Skipf("%s not set, skipping archive integration test", TestDSNEnv)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	cfg := &config.Config{Archive: config.ArchiveConfig{Enabled: true, DSN: dsn, MaxConnections: 2}}
	db, err := Initialize(ctx, cfg)
	if err != nil {
		t.Fatalf("failed to create test database connection: %v", err)
	}
	return db
}

// TeardownTestDB removes archived rows and closes the pool
func TeardownTestDB(t *testing.T, db *DB) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if _, err := db.pool.Exec(ctx, "TRUNCATE prediction_sets CASCADE"); err != nil {
		t.Logf("warning: failed to truncate archive: %v", err)
	}
	db.Close()
}
