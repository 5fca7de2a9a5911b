package catalog_test

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"os"
	"strconv"
	"testing"

	"github.com/yaojiwei520/snack-price-api/internal/domain/catalog"
	"github.com/yaojiwei520/snack-price-api/internal/infra/postgres"
)

// failConnector refuses every connection attempt.
type failConnector struct{}

func (failConnector) Connect(context.Context) (*sql.DB, error) {
	return nil, errors.New("connection refused")
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testConfig returns connection settings for the integration database, or
// skips the test when SNACKDB_TEST_HOST is not set.
func testConfig(t *testing.T) postgres.Config {
	t.Helper()

	host := os.Getenv("SNACKDB_TEST_HOST")
	if host == "" {
		t.Skip("SNACKDB_TEST_HOST not set; skipping database test")
	}

	cfg := postgres.DefaultConfig()
	cfg.Host = host
	if v := os.Getenv("SNACKDB_TEST_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			t.Fatalf("SNACKDB_TEST_PORT = %q: %v", v, err)
		}
		cfg.Port = port
	}
	if v := os.Getenv("SNACKDB_TEST_USER"); v != "" {
		cfg.User = v
	}
	cfg.Password = os.Getenv("SNACKDB_TEST_PASSWORD")
	if v := os.Getenv("SNACKDB_TEST_NAME"); v != "" {
		cfg.Name = v
	}
	return cfg
}

// testService returns a Service backed by the SNACKDB_TEST_* database with
// a migrated, emptied schema. Tests using it must not run in parallel: they
// share one database and reset it here.
func testService(t *testing.T) *catalog.Service {
	t.Helper()

	cfg := testConfig(t)

	db, err := cfg.Connect(context.Background())
	if err != nil {
		t.Fatalf("Connect() error = %v; want nil", err)
	}
	defer db.Close()

	if err := postgres.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v; want nil", err)
	}
	if _, err := db.Exec("TRUNCATE prices, snacks, brands, categories, shops RESTART IDENTITY CASCADE"); err != nil {
		t.Fatalf("reset tables: %v", err)
	}

	return catalog.NewService(cfg, quietLogger())
}

func strPtr(s string) *string { return &s }
