package postgres_test

import (
	"context"
	"strings"
	"testing"

	"github.com/yaojiwei520/snack-price-api/internal/infra/postgres"
)

// TestSchemaSQL_ContainsAllTables verifies every table of the price schema
// appears in the embedded DDL served as the schema resource.
func TestSchemaSQL_ContainsAllTables(t *testing.T) {
	t.Parallel()

	ddl, err := postgres.SchemaSQL()
	if err != nil {
		t.Fatalf("SchemaSQL() error = %v; want nil", err)
	}

	for _, table := range []string{"shops", "brands", "categories", "snacks", "prices"} {
		if !strings.Contains(ddl, "CREATE TABLE "+table) {
			t.Errorf("SchemaSQL() missing CREATE TABLE %s", table)
		}
	}
}

func TestSchemaSQL_OnlyUpMigrations(t *testing.T) {
	t.Parallel()

	ddl, err := postgres.SchemaSQL()
	if err != nil {
		t.Fatalf("SchemaSQL() error = %v; want nil", err)
	}

	if strings.Contains(ddl, "DROP TABLE") {
		t.Error("SchemaSQL() contains DROP TABLE; down migrations must be excluded")
	}
}

// TestMigrate_Integration applies the schema to a real database, checks the
// recorded version, and verifies re-running is a no-op.
func TestMigrate_Integration(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)

	db, err := cfg.Connect(context.Background())
	if err != nil {
		t.Fatalf("Connect() error = %v; want nil", err)
	}
	defer db.Close()

	if err := postgres.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() error = %v; want nil", err)
	}

	version, err := postgres.MigrationVersion(db)
	if err != nil {
		t.Fatalf("MigrationVersion() error = %v; want nil", err)
	}
	if version == 0 {
		t.Error("MigrationVersion() = 0 after MigrateUp; want > 0")
	}

	// Second run must be a no-op, not an error.
	if err := postgres.MigrateUp(db); err != nil {
		t.Fatalf("MigrateUp() second run error = %v; want nil", err)
	}
}
