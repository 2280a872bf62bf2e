package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fieldopshq/fieldops-backend/pkg/migrate"
)

func TestMigrationDirValidates(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func TestInventoryMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_inventory_items.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS inventory_items",
		"CHECK (quantity_available >= 0)",
		"deleted IN ('Yes', 'No')",
		"DROP TABLE IF EXISTS inventory_items",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestAllocationMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_allocations.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS tech_assignments",
		"CREATE TABLE IF NOT EXISTS order_reservations",
		"PRIMARY KEY (sku, technician_id)",
		"PRIMARY KEY (sku, order_id)",
		"FOREIGN KEY (sku) REFERENCES inventory_items(sku)",
		"FOREIGN KEY (order_id) REFERENCES work_orders(id)",
		"CHECK (quantity >= 0)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()

	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
