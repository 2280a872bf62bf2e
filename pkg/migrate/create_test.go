package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fieldopshq/fieldops-backend/pkg/migrate"
)

func TestCreateSQLMigrationSanitizesName(t *testing.T) {
	dir := t.TempDir()

	path, err := migrate.CreateSQLMigration(dir, "Add Tech Index!!")
	if err != nil {
		t.Fatalf("create migration: %v", err)
	}

	base := filepath.Base(path)
	if !strings.HasSuffix(base, "_add_tech_index.sql") {
		t.Fatalf("unexpected filename %q", base)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read migration: %v", err)
	}
	for _, sub := range []string{"+goose Up", "+goose Down", "add_tech_index"} {
		if !strings.Contains(string(data), sub) {
			t.Errorf("skeleton missing %q", sub)
		}
	}
}

func TestCreateSQLMigrationRejectsBadInput(t *testing.T) {
	dir := t.TempDir()

	if _, err := migrate.CreateSQLMigration("", "add_index"); err == nil {
		t.Fatal("expected error for empty dir")
	}
	if _, err := migrate.CreateSQLMigration(dir, ""); err == nil {
		t.Fatal("expected error for empty name")
	}
	if _, err := migrate.CreateSQLMigration(dir, "!!!"); err == nil {
		t.Fatal("expected error for name with no usable characters")
	}
}
