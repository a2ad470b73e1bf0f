package migrate

import (
	"strings"
	"testing"
)

func TestLoadMigrations(t *testing.T) {
	migrations, err := loadMigrations()
	if err != nil {
		t.Fatalf("loadMigrations() error: %v", err)
	}
	if len(migrations) == 0 {
		t.Fatal("no embedded migrations found")
	}

	last := 0
	for _, m := range migrations {
		if m.Version <= last {
			t.Fatalf("migrations out of order: %s after version %d", m.Name, last)
		}
		last = m.Version
		if strings.TrimSpace(m.UpSQL) == "" {
			t.Fatalf("migration %s is empty", m.Name)
		}
	}

	first := migrations[0]
	for _, table := range []string{"users", "ideas", "analytics"} {
		if !strings.Contains(first.UpSQL, table) {
			t.Errorf("initial migration missing %s table", table)
		}
	}
}
