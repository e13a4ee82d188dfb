package storage

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestMigrationsApplyOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.db")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	if _, err := store.SaveScore("fold", 120); err != nil {
		t.Fatalf("SaveScore() failed: %v", err)
	}
	store.Close()

	store, err = Open(path)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer store.Close()

	var applied int
	if err := store.db.QueryRow("SELECT COUNT(*) FROM " + migrationTable).Scan(&applied); err != nil {
		t.Fatalf("count migrations: %v", err)
	}
	if applied != 2 {
		t.Errorf("applied migrations = %d, expected 2", applied)
	}
	if high, _ := store.HighScore("fold"); high != 120 {
		t.Errorf("score lost across reopen, high = %d", high)
	}
}

func TestUpSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"up and down", "-- +migrate Up\nCREATE a;\n-- +migrate Down\nDROP a;\n", "CREATE a;"},
		{"up only", "-- +migrate Up\nCREATE b;\n", "CREATE b;"},
		{"no markers", "CREATE c;", "CREATE c;"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := strings.TrimSpace(upSection(tt.content)); got != tt.want {
				t.Errorf("upSection() = %q, want %q", got, tt.want)
			}
		})
	}
}
