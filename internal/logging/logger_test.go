package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeDisabled(t *testing.T) {
	ws := t.TempDir()
	if err := Initialize(ws, Options{DebugMode: false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer Close()

	Engine("should go nowhere")
	if _, err := os.Stat(filepath.Join(ws, ".dagdraft", "logs")); !os.IsNotExist(err) {
		t.Error("logs directory created despite debug mode off")
	}
}

func TestCategoryFileWritten(t *testing.T) {
	ws := t.TempDir()
	err := Initialize(ws, Options{DebugMode: true, Level: "debug"})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer Close()

	Generation("round trip done for %s", "FEITEN")

	entries, err := os.ReadDir(filepath.Join(ws, ".dagdraft", "logs"))
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	var found bool
	for _, e := range entries {
		if strings.Contains(e.Name(), "generation") {
			found = true
			data, _ := os.ReadFile(filepath.Join(ws, ".dagdraft", "logs", e.Name()))
			if !strings.Contains(string(data), "FEITEN") {
				t.Error("log line not written")
			}
		}
	}
	if !found {
		t.Error("no generation log file created")
	}
}

func TestCategoryFilter(t *testing.T) {
	ws := t.TempDir()
	err := Initialize(ws, Options{
		DebugMode:  true,
		Level:      "debug",
		Categories: map[string]bool{"store": false},
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	defer Close()

	if IsCategoryEnabled(CategoryStore) {
		t.Error("store category should be disabled")
	}
	if !IsCategoryEnabled(CategoryEngine) {
		t.Error("unlisted categories default to enabled")
	}
}
