package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gridsnake/config"
)

func TestNewWritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snake.log")
	logger, closer, err := New(config.Log{Level: "info", Format: "json", File: path})
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	logger.Debug().Msg("hidden")
	logger.Info().Int("round", 2).Msg("round reset")
	if err := closer.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 1 {
		t.Fatalf("Expected 1 line, got %d: %q", len(lines), data)
	}

	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if entry["message"] != "round reset" || entry["round"] != float64(2) {
		t.Errorf("Unexpected entry %v", entry)
	}
}

func TestNewRejectsBadLevel(t *testing.T) {
	if _, _, err := New(config.Log{Level: "loud"}); err == nil {
		t.Error("Expected error for unknown level")
	}
}
