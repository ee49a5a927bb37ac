package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"gridsnake/game/types"

	"github.com/rs/zerolog"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "snake.toml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Expected default config to be valid, got %v", err)
	}
	if cfg.Grid() != types.DefaultGrid() {
		t.Errorf("Expected 11x11, got %+v", cfg.Grid())
	}
	if cfg.Layout() != types.DefaultLayout() {
		t.Errorf("Expected default layout, got %+v", cfg.Layout())
	}
	if cfg.TickInterval() != 150*time.Millisecond {
		t.Errorf("Expected 150ms, got %v", cfg.TickInterval())
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
tick_ms = 80
seed = 7

[arena]
width = 20
height = 15

[start]
head = [3, 10]
tail = [4, 10]
heading = "left"

[log]
level = "debug"
format = "json"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Arena.Width != 20 || cfg.Arena.Height != 15 {
		t.Errorf("Expected 20x15, got %+v", cfg.Arena)
	}
	if cfg.TickMS != 80 || cfg.Seed != 7 {
		t.Errorf("Expected tick 80 seed 7, got %d %d", cfg.TickMS, cfg.Seed)
	}
	if cfg.Start.Heading != types.Left {
		t.Errorf("Expected heading left, got %v", cfg.Start.Heading)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("Expected json log format, got %q", cfg.Log.Format)
	}
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg != Default() {
		t.Error("Expected defaults for an empty path")
	}
}

func TestLoadBadHeading(t *testing.T) {
	path := writeConfig(t, "[start]\nheading = \"north\"\n")
	if _, err := Load(path); err == nil {
		t.Error("Expected parse error")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"tiny arena", func(c *Config) { c.Arena.Width = 1 }},
		{"zero tick", func(c *Config) { c.TickMS = 0 }},
		{"head outside", func(c *Config) { c.Arena.Height = 3 }},
		{"tail not behind head", func(c *Config) { c.Start.Tail = [2]int{4, 3} }},
		{"bad heading", func(c *Config) { c.Start.Heading = types.Direction(7) }},
		{"bad format", func(c *Config) { c.Log.Format = "xml" }},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			if err := cfg.Validate(); !errors.Is(err, ErrInvalid) {
				t.Errorf("Expected ErrInvalid, got %v", err)
			}
		})
	}
}

func TestRegisterFlags(t *testing.T) {
	cfg := Default()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	cfg.RegisterFlags(fs)

	if err := fs.Parse([]string{"-speed", "40", "-autoplay", "-width", "13"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.TickMS != 40 || !cfg.Autoplay || cfg.Arena.Width != 13 {
		t.Errorf("Flags not applied: %+v", cfg)
	}
}

func TestGameOptionsSeed(t *testing.T) {
	cfg := Default()
	cfg.Seed = 99
	if opts := cfg.GameOptions(zerolog.Nop()); opts.Seed != 99 {
		t.Errorf("Expected seed 99, got %d", opts.Seed)
	}
	cfg.Seed = 0
	if opts := cfg.GameOptions(zerolog.Nop()); opts.Seed == 0 {
		t.Error("Expected a time based seed")
	}
}

func TestParseFileThenFlags(t *testing.T) {
	path := writeConfig(t, "tick_ms = 80\nseed = 3\n")

	cfg, err := Parse("snake", []string{"-config", path, "-seed", "11"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if cfg.TickMS != 80 {
		t.Errorf("Expected tick 80 from file, got %d", cfg.TickMS)
	}
	if cfg.Seed != 11 {
		t.Errorf("Expected flag seed 11 to win, got %d", cfg.Seed)
	}
}

func TestParseRejectsInvalid(t *testing.T) {
	if _, err := Parse("snake", []string{"-width", "1"}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Expected ErrInvalid, got %v", err)
	}
	if _, err := Parse("snake", []string{"-config", filepath.Join(t.TempDir(), "missing.toml")}); err == nil {
		t.Error("Expected error for a missing file")
	}
}

func TestParseExtraFlags(t *testing.T) {
	var ticks int
	cfg, err := Parse("sim", []string{"-ticks", "500", "-autoplay"}, func(fs *flag.FlagSet) {
		fs.IntVar(&ticks, "ticks", 100, "")
	})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if ticks != 500 {
		t.Errorf("Expected 500 ticks, got %d", ticks)
	}
	if !cfg.Autoplay {
		t.Error("Expected autoplay")
	}
}

func TestParseFlagFixesFileValue(t *testing.T) {
	path := writeConfig(t, "tick_ms = 0\n")

	if _, err := Load(path); !errors.Is(err, ErrInvalid) {
		t.Fatalf("Expected Load to reject tick_ms = 0, got %v", err)
	}

	cfg, err := Parse("snake", []string{"-config", path, "-speed", "100"})
	if err != nil {
		t.Fatalf("Expected -speed to override the file, got %v", err)
	}
	if cfg.TickMS != 100 {
		t.Errorf("Expected tick 100, got %d", cfg.TickMS)
	}
}
