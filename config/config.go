package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"gridsnake/game"
	"gridsnake/game/types"

	"github.com/pelletier/go-toml/v2"
	"github.com/rs/zerolog"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid config")

type Arena struct {
	Width  int `toml:"width"`
	Height int `toml:"height"`
}

type Start struct {
	Head    [2]int          `toml:"head"`
	Tail    [2]int          `toml:"tail"`
	Heading types.Direction `toml:"heading"`
}

type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "console" or "json"
	File   string `toml:"file"`
}

type Spectator struct {
	Addr string `toml:"addr"`
}

type Config struct {
	Arena     Arena     `toml:"arena"`
	TickMS    int       `toml:"tick_ms"`
	Seed      uint64    `toml:"seed"`
	Autoplay  bool      `toml:"autoplay"`
	Start     Start     `toml:"start"`
	Log       Log       `toml:"log"`
	Spectator Spectator `toml:"spectator"`
}

// Default returns the reference setup: 11x11 arena, 150ms ticks, head (5,3)
// and tail (5,2) moving up.
func Default() Config {
	layout := types.DefaultLayout()
	return Config{
		Arena:  Arena{Width: types.ArenaWidth, Height: types.ArenaHeight},
		TickMS: 150,
		Start: Start{
			Head:    [2]int{layout.Head.X, layout.Head.Y},
			Tail:    [2]int{layout.Tail.X, layout.Tail.Y},
			Heading: layout.Heading,
		},
		Log: Log{Level: "info", Format: "console"},
	}
}

// Load reads a TOML file on top of the defaults and validates the result. An
// empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

// loadFile decodes path onto the defaults without validating, so flags can
// still correct the file.
func loadFile(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// RegisterFlags binds command-line overrides to cfg. Call before flag.Parse and
// validate afterwards.
func (c *Config) RegisterFlags(fs *flag.FlagSet) {
	fs.IntVar(&c.Arena.Width, "width", c.Arena.Width, "Arena width in cells")
	fs.IntVar(&c.Arena.Height, "height", c.Arena.Height, "Arena height in cells")
	fs.IntVar(&c.TickMS, "speed", c.TickMS, "Tick interval in milliseconds (lower = faster)")
	fs.Uint64Var(&c.Seed, "seed", c.Seed, "Random seed for food placement (0 = time based)")
	fs.BoolVar(&c.Autoplay, "autoplay", c.Autoplay, "Let the autopilot steer")
	fs.StringVar(&c.Log.Level, "log-level", c.Log.Level, "Log level (debug, info, warn, error)")
	fs.StringVar(&c.Log.File, "log-file", c.Log.File, "Write logs to this file instead of stderr")
	fs.StringVar(&c.Spectator.Addr, "spectate", c.Spectator.Addr, "Serve the live spectator stream on this address")
}

// Parse builds the config for a command: defaults, then the TOML file named by
// -config, then the remaining flags on top. extra registers command specific
// flags on the same flag set.
func Parse(name string, args []string, extra ...func(*flag.FlagSet)) (Config, error) {
	var path string
	pre := flag.NewFlagSet(name, flag.ContinueOnError)
	pre.SetOutput(io.Discard)
	pre.StringVar(&path, "config", "", "")
	scratch := Default()
	scratch.RegisterFlags(pre)
	for _, fn := range extra {
		fn(pre)
	}
	// errors surface in the second pass
	_ = pre.Parse(args)

	cfg, err := loadFile(path)
	if err != nil {
		return cfg, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.String("config", path, "Path to a TOML config file")
	cfg.RegisterFlags(fs)
	for _, fn := range extra {
		fn(fs)
	}
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	if c.Arena.Width < 2 || c.Arena.Height < 2 {
		return fmt.Errorf("%w: arena %dx%d is smaller than 2x2", ErrInvalid, c.Arena.Width, c.Arena.Height)
	}
	if c.TickMS <= 0 {
		return fmt.Errorf("%w: tick_ms must be positive, got %d", ErrInvalid, c.TickMS)
	}
	if !c.Start.Heading.Valid() {
		return fmt.Errorf("%w: start heading %v", ErrInvalid, c.Start.Heading)
	}

	layout := c.Layout()
	grid := c.Grid()
	if !grid.InBounds(layout.Head) || !grid.InBounds(layout.Tail) {
		return fmt.Errorf("%w: start %v/%v outside the %dx%d arena", ErrInvalid, layout.Head, layout.Tail, grid.Width, grid.Height)
	}
	if layout.Tail.Step(layout.Heading) != layout.Head {
		return fmt.Errorf("%w: tail %v must sit directly behind head %v heading %v", ErrInvalid, layout.Tail, layout.Head, layout.Heading)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("%w: log format %q", ErrInvalid, c.Log.Format)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return nil
}

func (c Config) Grid() types.Grid {
	return types.Grid{Width: c.Arena.Width, Height: c.Arena.Height}
}

func (c Config) Layout() types.Layout {
	return types.Layout{
		Head:    types.Position{X: c.Start.Head[0], Y: c.Start.Head[1]},
		Tail:    types.Position{X: c.Start.Tail[0], Y: c.Start.Tail[1]},
		Heading: c.Start.Heading,
	}
}

func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

// GameOptions converts the config into options for game.NewGame. A zero seed is
// replaced by the current time.
func (c Config) GameOptions(logger zerolog.Logger) game.Options {
	seed := c.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return game.Options{
		Grid:   c.Grid(),
		Layout: c.Layout(),
		Seed:   seed,
		Logger: logger,
	}
}
