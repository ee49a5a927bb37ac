package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	"gridsnake/ai"
	"gridsnake/config"
	"gridsnake/game"
	"gridsnake/game/types"
	"gridsnake/logging"
	"gridsnake/spectator"
	"gridsnake/stats"
	"gridsnake/ui"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var headingKeys = []struct {
	keys []int32
	dir  types.Direction
}{
	{[]int32{rl.KeyLeft, rl.KeyA}, types.Left},
	{[]int32{rl.KeyUp, rl.KeyW}, types.Up},
	{[]int32{rl.KeyRight, rl.KeyD}, types.Right},
	{[]int32{rl.KeyDown, rl.KeyS}, types.Down},
}

func main() {
	cfg, err := config.Parse("snake", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(2)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	g := game.NewGame(cfg.GameOptions(logger))

	var hub *spectator.Hub
	if cfg.Spectator.Addr != "" {
		hub = spectator.NewHub(logger)
		defer hub.Serve(cfg.Spectator.Addr)()
		hub.Publish(g.View())
	}

	var pilot *ai.Autopilot
	if cfg.Autoplay {
		pilot = ai.NewAutopilot()
	}

	rl.InitWindow(800, 550, "Snake")
	rl.SetWindowState(rl.FlagWindowResizable)
	defer rl.CloseWindow()

	rl.SetTargetFPS(60)

	tracker := stats.NewTracker(stats.DefaultGroupSize)
	renderer := ui.NewRenderer()
	lastUpdate := time.Now()
	updateInterval := cfg.TickInterval()

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			break
		}
		if rl.IsKeyPressed(rl.KeyP) {
			if pilot == nil {
				pilot = ai.NewAutopilot()
			} else {
				pilot = nil
			}
		}

		if rl.IsWindowResized() {
			renderer.UpdateDimensions()
		}

		if pilot == nil {
			for _, hk := range headingKeys {
				for _, k := range hk.keys {
					if rl.IsKeyDown(k) {
						g.ApplyHeading(hk.dir)
					}
				}
			}
		}

		// Update game state at fixed interval
		if time.Since(lastUpdate) >= updateInterval {
			if pilot != nil {
				g.ApplyHeading(pilot.GetAction(g.View()))
			}
			v := g.Tick()
			tracker.Observe(v)
			if hub != nil {
				hub.Publish(v)
			}
			lastUpdate = time.Now()
		}

		renderer.Draw(g)
	}

	sum := tracker.Summary()
	logger.Info().
		Int("rounds", sum.Rounds).
		Int("high_score", g.GetStats().HighScore).
		Float64("avg_score", sum.AvgScore).
		Msg("session ended")
}
