// Command snake-term plays the snake simulation in a terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"gridsnake/ai"
	"gridsnake/config"
	"gridsnake/game"
	"gridsnake/logging"
	"gridsnake/runner"
	"gridsnake/spectator"
	"gridsnake/stats"

	"github.com/gdamore/tcell/v2"
)

// logs would corrupt the screen on stderr
const defaultLogFile = "snake-term.log"

func main() {
	cfg, err := config.Parse("snake-term", os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake-term: %v\n", err)
		os.Exit(2)
	}
	if cfg.Log.File == "" {
		cfg.Log.File = defaultLogFile
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake-term: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	g := game.NewGame(cfg.GameOptions(logger))
	r := runner.New(g, cfg.TickInterval(), logger)

	tracker := stats.NewTracker(stats.DefaultGroupSize)
	r.Subscribe(tracker.Observe)

	snd := newSound(logger)
	defer snd.close()
	r.Subscribe(snd.onView)

	if cfg.Spectator.Addr != "" {
		hub := spectator.NewHub(logger)
		defer hub.Serve(cfg.Spectator.Addr)()
		hub.Publish(g.View())
		r.Subscribe(hub.Publish)
	}

	autopilot := cfg.Autoplay
	if autopilot {
		r.SetAutopilot(ai.NewAutopilot())
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- r.Run(ctx) }()

	eventChan := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			eventChan <- ev
		}
	}()

	last := g.View()
	drawView(screen, last, autopilot)

	for {
		select {
		case ev := <-eventChan:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC ||
					(ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q')) {
					cancel()
					<-done
					sum := tracker.Summary()
					logger.Info().
						Int("rounds", sum.Rounds).
						Int("high_score", g.GetStats().HighScore).
						Float64("avg_score", sum.AvgScore).
						Msg("session ended")
					return
				}
				if ev.Key() == tcell.KeyRune && (ev.Rune() == 'p' || ev.Rune() == 'P') {
					autopilot = !autopilot
					if autopilot {
						r.SetAutopilot(ai.NewAutopilot())
					} else {
						r.SetAutopilot(nil)
					}
					drawView(screen, last, autopilot)
					continue
				}
				if dir, ok := headingForKey(ev); ok && !autopilot {
					r.Steer(dir)
				}
			case *tcell.EventResize:
				screen.Sync()
				drawView(screen, last, autopilot)
			}

		case v := <-r.States():
			last = v
			drawView(screen, last, autopilot)

		case err := <-done:
			if err != nil {
				logger.Error().Err(err).Msg("runner failed")
			}
			return
		}
	}
}
