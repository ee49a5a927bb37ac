// Command snake-sim runs the simulation headless under the autopilot and logs
// a summary of the rounds it played.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"gridsnake/ai"
	"gridsnake/config"
	"gridsnake/game"
	"gridsnake/logging"
	"gridsnake/runner"
	"gridsnake/spectator"
	"gridsnake/stats"

	"github.com/rs/zerolog"
)

type summary struct {
	Session   string
	Ticks     uint64
	HighScore int
	Finished  stats.Summary
}

func main() {
	var (
		ticks    int
		realtime bool
	)
	cfg, err := config.Parse("snake-sim", os.Args[1:], func(fs *flag.FlagSet) {
		fs.IntVar(&ticks, "ticks", 10000, "Number of ticks to simulate")
		fs.BoolVar(&realtime, "realtime", false, "Tick at the configured speed instead of as fast as possible")
	})
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake-sim: %v\n", err)
		os.Exit(2)
	}

	logger, closer, err := logging.New(cfg.Log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "snake-sim: %v\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	g := game.NewGame(cfg.GameOptions(logger))
	r := runner.New(g, cfg.TickInterval(), logger)
	r.SetAutopilot(ai.NewAutopilot())

	if cfg.Spectator.Addr != "" {
		hub := spectator.NewHub(logger)
		defer hub.Serve(cfg.Spectator.Addr)()
		hub.Publish(g.View())
		r.Subscribe(hub.Publish)
	}

	var sum summary
	if realtime {
		sum = simulateRealtime(ctx, g, r, ticks)
	} else {
		sum = simulate(ctx, g, r, ticks)
	}
	logSummary(logger, sum)
}

// simulate steps the runner back to back until ticks have run or ctx ends.
func simulate(ctx context.Context, g *game.Game, r *runner.Runner, ticks int) summary {
	tracker := stats.NewTracker(stats.DefaultGroupSize)
	r.Subscribe(tracker.Observe)
	for i := 0; i < ticks && ctx.Err() == nil; i++ {
		r.Step()
	}
	return summarize(g, tracker)
}

func simulateRealtime(ctx context.Context, g *game.Game, r *runner.Runner, ticks int) summary {
	tracker := stats.NewTracker(stats.DefaultGroupSize)
	r.Subscribe(tracker.Observe)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	count := 0
	r.Subscribe(func(game.View) {
		count++
		if count >= ticks {
			cancel()
		}
	})
	_ = r.Run(ctx)
	return summarize(g, tracker)
}

func summarize(g *game.Game, tracker *stats.Tracker) summary {
	v := g.View()
	return summary{
		Session:   v.Session,
		Ticks:     v.Tick,
		HighScore: g.GetStats().HighScore,
		Finished:  tracker.Summary(),
	}
}

func logSummary(logger zerolog.Logger, s summary) {
	ev := logger.Info().
		Str("session", s.Session).
		Uint64("ticks", s.Ticks).
		Int("high_score", s.HighScore).
		Int("rounds", s.Finished.Rounds).
		Float64("avg_score", s.Finished.AvgScore).
		Float64("median_score", s.Finished.MedianScore).
		Float64("avg_ticks", s.Finished.AvgTicks)
	for cause, n := range s.Finished.Causes {
		ev = ev.Int("ended_"+cause, n)
	}
	ev.Msg("simulation finished")
}
