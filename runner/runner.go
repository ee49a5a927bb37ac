package runner

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"gridsnake/game"
	"gridsnake/game/types"

	"github.com/rs/zerolog"
)

// ErrRunning is returned by Run when the runner is already ticking.
var ErrRunning = errors.New("runner already running")

// Steerer chooses a heading from the current view, e.g. ai.Autopilot.
type Steerer interface {
	GetAction(v game.View) types.Direction
}

// Runner is the fixed-step scheduler around a Game: it ticks once per interval
// on its own goroutine and hands every resulting view to the subscribers.
type Runner struct {
	game     *game.Game
	interval time.Duration
	logger   zerolog.Logger

	mutex       sync.RWMutex
	pilot       Steerer
	subscribers []func(game.View)
	isRunning   bool

	stateChan chan game.View
}

func New(g *game.Game, interval time.Duration, logger zerolog.Logger) *Runner {
	return &Runner{
		game:      g,
		interval:  interval,
		logger:    logger,
		stateChan: make(chan game.View, 1),
	}
}

// SetAutopilot makes p steer before every tick; nil hands control back to Steer.
func (r *Runner) SetAutopilot(p Steerer) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.pilot = p
}

// Subscribe registers fn to be called with every view, on the runner goroutine.
func (r *Runner) Subscribe(fn func(game.View)) {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	r.subscribers = append(r.subscribers, fn)
}

// States delivers the most recent view. Slow readers only miss intermediate views.
func (r *Runner) States() <-chan game.View {
	return r.stateChan
}

// Steer forwards a heading request to the game. Safe from any goroutine.
func (r *Runner) Steer(dir types.Direction) bool {
	return r.game.ApplyHeading(dir)
}

// Step runs one tick and publishes the result.
func (r *Runner) Step() game.View {
	r.mutex.RLock()
	pilot := r.pilot
	subs := slices.Clone(r.subscribers)
	r.mutex.RUnlock()

	if pilot != nil {
		r.game.ApplyHeading(pilot.GetAction(r.game.View()))
	}

	v := r.game.Tick()
	if v.Reset {
		r.logger.Debug().Uint64("tick", v.Tick).Str("cause", v.Cause).Msg("reset published")
	}

	for _, fn := range subs {
		fn(v)
	}
	r.publish(v)
	return v
}

func (r *Runner) publish(v game.View) {
	select {
	case r.stateChan <- v:
	default:
		// drop the stale view so the channel always holds the newest one
		select {
		case <-r.stateChan:
		default:
		}
		select {
		case r.stateChan <- v:
		default:
		}
	}
}

// Run ticks until ctx is cancelled.
func (r *Runner) Run(ctx context.Context) error {
	r.mutex.Lock()
	if r.isRunning {
		r.mutex.Unlock()
		return ErrRunning
	}
	r.isRunning = true
	r.mutex.Unlock()

	defer func() {
		r.mutex.Lock()
		r.isRunning = false
		r.mutex.Unlock()
	}()

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Info().Dur("interval", r.interval).Msg("runner started")
	for {
		select {
		case <-ctx.Done():
			r.logger.Info().Msg("runner stopped")
			return nil
		case <-ticker.C:
			r.Step()
		}
	}
}
