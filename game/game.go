package game

import (
	"sync"

	"gridsnake/game/entity"
	"gridsnake/game/manager"
	"gridsnake/game/types"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Options configure a new Game.
type Options struct {
	Grid   types.Grid
	Layout types.Layout
	Seed   uint64
	Logger zerolog.Logger
}

// DefaultOptions returns the standard 11x11 arena with the default start layout.
func DefaultOptions() Options {
	return Options{
		Grid:   types.DefaultGrid(),
		Layout: types.DefaultLayout(),
		Seed:   1,
		Logger: zerolog.Nop(),
	}
}

// View is a read-only copy of the simulation state between ticks.
type View struct {
	Session   string           `json:"session"`
	Tick      uint64           `json:"tick"`
	Round     int              `json:"round"`
	Score     int              `json:"score"`
	HighScore int              `json:"highScore"`
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Heading   types.Direction  `json:"heading"`
	Segments  []types.Position `json:"segments"`
	Food      *types.Position  `json:"food,omitempty"`
	Grew      bool             `json:"grew"`
	Reset     bool             `json:"reset"`
	Cause     string           `json:"cause,omitempty"`
}

// Head returns the head position of the view.
func (v View) Head() types.Position {
	return v.Segments[0]
}

// Renderable is one entity as a frontend draws it.
type Renderable struct {
	Kind types.Kind
	Pos  types.Position
	Size float32
}

// Game runs the per-tick pipeline over the entity store. Tick holds the write
// lock for the whole pipeline so readers never observe a half-applied reset.
type Game struct {
	UUID string
	Grid types.Grid

	mu           sync.RWMutex
	store        *entity.Store
	collisionMgr *manager.CollisionManager
	stateMgr     *manager.StateManager

	pending    types.Direction
	hasPending bool
	ticks      uint64
	outcome    manager.Outcome

	logger zerolog.Logger
}

func NewGame(opts Options) *Game {
	id := uuid.New().String()
	logger := opts.Logger.With().Str("session", id).Logger() // Tag every line with the session

	collisionMgr := manager.NewCollisionManager(opts.Grid)
	foodMgr := manager.NewFoodManager(opts.Grid, collisionMgr, opts.Seed, logger)
	stateMgr := manager.NewStateManager(manager.NewPopulationManager(opts.Layout), foodMgr, logger)

	g := &Game{
		UUID:         id,
		Grid:         opts.Grid,
		store:        entity.NewStore(),
		collisionMgr: collisionMgr,
		stateMgr:     stateMgr,
		logger:       logger,
	}
	// Spawn the starting snake and the first food
	stateMgr.Start(g.store)

	logger.Info().
		Int("width", opts.Grid.Width).
		Int("height", opts.Grid.Height).
		Uint64("seed", opts.Seed).
		Msg("game started")
	return g
}

func (g *Game) mustInit() {
	if g.store == nil {
		panic("game: used before initialization, construct with NewGame")
	}
}

// ApplyHeading records the heading for the next tick. A request for the
// opposite of the current heading is ignored and reported as false. Later
// requests before the same tick replace earlier ones.
func (g *Game) ApplyHeading(dir types.Direction) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mustInit()

	if !dir.Valid() {
		return false
	}
	if dir == g.store.Snake().Direction.Opposite() {
		return false
	}
	g.pending = dir
	g.hasPending = true
	return true
}

// Tick advances the simulation by one step: commit heading, move, check
// collisions and bounds, check eating, then apply growth or reset.
func (g *Game) Tick() View {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.mustInit()

	// Commit the heading requested since the last tick
	snake := g.store.Snake()
	if g.hasPending {
		snake.SetDirection(g.pending)
		g.hasPending = false
	}

	// Move every segment one cell, remembering the vacated tail
	snake.Advance()

	// Self, wall and food checks all see the same head position
	ev := g.collisionMgr.Detect(g.store)

	// Reset wins over growth when both happened
	g.outcome = g.stateMgr.Resolve(g.store, ev)
	g.ticks++

	return g.viewLocked()
}

// View returns the state after the most recent tick.
func (g *Game) View() View {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.mustInit()

	return g.viewLocked()
}

func (g *Game) viewLocked() View {
	snake := g.store.Snake()
	stats := g.stateMgr.Stats()

	v := View{
		Session:   g.UUID,
		Tick:      g.ticks,
		Round:     stats.Round,
		Score:     stats.Score,
		HighScore: stats.HighScore,
		Width:     g.Grid.Width,
		Height:    g.Grid.Height,
		Heading:   snake.Direction,
		Segments:  snake.Positions(),
		Grew:      g.outcome.Grew,
		Reset:     g.outcome.Reset,
	}
	if g.outcome.Reset {
		v.Cause = g.outcome.Cause.String()
	}
	if food, ok := g.store.Food(); ok {
		pos := food.Pos
		v.Food = &pos
	}
	return v
}

// Entities lists head, body segments and food with their render sizes.
func (g *Game) Entities() []Renderable {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.mustInit()

	snake := g.store.Snake()
	out := make([]Renderable, 0, snake.Len()+1)
	for i, seg := range snake.Body {
		kind := types.KindSegment
		if i == 0 {
			kind = types.KindHead
		}
		out = append(out, Renderable{Kind: kind, Pos: seg.Pos, Size: kind.Size()})
	}
	if food, ok := g.store.Food(); ok {
		out = append(out, Renderable{Kind: types.KindFood, Pos: food.Pos, Size: types.FoodSize})
	}
	return out
}

func (g *Game) GetStats() manager.GameStats {
	g.mu.RLock()
	defer g.mu.RUnlock()
	g.mustInit()

	return g.stateMgr.Stats()
}
