package manager

import (
	"gridsnake/game/entity"

	"github.com/rs/zerolog"
)

// Events is what one tick's detection step found. GameOver wins over Grow.
type Events struct {
	Grow     bool
	GameOver bool
	Cause    CollisionType
}

// Phase of the growth/reset controller.
type Phase int

const (
	Playing Phase = iota
	Resetting
)

func (p Phase) String() string {
	if p == Resetting {
		return "resetting"
	}
	return "playing"
}

// Outcome reports what Resolve applied.
type Outcome struct {
	Grew  bool
	Reset bool
	Cause CollisionType
}

const maxScores = 50

// GameStats holds in-memory session statistics.
type GameStats struct {
	Round        int
	Score        int
	HighScore    int
	ScoreHistory []int
}

type StateManager struct {
	phase      Phase
	popManager *PopulationManager
	foodMgr    *FoodManager
	stats      GameStats
	logger     zerolog.Logger
}

func NewStateManager(popManager *PopulationManager, foodMgr *FoodManager, logger zerolog.Logger) *StateManager {
	return &StateManager{
		phase:      Playing,
		popManager: popManager,
		foodMgr:    foodMgr,
		stats:      GameStats{Round: 1, ScoreHistory: make([]int, 0, maxScores)},
		logger:     logger,
	}
}

func (sm *StateManager) Phase() Phase {
	return sm.phase
}

// Start spawns the initial snake and food of the very first round.
func (sm *StateManager) Start(store *entity.Store) {
	sm.popManager.InitializePopulation(store)
	sm.foodMgr.SpawnFood(store)
}

// Resolve applies the tick's events to the store. A game over discards any
// growth from the same tick and rebuilds the round from scratch.
func (sm *StateManager) Resolve(store *entity.Store, ev Events) Outcome {
	if ev.GameOver {
		sm.reset(store, ev.Cause)
		return Outcome{Reset: true, Cause: ev.Cause}
	}
	if ev.Grow {
		sm.grow(store)
		return Outcome{Grew: true}
	}
	return Outcome{}
}

func (sm *StateManager) grow(store *entity.Store) {
	seg := store.GrowSnake()
	sm.UpdateScore(sm.stats.Score + 1)
	sm.logger.Debug().
		Stringer("pos", seg.Pos).
		Int("length", store.Snake().Len()).
		Msg("snake grew")
	sm.foodMgr.SpawnFood(store)
}

func (sm *StateManager) reset(store *entity.Store, cause CollisionType) {
	sm.phase = Resetting
	score := sm.stats.Score

	store.Clear()
	sm.popManager.InitializePopulation(store)
	sm.foodMgr.SpawnFood(store)

	sm.AddToHistory(score)
	sm.stats.Round++
	sm.stats.Score = 0
	sm.phase = Playing

	sm.logger.Info().
		Stringer("cause", cause).
		Int("score", score).
		Int("round", sm.stats.Round).
		Msg("round reset")
}

func (sm *StateManager) UpdateScore(score int) {
	sm.stats.Score = score
	if score > sm.stats.HighScore {
		sm.stats.HighScore = score
	}
}

func (sm *StateManager) AddToHistory(score int) {
	if len(sm.stats.ScoreHistory) >= maxScores {
		sm.stats.ScoreHistory = sm.stats.ScoreHistory[1:]
	}
	sm.stats.ScoreHistory = append(sm.stats.ScoreHistory, score)
}

// Stats returns a copy of the session statistics.
func (sm *StateManager) Stats() GameStats {
	s := sm.stats
	s.ScoreHistory = append([]int(nil), sm.stats.ScoreHistory...)
	return s
}
