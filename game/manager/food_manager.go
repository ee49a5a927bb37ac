package manager

import (
	"gridsnake/game/entity"
	"gridsnake/game/types"

	"github.com/rs/zerolog"
	"golang.org/x/exp/rand"
)

// Rejected draws allowed per arena cell before falling back to enumerating the
// free cells.
const drawsPerCell = 4

type FoodManager struct {
	grid         types.Grid
	rng          *rand.Rand
	collisionMgr *CollisionManager
	logger       zerolog.Logger
}

func NewFoodManager(grid types.Grid, collisionMgr *CollisionManager, seed uint64, logger zerolog.Logger) *FoodManager {
	return &FoodManager{
		grid:         grid,
		rng:          rand.New(rand.NewSource(seed)),
		collisionMgr: collisionMgr,
		logger:       logger,
	}
}

// GenerateFood picks a uniformly random free cell. It reports false when every
// cell of the arena is occupied.
func (fm *FoodManager) GenerateFood(occupied []types.Position) (types.Position, bool) {
	taken := make(map[types.Position]struct{}, len(occupied))
	for _, p := range occupied {
		if fm.grid.InBounds(p) {
			taken[p] = struct{}{}
		}
	}

	cells := fm.grid.Cells()
	if len(taken) >= cells {
		return types.Position{}, false
	}

	for i := 0; i < cells*drawsPerCell; i++ {
		food := types.Position{
			X: fm.rng.Intn(fm.grid.Width),
			Y: fm.rng.Intn(fm.grid.Height),
		}
		if fm.collisionMgr.ValidateSpawnPosition(food, taken) {
			return food, true
		}
	}

	// Nearly full arena: pick among the remaining cells directly.
	free := make([]types.Position, 0, cells-len(taken))
	for y := 0; y < fm.grid.Height; y++ {
		for x := 0; x < fm.grid.Width; x++ {
			p := types.Position{X: x, Y: y}
			if _, ok := taken[p]; !ok {
				free = append(free, p)
			}
		}
	}
	return free[fm.rng.Intn(len(free))], true
}

// SpawnFood creates the food entity on a free cell, excluding every snake
// segment. With a full arena no food is created and false is returned.
func (fm *FoodManager) SpawnFood(store *entity.Store) (entity.Food, bool) {
	pos, ok := fm.GenerateFood(store.Occupied())
	if !ok {
		fm.logger.Info().Msg("arena full, no food this round")
		return entity.Food{}, false
	}
	food := store.SpawnFood(pos)
	fm.logger.Debug().Stringer("pos", pos).Uint64("id", uint64(food.ID)).Msg("food spawned")
	return food, true
}
