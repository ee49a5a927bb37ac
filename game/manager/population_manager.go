package manager

import (
	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// PopulationManager spawns the snake of a new round.
type PopulationManager struct {
	layout types.Layout
}

func NewPopulationManager(layout types.Layout) *PopulationManager {
	return &PopulationManager{
		layout: layout,
	}
}

// InitializePopulation replaces whatever snake the store holds with the
// starting head and body segment.
func (pm *PopulationManager) InitializePopulation(store *entity.Store) *entity.Snake {
	return store.SpawnSnake(pm.layout)
}
