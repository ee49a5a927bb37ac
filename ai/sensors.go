package ai

import (
	"gridsnake/game"
	"gridsnake/game/types"
)

// State is what the snake senses around its head.
type State struct {
	RelativeFoodDir [2]int  // sign of food offset from the head (x, y)
	FoodDistance    int     // Manhattan distance to food, 0 without food
	HasFood         bool    // false when the arena is full
	DangerDirs      [4]bool // indexed by types.Direction
}

// Sense builds the State for the snake in v.
func Sense(v game.View) State {
	head := v.Head()
	grid := types.Grid{Width: v.Width, Height: v.Height}
	blocked := bodyCells(v)

	var s State
	for _, d := range types.Directions {
		next := head.Step(d)
		_, hit := blocked[next]
		s.DangerDirs[d] = !grid.InBounds(next) || hit
	}

	if v.Food != nil {
		s.HasFood = true
		s.RelativeFoodDir = [2]int{sign(v.Food.X - head.X), sign(v.Food.Y - head.Y)}
		s.FoodDistance = manhattanDistance(head, *v.Food)
	}
	return s
}

// bodyCells returns the cells that will still be occupied after the next move.
// The tail leaves its cell unless the snake is about to grow, so it is only
// counted when the food sits right next to the head.
func bodyCells(v game.View) map[types.Position]struct{} {
	cells := make(map[types.Position]struct{}, len(v.Segments))
	last := len(v.Segments) - 1
	for i, p := range v.Segments[1:] {
		if i+1 == last && !foodAdjacent(v) {
			continue
		}
		cells[p] = struct{}{}
	}
	return cells
}

func foodAdjacent(v game.View) bool {
	return v.Food != nil && manhattanDistance(v.Head(), *v.Food) == 1
}
