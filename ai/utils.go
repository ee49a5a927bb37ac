package ai

import "gridsnake/game/types"

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	if x > 0 {
		return 1
	} else if x < 0 {
		return -1
	}
	return 0
}

func manhattanDistance(p1, p2 types.Position) int {
	return abs(p2.X-p1.X) + abs(p2.Y-p1.Y)
}
