package ai

import (
	"gridsnake/game"
	"gridsnake/game/types"
)

// Autopilot is a greedy heading provider. It never proposes a reversal, avoids
// cells that end the round and prefers moves that keep enough room for the body
// while closing in on the food.
type Autopilot struct{}

func NewAutopilot() *Autopilot {
	return &Autopilot{}
}

type candidate struct {
	dir   types.Direction
	room  int
	dist  int
	ahead bool
}

// GetAction picks the heading for the next tick.
func (a *Autopilot) GetAction(v game.View) types.Direction {
	state := Sense(v)
	head := v.Head()
	grid := types.Grid{Width: v.Width, Height: v.Height}
	blocked := bodyCells(v)

	var best *candidate
	for _, d := range types.Directions {
		if d == v.Heading.Opposite() || state.DangerDirs[d] {
			continue
		}
		next := head.Step(d)
		c := candidate{
			dir:   d,
			room:  reachable(grid, blocked, next, len(v.Segments)+1),
			ahead: d == v.Heading,
		}
		if state.HasFood {
			c.dist = manhattanDistance(next, *v.Food)
		}
		if best == nil || c.better(*best, len(v.Segments)) {
			cc := c
			best = &cc
		}
	}

	if best == nil {
		return v.Heading
	}
	return best.dir
}

func (c candidate) better(o candidate, length int) bool {
	roomy, oRoomy := c.room > length, o.room > length
	if roomy != oRoomy {
		return roomy
	}
	if !roomy && c.room != o.room {
		return c.room > o.room
	}
	if c.dist != o.dist {
		return c.dist < o.dist
	}
	return c.ahead && !o.ahead
}

// reachable counts free cells connected to start, stopping once limit is reached.
func reachable(grid types.Grid, blocked map[types.Position]struct{}, start types.Position, limit int) int {
	seen := map[types.Position]bool{start: true}
	queue := []types.Position{start}
	for len(queue) > 0 && len(seen) <= limit {
		p := queue[0]
		queue = queue[1:]
		for _, d := range types.Directions {
			n := p.Step(d)
			if seen[n] || !grid.InBounds(n) {
				continue
			}
			if _, ok := blocked[n]; ok {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}
	return len(seen)
}
