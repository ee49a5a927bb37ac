package manager

import (
	"gridsnake/game/entity"
	"gridsnake/game/types"
)

// CollisionType represents the type of collision
type CollisionType int

const (
	NoCollision CollisionType = iota
	WallCollision
	SelfCollision
)

func (c CollisionType) String() string {
	switch c {
	case WallCollision:
		return "wall"
	case SelfCollision:
		return "self"
	default:
		return "none"
	}
}

type CollisionManager struct {
	grid types.Grid
}

func NewCollisionManager(grid types.Grid) *CollisionManager {
	return &CollisionManager{
		grid: grid,
	}
}

// CheckCollision inspects the snake after it moved. The head overlapping any other
// segment and the head leaving the arena both end the round; only one cause is
// reported.
func (cm *CollisionManager) CheckCollision(snake *entity.Snake) CollisionType {
	head := snake.GetHead().Pos

	if cm.isSelfCollision(head, snake) {
		return SelfCollision
	}
	if cm.isWallCollision(head) {
		return WallCollision
	}
	return NoCollision
}

// isWallCollision checks if a position collides with walls
func (cm *CollisionManager) isWallCollision(pos types.Position) bool {
	return !cm.grid.InBounds(pos)
}

func (cm *CollisionManager) isSelfCollision(head types.Position, snake *entity.Snake) bool {
	for _, seg := range snake.Body[1:] {
		if seg.Pos == head {
			return true
		}
	}
	return false
}

// IsFoodCollision checks if a position collides with food
func (cm *CollisionManager) IsFoodCollision(pos types.Position, food types.Position) bool {
	return pos == food
}

// Detect runs the collision and eating checks against the same post-move head
// and reports what the controller has to resolve. A game over despawns nothing
// here; eaten food is removed from the store immediately.
func (cm *CollisionManager) Detect(store *entity.Store) Events {
	var ev Events
	snake := store.Snake()

	if cause := cm.CheckCollision(snake); cause != NoCollision {
		ev.GameOver = true
		ev.Cause = cause
	}

	if food, ok := store.Food(); ok && cm.IsFoodCollision(snake.GetHead().Pos, food.Pos) {
		store.DespawnFood()
		ev.Grow = true
	}
	return ev
}

// ValidateSpawnPosition checks if a position is free for a new food item
func (cm *CollisionManager) ValidateSpawnPosition(pos types.Position, occupied map[types.Position]struct{}) bool {
	if cm.isWallCollision(pos) {
		return false
	}
	_, taken := occupied[pos]
	return !taken
}
