package manager

import (
	"testing"

	"gridsnake/game/entity"
	"gridsnake/game/types"
)

func snakeAt(heading types.Direction, positions ...types.Position) *entity.Snake {
	s := &entity.Snake{Direction: heading}
	for i, p := range positions {
		s.Body = append(s.Body, entity.Segment{ID: entity.ID(i + 1), Pos: p})
	}
	return s
}

func TestCheckCollision(t *testing.T) {
	cm := NewCollisionManager(types.DefaultGrid())

	tests := []struct {
		name  string
		snake *entity.Snake
		want  CollisionType
	}{
		{
			name:  "free move",
			snake: snakeAt(types.Up, types.Position{X: 5, Y: 4}, types.Position{X: 5, Y: 3}),
			want:  NoCollision,
		},
		{
			name:  "left wall",
			snake: snakeAt(types.Left, types.Position{X: -1, Y: 3}, types.Position{X: 0, Y: 3}),
			want:  WallCollision,
		},
		{
			name:  "top wall",
			snake: snakeAt(types.Up, types.Position{X: 4, Y: 11}, types.Position{X: 4, Y: 10}),
			want:  WallCollision,
		},
		{
			name: "self",
			snake: snakeAt(types.Down,
				types.Position{X: 2, Y: 2},
				types.Position{X: 2, Y: 3},
				types.Position{X: 3, Y: 3},
				types.Position{X: 3, Y: 2},
				types.Position{X: 2, Y: 2},
			),
			want: SelfCollision,
		},
		{
			name: "into vacated tail cell",
			snake: snakeAt(types.Down,
				types.Position{X: 2, Y: 2},
				types.Position{X: 2, Y: 3},
				types.Position{X: 3, Y: 3},
				types.Position{X: 3, Y: 2},
			),
			want: NoCollision,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cm.CheckCollision(tt.snake); got != tt.want {
				t.Errorf("Expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestDetectEating(t *testing.T) {
	cm := NewCollisionManager(types.DefaultGrid())
	store := entity.NewStore()
	store.SpawnSnake(types.DefaultLayout())
	store.SpawnFood(types.Position{X: 5, Y: 4})

	store.Snake().Advance()
	ev := cm.Detect(store)

	if !ev.Grow {
		t.Error("Expected growth event")
	}
	if ev.GameOver {
		t.Error("Expected no game over")
	}
	if _, ok := store.Food(); ok {
		t.Error("Expected eaten food to be despawned")
	}
}

func TestDetectWall(t *testing.T) {
	cm := NewCollisionManager(types.DefaultGrid())
	store := entity.NewStore()
	store.SpawnSnake(types.Layout{
		Head:    types.Position{X: 0, Y: 3},
		Tail:    types.Position{X: 1, Y: 3},
		Heading: types.Left,
	})
	store.SpawnFood(types.Position{X: 8, Y: 8})

	store.Snake().Advance()
	ev := cm.Detect(store)

	if !ev.GameOver || ev.Cause != WallCollision {
		t.Errorf("Expected wall game over, got %+v", ev)
	}
	if ev.Grow {
		t.Error("Expected no growth")
	}
	if _, ok := store.Food(); !ok {
		t.Error("Expected food to stay until reset")
	}
}
