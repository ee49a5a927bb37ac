package entity

import "gridsnake/game/types"

// Store owns the snake and the single food slot. It hands out entity IDs and is
// only mutated by the tick pipeline.
type Store struct {
	nextID ID
	snake  *Snake
	food   *Food
}

func NewStore() *Store {
	return &Store{nextID: 1}
}

func (st *Store) newID() ID {
	id := st.nextID
	st.nextID++
	return id
}

// SpawnSnake replaces the current snake with a fresh one built from layout.
func (st *Store) SpawnSnake(layout types.Layout) *Snake {
	head := Segment{ID: st.newID(), Pos: layout.Head}
	tail := Segment{ID: st.newID(), Pos: layout.Tail}
	st.snake = NewSnake(head, tail, layout.Heading)
	return st.snake
}

// Snake returns the live snake. Calling it before SpawnSnake is a programming error.
func (st *Store) Snake() *Snake {
	if st.snake == nil {
		panic("entity: no snake spawned")
	}
	return st.snake
}

func (st *Store) HasSnake() bool {
	return st.snake != nil
}

// GrowSnake appends a new segment at the snake's last tail position.
func (st *Store) GrowSnake() Segment {
	return st.Snake().Grow(st.newID())
}

func (st *Store) Food() (Food, bool) {
	if st.food == nil {
		return Food{}, false
	}
	return *st.food, true
}

// SpawnFood places a food item at pos, replacing any existing one.
func (st *Store) SpawnFood(pos types.Position) Food {
	st.food = &Food{ID: st.newID(), Pos: pos}
	return *st.food
}

func (st *Store) DespawnFood() (Food, bool) {
	if st.food == nil {
		return Food{}, false
	}
	f := *st.food
	st.food = nil
	return f, true
}

// Clear destroys every segment and the food.
func (st *Store) Clear() {
	st.snake = nil
	st.food = nil
}

// Occupied returns the positions taken by snake segments.
func (st *Store) Occupied() []types.Position {
	if st.snake == nil {
		return nil
	}
	return st.snake.Positions()
}
