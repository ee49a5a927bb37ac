package entity

import (
	"gridsnake/game/types"
)

// ID identifies a segment or food item for the lifetime of a Store.
type ID uint64

// Segment is one cell of the snake body.
type Segment struct {
	ID  ID
	Pos types.Position
}

// Snake is an ordered list of segments; Body[0] is the head.
type Snake struct {
	Body      []Segment
	Direction types.Direction

	lastTail    types.Position
	hasLastTail bool
}

func NewSnake(head, tail Segment, heading types.Direction) *Snake {
	return &Snake{
		Body:      []Segment{head, tail},
		Direction: heading,
	}
}

func (s *Snake) Len() int {
	return len(s.Body)
}

func (s *Snake) GetHead() Segment {
	if len(s.Body) == 0 {
		panic("entity: head of empty snake")
	}
	return s.Body[0]
}

// Positions returns a copy of the segment positions, head first.
func (s *Snake) Positions() []types.Position {
	out := make([]types.Position, len(s.Body))
	for i, seg := range s.Body {
		out[i] = seg.Pos
	}
	return out
}

// Occupies reports whether any segment sits on pos.
func (s *Snake) Occupies(pos types.Position) bool {
	for _, seg := range s.Body {
		if seg.Pos == pos {
			return true
		}
	}
	return false
}

// SetDirection changes the heading unless dir would reverse the snake.
func (s *Snake) SetDirection(dir types.Direction) bool {
	if dir == s.Direction.Opposite() {
		return false
	}
	s.Direction = dir
	return true
}

// Advance moves the snake one cell along its heading. Every segment takes the
// pre-move position of the segment ahead of it, so positions are read from a
// snapshot taken before any mutation. The old tail position is remembered for
// Grow and also returned.
func (s *Snake) Advance() types.Position {
	snapshot := s.Positions()
	tail := snapshot[len(snapshot)-1]
	s.lastTail = tail
	s.hasLastTail = true

	s.Body[0].Pos = snapshot[0].Step(s.Direction)
	for i := 1; i < len(s.Body); i++ {
		s.Body[i].Pos = snapshot[i-1]
	}
	return tail
}

// LastTail returns the tail position recorded by the most recent Advance.
func (s *Snake) LastTail() (types.Position, bool) {
	return s.lastTail, s.hasLastTail
}

// Grow appends a segment with the given id on the cell the tail just vacated.
func (s *Snake) Grow(id ID) Segment {
	if !s.hasLastTail {
		panic("entity: grow before first advance")
	}
	seg := Segment{ID: id, Pos: s.lastTail}
	s.Body = append(s.Body, seg)
	return seg
}
