package entity

import (
	"testing"

	"gridsnake/game/types"
)

func newTestSnake() *Snake {
	return NewSnake(
		Segment{ID: 1, Pos: types.Position{X: 5, Y: 3}},
		Segment{ID: 2, Pos: types.Position{X: 5, Y: 2}},
		types.Up,
	)
}

func TestAdvanceMovesInLockStep(t *testing.T) {
	s := newTestSnake()

	tail := s.Advance()

	if tail != (types.Position{X: 5, Y: 2}) {
		t.Errorf("Expected last tail (5,2), got %v", tail)
	}
	if got := s.GetHead().Pos; got != (types.Position{X: 5, Y: 4}) {
		t.Errorf("Expected head at (5,4), got %v", got)
	}
	if got := s.Body[1].Pos; got != (types.Position{X: 5, Y: 3}) {
		t.Errorf("Expected tail at (5,3), got %v", got)
	}
	if last, ok := s.LastTail(); !ok || last != tail {
		t.Errorf("Expected LastTail %v, got %v (ok=%v)", tail, last, ok)
	}
}

func TestAdvancePreservesLength(t *testing.T) {
	s := newTestSnake()
	s.Body = append(s.Body,
		Segment{ID: 3, Pos: types.Position{X: 5, Y: 1}},
		Segment{ID: 4, Pos: types.Position{X: 4, Y: 1}},
	)

	for i, dir := range []types.Direction{types.Up, types.Right, types.Right, types.Down} {
		s.Direction = dir
		s.Advance()
		if s.Len() != 4 {
			t.Fatalf("step %d: expected 4 segments, got %d", i, s.Len())
		}
	}
}

func TestAdvanceBodyFollowsHead(t *testing.T) {
	s := NewSnake(
		Segment{ID: 1, Pos: types.Position{X: 2, Y: 2}},
		Segment{ID: 2, Pos: types.Position{X: 1, Y: 2}},
		types.Right,
	)
	s.Body = append(s.Body, Segment{ID: 3, Pos: types.Position{X: 0, Y: 2}})
	before := s.Positions()

	s.Direction = types.Up
	s.Advance()

	want := []types.Position{{X: 2, Y: 3}, before[0], before[1]}
	for i, p := range s.Positions() {
		if p != want[i] {
			t.Errorf("segment %d: expected %v, got %v", i, want[i], p)
		}
	}
	// identities stay attached to their slots
	for i, seg := range s.Body {
		if seg.ID != ID(i+1) {
			t.Errorf("segment %d: expected id %d, got %d", i, i+1, seg.ID)
		}
	}
}

func TestSetDirectionRejectsReversal(t *testing.T) {
	s := newTestSnake()

	if s.SetDirection(types.Down) {
		t.Error("Expected reversal to be rejected")
	}
	if s.Direction != types.Up {
		t.Errorf("Expected heading Up, got %v", s.Direction)
	}
	if !s.SetDirection(types.Left) {
		t.Error("Expected turn left to be accepted")
	}
	if s.Direction != types.Left {
		t.Errorf("Expected heading Left, got %v", s.Direction)
	}
}

func TestGrowAppendsAtLastTail(t *testing.T) {
	s := newTestSnake()
	tail := s.Advance()

	seg := s.Grow(7)

	if s.Len() != 3 {
		t.Fatalf("Expected 3 segments, got %d", s.Len())
	}
	if seg.Pos != tail || s.Body[2].Pos != tail {
		t.Errorf("Expected new segment at %v, got %v", tail, s.Body[2].Pos)
	}
	if seg.ID != 7 {
		t.Errorf("Expected id 7, got %d", seg.ID)
	}
}

func TestGrowBeforeAdvancePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic")
		}
	}()
	newTestSnake().Grow(3)
}

func TestHeadOfEmptySnakePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Expected panic")
		}
	}()
	(&Snake{}).GetHead()
}
