package types

import "fmt"

// Grid represents the game grid dimensions
type Grid struct {
	Width  int
	Height int
}

// Game constants
const (
	ArenaWidth  = 11
	ArenaHeight = 11

	HeadSize    float32 = 0.8
	SegmentSize float32 = 0.65
	FoodSize    float32 = 0.8
)

// DefaultGrid returns the standard 11x11 arena.
func DefaultGrid() Grid {
	return Grid{Width: ArenaWidth, Height: ArenaHeight}
}

// InBounds reports whether pos lies inside [0, Width) x [0, Height).
func (g Grid) InBounds(pos Position) bool {
	return pos.X >= 0 && pos.X < g.Width && pos.Y >= 0 && pos.Y < g.Height
}

// Cells returns the number of cells in the grid.
func (g Grid) Cells() int {
	return g.Width * g.Height
}

type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Step returns the neighbouring position one cell along dir.
func (p Position) Step(dir Direction) Position {
	dx, dy := dir.Delta()
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Direction is one of the four grid headings. Up increases Y.
type Direction int

const (
	Left Direction = iota
	Up
	Right
	Down
)

// Directions lists every heading in declaration order.
var Directions = [4]Direction{Left, Up, Right, Down}

func (d Direction) Opposite() Direction {
	switch d {
	case Left:
		return Right
	case Up:
		return Down
	case Right:
		return Left
	case Down:
		return Up
	default:
		panic(fmt.Sprintf("types: invalid direction %d", int(d)))
	}
}

// Delta returns the unit step (dx, dy) for the direction.
func (d Direction) Delta() (int, int) {
	switch d {
	case Left:
		return -1, 0
	case Up:
		return 0, 1
	case Right:
		return 1, 0
	case Down:
		return 0, -1
	default:
		panic(fmt.Sprintf("types: invalid direction %d", int(d)))
	}
}

func (d Direction) Valid() bool {
	return d >= Left && d <= Down
}

func (d Direction) String() string {
	switch d {
	case Left:
		return "left"
	case Up:
		return "up"
	case Right:
		return "right"
	case Down:
		return "down"
	default:
		return fmt.Sprintf("Direction(%d)", int(d))
	}
}

// ParseDirection accepts the lower-case names produced by String.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

func (d Direction) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Kind identifies what a rendered entity is.
type Kind int

const (
	KindHead Kind = iota
	KindSegment
	KindFood
)

// Size returns the relative scale of the kind in arena-cell units.
func (k Kind) Size() float32 {
	switch k {
	case KindHead:
		return HeadSize
	case KindSegment:
		return SegmentSize
	default:
		return FoodSize
	}
}

func (k Kind) String() string {
	switch k {
	case KindHead:
		return "head"
	case KindSegment:
		return "segment"
	case KindFood:
		return "food"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Layout is the starting configuration of a round.
type Layout struct {
	Head    Position
	Tail    Position
	Heading Direction
}

// DefaultLayout places the head at (5,3) and the tail at (5,2), moving up.
func DefaultLayout() Layout {
	return Layout{
		Head:    Position{X: 5, Y: 3},
		Tail:    Position{X: 5, Y: 2},
		Heading: Up,
	}
}
