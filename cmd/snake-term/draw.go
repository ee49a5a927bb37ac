package main

import (
	"fmt"

	"gridsnake/game"
	"gridsnake/game/types"

	"github.com/gdamore/tcell/v2"
)

var (
	borderStyle = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	headStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	bodyStyle   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	foodStyle   = tcell.StyleDefault.Foreground(tcell.ColorFuchsia)
	textStyle   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	alertStyle  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// Each grid cell takes two terminal columns so the arena looks square.
const cellCols = 2

// cellOrigin returns the terminal column and row of a grid cell. The arena is
// drawn inside a one-character border and grid Y grows upwards.
func cellOrigin(v game.View, p types.Position) (int, int) {
	return 1 + p.X*cellCols, 1 + (v.Height - 1 - p.Y)
}

func drawView(s tcell.Screen, v game.View, autopilot bool) {
	s.Clear()

	w := v.Width*cellCols + 2
	h := v.Height + 2
	for x := 0; x < w; x++ {
		s.SetContent(x, 0, '─', nil, borderStyle)
		s.SetContent(x, h-1, '─', nil, borderStyle)
	}
	for y := 0; y < h; y++ {
		s.SetContent(0, y, '│', nil, borderStyle)
		s.SetContent(w-1, y, '│', nil, borderStyle)
	}
	s.SetContent(0, 0, '┌', nil, borderStyle)
	s.SetContent(w-1, 0, '┐', nil, borderStyle)
	s.SetContent(0, h-1, '└', nil, borderStyle)
	s.SetContent(w-1, h-1, '┘', nil, borderStyle)

	if v.Food != nil {
		fillCell(s, v, *v.Food, '●', foodStyle)
	}
	for i := len(v.Segments) - 1; i >= 0; i-- {
		if i == 0 {
			fillCell(s, v, v.Segments[i], '█', headStyle)
		} else {
			fillCell(s, v, v.Segments[i], '▓', bodyStyle)
		}
	}

	mode := "manual"
	if autopilot {
		mode = "autopilot"
	}
	lines := []string{
		fmt.Sprintf("Round %d  Score %d  High %d", v.Round, v.Score, v.HighScore),
		fmt.Sprintf("Length %d  Heading %s  Tick %d  [%s]", len(v.Segments), v.Heading, v.Tick, mode),
		"arrows/wasd steer  p autopilot  q quit",
	}
	for i, line := range lines {
		drawText(s, 0, h+i, line, textStyle)
	}
	if v.Reset {
		drawText(s, 0, h+len(lines), fmt.Sprintf("Game over (%s), new round", v.Cause), alertStyle)
	} else if v.Food == nil {
		drawText(s, 0, h+len(lines), "Arena full", alertStyle)
	}

	s.Show()
}

func fillCell(s tcell.Screen, v game.View, p types.Position, r rune, style tcell.Style) {
	x, y := cellOrigin(v, p)
	for i := 0; i < cellCols; i++ {
		s.SetContent(x+i, y, r, nil, style)
	}
}

func drawText(s tcell.Screen, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		s.SetContent(x, y, r, nil, style)
		x++
	}
}

// headingForKey maps arrow keys and wasd to a heading.
func headingForKey(ev *tcell.EventKey) (types.Direction, bool) {
	switch ev.Key() {
	case tcell.KeyLeft:
		return types.Left, true
	case tcell.KeyUp:
		return types.Up, true
	case tcell.KeyRight:
		return types.Right, true
	case tcell.KeyDown:
		return types.Down, true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'a', 'A':
			return types.Left, true
		case 'w', 'W':
			return types.Up, true
		case 'd', 'D':
			return types.Right, true
		case 's', 'S':
			return types.Down, true
		}
	}
	return 0, false
}
