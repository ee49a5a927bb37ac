package ui

import (
	"fmt"

	"gridsnake/game"
	"gridsnake/game/types"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	borderPadding = 10 // Padding around game area
	resetBanner   = 8  // Frames the reset message stays up after a reset tick
)

type Renderer struct {
	cellSize        int32
	screenWidth     int32
	screenHeight    int32
	graphHeight     int32
	graphWidth      int32
	gameWidth       int32
	gameHeight      int32
	statsPanel      int32
	totalGridWidth  int32
	totalGridHeight int32
	offsetX         int32
	offsetY         int32

	banner banner
}

func NewRenderer() *Renderer {
	r := &Renderer{}
	r.UpdateDimensions()
	return r
}

func (r *Renderer) UpdateDimensions() {
	// Get window dimensions
	r.screenWidth = int32(rl.GetScreenWidth())
	r.screenHeight = int32(rl.GetScreenHeight())

	// Stats panel takes a quarter of the window, the arena the rest
	r.statsPanel = r.screenWidth / 4
	r.gameWidth = r.screenWidth - r.statsPanel
	r.gameHeight = r.screenHeight

	r.graphWidth = r.statsPanel - 20   // Fit within stats panel
	r.graphHeight = r.screenHeight / 5 // Bottom fifth of the panel
}

func min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

// cellRect returns the on-screen square for a grid cell scaled by size. Grid Y
// grows upwards, screen Y downwards.
func (r *Renderer) cellRect(grid types.Grid, pos types.Position, size float32) rl.Rectangle {
	side := float32(r.cellSize) * size
	inset := (float32(r.cellSize) - side) / 2
	return rl.Rectangle{
		X:      float32(r.offsetX) + float32(pos.X)*float32(r.cellSize) + inset,
		Y:      float32(r.offsetY) + float32(grid.Height-1-pos.Y)*float32(r.cellSize) + inset,
		Width:  side,
		Height: side,
	}
}

func (r *Renderer) Draw(g *game.Game) {
	r.UpdateDimensions()
	view := g.View()
	grid := g.Grid
	r.banner.observe(view)

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	// Calculate dynamic sizes
	fontSize := min(r.screenHeight/30, r.statsPanel/12)
	lineHeight := fontSize + fontSize/2

	// Calculate available space for the grid after border padding
	availableWidth := r.gameWidth - borderPadding*2
	availableHeight := r.gameHeight - borderPadding*2

	// Calculate cell size based on available space and grid dimensions
	r.cellSize = min(availableWidth/int32(grid.Width), availableHeight/int32(grid.Height))

	// Calculate total grid dimensions
	r.totalGridWidth = r.cellSize * int32(grid.Width)
	r.totalGridHeight = r.cellSize * int32(grid.Height)

	// Calculate offset to center the grid
	r.offsetX = borderPadding + (availableWidth-r.totalGridWidth)/2
	r.offsetY = (r.screenHeight - r.totalGridHeight) / 2

	// Draw grid background with a one pixel border
	rl.DrawRectangle(r.offsetX-1, r.offsetY-1, r.totalGridWidth+2, r.totalGridHeight+2, rl.DarkGray)
	rl.DrawRectangle(r.offsetX, r.offsetY, r.totalGridWidth, r.totalGridHeight, rl.Black)

	// Draw head, body and food, each scaled to its own size
	for _, e := range g.Entities() {
		var color rl.Color
		switch e.Kind {
		case types.KindHead:
			color = rl.Gray
		case types.KindSegment:
			color = rl.DarkGray
		case types.KindFood:
			color = rl.Magenta
		}
		rl.DrawRectangleRec(r.cellRect(grid, e.Pos, e.Size), color)
	}

	// Draw game over text for a few frames after a reset
	if cause, ok := r.banner.next(); ok {
		text := fmt.Sprintf("Game Over (%s)! Restarting...", cause)
		textWidth := rl.MeasureText(text, fontSize)
		rl.DrawText(text,
			r.offsetX+(r.totalGridWidth-textWidth)/2,
			r.offsetY+r.totalGridHeight/2,
			fontSize, rl.Yellow)
	}

	r.drawStatsPanel(g, view, fontSize, lineHeight)
	rl.EndDrawing()
}

func (r *Renderer) drawStatsPanel(g *game.Game, view game.View, fontSize, lineHeight int32) {
	statsX := r.gameWidth + 5 // Small gap from game area
	statsY := int32(10)

	// Draw stats background
	rl.DrawRectangle(statsX-5, 0, r.statsPanel+5, r.screenHeight, rl.DarkGray)

	// Draw round statistics
	lines := []string{
		fmt.Sprintf("Round: %d", view.Round),
		fmt.Sprintf("Score: %d", view.Score),
		fmt.Sprintf("High Score: %d", view.HighScore),
		fmt.Sprintf("Length: %d", len(view.Segments)),
		fmt.Sprintf("Heading: %s", view.Heading),
		fmt.Sprintf("Tick: %d", view.Tick),
	}
	for _, line := range lines {
		rl.DrawText(line, statsX, statsY, fontSize, rl.White)
		statsY += lineHeight
	}
	if view.Food == nil {
		rl.DrawText("Arena full", statsX, statsY, fontSize, rl.Yellow)
	}

	r.drawScoreGraph(g.GetStats().ScoreHistory, statsX, fontSize)
}

func (r *Renderer) drawScoreGraph(scores []int, graphX, fontSize int32) {
	graphY := r.screenHeight - r.graphHeight - fontSize*2

	rl.DrawRectangleLines(graphX, graphY, r.graphWidth, r.graphHeight, rl.White)
	rl.DrawText("Scores", graphX, graphY-fontSize-5, fontSize, rl.White)

	if len(scores) < 2 {
		return
	}

	// Find max score for scaling
	maxScore := 1
	for _, s := range scores {
		if s > maxScore {
			maxScore = s
		}
	}

	// Connect the scores with lines, oldest on the left
	step := float32(r.graphWidth) / float32(len(scores)-1)
	for j := 1; j < len(scores); j++ {
		x1 := graphX + int32(step*float32(j-1))
		y1 := graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(scores[j-1])/float32(maxScore))
		x2 := graphX + int32(step*float32(j))
		y2 := graphY + r.graphHeight - int32(float32(r.graphHeight)*float32(scores[j])/float32(maxScore))
		rl.DrawLine(x1, y1, x2, y2, rl.Magenta)
	}
}
