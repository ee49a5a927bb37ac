package ui

import "gridsnake/game"

// banner keeps the game over message up for resetBanner frames after the tick
// that reset the round. The same view is drawn on many frames, so only a new
// tick can restart it.
type banner struct {
	frames   int
	lastTick uint64
	cause    string
}

func (b *banner) observe(v game.View) {
	if v.Tick == b.lastTick {
		return
	}
	b.lastTick = v.Tick
	if v.Reset {
		b.frames = resetBanner
		b.cause = v.Cause
	}
}

// next reports whether the banner shows on this frame and uses the frame up.
func (b *banner) next() (string, bool) {
	if b.frames == 0 {
		return "", false
	}
	b.frames--
	return b.cause, true
}
