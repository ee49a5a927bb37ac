package main

import (
	"time"

	"gridsnake/game"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"
)

const (
	eatFreq   = 880
	resetFreq = 220
)

// sound plays short sine beeps for round events. It stays silent when the
// speaker cannot be opened.
type sound struct {
	enabled bool
	rate    beep.SampleRate
}

func newSound(logger zerolog.Logger) *sound {
	rate := beep.SampleRate(44100)
	if err := speaker.Init(rate, rate.N(time.Second/10)); err != nil {
		// game runs fine without audio
		logger.Warn().Err(err).Msg("audio disabled")
		return &sound{rate: rate}
	}
	return &sound{enabled: true, rate: rate}
}

// onView is a runner subscriber.
func (s *sound) onView(v game.View) {
	switch {
	case v.Reset:
		s.tone(resetFreq, 250*time.Millisecond)
	case v.Grew:
		s.tone(eatFreq, 50*time.Millisecond)
	}
}

func (s *sound) tone(freq int, d time.Duration) {
	if !s.enabled {
		return
	}
	sine, err := generators.SineTone(s.rate, float64(freq))
	if err != nil {
		return
	}
	speaker.Play(beep.Take(s.rate.N(d), sine))
}

func (s *sound) close() {
	if s.enabled {
		speaker.Close()
	}
}
