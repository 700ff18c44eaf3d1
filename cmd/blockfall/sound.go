package main

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const sampleRate = beep.SampleRate(44100)

// sound plays short feedback tones. When the speaker cannot be opened every
// method is a no-op; the game runs silently.
type sound struct {
	mu    sync.Mutex
	ready bool
}

func newSound() (*sound, error) {
	s := &sound{}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return s, err
	}
	s.ready = true
	return s, nil
}

func tone(freq float64, d time.Duration) beep.Streamer {
	sine, err := generators.SineTone(sampleRate, freq)
	if err != nil {
		return beep.Silence(sampleRate.N(d))
	}
	return &effects.Gain{Streamer: beep.Take(sampleRate.N(d), sine), Gain: -0.75}
}

func (s *sound) play(streamers ...beep.Streamer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return
	}
	speaker.Play(beep.Seq(streamers...))
}

// lineClear rises one step per cleared row.
func (s *sound) lineClear(rows int) {
	notes := []float64{523.25, 659.25, 783.99, 1046.5}
	var seq []beep.Streamer
	for i := 0; i < rows && i < len(notes); i++ {
		seq = append(seq, tone(notes[i], 70*time.Millisecond))
	}
	if len(seq) == 0 {
		seq = append(seq, tone(notes[0], 70*time.Millisecond))
	}
	s.play(seq...)
}

func (s *sound) lock() {
	s.play(tone(196, 25*time.Millisecond))
}

func (s *sound) gameOver() {
	s.play(tone(330, 150*time.Millisecond), tone(247, 150*time.Millisecond), tone(165, 300*time.Millisecond))
}

func (s *sound) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ready {
		speaker.Close()
		s.ready = false
	}
}
