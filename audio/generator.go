package audio

import (
	"math"

	"github.com/gopxl/beep"
)

// ToneGenerator generates a sine tone with a short attack and exponential decay
type ToneGenerator struct {
	sr    beep.SampleRate
	freq  float64
	decay float64
	pos   int
}

// NewToneGenerator creates a tone generator, decay is the envelope rate per second
func NewToneGenerator(sr beep.SampleRate, freq, decay float64) *ToneGenerator {
	return &ToneGenerator{
		sr:    sr,
		freq:  freq,
		decay: decay,
	}
}

func (g *ToneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		// Sine with one octave overtone for a bell-like timbre
		sample := 0.7*math.Sin(2*math.Pi*g.freq*t) + 0.3*math.Sin(2*math.Pi*g.freq*2*t)

		// 5ms attack avoids a click at onset
		attack := math.Min(t/0.005, 1.0)
		envelope := attack * math.Exp(-t*g.decay)
		sample *= envelope * 0.3

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ToneGenerator) Err() error {
	return nil
}
