// Package audio plays the finish chime and keypad clicks through beep
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// Chime layout: three decaying tones separated by short gaps
const (
	chimeFreq   = 880.0
	chimeTone   = 180 * time.Millisecond
	chimeGap    = 90 * time.Millisecond
	chimeRepeat = 3

	keyFreq = 1320.0
	keyTone = 25 * time.Millisecond
)

// SoundManager manages timer audio
// All Play calls are no-ops until Initialize succeeds or while disabled
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
	enabled     bool

	// play hands a streamer to the output, replaced in tests
	play func(beep.Streamer)
}

// NewSoundManager creates a new sound manager
func NewSoundManager(enabled bool) *SoundManager {
	sm := &SoundManager{
		mixer:   &beep.Mixer{},
		enabled: enabled,
	}
	sm.play = sm.playSpeaker
	return sm
}

// Initialize sets up the audio device
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	// Initialize speaker with sample rate and buffer size
	err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100))
	if err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the audio device
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

// SetEnabled toggles playback without touching the device
func (sm *SoundManager) SetEnabled(enabled bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.enabled = enabled
}

// PlayFinish plays the end-of-countdown chime
func (sm *SoundManager) PlayFinish() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.enabled {
		return
	}
	sm.play(NewChime(sampleRate))
}

// PlayKey plays a short keypad click
func (sm *SoundManager) PlayKey() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || !sm.enabled {
		return
	}
	sm.play(beep.Take(sampleRate.N(keyTone), NewToneGenerator(sampleRate, keyFreq, 80)))
}

func (sm *SoundManager) playSpeaker(s beep.Streamer) {
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// NewChime builds the finish chime streamer
func NewChime(sr beep.SampleRate) beep.Streamer {
	parts := make([]beep.Streamer, 0, chimeRepeat*2)
	for i := 0; i < chimeRepeat; i++ {
		parts = append(parts, beep.Take(sr.N(chimeTone), NewToneGenerator(sr, chimeFreq, 12)))
		if i < chimeRepeat-1 {
			parts = append(parts, beep.Silence(sr.N(chimeGap)))
		}
	}
	return beep.Seq(parts...)
}
