// Package audio plays short synthesized cues for simulation events.
package audio

import (
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
	"github.com/plus3/tanks/game"
	"go.uber.org/zap"
)

const sampleRate = beep.SampleRate(44100)

// Cues is a game.EventSink that mixes one cue per event into the speaker.
type Cues struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	logger      *zap.Logger
	volume      float64
	initialized bool
}

// NewCues creates a silent sink. Call Init to open the speaker.
func NewCues(logger *zap.Logger, volume float64) *Cues {
	return &Cues{
		mixer:  &beep.Mixer{},
		logger: logger,
		volume: volume,
	}
}

// Init opens the speaker with a 100ms buffer and starts the mixer.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(100*time.Millisecond)); err != nil {
		return fmt.Errorf("init speaker: %w", err)
	}
	speaker.Play(c.mixer)
	c.initialized = true
	return nil
}

// Emit queues the cue for e, if it has one.
func (c *Cues) Emit(e game.Event) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	cue := Cue(e.Kind, c.volume)
	if cue == nil {
		return
	}
	speaker.Lock()
	c.mixer.Add(cue)
	speaker.Unlock()
	c.logger.Debug("cue", zap.Stringer("event", e.Kind), zap.Uint64("entity", uint64(e.Entity)))
}

// Close drops pending cues and closes the speaker.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}
