package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/plus3/tanks/game"
)

// DefaultVolume is the linear cue volume used by the game.
const DefaultVolume = 0.35

const (
	fireDuration    = 60 * time.Millisecond
	bounceDuration  = 25 * time.Millisecond
	destroyDuration = 350 * time.Millisecond
	spawnDuration   = 80 * time.Millisecond
)

// Cue returns the streamer played for kind at the given volume (0..1), or
// nil if the event is silent.
func Cue(kind game.EventKind, volume float64) beep.Streamer {
	var s beep.Streamer
	switch kind {
	case game.EventFired:
		s = tone(generators.SquareTone, 660, fireDuration)
	case game.EventBounced:
		s = tone(generators.SineTone, 1320, bounceDuration)
	case game.EventDestroyed:
		s = &rumble{total: sampleRate.N(destroyDuration), rng: rand.New(rand.NewPCG(7, 7))}
	case game.EventSpawned:
		s = beep.Seq(
			tone(generators.SineTone, 440, spawnDuration),
			tone(generators.SineTone, 660, spawnDuration),
		)
	default:
		return nil
	}
	if s == nil {
		return nil
	}
	return withVolume(s, volume)
}

type toneFunc func(sr beep.SampleRate, freq float64) (beep.Streamer, error)

func tone(gen toneFunc, freq float64, d time.Duration) beep.Streamer {
	s, err := gen(sampleRate, freq)
	if err != nil {
		return nil
	}
	return beep.Take(sampleRate.N(d), withVolume(s, 0.25))
}

// withVolume scales s linearly; zero and below is silent.
func withVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// rumble is decaying noise over a low sine, used for explosions.
type rumble struct {
	pos, total int
	rng        *rand.Rand
}

func (r *rumble) Stream(samples [][2]float64) (int, bool) {
	for i := range samples {
		if r.pos >= r.total {
			return i, i > 0
		}
		t := float64(r.pos) / float64(sampleRate)
		env := math.Exp(-t * 10)
		v := env * (0.25*(r.rng.Float64()*2-1) + 0.3*math.Sin(2*math.Pi*70*t))
		samples[i][0] = v
		samples[i][1] = v
		r.pos++
	}
	return len(samples), true
}

func (r *rumble) Err() error { return nil }
