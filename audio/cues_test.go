package audio

import (
	"math"
	"testing"

	"github.com/gopxl/beep"
	"github.com/plus3/tanks/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for {
		n, ok := s.Stream(buf)
		for _, smp := range buf[:n] {
			require.LessOrEqual(t, smp[0], 1.0)
			require.GreaterOrEqual(t, smp[0], -1.0)
		}
		total += n
		if !ok {
			return total
		}
		require.Less(t, total, sampleRate.N(destroyDuration)*4, "cue never ends")
	}
}

func TestCueLengths(t *testing.T) {
	fired := drain(t, Cue(game.EventFired, 1))
	bounced := drain(t, Cue(game.EventBounced, 1))
	destroyed := drain(t, Cue(game.EventDestroyed, 1))
	spawned := drain(t, Cue(game.EventSpawned, 1))

	assert.Equal(t, sampleRate.N(fireDuration), fired)
	assert.Equal(t, sampleRate.N(bounceDuration), bounced)
	assert.Equal(t, sampleRate.N(destroyDuration), destroyed)
	assert.Equal(t, 2*sampleRate.N(spawnDuration), spawned)
}

func TestDefaultVolumeIsAudible(t *testing.T) {
	for _, kind := range []game.EventKind{game.EventFired, game.EventBounced, game.EventDestroyed, game.EventSpawned} {
		s := Cue(kind, DefaultVolume)
		require.NotNil(t, s, kind.String())

		buf := make([][2]float64, 512)
		n, _ := s.Stream(buf)
		peak := 0.0
		for _, smp := range buf[:n] {
			peak = max(peak, math.Abs(smp[0]))
		}
		assert.Greater(t, peak, 0.01, kind.String())
	}
}

func TestSilentCues(t *testing.T) {
	assert.Nil(t, Cue(game.EventExpired, 1))

	s := Cue(game.EventFired, 0)
	require.NotNil(t, s)
	buf := make([][2]float64, 64)
	n, _ := s.Stream(buf)
	for _, smp := range buf[:n] {
		assert.Zero(t, smp[0])
	}
}

func TestUninitializedCuesAreSilent(t *testing.T) {
	c := NewCues(zap.NewNop(), 1)
	c.Emit(game.Event{Kind: game.EventFired})
	assert.Equal(t, 0, c.mixer.Len())
	c.Close()
}
