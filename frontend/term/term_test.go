package term

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tanks/game"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newFrontend(t *testing.T) (*Frontend, *game.World, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	screen.SetSize(60, 31)

	res, err := game.NewSeededResources(80, 60, 7)
	require.NoError(t, err)

	logger := zaptest.NewLogger(t)
	fe, err := New(screen, NewRenderer(res.Map), 120, logger)
	require.NoError(t, err)

	world, err := game.NewWorld(res, fe.Keys(), fe.renderer, game.WithLogger(logger))
	require.NoError(t, err)
	return fe, world, screen
}

func TestNewRejectsTickRate(t *testing.T) {
	_, err := New(tcell.NewSimulationScreen(""), nil, 0, zaptest.NewLogger(t))
	assert.Error(t, err)
}

func TestRunQuitsOnEscape(t *testing.T) {
	fe, world, screen := newFrontend(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fe.Run(ctx, world) }()

	screen.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("frontend did not stop")
	}
	assert.True(t, world.QuitRequested())
}

func TestRunStopsOnCtrlC(t *testing.T) {
	fe, world, screen := newFrontend(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- fe.Run(ctx, world) }()

	screen.InjectKey(tcell.KeyCtrlC, 0, tcell.ModCtrl)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-ctx.Done():
		t.Fatal("frontend did not stop")
	}
	assert.False(t, world.QuitRequested())
}

func TestRunStopsOnCancel(t *testing.T) {
	fe, world, _ := newFrontend(t)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	require.NoError(t, fe.Run(ctx, world))
	assert.Greater(t, world.Stats().Tanks, 0)
}
