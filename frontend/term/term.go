// Package term runs a World in a terminal through tcell.
package term

import (
	"context"
	"fmt"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/plus3/tanks/game"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Frontend owns an initialized screen. Run finalizes it on return.
type Frontend struct {
	screen   tcell.Screen
	keys     *Keys
	renderer *Renderer
	logger   *zap.Logger
	tickRate int
}

func New(screen tcell.Screen, renderer *Renderer, tickRate int, logger *zap.Logger) (*Frontend, error) {
	if tickRate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %d", tickRate)
	}
	return &Frontend{
		screen:   screen,
		keys:     NewKeys(DefaultHoldWindow),
		renderer: renderer,
		logger:   logger,
		tickRate: tickRate,
	}, nil
}

// Keys returns the input the World must be built with.
func (f *Frontend) Keys() *Keys {
	return f.keys
}

// Run drives world at the tick rate until ctx is done, the player quits
// or an update fails.
func (f *Frontend) Run(ctx context.Context, world *game.World) error {
	events := make(chan tcell.Event, 64)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		for {
			ev := f.screen.PollEvent()
			if ev == nil {
				return nil
			}
			select {
			case events <- ev:
			case <-ctx.Done():
				return nil
			}
		}
	})

	g.Go(func() error {
		defer f.screen.Fini()
		return f.loop(ctx, world, events)
	})

	return g.Wait()
}

func (f *Frontend) loop(ctx context.Context, world *game.World, events <-chan tcell.Event) error {
	ticker := time.NewTicker(time.Second / time.Duration(f.tickRate))
	defer ticker.Stop()

	dt := 1 / float64(f.tickRate)
	elapsed := 0.0
	f.renderer.Resize(f.screen.Size())

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if ev.Key() == tcell.KeyCtrlC {
					f.logger.Info("interrupted from keyboard")
					return nil
				}
				f.keys.Handle(ev)
			case *tcell.EventResize:
				f.renderer.Resize(f.screen.Size())
				f.screen.Sync()
			}

		case now := <-ticker.C:
			f.keys.Advance(now)
			elapsed += dt
			if err := world.Update(dt, elapsed); err != nil {
				return err
			}
			if world.QuitRequested() {
				f.logger.Info("quit requested", zap.Float64("elapsed", elapsed))
				return nil
			}
			f.draw(world, elapsed)
		}
	}
}

func (f *Frontend) draw(world *game.World, elapsed float64) {
	stats := world.Stats()
	status := fmt.Sprintf(" t=%.1fs  tanks %d  bullets %d  [wasd/q] [arrows/m] [esc] ",
		elapsed, stats.Tanks, stats.Bullets)
	f.renderer.Draw(f.screen, status)
	f.screen.Show()
}
