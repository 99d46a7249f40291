// Package ebitenfe runs a World in an ebiten window: keyboard input, a
// top-down wireframe view and an optional ImGui inspector.
package ebitenfe

import (
	"context"
	"fmt"

	ebitenbackend "github.com/AllenDang/cimgui-go/backend/ebiten-backend"
	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/plus3/tanks/ecs/debugui"
	"github.com/plus3/tanks/game"
	"go.uber.org/zap"
)

type Options struct {
	Title    string
	TickRate int
	DebugUI  bool
}

// Game implements ebiten.Game around a World. The World must have been
// built with the same KeyState and Renderer.
type Game struct {
	ctx      context.Context
	world    *game.World
	keys     *game.KeyState
	renderer *Renderer
	logger   *zap.Logger
	opts     Options
	dt       float64
	elapsed  float64

	imguiBackend *ebitenbackend.EbitenBackend
	overlay      *debugui.Overlay
}

func NewGame(world *game.World, keys *game.KeyState, renderer *Renderer, opts Options, logger *zap.Logger) (*Game, error) {
	if opts.TickRate <= 0 {
		return nil, fmt.Errorf("tick rate must be positive, got %d", opts.TickRate)
	}
	g := &Game{
		world:    world,
		keys:     keys,
		renderer: renderer,
		logger:   logger,
		opts:     opts,
		dt:       1 / float64(opts.TickRate),
	}
	if opts.DebugUI {
		overlay, err := debugui.NewOverlay(world.Storage(), world.Scheduler())
		if err != nil {
			return nil, fmt.Errorf("debug overlay: %w", err)
		}
		g.overlay = overlay
	}
	return g, nil
}

// Run opens the window and blocks until the players quit, ctx is
// cancelled or the simulation fails.
func (g *Game) Run(ctx context.Context) error {
	g.ctx = ctx
	w, h := g.renderer.Size()

	ebiten.SetTPS(g.opts.TickRate)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if g.overlay != nil {
		g.imguiBackend = ebitenbackend.NewEbitenBackend()
		g.imguiBackend.CreateWindow(g.opts.Title, w, h)
		imgui.CurrentIO().SetIniFilename("")
	} else {
		ebiten.SetWindowSize(w, h)
		ebiten.SetWindowTitle(g.opts.Title)
	}

	g.logger.Info("window open", zap.Int("width", w), zap.Int("height", h), zap.Bool("debug_ui", g.overlay != nil))
	return ebiten.RunGame(g)
}

func (g *Game) Update() error {
	if g.ctx != nil && g.ctx.Err() != nil {
		return ebiten.Termination
	}

	if g.overlay != nil && g.overlay.Input.WantCaptureKeyboard {
		g.keys.Release()
	} else {
		pollKeys(g.keys)
	}

	g.elapsed += g.dt
	if err := g.world.Update(g.dt, g.elapsed); err != nil {
		return err
	}
	if g.world.QuitRequested() {
		return ebiten.Termination
	}

	if g.overlay != nil {
		g.imguiBackend.BeginFrame()
		err := g.overlay.Update()
		g.imguiBackend.EndFrame()
		if err != nil {
			return fmt.Errorf("debug overlay: %w", err)
		}
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)

	stats := g.world.Stats()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("t=%.1fs  tanks %d  bullets %d  TPS %.0f",
		g.elapsed, stats.Tanks, stats.Bullets, ebiten.ActualTPS()), 4, 4)

	if g.overlay != nil {
		g.imguiBackend.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.imguiBackend != nil {
		g.imguiBackend.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}
