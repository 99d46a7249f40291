// Command tanks runs a tank battle in a window, a terminal or headless.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/plus3/tanks/audio"
	"github.com/plus3/tanks/config"
	"github.com/plus3/tanks/frontend/ebitenfe"
	"github.com/plus3/tanks/frontend/term"
	"github.com/plus3/tanks/game"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	defaultConfig = "config/tanks.toml"
	pixelsPerCell = 10
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", envOr("TANKS_CONFIG", defaultConfig), "TOML or YAML config file")
	frontend := flag.String("frontend", "", "override frontend.kind: ebiten, term or headless")
	seed := flag.Uint64("seed", 0, "override game.seed; 0 keeps the configured value")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *frontend != "" {
		cfg.Frontend.Kind = *frontend
	}
	if *seed != 0 {
		cfg.Game.Seed = *seed
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := config.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()
	if cfg.Frontend.Kind == config.FrontendTerm {
		// stderr shares the terminal with the screen
		log = log.WithOptions(zap.IncreaseLevel(zapcore.ErrorLevel))
	}
	log = log.With(zap.String("session", uuid.NewString()))

	if cfg.Game.Seed == 0 {
		cfg.Game.Seed = uint64(time.Now().UnixNano())
	}
	log.Info("starting",
		zap.String("config", *configPath),
		zap.String("frontend", cfg.Frontend.Kind),
		zap.Uint64("seed", cfg.Game.Seed))

	res, err := game.NewSeededResources(cfg.Arena.Width, cfg.Arena.Height, cfg.Game.Seed)
	if err != nil {
		return err
	}

	sinks := game.MultiSink{game.EventSinkFunc(func(e game.Event) {
		log.Debug("event", zap.Stringer("kind", e.Kind), zap.Uint64("entity", uint64(e.Entity)))
	})}
	if cfg.Frontend.Audio {
		cues := audio.NewCues(log.Named("audio"), audio.DefaultVolume)
		if err := cues.Init(); err != nil {
			log.Warn("audio disabled", zap.Error(err))
		} else {
			defer cues.Close()
			sinks = append(sinks, cues)
		}
	}
	opts := []game.Option{
		game.WithSettings(cfg.Settings()),
		game.WithEvents(sinks),
		game.WithLogger(log.Named("world")),
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	switch cfg.Frontend.Kind {
	case config.FrontendEbiten:
		err = runEbiten(ctx, cfg, res, opts, log)
	case config.FrontendTerm:
		err = runTerm(ctx, cfg, res, opts, log)
	default:
		err = runHeadless(ctx, cfg, res, opts, log)
	}
	if err != nil {
		log.Error("session failed", zap.Error(err))
		return err
	}
	log.Info("session over")
	return nil
}

func loadConfig(path string) (*config.Config, error) {
	cfg, err := config.Load(path)
	if errors.Is(err, os.ErrNotExist) && path == defaultConfig {
		return config.Default(), nil
	}
	return cfg, err
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func runEbiten(ctx context.Context, cfg *config.Config, res *game.Resources, opts []game.Option, log *zap.Logger) error {
	keys := &game.KeyState{}
	renderer := ebitenfe.NewRenderer(res.Map, pixelsPerCell)
	world, err := game.NewWorld(res, keys, renderer, opts...)
	if err != nil {
		return err
	}
	g, err := ebitenfe.NewGame(world, keys, renderer, ebitenfe.Options{
		Title:    "tanks",
		TickRate: cfg.Game.TickRate,
		DebugUI:  cfg.Frontend.DebugUI,
	}, log.Named("ebiten"))
	if err != nil {
		return err
	}
	return g.Run(ctx)
}

func runTerm(ctx context.Context, cfg *config.Config, res *game.Resources, opts []game.Option, log *zap.Logger) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("terminal: %w", err)
	}
	renderer := term.NewRenderer(res.Map)
	fe, err := term.New(screen, renderer, cfg.Game.TickRate, log.Named("term"))
	if err != nil {
		screen.Fini()
		return err
	}
	world, err := game.NewWorld(res, fe.Keys(), renderer, opts...)
	if err != nil {
		screen.Fini()
		return err
	}
	return fe.Run(ctx, world)
}

// runHeadless drives the world on a ticker with no input, logging a status
// line every statusEvery.
func runHeadless(ctx context.Context, cfg *config.Config, res *game.Resources, opts []game.Option, log *zap.Logger) error {
	world, err := game.NewWorld(res, &game.KeyState{}, game.NullRenderer{}, opts...)
	if err != nil {
		return err
	}
	return drive(ctx, world, cfg.Game.TickRate, log)
}

const statusEvery = 5 * time.Second

func drive(ctx context.Context, world *game.World, tickRate int, log *zap.Logger) error {
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()
	status := time.NewTicker(statusEvery)
	defer status.Stop()

	dt := 1 / float64(tickRate)
	elapsed := 0.0
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			elapsed += dt
			if err := world.Update(dt, elapsed); err != nil {
				return err
			}
		case <-status.C:
			stats := world.Stats()
			log.Info("status",
				zap.Float64("elapsed", elapsed),
				zap.Int("tanks", stats.Tanks),
				zap.Int("bullets", stats.Bullets),
				zap.Uint64("digest", world.Digest()))
		}
	}
}
