// Command tanks-bench runs a headless battle as fast as it can and prints a
// Markdown report of update timings, per-system costs and the final state.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime"
	"time"

	"github.com/plus3/tanks/config"
	"github.com/plus3/tanks/game"
	"go.uber.org/zap"
)

// Updates per simulated second. The step is fixed so a seed and tick count
// reproduce the same digest.
const (
	tickRate  = 60
	tickDelta = 1.0 / tickRate
)

type options struct {
	duration       time.Duration
	ticks          int
	seed           uint64
	width, height  int
	settings       game.Settings
	gcPauseMetrics bool
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	opts := options{settings: game.DefaultSettings()}
	var ai, level, out string

	flag.DurationVar(&opts.duration, "duration", 10*time.Second, "The longest the run may take.")
	flag.IntVar(&opts.ticks, "ticks", 0, "Stop after this many updates; 0 runs for the whole duration.")
	flag.Uint64Var(&opts.seed, "seed", 1, "Random seed of the arena.")
	flag.IntVar(&opts.width, "width", 80, "Arena width.")
	flag.IntVar(&opts.height, "height", 60, "Arena height.")
	flag.IntVar(&opts.settings.Bots, "bots", 50, "Bot population.")
	flag.IntVar(&opts.settings.Players, "players", 0, "Idle player tanks.")
	flag.StringVar(&ai, "ai", string(game.AIRandom), "Bot AI: random or scripted.")
	flag.BoolVar(&opts.gcPauseMetrics, "gc-pause-metrics", false, "Enable detailed GC pause metrics in the report.")
	flag.StringVar(&level, "log-level", "info", "Log level.")
	flag.StringVar(&out, "out", "", "Write the report to this file instead of stdout.")
	flag.Parse()
	opts.settings.AI = game.AIMode(ai)

	log, err := config.NewLogger(config.LoggingConfig{Level: level, Format: "console"})
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	defer log.Sync()

	ctx, cancel := context.WithTimeout(context.Background(), opts.duration)
	defer cancel()

	report, err := bench(ctx, opts, log)
	if err != nil {
		return err
	}

	var w io.Writer = os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer f.Close()
		w = f
	}
	if err := report.Generate(w); err != nil {
		return fmt.Errorf("generate report: %w", err)
	}
	log.Info("benchmark complete", zap.Int64("updates", report.TotalUpdates), zap.Duration("time", report.TotalTime))
	return nil
}

func bench(ctx context.Context, opts options, log *zap.Logger) (*Report, error) {
	res, err := game.NewSeededResources(opts.width, opts.height, opts.seed)
	if err != nil {
		return nil, err
	}
	world, err := game.NewWorld(res, &game.KeyState{}, game.NullRenderer{},
		game.WithSettings(opts.settings),
		game.WithLogger(log.Named("world")))
	if err != nil {
		return nil, err
	}

	report := &Report{
		Duration:       opts.duration,
		Seed:           opts.seed,
		Width:          opts.width,
		Height:         opts.height,
		Settings:       opts.settings,
		GCPauseMetrics: opts.gcPauseMetrics,
	}
	runtime.ReadMemStats(&report.MemStatsStart)

	log.Info("running", zap.Duration("duration", opts.duration), zap.Int("ticks", opts.ticks), zap.Uint64("seed", opts.seed))
	start := time.Now()

Loop:
	for opts.ticks == 0 || report.TotalUpdates < int64(opts.ticks) {
		select {
		case <-ctx.Done():
			break Loop
		default:
			elapsed := float64(report.TotalUpdates+1) * tickDelta
			updateStart := time.Now()
			if err := world.Update(tickDelta, elapsed); err != nil {
				return nil, fmt.Errorf("update %d: %w", report.TotalUpdates+1, err)
			}
			report.UpdateTime.Samples = append(report.UpdateTime.Samples, time.Since(updateStart))
			report.TotalUpdates++
		}
	}

	report.TotalTime = time.Since(start)
	report.SimulatedTime = time.Duration(report.TotalUpdates) * time.Second / tickRate
	report.UpdateTime.Finalize()
	runtime.ReadMemStats(&report.MemStatsEnd)

	report.World = world.Stats()
	report.Digest = world.Digest()
	return report, nil
}
