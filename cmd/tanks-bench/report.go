package main

import (
	"fmt"
	"io"
	"runtime"
	"sort"
	"text/template"
	"time"

	"github.com/plus3/tanks/game"
)

type Report struct {
	// Configuration
	Duration       time.Duration
	Seed           uint64
	Width, Height  int
	Settings       game.Settings
	GCPauseMetrics bool

	// Results
	TotalUpdates  int64
	TotalTime     time.Duration
	SimulatedTime time.Duration
	UpdateTime    Stats
	World         game.Stats
	Digest        uint64
	MemStatsStart runtime.MemStats
	MemStatsEnd   runtime.MemStats
}

type Stats struct {
	Min     time.Duration
	Max     time.Duration
	Avg     time.Duration
	P99     time.Duration
	Samples []time.Duration
}

func (s *Stats) Finalize() {
	if len(s.Samples) == 0 {
		return
	}

	var total time.Duration
	s.Min = s.Samples[0]
	s.Max = s.Samples[0]

	for _, sample := range s.Samples {
		if sample < s.Min {
			s.Min = sample
		}
		if sample > s.Max {
			s.Max = sample
		}
		total += sample
	}
	s.Avg = total / time.Duration(len(s.Samples))

	sorted := append([]time.Duration(nil), s.Samples...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i] < sorted[j] })
	s.P99 = sorted[len(sorted)*99/100]
}

// Speedup is simulated time over wall time.
func (r *Report) Speedup() float64 {
	if r.TotalTime <= 0 {
		return 0
	}
	return r.SimulatedTime.Seconds() / r.TotalTime.Seconds()
}

const reportTemplate = `
# Tanks Benchmark Report

## Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Arena:** {{.Width}}x{{.Height}}
- **Players / Bots:** {{.Settings.Players}} / {{.Settings.Bots}} ({{.Settings.AI}} AI)

## Performance Results
- **Total Updates:** {{.TotalUpdates}}
- **Total Test Time:** {{.TotalTime}}
- **Simulated Time:** {{.SimulatedTime}} ({{printf "%.1f" .Speedup}}x real time)
- **Update Time (Frame):**
  - **Avg:** {{.UpdateTime.Avg}}
  - **Min:** {{.UpdateTime.Min}}
  - **Max:** {{.UpdateTime.Max}}
  - **P99:** {{.UpdateTime.P99}}

## Systems
| System | Runs | Avg | Min | Max | Total |
|---|---|---|---|---|---|
{{- range .World.Scheduler.Systems}}
| {{.Name}} | {{.ExecutionCount}} | {{.AvgDuration}} | {{.MinDuration}} | {{.MaxDuration}} | {{.TotalDuration}} |
{{- end}}

## Final State
- **Entities:** {{.World.Storage.EntityCount}}
- **Tanks:** {{.World.Tanks}} ({{.World.Players}} players, {{.World.Bots}} bots)
- **Bullets:** {{.World.Bullets}}
- **Barriers:** {{.World.Barriers}}
- **Digest:** {{hex .Digest}}

| Component | Rows | Holes | Blocks |
|---|---|---|---|
{{- range .World.Storage.Components}}
| {{.Name}} | {{.Rows}} | {{.Holes}} | {{.Blocks}} |
{{- end}}

## Memory Usage (MiB)
- Heap Alloc:     {{mb .MemStatsStart.HeapAlloc}} (start) -> {{mb .MemStatsEnd.HeapAlloc}} (end)
- Total Alloc:    {{mb .MemStatsStart.TotalAlloc}} (start) -> {{mb .MemStatsEnd.TotalAlloc}} (end) -> delta: {{mb (bsub .MemStatsEnd.TotalAlloc .MemStatsStart.TotalAlloc)}}
- Sys Memory:     {{mb .MemStatsStart.Sys}} (start) -> {{mb .MemStatsEnd.Sys}} (end)
- Num GC:         {{.MemStatsStart.NumGC}} (start) -> {{.MemStatsEnd.NumGC}} (end) -> delta: {{usub .MemStatsEnd.NumGC .MemStatsStart.NumGC}}
{{if .GCPauseMetrics}}
## GC Pause Durations
- **Total GC Pause:** {{bsub .MemStatsEnd.PauseTotalNs .MemStatsStart.PauseTotalNs | ns}}
- **Num GC Cycles:** {{ usub .MemStatsEnd.NumGC .MemStatsStart.NumGC }}
{{end}}
`

func (r *Report) Generate(w io.Writer) error {
	fm := template.FuncMap{
		"mb": func(v any) string {
			switch val := v.(type) {
			case uint64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			case int64:
				return fmt.Sprintf("%.2f", float64(val)/1024/1024)
			default:
				return "N/A"
			}
		},
		"bsub": func(a, b uint64) int64 {
			return int64(a) - int64(b)
		},
		"usub": func(a, b uint32) uint32 {
			return a - b
		},
		"ns": func(ns int64) string {
			return time.Duration(ns).String()
		},
		"hex": func(v uint64) string {
			return fmt.Sprintf("%016x", v)
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
