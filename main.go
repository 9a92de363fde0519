package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/solhaven/stargarden/config"
	"github.com/solhaven/stargarden/sim"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int64("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per loop iteration (higher = faster batch runs)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Use config stats window if not overridden by CLI
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	s, err := sim.New(sim.Options{
		Seed:      rngSeed,
		Config:    cfg,
		LogStats:  *logStats,
		OutputDir: *outputDir,
	})
	if err != nil {
		slog.Error("failed to create simulation", "error", err)
		os.Exit(1)
	}
	defer s.Close()

	s.SeedUniverse(cfg.Physics, cfg.Universe)

	slog.Info("starting simulation",
		"seed", rngSeed,
		"bodies", s.BodyCount(),
		"max_ticks", *maxTicks,
		"steps_per_update", *stepsPerUpdate,
	)

	// Fixed-step loop. The tick delta is the configured step scaled by the
	// speed multiplier and clamped so a single tick never integrates more
	// than MaxDT seconds.
	dt := cfg.Physics.DT * cfg.Physics.SpeedMultiplier
	if dt > cfg.Physics.MaxDT {
		dt = cfg.Physics.MaxDT
	}

	logEveryTicks := int64(cfg.Telemetry.LogEvery / cfg.Physics.DT)
	if logEveryTicks < 1 {
		logEveryTicks = 1
	}

	for {
		in := sim.Inputs{
			Physics:         cfg.Physics,
			SpawnMultiplier: cfg.Life.SpawnMultiplier,
			EvolutionSpeed:  cfg.Life.EvolutionSpeed,
		}
		for i := 0; i < *stepsPerUpdate; i++ {
			s.Tick(dt, in)
		}

		if logEveryTicks > 0 && s.TickCount()%logEveryTicks < int64(*stepsPerUpdate) {
			s.LogWorldState()
		}

		if *maxTicks > 0 && s.TickCount() >= *maxTicks {
			slog.Info("max ticks reached", "tick", s.TickCount())
			return
		}
	}
}
