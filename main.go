package main

import (
	"flag"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/torus/config"
	"github.com/pthm-cable/torus/game"
	"github.com/pthm-cable/torus/telemetry"
	"github.com/pthm-cable/torus/ui"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Int("stats-window", 0, "Stats window size in ticks (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	seed := flag.Uint64("seed", 0, "RNG seed (0 = time-based)")
	maxTicks := flag.Int("max-ticks", 0, "Stop after N ticks (0 = unlimited)")
	stepsPerUpdate := flag.Int("steps-per-update", 1, "Simulation ticks per rendered frame")
	debug := flag.Bool("debug", false, "Log every birth, death and interaction")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	level := slog.LevelInfo
	if *debug {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()
	if *statsWindow > 0 {
		cfg.Telemetry.StatsWindow = *statsWindow
	}

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = uint64(time.Now().UnixNano())
	}

	output, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}

	g, err := newSimulation(cfg, rngSeed, *logStats, output)
	if err != nil {
		slog.Error("failed to seed population", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := output.Close(); err != nil {
			slog.Error("failed to close output files", "error", err)
		}
	}()

	slog.Info("starting simulation",
		"seed", rngSeed,
		"width", g.Width(),
		"height", g.Height(),
		"predators", g.PredatorCount(),
		"prey", g.PreyCount(),
		"headless", *headless,
		"max_ticks", *maxTicks,
	)

	done := func() bool {
		return *maxTicks > 0 && int(g.Tick()) >= *maxTicks
	}

	if *headless {
		// Pure CPU simulation, no raylib needed
		for !done() {
			g.Update()
			if g.PredatorCount()+g.PreyCount() == 0 {
				slog.Info("population extinct", "tick", g.Tick())
				break
			}
		}
	} else {
		viewer := ui.NewViewer(g, cfg.Screen.CellSize, cfg.Screen.PanelWidth, *stepsPerUpdate)
		w, h := viewer.ScreenSize()
		rl.InitWindow(w, h, "Torus")
		defer rl.CloseWindow()

		rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))

		for !rl.WindowShouldClose() && !done() {
			viewer.Frame()
		}
	}

	slog.Info("simulation finished",
		"tick", g.Tick(),
		"predators", g.PredatorCount(),
		"prey", g.PreyCount(),
	)
}

// newSimulation creates a game writing to output and seeds the configured
// population. On error output has already been closed.
func newSimulation(cfg *config.Config, seed uint64, logStats bool, output *telemetry.OutputManager) (*game.Game, error) {
	g := game.NewGame(game.Options{
		Seed:     seed,
		Config:   cfg,
		LogStats: logStats,
		Output:   output,
	})
	if err := g.Seed(cfg.Population.InitialPredators, cfg.Population.InitialPrey); err != nil {
		if cerr := output.Close(); cerr != nil {
			slog.Error("failed to close output files", "error", cerr)
		}
		return nil, err
	}
	return g, nil
}
