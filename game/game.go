// Package game runs the predator/prey population engine on a toroidal grid.
package game

import (
	"log/slog"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/torus/components"
	"github.com/pthm-cable/torus/config"
	"github.com/pthm-cable/torus/rng"
	"github.com/pthm-cable/torus/systems"
	"github.com/pthm-cable/torus/telemetry"
)

// Options configures a new Game.
type Options struct {
	Seed   uint64         // RNG seed; the whole run is reproducible from it
	Config *config.Config // nil uses config.Cfg()

	LogStats      bool                        // log window and perf stats via slog
	Output        *telemetry.OutputManager    // optional CSV output, owned by the caller
	StatsCallback func(telemetry.WindowStats) // called after every stats window
}

// Game holds the complete simulation state.
// All methods must be called from a single goroutine.
type Game struct {
	cfg   *config.Config
	rules systems.Rules
	world *ecs.World
	rng   *rng.Source
	grid  *systems.Grid

	agentMap    *ecs.Map2[components.Vitals, components.Organism]
	agentFilter *ecs.Filter2[components.Vitals, components.Organism]
	vitalsMap   *ecs.Map1[components.Vitals]
	orgMap      *ecs.Map1[components.Organism]

	// Telemetry
	collector     *telemetry.Collector
	perf          *telemetry.PerfCollector
	bookmarks     *telemetry.BookmarkDetector
	lifetime      *telemetry.LifetimeTracker
	output        *telemetry.OutputManager
	statsCallback func(telemetry.WindowStats)
	logStats      bool
	lastStats     telemetry.WindowStats

	// State
	tick   int32
	nextID uint32
	counts [components.NumSpecies]int
}

// NewGame creates an empty game with the grid size from the config.
// Populate it with Seed or AddAgentAt before the first Update.
func NewGame(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}
	// Resize edits the world section, so keep a private copy
	cfg = cfg.Clone()

	world := ecs.NewWorld()

	g := &Game{
		cfg: cfg,
		rules: systems.Rules{
			ContestBonus:     cfg.Interaction.ContestBonus,
			PreyDefenseBonus: cfg.Interaction.PreyDefenseBonus,
		},
		world: world,
		rng:   rng.New(opts.Seed),
		grid:  systems.NewGrid(cfg.World.Width, cfg.World.Height),

		agentMap:    ecs.NewMap2[components.Vitals, components.Organism](world),
		agentFilter: ecs.NewFilter2[components.Vitals, components.Organism](world),
		vitalsMap:   ecs.NewMap1[components.Vitals](world),
		orgMap:      ecs.NewMap1[components.Organism](world),

		collector:     telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perf:          telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		bookmarks:     telemetry.NewBookmarkDetector(cfg.Telemetry.BookmarkHistorySize),
		lifetime:      telemetry.NewLifetimeTracker(),
		output:        opts.Output,
		statsCallback: opts.StatsCallback,
		logStats:      opts.LogStats,

		nextID: 1, // zero means "no parent"
	}

	if err := g.output.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config", "error", err)
	}

	return g
}

// Config returns the game's private configuration.
func (g *Game) Config() *config.Config {
	return g.cfg
}

// RNGSeed returns the seed the game was created with.
func (g *Game) RNGSeed() uint64 {
	return g.rng.Seed()
}

// Perf returns the rolling performance statistics.
func (g *Game) Perf() telemetry.PerfStats {
	return g.perf.Stats()
}

// RecordFrame feeds frame timing from a graphical driver into the perf stats.
func (g *Game) RecordFrame() {
	g.perf.RecordFrame()
}

// LastStats returns the most recently flushed stats window.
func (g *Game) LastStats() telemetry.WindowStats {
	return g.lastStats
}
