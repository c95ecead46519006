package game

import (
	"log/slog"

	"github.com/pthm-cable/torus/components"
	"github.com/pthm-cable/torus/telemetry"
)

// record feeds an event to the collector and the debug log.
func (g *Game) record(e telemetry.Event) {
	g.collector.Record(e)
	slog.Debug("agent", "event", e)
}

// flushTelemetry closes the stats window when it is due and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.samplePopulation())
	perfStats := g.perf.Stats()
	g.lastStats = stats

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if err := g.output.WriteTelemetry(stats); err != nil {
		slog.Error("failed to write telemetry", "error", err)
	}
	if err := g.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		slog.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarks.Check(stats) {
		if g.logStats {
			bm.LogBookmark()
		}
		if err := g.output.WriteBookmark(bm); err != nil {
			slog.Error("failed to write bookmark", "error", err)
		}
	}
}

// samplePopulation collects per-species strength and energy values.
func (g *Game) samplePopulation() telemetry.Population {
	pop := telemetry.Population{
		PredCount:         g.counts[components.SpeciesPredator],
		PreyCount:         g.counts[components.SpeciesPrey],
		PredMaxGeneration: g.lifetime.MaxGeneration(components.SpeciesPredator),
		PreyMaxGeneration: g.lifetime.MaxGeneration(components.SpeciesPrey),
	}

	query := g.agentFilter.Query()
	for query.Next() {
		v, org := query.Get()
		g.lifetime.UpdateStrength(org.ID, v.Strength)

		switch org.Species {
		case components.SpeciesPredator:
			pop.PredStrengths = append(pop.PredStrengths, v.Strength)
			pop.PredEnergies = append(pop.PredEnergies, v.Energy)
		case components.SpeciesPrey:
			pop.PreyStrengths = append(pop.PreyStrengths, v.Strength)
			pop.PreyEnergies = append(pop.PreyEnergies, v.Energy)
		}
	}

	return pop
}
