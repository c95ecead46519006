package telemetry

import "github.com/pthm-cable/torus/components"

// Collector accumulates events within windows of ticks and produces WindowStats.
type Collector struct {
	windowTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window, indexed by species where relevant
	births      [components.NumSpecies]int
	deaths      [components.NumSpecies]int
	causes      [NumCauses]int
	hunts       int
	kills       int
	repels      int
	contests    int
	starvations int

	lifespanSum   [components.NumSpecies]int64
	lifespanCount [components.NumSpecies]int
}

// NewCollector creates a collector that flushes every windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	if windowTicks < 1 {
		windowTicks = 1
	}
	return &Collector{windowTicks: int32(windowTicks)}
}

// Record counts a single event.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventBirth:
		c.births[e.Species]++
	case EventDeath:
		c.deaths[e.Species]++
		c.causes[e.Cause]++
	case EventHunt:
		c.hunts++
		if e.Success {
			c.kills++
		} else {
			c.repels++
		}
	case EventContest:
		c.contests++
	case EventStarvation:
		c.starvations++
	}
}

// RecordLifespan adds the age at death of one agent.
func (c *Collector) RecordLifespan(s components.Species, ticks int32) {
	c.lifespanSum[s] += int64(ticks)
	c.lifespanCount[s]++
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowTicks
}

// Population is the state sampled at the end of a window.
type Population struct {
	PredCount, PreyCount         int
	PredStrengths, PreyStrengths []float64
	PredEnergies, PreyEnergies   []float64
	PredMaxGeneration            uint32
	PreyMaxGeneration            uint32
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop Population) WindowStats {
	var killRate float64
	if c.hunts > 0 {
		killRate = float64(c.kills) / float64(c.hunts)
	}

	pred := ComputeDistribution(pop.PredStrengths)
	prey := ComputeDistribution(pop.PreyStrengths)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		PredCount: pop.PredCount,
		PreyCount: pop.PreyCount,

		PredBirths: c.births[components.SpeciesPredator],
		PreyBirths: c.births[components.SpeciesPrey],
		PredDeaths: c.deaths[components.SpeciesPredator],
		PreyDeaths: c.deaths[components.SpeciesPrey],

		DeathsContest:  c.causes[CauseContest],
		DeathsEaten:    c.causes[CauseEaten],
		DeathsRepelled: c.causes[CauseRepelled],
		DeathsCulled:   c.causes[CauseCulled],

		Hunts:       c.hunts,
		Kills:       c.kills,
		Repels:      c.repels,
		KillRate:    killRate,
		Contests:    c.contests,
		Starvations: c.starvations,

		PredStrengthMean: pred.Mean,
		PredStrengthStd:  pred.Std,
		PredStrengthP10:  pred.P10,
		PredStrengthP50:  pred.P50,
		PredStrengthP90:  pred.P90,

		PreyStrengthMean: prey.Mean,
		PreyStrengthStd:  prey.Std,
		PreyStrengthP10:  prey.P10,
		PreyStrengthP50:  prey.P50,
		PreyStrengthP90:  prey.P90,

		PredEnergyMean: Mean(pop.PredEnergies),
		PreyEnergyMean: Mean(pop.PreyEnergies),

		PredLifespanMean: c.meanLifespan(components.SpeciesPredator),
		PreyLifespanMean: c.meanLifespan(components.SpeciesPrey),

		PredMaxGeneration: pop.PredMaxGeneration,
		PreyMaxGeneration: pop.PreyMaxGeneration,
	}

	// Reset for next window
	*c = Collector{windowTicks: c.windowTicks, windowStartTick: currentTick}

	return stats
}

func (c *Collector) meanLifespan(s components.Species) float64 {
	if c.lifespanCount[s] == 0 {
		return 0
	}
	return float64(c.lifespanSum[s]) / float64(c.lifespanCount[s])
}

// WindowTicks returns the number of ticks per window.
func (c *Collector) WindowTicks() int32 {
	return c.windowTicks
}
