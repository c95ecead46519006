package telemetry

import "github.com/pthm-cable/torus/components"

// LifetimeStats tracks per-agent statistics over its lifetime.
type LifetimeStats struct {
	Species    components.Species
	BirthTick  int32
	Generation uint32

	Kills        int // prey absorbed (predators only)
	ContestsWon  int
	Children     int
	PeakStrength float64
}

// Lifespan returns how many ticks the agent lived as of tick.
func (s *LifetimeStats) Lifespan(tick int32) int32 {
	return tick - s.BirthTick
}

// LifetimeTracker manages per-agent lifetime statistics keyed by agent ID.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register starts tracking a newly created agent.
func (lt *LifetimeTracker) Register(id uint32, s components.Species, birthTick int32, generation uint32, strength float64) {
	lt.stats[id] = &LifetimeStats{
		Species:      s,
		BirthTick:    birthTick,
		Generation:   generation,
		PeakStrength: strength,
	}
}

// Get returns the lifetime stats for an agent, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove stops tracking an agent and returns its final stats.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordKill increments the kill count.
func (lt *LifetimeTracker) RecordKill(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.Kills++
	}
}

// RecordContestWin increments the contest win count.
func (lt *LifetimeTracker) RecordContestWin(id uint32) {
	if s := lt.stats[id]; s != nil {
		s.ContestsWon++
	}
}

// RecordChild increments the children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// UpdateStrength tracks peak strength.
func (lt *LifetimeTracker) UpdateStrength(id uint32, strength float64) {
	if s := lt.stats[id]; s != nil && strength > s.PeakStrength {
		s.PeakStrength = strength
	}
}

// MaxGeneration returns the deepest generation among living agents of a species.
func (lt *LifetimeTracker) MaxGeneration(s components.Species) uint32 {
	var best uint32
	for _, st := range lt.stats {
		if st.Species == s && st.Generation > best {
			best = st.Generation
		}
	}
	return best
}
