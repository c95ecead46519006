// Package telemetry provides population statistics, performance timing and bookmarks.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/torus/components"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventBirth EventType = iota
	EventDeath
	EventHunt
	EventContest
	EventStarvation
)

func (t EventType) String() string {
	switch t {
	case EventBirth:
		return "birth"
	case EventDeath:
		return "death"
	case EventHunt:
		return "hunt"
	case EventContest:
		return "contest"
	case EventStarvation:
		return "starvation"
	}
	return "unknown"
}

// DeathCause records why an agent was destroyed. Every death has exactly one.
type DeathCause uint8

const (
	CauseContest  DeathCause = iota // Lost a same-kind fight for a cell
	CauseEaten                      // Prey absorbed by a predator
	CauseRepelled                   // Predator that attacked a stronger prey
	CauseCulled                     // Strength fell below the death threshold
	NumCauses
)

func (c DeathCause) String() string {
	switch c {
	case CauseContest:
		return "contest"
	case CauseEaten:
		return "eaten"
	case CauseRepelled:
		return "repelled"
	case CauseCulled:
		return "culled"
	}
	return "unknown"
}

// Event is one thing that happened to an agent during a tick.
type Event struct {
	Type     EventType
	Tick     int32
	EntityID uint32
	Species  components.Species

	// Optional fields depending on event type
	TargetID uint32     // other party of a hunt or contest
	Cause    DeathCause // death events only
	Success  bool       // hunt events: the prey died
	Amount   float64    // strength gained (hunt, contest) or lost (starvation)
}

// NewBirthEvent creates a birth event. parentID is zero for seeded agents.
func NewBirthEvent(tick int32, id uint32, s components.Species, parentID uint32) Event {
	return Event{Type: EventBirth, Tick: tick, EntityID: id, Species: s, TargetID: parentID}
}

// NewDeathEvent creates a death event.
func NewDeathEvent(tick int32, id uint32, s components.Species, cause DeathCause) Event {
	return Event{Type: EventDeath, Tick: tick, EntityID: id, Species: s, Cause: cause}
}

// NewHuntEvent creates a hunt event from the predator's point of view.
func NewHuntEvent(tick int32, predatorID, preyID uint32, success bool, gain float64) Event {
	return Event{
		Type:     EventHunt,
		Tick:     tick,
		EntityID: predatorID,
		Species:  components.SpeciesPredator,
		TargetID: preyID,
		Success:  success,
		Amount:   gain,
	}
}

// NewContestEvent creates a contest event for the winner.
func NewContestEvent(tick int32, winnerID, loserID uint32, s components.Species, gain float64) Event {
	return Event{Type: EventContest, Tick: tick, EntityID: winnerID, Species: s, TargetID: loserID, Amount: gain}
}

// NewStarvationEvent records a predator losing strength after a sweep without kills.
func NewStarvationEvent(tick int32, predatorID uint32, loss float64) Event {
	return Event{Type: EventStarvation, Tick: tick, EntityID: predatorID, Species: components.SpeciesPredator, Amount: loss}
}

// LogValue implements slog.LogValuer for debug traces.
func (e Event) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("type", e.Type.String()),
		slog.Int("tick", int(e.Tick)),
		slog.Uint64("id", uint64(e.EntityID)),
		slog.String("species", e.Species.String()),
	}
	switch e.Type {
	case EventDeath:
		attrs = append(attrs, slog.String("cause", e.Cause.String()))
	case EventHunt:
		attrs = append(attrs, slog.Uint64("target", uint64(e.TargetID)), slog.Bool("success", e.Success), slog.Float64("gain", e.Amount))
	case EventContest:
		attrs = append(attrs, slog.Uint64("target", uint64(e.TargetID)), slog.Float64("gain", e.Amount))
	case EventBirth:
		if e.TargetID != 0 {
			attrs = append(attrs, slog.Uint64("parent", uint64(e.TargetID)))
		}
	case EventStarvation:
		attrs = append(attrs, slog.Float64("loss", e.Amount))
	}
	return slog.GroupValue(attrs...)
}
