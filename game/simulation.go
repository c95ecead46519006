package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/torus/components"
	"github.com/pthm-cable/torus/systems"
	"github.com/pthm-cable/torus/telemetry"
)

// Update advances the simulation by one tick.
//
// The tick runs two passes, each over a fresh random permutation of all
// cells. The accrual pass feeds every agent. The action pass visits each
// cell that is occupied at the moment it is reached and lets its agent move,
// hunt, face the death check and reproduce. Agents see each other's effects
// immediately, but each takes at most one turn per tick: an agent that moves
// onto a cell not yet visited is skipped there, and offspring wait for the
// next tick.
func (g *Game) Update() {
	g.perf.StartTick()

	g.perf.StartPhase(telemetry.PhaseAccrual)
	g.accrue()

	g.perf.StartPhase(telemetry.PhaseAction)
	g.grid.ForEachOccupied(g.rng.Perm(g.grid.Len()), g.act)

	g.tick++

	g.perf.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perf.EndTick()
}

// accrue adds the per-tick energy to every agent.
func (g *Game) accrue() {
	gain := g.cfg.Energy.AccrualPerTick
	g.grid.ForEachOccupied(g.rng.Perm(g.grid.Len()), func(_ systems.Pos, e ecs.Entity) {
		g.vitalsMap.Get(e).Energy += gain
	})
}

// act runs one agent's turn.
func (g *Game) act(pos systems.Pos, e ecs.Entity) {
	org := g.orgMap.Get(e)
	if org.ActedTick == g.tick {
		return
	}
	org.ActedTick = g.tick

	pos, alive := g.move(e, pos)
	if !alive {
		return
	}

	switch g.orgMap.Get(e).Species {
	case components.SpeciesPredator:
		if !g.predationSweep(e, pos) {
			return
		}
	case components.SpeciesPrey:
	}

	if g.vitalsMap.Get(e).Strength < g.cfg.Survival.DeathThreshold {
		g.grid.Extract(pos)
		g.destroy(e, telemetry.CauseCulled)
		return
	}

	g.reproduce(e, pos)
}

// reproduce lets the agent at pos split if it can afford to. The child
// settles on a random neighbor of pos and fights its occupant as initiator.
// Returns the child and whether it survived; the zero entity if no child
// was born.
func (g *Game) reproduce(e ecs.Entity, pos systems.Pos) (ecs.Entity, bool) {
	child, ok := g.checkReproduction(e)
	if !ok {
		return ecs.Entity{}, false
	}
	return child, g.settle(child, g.grid.RandomNeighbor(pos, g.rng))
}

// move lifts e off from and tries to settle it on a random neighbor.
// Returns the agent's new position and whether it survived.
func (g *Game) move(e ecs.Entity, from systems.Pos) (systems.Pos, bool) {
	g.grid.Extract(from)
	to := g.grid.RandomNeighbor(from, g.rng)
	return to, g.settle(e, to)
}

// settle places an off-grid agent on target. If target is occupied, the
// agent fights the incumbent as initiator and takes the cell only if it
// wins. Returns whether the agent survived.
func (g *Game) settle(e ecs.Entity, target systems.Pos) bool {
	incumbent, occupied := g.grid.At(target)
	if !occupied {
		g.grid.Place(e, target)
		return true
	}

	if g.resolveInteraction(e, incumbent) == incumbent {
		return false
	}
	g.grid.Extract(target)
	g.grid.Place(e, target)
	return true
}

// predationSweep lets a predator at pos attack prey among random neighbor
// draws. A predator that kills nothing and survives loses a fraction of its
// strength. Returns whether the predator survived.
func (g *Game) predationSweep(e ecs.Entity, pos systems.Pos) bool {
	kills := 0
	for range g.cfg.Survival.PredationSamples {
		target := g.grid.RandomNeighbor(pos, g.rng)
		prey, ok := g.grid.At(target)
		if !ok || prey == e || g.orgMap.Get(prey).Species != components.SpeciesPrey {
			continue
		}

		if g.resolveInteraction(e, prey) != e {
			g.grid.Extract(pos)
			return false
		}
		g.grid.Extract(target)
		kills++
	}

	if kills == 0 {
		v := g.vitalsMap.Get(e)
		loss := v.Strength * g.cfg.Survival.StarvationDecay
		v.Strength -= loss
		g.record(telemetry.NewStarvationEvent(g.tick, g.orgMap.Get(e).ID, loss))
	}
	return true
}
