package game

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/torus/components"
	"github.com/pthm-cable/torus/config"
	"github.com/pthm-cable/torus/systems"
	"github.com/pthm-cable/torus/telemetry"
)

// lineage identifies the parent of a new agent. The zero value marks a seeded agent.
type lineage struct {
	parentID   uint32
	generation uint32
}

// spawn creates an agent with zero energy and the given strength, then
// applies the creation mutation. The agent is not placed on the grid.
func (g *Game) spawn(s components.Species, strength float64, from lineage) ecs.Entity {
	if !s.Valid() {
		panic(fmt.Sprintf("game: spawn of invalid species %d", uint8(s)))
	}

	id := g.nextID
	g.nextID++

	// Offspring take their first turn on the tick after their birth
	acted := int32(-1)
	if from.parentID != 0 {
		acted = g.tick
	}

	vitals := components.Vitals{Strength: strength}
	org := components.Organism{
		ID:         id,
		Species:    s,
		ParentID:   from.parentID,
		Generation: from.generation,
		BirthTick:  g.tick,
		ActedTick:  acted,
	}
	e := g.agentMap.NewEntity(&vitals, &org)
	g.mutate(e)

	g.counts[s]++
	g.lifetime.Register(id, s, g.tick, from.generation, g.vitalsMap.Get(e).Strength)
	g.record(telemetry.NewBirthEvent(g.tick, id, s, from.parentID))

	return e
}

// mutate perturbs strength by a normal draw scaled by the species sigma.
func (g *Game) mutate(e ecs.Entity) {
	v, org := g.agentMap.Get(e)
	sigma := g.species(org.Species).MutationSigma
	v.Strength += g.rng.Normal(0, sigma)
}

// species returns the behavior table row for s.
func (g *Game) species(s components.Species) config.SpeciesConfig {
	return g.cfg.Derived.SpeciesTable[s]
}

// destroy removes an agent from the world. The caller must already have
// taken it off the grid.
func (g *Game) destroy(e ecs.Entity, cause telemetry.DeathCause) {
	org := *g.orgMap.Get(e)

	if stats := g.lifetime.Remove(org.ID); stats != nil {
		g.collector.RecordLifespan(org.Species, stats.Lifespan(g.tick))
	}
	g.counts[org.Species]--
	g.record(telemetry.NewDeathEvent(g.tick, org.ID, org.Species, cause))

	g.world.RemoveEntity(e)
}

// resolveInteraction fights initiator against defender. The loser is
// destroyed and the winner's strength is credited. Grid slots are left
// untouched for the caller to fix up. Returns the surviving entity.
func (g *Game) resolveInteraction(initiator, defender ecs.Entity) ecs.Entity {
	va, oa := g.agentMap.Get(initiator)
	vb, ob := g.agentMap.Get(defender)

	out := systems.Resolve(oa.Species, ob.Species, va.Strength, vb.Strength, g.rules)

	winner, loser := initiator, defender
	winV, winO, loseO := va, *oa, *ob
	if out.Survivor() == systems.SideSecond {
		winner, loser = defender, initiator
		winV, winO, loseO = vb, *ob, *oa
	}
	winV.Strength += out.Gain
	g.lifetime.UpdateStrength(winO.ID, winV.Strength)

	var cause telemetry.DeathCause
	switch out.Kind {
	case systems.KindContest:
		cause = telemetry.CauseContest
		g.lifetime.RecordContestWin(winO.ID)
		g.record(telemetry.NewContestEvent(g.tick, winO.ID, loseO.ID, winO.Species, out.Gain))
	case systems.KindHunt:
		eaten := loseO.Species == components.SpeciesPrey
		predID, preyID := winO.ID, loseO.ID
		cause = telemetry.CauseEaten
		if !eaten {
			predID, preyID = loseO.ID, winO.ID
			cause = telemetry.CauseRepelled
		} else {
			g.lifetime.RecordKill(winO.ID)
		}
		g.record(telemetry.NewHuntEvent(g.tick, predID, preyID, eaten, out.Gain))
	}

	g.destroy(loser, cause)
	return winner
}

// checkReproduction spends one threshold of energy on a child if the agent
// can afford it. The child inherits species and strength, starts with zero
// energy and is mutated once. It is not placed on the grid.
func (g *Game) checkReproduction(e ecs.Entity) (ecs.Entity, bool) {
	v, org := g.agentMap.Get(e)
	threshold := g.species(org.Species).ReproThreshold
	if v.Energy < threshold {
		return ecs.Entity{}, false
	}
	v.Energy -= threshold

	// Copy out before spawn: creating an entity may move component storage
	s, strength := org.Species, v.Strength
	parent := lineage{parentID: org.ID, generation: org.Generation + 1}

	child := g.spawn(s, strength, parent)
	g.lifetime.RecordChild(parent.parentID)
	return child, true
}
