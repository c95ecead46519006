package game

import (
	"errors"
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/torus/components"
	"github.com/pthm-cable/torus/systems"
)

// ErrGridFull is returned by Seed when there are fewer free cells than agents.
var ErrGridFull = errors.New("game: not enough free cells")

// Resize replaces the grid with an empty one of the given size.
// Only allowed before any agent exists and before the first tick.
func (g *Game) Resize(width, height int) error {
	if g.tick > 0 || g.grid.Count() > 0 {
		return fmt.Errorf("game: resize to %dx%d after the simulation started", width, height)
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("game: invalid grid size %dx%d", width, height)
	}

	g.grid = systems.NewGrid(width, height)
	g.cfg.World.Width = width
	g.cfg.World.Height = height
	g.cfg.ComputeDerived()
	return nil
}

// AddAgentAt creates an agent of species s at p with the species base
// strength, mutated once. Panics if p is occupied or outside the grid.
func (g *Game) AddAgentAt(s components.Species, p systems.Pos) ecs.Entity {
	if g.grid.IsOccupied(p) {
		panic(fmt.Sprintf("game: AddAgentAt on occupied cell %v", p))
	}
	e := g.spawn(s, g.species(s).BaseStrength, lineage{})
	g.grid.Place(e, p)
	return e
}

// Seed places predators and prey on distinct random free cells.
// Predators are placed first. Returns ErrGridFull, and places nothing, if
// the grid lacks room.
func (g *Game) Seed(predators, prey int) error {
	if predators < 0 || prey < 0 {
		return fmt.Errorf("game: negative seed counts %d/%d", predators, prey)
	}
	free := g.grid.Len() - g.grid.Count()
	if predators+prey > free {
		return fmt.Errorf("%w: %d agents for %d cells", ErrGridFull, predators+prey, free)
	}

	cells := make([]systems.Pos, 0, predators+prey)
	for _, i := range g.rng.Perm(g.grid.Len()) {
		if len(cells) == predators+prey {
			break
		}
		if p := g.grid.PosOf(i); !g.grid.IsOccupied(p) {
			cells = append(cells, p)
		}
	}

	for i, p := range cells {
		s := components.SpeciesPrey
		if i < predators {
			s = components.SpeciesPredator
		}
		g.AddAgentAt(s, p)
	}
	return nil
}
