package game

import (
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/torus/components"
	"github.com/pthm-cable/torus/systems"
)

// AgentView is a read-only copy of one agent's state.
type AgentView struct {
	ID         uint32             `json:"id"`
	Species    components.Species `json:"species"`
	Energy     float64            `json:"energy"`
	Strength   float64            `json:"strength"`
	Generation uint32             `json:"generation"`
	Age        int32              `json:"age"`

	// Lifetime record
	Kills        int     `json:"kills"`
	ContestsWon  int     `json:"contests_won"`
	Children     int     `json:"children"`
	PeakStrength float64 `json:"peak_strength"`
}

// Cell is the content of one grid cell in a Frame.
type Cell int8

const (
	CellEmpty Cell = iota
	CellPredator
	CellPrey
)

// cellOf maps a species to its frame cell value.
func cellOf(s components.Species) Cell {
	switch s {
	case components.SpeciesPredator:
		return CellPredator
	case components.SpeciesPrey:
		return CellPrey
	}
	return CellEmpty
}

// Frame is an immutable snapshot of the grid for renderers.
// Cells is row-major, Width*Height long.
type Frame struct {
	Tick      int32  `json:"tick"`
	Width     int    `json:"width"`
	Height    int    `json:"height"`
	Predators int    `json:"predators"`
	Prey      int    `json:"prey"`
	Cells     []Cell `json:"cells"`
}

// At returns the cell at (x, y).
func (f Frame) At(x, y int) Cell {
	return f.Cells[y*f.Width+x]
}

// Width returns the number of grid columns.
func (g *Game) Width() int { return g.grid.Width() }

// Height returns the number of grid rows.
func (g *Game) Height() int { return g.grid.Height() }

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 { return g.tick }

// PredatorCount returns the number of living predators.
func (g *Game) PredatorCount() int { return g.counts[components.SpeciesPredator] }

// PreyCount returns the number of living prey.
func (g *Game) PreyCount() int { return g.counts[components.SpeciesPrey] }

// IsOccupied reports whether p holds an agent. Panics if p is outside the grid.
func (g *Game) IsOccupied(p systems.Pos) bool {
	return g.grid.IsOccupied(p)
}

// SpeciesAt returns the species of the agent at p.
func (g *Game) SpeciesAt(p systems.Pos) (components.Species, bool) {
	e, ok := g.grid.At(p)
	if !ok {
		return 0, false
	}
	return g.orgMap.Get(e).Species, true
}

// AgentAt returns a copy of the agent at p.
func (g *Game) AgentAt(p systems.Pos) (AgentView, bool) {
	e, ok := g.grid.At(p)
	if !ok {
		return AgentView{}, false
	}
	return g.view(e), true
}

// ForEachAgent calls fn for every agent in row-major order.
// fn must not call Update.
func (g *Game) ForEachAgent(fn func(systems.Pos, AgentView)) {
	g.grid.ForEach(func(p systems.Pos, e ecs.Entity) {
		fn(p, g.view(e))
	})
}

func (g *Game) view(e ecs.Entity) AgentView {
	v, org := g.agentMap.Get(e)
	view := AgentView{
		ID:           org.ID,
		Species:      org.Species,
		Energy:       v.Energy,
		Strength:     v.Strength,
		Generation:   org.Generation,
		Age:          g.tick - org.BirthTick,
		PeakStrength: v.Strength,
	}
	if st := g.lifetime.Get(org.ID); st != nil {
		view.Kills = st.Kills
		view.ContestsWon = st.ContestsWon
		view.Children = st.Children
		view.PeakStrength = max(st.PeakStrength, v.Strength)
	}
	return view
}

// Frame builds a snapshot of cell occupancy that is safe to hand to
// another goroutine.
func (g *Game) Frame() Frame {
	f := Frame{
		Tick:      g.tick,
		Width:     g.grid.Width(),
		Height:    g.grid.Height(),
		Predators: g.PredatorCount(),
		Prey:      g.PreyCount(),
		Cells:     make([]Cell, g.grid.Len()),
	}
	g.grid.ForEach(func(p systems.Pos, e ecs.Entity) {
		f.Cells[p.Y*f.Width+p.X] = cellOf(g.orgMap.Get(e).Species)
	})
	return f
}
