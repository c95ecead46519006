// Package systems provides the grid and the interaction rules of the simulation.
package systems

import (
	"fmt"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/torus/rng"
)

// Pos addresses one grid cell.
type Pos struct {
	X, Y int
}

func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// mooreOffsets lists the eight neighbor offsets in a fixed order.
var mooreOffsets = [8]Pos{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// Grid is a fixed-size toroidal array of agent slots.
// Each slot holds at most one entity; the zero entity marks an empty slot.
// The grid owns placement only: creating and destroying entities is the
// caller's job.
type Grid struct {
	width  int
	height int
	slots  []ecs.Entity
	count  int
}

// NewGrid creates an empty grid. Panics on non-positive dimensions.
func NewGrid(width, height int) *Grid {
	if width < 1 || height < 1 {
		panic(fmt.Sprintf("systems: invalid grid size %dx%d", width, height))
	}
	return &Grid{
		width:  width,
		height: height,
		slots:  make([]ecs.Entity, width*height),
	}
}

// Width returns the number of columns.
func (g *Grid) Width() int { return g.width }

// Height returns the number of rows.
func (g *Grid) Height() int { return g.height }

// Len returns the number of slots.
func (g *Grid) Len() int { return len(g.slots) }

// Count returns the number of occupied slots.
func (g *Grid) Count() int { return g.count }

// InBounds reports whether p addresses a slot without wrapping.
func (g *Grid) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < g.width && p.Y >= 0 && p.Y < g.height
}

// Index flattens p into a slot index (row-major). Panics if p is out of range.
func (g *Grid) Index(p Pos) int {
	if !g.InBounds(p) {
		panic(fmt.Sprintf("systems: position %v outside %dx%d grid", p, g.width, g.height))
	}
	return p.Y*g.width + p.X
}

// PosOf converts a slot index back to a position. Panics if i is out of range.
func (g *Grid) PosOf(i int) Pos {
	if i < 0 || i >= len(g.slots) {
		panic(fmt.Sprintf("systems: index %d outside grid of %d slots", i, len(g.slots)))
	}
	return Pos{X: i % g.width, Y: i / g.width}
}

// Wrap maps any coordinates onto the torus.
func (g *Grid) Wrap(x, y int) Pos {
	return Pos{X: wrap(x, g.width), Y: wrap(y, g.height)}
}

func wrap(v, n int) int {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}

// IsOccupied reports whether the slot at p holds an agent.
func (g *Grid) IsOccupied(p Pos) bool {
	return !g.slots[g.Index(p)].IsZero()
}

// At returns the occupant of p without removing it.
func (g *Grid) At(p Pos) (ecs.Entity, bool) {
	e := g.slots[g.Index(p)]
	return e, !e.IsZero()
}

// Extract removes and returns the occupant of p, leaving the slot empty.
// Returns false if the slot was already empty.
func (g *Grid) Extract(p Pos) (ecs.Entity, bool) {
	i := g.Index(p)
	e := g.slots[i]
	if e.IsZero() {
		return e, false
	}
	g.slots[i] = ecs.Entity{}
	g.count--
	return e, true
}

// Place puts e into the empty slot at p.
// Panics if the slot is occupied: callers must extract or check first.
func (g *Grid) Place(e ecs.Entity, p Pos) {
	if e.IsZero() {
		panic(fmt.Sprintf("systems: place of zero entity at %v", p))
	}
	i := g.Index(p)
	if !g.slots[i].IsZero() {
		panic(fmt.Sprintf("systems: place on occupied slot %v", p))
	}
	g.slots[i] = e
	g.count++
}

// Neighbors returns the eight toroidally adjacent cells of p.
// On grids narrower than three cells some entries repeat, and on a
// one-wide axis p itself appears.
func (g *Grid) Neighbors(p Pos) [8]Pos {
	var ns [8]Pos
	for i, o := range mooreOffsets {
		ns[i] = g.Wrap(p.X+o.X, p.Y+o.Y)
	}
	return ns
}

// RandomNeighbor picks one of the eight Moore neighbors of p uniformly.
func (g *Grid) RandomNeighbor(p Pos, r *rng.Source) Pos {
	o := mooreOffsets[r.Intn(len(mooreOffsets))]
	return g.Wrap(p.X+o.X, p.Y+o.Y)
}

// ForEachOccupied visits slots in the given order, calling fn for each slot
// that is occupied at the moment it is visited. fn may move, add or remove
// agents; slots emptied before their turn are skipped.
func (g *Grid) ForEachOccupied(order []int, fn func(Pos, ecs.Entity)) {
	for _, i := range order {
		e := g.slots[i]
		if e.IsZero() {
			continue
		}
		fn(g.PosOf(i), e)
	}
}

// ForEach visits every occupied slot in storage order.
func (g *Grid) ForEach(fn func(Pos, ecs.Entity)) {
	for i, e := range g.slots {
		if e.IsZero() {
			continue
		}
		fn(g.PosOf(i), e)
	}
}

// Adjacent reports whether b is within the Moore neighborhood of a.
func (g *Grid) Adjacent(a, b Pos) bool {
	for _, n := range g.Neighbors(a) {
		if n == b {
			return true
		}
	}
	return false
}
