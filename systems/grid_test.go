package systems

import (
	"testing"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/torus/components"
	"github.com/pthm-cable/torus/rng"
)

// newEntities creates n plain entities for slot tests.
func newEntities(t *testing.T, n int) []ecs.Entity {
	t.Helper()
	world := ecs.NewWorld()
	mapper := ecs.NewMap1[components.Vitals](world)
	es := make([]ecs.Entity, n)
	for i := range es {
		es[i] = mapper.NewEntity(&components.Vitals{Strength: float64(i)})
	}
	return es
}

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestGridPlaceExtract(t *testing.T) {
	g := NewGrid(4, 3)
	es := newEntities(t, 2)
	p := Pos{X: 2, Y: 1}

	if g.IsOccupied(p) {
		t.Fatal("new grid should be empty")
	}

	g.Place(es[0], p)
	if !g.IsOccupied(p) {
		t.Error("slot should be occupied after Place")
	}
	if g.Count() != 1 {
		t.Errorf("count = %d, want 1", g.Count())
	}
	if e, ok := g.At(p); !ok || e != es[0] {
		t.Errorf("At = %v,%v, want %v,true", e, ok, es[0])
	}

	e, ok := g.Extract(p)
	if !ok || e != es[0] {
		t.Errorf("Extract = %v,%v, want %v,true", e, ok, es[0])
	}
	if g.IsOccupied(p) || g.Count() != 0 {
		t.Error("slot should be empty after Extract")
	}

	// Extracting an empty slot is a no-op
	if _, ok := g.Extract(p); ok {
		t.Error("Extract on empty slot should report false")
	}
	if g.Count() != 0 {
		t.Errorf("count = %d after empty extract, want 0", g.Count())
	}
}

func TestGridMisusePanics(t *testing.T) {
	g := NewGrid(3, 3)
	es := newEntities(t, 2)
	g.Place(es[0], Pos{1, 1})

	expectPanic(t, "place on occupied", func() { g.Place(es[1], Pos{1, 1}) })
	expectPanic(t, "place zero entity", func() { g.Place(ecs.Entity{}, Pos{0, 0}) })
	expectPanic(t, "extract out of range", func() { g.Extract(Pos{3, 0}) })
	expectPanic(t, "place out of range", func() { g.Place(es[1], Pos{0, -1}) })
	expectPanic(t, "zero size grid", func() { NewGrid(0, 5) })

	// The failed place must not have disturbed the occupant
	if e, _ := g.At(Pos{1, 1}); e != es[0] {
		t.Error("occupant replaced by a rejected Place")
	}
}

func TestGridWrap(t *testing.T) {
	g := NewGrid(5, 4)
	tests := []struct {
		x, y int
		want Pos
	}{
		{0, 0, Pos{0, 0}},
		{-1, 0, Pos{4, 0}},
		{5, 0, Pos{0, 0}},
		{0, -1, Pos{0, 3}},
		{0, 4, Pos{0, 0}},
		{-6, -9, Pos{4, 3}},
		{12, 9, Pos{2, 1}},
	}

	for _, tt := range tests {
		if got := g.Wrap(tt.x, tt.y); got != tt.want {
			t.Errorf("Wrap(%d,%d) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestGridIndexRoundTrip(t *testing.T) {
	g := NewGrid(7, 5)
	for i := 0; i < g.Len(); i++ {
		if got := g.Index(g.PosOf(i)); got != i {
			t.Fatalf("Index(PosOf(%d)) = %d", i, got)
		}
	}
}

func TestNeighborsCorner(t *testing.T) {
	g := NewGrid(10, 10)
	ns := g.Neighbors(Pos{0, 0})

	want := map[Pos]bool{
		{9, 9}: true, {0, 9}: true, {1, 9}: true,
		{9, 0}: true, {1, 0}: true,
		{9, 1}: true, {0, 1}: true, {1, 1}: true,
	}
	for _, n := range ns {
		if !want[n] {
			t.Errorf("unexpected neighbor %v of corner", n)
		}
		delete(want, n)
	}
	if len(want) != 0 {
		t.Errorf("missing neighbors: %v", want)
	}
}

func TestRandomNeighborAdjacentAndCoversAll(t *testing.T) {
	g := NewGrid(6, 6)
	r := rng.New(4)
	origin := Pos{5, 0}
	seen := make(map[Pos]int)

	for i := 0; i < 2000; i++ {
		n := g.RandomNeighbor(origin, r)
		if !g.Adjacent(origin, n) {
			t.Fatalf("RandomNeighbor returned non-adjacent %v", n)
		}
		if n == origin {
			t.Fatal("RandomNeighbor returned the origin on a 6x6 grid")
		}
		seen[n]++
	}
	if len(seen) != 8 {
		t.Errorf("saw %d distinct neighbors, want 8", len(seen))
	}
	for n, c := range seen {
		// Uniform: ~250 each
		if c < 150 || c > 350 {
			t.Errorf("neighbor %v drawn %d times, expected ~250", n, c)
		}
	}
}

func TestForEachOccupiedSkipsVacated(t *testing.T) {
	g := NewGrid(3, 1)
	es := newEntities(t, 3)
	for i, e := range es {
		g.Place(e, Pos{i, 0})
	}

	var visited []int
	g.ForEachOccupied([]int{0, 1, 2}, func(p Pos, e ecs.Entity) {
		visited = append(visited, p.X)
		if p.X == 0 {
			// Vacate a slot that has not been visited yet
			g.Extract(Pos{2, 0})
		}
	})

	if len(visited) != 2 || visited[0] != 0 || visited[1] != 1 {
		t.Errorf("visited %v, want [0 1]", visited)
	}
}

func TestForEachOccupiedFollowsOrder(t *testing.T) {
	g := NewGrid(4, 1)
	es := newEntities(t, 4)
	for i, e := range es {
		g.Place(e, Pos{i, 0})
	}

	order := []int{3, 1, 0, 2}
	var got []int
	g.ForEachOccupied(order, func(p Pos, _ ecs.Entity) {
		got = append(got, g.Index(p))
	})
	for i := range order {
		if got[i] != order[i] {
			t.Fatalf("visit order %v, want %v", got, order)
		}
	}
}
