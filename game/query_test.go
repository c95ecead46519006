package game

import (
	"errors"
	"testing"

	"github.com/pthm-cable/torus/components"
	"github.com/pthm-cable/torus/systems"
)

func expectPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Errorf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestSeedPlacesDistinctAgents(t *testing.T) {
	g := newTestGame(testConfig(5, 4))
	if err := g.Seed(3, 7); err != nil {
		t.Fatalf("Seed error: %v", err)
	}

	if g.PredatorCount() != 3 || g.PreyCount() != 7 {
		t.Errorf("counts = %d/%d, want 3/7", g.PredatorCount(), g.PreyCount())
	}
	if g.grid.Count() != 10 {
		t.Errorf("occupied cells = %d, want 10", g.grid.Count())
	}

	var pred, prey int
	g.ForEachAgent(func(_ systems.Pos, v AgentView) {
		switch v.Species {
		case components.SpeciesPredator:
			pred++
		case components.SpeciesPrey:
			prey++
		}
	})
	if pred != 3 || prey != 7 {
		t.Errorf("ForEachAgent saw %d/%d, want 3/7", pred, prey)
	}
}

func TestSeedFillsExactlyFullGrid(t *testing.T) {
	g := newTestGame(testConfig(3, 3))
	g.AddAgentAt(components.SpeciesPrey, systems.Pos{X: 1, Y: 1})

	if err := g.Seed(4, 4); err != nil {
		t.Fatalf("Seed into the 8 remaining cells: %v", err)
	}
	if g.grid.Count() != 9 {
		t.Errorf("occupied = %d, want 9", g.grid.Count())
	}
}

func TestSeedErrors(t *testing.T) {
	g := newTestGame(testConfig(2, 2))

	err := g.Seed(3, 2)
	if !errors.Is(err, ErrGridFull) {
		t.Errorf("Seed(3, 2) on 4 cells = %v, want ErrGridFull", err)
	}
	if g.grid.Count() != 0 {
		t.Error("failed Seed should not place anything")
	}

	if err := g.Seed(-1, 0); err == nil {
		t.Error("Seed with negative count should fail")
	}
}

func TestAddAgentAtMisuse(t *testing.T) {
	g := newTestGame(testConfig(3, 3))
	g.AddAgentAt(components.SpeciesPredator, systems.Pos{X: 0, Y: 0})

	expectPanic(t, "occupied", func() {
		g.AddAgentAt(components.SpeciesPrey, systems.Pos{X: 0, Y: 0})
	})
	expectPanic(t, "out of range", func() {
		g.AddAgentAt(components.SpeciesPrey, systems.Pos{X: 3, Y: 0})
	})
	expectPanic(t, "invalid species", func() {
		g.AddAgentAt(components.Species(9), systems.Pos{X: 1, Y: 1})
	})

	if g.PreyCount() != 0 || g.grid.Count() != 1 {
		t.Error("failed AddAgentAt calls should not change the population")
	}
}

func TestResize(t *testing.T) {
	g := newTestGame(testConfig(3, 3))
	if err := g.Resize(8, 5); err != nil {
		t.Fatalf("Resize before start: %v", err)
	}
	if g.Width() != 8 || g.Height() != 5 {
		t.Errorf("size = %dx%d, want 8x5", g.Width(), g.Height())
	}
	if g.Config().Derived.Cells != 40 {
		t.Errorf("derived cells = %d, want 40", g.Config().Derived.Cells)
	}

	if err := g.Resize(0, 5); err == nil {
		t.Error("Resize to zero width should fail")
	}

	g.AddAgentAt(components.SpeciesPrey, systems.Pos{X: 7, Y: 4})
	if err := g.Resize(10, 10); err == nil {
		t.Error("Resize with agents present should fail")
	}

	empty := newTestGame(testConfig(3, 3))
	empty.Update()
	if err := empty.Resize(10, 10); err == nil {
		t.Error("Resize after a tick should fail")
	}
}

func TestResizeLeavesCallerConfigAlone(t *testing.T) {
	cfg := testConfig(3, 3)
	g := newTestGame(cfg)
	if err := g.Resize(6, 6); err != nil {
		t.Fatal(err)
	}
	if cfg.World.Width != 3 {
		t.Errorf("caller config width = %d, want 3", cfg.World.Width)
	}
}

func TestQueries(t *testing.T) {
	g := newTestGame(testConfig(4, 3))
	pred := systems.Pos{X: 0, Y: 0}
	prey := systems.Pos{X: 3, Y: 2}
	g.AddAgentAt(components.SpeciesPredator, pred)
	g.AddAgentAt(components.SpeciesPrey, prey)

	if s, ok := g.SpeciesAt(pred); !ok || s != components.SpeciesPredator {
		t.Errorf("SpeciesAt(%v) = %v, %v; want predator", pred, s, ok)
	}
	if _, ok := g.SpeciesAt(systems.Pos{X: 1, Y: 1}); ok {
		t.Error("SpeciesAt on an empty cell should report false")
	}

	v, ok := g.AgentAt(prey)
	if !ok {
		t.Fatal("AgentAt on prey cell returned false")
	}
	if v.Species != components.SpeciesPrey || v.Strength != 100 || v.Energy != 0 {
		t.Errorf("AgentAt = %+v, want fresh prey", v)
	}

	var order []systems.Pos
	g.ForEachAgent(func(p systems.Pos, _ AgentView) { order = append(order, p) })
	if len(order) != 2 || order[0] != pred || order[1] != prey {
		t.Errorf("ForEachAgent order = %v, want [%v %v]", order, pred, prey)
	}
}

func TestFrame(t *testing.T) {
	g := newTestGame(testConfig(4, 3))
	g.AddAgentAt(components.SpeciesPredator, systems.Pos{X: 1, Y: 0})
	g.AddAgentAt(components.SpeciesPrey, systems.Pos{X: 2, Y: 2})

	f := g.Frame()
	if f.Width != 4 || f.Height != 3 || len(f.Cells) != 12 {
		t.Fatalf("frame %dx%d with %d cells, want 4x3 with 12", f.Width, f.Height, len(f.Cells))
	}
	if f.Predators != 1 || f.Prey != 1 {
		t.Errorf("frame counts = %d/%d, want 1/1", f.Predators, f.Prey)
	}

	for y := 0; y < f.Height; y++ {
		for x := 0; x < f.Width; x++ {
			want := CellEmpty
			if s, ok := g.SpeciesAt(systems.Pos{X: x, Y: y}); ok {
				want = cellOf(s)
			}
			if got := f.At(x, y); got != want {
				t.Errorf("cell (%d,%d) = %d, want %d", x, y, got, want)
			}
		}
	}

	// The frame is a copy
	g.Update()
	if f.Tick != 0 {
		t.Error("frame should not change after Update")
	}
}

func TestAgentViewCarriesLifetimeRecord(t *testing.T) {
	g := newTestGame(testConfig(3, 3))
	center := systems.Pos{X: 1, Y: 1}
	pred := g.AddAgentAt(components.SpeciesPredator, center)
	for _, p := range g.grid.Neighbors(center) {
		g.AddAgentAt(components.SpeciesPrey, p)
	}
	if !g.predationSweep(pred, center) {
		t.Fatal("predator should survive hunting weaker prey")
	}
	kills := 8 - g.PreyCount()

	g.vitalsMap.Get(pred).Energy = 1000
	g.reproduce(pred, center)
	// Drop below the peak so the view has to remember it
	setStrength(g, pred, 1500)

	v, ok := g.AgentAt(center)
	if !ok {
		t.Fatal("predator should still be on its cell")
	}
	if v.Kills != kills {
		t.Errorf("kills = %d, want %d", v.Kills, kills)
	}
	if v.Children != 1 {
		t.Errorf("children = %d, want 1", v.Children)
	}
	if want := 2000 + 100*float64(kills); v.PeakStrength != want {
		t.Errorf("peak strength = %v, want %v", v.PeakStrength, want)
	}
	if v.Strength != 1500 || v.Age != 0 {
		t.Errorf("strength = %v, age = %d, want 1500 and 0", v.Strength, v.Age)
	}
}
