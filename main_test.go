package main

import (
	"errors"
	"os"
	"testing"

	"github.com/pthm-cable/torus/config"
	"github.com/pthm-cable/torus/game"
	"github.com/pthm-cable/torus/telemetry"
)

func TestNewSimulationSeedsPopulation(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width, cfg.World.Height = 10, 10
	cfg.Population.InitialPredators, cfg.Population.InitialPrey = 3, 12
	cfg.ComputeDerived()

	output, err := telemetry.NewOutputManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer output.Close()

	g, err := newSimulation(cfg, 1, false, output)
	if err != nil {
		t.Fatalf("newSimulation error: %v", err)
	}
	if g.PredatorCount() != 3 || g.PreyCount() != 12 {
		t.Errorf("counts = %d/%d, want 3/12", g.PredatorCount(), g.PreyCount())
	}
}

func TestNewSimulationClosesOutputOnSeedError(t *testing.T) {
	cfg := config.Default()
	cfg.World.Width, cfg.World.Height = 2, 2
	cfg.Population.InitialPredators, cfg.Population.InitialPrey = 1, 5
	cfg.ComputeDerived()

	output, err := telemetry.NewOutputManager(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	g, err := newSimulation(cfg, 1, false, output)
	if !errors.Is(err, game.ErrGridFull) {
		t.Fatalf("newSimulation error = %v, want ErrGridFull", err)
	}
	if g != nil {
		t.Error("failed newSimulation should not return a game")
	}
	if err := output.Close(); !errors.Is(err, os.ErrClosed) {
		t.Errorf("second Close = %v, want files already closed", err)
	}
}
