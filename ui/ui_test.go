package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/torus/game"
	"github.com/pthm-cable/torus/systems"
)

func TestCellColor(t *testing.T) {
	th := DefaultTheme()
	tests := []struct {
		cell game.Cell
		want rl.Color
	}{
		{game.CellEmpty, th.Empty},
		{game.CellPredator, th.Predator},
		{game.CellPrey, th.Prey},
	}
	for _, tt := range tests {
		if got := th.CellColor(tt.cell); got != tt.want {
			t.Errorf("CellColor(%d) = %v, want %v", tt.cell, got, tt.want)
		}
	}
}

func TestGridViewCellAt(t *testing.T) {
	v := NewGridView(10, 5, 8)
	tests := []struct {
		name string
		pt   rl.Vector2
		want systems.Pos
		ok   bool
	}{
		{"origin", rl.Vector2{X: 0, Y: 0}, systems.Pos{}, true},
		{"inside cell", rl.Vector2{X: 17, Y: 9}, systems.Pos{X: 2, Y: 1}, true},
		{"last cell", rl.Vector2{X: 79.5, Y: 39}, systems.Pos{X: 9, Y: 4}, true},
		{"right of grid", rl.Vector2{X: 80, Y: 0}, systems.Pos{}, false},
		{"below grid", rl.Vector2{X: 3, Y: 40}, systems.Pos{}, false},
		{"negative", rl.Vector2{X: -1, Y: 3}, systems.Pos{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := v.CellAt(tt.pt)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("CellAt(%v) = %v, %v; want %v, %v", tt.pt, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestTicksThisFrame(t *testing.T) {
	tests := []struct {
		state ControlsState
		want  int
	}{
		{ControlsState{Running: true, StepsPerFrame: 5}, 5},
		{ControlsState{Running: true, Step: true, StepsPerFrame: 2}, 2},
		{ControlsState{Step: true, StepsPerFrame: 5}, 1},
		{ControlsState{StepsPerFrame: 5}, 0},
	}
	for _, tt := range tests {
		if got := tt.state.TicksThisFrame(); got != tt.want {
			t.Errorf("%+v.TicksThisFrame() = %d, want %d", tt.state, got, tt.want)
		}
	}
}

func TestClampSteps(t *testing.T) {
	for in, want := range map[int]int{-3: 1, 0: 1, 7: 7, 500: maxStepsPerFrame} {
		if got := clampSteps(in); got != want {
			t.Errorf("clampSteps(%d) = %d, want %d", in, got, want)
		}
	}
}
