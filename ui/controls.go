package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// maxStepsPerFrame bounds the speed slider.
const maxStepsPerFrame = 20

// ControlsState is the result of one frame of user input.
type ControlsState struct {
	Running       bool
	Step          bool // advance a single tick while paused
	StepsPerFrame int
}

// ControlsPanel renders the run/pause and step buttons and the speed slider.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
	state    ControlsState
}

// NewControlsPanel creates a paused controls panel.
func NewControlsPanel(x, y, width int32, stepsPerFrame int) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
		state:    ControlsState{StepsPerFrame: clampSteps(stepsPerFrame)},
	}
}

// Height returns the vertical space the panel occupies.
func (c *ControlsPanel) Height() int32 {
	return 30 + 8 + 20 + c.renderer.Theme.Padding*2
}

// Update draws the controls and applies this frame's clicks and key presses.
// Space toggles run/pause and N steps.
func (c *ControlsPanel) Update() ControlsState {
	r := c.renderer
	pad := r.Theme.Padding
	x := float32(c.x + pad)
	y := float32(c.y + pad)
	half := float32(c.width-pad*3) / 2

	c.state.Step = false

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: half, Height: 30}, toggleText(c.state.Running, "Pause", "Run")) ||
		rl.IsKeyPressed(rl.KeySpace) {
		c.state.Running = !c.state.Running
	}
	if gui.Button(rl.Rectangle{X: x + half + float32(pad), Y: y, Width: half, Height: 30}, "Step") ||
		rl.IsKeyPressed(rl.KeyN) {
		c.state.Step = !c.state.Running
	}
	y += 38

	steps := gui.SliderBar(
		rl.Rectangle{X: x + 40, Y: y, Width: float32(c.width-pad*2) - 80, Height: 20},
		"speed", fmt.Sprintf("%dx", c.state.StepsPerFrame),
		float32(c.state.StepsPerFrame), 1, maxStepsPerFrame,
	)
	c.state.StepsPerFrame = clampSteps(int(steps + 0.5))

	return c.state
}

// TicksThisFrame returns how many ticks the simulation should advance.
func (s ControlsState) TicksThisFrame() int {
	switch {
	case s.Running:
		return s.StepsPerFrame
	case s.Step:
		return 1
	}
	return 0
}

func clampSteps(n int) int {
	return max(1, min(n, maxStepsPerFrame))
}

func toggleText(on bool, onText, offText string) string {
	if on {
		return onText
	}
	return offText
}
