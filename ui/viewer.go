package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/torus/game"
)

// Viewer owns the panels of the graphical driver. The caller opens the
// window and calls Frame once per rendered frame.
type Viewer struct {
	game      *game.Game
	grid      *GridView
	controls  *ControlsPanel
	hud       *HUD
	inspector *Inspector
	renderer  *Renderer
	panelX    int32
	panelW    int32
}

// NewViewer lays out the grid on the left and the side panel on the right.
func NewViewer(g *game.Game, cellSize, panelWidth, stepsPerFrame int) *Viewer {
	grid := NewGridView(g.Width(), g.Height(), cellSize)
	gw, _ := grid.Size()
	pw := int32(panelWidth)
	controls := NewControlsPanel(gw, 0, pw, stepsPerFrame)
	return &Viewer{
		game:      g,
		grid:      grid,
		controls:  controls,
		hud:       NewHUD(gw, controls.Height(), pw),
		inspector: NewInspector(gw, 0, pw),
		renderer:  NewRenderer(),
		panelX:    gw,
		panelW:    pw,
	}
}

// ScreenSize returns the window size the viewer needs.
func (v *Viewer) ScreenSize() (int32, int32) {
	gw, gh := v.grid.Size()
	return gw + v.panelW, max(gh, 420)
}

// Frame advances the simulation according to the controls and draws one frame.
func (v *Viewer) Frame() {
	v.game.RecordFrame()

	_, sh := v.ScreenSize()

	rl.BeginDrawing()
	rl.ClearBackground(rl.Black)

	v.grid.HandleInput()
	v.renderer.DrawPanel(v.panelX, 0, v.panelW, sh)
	state := v.controls.Update()
	for range state.TicksThisFrame() {
		v.game.Update()
	}

	frame := v.game.Frame()
	v.grid.Draw(frame)

	y := v.hud.Draw(HUDData{
		Tick:          frame.Tick,
		Predators:     frame.Predators,
		Prey:          frame.Prey,
		FPS:           rl.GetFPS(),
		Running:       state.Running,
		StepsPerFrame: state.StepsPerFrame,
		Stats:         v.game.LastStats(),
	})

	if p, ok := v.grid.CellAt(rl.GetMousePosition()); ok {
		v.grid.DrawHighlight(p)
		view, occupied := v.game.AgentAt(p)
		v.inspector.SetPosition(v.panelX, y+8)
		v.inspector.Draw(p, view, occupied)
	}

	rl.EndDrawing()
}
