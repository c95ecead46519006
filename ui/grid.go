package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/torus/camera"
	"github.com/pthm-cable/torus/game"
	"github.com/pthm-cable/torus/systems"
)

// GridView draws a Frame through a wrapping camera anchored at the origin.
type GridView struct {
	theme  Theme
	camera *camera.Camera
}

// NewGridView creates a grid view that shows a whole width x height grid at
// cellSize pixels per cell.
func NewGridView(width, height, cellSize int) *GridView {
	return &GridView{
		theme:  DefaultTheme(),
		camera: camera.New(width, height, float32(max(cellSize, 1))),
	}
}

// Size returns the pixel size of the grid viewport.
func (v *GridView) Size() (int32, int32) {
	return int32(v.camera.ViewportW), int32(v.camera.ViewportH)
}

// HandleInput applies pan and zoom controls. Arrow keys pan, the mouse
// wheel and +/- zoom, Home resets.
func (v *GridView) HandleInput() {
	cam := v.camera
	step := cam.CellPixels()

	if rl.IsKeyDown(rl.KeyRight) {
		cam.Pan(-step, 0)
	}
	if rl.IsKeyDown(rl.KeyLeft) {
		cam.Pan(step, 0)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		cam.Pan(0, -step)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		cam.Pan(0, step)
	}

	mouse := rl.GetMousePosition()
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		if _, _, ok := cam.ScreenToCell(mouse.X, mouse.Y); ok {
			cam.ZoomAt(mouse.X, mouse.Y, 1+wheel*0.1)
		}
	}
	if rl.IsKeyPressed(rl.KeyEqual) || rl.IsKeyPressed(rl.KeyKpAdd) {
		cam.ZoomAt(0, 0, 1.25)
	}
	if rl.IsKeyPressed(rl.KeyMinus) || rl.IsKeyPressed(rl.KeyKpSubtract) {
		cam.ZoomAt(0, 0, 0.8)
	}
	if rl.IsKeyPressed(rl.KeyHome) {
		cam.Reset()
	}
}

// Draw renders every visible cell of the frame.
func (v *GridView) Draw(f game.Frame) {
	w, h := v.Size()
	cp := v.camera.CellPixels()
	size := int32(cp + 0.5)

	// Walk only the window under the camera, one extra cell for the partial edge
	cols, rows := v.camera.VisibleCells()
	x0, y0 := int(v.camera.X), int(v.camera.Y)

	rl.BeginScissorMode(0, 0, w, h)
	rl.DrawRectangle(0, 0, w, h, v.theme.Empty)
	for j := range min(rows+1, f.Height) {
		y := (y0 + j) % f.Height
		for i := range min(cols+1, f.Width) {
			x := (x0 + i) % f.Width
			c := f.At(x, y)
			if c == game.CellEmpty {
				continue
			}
			sx, sy, visible := v.camera.CellToScreen(x, y)
			if !visible {
				continue
			}
			rl.DrawRectangle(int32(sx), int32(sy), size, size, v.theme.CellColor(c))
		}
	}
	rl.EndScissorMode()
}

// DrawHighlight outlines the cell at p.
func (v *GridView) DrawHighlight(p systems.Pos) {
	sx, sy, visible := v.camera.CellToScreen(p.X, p.Y)
	if !visible {
		return
	}
	size := int32(v.camera.CellPixels() + 0.5)
	rl.DrawRectangleLines(int32(sx), int32(sy), size, size, rl.Yellow)
}

// CellAt maps a screen point to the grid cell drawn under it.
func (v *GridView) CellAt(pt rl.Vector2) (systems.Pos, bool) {
	x, y, ok := v.camera.ScreenToCell(pt.X, pt.Y)
	if !ok {
		return systems.Pos{}, false
	}
	return systems.Pos{X: x, Y: y}, true
}
