// Package camera maps screen pixels to cells of a toroidal grid.
// The view pans with wraparound, so any cell can be brought to any edge.
package camera

import "math"

// Camera controls the viewport into the grid.
// The viewport origin snaps to whole cells; zooming scales the cell size.
type Camera struct {
	// X, Y is the world cell drawn at the viewport's top-left corner.
	// Kept fractional so slow drags accumulate.
	X, Y float32

	// Zoom level (1.0 = the whole grid fills the viewport)
	Zoom float32

	// CellSize is the pixel size of one cell at zoom 1
	CellSize float32

	// Viewport dimensions in pixels
	ViewportW, ViewportH float32

	// World dimensions in cells
	WorldW, WorldH int

	MinZoom, MaxZoom float32
}

// New creates a camera showing the whole worldW x worldH grid at cellSize
// pixels per cell.
func New(worldW, worldH int, cellSize float32) *Camera {
	return &Camera{
		Zoom:      1.0,
		CellSize:  cellSize,
		ViewportW: float32(worldW) * cellSize,
		ViewportH: float32(worldH) * cellSize,
		WorldW:    worldW,
		WorldH:    worldH,
		MinZoom:   1.0,
		MaxZoom:   8.0,
	}
}

// CellPixels returns the current on-screen size of one cell.
func (c *Camera) CellPixels() float32 {
	return c.CellSize * c.Zoom
}

// origin returns the whole-cell viewport origin.
func (c *Camera) origin() (int, int) {
	return wrap(int(math.Floor(float64(c.X))), c.WorldW), wrap(int(math.Floor(float64(c.Y))), c.WorldH)
}

// CellToScreen returns the top-left pixel of cell (x, y) and whether any
// part of it lies inside the viewport.
func (c *Camera) CellToScreen(x, y int) (sx, sy float32, visible bool) {
	ox, oy := c.origin()
	cp := c.CellPixels()
	sx = float32(wrap(x-ox, c.WorldW)) * cp
	sy = float32(wrap(y-oy, c.WorldH)) * cp
	return sx, sy, sx < c.ViewportW && sy < c.ViewportH
}

// ScreenToCell returns the cell under pixel (sx, sy), or false outside the
// viewport.
func (c *Camera) ScreenToCell(sx, sy float32) (x, y int, ok bool) {
	if sx < 0 || sy < 0 || sx >= c.ViewportW || sy >= c.ViewportH {
		return 0, 0, false
	}
	ox, oy := c.origin()
	cp := c.CellPixels()
	x = wrap(ox+int(sx/cp), c.WorldW)
	y = wrap(oy+int(sy/cp), c.WorldH)
	return x, y, true
}

// Pan moves the view by a drag of (dx, dy) screen pixels. Dragging right
// brings cells from the left edge into view.
func (c *Camera) Pan(dx, dy float32) {
	cp := c.CellPixels()
	c.X = modf(c.X-dx/cp, float32(c.WorldW))
	c.Y = modf(c.Y-dy/cp, float32(c.WorldH))
}

// SetZoom sets the zoom level, clamped to min/max.
func (c *Camera) SetZoom(zoom float32) {
	c.Zoom = max(c.MinZoom, min(zoom, c.MaxZoom))
}

// ZoomAt multiplies the zoom by factor while keeping the cell under
// (sx, sy) in place.
func (c *Camera) ZoomAt(sx, sy, factor float32) {
	before := c.CellPixels()
	c.SetZoom(c.Zoom * factor)
	after := c.CellPixels()
	c.X = modf(c.X+sx/before-sx/after, float32(c.WorldW))
	c.Y = modf(c.Y+sy/before-sy/after, float32(c.WorldH))
}

// Reset returns the camera to the default position and zoom.
func (c *Camera) Reset() {
	c.X, c.Y = 0, 0
	c.Zoom = 1.0
}

// VisibleCells returns how many columns and rows are at least partly visible.
func (c *Camera) VisibleCells() (int, int) {
	cp := c.CellPixels()
	w := int(math.Ceil(float64(c.ViewportW / cp)))
	h := int(math.Ceil(float64(c.ViewportH / cp)))
	return min(w, c.WorldW), min(h, c.WorldH)
}

// wrap reduces i into [0, n).
func wrap(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}

// modf computes the positive float modulo (math.Mod can return negative).
func modf(x, m float32) float32 {
	r := float32(math.Mod(float64(x), float64(m)))
	if r < 0 {
		r += m
	}
	return r
}
