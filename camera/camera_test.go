package camera

import (
	"math"
	"testing"
)

func TestNew(t *testing.T) {
	cam := New(70, 40, 8)

	if cam.ViewportW != 560 || cam.ViewportH != 320 {
		t.Errorf("viewport = %vx%v, want 560x320", cam.ViewportW, cam.ViewportH)
	}
	if w, h := cam.VisibleCells(); w != 70 || h != 40 {
		t.Errorf("visible = %dx%d, want whole 70x40 grid", w, h)
	}
}

func TestCellScreenRoundtrip(t *testing.T) {
	cam := New(20, 10, 8)
	cam.X, cam.Y = 13.5, 7
	cam.SetZoom(2)

	for _, tc := range []struct{ x, y int }{{13, 7}, {0, 0}, {19, 9}, {2, 3}} {
		sx, sy, visible := cam.CellToScreen(tc.x, tc.y)
		if !visible {
			continue
		}
		x, y, ok := cam.ScreenToCell(sx+1, sy+1)
		if !ok || x != tc.x || y != tc.y {
			t.Errorf("cell (%d,%d) -> (%v,%v) -> (%d,%d,%v)", tc.x, tc.y, sx, sy, x, y, ok)
		}
	}
}

func TestToroidalWrap(t *testing.T) {
	cam := New(10, 10, 10)
	cam.X = 8 // columns 8, 9 then 0..7

	if sx, _, _ := cam.CellToScreen(8, 0); sx != 0 {
		t.Errorf("origin column at x=%v, want 0", sx)
	}
	if sx, _, _ := cam.CellToScreen(0, 0); sx != 20 {
		t.Errorf("column 0 at x=%v, want 20 after wrapping", sx)
	}
	if x, _, _ := cam.ScreenToCell(95, 5); x != 7 {
		t.Errorf("right edge shows column %d, want 7", x)
	}
}

func TestPanWraps(t *testing.T) {
	cam := New(10, 10, 10)

	// Drag right by two cells
	cam.Pan(20, 0)
	if cam.X != 8 {
		t.Errorf("X after pan = %v, want 8", cam.X)
	}

	cam.Pan(-50, -15)
	if cam.X != 3 || math.Abs(float64(cam.Y-1.5)) > 1e-6 {
		t.Errorf("position = (%v,%v), want (3,1.5)", cam.X, cam.Y)
	}
}

func TestZoomClampAndCulling(t *testing.T) {
	cam := New(10, 10, 10)

	cam.SetZoom(0.1)
	if cam.Zoom != cam.MinZoom {
		t.Errorf("zoom = %v, want clamped to %v", cam.Zoom, cam.MinZoom)
	}
	cam.SetZoom(100)
	if cam.Zoom != cam.MaxZoom {
		t.Errorf("zoom = %v, want clamped to %v", cam.Zoom, cam.MaxZoom)
	}

	cam.SetZoom(2)
	if w, h := cam.VisibleCells(); w != 5 || h != 5 {
		t.Errorf("visible at 2x = %dx%d, want 5x5", w, h)
	}
	if _, _, visible := cam.CellToScreen(7, 0); visible {
		t.Error("column 7 should be culled at 2x zoom from origin 0")
	}
}

func TestZoomAtKeepsCellUnderCursor(t *testing.T) {
	cam := New(20, 20, 10)
	before, _, _ := cam.ScreenToCell(60, 60)

	cam.ZoomAt(60, 60, 2)
	after, _, _ := cam.ScreenToCell(60, 60)
	if before != after {
		t.Errorf("cell under cursor moved from %d to %d", before, after)
	}

	cam.Reset()
	if cam.X != 0 || cam.Y != 0 || cam.Zoom != 1 {
		t.Errorf("after Reset = (%v,%v,%v), want (0,0,1)", cam.X, cam.Y, cam.Zoom)
	}
}
