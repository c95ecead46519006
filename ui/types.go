// Package ui draws the population grid and the side panel with raylib.
package ui

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/torus/game"
)

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	Predator       rl.Color
	Prey           rl.Color
	Empty          rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
// Predators are red, prey blue and empty cells green.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 240},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.LightGray,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		Predator:       rl.Color{R: 255, G: 0, B: 0, A: 255},
		Prey:           rl.Color{R: 0, G: 0, B: 255, A: 255},
		Empty:          rl.Color{R: 0, G: 128, B: 0, A: 255},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     80,
		BarHeight:      12,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}

// CellColor returns the fill color for a frame cell.
func (t Theme) CellColor(c game.Cell) rl.Color {
	switch c {
	case game.CellPredator:
		return t.Predator
	case game.CellPrey:
		return t.Prey
	default:
		return t.Empty
	}
}
