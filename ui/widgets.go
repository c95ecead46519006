package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Renderer handles all UI drawing with consistent styling.
type Renderer struct {
	Theme Theme
}

// NewRenderer creates a renderer with the default theme.
func NewRenderer() *Renderer {
	return &Renderer{Theme: DefaultTheme()}
}

// DrawPanel draws a panel background with border.
func (r *Renderer) DrawPanel(x, y, width, height int32) {
	rl.DrawRectangle(x, y, width, height, r.Theme.PanelBg)
	rl.DrawRectangleLines(x, y, width, height, r.Theme.PanelBorder)
}

// DrawSectionHeader draws a section header and returns the new Y position.
func (r *Renderer) DrawSectionHeader(x, y int32, title string) int32 {
	rl.DrawText(title, x, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	return y + r.Theme.LineHeight + 2
}

// DrawLabelValue draws a label and value on the same line.
func (r *Renderer) DrawLabelValue(x, y int32, label, value string) int32 {
	rl.DrawText(label+":", x, y, r.Theme.FontSize, r.Theme.LabelColor)
	rl.DrawText(value, x+r.Theme.LabelWidth, y, r.Theme.FontSize, r.Theme.ValueColor)
	return y + r.Theme.LineHeight
}

// DrawShareBar draws a two-color bar splitting width between a and b.
func (r *Renderer) DrawShareBar(x, y, width int32, a, b int, colorA, colorB rl.Color) int32 {
	rl.DrawRectangle(x, y, width, r.Theme.BarHeight, r.Theme.BarBg)
	if total := a + b; total > 0 {
		wa := int32(float64(width) * float64(a) / float64(total))
		rl.DrawRectangle(x, y, wa, r.Theme.BarHeight, colorA)
		rl.DrawRectangle(x+wa, y, width-wa, r.Theme.BarHeight, colorB)
	}
	return y + r.Theme.BarHeight + 6
}

// DrawSpacer returns y advanced by the given amount.
func (r *Renderer) DrawSpacer(y, amount int32) int32 {
	return y + amount
}

func formatStrength(v float64) string {
	if v >= 1000 {
		return fmt.Sprintf("%.0f", v)
	}
	return fmt.Sprintf("%.1f", v)
}
