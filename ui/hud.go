package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/torus/telemetry"
)

// HUDData holds all the data needed to render the status panel.
type HUDData struct {
	Tick          int32
	Predators     int
	Prey          int
	FPS           int32
	Running       bool
	StepsPerFrame int
	Stats         telemetry.WindowStats // latest completed window
}

// HUD renders population counts and the latest stats window.
type HUD struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewHUD creates a new HUD renderer.
func NewHUD(x, y, width int32) *HUD {
	return &HUD{renderer: NewRenderer(), x: x, y: y, width: width}
}

// Draw renders the HUD and returns the Y position below it.
func (h *HUD) Draw(data HUDData) int32 {
	r := h.renderer
	pad := r.Theme.Padding
	x := h.x + pad
	y := h.y + pad

	status := "PAUSED"
	if data.Running {
		status = fmt.Sprintf("Running %dx", data.StepsPerFrame)
	}

	y = r.DrawSectionHeader(x, y, "Population")
	y = r.DrawLabelValue(x, y, "Tick", fmt.Sprintf("%d", data.Tick))
	y = r.DrawLabelValue(x, y, "Predators", fmt.Sprintf("%d", data.Predators))
	y = r.DrawLabelValue(x, y, "Prey", fmt.Sprintf("%d", data.Prey))
	y = r.DrawSpacer(y, 4)
	y = r.DrawShareBar(x, y, h.width-pad*2, data.Predators, data.Prey, r.Theme.Predator, r.Theme.Prey)
	y = r.DrawLabelValue(x, y, "FPS", fmt.Sprintf("%d", data.FPS))
	rl.DrawText(status, x, y, r.Theme.FontSize, rl.Yellow)
	y += r.Theme.LineHeight

	s := data.Stats
	if s.WindowEndTick == 0 {
		return y
	}
	y = r.DrawSpacer(y, 8)
	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Window %d-%d", s.WindowStartTick, s.WindowEndTick))
	y = r.DrawLabelValue(x, y, "Births", fmt.Sprintf("%d / %d", s.PredBirths, s.PreyBirths))
	y = r.DrawLabelValue(x, y, "Deaths", fmt.Sprintf("%d / %d", s.PredDeaths, s.PreyDeaths))
	y = r.DrawLabelValue(x, y, "Kills", fmt.Sprintf("%d of %d", s.Kills, s.Hunts))
	y = r.DrawLabelValue(x, y, "Contests", fmt.Sprintf("%d", s.Contests))
	y = r.DrawLabelValue(x, y, "Pred str", formatStrength(s.PredStrengthP50))
	y = r.DrawLabelValue(x, y, "Prey str", formatStrength(s.PreyStrengthP50))
	return y
}
