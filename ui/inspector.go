package ui

import (
	"fmt"

	"github.com/pthm-cable/torus/components"
	"github.com/pthm-cable/torus/game"
	"github.com/pthm-cable/torus/systems"
)

// Inspector renders the agent under the mouse cursor.
type Inspector struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewInspector creates a new inspector panel.
func NewInspector(x, y, width int32) *Inspector {
	return &Inspector{renderer: NewRenderer(), x: x, y: y, width: width}
}

// SetPosition updates the inspector position.
func (ins *Inspector) SetPosition(x, y int32) {
	ins.x = x
	ins.y = y
}

// Draw renders the agent at p, or "empty" when ok is false.
func (ins *Inspector) Draw(p systems.Pos, view game.AgentView, ok bool) int32 {
	r := ins.renderer
	pad := r.Theme.Padding
	x := ins.x + pad
	y := ins.y + pad

	y = r.DrawSectionHeader(x, y, fmt.Sprintf("Cell (%d, %d)", p.X, p.Y))
	if !ok {
		return r.DrawLabelValue(x, y, "Agent", "empty")
	}
	y = r.DrawLabelValue(x, y, "Agent", fmt.Sprintf("#%d %s", view.ID, view.Species))
	y = r.DrawLabelValue(x, y, "Strength", formatStrength(view.Strength))
	y = r.DrawLabelValue(x, y, "Energy", fmt.Sprintf("%.0f", view.Energy))
	y = r.DrawLabelValue(x, y, "Generation", fmt.Sprintf("%d", view.Generation))
	y = r.DrawLabelValue(x, y, "Age", fmt.Sprintf("%d ticks", view.Age))
	y = r.DrawLabelValue(x, y, "Peak", formatStrength(view.PeakStrength))
	if view.Species == components.SpeciesPredator {
		y = r.DrawLabelValue(x, y, "Kills", fmt.Sprintf("%d", view.Kills))
	}
	y = r.DrawLabelValue(x, y, "Contests won", fmt.Sprintf("%d", view.ContestsWon))
	y = r.DrawLabelValue(x, y, "Children", fmt.Sprintf("%d", view.Children))
	return y
}
