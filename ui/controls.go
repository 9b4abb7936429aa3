package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Tuning is the set of live-adjustable parameters exposed by the panel.
type Tuning struct {
	GravityScale float32
	MaxTiltDeg   float32
	DebugDraw    bool
}

// Actions reports one-shot button presses from a panel pass.
type Actions struct {
	Reset     bool
	CycleMode bool
}

// ControlsPanel is the right-side raygui panel.
type ControlsPanel struct {
	x, y    int32
	width   int32
	visible bool
}

// NewControlsPanel creates a hidden panel anchored at the given position.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{x: x, y: y, width: width}
}

// Toggle switches panel visibility.
func (c *ControlsPanel) Toggle() bool {
	c.visible = !c.visible
	return c.visible
}

// Resize re-anchors the panel after a window size change.
func (c *ControlsPanel) Resize(screenW int32) {
	c.x = screenW - c.width - 10
}

// Draw renders the panel and mutates t in place from the widgets.
// Returns the one-shot actions triggered this frame.
func (c *ControlsPanel) Draw(t *Tuning) Actions {
	var acts Actions
	if !c.visible {
		return acts
	}

	x := float32(c.x)
	y := float32(c.y)
	w := float32(c.width)

	rl.DrawRectangle(c.x-5, c.y-5, c.width+10, 190, rl.NewColor(20, 20, 28, 220))
	rl.DrawText("Controls", c.x, c.y, 16, rl.White)
	y += 26

	t.GravityScale = gui.SliderBar(
		rl.Rectangle{X: x + 70, Y: y, Width: w - 110, Height: 18},
		"gravity", fmt.Sprintf("%.0f", t.GravityScale),
		t.GravityScale, 0, 40,
	)
	y += 24

	t.MaxTiltDeg = gui.SliderBar(
		rl.Rectangle{X: x + 70, Y: y, Width: w - 110, Height: 18},
		"max tilt", fmt.Sprintf("%.0f", t.MaxTiltDeg),
		t.MaxTiltDeg, 5, 90,
	)
	y += 24

	t.DebugDraw = gui.CheckBox(
		rl.Rectangle{X: x, Y: y, Width: 18, Height: 18},
		"debug draw", t.DebugDraw,
	)
	y += 28

	if gui.Button(rl.Rectangle{X: x, Y: y, Width: 90, Height: 26}, "Reset") {
		acts.Reset = true
	}
	if gui.Button(rl.Rectangle{X: x + 100, Y: y, Width: 90, Height: 26}, "Mode") {
		acts.CycleMode = true
	}
	return acts
}
