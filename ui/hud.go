// Package ui draws the HUD and the raygui controls panel.
package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"gonum.org/v1/gonum/spatial/r3"
)

// HUD draws the top-left status lines.
type HUD struct{}

// Draw renders tick, body counts, gravity and pause state.
func (HUD) Draw(tick int32, bodies, pending int, gravity r3.Vec, mode string, paused bool) {
	rl.DrawText(fmt.Sprintf("Tick: %d", tick), 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Mode: %s  Bodies: %d", mode, bodies), 10, 35, 20, rl.White)
	rl.DrawText(fmt.Sprintf("Gravity: (%.1f, %.1f, %.1f)", gravity.X, gravity.Y, gravity.Z), 10, 60, 20, rl.White)
	if pending > 0 {
		rl.DrawText(fmt.Sprintf("Loading: %d", pending), 10, 85, 20, rl.Gray)
	}
	if paused {
		rl.DrawText("PAUSED", 10, 110, 20, rl.Yellow)
	}
	rl.DrawText("[space] pause  [d] debug  [m] mode  [r] reset  [tab] panel", 10, int32(rl.GetScreenHeight())-30, 16, rl.Gray)
}
