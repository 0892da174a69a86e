package main

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/thirdperson/ecs/system"
	"github.com/milk9111/thirdperson/locomotion"
)

const stickDeadzone = 0.2

// keyboardAxes samples keyboard and the first gamepad once per tick.
type keyboardAxes struct {
	values map[string]float64
}

func newKeyboardAxes() *keyboardAxes {
	return &keyboardAxes{values: map[string]float64{}}
}

func (k *keyboardAxes) Axis(name string) float64 {
	return k.values[name]
}

func (k *keyboardAxes) Sample() error {
	vertical := keyAxis(ebiten.KeyS, ebiten.KeyW) + keyAxis(ebiten.KeyArrowDown, ebiten.KeyArrowUp)
	horizontal := keyAxis(ebiten.KeyA, ebiten.KeyD) + keyAxis(ebiten.KeyArrowLeft, ebiten.KeyArrowRight)
	orbit := keyAxis(ebiten.KeyQ, ebiten.KeyE)
	jump := ebiten.IsKeyPressed(ebiten.KeySpace)
	run := ebiten.IsKeyPressed(ebiten.KeyShift)

	if gamepads := ebiten.AppendGamepadIDs(nil); len(gamepads) > 0 {
		id := gamepads[0]
		lx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
		ly := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
		if math.Hypot(lx, ly) > stickDeadzone {
			horizontal = lx
			// Stick up is negative.
			vertical = -ly
		}
		rx := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisRightStickHorizontal)
		if math.Abs(rx) > stickDeadzone {
			orbit = rx
		}
		jump = jump || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonRightBottom)
		run = run || ebiten.IsStandardGamepadButtonPressed(id, ebiten.StandardGamepadButtonFrontBottomLeft)
	}

	k.values[locomotion.AxisVertical] = clampAxis(vertical)
	k.values[locomotion.AxisHorizontal] = clampAxis(horizontal)
	k.values[system.AxisOrbit] = clampAxis(orbit)
	k.values[locomotion.AxisJump] = boolAxis(jump)
	k.values[locomotion.AxisRun] = boolAxis(run)
	return nil
}

func keyAxis(neg, pos ebiten.Key) float64 {
	v := 0.0
	if ebiten.IsKeyPressed(neg) {
		v--
	}
	if ebiten.IsKeyPressed(pos) {
		v++
	}
	return v
}

func clampAxis(v float64) float64 {
	return math.Max(-1, math.Min(1, v))
}

func boolAxis(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
