package system

import (
	"log/slog"
	"math"

	"github.com/milk9111/thirdperson/common"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/locomotion"
)

// AxisOrbit turns the camera around its target.
const AxisOrbit = "Orbit"

// Sampler is implemented by axis sources that capture their state once per
// tick, before any axis is read.
type Sampler interface {
	Sample() error
}

// AxisSettings shapes a raw axis the way a classic input manager does.
// Sensitivity and Gravity are in units per second; a zero Sensitivity passes
// the raw value through.
type AxisSettings struct {
	Sensitivity float64
	Gravity     float64
	Dead        float64
	// Snap jumps to zero when the raw value reverses direction.
	Snap bool
}

// DefaultAxisSettings matches keyboard axes in most engines.
var DefaultAxisSettings = AxisSettings{Sensitivity: 3, Gravity: 3, Dead: 0.001, Snap: true}

func (a AxisSettings) step(current, raw, dt float64) float64 {
	if math.Abs(raw) < a.Dead {
		raw = 0
	}
	if a.Sensitivity <= 0 {
		return raw
	}
	if raw == 0 {
		if a.Gravity <= 0 {
			return 0
		}
		return common.MoveTowards(current, 0, a.Gravity*dt)
	}
	if a.Snap && current*raw < 0 {
		current = 0
	}
	return common.MoveTowards(current, raw, a.Sensitivity*dt)
}

// InputSystem copies an axis source into every Input component. Movement and
// orbit axes are smoothed; Jump and Run are passed through.
type InputSystem struct {
	src      locomotion.Axes
	dt       float64
	settings AxisSettings

	vertical   float64
	horizontal float64
	orbit      float64
}

func NewInputSystem(src locomotion.Axes, dt float64, settings AxisSettings) *InputSystem {
	return &InputSystem{src: src, dt: dt, settings: settings}
}

// SetSource swaps the axis source, keeping the smoothed state.
func (s *InputSystem) SetSource(src locomotion.Axes) {
	s.src = src
}

func (s *InputSystem) Update(w *ecs.World) {
	if w == nil || s.src == nil {
		return
	}

	if sampler, ok := s.src.(Sampler); ok {
		if err := sampler.Sample(); err != nil {
			slog.Error("input: sample failed", "err", err)
		}
	}

	s.vertical = s.settings.step(s.vertical, s.src.Axis(locomotion.AxisVertical), s.dt)
	s.horizontal = s.settings.step(s.horizontal, s.src.Axis(locomotion.AxisHorizontal), s.dt)
	s.orbit = s.settings.step(s.orbit, s.src.Axis(AxisOrbit), s.dt)
	jump := s.src.Axis(locomotion.AxisJump)
	run := s.src.Axis(locomotion.AxisRun)

	ecs.ForEach(w, component.InputComponent.Kind(), func(_ ecs.Entity, in *component.Input) {
		in.Vertical = s.vertical
		in.Horizontal = s.horizontal
		in.Orbit = s.orbit
		in.Jump = jump
		in.Run = run
	})
}
