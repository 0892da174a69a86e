package prefabs

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/locomotion"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// Vec3Spec is a YAML [x, y, z] triple. Missing components are zero.
type Vec3Spec []float64

func (v Vec3Spec) Vec() mgl64.Vec3 {
	var out mgl64.Vec3
	copy(out[:], v)
	return out
}

type BodySpec struct {
	Radius     float64 `yaml:"radius"`
	Height     float64 `yaml:"height"`
	StepOffset float64 `yaml:"step_offset"`
}

type CameraSpec struct {
	Yaw        float64 `yaml:"yaw"`
	Pitch      float64 `yaml:"pitch"`
	Distance   float64 `yaml:"distance"`
	Height     float64 `yaml:"height"`
	OrbitSpeed float64 `yaml:"orbit_speed"`
	Smoothness float64 `yaml:"smoothness"`
}

type TransitionSpec struct {
	Clip string          `yaml:"clip"`
	When map[string]bool `yaml:"when"`
}

type AnimatorSpec struct {
	Default     string           `yaml:"default"`
	Transitions []TransitionSpec `yaml:"transitions"`
}

// InputSpec shapes the keyboard axes.
type InputSpec struct {
	Sensitivity float64 `yaml:"sensitivity"`
	Gravity     float64 `yaml:"gravity"`
	Dead        float64 `yaml:"dead"`
	Snap        bool    `yaml:"snap"`
}

type PlayerSpec struct {
	Name     string            `yaml:"name"`
	Movement locomotion.Config `yaml:"movement"`
	Body     BodySpec          `yaml:"body"`
	Camera   CameraSpec        `yaml:"camera"`
	Animator AnimatorSpec      `yaml:"animator"`
	Input    InputSpec         `yaml:"input"`
}

// ParsePlayerSpec decodes a player spec over the default movement config and
// clamps walk and run speeds into their supported range.
func ParsePlayerSpec(data []byte) (*PlayerSpec, error) {
	spec := PlayerSpec{Movement: locomotion.DefaultConfig()}
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	if spec.Movement.ClampSpeeds() {
		slog.Warn("prefabs: movement speeds clamped",
			"walk_speed", spec.Movement.WalkSpeed,
			"run_speed", spec.Movement.RunSpeed,
			"min", locomotion.SpeedMin,
			"max", locomotion.SpeedMax,
		)
	}
	if spec.Movement.JumpVel < spec.Movement.JumpReleaseVel {
		slog.Warn("prefabs: jump velocity below release threshold, jumps will latch",
			"jump_vel", spec.Movement.JumpVel,
			"jump_release_vel", spec.Movement.JumpReleaseVel,
		)
	}
	if spec.Body.Radius <= 0 || spec.Body.Height <= 0 {
		return nil, fmt.Errorf("%w: body needs a positive radius and height", ErrInvalidSpec)
	}
	return &spec, nil
}

func LoadPlayerSpec(name string) (*PlayerSpec, error) {
	data, err := Load(name)
	if err != nil {
		return nil, fmt.Errorf("prefabs: load %s: %w", name, err)
	}
	spec, err := ParsePlayerSpec(data)
	if err != nil {
		return nil, fmt.Errorf("prefabs: parse %s: %w", name, err)
	}
	return spec, nil
}

type PlatformSpec struct {
	Name  string   `yaml:"name"`
	Min   Vec3Spec `yaml:"min"`
	Max   Vec3Spec `yaml:"max"`
	Color string   `yaml:"color"`
}

type LevelSpec struct {
	Name      string         `yaml:"name"`
	Spawn     Vec3Spec       `yaml:"spawn"`
	SpawnYaw  float64        `yaml:"spawn_yaw"`
	KillY     float64        `yaml:"kill_y"`
	Platforms []PlatformSpec `yaml:"platforms"`
}

func LoadLevelSpec(name string) (*LevelSpec, error) {
	spec, err := LoadSpec[LevelSpec](name)
	if err != nil {
		return nil, err
	}
	if len(spec.Platforms) == 0 {
		slog.Warn("prefabs: level has no platforms", "level", name)
	}
	if spec.KillY >= spec.Spawn.Vec().Y() {
		return nil, fmt.Errorf("prefabs: %s: %w: kill_y %v is not below the spawn point", name, ErrInvalidSpec, spec.KillY)
	}
	return &spec, nil
}
