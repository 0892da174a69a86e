package locomotion

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) <= eps
}

func vecApprox(a, b mgl64.Vec3) bool {
	return approx(a.X(), b.X()) && approx(a.Y(), b.Y()) && approx(a.Z(), b.Z())
}

var (
	flatGround = ProberFunc(func(origin, dir mgl64.Vec3, maxDist float64) (bool, float64) {
		return true, 0
	})
	forwardCamera = Camera{Forward: mgl64.Vec3{0, 0, 1}, Right: mgl64.Vec3{1, 0, 0}}
)

func frame(ground Prober, dt float64) Frame {
	return Frame{
		Camera:   forwardCamera,
		Rotation: mgl64.QuatIdent(),
		Ground:   ground,
		Dt:       dt,
	}
}

func TestNewControllerSeedsMinFall(t *testing.T) {
	cfg := DefaultConfig()
	cfg.VertVel = 42
	c := NewController(cfg)
	if c.VerticalVelocity() != cfg.MinFall {
		t.Fatalf("expected vertical velocity %v, got %v", cfg.MinFall, c.VerticalVelocity())
	}
}

func TestTickAirborneGravity(t *testing.T) {
	cases := []struct {
		name    string
		termVel float64
		want    float64
	}{
		{"clamped_to_terminal", -10, -10},
		{"below_terminal_unclamped", -100, -91.5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DownAccel = 900
			cfg.MinFall = -1.5
			cfg.TermVel = c.termVel
			ctrl := NewController(cfg)

			res := ctrl.Tick(frame(nil, 0.1))
			if res.Ground != Airborne {
				t.Fatalf("expected airborne without ground, got %v", res.Ground)
			}
			if !approx(ctrl.VerticalVelocity(), c.want) {
				t.Fatalf("expected vertical velocity %v, got %v", c.want, ctrl.VerticalVelocity())
			}
			if !approx(res.Velocity.Y(), c.want) {
				t.Fatalf("expected result velocity y %v, got %v", c.want, res.Velocity.Y())
			}
		})
	}
}

func TestTickAirborneStrictlyDecreasesUntilTerminal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DownAccel = 10
	cfg.TermVel = -5
	cfg.MinFall = -1.5
	ctrl := NewController(cfg)

	prev := ctrl.VerticalVelocity()
	clamped := false
	for i := 0; i < 20; i++ {
		ctrl.Tick(frame(nil, 0.1))
		v := ctrl.VerticalVelocity()
		if clamped {
			if v != cfg.TermVel {
				t.Fatalf("tick %d: expected to stay at %v, got %v", i, cfg.TermVel, v)
			}
			continue
		}
		want := math.Max(prev-1, cfg.TermVel)
		if !approx(v, want) {
			t.Fatalf("tick %d: expected %v, got %v", i, want, v)
		}
		if v >= prev {
			t.Fatalf("tick %d: velocity did not decrease (%v -> %v)", i, prev, v)
		}
		clamped = v == cfg.TermVel
		prev = v
	}
	if !clamped {
		t.Fatalf("expected velocity to reach terminal velocity")
	}
}

func TestTickGroundedJump(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JumpVel = 6
	ctrl := NewController(cfg)
	ctrl.Input().Jump = 1

	res := ctrl.Tick(frame(flatGround, 1.0/60))
	if res.Ground != Grounded {
		t.Fatalf("expected grounded, got %v", res.Ground)
	}
	if ctrl.VerticalVelocity() != 6 {
		t.Fatalf("expected jump velocity 6, got %v", ctrl.VerticalVelocity())
	}
	if !ctrl.MidJump() {
		t.Fatalf("expected mid-jump after jumping")
	}
	if res.Velocity.Y() != 6 {
		t.Fatalf("expected result velocity y 6, got %v", res.Velocity.Y())
	}
}

func TestTickGroundedWithoutJumpRestsAtMinFall(t *testing.T) {
	cfg := DefaultConfig()
	ctrl := NewController(cfg)

	res := ctrl.Tick(frame(flatGround, 1.0/60))
	if ctrl.VerticalVelocity() != cfg.MinFall {
		t.Fatalf("expected %v, got %v", cfg.MinFall, ctrl.VerticalVelocity())
	}
	if res.State != Idle {
		t.Fatalf("expected idle, got %v", res.State)
	}
}

func TestJumpGuardKeepsAirborne(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JumpVel = 8
	cfg.DownAccel = 20
	cfg.TermVel = -30
	cfg.JumpGuard = 0.2
	ctrl := NewController(cfg)
	ctrl.Input().Jump = 1

	dt := 0.05
	ctrl.Tick(frame(flatGround, dt))
	if !ctrl.MidJump() {
		t.Fatalf("expected mid-jump after jumping")
	}

	res := ctrl.Tick(frame(flatGround, dt))
	if res.Ground != Airborne {
		t.Fatalf("expected airborne inside the jump guard, got %v", res.Ground)
	}
	if res.State != Jumping {
		t.Fatalf("expected jumping state, got %v", res.State)
	}
	if ctrl.Input().Jump != 0 {
		t.Fatalf("expected jump trigger cleared while airborne, got %v", ctrl.Input().Jump)
	}
	if ctrl.MidJump() {
		t.Fatalf("expected mid-jump released once velocity passed the release threshold")
	}
	if !approx(ctrl.VerticalVelocity(), 8-20*dt) {
		t.Fatalf("expected %v, got %v", 8-20*dt, ctrl.VerticalVelocity())
	}

	for i := 0; i < 3; i++ {
		ctrl.Tick(frame(flatGround, dt))
	}
	res = ctrl.Tick(frame(flatGround, dt))
	if res.Ground != Grounded {
		t.Fatalf("expected grounded after the guard elapsed, got %v", res.Ground)
	}
	if ctrl.VerticalVelocity() != cfg.MinFall {
		t.Fatalf("expected rest velocity %v, got %v", cfg.MinFall, ctrl.VerticalVelocity())
	}
}

func TestMidJumpBlocksRetrigger(t *testing.T) {
	cfg := DefaultConfig()
	cfg.JumpVel = 4 // below the release threshold, the latch never clears
	cfg.JumpGuard = 0
	ctrl := NewController(cfg)

	ctrl.Input().Jump = 1
	ctrl.Tick(frame(flatGround, 0.01))
	if ctrl.VerticalVelocity() != 4 || !ctrl.MidJump() {
		t.Fatalf("expected first jump, got v=%v midJump=%v", ctrl.VerticalVelocity(), ctrl.MidJump())
	}

	ctrl.Input().Jump = 1
	ctrl.Tick(frame(flatGround, 0.01))
	if ctrl.VerticalVelocity() != cfg.MinFall {
		t.Fatalf("expected no second jump while mid-jump, got %v", ctrl.VerticalVelocity())
	}
}

func TestSpeedSelection(t *testing.T) {
	cases := []struct {
		name       string
		forward    float64
		sideward   float64
		run        float64
		wantSpeed  float64
		wantFlags  Flags
		wantForVel float64
	}{
		{"walk_forward", 1, 0, 0, 5, Flags{Walking: true}, 5},
		{"run_forward", 1, 0, 1, 9, Flags{Running: true}, 9},
		{"walk_half_axis", 0.5, 0, 0, 2.5, Flags{Walking: true}, 5},
		{"idle", 0, 0, 1, 0, Flags{}, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.WalkSpeed = 5
			cfg.RunSpeed = 9
			ctrl := NewController(cfg)
			ctrl.Poll(AxesFunc(func(name string) float64 {
				switch name {
				case AxisVertical:
					return c.forward
				case AxisHorizontal:
					return c.sideward
				case AxisRun:
					return c.run
				}
				return 0
			}))

			res := ctrl.Tick(frame(flatGround, 1.0/60))
			speed := mgl64.Vec3{res.Velocity.X(), 0, res.Velocity.Z()}.Len()
			if !approx(speed, c.wantSpeed) {
				t.Fatalf("expected horizontal speed %v, got %v", c.wantSpeed, speed)
			}
			if res.Flags != c.wantFlags {
				t.Fatalf("expected flags %+v, got %+v", c.wantFlags, res.Flags)
			}
			if ctrl.Config().ForwardVel != c.wantForVel {
				t.Fatalf("expected forward velocity %v, got %v", c.wantForVel, ctrl.Config().ForwardVel)
			}
			if ctrl.Input().Run != 0 {
				t.Fatalf("expected run trigger consumed, got %v", ctrl.Input().Run)
			}
		})
	}
}

func TestFlagsStayActiveInAir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WalkSpeed = 3
	ctrl := NewController(cfg)
	ctrl.Input().Forward = 1

	res := ctrl.Tick(frame(nil, 1.0/60))
	if !res.Flags.Walking {
		t.Fatalf("expected walk flag while airborne")
	}
	if res.State != Jumping {
		t.Fatalf("expected jumping state, got %v", res.State)
	}
	if res.State.Flags() != (Flags{}) {
		t.Fatalf("expected jumping state to set no flags")
	}
}

func TestTurnTowardsHeading(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RotateVel = 250
	cfg.WalkSpeed = 4
	ctrl := NewController(cfg)
	ctrl.Input().Sideward = 1

	dt := 0.01
	res := ctrl.Tick(frame(flatGround, dt))
	want := math.Pi / 2 * 250 * dt
	if !approx(res.YawDelta, want) {
		t.Fatalf("expected yaw delta %v, got %v", want, res.YawDelta)
	}
	if Forward(res.Rotation).X() <= 0 {
		t.Fatalf("expected to turn towards +X, forward is %v", Forward(res.Rotation))
	}
	if res.Velocity.X() <= 0 {
		t.Fatalf("expected velocity to follow the new forward, got %v", res.Velocity)
	}
}

func TestNoInputNoTurn(t *testing.T) {
	ctrl := NewController(DefaultConfig())
	rot := mgl64.QuatRotate(0.7, mgl64.Vec3{0, 1, 0})
	f := frame(flatGround, 0.1)
	f.Rotation = rot

	res := ctrl.Tick(f)
	if res.YawDelta != 0 {
		t.Fatalf("expected no yaw without input, got %v", res.YawDelta)
	}
	if res.Rotation != rot {
		t.Fatalf("expected rotation unchanged, got %v", res.Rotation)
	}
}

func TestDeltaIsVelocityTimesDt(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WalkSpeed = 5
	ctrl := NewController(cfg)
	ctrl.Input().Forward = 1

	dt := 0.02
	res := ctrl.Tick(frame(flatGround, dt))
	if !vecApprox(res.Delta, res.Velocity.Mul(dt)) {
		t.Fatalf("expected delta %v, got %v", res.Velocity.Mul(dt), res.Delta)
	}
}

func TestVerticalVelocityNeverBelowTerminal(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MinFall = -50 // even a resting bias below terminal is floored
	ctrl := NewController(cfg)
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 2000; i++ {
		var ground Prober
		if rng.Intn(2) == 0 {
			ground = flatGround
		}
		if rng.Intn(4) == 0 {
			ctrl.Input().Jump = 1
		}
		ctrl.Input().Forward = rng.Float64()*2 - 1
		ctrl.Tick(frame(ground, rng.Float64()*0.2))
		if ctrl.VerticalVelocity() < cfg.TermVel {
			t.Fatalf("tick %d: vertical velocity %v below terminal %v", i, ctrl.VerticalVelocity(), cfg.TermVel)
		}
	}
}

func TestSetConfigKeepsRuntimeFields(t *testing.T) {
	ctrl := NewController(DefaultConfig())
	ctrl.Tick(frame(nil, 0.001))
	vert := ctrl.VerticalVelocity()

	next := DefaultConfig()
	next.WalkSpeed = 12
	next.VertVel = 99
	ctrl.SetConfig(next)

	if ctrl.VerticalVelocity() != vert {
		t.Fatalf("expected vertical velocity %v preserved, got %v", vert, ctrl.VerticalVelocity())
	}
	if ctrl.Config().WalkSpeed != 12 {
		t.Fatalf("expected new walk speed, got %v", ctrl.Config().WalkSpeed)
	}
}

func TestSetConfigClampsToNewTerminalVelocity(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TermVel = -50
	ctrl := NewController(cfg)
	for i := 0; i < 200; i++ {
		ctrl.Tick(frame(nil, 0.1))
	}
	if ctrl.VerticalVelocity() != -50 {
		t.Fatalf("expected to fall at -50, got %v", ctrl.VerticalVelocity())
	}

	slower := cfg
	slower.TermVel = -10
	ctrl.SetConfig(slower)
	if ctrl.VerticalVelocity() != -10 {
		t.Fatalf("expected vertical velocity clamped to -10, got %v", ctrl.VerticalVelocity())
	}

	faster := cfg
	faster.TermVel = -80
	ctrl.SetConfig(faster)
	if ctrl.VerticalVelocity() != -10 {
		t.Fatalf("a lower terminal velocity should not change the current one, got %v", ctrl.VerticalVelocity())
	}
}

func TestProbeUsesConfiguredDistance(t *testing.T) {
	cfg := DefaultConfig()
	var gotDist float64
	var gotDir mgl64.Vec3
	probe := ProberFunc(func(origin, dir mgl64.Vec3, maxDist float64) (bool, float64) {
		gotDir, gotDist = dir, maxDist
		return false, 0
	})
	ctrl := NewController(cfg)
	ctrl.Tick(frame(probe, 0.1))

	if gotDist != DefaultGroundProbeDistance {
		t.Fatalf("expected probe distance %v, got %v", DefaultGroundProbeDistance, gotDist)
	}
	if gotDir != (mgl64.Vec3{0, -1, 0}) {
		t.Fatalf("expected downward probe, got %v", gotDir)
	}
}

func TestResetReturnsToRest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WalkSpeed = 3
	ctrl := NewController(cfg)
	ctrl.Input().Forward = 1
	ctrl.Input().Jump = 1
	ctrl.Tick(frame(flatGround, 0.1))
	if !ctrl.MidJump() {
		t.Fatalf("expected a jump before reset")
	}

	ctrl.Reset()
	if ctrl.MidJump() || ctrl.Ground() != Airborne {
		t.Fatalf("expected airborne without a latched jump, got midJump=%v ground=%v", ctrl.MidJump(), ctrl.Ground())
	}
	if ctrl.VerticalVelocity() != cfg.MinFall {
		t.Fatalf("expected vertical velocity %v, got %v", cfg.MinFall, ctrl.VerticalVelocity())
	}
	if *ctrl.Input() != (Input{}) {
		t.Fatalf("expected cleared input, got %+v", *ctrl.Input())
	}
	if ctrl.Config().WalkSpeed != 3 {
		t.Fatalf("expected tunables kept, got %+v", ctrl.Config())
	}

	// The jump guard no longer applies, so the very next grounded tick lands.
	if res := ctrl.Tick(frame(flatGround, 0.01)); res.Ground != Grounded {
		t.Fatalf("expected grounded after reset, got %v", res.Ground)
	}
}
