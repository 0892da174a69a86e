package system

import (
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"github.com/milk9111/thirdperson/locomotion"
)

const testDt = 1.0 / 60

type testScene struct {
	w      *ecs.World
	player ecs.Entity
	loco   *component.Locomotion
	t      *component.Transform
	in     *component.Input
	anim   *component.Animator
}

func newTestScene(t *testing.T, withPhysics bool) *testScene {
	t.Helper()
	w := ecs.NewWorld()
	if withPhysics {
		w.SetPhysicsWorld(ecs.NewPhysicsWorld(ecs.Slab{
			Min: mgl64.Vec3{-10, -1, -10},
			Max: mgl64.Vec3{10, 0, 10},
		}))
	}

	cfg := locomotion.DefaultConfig()
	cfg.WalkSpeed = 5
	cfg.RunSpeed = 10

	s := &testScene{
		w:      w,
		player: ecs.CreateEntity(w),
		loco:   &component.Locomotion{Controller: locomotion.NewController(cfg)},
		t:      &component.Transform{Rotation: mgl64.QuatIdent()},
		in:     &component.Input{},
		anim:   component.NewAnimator("idle", nil),
	}
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatal(err)
		}
	}
	must(ecs.Add(w, s.player, component.PlayerTagComponent.Kind(), &component.PlayerTag{}))
	must(ecs.Add(w, s.player, component.TransformComponent.Kind(), s.t))
	must(ecs.Add(w, s.player, component.InputComponent.Kind(), s.in))
	must(ecs.Add(w, s.player, component.KinematicBodyComponent.Kind(), &component.KinematicBody{Radius: 0.5, Height: 2, StepOffset: 0.3}))
	must(ecs.Add(w, s.player, component.AnimatorComponent.Kind(), s.anim))
	must(ecs.Add(w, s.player, component.LocomotionComponent.Kind(), s.loco))
	must(ecs.Add(w, s.player, component.SpawnComponent.Kind(), &component.Spawn{Position: mgl64.Vec3{0, 1, 0}, KillY: -20}))

	cam := ecs.CreateEntity(w)
	must(ecs.Add(w, cam, component.CameraComponent.Kind(), &component.Camera{
		Forward: mgl64.Vec3{0, 0, 1},
		Right:   mgl64.Vec3{1, 0, 0},
	}))
	return s
}

func eventTypes(evts []ecs.Event) []string {
	out := make([]string, 0, len(evts))
	for _, e := range evts {
		out = append(out, e.Type)
	}
	return out
}

func hasEvent(evts []ecs.Event, typ string) bool {
	for _, e := range evts {
		if e.Type == typ {
			return true
		}
	}
	return false
}

func TestLocomotionSystemWalksOnFloor(t *testing.T) {
	s := newTestScene(t, true)
	sys := NewLocomotionSystem(testDt)

	s.in.Vertical = 1
	sys.Update(s.w)

	if s.loco.Actor == nil {
		t.Fatal("expected actor to be built on first update")
	}
	if s.loco.Last.Ground != locomotion.Grounded || s.loco.Last.State != locomotion.Walking {
		t.Fatalf("expected grounded walking, got %v %v", s.loco.Last.Ground, s.loco.Last.State)
	}
	if got := s.t.Position.Z(); got <= 0 {
		t.Fatalf("expected forward movement, got %v", s.t.Position)
	}
	if s.t.Position.Y() != 0 {
		t.Fatalf("expected the mover to keep the body on the floor, got %v", s.t.Position)
	}
	kb, _ := ecs.Get(s.w, s.player, component.KinematicBodyComponent.Kind())
	if !kb.Below {
		t.Fatal("expected ground contact")
	}
	if !s.anim.Bool(locomotion.ParamWalking) || !s.anim.Bool(locomotion.ParamGrounded) {
		t.Fatal("expected animator parameters to be set")
	}
	if !hasEvent(s.w.Events().Drain(), ecs.EventLanded) {
		t.Fatal("expected the first grounded tick to report a landing")
	}

	for i := 0; i < 10; i++ {
		sys.Update(s.w)
	}
	if hasEvent(s.w.Events().Drain(), ecs.EventLanded) {
		t.Fatal("did not expect another landing while walking")
	}
}

func TestLocomotionSystemJumpAndLand(t *testing.T) {
	s := newTestScene(t, true)
	sys := NewLocomotionSystem(testDt)
	sys.Update(s.w)
	s.w.Events().Drain()

	s.in.Jump = 1
	sys.Update(s.w)
	s.in.Jump = 0

	evts := s.w.Events().Drain()
	if !hasEvent(evts, ecs.EventJumped) {
		t.Fatalf("expected jump event, got %v", eventTypes(evts))
	}
	if s.t.Position.Y() <= 0 {
		t.Fatalf("expected to leave the floor, got %v", s.t.Position)
	}

	landed := false
	for i := 0; i < 60 && !landed; i++ {
		sys.Update(s.w)
		landed = hasEvent(s.w.Events().Drain(), ecs.EventLanded)
	}
	if !landed {
		t.Fatal("expected to land within a second")
	}
}

func TestLocomotionSystemRespawnsBelowKillPlane(t *testing.T) {
	s := newTestScene(t, true)
	s.t.Position = mgl64.Vec3{50, -19.95, 0}
	sys := NewLocomotionSystem(testDt)

	sys.Update(s.w)

	if s.t.Position != (mgl64.Vec3{0, 1, 0}) {
		t.Fatalf("expected respawn at the spawn point, got %v", s.t.Position)
	}
	if !hasEvent(s.w.Events().Drain(), ecs.EventRespawned) {
		t.Fatal("expected respawn event")
	}
	if s.loco.Controller.VerticalVelocity() != s.loco.Controller.Config().MinFall {
		t.Fatalf("expected controller reset, got vertical velocity %v", s.loco.Controller.VerticalVelocity())
	}
}

func TestLocomotionSystemPanicsWithoutServices(t *testing.T) {
	s := newTestScene(t, false)
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic without a physics world")
		}
		msg, _ := r.(string)
		if !strings.Contains(msg, "ground prober") {
			t.Fatalf("expected the missing service to be named, got %v", r)
		}
	}()
	NewLocomotionSystem(testDt).Update(s.w)
}

func TestNewActorReportsMissingCamera(t *testing.T) {
	w := ecs.NewWorld()
	w.SetPhysicsWorld(ecs.NewPhysicsWorld())
	e := ecs.CreateEntity(w)
	_ = ecs.Add(w, e, component.InputComponent.Kind(), &component.Input{})

	_, err := newActor(w, e, locomotion.NewController(locomotion.DefaultConfig()))
	if !errors.Is(err, locomotion.ErrMissingService) || !strings.Contains(err.Error(), "camera") {
		t.Fatalf("expected missing camera, got %v", err)
	}
}
