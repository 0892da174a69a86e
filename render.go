package main

import (
	"fmt"
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/thirdperson/ecs"
	"github.com/milk9111/thirdperson/ecs/component"
	"golang.org/x/image/colornames"
)

// pixelsPerUnit is the top-down view scale.
const pixelsPerUnit = 24.0

// view maps world XZ onto the screen, centred on a focus point. +Z is up the
// screen.
type view struct {
	focus mgl64.Vec3
}

func (v view) project(p mgl64.Vec3) (float32, float32) {
	x := (p.X()-v.focus.X())*pixelsPerUnit + baseWidth/2
	y := -(p.Z()-v.focus.Z())*pixelsPerUnit + baseHeight/2
	return float32(x), float32(y)
}

func platformColor(name string, top float64) color.Color {
	c, ok := colornames.Map[name]
	if !ok {
		c = colornames.Gray
	}
	// Taller platforms are drawn brighter.
	k := 0.7 + 0.1*top
	if k > 1.2 {
		k = 1.2
	}
	scale := func(v uint8) uint8 {
		f := float64(v) * k
		if f > 255 {
			f = 255
		}
		return uint8(f)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 255}
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	tr, ok := ecs.Get(g.world, g.scene.Player, component.TransformComponent.Kind())
	if !ok {
		return
	}
	v := view{focus: tr.Position}

	ecs.ForEach(g.world, component.PlatformComponent.Kind(), func(_ ecs.Entity, p *component.Platform) {
		x0, y1 := v.project(p.Min)
		x1, y0 := v.project(p.Max)
		vector.FillRect(screen, x0, y0, x1-x0, y1-y0, platformColor(p.Color, p.Max.Y()), false)
		vector.StrokeRect(screen, x0, y0, x1-x0, y1-y0, 1, colornames.Black, false)
	})

	g.drawBodies(screen, v)
	g.drawCamera(screen, v)
	g.drawHUD(screen, tr)
}

// drawBodies draws every kinematic body as a disc with a facing line. Bodies
// pressed against a wall are outlined.
func (g *Game) drawBodies(screen *ebiten.Image, v view) {
	ecs.ForEach2(g.world, component.TransformComponent.Kind(), component.KinematicBodyComponent.Kind(),
		func(e ecs.Entity, tr *component.Transform, kb *component.KinematicBody) {
			fill := colornames.Steelblue
			if e == g.scene.Player {
				fill = colornames.Crimson
			}
			px, py := v.project(tr.Position)
			r := float32(kb.Radius * pixelsPerUnit)
			vector.FillCircle(screen, px, py, r, fill, true)
			if kb.Sides {
				vector.StrokeCircle(screen, px, py, r, 2, colornames.Orange, true)
			}

			fwd := tr.Rotation.Rotate(mgl64.Vec3{0, 0, 1})
			hx, hy := v.project(tr.Position.Add(fwd.Mul(kb.Radius * 2)))
			vector.StrokeLine(screen, px, py, hx, hy, 2, colornames.White, true)
		})
}

func (g *Game) drawCamera(screen *ebiten.Image, v view) {
	cam, ok := ecs.Get(g.world, g.scene.Camera, component.CameraComponent.Kind())
	if !ok {
		return
	}
	cx, cy := v.project(cam.Position)
	vector.FillCircle(screen, cx, cy, 4, colornames.Gold, true)
	fx, fy := v.project(cam.Position.Add(cam.Forward.Mul(1.5)))
	vector.StrokeLine(screen, cx, cy, fx, fy, 1, colornames.Gold, true)
}

func (g *Game) drawHUD(screen *ebiten.Image, tr *component.Transform) {
	lines := []string{fmt.Sprintf("FPS %.1f  TPS %.1f  tick %d", ebiten.ActualFPS(), ebiten.ActualTPS(), g.pipe.Ticks())}

	if loco, ok := ecs.Get(g.world, g.scene.Player, component.LocomotionComponent.Kind()); ok {
		res := loco.Last
		lines = append(lines,
			fmt.Sprintf("state %s  ground %s", res.State, res.Ground),
			fmt.Sprintf("pos %.2f %.2f %.2f", tr.Position.X(), tr.Position.Y(), tr.Position.Z()),
			fmt.Sprintf("vel %.2f %.2f %.2f", res.Velocity.X(), res.Velocity.Y(), res.Velocity.Z()),
		)
		if g.opts.Debug {
			lines = append(lines,
				fmt.Sprintf("heading %.2f %.2f  yaw %+.2f", res.Heading.X(), res.Heading.Z(), res.YawDelta),
				fmt.Sprintf("mid-jump %v", loco.Controller.MidJump()),
			)
		}
	}
	if anim, ok := ecs.Get(g.world, g.scene.Player, component.AnimatorComponent.Kind()); ok {
		lines = append(lines, fmt.Sprintf("clip %s %.1fs", anim.Current, anim.Time))
		if g.opts.Debug {
			for el := anim.Params.Front(); el != nil; el = el.Next() {
				lines = append(lines, fmt.Sprintf("  %s=%v", el.Key, el.Value))
			}
		}
	}
	if g.lastEvent != "" {
		lines = append(lines, "last event "+g.lastEvent)
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(8, 8)
	op.ColorScale.ScaleWithColor(colornames.White)
	for _, line := range lines {
		text.Draw(screen, line, g.face, op)
		op.GeoM.Translate(0, 16)
	}
}
