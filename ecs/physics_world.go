package ecs

import (
	"log/slog"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

const (
	// contactSkin keeps resolved bodies a hair away from the faces they hit.
	contactSkin = 1e-4
	overlapEps  = 1e-7
)

// Slab is an axis-aligned block of static level geometry.
type Slab struct {
	Min mgl64.Vec3
	Max mgl64.Vec3
}

// Top returns the walkable height of the slab.
func (s Slab) Top() float64 { return s.Max.Y() }

// Contact reports which sides of a body touched geometry during a move.
type Contact struct {
	Below bool
	Above bool
	Sides bool
}

// BodyShape is the upright box a kinematic body occupies, measured from its
// feet.
type BodyShape struct {
	Radius     float64
	Height     float64
	StepOffset float64
}

// PhysicsWorld owns the static level geometry. Slab footprints live in a
// Chipmunk space over the XZ plane, which acts as the broadphase; heights are
// resolved here.
type PhysicsWorld struct {
	space *cp.Space
	slabs []Slab

	shapeToSlab map[*cp.Shape]int
}

// NewPhysicsWorld creates a physics world holding the given slabs.
func NewPhysicsWorld(slabs ...Slab) *PhysicsWorld {
	pw := &PhysicsWorld{
		space:       cp.NewSpace(),
		shapeToSlab: make(map[*cp.Shape]int),
	}
	for _, s := range slabs {
		pw.AddSlab(s)
	}
	return pw
}

// AddSlab registers a static slab. Min and Max are reordered if needed.
func (pw *PhysicsWorld) AddSlab(s Slab) {
	for i := 0; i < 3; i++ {
		if s.Min[i] > s.Max[i] {
			s.Min[i], s.Max[i] = s.Max[i], s.Min[i]
		}
	}
	shape := cp.NewBox2(pw.space.StaticBody, footprint(s.Min, s.Max), 0)
	pw.space.AddShape(shape)
	pw.shapeToSlab[shape] = len(pw.slabs)
	pw.slabs = append(pw.slabs, s)
	slog.Debug("physics: added slab", "min", s.Min, "max", s.Max)
}

// Slabs returns the registered geometry.
func (pw *PhysicsWorld) Slabs() []Slab {
	if pw == nil {
		return nil
	}
	return pw.slabs
}

func footprint(min, max mgl64.Vec3) cp.BB {
	return cp.BB{L: min.X(), B: min.Z(), R: max.X(), T: max.Z()}
}

// candidates returns the slabs whose footprint overlaps the XZ bounds of
// [min, max].
func (pw *PhysicsWorld) candidates(min, max mgl64.Vec3) []Slab {
	var out []Slab
	bb := footprint(min, max)
	bb.L -= overlapEps
	bb.B -= overlapEps
	bb.R += overlapEps
	bb.T += overlapEps
	pw.space.BBQuery(bb, cp.SHAPE_FILTER_ALL, func(shape *cp.Shape, _ interface{}) {
		if i, ok := pw.shapeToSlab[shape]; ok {
			out = append(out, pw.slabs[i])
		}
	}, nil)
	return out
}

// Raycast returns the distance to the nearest slab along dir, if one lies
// within maxDist. A ray starting on or inside a slab hits at distance 0.
func (pw *PhysicsWorld) Raycast(origin, dir mgl64.Vec3, maxDist float64) (bool, float64) {
	if pw == nil || maxDist <= 0 || dir.Len() == 0 {
		return false, 0
	}
	dir = dir.Normalize()
	end := origin.Add(dir.Mul(maxDist))
	lo := mgl64.Vec3{math.Min(origin.X(), end.X()), 0, math.Min(origin.Z(), end.Z())}
	hi := mgl64.Vec3{math.Max(origin.X(), end.X()), 0, math.Max(origin.Z(), end.Z())}

	best, hit := maxDist, false
	for _, s := range pw.candidates(lo, hi) {
		if t, ok := rayBox(origin, dir, s.Min, s.Max); ok && t <= best {
			best, hit = t, true
		}
	}
	if !hit {
		return false, 0
	}
	return true, best
}

func rayBox(o, d, min, max mgl64.Vec3) (float64, bool) {
	tmin, tmax := 0.0, math.Inf(1)
	for i := 0; i < 3; i++ {
		if math.Abs(d[i]) < 1e-12 {
			if o[i] < min[i] || o[i] > max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / d[i]
		t1, t2 := (min[i]-o[i])*inv, (max[i]-o[i])*inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = math.Max(tmin, t1)
		tmax = math.Min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}

// Move sweeps a body from pos by delta, one axis at a time: X, then Z, then Y.
// Horizontal moves into slabs taller than the step offset are stopped at the
// face; shorter ones are stepped onto. Vertical moves land on slab tops and
// stop under slab bottoms.
func (pw *PhysicsWorld) Move(pos, delta mgl64.Vec3, shape BodyShape) (mgl64.Vec3, Contact) {
	var contact Contact
	if pw == nil {
		return pos.Add(delta), contact
	}

	reach := math.Abs(delta.X()) + math.Abs(delta.Z()) + shape.Radius
	near := pw.candidates(
		mgl64.Vec3{pos.X() - reach, 0, pos.Z() - reach},
		mgl64.Vec3{pos.X() + reach, 0, pos.Z() + reach},
	)

	for _, axis := range [2]int{0, 2} {
		if delta[axis] == 0 {
			continue
		}
		next := pos
		next[axis] += delta[axis]
		for _, s := range near {
			if !bodyOverlaps(next, shape, s) {
				continue
			}
			if s.Top()-next.Y() <= shape.StepOffset {
				next[1] = s.Top()
				contact.Below = true
				continue
			}
			if delta[axis] > 0 {
				next[axis] = s.Min[axis] - shape.Radius - contactSkin
			} else {
				next[axis] = s.Max[axis] + shape.Radius + contactSkin
			}
			contact.Sides = true
		}
		pos = next
	}

	y := pos.Y() + delta.Y()
	for _, s := range near {
		if !footprintOverlaps(pos, shape, s) {
			continue
		}
		switch {
		case delta.Y() <= 0 && s.Top() <= pos.Y()+overlapEps && s.Top() >= y:
			y = s.Top()
			contact.Below = true
		case delta.Y() > 0 && s.Min.Y() >= pos.Y()+shape.Height-overlapEps && s.Min.Y() < y+shape.Height:
			y = s.Min.Y() - shape.Height
			contact.Above = true
		}
	}
	pos[1] = y
	return pos, contact
}

func footprintOverlaps(pos mgl64.Vec3, shape BodyShape, s Slab) bool {
	return pos.X()-shape.Radius < s.Max.X()-overlapEps && pos.X()+shape.Radius > s.Min.X()+overlapEps &&
		pos.Z()-shape.Radius < s.Max.Z()-overlapEps && pos.Z()+shape.Radius > s.Min.Z()+overlapEps
}

func bodyOverlaps(pos mgl64.Vec3, shape BodyShape, s Slab) bool {
	return footprintOverlaps(pos, shape, s) &&
		pos.Y() < s.Max.Y()-overlapEps && pos.Y()+shape.Height > s.Min.Y()+overlapEps
}
