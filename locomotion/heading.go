package locomotion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// normalizeEpsilon matches the engine convention of returning the zero vector
// when normalising something too short to have a direction.
const normalizeEpsilon = 1e-5

var (
	worldUp      = mgl64.Vec3{0, 1, 0}
	worldDown    = mgl64.Vec3{0, -1, 0}
	localForward = mgl64.Vec3{0, 0, 1}
)

// Camera is the orientation the movement axes are relative to.
type Camera struct {
	Forward mgl64.Vec3
	Right   mgl64.Vec3
}

// FlattenForward projects v onto the horizontal plane and renormalises it.
func FlattenForward(v mgl64.Vec3) mgl64.Vec3 {
	return normalizeOrZero(mgl64.Vec3{v.X(), 0, v.Z()})
}

// DesiredDirection combines the movement axes with the camera basis. The
// result never exceeds unit length, so diagonal input is not faster.
func DesiredDirection(in Input, cam Camera) mgl64.Vec3 {
	dir := FlattenForward(cam.Forward).Mul(in.Forward).Add(cam.Right.Mul(in.Sideward))
	if dir.Len() > 1 {
		dir = dir.Normalize()
	}
	return dir
}

// LocalHeading expresses a world direction in the frame of rot.
func LocalHeading(dir mgl64.Vec3, rot mgl64.Quat) mgl64.Vec3 {
	return rot.Inverse().Rotate(dir)
}

// TurnAngle is the yaw in degrees to apply this tick for a local heading.
// The signed heading angle in radians is scaled by rotateVel and dt as-is.
func TurnAngle(heading mgl64.Vec3, rotateVel, dt float64) float64 {
	if heading.X() == 0 && heading.Z() == 0 {
		return 0
	}
	return math.Atan2(heading.X(), heading.Z()) * rotateVel * dt
}

// Yaw rotates rot about its own up axis by deg degrees.
func Yaw(rot mgl64.Quat, deg float64) mgl64.Quat {
	if deg == 0 {
		return rot
	}
	return rot.Mul(mgl64.QuatRotate(mgl64.DegToRad(deg), worldUp)).Normalize()
}

// Forward is the world-space forward axis of rot.
func Forward(rot mgl64.Quat) mgl64.Vec3 {
	return rot.Rotate(localForward)
}

func normalizeOrZero(v mgl64.Vec3) mgl64.Vec3 {
	if v.Len() <= normalizeEpsilon {
		return mgl64.Vec3{}
	}
	return v.Normalize()
}
