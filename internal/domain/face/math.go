package face

import "math"

// Vec3 is a position in the producer's tracking space.
type Vec3 struct {
	X, Y, Z float32
}

// Add returns the component-wise sum.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale multiplies every component by f.
func (v Vec3) Scale(f float32) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// IsFinite reports whether no component is NaN or infinite.
func (v Vec3) IsFinite() bool {
	return IsFinite(v.X) && IsFinite(v.Y) && IsFinite(v.Z)
}

// Quat is a rotation quaternion.
type Quat struct {
	X, Y, Z, W float32
}

// IdentityQuat is the rotation that does nothing.
var IdentityQuat = Quat{W: 1}

// IsValid reports whether every component is finite and within [-1, 1].
func (q Quat) IsValid() bool {
	for _, c := range [4]float32{q.X, q.Y, q.Z, q.W} {
		if !IsFinite(c) || c > 1 || c < -1 {
			return false
		}
	}

	return true
}

// Slerp interpolates spherically between a and b; t=0 yields a, t=1 yields b.
// The shortest arc is taken. Nearly parallel inputs fall back to a normalized lerp.
func Slerp(a, b Quat, t float32) Quat {
	ax, ay, az, aw := float64(a.X), float64(a.Y), float64(a.Z), float64(a.W)
	bx, by, bz, bw := float64(b.X), float64(b.Y), float64(b.Z), float64(b.W)
	tt := float64(t)

	cos := ax*bx + ay*by + az*bz + aw*bw
	if cos < 0 {
		cos = -cos
		bx, by, bz, bw = -bx, -by, -bz, -bw
	}

	var wa, wb float64

	if cos > 0.9995 {
		wa, wb = 1-tt, tt
	} else {
		theta := math.Acos(cos)
		sin := math.Sin(theta)
		wa = math.Sin((1-tt)*theta) / sin
		wb = math.Sin(tt*theta) / sin
	}

	x := wa*ax + wb*bx
	y := wa*ay + wb*by
	z := wa*az + wb*bz
	w := wa*aw + wb*bw

	if n := math.Sqrt(x*x + y*y + z*z + w*w); n > 0 {
		x, y, z, w = x/n, y/n, z/n, w/n
	}

	return Quat{X: float32(x), Y: float32(y), Z: float32(z), W: float32(w)}
}

// Pose is an eye pose as laid out by the producer: orientation first, then position.
type Pose struct {
	Orientation Quat
	Position    Vec3
}

// IdentityPose has identity orientation at the origin.
var IdentityPose = Pose{Orientation: IdentityQuat}

// IsFinite reports whether v is neither NaN nor infinite.
func IsFinite(v float32) bool {
	f := float64(v)

	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// Clamp01 limits v to [0, 1].
func Clamp01(v float32) float32 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}
