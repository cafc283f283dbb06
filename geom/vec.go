// Package geom provides the small amount of 2D geometry shared by the
// spatial index, the pheromone layer and the agents.
//
// Vectors are plain values. Every operation that could divide by a vanishing
// length (normalization, angles, spherical interpolation) resolves to a
// defined fallback instead of producing NaN or Inf.
package geom

import (
	"math"

	"gonum.org/v1/gonum/spatial/r2"
)

// ε is the threshold below which lengths and sines are treated as zero.
const ε = 1e-9

// A Vec2 is a 2D vector. It doubles as a point in world coordinates.
type Vec2 struct {
	X float64
	Y float64
}

// Point is a position in the world. It is the same type as Vec2 so that
// positions and displacements mix freely.
type Point = Vec2

// Polar returns a vector of length r pointing at angle θ (radians).
func Polar(r, θ float64) Vec2 {
	sin, cos := math.Sincos(θ)
	return Vec2{X: r * cos, Y: r * sin}
}

func (v Vec2) r2() r2.Vec { return r2.Vec(v) }

// Add returns v+w.
func (v Vec2) Add(w Vec2) Vec2 { return Vec2(r2.Add(v.r2(), w.r2())) }

// Sub returns v-w.
func (v Vec2) Sub(w Vec2) Vec2 { return Vec2(r2.Sub(v.r2(), w.r2())) }

// Scale returns f*v.
func (v Vec2) Scale(f float64) Vec2 { return Vec2(r2.Scale(f, v.r2())) }

// Dot returns the dot product of v and w.
func (v Vec2) Dot(w Vec2) float64 { return r2.Dot(v.r2(), w.r2()) }

// Mag returns the Euclidean length of v.
func (v Vec2) Mag() float64 { return r2.Norm(v.r2()) }

// MagSq returns the squared length of v.
func (v Vec2) MagSq() float64 { return r2.Norm2(v.r2()) }

// Dist returns the Euclidean distance between v and w.
func (v Vec2) Dist(w Vec2) float64 { return r2.Norm(r2.Sub(v.r2(), w.r2())) }

// IsZero reports whether v is (numerically) the zero vector.
func (v Vec2) IsZero() bool { return v.Mag() < ε }

// Normalize returns the unit vector colinear to v,
// or the zero vector when v has no length.
func (v Vec2) Normalize() Vec2 {
	if v.IsZero() {
		return Vec2{}
	}
	return Vec2(r2.Unit(v.r2()))
}

// ClampMag scales v down to length max if it is longer, otherwise v is returned unchanged.
func (v Vec2) ClampMag(max float64) Vec2 {
	m := v.Mag()
	if m <= max || m == 0 {
		return v
	}
	return v.Scale(max / m)
}

// Rotate returns v rotated counter-clockwise by θ radians.
func (v Vec2) Rotate(θ float64) Vec2 {
	return Vec2(r2.Rotate(v.r2(), θ, r2.Vec{}))
}

// Angle returns the direction of v in radians, between -π and π.
func (v Vec2) Angle() float64 {
	return math.Atan2(v.Y, v.X)
}

// Lerp returns the linear interpolation (1-t)*a + t*b.
func Lerp(a, b Vec2, t float64) Vec2 {
	return a.Scale(1 - t).Add(b.Scale(t))
}

// AngleBetween returns the unsigned angle between a and b in radians, in [0, π].
// It is 0 if either vector has no length.
func AngleBetween(a, b Vec2) float64 {
	n := a.Mag() * b.Mag()
	if n < ε {
		return 0
	}
	c := a.Dot(b) / n
	return math.Acos(math.Max(-1, math.Min(1, c)))
}

// Slerp spherically interpolates between the directions of a and b
// while linearly interpolating their lengths.
// When a and b are colinear (sin θ ≈ 0) or one of them is zero,
// it falls back to linear interpolation.
func Slerp(a, b Vec2, t float64) Vec2 {
	ma, mb := a.Mag(), b.Mag()
	if ma < ε || mb < ε {
		return Lerp(a, b, t)
	}
	θ := AngleBetween(a, b)
	sinθ := math.Sin(θ)
	if math.Abs(sinθ) < 1e-6 {
		return Lerp(a, b, t)
	}
	ua, ub := a.Scale(1/ma), b.Scale(1/mb)
	u := ua.Scale(math.Sin((1-t)*θ) / sinθ).Add(ub.Scale(math.Sin(t*θ) / sinθ))
	return u.Scale((1-t)*ma + t*mb)
}
