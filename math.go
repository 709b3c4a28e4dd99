package lambert

import (
	"math"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

const (
	deg2rad = math.Pi / 180
)

// norm returns the norm of a given vector which is supposed to be 2x1.
func norm(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1])
}

// unit returns the unit vector of a given vector.
func unit(a []float64) (b []float64) {
	n := norm(a)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return []float64{0, 0}
	}
	b = make([]float64, len(a))
	for i, val := range a {
		b[i] = val / n
	}
	return
}

// unitVec returns the unit vector of a given mat64.Vector.
func unitVec(a *mat64.Vector) (b *mat64.Vector) {
	b = mat64.NewVector(a.Len(), nil)
	n := mat64.Norm(a, 2)
	if floats.EqualWithinAbs(n, 0, 1e-12) {
		return // Nil vector
	}
	b.ScaleVec(1/n, a)
	return
}

// sign returns the sign of a given number.
func sign(v float64) float64 {
	if floats.EqualWithinAbs(v, 0, 1e-12) {
		return 1
	}
	return v / math.Abs(v)
}

// dot performs the inner product via mat64/BLAS.
func dot(a, b []float64) float64 {
	return mat64.Dot(mat64.NewVector(len(a), a), mat64.NewVector(len(b), b))
}

// cross returns the scalar cross product of two planar vectors, i.e. the z
// component of the full cross product with both vectors lifted onto the plane.
// Its sign tells prograde from retrograde.
func cross(a, b []float64) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// crossVec returns the scalar cross product from two planar mat64.Vectors.
func crossVec(a, b *mat64.Vector) float64 {
	return a.At(0, 0)*b.At(1, 0) - a.At(1, 0)*b.At(0, 0)
}

// cot returns the cotangent.
func cot(x float64) float64 {
	return 1 / math.Tan(x)
}

// rot returns the provided vector rotated by the angle θ, counterclockwise.
// This is the planar equivalent of the perifocal to inertial rotation.
func rot(θ float64, v []float64) []float64 {
	sθ, cθ := math.Sincos(θ)
	return []float64{v[0]*cθ - v[1]*sθ, v[0]*sθ + v[1]*cθ}
}

// Deg2rad converts degrees to radians, and enforced only positive numbers.
func Deg2rad(a float64) float64 {
	if a < 0 {
		a += 360
	}
	return math.Mod(a*deg2rad, 2*math.Pi)
}

// Rad2deg converts radians to degrees, and enforced only positive numbers.
func Rad2deg(a float64) float64 {
	if a < 0 {
		a += 2 * math.Pi
	}
	return math.Mod(a/deg2rad, 360)
}
