package lambert

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/gonum/floats"
)

const (
	eccentricityε = 5e-5                         // 0.00005
	angleε        = (5e-3 / 360) * (2 * math.Pi) // 0.005 degrees
	distanceε     = 2e1                          // 20 km
	velocityε     = 1e-6                         // in km/s
)

// Orbit defines a planar orbit via its orbital elements. The plane is the
// transfer plane itself, so only four elements survive: the semi-major axis,
// the eccentricity, the longitude of periapsis and the true anomaly.
// Velocity reconstruction assumes prograde (counterclockwise) motion.
type Orbit struct {
	a, e, ω, ν       float64
	Origin           CelestialObject // Orbit origin
	cacheHash        float64
	cachedR, cachedV []float64
}

// Energyξ returns the specific mechanical energy ξ.
func (o Orbit) Energyξ() float64 {
	return -o.Origin.μ / (2 * o.a)
}

// TrueLongλ returns the true longitude, i.e. the angle of the position
// vector from the x axis.
func (o Orbit) TrueLongλ() float64 {
	return math.Mod(o.ω+o.ν, 2*math.Pi)
}

// H returns the orbital angular momentum, signed: negative for clockwise
// motion.
func (o Orbit) H() float64 {
	return cross(o.RV())
}

// HNorm returns the norm of the orbital angular momentum.
func (o Orbit) HNorm() float64 {
	return math.Abs(o.H())
}

// SemiParameter returns the semi-parameter.
func (o Orbit) SemiParameter() float64 {
	return o.a * (1 - o.e*o.e)
}

// Apoapsis returns the apoapsis.
func (o Orbit) Apoapsis() float64 {
	return o.a * (1 + o.e)
}

// Periapsis returns the periapsis.
func (o Orbit) Periapsis() float64 {
	return o.a * (1 - o.e)
}

// Period returns the period of this orbit.
func (o Orbit) Period() time.Duration {
	// The time package does not trivially handle fractions of a second, so let's
	// compute this in a convoluted way...
	seconds := 2 * math.Pi * math.Sqrt(math.Pow(o.a, 3)/o.Origin.μ)
	duration, _ := time.ParseDuration(fmt.Sprintf("%.6fs", seconds))
	return duration
}

// RV helps with the cache.
func (o *Orbit) RV() ([]float64, []float64) {
	if o.hashValid() {
		return o.cachedR, o.cachedV
	}
	p := o.SemiParameter()
	ν := o.ν
	ω := o.ω
	if o.e < eccentricityε {
		// Circular: the periapsis is undefined, collapse everything onto
		// the true longitude.
		ω = 0
		ν = o.TrueLongλ()
	}
	sinν, cosν := math.Sincos(ν)
	R := rot(ω, []float64{p * cosν / (1 + o.e*cosν), p * sinν / (1 + o.e*cosν)})
	V := rot(ω, []float64{-math.Sqrt(o.Origin.μ/p) * sinν, math.Sqrt(o.Origin.μ/p) * (o.e + cosν)})
	o.cachedR = R
	o.cachedV = V
	o.computeHash()
	return R, V
}

// R returns the radius vector.
func (o Orbit) R() (R []float64) {
	R, _ = o.RV()
	return R
}

// RNorm returns the norm of the radius vector, but without computing the radius vector.
// If only the norm is needed, it is encouraged to use this function instead of norm(o.R()).
func (o Orbit) RNorm() float64 {
	return o.SemiParameter() / (1 + o.e*math.Cos(o.ν))
}

// V returns the velocity vector.
func (o Orbit) V() (V []float64) {
	_, V = o.RV()
	return V
}

// VNorm returns the norm of the velocity vector, but without computing the velocity vector.
// If only the norm is needed, it is encouraged to use this function instead of norm(o.V()).
func (o Orbit) VNorm() float64 {
	if floats.EqualWithinAbs(o.e, 0, eccentricityε) {
		return math.Sqrt(o.Origin.μ / o.RNorm())
	}
	if floats.EqualWithinAbs(o.e, 1, eccentricityε) {
		return math.Sqrt(2 * o.Origin.μ / o.RNorm())
	}
	return math.Sqrt(2 * (o.Origin.μ/o.RNorm() + o.Energyξ()))
}

// Elements returns the planar orbital elements along with the true longitude.
func (o *Orbit) Elements() (a, e, ω, ν, λ float64) {
	a = o.a
	e = o.e
	ω = o.ω
	ν = o.ν
	λ = o.TrueLongλ()
	return
}

// Waypoints samples n positions along the orbit, equally spaced in true
// anomaly over one revolution starting from the current position. Handy to
// outline the conic on a plot without propagating anything.
func (o Orbit) Waypoints(n int) [][]float64 {
	if n < 2 {
		panic("at least two waypoints needed")
	}
	pts := make([][]float64, n)
	for i := 0; i < n; i++ {
		νi := math.Mod(o.ν+2*math.Pi*float64(i)/float64(n), 2*math.Pi)
		sampled := Orbit{o.a, o.e, o.ω, νi, o.Origin, 0.0, nil, nil}
		pts[i] = sampled.R()
	}
	return pts
}

func (o *Orbit) computeHash() {
	o.cacheHash = o.ω + o.ν + o.e + o.a
}

func (o Orbit) hashValid() bool {
	return o.cacheHash == o.ω+o.ν+o.e+o.a
}

// String implements the stringer interface (hence the value receiver)
func (o Orbit) String() string {
	if o.e < eccentricityε {
		// Circular orbit
		return fmt.Sprintf("a=%.1f e=%.4f λ=%.3f", o.a, o.e, Rad2deg(o.TrueLongλ()))
	}
	return fmt.Sprintf("a=%.1f e=%.4f ω=%.3f ν=%.3f", o.a, o.e, Rad2deg(o.ω), Rad2deg(o.ν))
}

// Equals returns whether two orbits are identical with free true anomaly.
// Use StrictlyEquals to also check true anomaly.
func (o Orbit) Equals(o1 Orbit) (bool, error) {
	if !o.Origin.Equals(o1.Origin) {
		return false, errors.New("different origin")
	}
	if !floats.EqualWithinAbs(o.a, o1.a, distanceε) {
		return false, errors.New("semi major axis invalid")
	}
	if !floats.EqualWithinAbs(o.e, o1.e, eccentricityε) {
		return false, errors.New("eccentricity invalid")
	}
	if o.e < eccentricityε {
		// Circular orbit
		if !floats.EqualWithinAbs(o.TrueLongλ(), o1.TrueLongλ(), angleε) {
			return false, errors.New("true longitude invalid")
		}
	} else if !floats.EqualWithinAbs(o.ω, o1.ω, angleε) {
		return false, errors.New("longitude of periapsis invalid")
	}
	return true, nil
}

// StrictlyEquals returns whether two orbits are identical.
func (o Orbit) StrictlyEquals(o1 Orbit) (bool, error) {
	// Only check for non circular orbits
	if o.e > eccentricityε && !floats.EqualWithinAbs(o.ν, o1.ν, angleε) {
		return false, errors.New("true anomaly invalid")
	}
	return o.Equals(o1)
}

// NewOrbitFromOE creates an orbit from the planar orbital elements.
// WARNING: Angles must be in degrees not radian.
func NewOrbitFromOE(a, e, ω, ν float64, c CelestialObject) *Orbit {
	// Making an approximation for circular orbits.
	if e < eccentricityε {
		e = eccentricityε
	}
	orbit := Orbit{a, e, Deg2rad(ω), Deg2rad(ν), c, 0.0, nil, nil}
	orbit.RV()
	orbit.computeHash()
	return &orbit
}

// NewOrbitFromRV returns orbital elements from the R and V vectors. Needed for prop
func NewOrbitFromRV(R, V []float64, c CelestialObject) *Orbit {
	// Planar version of Vallado's RV2COE, page 113
	v := norm(V)
	r := norm(R)
	ξ := (v*v)/2 - c.μ/r
	a := -c.μ / (2 * ξ)
	rv := dot(R, V)
	eVec := make([]float64, 2, 2)
	for i := 0; i < 2; i++ {
		eVec[i] = ((v*v-c.μ/r)*R[i] - rv*V[i]) / c.μ
	}
	e := norm(eVec)
	if e >= 1 {
		fmt.Println("[warning] parabolic and hyperbolic orbits not fully supported")
	}
	var ω, ν float64
	if e < eccentricityε {
		// Circular: the periapsis is undefined, so ν carries the true
		// longitude instead.
		ν = math.Atan2(R[1], R[0])
	} else {
		ω = math.Atan2(eVec[1], eVec[0])
		cosν := dot(eVec, R) / (e * r)
		if abscosν := math.Abs(cosν); abscosν > 1 && floats.EqualWithinAbs(abscosν, 1, 1e-12) {
			// Rounding can push the cosine just beyond unity.
			cosν = sign(cosν)
		}
		ν = math.Acos(cosν)
		if rv < 0 {
			ν = 2*math.Pi - ν
		}
	}
	// Fix rounding errors.
	ω = math.Mod(ω+2*math.Pi, 2*math.Pi)
	ν = math.Mod(ν+2*math.Pi, 2*math.Pi)

	orbit := Orbit{a, e, ω, ν, c, 0.0, R, V}
	orbit.computeHash()
	return &orbit
}

// Helper functions go here.

// Radii2ae returns the semi major axis and the eccentricty from the radii.
func Radii2ae(rA, rP float64) (a, e float64) {
	if rA < rP {
		panic("periapsis cannot be greater than apoapsis")
	}
	a = (rP + rA) / 2
	e = (rA - rP) / (rA + rP)
	return
}
