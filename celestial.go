package lambert

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/soniakeys/meeus/base"
	"github.com/soniakeys/meeus/julian"
	"github.com/soniakeys/meeus/planetposition"
	"github.com/soniakeys/meeus/pluto"
)

const (
	// AU is one astronomical unit in kilometers.
	AU = 1.49597870700e8
)

// CelestialObject defines a celestial object. The solver works in the
// ecliptic plane, so a body is no more than a name, a size, a gravitational
// parameter and the mean state of its heliocentric orbit.
type CelestialObject struct {
	Name   string
	Radius float64
	a      float64 // Semi-major axis of the heliocentric orbit, in km
	μ      float64
	l0     float64 // Mean longitude at J2000, in degrees
	PP     *planetposition.V87Planet
}

// GM returns μ (which is unexported because it's a lowercase letter)
func (c CelestialObject) GM() float64 {
	return c.μ
}

// String implements the Stringer interface.
func (c CelestialObject) String() string {
	return c.Name + " body"
}

// Equals returns whether the provided celestial object is the same.
func (c *CelestialObject) Equals(b CelestialObject) bool {
	return c.Name == b.Name && c.Radius == b.Radius && c.a == b.a && c.μ == b.μ
}

// HelioOrbit returns the heliocentric orbit of this body at a given time,
// projected on the ecliptic plane. With VSOP87 enabled in the configuration
// the position comes from the ephemerides and the velocity from vis-viva,
// prograde. Otherwise the orbit is modeled as circular with the phase pinned
// to the J2000 mean longitude, which keeps planets a few degrees of their
// true position over decades around J2000: plenty for transfer studies.
func (c *CelestialObject) HelioOrbit(dt time.Time) Orbit {
	if c.Name == "Sun" {
		return *NewOrbitFromRV([]float64{0, 0}, []float64{0, 0}, *c)
	}
	if lambertConfig().VSOP87 {
		if c.Name == "Pluto" {
			// Special case in Sonia Keys' Meeus
			l, b, r := pluto.Heliocentric(julian.TimeToJD(dt))
			R, V := helioRV(l.Rad(), b.Rad(), r*AU, c.a)
			return *NewOrbitFromRV(R, V, Sun)
		}
		if c.PP == nil {
			// Load the planet.
			var vsopPosition int
			switch c.Name {
			case "Venus":
				vsopPosition = 2
			case "Earth":
				vsopPosition = 3
			case "Mars":
				vsopPosition = 4
			case "Jupiter":
				vsopPosition = 5
			case "Saturn":
				vsopPosition = 6
			case "Uranus":
				vsopPosition = 7
			default:
				panic(fmt.Errorf("unknown object: %s", c.Name))
			}
			planet, err := planetposition.LoadPlanetPath(vsopPosition-1, lambertConfig().VSOP87Dir)
			if err != nil {
				panic(fmt.Errorf("could not load planet number %d: %s", vsopPosition, err))
			}
			c.PP = planet
		}
		l, b, r := c.PP.Position2000(julian.TimeToJD(dt))
		R, V := helioRV(l.Rad(), b.Rad(), r*AU, c.a)
		return *NewOrbitFromRV(R, V, Sun)
	}
	n := math.Sqrt(Sun.μ / math.Pow(c.a, 3))
	λ := Deg2rad(c.l0) + n*(julian.TimeToJD(dt)-base.J2000)*86400
	sλ, cλ := math.Sincos(λ)
	v := math.Sqrt(Sun.μ / c.a)
	R := []float64{c.a * cλ, c.a * sλ}
	V := []float64{-v * sλ, v * cλ}
	return *NewOrbitFromRV(R, V, Sun)
}

// HelioXY returns the heliocentric ecliptic position of this body at a given
// time as a 2x1 vector in kilometers, ready to feed to SolveBody.
func (c *CelestialObject) HelioXY(dt time.Time) *mat64.Vector {
	orbit := c.HelioOrbit(dt)
	R, _ := orbit.RV()
	return mat64.NewVector(2, R)
}

// helioRV flattens an ephemeris point in heliocentric spherical coordinates
// onto the ecliptic plane and rebuilds the prograde velocity from vis-viva.
func helioRV(l, b, r, a float64) (R, V []float64) {
	sL, cL := math.Sincos(l)
	cB := math.Cos(b)
	R = []float64{r * cB * cL, r * cB * sL}
	v := math.Sqrt(2*Sun.μ/r - Sun.μ/a)
	vDir := unit([]float64{-R[1], R[0]})
	V = []float64{v * vDir[0], v * vDir[1]}
	return
}

// CelestialObjectFromString returns the object from its name
func CelestialObjectFromString(name string) (CelestialObject, error) {
	switch strings.ToLower(name) {
	case "sun":
		return Sun, nil
	case "earth":
		return Earth, nil
	case "venus":
		return Venus, nil
	case "mars":
		return Mars, nil
	case "jupiter":
		return Jupiter, nil
	case "saturn":
		return Saturn, nil
	case "uranus":
		return Uranus, nil
	case "pluto":
		return Pluto, nil
	default:
		return CelestialObject{}, fmt.Errorf("undefined planet '%s'", name)
	}
}

/* Definitions. The mean longitudes come from the JPL approximate elements. */

// Sun is the center of attention around here.
var Sun = CelestialObject{"Sun", 695700, -1, 1.32712440017987e11, 0, nil}

// Venus is the nearest stop inward.
var Venus = CelestialObject{"Venus", 6051.8, 108208601, 3.24858599e5, 181.97909950, nil}

// Earth is where the trips start.
var Earth = CelestialObject{"Earth", 6378.1363, 149598023, 3.98600433e5, 100.46457166, nil}

// Mars is where the trips usually go.
var Mars = CelestialObject{"Mars", 3396.19, 227939282.5616, 4.28283100e4, 355.44656795, nil}

// Jupiter is the heavyweight of the batch.
var Jupiter = CelestialObject{"Jupiter", 71492.0, 778298361, 1.266865361e8, 34.39644051, nil}

// Saturn has the good looks.
var Saturn = CelestialObject{"Saturn", 60268.0, 1429394133, 3.7931208e7, 49.95424423, nil}

// Uranus rolls on its side.
var Uranus = CelestialObject{"Uranus", 25559.0, 2875038615, 5.7939513e6, 313.23810451, nil}

// Pluto still gets a seat at the table, demotion notwithstanding.
var Pluto = CelestialObject{"Pluto", 1151.0, 5915799000, 9. * 1e2, 238.92903833, nil}

// Canonical is the unit body: radii are measured in units of the departure
// radius and a circular orbit at radius one takes exactly one time unit, so
// μ = 4π². Matches textbook canonical units and makes quick studies legible.
var Canonical = CelestialObject{"Canonical", 1, 1, 4 * math.Pi * math.Pi, 0, nil}
