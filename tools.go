package lambert

import (
	"math"
	"time"
)

// Hohmann computes a Hohmann transfer between two circular coplanar orbits.
// It returns the departure and arrival velocities on the transfer ellipse,
// and the time of flight.
// To get final computations:
// ΔvInit = vDeparture - vI
// ΔvFinal = vArrival - vF
func Hohmann(rI, vI, rF, vF float64, body CelestialObject) (vDeparture, vArrival float64, tof time.Duration) {
	aTransfer := 0.5 * (rI + rF)
	vDeparture = math.Sqrt((2 * body.GM() / rI) - (body.GM() / aTransfer))
	vArrival = math.Sqrt((2 * body.GM() / rF) - (body.GM() / aTransfer))
	tof = time.Duration(math.Pi*math.Sqrt(math.Pow(aTransfer, 3)/body.GM())) * time.Second
	return
}
