package lambert

import (
	"errors"
	"fmt"
	"math"
	"time"

	kitlog "github.com/go-kit/kit/log"
	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

// TransferBranch defines which of the two zero-revolution arcs of the
// transfer ellipse joins the endpoints.
type TransferBranch uint8

const (
	// BranchShort is the arc subtending less than half of the ellipse.
	BranchShort TransferBranch = iota + 1
	// BranchLong is the complementary arc, needed when the requested flight
	// time exceeds the longest flight time reachable on the short arc.
	BranchLong
)

// Longway returns whether or not this is the long way.
func (b TransferBranch) Longway() bool {
	switch b {
	case BranchShort:
		return false
	case BranchLong:
		return true
	default:
		panic(fmt.Errorf("cannot determine whether long or short way for %d", uint8(b)))
	}
}

func (b TransferBranch) String() string {
	switch b {
	case BranchShort:
		return "short-arc"
	case BranchLong:
		return "long-arc"
	default:
		panic("unknown transfer branch")
	}
}

// AMaxFactor scales the semi-major axis search bracket: the root search runs
// on [aMin, AMaxFactor*aMin] where aMin is the minimum energy axis s/2. The
// default of 20 covers all practical transfer times; raise it for extremely
// slow transfers on the long arc.
var AMaxFactor = 20.0

// ErrInfeasible is returned when the transfer geometry degenerates: coincident
// or vanishing radii, or endpoints for which the reconstructed velocities are
// not finite (e.g. a transfer angle of exactly 180 degrees).
var ErrInfeasible = errors.New("lambert: infeasible transfer geometry")

var logger = kitlog.NewNopLogger()

// SetLogger sets the logger used to trace solver decisions, notably the
// switch to the long arc. Solves are silent by default.
func SetLogger(l kitlog.Logger) {
	if l == nil {
		l = kitlog.NewNopLogger()
	}
	logger = l
}

// Alpha returns the Lagrange angle α of the transfer ellipse of semi-major
// axis a and boundary triangle semi-perimeter s. The long flag selects the
// long arc, i.e. 2π-α (cf. Bate, Mueller & White, chapter 5).
func Alpha(a, s float64, long bool) float64 {
	α := 2 * math.Asin(math.Sqrt(s/(2*a)))
	if long {
		return 2*math.Pi - α
	}
	return α
}

// Beta returns the Lagrange angle β for a transfer ellipse of semi-major
// axis a, semi-perimeter s and chord c. The rev flag flips its sign, which
// selects the arc swept in the reverse direction.
func Beta(a, s, c float64, rev bool) float64 {
	β := 2 * math.Asin(math.Sqrt((s-c)/(2*a)))
	if rev {
		return -β
	}
	return β
}

// LagrangeTOF returns the time of flight along the conic of semi-major axis
// a joining two positions with semi-perimeter s and chord c, per Lagrange's
// equation Δt = √(a³/μ)((α-β)-(sin α-sin β)).
func LagrangeTOF(a, μ, s, c float64, long bool) float64 {
	α := Alpha(a, s, long)
	β := Beta(a, s, c, false)
	return math.Sqrt(math.Pow(a, 3)/μ) * ((α - β) - (math.Sin(α) - math.Sin(β)))
}

// Velocities returns the terminal velocity vectors of the arc of semi-major
// axis a joining R0 to R1, from the Lagrange angles α and β. The vectors are
// skewed combinations of the unit chord and the unit radii.
func Velocities(R0, R1 *mat64.Vector, a, α, β, μ float64) (V0, V1 *mat64.Vector) {
	chord := mat64.NewVector(2, nil)
	chord.SubVec(R1, R0)
	cUnit := unitVec(chord)
	p := math.Sqrt(μ / (4 * a))
	x := cot(β / 2)
	y := cot(α / 2)
	// Components along the chord and along the radii.
	X := x + y
	Y := x - y
	V0 = mat64.NewVector(2, nil)
	V0.ScaleVec(X, cUnit)
	V0.AddScaledVec(V0, Y, unitVec(R0))
	V0.ScaleVec(p, V0)
	V1 = mat64.NewVector(2, nil)
	V1.ScaleVec(X, cUnit)
	V1.AddScaledVec(V1, -Y, unitVec(R1))
	V1.ScaleVec(p, V1)
	return
}

// Solution holds the outcome of a Lambert solve.
type Solution struct {
	A        float64       // Semi-major axis of the transfer ellipse
	V0       *mat64.Vector // Velocity at departure
	V1       *mat64.Vector // Velocity at arrival
	Branch   TransferBranch
	Residual float64 // Remaining |TOF(A) - Δt| of the root search
}

func (s Solution) String() string {
	return fmt.Sprintf("a=%f (%s) v0=%v v1=%v", s.A, s.Branch, mat64.Formatted(s.V0.T()), mat64.Formatted(s.V1.T()))
}

// Solve returns the transfer arc joining the planar positions R0 and R1 in
// exactly Δt time units around a central body of gravitational parameter μ.
// The semi-major axis is found by bisection of Lagrange's equation over
// [s/2, AMaxFactor*s/2], switching to the long arc whenever Δt exceeds the
// longest flight time of the short one. Both radii must be 2x1 vectors and
// Δt and μ must be strictly positive, anything else panics. Degenerate
// geometries return ErrInfeasible.
// Units are only required to be consistent, e.g. AU, years and AU³/year².
func Solve(R0, R1 *mat64.Vector, Δt, μ float64) (sol Solution, err error) {
	r0rows, _ := R0.Dims()
	r1rows, _ := R1.Dims()
	if r0rows != 2 || r1rows != 2 {
		panic("initial and final radii must be 2x1 vectors")
	}
	if Δt <= 0 {
		panic("transfer time must be strictly positive")
	}
	if μ <= 0 {
		panic("gravitational parameter must be strictly positive")
	}
	rI := mat64.Norm(R0, 2)
	rF := mat64.Norm(R1, 2)
	chord := mat64.NewVector(2, nil)
	chord.SubVec(R1, R0)
	c := mat64.Norm(chord, 2)
	if floats.EqualWithinAbs(rI, 0, 1e-12) || floats.EqualWithinAbs(rF, 0, 1e-12) || floats.EqualWithinAbs(c, 0, 1e-12) {
		return sol, ErrInfeasible
	}
	s := (rI + rF + c) / 2
	aMin := s / 2
	aMax := AMaxFactor * aMin

	sol.Branch = BranchShort
	// The minimum energy axis yields the longest flight time reachable on
	// the short arc. Any longer requested time must use the long arc.
	tofShortMax := LagrangeTOF(aMin, μ, s, c, false)
	if math.IsNaN(tofShortMax) {
		return sol, ErrInfeasible
	}
	if tofShortMax < Δt {
		sol.Branch = BranchLong
		logger.Log("level", "info", "subsys", "lambert", "msg", "switching to long arc", "tofShortMax", tofShortMax, "Δt", Δt)
	}
	long := sol.Branch.Longway()
	sol.A = BisectTarget(func(a float64) float64 {
		return LagrangeTOF(a, μ, s, c, long)
	}, aMin, aMax, Δt, DefaultMaxIter, DefaultPrecision)
	sol.Residual = math.Abs(LagrangeTOF(sol.A, μ, s, c, long) - Δt)

	α := Alpha(sol.A, s, long)
	β := Beta(sol.A, s, c, false)
	sol.V0, sol.V1 = Velocities(R0, R1, sol.A, α, β, μ)
	for i := 0; i < 2; i++ {
		for _, v := range []float64{sol.V0.At(i, 0), sol.V1.At(i, 0)} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return sol, ErrInfeasible
			}
		}
	}
	return sol, nil
}

// SolveBody is a convenience wrapper around Solve for heliocentric transfers:
// positions in km (e.g. from HelioXY), a flight time as a duration and the
// central body instead of a bare gravitational parameter.
func SolveBody(R0, R1 *mat64.Vector, Δt time.Duration, body CelestialObject) (Solution, error) {
	return Solve(R0, R1, Δt.Seconds(), body.GM())
}
