package lambert

/* Handles the transfer dispersion Monte Carlos. */

import (
	"fmt"
	"math/rand"

	"github.com/gonum/matrix/mat64"
	"github.com/gonum/stat"
	"github.com/gonum/stat/distmv"
)

// DispersionSummary holds the outcome of a Monte Carlo run. The Δv figures
// measure how far the departure and arrival velocities of each dispersed
// transfer land from the nominal ones, i.e. how much the injection and
// rendezvous burns move when the boundary conditions are off.
type DispersionSummary struct {
	Nominal         Solution
	Samples         int
	Failures        int // Draws with an infeasible geometry or a non positive transfer time
	MeanΔV0, StdΔV0 float64
	MeanΔV1, StdΔV1 float64
	MeanSMA, StdSMA float64
}

// Feasible returns the number of draws which actually solved.
func (d DispersionSummary) Feasible() int {
	return d.Samples - d.Failures
}

func (d DispersionSummary) String() string {
	return fmt.Sprintf("dispersion %d/%d feasible: Δv0 %f ±%f, Δv1 %f ±%f, a %f ±%f", d.Feasible(), d.Samples, d.MeanΔV0, d.StdΔV0, d.MeanΔV1, d.StdΔV1, d.MeanSMA, d.StdSMA)
}

// DiagonalCovariance returns the covariance of independent dispersions with
// a standard deviation of σR0 on each departure position component, σR1 on
// each arrival position component and σΔt on the transfer time. All three
// must be strictly positive for the covariance to be positive definite.
func DiagonalCovariance(σR0, σR1, σΔt float64) *mat64.SymDense {
	cov := mat64.NewSymDense(5, nil)
	cov.SetSym(0, 0, σR0*σR0)
	cov.SetSym(1, 1, σR0*σR0)
	cov.SetSym(2, 2, σR1*σR1)
	cov.SetSym(3, 3, σR1*σR1)
	cov.SetSym(4, 4, σΔt*σΔt)
	return cov
}

// Dispersion draws ns dispersed instances of the transfer from R0 to R1 in
// Δt time units around a body of gravitational parameter μ, solves each of
// them, and reports how the solutions spread around the nominal one. Each
// draw perturbs the vector [r0x r0y r1x r1y Δt] with a zero mean
// multivariate normal of the given 5x5 covariance (DiagonalCovariance builds
// the independent case), drawing from src. Draws whose transfer time drops
// to zero or below, or whose geometry turns infeasible, count as failures;
// if every single draw fails the statistics come out NaN. A covariance which
// is not positive definite panics, a nominal transfer which does not solve
// returns its error right away.
func Dispersion(R0, R1 *mat64.Vector, Δt, μ float64, cov *mat64.SymDense, ns int, src *rand.Rand) (DispersionSummary, error) {
	if ns <= 0 {
		panic("sample count must be strictly positive")
	}
	if n := cov.Symmetric(); n != 5 {
		panic("dispersion covariance must be 5x5")
	}
	nominal, err := Solve(R0, R1, Δt, μ)
	if err != nil {
		return DispersionSummary{}, err
	}
	noise, ok := distmv.NewNormal(make([]float64, 5), cov, src)
	if !ok {
		panic("NOK in Gaussian")
	}
	sum := DispersionSummary{Nominal: nominal, Samples: ns}
	δv0s := make([]float64, 0, ns)
	δv1s := make([]float64, 0, ns)
	smas := make([]float64, 0, ns)
	diff := mat64.NewVector(2, nil)
	for i := 0; i < ns; i++ {
		δ := noise.Rand(nil)
		dtDisp := Δt + δ[4]
		if dtDisp <= 0 {
			sum.Failures++
			continue
		}
		r0Disp := mat64.NewVector(2, []float64{R0.At(0, 0) + δ[0], R0.At(1, 0) + δ[1]})
		r1Disp := mat64.NewVector(2, []float64{R1.At(0, 0) + δ[2], R1.At(1, 0) + δ[3]})
		sol, err := Solve(r0Disp, r1Disp, dtDisp, μ)
		if err != nil {
			sum.Failures++
			continue
		}
		diff.SubVec(sol.V0, nominal.V0)
		δv0s = append(δv0s, mat64.Norm(diff, 2))
		diff.SubVec(sol.V1, nominal.V1)
		δv1s = append(δv1s, mat64.Norm(diff, 2))
		smas = append(smas, sol.A)
	}
	sum.MeanΔV0, sum.StdΔV0 = stat.Mean(δv0s, nil), stat.StdDev(δv0s, nil)
	sum.MeanΔV1, sum.StdΔV1 = stat.Mean(δv1s, nil), stat.StdDev(δv1s, nil)
	sum.MeanSMA, sum.StdSMA = stat.Mean(smas, nil), stat.StdDev(smas, nil)
	logger.Log("level", "info", "subsys", "montecarlo", "msg", "dispersion done", "samples", ns, "failures", sum.Failures, "meanΔv0", sum.MeanΔV0, "meanΔv1", sum.MeanΔV1)
	return sum, nil
}
