// Package viz renders transfer geometries and porkchop sweeps with
// gonum/plot. It only consumes solver output, so the numerical packages stay
// free of any plotting dependency.
package viz

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/gonum/matrix/mat64"
	"github.com/soniakeys/meeus/julian"
	"github.com/umcconnell/lamberts-problem"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// IntersectCircles returns the intersection points of the circle of radius r0
// about M0 with the circle of radius r1 about M1: two points when they cross,
// one when they touch, nil when they are disjoint, nested or concentric.
func IntersectCircles(M0 *mat64.Vector, r0 float64, M1 *mat64.Vector, r1 float64) []*mat64.Vector {
	D := mat64.NewVector(2, nil)
	D.SubVec(M1, M0)
	d := mat64.Norm(D, 2)
	if d > r0+r1 || d < math.Abs(r0-r1) || d == 0 {
		return nil
	}
	a := (r0*r0 - r1*r1 + d*d) / (2 * d)
	h2 := r0*r0 - a*a
	if h2 < 0 {
		// Rounding at tangency.
		h2 = 0
	}
	h := math.Sqrt(h2)
	midX := M0.At(0, 0) + D.At(0, 0)*a/d
	midY := M0.At(1, 0) + D.At(1, 0)*a/d
	if h == 0 {
		return []*mat64.Vector{mat64.NewVector(2, []float64{midX, midY})}
	}
	return []*mat64.Vector{
		mat64.NewVector(2, []float64{midX + h*D.At(1, 0)/d, midY - h*D.At(0, 0)/d}),
		mat64.NewVector(2, []float64{midX - h*D.At(1, 0)/d, midY + h*D.At(0, 0)/d}),
	}
}

// VacantFoci returns the candidate vacant foci of the transfer ellipses of
// semi-major axis a joining R0 and R1, with the occupied focus at the origin.
// Each vacant focus must sit 2a-r away from a point at radius r, so the foci
// are the intersections of two circles. A tangency collapses them to one, the
// minimum energy ellipse.
func VacantFoci(R0, R1 *mat64.Vector, a float64) []*mat64.Vector {
	return IntersectCircles(R0, 2*a-mat64.Norm(R0, 2), R1, 2*a-mat64.Norm(R1, 2))
}

// Ellipse is a plot ready description of a conic: center, semi axes and the
// tilt of the major axis from the x axis.
type Ellipse struct {
	Center *mat64.Vector
	A, B   float64
	Tilt   float64 // radians
}

// TransferEllipse builds the ellipse of semi-major axis a with the occupied
// focus at the origin and the given vacant focus.
func TransferEllipse(focus *mat64.Vector, a float64) Ellipse {
	c := mat64.Norm(focus, 2) / 2 // Linear eccentricity
	center := mat64.NewVector(2, nil)
	center.ScaleVec(0.5, focus)
	return Ellipse{center, a, math.Sqrt(a*a - c*c), math.Atan2(focus.At(1, 0), focus.At(0, 0))}
}

// Outline samples n points along the ellipse and closes the loop.
func (e Ellipse) Outline(n int) plotter.XYs {
	pts := make(plotter.XYs, n+1)
	sinT, cosT := math.Sincos(e.Tilt)
	for i := 0; i <= n; i++ {
		θ := 2 * math.Pi * float64(i) / float64(n)
		x := e.A * math.Cos(θ)
		y := e.B * math.Sin(θ)
		pts[i].X = e.Center.At(0, 0) + x*cosT - y*sinT
		pts[i].Y = e.Center.At(1, 0) + x*sinT + y*cosT
	}
	return pts
}

// PlotTransfer renders the geometry of a solved transfer to a PNG: the flown
// arc on its full orbit, the candidate ellipses reconstructed from both
// vacant foci and the three bodies, with the occupied focus at the origin.
func PlotTransfer(sol lambert.Solution, R0, R1 *mat64.Vector, body lambert.CelestialObject, path string) error {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s transfer, a=%.3f", sol.Branch, sol.A)
	p.X.Label.Text = "x"
	p.Y.Label.Text = "y"

	dep := lambert.NewOrbitFromRV(vecSlice(R0), vecSlice(sol.V0), body)
	args := make([]interface{}, 0, 8)
	if dep.H() > 0 {
		args = append(args, "transfer", flownArc(sol, R0, R1, body, 128))
	}
	args = append(args, "orbit", closedOutline(dep.Waypoints(256)))
	for i, focus := range VacantFoci(R0, R1, sol.A) {
		args = append(args, fmt.Sprintf("candidate %d", i+1), TransferEllipse(focus, sol.A).Outline(256))
	}
	if err := plotutil.AddLines(p, args...); err != nil {
		return err
	}
	err := plotutil.AddScatters(p,
		body.Name, plotter.XYs{{X: 0, Y: 0}},
		"departure", plotter.XYs{{X: R0.At(0, 0), Y: R0.At(1, 0)}},
		"arrival", plotter.XYs{{X: R1.At(0, 0), Y: R1.At(1, 0)}})
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}

// flownArc samples the swept part of the transfer orbit between both radii.
func flownArc(sol lambert.Solution, R0, R1 *mat64.Vector, body lambert.CelestialObject, n int) plotter.XYs {
	dep := lambert.NewOrbitFromRV(vecSlice(R0), vecSlice(sol.V0), body)
	arr := lambert.NewOrbitFromRV(vecSlice(R1), vecSlice(sol.V1), body)
	a, e, ω, ν0, _ := dep.Elements()
	_, _, _, ν1, _ := arr.Elements()
	Δν := math.Mod(ν1-ν0+2*math.Pi, 2*math.Pi)
	pts := make(plotter.XYs, n+1)
	for i := 0; i <= n; i++ {
		νi := ν0 + Δν*float64(i)/float64(n)
		R := lambert.NewOrbitFromOE(a, e, lambert.Rad2deg(ω), lambert.Rad2deg(νi), body).R()
		pts[i].X, pts[i].Y = R[0], R[1]
	}
	return pts
}

func closedOutline(waypoints [][]float64) plotter.XYs {
	pts := make(plotter.XYs, len(waypoints)+1)
	for i, R := range waypoints {
		pts[i].X, pts[i].Y = R[0], R[1]
	}
	pts[len(waypoints)] = pts[0]
	return pts
}

func vecSlice(v *mat64.Vector) []float64 {
	return []float64{v.At(0, 0), v.At(1, 0)}
}

// porkchopGrid adapts one porkchop quantity to the heat map interface.
type porkchopGrid struct {
	xs, ys []float64
	z      [][]float64 // Indexed [launch][arrival]
}

func (g porkchopGrid) Dims() (c, r int)   { return len(g.xs), len(g.ys) }
func (g porkchopGrid) Z(c, r int) float64 { return g.z[c][r] }
func (g porkchopGrid) X(c int) float64    { return g.xs[c] }
func (g porkchopGrid) Y(r int) float64    { return g.ys[r] }

// PlotPorkchop renders one quantity of a porkchop sweep as a heat map PNG,
// both axes in Julian dates. Infeasible cells (NaN) are drawn at the highest
// feasible value so the feasible valleys keep their contrast.
func PlotPorkchop(qty map[time.Time][]float64, initArrival time.Time, ptsPerArrivalDay float64, title, path string) error {
	launches := make([]time.Time, 0, len(qty))
	for launch := range qty {
		launches = append(launches, launch)
	}
	if len(launches) == 0 || len(qty[launches[0]]) == 0 {
		return fmt.Errorf("viz: nothing to plot for %s", title)
	}
	sort.Slice(launches, func(i, j int) bool { return launches[i].Before(launches[j]) })
	rows := len(qty[launches[0]])
	grid := porkchopGrid{
		xs: make([]float64, len(launches)),
		ys: make([]float64, rows),
		z:  make([][]float64, len(launches)),
	}
	max := math.Inf(-1)
	for _, launch := range launches {
		for _, v := range qty[launch] {
			if !math.IsNaN(v) && !math.IsInf(v, 0) && v > max {
				max = v
			}
		}
	}
	for i, launch := range launches {
		row := make([]float64, rows)
		for j, v := range qty[launch] {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				v = max
			}
			row[j] = v
		}
		grid.z[i] = row
		grid.xs[i] = julian.TimeToJD(launch)
	}
	arrivalJD := julian.TimeToJD(initArrival)
	for j := 0; j < rows; j++ {
		grid.ys[j] = arrivalJD + float64(j)/ptsPerArrivalDay
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "departure (JD)"
	p.Y.Label.Text = "arrival (JD)"
	p.Add(plotter.NewHeatMap(grid, palette.Heat(12, 255)))
	return p.Save(6*vg.Inch, 6*vg.Inch, path)
}
