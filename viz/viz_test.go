package viz

import (
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
	"github.com/umcconnell/lamberts-problem"
)

func TestIntersectCircles(t *testing.T) {
	origin := mat64.NewVector(2, nil)
	// Two unit circles a unit apart cross twice.
	pts := IntersectCircles(origin, 1, mat64.NewVector(2, []float64{1, 0}), 1)
	if len(pts) != 2 {
		t.Fatalf("expected two intersections, got %d", len(pts))
	}
	h := math.Sqrt(3) / 2
	for i, exp := range [][]float64{{0.5, -h}, {0.5, h}} {
		for j := 0; j < 2; j++ {
			if !floats.EqualWithinAbs(pts[i].At(j, 0), exp[j], 1e-12) {
				t.Fatalf("point %d off: got (%f, %f)", i, pts[i].At(0, 0), pts[i].At(1, 0))
			}
		}
	}
	// Externally tangent circles touch once.
	pts = IntersectCircles(origin, 1, mat64.NewVector(2, []float64{2, 0}), 1)
	if len(pts) != 1 || !floats.EqualWithinAbs(pts[0].At(0, 0), 1, 1e-12) || !floats.EqualWithinAbs(pts[0].At(1, 0), 0, 1e-12) {
		t.Fatalf("tangency broken: %+v", pts)
	}
	// Internally tangent circles touch once too.
	pts = IntersectCircles(origin, 2, mat64.NewVector(2, []float64{1, 0}), 1)
	if len(pts) != 1 || !floats.EqualWithinAbs(pts[0].At(0, 0), 2, 1e-12) {
		t.Fatalf("internal tangency broken: %+v", pts)
	}
	// Disjoint, nested and concentric circles share no point.
	if pts = IntersectCircles(origin, 1, mat64.NewVector(2, []float64{5, 0}), 1); pts != nil {
		t.Fatalf("disjoint circles intersected: %+v", pts)
	}
	if pts = IntersectCircles(origin, 3, mat64.NewVector(2, []float64{0.5, 0}), 1); pts != nil {
		t.Fatalf("nested circles intersected: %+v", pts)
	}
	if pts = IntersectCircles(origin, 1, origin, 1); pts != nil {
		t.Fatalf("concentric circles intersected: %+v", pts)
	}
}

func TestVacantFoci(t *testing.T) {
	R0 := mat64.NewVector(2, []float64{1, 0})
	R1 := mat64.NewVector(2, []float64{0, 1})
	// With a=1 the circular orbit is a valid transfer, so one vacant focus
	// must collapse onto the occupied one at the origin. The other candidate
	// mirrors it through the chord.
	foci := VacantFoci(R0, R1, 1)
	if len(foci) != 2 {
		t.Fatalf("expected two vacant foci, got %d", len(foci))
	}
	for i, exp := range [][]float64{{1, 1}, {0, 0}} {
		for j := 0; j < 2; j++ {
			if !floats.EqualWithinAbs(foci[i].At(j, 0), exp[j], 1e-12) {
				t.Fatalf("focus %d off: got (%f, %f)", i, foci[i].At(0, 0), foci[i].At(1, 0))
			}
		}
	}
	// Below the minimum energy axis there is no transfer ellipse at all.
	if foci = VacantFoci(R0, R1, 0.5); foci != nil {
		t.Fatalf("found foci below the minimum energy axis: %+v", foci)
	}
}

func TestTransferEllipse(t *testing.T) {
	ell := TransferEllipse(mat64.NewVector(2, []float64{1, 1}), 1)
	if !floats.EqualWithinAbs(ell.Center.At(0, 0), 0.5, 1e-12) || !floats.EqualWithinAbs(ell.Center.At(1, 0), 0.5, 1e-12) {
		t.Fatalf("center off: %+v", ell.Center)
	}
	if !floats.EqualWithinAbs(ell.B, math.Sqrt2/2, 1e-12) {
		t.Fatalf("semi-minor axis off: %f", ell.B)
	}
	if !floats.EqualWithinAbs(ell.Tilt, math.Pi/4, 1e-12) {
		t.Fatalf("tilt off: %f", ell.Tilt)
	}
	outline := ell.Outline(4)
	if len(outline) != 5 {
		t.Fatalf("expected a closed outline of 5 points, got %d", len(outline))
	}
	if !floats.EqualWithinAbs(outline[0].X, outline[4].X, 1e-9) || !floats.EqualWithinAbs(outline[0].Y, outline[4].Y, 1e-9) {
		t.Fatal("outline does not close")
	}
	if !floats.EqualWithinAbs(outline[0].X, 0.5+math.Sqrt2/2, 1e-12) {
		t.Fatalf("outline starts off the major axis: %f", outline[0].X)
	}
	// A vacant focus on the occupied one means a circle.
	circle := TransferEllipse(mat64.NewVector(2, nil), 1)
	if circle.A != circle.B {
		t.Fatalf("degenerate focus did not yield a circle: a=%f b=%f", circle.A, circle.B)
	}
}

func TestPlotTransfer(t *testing.T) {
	R0 := mat64.NewVector(2, []float64{lambert.AU, 0})
	R1 := mat64.NewVector(2, []float64{0, lambert.AU})
	quarter := math.Pi / 2 * math.Sqrt(math.Pow(lambert.AU, 3)/lambert.Sun.GM())
	sol, err := lambert.SolveBody(R0, R1, time.Duration(quarter)*time.Second, lambert.Sun)
	if err != nil {
		t.Fatalf("could not solve the transfer: %s", err)
	}
	path := filepath.Join(t.TempDir(), "transfer.png")
	if err := PlotTransfer(sol, R0, R1, lambert.Sun, path); err != nil {
		t.Fatalf("could not render the transfer: %s", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("no plot written: %s", err)
	}
	if info.Size() == 0 {
		t.Fatal("empty plot file")
	}
}

func TestPlotPorkchop(t *testing.T) {
	initArrival := time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC)
	qty := map[time.Time][]float64{
		time.Date(2018, 5, 1, 0, 0, 0, 0, time.UTC): {12.5, 11.2, math.NaN()},
		time.Date(2018, 5, 2, 0, 0, 0, 0, time.UTC): {13.1, 10.9, 11.7},
	}
	path := filepath.Join(t.TempDir(), "porkchop.png")
	if err := PlotPorkchop(qty, initArrival, 1, "c3 km²/s²", path); err != nil {
		t.Fatalf("could not render the porkchop: %s", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("no plot written: %s", err)
	}
	if info.Size() == 0 {
		t.Fatal("empty plot file")
	}
	if err := PlotPorkchop(map[time.Time][]float64{}, initArrival, 1, "empty", path); err == nil {
		t.Fatal("an empty sweep should not render")
	}
}
