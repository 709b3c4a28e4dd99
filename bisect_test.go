package lambert

import (
	"math"
	"testing"

	"github.com/gonum/floats"
)

func TestBisect(t *testing.T) {
	f := func(x float64) float64 { return x*x - 4 }
	root := Bisect(f, 0, 10)
	if !floats.EqualWithinAbs(root, 2, 1e-8) {
		t.Fatalf("root of x^2-4 on [0, 10]: got %.12f, expected 2", root)
	}
	// Decreasing function through the same root.
	g := func(x float64) float64 { return 4 - x*x }
	root = Bisect(g, 0, 10)
	if !floats.EqualWithinAbs(root, 2, 1e-8) {
		t.Fatalf("root of 4-x^2 on [0, 10]: got %.12f, expected 2", root)
	}
}

func TestBisectTarget(t *testing.T) {
	f := func(x float64) float64 { return x * x }
	x := BisectTarget(f, 0, 10, 9, DefaultMaxIter, DefaultPrecision)
	if !floats.EqualWithinAbs(x, 3, 1e-8) {
		t.Fatalf("x^2=9 on [0, 10]: got %.12f, expected 3", x)
	}
	x = BisectTarget(math.Cos, 0, 3, 0, DefaultMaxIter, DefaultPrecision)
	if !floats.EqualWithinAbs(x, math.Pi/2, 1e-8) {
		t.Fatalf("cos(x)=0 on [0, 3]: got %.12f, expected pi/2", x)
	}
}

func TestBisectConvergence(t *testing.T) {
	// With a zero precision the early exit never fires, so after k halvings
	// the error must be bounded by the initial bracket width over 2^k.
	f := func(x float64) float64 { return x*x - 4 }
	a, b := 0.0, 10.0
	for k := 1; k <= 40; k++ {
		mid := BisectTarget(f, a, b, 0, k, 0)
		if mid < a || mid > b {
			t.Fatalf("k=%d: %f escaped the bracket", k, mid)
		}
		err := math.Abs(mid - 2)
		if bound := (b - a) / math.Pow(2, float64(k)); err > bound {
			t.Fatalf("k=%d: error %.3e exceeds bound %.3e", k, err, bound)
		}
	}
}

func TestBisectNoStraddle(t *testing.T) {
	// No sign change on the bracket: the search drifts to one end but the
	// result must stay inside [a, b].
	f := func(x float64) float64 { return 1. }
	x := BisectTarget(f, 0, 1, 0, 100, 1e-8)
	if x < 0 || x > 1 {
		t.Fatalf("result %f escaped the bracket", x)
	}
}

func TestBisectPanics(t *testing.T) {
	f := func(x float64) float64 { return x }
	assertPanic(t, func() { Bisect(f, 1, 1) })
	assertPanic(t, func() { Bisect(f, 2, 1) })
	assertPanic(t, func() { BisectTarget(f, 0, 1, 0, 0, 1e-8) })
	assertPanic(t, func() { BisectTarget(f, 0, 1, 0, -3, 1e-8) })
}
