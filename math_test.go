package lambert

import (
	"math"
	"testing"

	"github.com/gonum/floats"
	"github.com/gonum/matrix/mat64"
)

func TestCross(t *testing.T) {
	i := []float64{1, 0}
	j := []float64{0, 1}
	if cross(i, j) != 1 {
		t.Fatal("i x j != +1")
	}
	if cross(j, i) != -1 {
		t.Fatal("j x i != -1")
	}
	if cross(i, i) != 0 {
		t.Fatal("i x i != 0")
	}
	if !floats.EqualWithinAbs(cross([]float64{2, 3}, []float64{5, 6}), -3, 1e-12) {
		t.Fatal("cross fail")
	}
	a := mat64.NewVector(2, []float64{2, 3})
	b := mat64.NewVector(2, []float64{5, 6})
	if !floats.EqualWithinAbs(crossVec(a, b), -3, 1e-12) {
		t.Fatal("crossVec does not match cross")
	}
}

func TestAngles(t *testing.T) {
	for i := 0.0; i < 360; i += 0.5 {
		if ok, _ := anglesEqual(Deg2rad(i), Deg2rad(Rad2deg(Deg2rad(i)))); !ok {
			t.Fatalf("incorrect conversion for %3.2f", i)
		}
	}
	if !floats.EqualWithinAbs(Deg2rad(90), math.Pi/2, 1e-12) {
		t.Fatal("90 deg != pi/2")
	}
	if !floats.EqualWithinAbs(Rad2deg(math.Pi), 180, 1e-12) {
		t.Fatal("pi rad != 180 deg")
	}
	if ok, _ := anglesEqual(Deg2rad(1), Deg2rad(Rad2deg(Deg2rad(-359.)))); !ok {
		t.Fatal("incorrect conversion for -359")
	}
	if ok, _ := anglesEqual(math.Pi/3, Deg2rad(Rad2deg(-5*math.Pi/3))); !ok {
		t.Fatal("incorrect conversion for -pi/3")
	}
}

func TestMisc(t *testing.T) {
	if vectorsEqual([]float64{1, 0}, []float64{1, 0, 0}) {
		t.Fatal("vectors of different sizes should not be equal")
	}
	if sign(10) != 1 {
		t.Fatal("sign of 10 != 1")
	}
	if sign(-10) != -1 {
		t.Fatal("sign of -10 != -1")
	}
	if sign(0) != 1 {
		t.Fatal("sign of 0 != 1")
	}
	nilVec := []float64{0, 0}
	if norm(nilVec) != 0 {
		t.Fatal("norm of a nil vector was not nil")
	}
	if norm([]float64{3, 4}) != 5 {
		t.Fatal("norm of [3, 4] != 5")
	}
	if dot([]float64{1, 2}, []float64{3, 4}) != 11 {
		t.Fatal("dot of [1, 2] and [3, 4] != 11")
	}
	uNilVec := unit(nilVec)
	for i := 0; i < 2; i++ {
		if uNilVec[i] != nilVec[i] {
			t.Fatalf("%f != %f @ i=%d", uNilVec[i], nilVec[i], i)
		}
	}
	if !vectorsEqual(unit([]float64{3, 4}), []float64{0.6, 0.8}) {
		t.Fatal("unit of [3, 4] is invalid")
	}
	uVec := unitVec(mat64.NewVector(2, []float64{3, 4}))
	if !vectorsEqual([]float64{uVec.At(0, 0), uVec.At(1, 0)}, []float64{0.6, 0.8}) {
		t.Fatal("unitVec of [3, 4] is invalid")
	}
	if !floats.EqualWithinAbs(cot(math.Pi/4), 1, 1e-12) {
		t.Fatal("cot of pi/4 != 1")
	}
	if !floats.EqualWithinAbs(cot(math.Pi/2), 0, 1e-12) {
		t.Fatal("cot of pi/2 != 0")
	}
}

func TestRot(t *testing.T) {
	quarter := rot(math.Pi/2, []float64{1, 0})
	if !floats.EqualWithinAbs(quarter[0], 0, 1e-12) || !floats.EqualWithinAbs(quarter[1], 1, 1e-12) {
		t.Fatal("quarter turn of i is not j")
	}
	if !vectorsEqual(rot(math.Pi, []float64{2, 1}), []float64{-2, -1}) {
		t.Fatal("half turn is not the negation")
	}
	v := rot(-math.Pi/2, rot(math.Pi/2, []float64{3, 4}))
	if !vectorsEqual(v, []float64{3, 4}) {
		t.Fatal("rotation round trip failed")
	}
}
