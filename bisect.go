package lambert

import "math"

const (
	// DefaultMaxIter is the iteration cap used by Bisect.
	DefaultMaxIter = 1000
	// DefaultPrecision is the residual tolerance used by Bisect.
	DefaultPrecision = 1e-8
)

// Bisect returns x in [a, b] where f(x) vanishes, found by bisection with
// DefaultMaxIter iterations and DefaultPrecision residual tolerance.
// Panics if a >= b.
func Bisect(f func(float64) float64, a, b float64) float64 {
	return BisectTarget(f, a, b, 0, DefaultMaxIter, DefaultPrecision)
}

// BisectTarget returns x in [a, b] where f(x) equals target, found by
// bisection. The search stops as soon as |f(mid)-target| <= precision, or
// after maxIter halvings, in which case the last midpoint is returned
// regardless of its residual. The bracket only shrinks, so the returned
// value always lies in [a, b]. Panics if a >= b or maxIter <= 0.
// Note that f is expected to straddle target on [a, b]: if it does not,
// the search drifts to one end of the bracket.
func BisectTarget(f func(float64) float64, a, b, target float64, maxIter int, precision float64) float64 {
	if a >= b {
		panic("invalid bracket: a must be strictly smaller than b")
	}
	if maxIter <= 0 {
		panic("maxIter must be positive")
	}
	var mid float64
	for i := 0; i < maxIter; i++ {
		mid = (a + b) / 2
		val := f(mid) - target
		if math.Abs(val) <= precision {
			return mid
		}
		if sign(f(a)-target) == sign(val) {
			a = mid
		} else {
			b = mid
		}
	}
	return mid
}
