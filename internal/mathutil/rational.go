package mathutil

import (
	"errors"
	"math"
)

// ErrNoRational is returned when no fraction within the denominator bound
// matches a value closely enough.
var ErrNoRational = errors.New("no small rational approximation")

// GCD returns the greatest common divisor of a and b. GCD(0, 0) is 0.
func GCD(a, b int) int {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// Reduce divides num and den by their greatest common divisor.
func Reduce(num, den int) (int, int) {
	g := GCD(num, den)
	if g == 0 {
		return num, den
	}
	return num / g, den / g
}

// Rational finds num/den ≈ x with both terms at most limit, using the
// convergents of the continued fraction of x. The first convergent whose
// relative error is within tol wins. x must be positive.
func Rational(x float64, limit int, tol float64) (num, den int, err error) {
	if !(x > 0) || math.IsInf(x, 0) || limit < 1 {
		return 0, 0, ErrNoRational
	}

	// h/k are the convergents: h[n] = a*h[n-1] + h[n-2].
	hPrev, h := 0, 1
	kPrev, k := 1, 0
	rem := x
	for range maxContinuedFractionTerms {
		a := math.Floor(rem)
		if a > float64(limit) {
			break
		}
		ai := int(a)
		hNext := ai*h + hPrev
		kNext := ai*k + kPrev
		if hNext > limit || kNext > limit {
			break
		}
		hPrev, h = h, hNext
		kPrev, k = k, kNext

		if k > 0 && math.Abs(float64(h)/float64(k)-x) <= tol*x {
			return h, k, nil
		}

		frac := rem - a
		if frac < math.SmallestNonzeroFloat64 {
			break
		}
		rem = 1 / frac
	}

	if k > 0 && h > 0 && math.Abs(float64(h)/float64(k)-x) <= tol*x {
		return h, k, nil
	}
	return 0, 0, ErrNoRational
}
