// Package testutil holds signal generators, spectrum analysis and
// assertions shared by the resampler tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

const halfDivisor = 2

// AssertSymmetric checks s[i] == s[n-1-i] within tolerance.
func AssertSymmetric(t *testing.T, s []float64, tolerance float64) bool {
	t.Helper()
	n := len(s)
	for i := range n / halfDivisor {
		j := n - 1 - i
		if !assert.InDelta(t, s[i], s[j], tolerance, "asymmetric at %d/%d", i, j) {
			return false
		}
	}
	return true
}

// AssertNoNaNOrInf fails on the first non-finite element.
func AssertNoNaNOrInf(t *testing.T, s []float64) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return assert.Fail(t, "non-finite value", "s[%d] = %v", i, v)
		}
	}
	return true
}

// AssertAllInRange checks minVal <= s[i] <= maxVal for every element.
func AssertAllInRange(t *testing.T, s []float64, minVal, maxVal float64) bool {
	t.Helper()
	for i, v := range s {
		if v < minVal || v > maxVal {
			return assert.Fail(t, "value out of range",
				"s[%d]=%g outside [%g, %g]", i, v, minVal, maxVal)
		}
	}
	return true
}

// AssertInRange checks minVal <= value <= maxVal.
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			append([]any{"%g outside [%g, %g]", value, minVal, maxVal}, msgAndArgs...)...)
	}
	return true
}

// AssertDCGain checks that the taps sum to want.
func AssertDCGain(t *testing.T, taps []float64, want, tolerance float64) bool {
	t.Helper()
	sum := 0.0
	for _, c := range taps {
		sum += c
	}
	return assert.InDelta(t, want, sum, tolerance, "DC gain")
}

// AssertCenterIsMax checks that no element exceeds s[len(s)/2].
func AssertCenterIsMax(t *testing.T, s []float64) bool {
	t.Helper()
	if len(s) == 0 {
		return assert.Fail(t, "empty slice")
	}
	c := len(s) / halfDivisor
	for i, v := range s {
		if v > s[c] {
			return assert.Fail(t, "center is not max", "s[%d]=%g > s[%d]=%g", i, v, c, s[c])
		}
	}
	return true
}

// AssertRelativeError checks |actual-expected|/|expected| <= tolerance,
// falling back to an absolute delta when expected is zero.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	rel := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, rel, tolerance, msgAndArgs...)
}
