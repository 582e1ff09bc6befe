// Package testutil provides reusable test helper functions for audio resampler tests.
package testutil

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

// AssertNoNaNOrInf32 verifies that no elements in the slice are NaN or
// Inf, for the render-path buffers (mip-map levels, oscillator blocks)
// that stay in float32 end to end rather than promoting to float64.
func AssertNoNaNOrInf32(t *testing.T, s []float32, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(float64(v)) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(float64(v), 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// RMS32 computes the root-mean-square of a float32 signal window, used
// across mip-map and resampler tests to compare energy levels without
// assuming exact per-sample alignment (filtering shifts phase).
func RMS32(s []float32) float64 {
	var sum float64
	for _, v := range s {
		sum += float64(v) * float64(v)
	}
	return math.Sqrt(sum / float64(len(s)))
}
