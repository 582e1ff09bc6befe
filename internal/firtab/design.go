package firtab

import (
	"math"

	"github.com/tphakala/simd/f64"
)

const sincZeroThreshold = 1e-10

// designLowpass returns a windowed-sinc lowpass FIR prototype of the
// given length, Kaiser-windowed for the requested stopband attenuation,
// normalized to unity DC gain. cutoff is normalized to (0, 0.5].
//
// Grounded on internal/filter.DesignLowPassFilter from the resampler this
// module started from, trimmed to the fixed concrete tables this package
// needs (no runtime-configurable FilterParams/Validate surface).
func designLowpass(length int, cutoff, attenuationDB float64) []float64 {
	beta := kaiserBeta(attenuationDB)
	window := kaiserWindow(length, beta)

	coeffs := make([]float64, length)
	center := float64(length-1) / 2.0

	for n := range length {
		x := float64(n) - center
		var sinc float64
		if math.Abs(x) < sincZeroThreshold {
			sinc = 2.0 * cutoff
		} else {
			arg := 2.0 * math.Pi * cutoff * x
			sinc = math.Sin(arg) / (math.Pi * x)
		}
		coeffs[n] = sinc * window[n]
	}

	sum := f64.Sum(coeffs)
	if math.Abs(sum) > sincZeroThreshold {
		f64.Scale(coeffs, coeffs, 1.0/sum)
	}
	return coeffs
}
