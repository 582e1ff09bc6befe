package firtab

import "math"

// Chebyshev coefficients for I0(x), small-argument branch.
// Abramowitz & Stegun, "Handbook of Mathematical Functions", 9.8.1.
const (
	besselSmallArgThreshold = 3.75

	besselI0Coeff1 = 3.5156229
	besselI0Coeff2 = 3.0899424
	besselI0Coeff3 = 1.2067492
	besselI0Coeff4 = 0.2659732
	besselI0Coeff5 = 0.360768e-1
	besselI0Coeff6 = 0.45813e-2

	besselI0AsympCoeff0 = 0.39894228
	besselI0AsympCoeff1 = 0.1328592e-1
	besselI0AsympCoeff2 = 0.225319e-2
	besselI0AsympCoeff3 = -0.157565e-2
	besselI0AsympCoeff4 = 0.916281e-2
	besselI0AsympCoeff5 = -0.2057706e-1
	besselI0AsympCoeff6 = 0.2635537e-1
	besselI0AsympCoeff7 = -0.1647633e-1
	besselI0AsympCoeff8 = 0.392377e-2
)

// besselI0 computes the modified Bessel function of the first kind,
// order zero, used to evaluate the Kaiser window that shapes the
// windowed-sinc prototype filters this package builds from.
func besselI0(x float64) float64 {
	ax := math.Abs(x)

	if ax < besselSmallArgThreshold {
		t := x / besselSmallArgThreshold
		t *= t
		return 1.0 + t*(besselI0Coeff1+t*(besselI0Coeff2+t*(besselI0Coeff3+
			t*(besselI0Coeff4+t*(besselI0Coeff5+t*besselI0Coeff6)))))
	}

	t := besselSmallArgThreshold / ax
	result := besselI0AsympCoeff0 + t*(besselI0AsympCoeff1+t*(besselI0AsympCoeff2+
		t*(besselI0AsympCoeff3+t*(besselI0AsympCoeff4+t*(besselI0AsympCoeff5+
			t*(besselI0AsympCoeff6+t*(besselI0AsympCoeff7+t*besselI0AsympCoeff8)))))))
	return math.Exp(ax) * result / math.Sqrt(ax)
}

// kaiserBeta computes the Kaiser window beta parameter from the desired
// stopband attenuation in decibels (Kaiser & Schafer's empirical formula).
func kaiserBeta(attenuationDB float64) float64 {
	const (
		attHigh      = 50.0
		attMedium    = 21.0
		highCoeff1   = 0.1102
		highOffset   = 8.7
		mediumCoeff1 = 0.5842
		mediumPower  = 0.4
		mediumCoeff2 = 0.07886
	)

	switch {
	case attenuationDB > attHigh:
		return highCoeff1 * (attenuationDB - highOffset)
	case attenuationDB >= attMedium:
		delta := attenuationDB - attMedium
		return mediumCoeff1*math.Pow(delta, mediumPower) + mediumCoeff2*delta
	default:
		return 0.0
	}
}

// kaiserWindow generates a Kaiser window of the given length and beta,
// symmetric about its center.
func kaiserWindow(length int, beta float64) []float64 {
	if length < 1 {
		return nil
	}
	if length == 1 {
		return []float64{1.0}
	}

	window := make([]float64, length)
	alpha := float64(length-1) / 2.0
	i0Beta := besselI0(beta)

	for n := range length {
		x := (float64(n) - alpha) / alpha
		arg := beta * math.Sqrt(1.0-x*x)
		window[n] = besselI0(arg) / i0Beta
	}
	return window
}
