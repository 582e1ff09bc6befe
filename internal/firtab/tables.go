// Package firtab holds the process-wide, read-only FIR coefficient
// tables the resampling engine convolves against: the two polyphase
// interpolation banks (1x and 2x), the mip-map decimation filter, and
// the half-band downsampler's all-pass coefficients.
//
// All tables are computed once, lazily, via sync.OnceValue rather than
// package init() — this avoids any cross-file init-order hazard and
// keeps the tables behaving like compile-time constants without an
// init() ordering dependency.
package firtab

import "sync"

const (
	// Tap1x is FIR_LEN for the normal-rate (1x) polyphase interpolator.
	Tap1x = 12
	// Tap2x is FIR_LEN for the oversampled (2x) polyphase interpolator.
	Tap2x = 24
	// NumPhases is the number of polyphase bank entries (64).
	NumPhases = 64

	// MipTaps is the length of the symmetric mip-map decimation filter.
	MipTaps = 81

	// DownsamplerTaps is the number of half-band all-pass coefficients.
	DownsamplerTaps = 7

	// attenuation1x/2x/mip are Kaiser-window stopband targets (dB).
	attenuation1x = 100.0
	attenuation2x = 110.0
	attenuationMip = 100.0

	// cutoff1x/2x are normalized cutoff frequencies for the polyphase
	// prototype filters, backed off slightly from Nyquist (0.5) to leave
	// transition bandwidth for the Kaiser window's rolloff.
	cutoff1x = 0.45
	cutoff2x = 0.45

	// cutoffMip halves the passband for the 2:1 mip-map decimation stage.
	cutoffMip = 0.23
)

// firTable1x lazily builds the 12-tap x 64-phase prototype: row index is
// the tap position, column index is the phase.
var firTable1x = sync.OnceValue(func() [Tap1x][NumPhases]float64 {
	rows := buildPolyphaseTable(Tap1x, NumPhases, cutoff1x, attenuation1x)
	var out [Tap1x][NumPhases]float64
	for t := range out {
		copy(out[t][:], rows[t])
	}
	return out
})

// firTable2x lazily builds the 24-tap x 64-phase prototype for the
// oversampled interpolator.
var firTable2x = sync.OnceValue(func() [Tap2x][NumPhases]float64 {
	rows := buildPolyphaseTable(Tap2x, NumPhases, cutoff2x, attenuation2x)
	var out [Tap2x][NumPhases]float64
	for t := range out {
		copy(out[t][:], rows[t])
	}
	return out
})

// mipFilter lazily builds the 81-tap symmetric decimation FIR shared by
// every mip-map level transition.
var mipFilter = sync.OnceValue(func() [MipTaps]float64 {
	coeffs := designLowpass(MipTaps, cutoffMip, attenuationMip)
	var out [MipTaps]float64
	copy(out[:], coeffs)
	return out
})

// downsamplerCoeffs lazily builds the 7 half-band all-pass coefficients,
// each strictly in (0,1), partitioned {0,2,4,6} for path0 and {1,3,5}
// for path1 by the half-band downsampler.
//
// These are representative all-pass halving-filter coefficients (the
// shape soxr-style half-band splitters use); the exact values only need
// to satisfy the (0,1) contract and produce a well-behaved anti-imaging
// response, not match a specific reference implementation bit-for-bit.
var downsamplerCoeffs = sync.OnceValue(func() [DownsamplerTaps]float64 {
	return [DownsamplerTaps]float64{
		0.07986642623635751,
		0.2333753907173731,
		0.40256604075306416,
		0.5553624333056893,
		0.696198945124621,
		0.8255838070953408,
		0.9429332735698304,
	}
})

// FIR1x returns the 1x polyphase prototype table (tap-major, phase-minor).
func FIR1x() [Tap1x][NumPhases]float64 { return firTable1x() }

// FIR2x returns the 2x polyphase prototype table (tap-major, phase-minor).
func FIR2x() [Tap2x][NumPhases]float64 { return firTable2x() }

// MipFIR returns the 81-tap symmetric mip-map decimation filter.
func MipFIR() [MipTaps]float64 { return mipFilter() }

// Downsampler returns the 7 half-band all-pass coefficients.
func Downsampler() [DownsamplerTaps]float64 { return downsamplerCoeffs() }

// buildPolyphaseTable designs a windowed-sinc prototype of length
// taps*phases and decomposes it into a [taps][phases] polyphase bank,
// scaling so each phase's average DC gain is 1.0 (the prototype's total
// DC gain is `phases`), matching the approach in the retired
// internal/filter.DesignPolyphaseFilterBank this package replaces.
// cutoff is relative to the interpolated signal's sample rate; the
// prototype runs at `phases` times that rate, so it is divided by phases.
func buildPolyphaseTable(taps, phases int, cutoff, attenuationDB float64) [][]float64 {
	prototype := designLowpass(taps*phases, cutoff/float64(phases), attenuationDB)

	sum := 0.0
	for _, c := range prototype {
		sum += c
	}
	if sum != 0 {
		scale := float64(phases) / sum
		for i := range prototype {
			prototype[i] *= scale
		}
	}

	table := make([][]float64, taps)
	for t := range table {
		table[t] = make([]float64, phases)
		for p := range phases {
			idx := t*phases + p
			if idx < len(prototype) {
				table[t][p] = prototype[idx]
			}
		}
	}
	return table
}
