// Package interp implements the windowed-FIR polyphase fractional-delay
// interpolator: 64 phases with linear inter-phase coefficient
// interpolation, in a normal-rate (12-tap) and an oversampled (24-tap)
// configuration.
//
// The per-tap blend uses linear interpolation between adjacent phase
// records, and internal/simdops handles the convolution sum — one SIMD
// indirection covering both float32 and float64 without duplicating the
// hot loop.
package interp

import (
	"github.com/kbrannan/wavetable-oscillator/internal/fixed"
	"github.com/kbrannan/wavetable-oscillator/internal/firtab"
	"github.com/kbrannan/wavetable-oscillator/internal/simdops"
)

// Interp is a fixed-phase-count polyphase interpolator. Two
// configurations exist — normal-rate (12 taps) and oversampled (24
// taps) — produced by New1x and New2x. Go has no const-generic array
// lengths, so rather than two monomorphized types parameterized on tap
// count, these are two instances of one type; the tap loop still runs
// over a fixed-length slice with no dynamic dispatch.
type Interp struct {
	taps    int
	center  int // offset of the window start relative to baseIdx
	phases  [fixed.NumPhases]firtab.PhaseRecord
	ops     *simdops.Ops[float32]
	scratch []float32 // reused blended-coefficient buffer, sized taps
}

// New1x returns the 12-tap normal-rate interpolator.
func New1x() *Interp {
	return newInterp(firtab.Tap1x, firtab.PhaseTable1x())
}

// New2x returns the 24-tap oversampled interpolator.
func New2x() *Interp {
	return newInterp(firtab.Tap2x, firtab.PhaseTable2x())
}

func newInterp(taps int, phases [fixed.NumPhases]firtab.PhaseRecord) *Interp {
	return &Interp{
		taps:    taps,
		center:  -taps/2 + 1,
		phases:  phases,
		ops:     simdops.Float32Ops(),
		scratch: make([]float32, taps),
	}
}

// Taps returns FIR_LEN for this interpolator instance.
func (in *Interp) Taps() int { return in.taps }

// blend fills in.scratch with the phase-blended coefficients for frac
// and returns it. Reused across calls; callers must consume before the
// next call.
func (in *Interp) blend(frac fixed.Q0_32) []float32 {
	ph := fixed.Phase(frac)
	q := fixed.Blend(frac)
	rec := in.phases[ph]
	for i := range in.scratch {
		in.scratch[i] = rec.Imp[i] + q*rec.Dif[i]
	}
	return in.scratch
}

// Sample convolves FIR_LEN taps of buf, centered on baseIdx, against the
// phase-blended coefficients for frac. buf must have valid samples from
// baseIdx+in.center through baseIdx+in.center+taps-1 (guaranteed by the
// mip-map's pad regions).
func (in *Interp) Sample(buf []float32, baseIdx int, frac fixed.Q0_32) float32 {
	coeffs := in.blend(frac)
	start := baseIdx + in.center
	window := buf[start : start+in.taps]
	return in.ops.DotProductUnsafe(window, coeffs)
}

// SampleMasked is the masked variant used in single-cycle mode: tap
// addressing wraps via (baseIdx+offset+tap)&mask instead of reading a
// contiguous window, giving free power-of-two wraparound at the cycle
// boundary.
func (in *Interp) SampleMasked(buf []float32, baseIdx, mask int, frac fixed.Q0_32) float32 {
	coeffs := in.blend(frac)
	start := baseIdx + in.center
	var c0, c1 float32
	for i := 0; i < in.taps; i += 2 {
		idx0 := (start + i) & mask
		c0 += buf[idx0] * coeffs[i]
		if i+1 < in.taps {
			idx1 := (start + i + 1) & mask
			c1 += buf[idx1] * coeffs[i+1]
		}
	}
	return c0 + c1
}

// Block renders n samples starting at pos with the given step, writing
// to dst[:n], and returns the resulting phase position.
func (in *Interp) Block(dst []float32, buf []float32, pos, step fixed.Q32_32, n int) fixed.Q32_32 {
	for i := range n {
		baseIdx := int(fixed.IntPart(pos))
		frac := fixed.FracPart(pos)
		dst[i] = in.Sample(buf, baseIdx, frac)
		pos = fixed.Add(pos, step)
	}
	return pos
}

// BlockMasked is Block's masked-addressing counterpart.
func (in *Interp) BlockMasked(dst []float32, buf []float32, pos, step fixed.Q32_32, mask int, n int) fixed.Q32_32 {
	for i := range n {
		baseIdx := int(fixed.IntPart(pos)) & mask
		frac := fixed.FracPart(pos)
		dst[i] = in.SampleMasked(buf, baseIdx, mask, frac)
		pos = fixed.Add(pos, step)
	}
	return pos
}

// RampAddBlock accumulates (rather than stores) n samples into dst,
// each scaled by a linearly ramping volume starting at vol and stepping
// by volStep per sample. Used by the fade crossfade.
func (in *Interp) RampAddBlock(dst []float32, buf []float32, pos, step fixed.Q32_32, n int, vol, volStep float32) fixed.Q32_32 {
	for i := range n {
		baseIdx := int(fixed.IntPart(pos))
		frac := fixed.FracPart(pos)
		dst[i] += in.Sample(buf, baseIdx, frac) * vol
		vol += volStep
		pos = fixed.Add(pos, step)
	}
	return pos
}

// RampAddBlockMasked is RampAddBlock's masked-addressing counterpart.
func (in *Interp) RampAddBlockMasked(dst []float32, buf []float32, pos, step fixed.Q32_32, mask int, n int, vol, volStep float32) fixed.Q32_32 {
	for i := range n {
		baseIdx := int(fixed.IntPart(pos)) & mask
		frac := fixed.FracPart(pos)
		dst[i] += in.SampleMasked(buf, baseIdx, mask, frac) * vol
		vol += volStep
		pos = fixed.Add(pos, step)
	}
	return pos
}
