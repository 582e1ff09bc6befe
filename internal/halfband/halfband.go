// Package halfband implements the 2-path polyphase all-pass IIR
// half-band downsampler, used to bring the oversampled (2x) interpolator
// path back down to the output rate while pushing its aliasing images
// below Nyquist/2.
package halfband

import "github.com/kbrannan/wavetable-oscillator/internal/firtab"

// path0Indices and path1Indices partition the 7 downsampler coefficients
// into the two polyphase all-pass chains.
var (
	path0Indices = [4]int{0, 2, 4, 6}
	path1Indices = [3]int{1, 3, 5}
)

// Downsampler holds the two all-pass cascades' state across blocks.
type Downsampler struct {
	coeffs [firtab.DownsamplerTaps]float64
	xArr   [2]float64
	yArr   [firtab.DownsamplerTaps]float64
}

// New creates a Downsampler with freshly-zeroed state.
func New() *Downsampler {
	return &Downsampler{coeffs: firtab.Downsampler()}
}

// Reset clears the all-pass state.
func (d *Downsampler) Reset() {
	d.xArr = [2]float64{}
	d.yArr = [firtab.DownsamplerTaps]float64{}
}

// allpassCascade runs a chain of one-stage all-pass sections:
//
//	y_s[n] = c_s*(x_s[n] - y_s[n-1]) + x_s[n-1]
//
// where section 0's input is the path's raw sample and section s>0's
// input is section s-1's output. Because x_s[n-1] for s>0 is exactly
// y_{s-1}[n-1] (the previous call's value of the prior section's state
// cell), the only state that must be threaded in from outside the
// section chain is the raw path input one call back (xPrev).
func allpassCascade(x float64, indices []int, coeffs *[firtab.DownsamplerTaps]float64, y *[firtab.DownsamplerTaps]float64, xPrev *float64) float64 {
	prevSectionOldY := *xPrev
	*xPrev = x

	cur := x
	for _, idx := range indices {
		oldY := y[idx]
		newY := coeffs[idx]*(cur-oldY) + prevSectionOldY
		y[idx] = newY
		prevSectionOldY = oldY
		cur = newY
	}
	return cur
}

// DownsampleBlock reads 2n samples from src and writes n samples to
// dst: path0 consumes the odd-indexed input samples, path1 the
// even-indexed ones, and the two paths' outputs are averaged. Each path
// is an all-pass cascade (unity gain at every frequency), so averaging
// rather than summing is what gives the combined decimator unity
// passband gain instead of doubling it. dst and src may alias.
func (d *Downsampler) DownsampleBlock(dst, src []float32, n int) {
	for i := range n {
		even := float64(src[2*i])
		odd := float64(src[2*i+1])

		out0 := allpassCascade(odd, path0Indices[:], &d.coeffs, &d.yArr, &d.xArr[0])
		out1 := allpassCascade(even, path1Indices[:], &d.coeffs, &d.yArr, &d.xArr[1])

		dst[i] = float32(0.5 * (out0 + out1))
	}
	d.flushDenormals()
}

// PhaseBlock runs the same filter on a single-rate stream by feeding
// zeros into path0, which compensates the group delay so the normal-rate
// (non-oversampled) render path stays time-aligned with the oversampled
// one.
func (d *Downsampler) PhaseBlock(dst, src []float32, n int) {
	for i := range n {
		out0 := allpassCascade(0, path0Indices[:], &d.coeffs, &d.yArr, &d.xArr[0])
		out1 := allpassCascade(float64(src[i]), path1Indices[:], &d.coeffs, &d.yArr, &d.xArr[1])

		dst[i] = float32(out0 + out1)
	}
	d.flushDenormals()
}

// flushDenormals nudges the even-indexed state cells with a tiny
// add/subtract pair after every call, preventing them from decaying
// into denormal range and stalling the FPU on x86.
func (d *Downsampler) flushDenormals() {
	const bias = 1e-20
	d.yArr[0] += bias
	d.yArr[0] -= bias
	d.yArr[2] += bias
	d.yArr[2] -= bias
	d.yArr[4] += bias
	d.yArr[4] -= bias
	d.yArr[6] += bias
	d.yArr[6] -= bias
}
