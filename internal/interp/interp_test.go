package interp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbrannan/wavetable-oscillator/internal/fixed"
)

func paddedSine(n, pad int) ([]float32, int) {
	buf := make([]float32, n+2*pad)
	for i := range n {
		buf[pad+i] = float32(math.Sin(2 * math.Pi * float64(i) / float64(n)))
	}
	// copy the cycle's other end into each pad (periodic extension) so taps
	// reading past the edges see a continuous signal instead of a hard zero.
	for i := 0; i < pad; i++ {
		buf[pad-1-i] = buf[pad+(n-1-i%n)]
		buf[pad+n+i] = buf[pad+i%n]
	}
	return buf, pad
}

func TestNew1xAnd2xHaveExpectedTapCounts(t *testing.T) {
	assert.Equal(t, 12, New1x().Taps())
	assert.Equal(t, 24, New2x().Taps())
}

func TestSampleAtIntegerPositionRecoversInputApproximately(t *testing.T) {
	in := New1x()
	n := 256
	buf, pad := paddedSine(n, in.Taps())

	for i := 0; i < n; i += 17 {
		got := in.Sample(buf, pad+i, 0)
		want := buf[pad+i]
		assert.InDeltaf(t, float64(want), float64(got), 0.05, "index %d", i)
	}
}

func TestSampleNoNaNOrInfAcrossFraction(t *testing.T) {
	in := New2x()
	n := 256
	buf, pad := paddedSine(n, in.Taps())

	for frac := uint64(0); frac < 1<<32; frac += 1 << 20 {
		got := in.Sample(buf, pad+10, fixed.Q0_32(frac))
		require.Falsef(t, math.IsNaN(float64(got)) || math.IsInf(float64(got), 0), "frac=%d", frac)
	}
}

func TestSampleMaskedWrapsAtCycleBoundary(t *testing.T) {
	in := New1x()
	n := 64 // power of two for masked addressing
	mask := n - 1
	buf := make([]float32, n)
	for i := range buf {
		buf[i] = float32(math.Sin(2 * math.Pi * float64(i) / float64(n)))
	}

	// Sampling at the wraparound boundary reads taps on both sides of it
	// and should stay finite.
	got := in.SampleMasked(buf, n-1, mask, 0)
	require.False(t, math.IsNaN(float64(got)) || math.IsInf(float64(got), 0))
}

func TestBlockAdvancesPositionByNTimesStep(t *testing.T) {
	in := New1x()
	n := 256
	buf, pad := paddedSine(n, in.Taps())

	pos := fixed.FromInt(int64(pad))
	step := fixed.FromInt(1)
	dst := make([]float32, 10)
	end := in.Block(dst, buf, pos, step, 10)

	assert.Equal(t, fixed.FromInt(int64(pad)+10), end)
}

func TestRampAddBlockAccumulatesOntoExistingContent(t *testing.T) {
	in := New1x()
	n := 256
	buf, pad := paddedSine(n, in.Taps())

	dst := make([]float32, 8)
	for i := range dst {
		dst[i] = 1.0
	}
	pos := fixed.FromInt(int64(pad))
	step := fixed.FromInt(1)
	in.RampAddBlock(dst, buf, pos, step, 8, 1, 0)

	for i, v := range dst {
		want := 1.0 + in.Sample(buf, pad+i, 0)
		assert.InDeltaf(t, float64(want), float64(v), 1e-6, "dst[%d]=%v should be the original 1.0 bias plus the interpolated sample", i, v)
	}
}

func TestRampAddBlockZeroVolumeIsNoOp(t *testing.T) {
	in := New1x()
	n := 256
	buf, pad := paddedSine(n, in.Taps())

	dst := make([]float32, 8)
	pos := fixed.FromInt(int64(pad))
	step := fixed.FromInt(1)
	in.RampAddBlock(dst, buf, pos, step, 8, 0, 0)

	for i, v := range dst {
		assert.Zerof(t, v, "dst[%d] should stay zero at zero volume", i)
	}
}
