package oscillator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrepareThenRenderProducesNonSilentOutput(t *testing.T) {
	cycle, err := NewSine(256)
	require.NoError(t, err)

	n := New()
	require.NoError(t, n.Prepare(cycle, 4))
	n.SetVolume(1.0)
	require.NoError(t, n.SetPitch(0))

	left := make([]float32, 64)
	right := make([]float32, 64)
	require.NoError(t, n.Render([][]float32{left, right}, 64))

	var peak float32
	for i := range left {
		if left[i] != right[i] {
			t.Fatalf("channels diverged at %d: %v vs %v", i, left[i], right[i])
		}
		if left[i] < 0 {
			peak = max(peak, -left[i])
		} else {
			peak = max(peak, left[i])
		}
	}
	assert.Greater(t, peak, float32(0))
}

func TestZeroVolumeRendersSilence(t *testing.T) {
	cycle, err := NewSine(256)
	require.NoError(t, err)

	n := New()
	require.NoError(t, n.Prepare(cycle, 4))
	n.SetVolume(0.0)
	require.NoError(t, n.SetPitch(0))

	for range 4 {
		n.volume.Next()
	}

	dst := make([]float32, 64)
	require.NoError(t, n.Render([][]float32{dst}, 64))
	for i, v := range dst {
		assert.Zerof(t, v, "dst[%d]=%v should be silent at zero volume", i, v)
	}
}

func TestRenderZeroLengthErrors(t *testing.T) {
	cycle, err := NewSine(256)
	require.NoError(t, err)

	n := New()
	require.NoError(t, n.Prepare(cycle, 4))
	require.NoError(t, n.SetPitch(0))

	assert.Error(t, n.Render([][]float32{make([]float32, 0)}, 0))
}

func TestPrepareFramesEnablesSetFrame(t *testing.T) {
	sine, err := NewSine(256)
	require.NoError(t, err)
	saw, err := NewSaw(256)
	require.NoError(t, err)

	n := New()
	require.NoError(t, n.PrepareFrames([][]float32{sine, saw}, 0, 4))
	require.NoError(t, n.SetPitch(0))
	n.SetVolume(1.0)
	for range volumeSmoothSamples {
		n.volume.Next()
	}

	n.SetFrame(1)
	dst := make([]float32, 256)
	require.NoError(t, n.Render([][]float32{dst}, len(dst)))

	assert.Equal(t, 2, n.nFrames)
}

func TestPrepareRejectsZeroLevels(t *testing.T) {
	n := New()
	err := n.Prepare(make([]float32, 64), 0)
	assert.Error(t, err)
}

func TestInfoReflectsUnderlyingResampler(t *testing.T) {
	cycle, err := NewSine(256)
	require.NoError(t, err)

	n := New()
	require.NoError(t, n.Prepare(cycle, 4))
	require.NoError(t, n.SetPitch(0))

	info := n.Info()
	assert.False(t, info.Fading)
}

func TestClearBuffersDoesNotError(t *testing.T) {
	cycle, err := NewSine(256)
	require.NoError(t, err)

	n := New()
	require.NoError(t, n.Prepare(cycle, 4))
	require.NoError(t, n.SetPitch(0))

	dst := make([]float32, 32)
	require.NoError(t, n.Render([][]float32{dst}, len(dst)))
	n.ClearBuffers()
}
