package mipmap

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbrannan/wavetable-oscillator/internal/testutil"
)

func sineCycle(n int) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = float32(math.Sin(2 * math.Pi * float64(i) / float64(n)))
	}
	return out
}

func TestFillSingleChunkBuildsAllLevels(t *testing.T) {
	m, err := New(256, 0, 0, 4)
	require.NoError(t, err)

	needMore, err := m.Fill(sineCycle(256))
	require.NoError(t, err)
	assert.False(t, needMore)
	assert.True(t, m.IsReady())

	assert.Equal(t, int64(256), m.LevLen(0))
	assert.Equal(t, int64(128), m.LevLen(1))
	assert.Equal(t, int64(64), m.LevLen(2))
	assert.Equal(t, int64(32), m.LevLen(3))
}

func TestFillInChunksMatchesSingleChunk(t *testing.T) {
	cycle := sineCycle(256)

	whole, err := New(256, 0, 0, 3)
	require.NoError(t, err)
	_, err = whole.Fill(cycle)
	require.NoError(t, err)

	chunked, err := New(256, 0, 0, 3)
	require.NoError(t, err)
	for off := 0; off < len(cycle); off += 37 {
		end := min(off+37, len(cycle))
		needMore, err := chunked.Fill(cycle[off:end])
		require.NoError(t, err)
		if end < len(cycle) {
			assert.True(t, needMore)
		}
	}
	require.True(t, chunked.IsReady())

	wholeBuf, err := whole.UseTable(0)
	require.NoError(t, err)
	chunkedBuf, err := chunked.UseTable(0)
	require.NoError(t, err)
	assert.Equal(t, wholeBuf, chunkedBuf)
}

func TestFillRejectsOverflow(t *testing.T) {
	m, err := New(16, 0, 0, 1)
	require.NoError(t, err)
	_, err = m.Fill(make([]float32, 32))
	assert.ErrorIs(t, err, ErrTooManySamples)
}

func TestUseTableBeforeReadyErrors(t *testing.T) {
	m, err := New(16, 0, 0, 1)
	require.NoError(t, err)
	_, err = m.UseTable(0)
	assert.ErrorIs(t, err, ErrNotReady)
}

func TestUseTableLevelRangeErrors(t *testing.T) {
	m, err := New(16, 0, 0, 1)
	require.NoError(t, err)
	_, err = m.Fill(make([]float32, 16))
	require.NoError(t, err)
	_, err = m.UseTable(5)
	assert.ErrorIs(t, err, ErrLevelRange)
}

func TestLevelsHavePadCoveringFilterSupport(t *testing.T) {
	m, err := New(256, 0, 0, 2)
	require.NoError(t, err)
	_, err = m.Fill(sineCycle(256))
	require.NoError(t, err)

	for k := range m.NbrTables() {
		assert.GreaterOrEqualf(t, m.PayloadOffset(k), minFilterSupport, "level %d pad too small", k)
	}
}

func TestBuiltLevelsHaveNoNaNOrInf(t *testing.T) {
	m, err := New(512, 4, 4, 5)
	require.NoError(t, err)
	_, err = m.Fill(sineCycle(512))
	require.NoError(t, err)

	for k := range m.NbrTables() {
		buf, err := m.UseTable(k)
		require.NoError(t, err)
		testutil.AssertNoNaNOrInf32(t, buf, "level %d", k)
	}
}

func TestPadBeyondFilterMarginIsZero(t *testing.T) {
	extraPad := 20
	m, err := New(256, minFilterSupport+extraPad, minFilterSupport+extraPad, 3)
	require.NoError(t, err)
	_, err = m.Fill(sineCycle(256))
	require.NoError(t, err)

	lvl0, err := m.UseTable(0)
	require.NoError(t, err)
	prePad0 := m.PayloadOffset(0)
	for i := 0; i < prePad0; i++ {
		assert.Zerof(t, lvl0[i], "level 0 pre-pad[%d] should be zero", i)
	}
	postStart0 := prePad0 + int(m.LevLen(0))
	for i := postStart0; i < len(lvl0); i++ {
		assert.Zerof(t, lvl0[i], "level 0 post-pad[%d] should be zero", i)
	}

	lvl1, err := m.UseTable(1)
	require.NoError(t, err)
	prePad1 := m.PayloadOffset(1)
	for i := 0; i < prePad1-filterQuarterLen; i++ {
		assert.Zerof(t, lvl1[i], "level 1 pre-pad[%d] beyond the build margin should be zero", i)
	}
	postStart1 := prePad1 + int(m.LevLen(1)) + filterQuarterLen
	for i := postStart1; i < len(lvl1); i++ {
		assert.Zerof(t, lvl1[i], "level 1 post-pad[%d] beyond the build margin should be zero", i)
	}
}

func TestHigherLevelsAttenuateHighFrequency(t *testing.T) {
	n := 256
	cycle := make([]float32, n)
	for i := range cycle {
		cycle[i] = float32(math.Sin(2 * math.Pi * float64(i) * 32 / float64(n)))
	}
	m, err := New(int64(n), 0, 0, 3)
	require.NoError(t, err)
	_, err = m.Fill(cycle)
	require.NoError(t, err)

	lvl0, _ := m.UseTable(0)
	lvl2, _ := m.UseTable(2)
	r0 := testutil.RMS32(lvl0[m.PayloadOffset(0) : m.PayloadOffset(0)+int(m.LevLen(0))])
	r2 := testutil.RMS32(lvl2[m.PayloadOffset(2) : m.PayloadOffset(2)+int(m.LevLen(2))])
	assert.Lessf(t, r2, r0*0.5, "level 2 should have attenuated the high-frequency content: r0=%v r2=%v", r0, r2)
}
