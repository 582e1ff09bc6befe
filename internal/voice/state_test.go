package voice

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kbrannan/wavetable-oscillator/internal/fixed"
)

func TestComputeStepBasePitchLevelZeroIsUnity(t *testing.T) {
	var s State
	s.ComputeStep(0, 1.0)
	assert.InDelta(t, float64(fixed.FromInt(1)), float64(s.Step), 1e-6*float64(fixed.FromInt(1)))
}

func TestComputeStepOneOctaveUpDoublesStep(t *testing.T) {
	var base, up State
	base.ComputeStep(0, 1.0)
	up.ComputeStep(0x10000, 1.0)

	ratio := float64(up.Step) / float64(base.Step)
	assert.InDelta(t, 2.0, ratio, 1e-6)
}

func TestComputeStepHalvesWithNativeLenRatio(t *testing.T) {
	var lvl0, lvl1 State
	lvl0.ComputeStep(0, 1.0)
	lvl1.ComputeStep(0, 0.5)

	ratio := float64(lvl1.Step) / float64(lvl0.Step)
	assert.InDelta(t, 0.5, ratio, 1e-6)
}

func TestResetClearsAllFields(t *testing.T) {
	s := State{
		Pos: fixed.FromInt(5), Step: fixed.FromInt(1),
		TablePtr: []float32{1, 2, 3}, TableLen: 3, Table: 2,
		OvrsplFlag: true, CycleLen: 2048, CycleMask: 2047, FrameIdx: 4,
	}
	s.Reset()
	assert.Equal(t, State{}, s)
}
