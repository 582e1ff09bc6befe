// Package voice holds the per-voice playback state the resampler reads
// from on every render call: a 32.32 phase accumulator, the mip level
// and table currently in use, and the step derived from pitch.
//
// State is a plain struct with fields read directly by the render
// loop, rather than behind accessor methods — one voice's mip level,
// phase, and cycle-mask fields, updated in place each block.
package voice

import (
	"math"

	"github.com/kbrannan/wavetable-oscillator/internal/fixed"
)

// State is one voice's playback position and the mip level/table it is
// currently reading from.
type State struct {
	Pos  fixed.Q32_32 // current phase within the current mip level
	Step fixed.Q32_32 // per-sample phase increment at the current level

	TablePtr []float32 // buffer of the current mip level (offset by frame if set)
	Base     int       // index of the first real sample within TablePtr
	TableLen int64     // length of that mip level
	Table    int       // current mip-level index (>= 0)

	OvrsplFlag bool // true when pitch >= 0: use the 2x path + downsampler

	CycleLen  int64 // power-of-two cycle length, single-cycle mode only
	CycleMask int64 // CycleLen - 1

	FrameIdx int // active frame, MipMapSet mode only
}

// ComputeStep derives Step from a 16.16-octave pitch and the ratio of
// the current mip level's native length to the source (level-0) cycle
// length (lev_len(table)/source_len, i.e. 2^-table for a plain dyadic
// mip-map). Octave 0 (pitch == 0) at level 0 yields a step of exactly
// one native sample per output sample.
func (s *State) ComputeStep(pitch int64, nativeLenRatio float64) {
	octaves := float64(pitch) / 65536.0
	ratio := math.Exp2(octaves) * nativeLenRatio
	s.Step = fixed.FromFloat64(ratio)
}

// Reset clears the accumulator and table binding, leaving the voice
// ready to be rebound by the resampler's begin_fade/set_sample paths.
func (s *State) Reset() {
	s.Pos = 0
	s.Step = 0
	s.TablePtr = nil
	s.Base = 0
	s.TableLen = 0
	s.Table = 0
	s.OvrsplFlag = false
	s.CycleLen = 0
	s.CycleMask = 0
	s.FrameIdx = 0
}
