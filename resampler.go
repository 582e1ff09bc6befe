// Package wavetable implements a real-time wavetable oscillator's
// resampling core: a 32.32 fixed-point voice state machine that reads
// through a polyphase interpolator, a dyadic mip-map, and a half-band
// downsampler to play a wavetable at an arbitrary pitch without
// aliasing.
//
// Grounded on resample.go's Resampler interface and
// constantRateResampler struct (owns its sub-stages, exposes
// Process/Flush/Reset/GetRatio) — Resampler here is this package's
// analogue of constantRateResampler, with InterpolateBlock in place of
// Process and ClearBuffers in place of Reset.
package wavetable

import (
	"errors"
	"fmt"

	"github.com/kbrannan/wavetable-oscillator/internal/fixed"
	"github.com/kbrannan/wavetable-oscillator/internal/halfband"
	"github.com/kbrannan/wavetable-oscillator/internal/interp"
	"github.com/kbrannan/wavetable-oscillator/internal/mipmap"
	"github.com/kbrannan/wavetable-oscillator/internal/voice"
)

// BufLen is the size of the Resampler's intermediate (1x-rate) render
// buffer; the oversampled path uses 2*BufLen floats of it per call.
const BufLen = 128

// FadeLen is the number of output samples a mip-level, frame, or
// oversampled-path crossfade takes to complete.
const FadeLen = 64

// Sentinel errors returned at the package boundary; the render path
// itself never recovers from these mid-block (see ClearBuffers).
var (
	ErrNotReady          = errors.New("wavetable: resampler has no ready sample bound")
	ErrPitchOutOfRange   = errors.New("wavetable: pitch exceeds the available mip levels")
	ErrZeroLengthBlock   = errors.New("wavetable: interpolate block length must be positive")
	ErrInvalidCycleLen   = errors.New("wavetable: single-cycle length must be a positive power of two")
)

// InterpPack bundles the normal-rate and oversampled interpolator
// instances a Resampler reads through. Instances are immutable and may
// be shared across voices (spec's non-owning-reference design).
type InterpPack struct {
	Norm *interp.Interp // 12-tap, normal rate
	Over *interp.Interp // 24-tap, 2x oversampled
}

// NewInterpPack builds a fresh pair of interpolators.
func NewInterpPack() *InterpPack {
	return &InterpPack{Norm: interp.New1x(), Over: interp.New2x()}
}

// Resampler is the top-level per-voice block processor. It owns two
// voice states — CURRENT and FADEOUT — and crossfades between them
// whenever the active mip level, frame, or oversampled path changes.
type Resampler struct {
	interp *InterpPack

	sample    *mipmap.MipMap
	sampleSet *mipmap.Set
	frameIdx  int

	current, fadeout voice.State
	down             *halfband.Downsampler

	buf       [2 * BufLen]float32
	scratch1x [BufLen]float32

	pitch           int64
	fadeFlag        bool
	fadeNeededFlag  bool
	fadePos         int
}

// New constructs an unbound Resampler; SetInterp and SetSample (or
// SetSampleSet / SetSingleCycle) must be called before InterpolateBlock.
func New() *Resampler {
	return &Resampler{down: halfband.New()}
}

// SetInterp binds the interpolator pack the resampler reads through.
func (r *Resampler) SetInterp(pack *InterpPack) {
	r.interp = pack
}

// SetSample binds a single-frame mip-map as the resampler's source and
// resets all playback state, per the lifecycle contract that the
// resampler must be reset whenever its mip-map is replaced.
func (r *Resampler) SetSample(m *mipmap.MipMap) error {
	if m == nil || !m.IsReady() {
		return ErrNotReady
	}
	r.sample = m
	r.sampleSet = nil
	r.frameIdx = 0
	return r.rebind()
}

// SetSampleSet binds a multi-frame mip-map set as the resampler's
// source, enabling SetFrame, and resets all playback state.
func (r *Resampler) SetSampleSet(s *mipmap.Set) error {
	if s == nil || !s.IsReady() {
		return ErrNotReady
	}
	r.sampleSet = s
	r.sample = nil
	r.frameIdx = 0
	return r.rebind()
}

// SetSingleCycle binds a bare power-of-two cycle buffer played back
// with masked (wraparound) addressing instead of a mip-map, for the
// single-cycle strict-loop mode.
func (r *Resampler) SetSingleCycle(cycle []float32) error {
	n := len(cycle)
	if n == 0 || n&(n-1) != 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCycleLen, n)
	}
	r.sample = nil
	r.sampleSet = nil
	r.current.Reset()
	r.fadeout.Reset()
	r.fadeFlag = false
	r.fadeNeededFlag = false
	r.fadePos = 0
	r.down.Reset()
	r.pitch = 0

	r.current.TablePtr = cycle
	r.current.TableLen = int64(n)
	r.current.CycleLen = int64(n)
	r.current.CycleMask = int64(n - 1)
	r.current.OvrsplFlag = true // pitch starts at 0, and ovrspl_flag is true whenever pitch >= 0
	r.current.ComputeStep(0, 1.0)
	return nil
}

// rebind clears playback state and binds both voices to mip level 0 of
// whichever source (r.sample or r.sampleSet) is currently set.
func (r *Resampler) rebind() error {
	r.current.Reset()
	r.fadeout.Reset()
	r.fadeFlag = false
	r.fadeNeededFlag = false
	r.fadePos = 0
	r.down.Reset()
	r.pitch = 0

	buf, base, levLen, err := r.useTable(0)
	if err != nil {
		return err
	}
	r.current.TablePtr = buf
	r.current.Base = base
	r.current.TableLen = levLen
	r.current.Table = 0
	r.current.OvrsplFlag = true // pitch starts at 0, and ovrspl_flag is true whenever pitch >= 0
	r.current.FrameIdx = r.frameIdx
	r.current.ComputeStep(0, r.nativeLenRatio(0))
	return nil
}

// ClearBuffers resets playback position, fade state, and the
// downsampler's filter memory without discarding the bound source.
func (r *Resampler) ClearBuffers() {
	r.current.Pos = 0
	r.fadeout.Pos = 0
	r.fadeFlag = false
	r.fadeNeededFlag = false
	r.fadePos = 0
	r.down.Reset()
	for i := range r.buf {
		r.buf[i] = 0
	}
}

// SetPitch stores the new pitch (16.16 octaves), recomputes CURRENT's
// step, and defers the mip-level/path switch to the next
// InterpolateBlock call if it differs from CURRENT's.
func (r *Resampler) SetPitch(pitch int64) error {
	n := r.nbrTables()
	if n > 0 && pitch >= int64(n)<<16 {
		return ErrPitchOutOfRange
	}

	r.pitch = pitch
	r.current.ComputeStep(pitch, r.nativeLenRatio(r.current.Table))

	newTable := mipLevelForPitch(pitch)
	newOvrspl := pitch >= 0
	if newTable != r.current.Table || newOvrspl != r.current.OvrsplFlag {
		r.fadeNeededFlag = true
	}

	if r.fadeFlag {
		r.fadeout.ComputeStep(pitch, r.nativeLenRatio(r.fadeout.Table))
	}
	return nil
}

// GetPitch returns the last pitch passed to SetPitch.
func (r *Resampler) GetPitch() int64 { return r.pitch }

// SetFrame selects a new wavetable frame (MipMapSet mode only),
// wrapping f modulo the frame count, deferring the crossfade to the
// next InterpolateBlock call if the frame actually changes.
func (r *Resampler) SetFrame(f uint32) {
	if r.sampleSet == nil {
		return
	}
	n := r.sampleSet.NbrFrames()
	if n == 0 {
		return
	}
	newFrame := int(f) % n
	if newFrame != r.frameIdx {
		r.frameIdx = newFrame
		r.fadeNeededFlag = true
	}
}

// GetPlaybackPos returns the current phase in native (level-0)
// sample-space 32.32 fixed point.
func (r *Resampler) GetPlaybackPos() int64 {
	return int64(fixed.ShiftBidi(r.current.Pos, r.current.Table))
}

// SetPlaybackPos sets the current phase, given in native (level-0)
// sample-space 32.32 fixed point; it is rescaled into both CURRENT's
// and (if fading) FADEOUT's mip-level resolution.
func (r *Resampler) SetPlaybackPos(p int64) {
	pos := fixed.Q32_32(p)
	r.current.Pos = fixed.ShiftBidi(pos, -r.current.Table)
	if r.fadeFlag {
		r.fadeout.Pos = fixed.ShiftBidi(pos, -r.fadeout.Table)
	}
}

// useTable resolves level k's buffer, payload offset, and length from
// whichever source is currently bound.
func (r *Resampler) useTable(table int) (buf []float32, base int, levLen int64, err error) {
	switch {
	case r.sampleSet != nil:
		buf, err = r.sampleSet.UseTable(table, r.frameIdx)
		if err != nil {
			return nil, 0, 0, err
		}
		return buf, r.sampleSet.PayloadOffset(table, r.frameIdx), r.sampleSet.LevLen(table, r.frameIdx), nil
	case r.sample != nil:
		buf, err = r.sample.UseTable(table)
		if err != nil {
			return nil, 0, 0, err
		}
		return buf, r.sample.PayloadOffset(table), r.sample.LevLen(table), nil
	default:
		return nil, 0, 0, ErrNotReady
	}
}

func (r *Resampler) nbrTables() int {
	switch {
	case r.sampleSet != nil:
		return r.sampleSet.NbrTables()
	case r.sample != nil:
		return r.sample.NbrTables()
	default:
		return 0
	}
}

func (r *Resampler) sampleLen() int64 {
	switch {
	case r.sampleSet != nil:
		return r.sampleSet.FrameLen
	case r.sample != nil:
		return r.sample.SampleLen()
	default:
		return 0
	}
}

// nativeLenRatio returns lev_len(table)/sample_len, the scale factor
// between mip level `table`'s native rate and the source cycle's.
func (r *Resampler) nativeLenRatio(table int) float64 {
	n := r.sampleLen()
	if n == 0 {
		return 1
	}
	var levLen int64
	switch {
	case r.sampleSet != nil:
		levLen = r.sampleSet.LevLen(table, r.frameIdx)
	case r.sample != nil:
		levLen = r.sample.LevLen(table)
	default:
		return 1
	}
	return float64(levLen) / float64(n)
}

// mipLevelForPitch implements table = max(0, pitch >> 16): negative
// pitch always selects level 0 and the normal-rate path.
func mipLevelForPitch(pitch int64) int {
	if pitch <= 0 {
		return 0
	}
	return int(pitch >> 16)
}
