package wavetable

import (
	"github.com/kbrannan/wavetable-oscillator/internal/fixed"
	"github.com/kbrannan/wavetable-oscillator/internal/interp"
	"github.com/kbrannan/wavetable-oscillator/internal/voice"
)

// InterpolateBlock renders n samples into dst[:n], applying any deferred
// mip-level/frame/path crossfade at the start of the call.
func (r *Resampler) InterpolateBlock(dst []float32, n int) error {
	if n <= 0 {
		return ErrZeroLengthBlock
	}
	if r.current.TablePtr == nil {
		return ErrNotReady
	}
	if r.interp == nil {
		return ErrNotReady
	}

	if r.fadeNeededFlag && !r.fadeFlag {
		if err := r.beginFade(); err != nil {
			return err
		}
	}

	written := 0
	for written < n {
		work := min(n-written, BufLen)
		if r.fadeFlag {
			work = min(work, FadeLen-r.fadePos)
		}

		out := dst[written : written+work]
		switch {
		case r.fadeFlag:
			r.fadeBlock(out, work)
		case r.current.OvrsplFlag:
			r.renderOversampled(out, work)
		default:
			r.renderNormal(out, work)
		}
		written += work
	}
	return nil
}

// beginFade snapshots CURRENT into FADEOUT, rebinds CURRENT to the mip
// level/frame the last SetPitch/SetFrame call selected, and converts
// CURRENT's phase from FADEOUT's level resolution to CURRENT's.
func (r *Resampler) beginFade() error {
	oldTable := r.current.Table
	r.fadeout = r.current

	newTable := mipLevelForPitch(r.pitch)
	newOvrspl := r.pitch >= 0

	buf, base, levLen, err := r.useTable(newTable)
	if err != nil {
		return err
	}

	r.current.TablePtr = buf
	r.current.Base = base
	r.current.TableLen = levLen
	r.current.Table = newTable
	r.current.OvrsplFlag = newOvrspl
	r.current.FrameIdx = r.frameIdx
	r.current.ComputeStep(r.pitch, r.nativeLenRatio(newTable))
	r.current.Pos = fixed.ShiftBidi(r.current.Pos, oldTable-newTable)

	r.fadeNeededFlag = false
	r.fadeFlag = true
	r.fadePos = 0
	return nil
}

// renderNormal drives the 12-tap normal-rate interpolator directly into
// dst, then runs the downsampler's group-delay-matched single-rate path
// so normal- and oversampled-rate output stay time-aligned.
func (r *Resampler) renderNormal(dst []float32, work int) {
	renderVoiceBlock(r.interp.Norm, dst, &r.current, work)
	r.down.PhaseBlock(dst, dst, work)
}

// renderOversampled drives the 24-tap oversampled interpolator at half
// CURRENT's step to fill a 2x-rate intermediate buffer, then halves it
// back down through the half-band downsampler into dst.
func (r *Resampler) renderOversampled(dst []float32, work int) {
	buf2 := r.buf[:2*work]

	origStep := r.current.Step
	r.current.Step = fixed.ShiftBidi(origStep, -1)
	renderVoiceBlock(r.interp.Over, buf2, &r.current, 2*work)
	r.current.Step = origStep

	r.down.DownsampleBlock(dst, buf2, work)
}

// fadeBlock crossfades CURRENT (ramping in) and FADEOUT (ramping out)
// into dst over the course of the active FadeLen window. A voice's
// contribution is written into a 2x-rate buffer — either directly, if
// it is the oversampled path, or into the even-indexed slots with the
// odd-indexed slots left at zero otherwise, the same zero-path0
// convention PhaseBlock uses for the single-rate case. Because the
// downsampler is linear, summing both voices' contributions into one
// buffer before a single DownsampleBlock call is equivalent to
// downsampling each separately and adding the results.
func (r *Resampler) fadeBlock(dst []float32, work int) {
	buf2 := r.buf[:2*work]
	for i := range buf2 {
		buf2[i] = 0
	}

	logicalVol := float32(r.fadePos) / float32(FadeLen)
	nominalRate := float32(1) / float32(FadeLen)

	r.rampAddVoice(buf2, &r.current, work, logicalVol, nominalRate)
	r.rampAddVoice(buf2, &r.fadeout, work, 1-logicalVol, -nominalRate)

	r.down.DownsampleBlock(dst, buf2, work)

	r.fadePos += work
	if r.fadePos >= FadeLen {
		r.fadeFlag = false
	}
}

// rampAddVoice accumulates one voice's ramped contribution into buf2
// (sized 2*work). nominalRate is the desired volume change per output
// sample (positive for CURRENT ramping in, negative for FADEOUT ramping
// out); it is halved for the oversampled path since that path ticks
// twice per output sample.
func (r *Resampler) rampAddVoice(buf2 []float32, state *voice.State, work int, startVol, nominalRate float32) {
	if state.OvrsplFlag {
		origStep := state.Step
		state.Step = fixed.ShiftBidi(origStep, -1)
		rampAddVoiceBlock(r.interp.Over, buf2, state, 2*work, startVol, nominalRate/2)
		state.Step = origStep
		return
	}

	scratch := r.scratch1x[:work]
	for i := range scratch {
		scratch[i] = 0
	}
	rampAddVoiceBlock(r.interp.Norm, scratch, state, work, startVol, nominalRate)
	// DownsampleBlock averages its two paths (0.5*(out0+out1)) to keep
	// a genuine 2x-rate signal at unity gain; a single-rate voice fed
	// only into the even (path1) slots needs its contribution doubled
	// here so DownsampleBlock's averaging reproduces PhaseBlock's
	// unscaled result for this voice's share of the crossfade.
	for i, v := range scratch {
		buf2[2*i] += 2 * v
	}
}

// renderVoiceBlock drives n samples of a voice's playback into dst,
// using masked (wraparound) addressing when the voice is bound to a
// bare power-of-two cycle, or the mip-map's payload-offset addressing
// otherwise.
func renderVoiceBlock(in *interp.Interp, dst []float32, state *voice.State, n int) {
	if state.CycleLen != 0 {
		state.Pos = in.BlockMasked(dst, state.TablePtr, state.Pos, state.Step, int(state.CycleMask), n)
		return
	}
	pos := withBase(state.Pos, state.Base)
	pos = in.Block(dst, state.TablePtr, pos, state.Step, n)
	state.Pos = withoutBase(pos, state.Base)
}

// rampAddVoiceBlock is renderVoiceBlock's ramp-add counterpart, used by
// the crossfade.
func rampAddVoiceBlock(in *interp.Interp, dst []float32, state *voice.State, n int, vol, volStep float32) {
	if state.CycleLen != 0 {
		state.Pos = in.RampAddBlockMasked(dst, state.TablePtr, state.Pos, state.Step, int(state.CycleMask), n, vol, volStep)
		return
	}
	pos := withBase(state.Pos, state.Base)
	pos = in.RampAddBlock(dst, state.TablePtr, pos, state.Step, n, vol, volStep)
	state.Pos = withoutBase(pos, state.Base)
}

func withBase(pos fixed.Q32_32, base int) fixed.Q32_32 {
	return fixed.Add(pos, fixed.FromInt(int64(base)))
}

func withoutBase(pos fixed.Q32_32, base int) fixed.Q32_32 {
	return fixed.Sub(pos, fixed.FromInt(int64(base)))
}
