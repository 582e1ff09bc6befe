package oscillator

import (
	"fmt"
	"math"

	"github.com/kbrannan/wavetable-oscillator"
	"github.com/kbrannan/wavetable-oscillator/internal/mipmap"
)

// volumeSmoothSamples is the number of samples a volume change takes to
// fully ramp in, keeping step changes from clicking.
const volumeSmoothSamples = 64

// Node is the thin host-facing shell around a wavetable.Resampler:
// wavetable upload, volume/pitch/frame parameter mapping, and block
// render. Pitch and frame changes are forwarded straight to the
// Resampler, which already hides their discontinuities with its own
// mip-level/frame crossfade; only volume is smoothed here, to avoid
// zipper noise on host-side volume automation (not an envelope or
// modulation engine — there is no time-varying shape beyond the linear
// ramp to whatever value the host last set).
type Node struct {
	r      *wavetable.Resampler
	volume *Smoother

	pitch    int64
	frame    uint32
	nFrames  int
}

// New constructs an unprepared Node.
func New() *Node {
	r := wavetable.New()
	r.SetInterp(wavetable.NewInterpPack())
	return &Node{
		r:      r,
		volume: NewSmoother(volumeSmoothSamples),
	}
}

// Prepare builds a single-frame mip-map from a power-of-two-length
// cycle and binds it to the Resampler, resetting all playback state.
func (n *Node) Prepare(cycle []float32, nLevels int) error {
	mm, err := mipmap.New(int64(len(cycle)), 0, 0, nLevels)
	if err != nil {
		return fmt.Errorf("oscillator: %w", err)
	}
	if needMore, err := mm.Fill(cycle); err != nil {
		return fmt.Errorf("oscillator: %w", err)
	} else if needMore {
		return fmt.Errorf("oscillator: cycle shorter than declared length")
	}

	if err := n.r.SetSample(mm); err != nil {
		return fmt.Errorf("oscillator: %w", err)
	}
	n.nFrames = 0
	return nil
}

// PrepareFrames builds a MipMapSet from nFrames independent cycles of
// equal length for the frame-morphing path.
func (n *Node) PrepareFrames(frames [][]float32, framePad, nLevels int) error {
	if len(frames) == 0 {
		return fmt.Errorf("oscillator: at least one frame required")
	}
	frameLen := int64(len(frames[0]))
	set, err := mipmap.NewSet(frameLen, framePad, len(frames), nLevels)
	if err != nil {
		return fmt.Errorf("oscillator: %w", err)
	}
	for i, f := range frames {
		if needMore, err := set.Fill(i, f); err != nil {
			return fmt.Errorf("oscillator: frame %d: %w", i, err)
		} else if needMore {
			return fmt.Errorf("oscillator: frame %d shorter than declared length", i)
		}
	}

	if err := n.r.SetSampleSet(set); err != nil {
		return fmt.Errorf("oscillator: %w", err)
	}
	n.nFrames = len(frames)
	return nil
}

// SetVolume sets the target volume in [0,1]; the change ramps in over
// volumeSmoothSamples samples.
func (n *Node) SetVolume(v float64) {
	n.volume.SetTarget(v)
}

// SetPitch sets the pitch in octaves relative to the base cycle
// (typically [-2, 10]) and forwards it to the Resampler as 16.16
// fixed-point.
func (n *Node) SetPitch(octaves float64) error {
	fixedPitch := int64(math.Round(octaves * 65536))
	if err := n.r.SetPitch(fixedPitch); err != nil {
		return fmt.Errorf("oscillator: %w", err)
	}
	n.pitch = fixedPitch
	return nil
}

// SetFrame selects a wavetable frame, valid only after PrepareFrames.
func (n *Node) SetFrame(f uint32) {
	n.frame = f
	n.r.SetFrame(f)
}

// Render fills dst (one slice per output channel) with n samples each,
// rendering one mono block through the Resampler and fanning it out
// with the smoothed volume applied.
func (nd *Node) Render(dst [][]float32, n int) error {
	if n <= 0 {
		return wavetable.ErrZeroLengthBlock
	}
	scratch := make([]float32, n)
	if err := nd.r.InterpolateBlock(scratch, n); err != nil {
		return err
	}
	for i := 0; i < n; i++ {
		vol := float32(nd.volume.Next())
		sample := scratch[i] * vol
		for ch := range dst {
			dst[ch][i] = sample
		}
	}
	return nil
}

// ClearBuffers resets playback position, fade, and filter state without
// discarding the bound wavetable.
func (n *Node) ClearBuffers() { n.r.ClearBuffers() }

// Info reports diagnostics about the underlying Resampler.
func (n *Node) Info() wavetable.Info { return n.r.GetInfo() }
