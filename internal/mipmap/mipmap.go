// Package mipmap builds the dyadic mip-map of progressively low-passed,
// decimated-by-2 copies of a source cycle that the resampler reads from
// when pitch-shifting upward without aliasing.
package mipmap

import (
	"errors"
	"fmt"

	"github.com/kbrannan/wavetable-oscillator/internal/firtab"
	"github.com/kbrannan/wavetable-oscillator/internal/simdops"
)

// Sentinel errors, following the ambient wrapped-sentinel convention.
var (
	ErrTooManySamples = errors.New("mipmap: more samples pushed than the declared length")
	ErrNotReady       = errors.New("mipmap: not ready (fill incomplete)")
	ErrLevelRange     = errors.New("mipmap: level index out of range")
)

const (
	// filterHalfLen is the half-length (center to edge, exclusive of
	// center) of the 81-tap symmetric mip decimation filter.
	filterHalfLen = (firtab.MipTaps - 1) / 2

	// filterQuarterLen is the extra build margin a level's own decimation
	// pass requires so it always has valid inputs in the pad region of
	// the level built from it.
	filterQuarterLen = filterHalfLen / 2

	// minFilterSupport is the minimum pad (in samples) needed on every
	// level so the FIR can read past cycle edges without bounds checks,
	// even before accounting for the caller's requested pad.
	minFilterSupport = filterHalfLen + filterQuarterLen
)

// level is one dyadic step of the mip-map: a buffer with pre/post pad
// around a payload of decimated samples.
type level struct {
	buf        []float32
	prePad     int
	payloadLen int64
}

// MipMap is a sequence of N levels, level 0 being the source cycle and
// level k having length ceil(len/2^k), each padded so FIR taps can read
// past cycle boundaries.
type MipMap struct {
	sourceLen int64
	prePad    int
	postPad   int
	levels    []level
	filled    int64
	ready     bool
}

// New allocates a MipMap for a cycle of the given length with nLevels
// dyadic steps and the requested pre/post pad (widened to at least the
// decimation filter's support if smaller).
func New(length int64, prePad, postPad int, nLevels int) (*MipMap, error) {
	if length <= 0 {
		return nil, fmt.Errorf("mipmap: length must be positive, got %d", length)
	}
	if nLevels < 1 {
		return nil, fmt.Errorf("mipmap: nLevels must be at least 1, got %d", nLevels)
	}

	if prePad < minFilterSupport {
		prePad = minFilterSupport
	}
	if postPad < minFilterSupport {
		postPad = minFilterSupport
	}

	m := &MipMap{
		sourceLen: length,
		prePad:    prePad,
		postPad:   postPad,
		levels:    make([]level, nLevels),
	}

	levLen := length
	for k := range nLevels {
		total := int64(prePad) + levLen + int64(postPad)
		m.levels[k] = level{
			buf:        make([]float32, total),
			prePad:     prePad,
			payloadLen: levLen,
		}
		levLen = (levLen + 1) / 2
	}

	return m, nil
}

// Fill pushes level-0 samples in one or more chunks. It returns true
// while more data is needed and false once the chunk completes the
// declared length, at which point levels 1..N-1 are built automatically.
func (m *MipMap) Fill(samples []float32) (needMore bool, err error) {
	if m.ready {
		return false, nil
	}

	l0 := &m.levels[0]
	if m.filled+int64(len(samples)) > l0.payloadLen {
		return true, ErrTooManySamples
	}

	dst := l0.buf[int64(l0.prePad)+m.filled:]
	copy(dst, samples)
	m.filled += int64(len(samples))

	if m.filled < l0.payloadLen {
		return true, nil
	}

	m.build()
	m.ready = true
	return false, nil
}

// build constructs levels 1..N-1 by decimating each level by 2 through
// the 81-tap symmetric mip filter. The tap-sum itself runs through
// simdops.Ops[float64].ConvolveValid rather than a hand-rolled loop,
// the same convolution-via-simdops convention internal/interp uses for
// its real-time sum; the window is gathered into a scratch buffer first
// (with edge clamping) since ConvolveValid expects a contiguous,
// already-valid signal slice and can't itself clamp out-of-range taps.
//
// Each level's buf starts zero-valued from make() in New and build only
// ever writes the payload plus a thin filterQuarterLen margin past each
// edge; everything beyond that margin stays zero-filled, which is what
// lets the FIR read past cycle boundaries without a bounds check.
func (m *MipMap) build() {
	fir := firtab.MipFIR()
	ops := simdops.Float64Ops()

	window := make([]float64, firtab.MipTaps)
	out := make([]float64, 1)

	for k := 1; k < len(m.levels); k++ {
		prev := &m.levels[k-1]
		cur := &m.levels[k]

		lo := -filterQuarterLen
		hi := int(cur.payloadLen) + filterQuarterLen

		for p := lo; p < hi; p++ {
			center := int64(prev.prePad) + 2*int64(p)
			for t := range firtab.MipTaps {
				srcIdx := center + int64(t-filterHalfLen)
				if srcIdx < 0 {
					srcIdx = 0
				}
				if srcIdx >= int64(len(prev.buf)) {
					srcIdx = int64(len(prev.buf)) - 1
				}
				window[t] = float64(prev.buf[srcIdx])
			}

			ops.ConvolveValid(out, window, fir[:])

			dstIdx := int64(cur.prePad) + int64(p)
			if dstIdx >= 0 && dstIdx < int64(len(cur.buf)) {
				cur.buf[dstIdx] = float32(out[0])
			}
		}
	}
}

// IsReady reports whether every level has been built.
func (m *MipMap) IsReady() bool { return m.ready }

// UseTable returns the full buffer (pad + payload + pad) for level k;
// the first real sample is at index PayloadOffset(k).
func (m *MipMap) UseTable(k int) ([]float32, error) {
	if k < 0 || k >= len(m.levels) {
		return nil, ErrLevelRange
	}
	if !m.ready {
		return nil, ErrNotReady
	}
	return m.levels[k].buf, nil
}

// PayloadOffset returns the index of the first real sample of level k
// within the slice returned by UseTable.
func (m *MipMap) PayloadOffset(k int) int {
	if k < 0 || k >= len(m.levels) {
		return 0
	}
	return m.levels[k].prePad
}

// LevLen returns ceil(sourceLen/2^k), the payload length of level k.
func (m *MipMap) LevLen(k int) int64 {
	if k < 0 || k >= len(m.levels) {
		return 0
	}
	return m.levels[k].payloadLen
}

// NbrTables returns the number of mip levels.
func (m *MipMap) NbrTables() int { return len(m.levels) }

// SampleLen returns the level-0 (source) length.
func (m *MipMap) SampleLen() int64 { return m.sourceLen }
