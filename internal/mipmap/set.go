package mipmap

import "fmt"

// Set is a parallel array of independent MipMaps, one per wavetable
// frame, used by the morphing path. Modeled as a plain slice field
// rather than a dedicated container.
type Set struct {
	Frames   []*MipMap
	FrameLen int64
}

// NewSet allocates nFrames independent MipMaps, each covering frameLen
// samples with framePad guard samples and nLevels dyadic levels.
func NewSet(frameLen int64, framePad, nFrames, nLevels int) (*Set, error) {
	if nFrames <= 0 {
		return nil, fmt.Errorf("mipmap: nFrames must be positive, got %d", nFrames)
	}

	s := &Set{
		Frames:   make([]*MipMap, nFrames),
		FrameLen: frameLen,
	}
	for f := range nFrames {
		m, err := New(frameLen, framePad, framePad, nLevels)
		if err != nil {
			return nil, fmt.Errorf("mipmap: frame %d: %w", f, err)
		}
		s.Frames[f] = m
	}
	return s, nil
}

// Fill pushes samples into frame f's level 0. See MipMap.Fill.
func (s *Set) Fill(frame int, samples []float32) (needMore bool, err error) {
	if frame < 0 || frame >= len(s.Frames) {
		return false, ErrLevelRange
	}
	return s.Frames[frame].Fill(samples)
}

// IsReady reports whether every frame has finished building.
func (s *Set) IsReady() bool {
	for _, m := range s.Frames {
		if !m.IsReady() {
			return false
		}
	}
	return true
}

// UseTable returns level k's buffer of the given frame.
func (s *Set) UseTable(level, frame int) ([]float32, error) {
	if frame < 0 || frame >= len(s.Frames) {
		return nil, ErrLevelRange
	}
	return s.Frames[frame].UseTable(level)
}

// PayloadOffset returns level k's payload offset within a given frame's
// buffer (uniform across frames since they share pad geometry).
func (s *Set) PayloadOffset(level, frame int) int {
	if frame < 0 || frame >= len(s.Frames) {
		return 0
	}
	return s.Frames[frame].PayloadOffset(level)
}

// LevLen returns level k's payload length for a given frame.
func (s *Set) LevLen(level, frame int) int64 {
	if frame < 0 || frame >= len(s.Frames) {
		return 0
	}
	return s.Frames[frame].LevLen(level)
}

// NbrFrames returns the number of frames in the set.
func (s *Set) NbrFrames() int { return len(s.Frames) }

// NbrTables returns the number of mip levels per frame.
func (s *Set) NbrTables() int {
	if len(s.Frames) == 0 {
		return 0
	}
	return s.Frames[0].NbrTables()
}
