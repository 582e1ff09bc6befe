package oscillator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSmootherRampsLinearlyToTarget(t *testing.T) {
	s := NewSmoother(4)
	s.SetTarget(1.0)

	var got []float64
	for range 4 {
		got = append(got, s.Next())
	}
	assert.InDelta(t, 0.25, got[0], 1e-9)
	assert.InDelta(t, 0.5, got[1], 1e-9)
	assert.InDelta(t, 0.75, got[2], 1e-9)
	assert.InDelta(t, 1.0, got[3], 1e-9)
}

func TestSmootherHoldsAtTargetAfterRamp(t *testing.T) {
	s := NewSmoother(2)
	s.SetTarget(0.5)
	s.Next()
	s.Next()
	assert.Equal(t, 0.5, s.Next())
	assert.Equal(t, 0.5, s.Next())
}

func TestSmootherSameTargetIsNoOp(t *testing.T) {
	s := NewSmoother(4)
	s.SetTarget(1.0)
	s.Next()
	s.Next()
	mid := s.current
	s.SetTarget(1.0)
	assert.Equal(t, mid, s.current)
}

func TestSmootherRetargetMidRampStartsFromCurrent(t *testing.T) {
	s := NewSmoother(4)
	s.SetTarget(1.0)
	s.Next()
	s.Next()

	s.SetTarget(0.0)
	for range 4 {
		s.Next()
	}
	assert.InDelta(t, 0.0, s.current, 1e-9)
}

func TestSmootherResetSnapsImmediately(t *testing.T) {
	s := NewSmoother(8)
	s.SetTarget(1.0)
	s.Next()
	s.Reset(0.25)
	assert.Equal(t, 0.25, s.Next())
	assert.Equal(t, 0.25, s.current)
	assert.Equal(t, 0.25, s.target)
}

func TestNewSmootherClampsNonPositiveSamples(t *testing.T) {
	s := NewSmoother(0)
	assert.Equal(t, 1, s.samples)
}
