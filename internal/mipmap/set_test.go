package mipmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetFillAllFramesBecomesReady(t *testing.T) {
	s, err := NewSet(128, 0, 2, 3)
	require.NoError(t, err)

	saw := make([]float32, 128)
	for i := range saw {
		saw[i] = float32(i)/128*2 - 1
	}
	sine := sineCycle(128)

	needMore, err := s.Fill(0, saw)
	require.NoError(t, err)
	assert.False(t, needMore)
	assert.False(t, s.IsReady())

	needMore, err = s.Fill(1, sine)
	require.NoError(t, err)
	assert.False(t, needMore)
	assert.True(t, s.IsReady())
}

func TestSetUseTableIsolatesFrames(t *testing.T) {
	s, err := NewSet(64, 0, 2, 2)
	require.NoError(t, err)

	frame0 := make([]float32, 64)
	for i := range frame0 {
		frame0[i] = 1.0
	}
	frame1 := make([]float32, 64)
	for i := range frame1 {
		frame1[i] = -1.0
	}
	_, err = s.Fill(0, frame0)
	require.NoError(t, err)
	_, err = s.Fill(1, frame1)
	require.NoError(t, err)

	buf0, err := s.UseTable(0, 0)
	require.NoError(t, err)
	buf1, err := s.UseTable(0, 1)
	require.NoError(t, err)

	off0 := s.PayloadOffset(0, 0)
	off1 := s.PayloadOffset(0, 1)
	assert.Equal(t, float32(1.0), buf0[off0])
	assert.Equal(t, float32(-1.0), buf1[off1])
}

func TestSetUseTableInvalidFrameErrors(t *testing.T) {
	s, err := NewSet(64, 0, 2, 1)
	require.NoError(t, err)
	_, err = s.UseTable(0, 5)
	assert.ErrorIs(t, err, ErrLevelRange)
}
