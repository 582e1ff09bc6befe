// Package wavetable implements a real-time, band-limited wavetable
// oscillator resampler in pure Go: a polyphase windowed-FIR fractional
// interpolator, a dyadic mip-map for alias-free upward pitch-shifting, a
// half-band anti-imaging downsampler for its 2x-oversampled path, and a
// 32.32 fixed-point voice state machine with crossfade logic to hide mip
// level, frame, and oversampled-path transitions.
//
// # Features
//
//   - Polyphase interpolation with 64 phases and linear inter-phase blending
//   - Dyadic mip-map built once per wavetable upload, shared by any number of voices
//   - Optional per-frame MipMapSet for morphing between up to 256 wavetables
//   - Masked (power-of-two) single-cycle playback for strict-loop use cases
//   - No heap allocation, no locking, on the InterpolateBlock render path
//
// # Quick Start
//
//	mm, err := mipmap.New(2048, 0, 0, 11)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	if _, err := mm.Fill(cycle); err != nil {
//	    log.Fatal(err)
//	}
//
//	r := wavetable.New()
//	r.SetInterp(wavetable.NewInterpPack())
//	if err := r.SetSample(mm); err != nil {
//	    log.Fatal(err)
//	}
//	if err := r.SetPitch(0); err != nil {
//	    log.Fatal(err)
//	}
//
//	dst := make([]float32, 512)
//	if err := r.InterpolateBlock(dst, len(dst)); err != nil {
//	    log.Fatal(err)
//	}
//
// # Architecture
//
// Data flows source cycle -> mipmap.MipMap (or mipmap.Set) -> Resampler,
// which reads through its current voice.State via the interpolator pack
// and, on the oversampled path, the internal half-band downsampler.
// FIR coefficient tables (package firtab) are immutable process-wide
// constants built lazily and shared by every interp.Interp instance.
//
// The oscillator package wraps Resampler with host-facing volume, pitch,
// and frame parameters (only volume is smoothed; pitch and frame changes
// go through the Resampler's own crossfade) for direct use inside an
// audio plugin's render callback.
package wavetable
