package wavetable

// Info reports read-only diagnostics about a Resampler's current
// state, mirroring resample.go's GetInfo/infoProvider pattern. Purely
// observational — it changes no behavior and is not on the render
// path's hot loop.
type Info struct {
	// FilterLength is the active interpolator's tap count (12 or 24).
	FilterLength int

	// Phases is the polyphase bank's phase count (always 64).
	Phases int

	// Table is CURRENT's active mip level.
	Table int

	// Fading reports whether a crossfade is in progress.
	Fading bool

	// FadePos is the current position within the active crossfade,
	// valid only when Fading is true.
	FadePos int

	// Oversampled reports whether CURRENT is using the 2x path.
	Oversampled bool

	// LatencySamples estimates the interpolator's group delay in
	// native-rate samples: half the active tap count.
	LatencySamples int
}

// GetInfo reports diagnostics about the resampler's current state.
func (r *Resampler) GetInfo() Info {
	info := Info{
		Phases:      64,
		Table:       r.current.Table,
		Fading:      r.fadeFlag,
		FadePos:     r.fadePos,
		Oversampled: r.current.OvrsplFlag,
	}
	if r.interp != nil {
		if r.current.OvrsplFlag {
			info.FilterLength = r.interp.Over.Taps()
		} else {
			info.FilterLength = r.interp.Norm.Taps()
		}
		info.LatencySamples = info.FilterLength / 2
	}
	return info
}
