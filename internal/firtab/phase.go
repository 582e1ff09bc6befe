package firtab

import "sync"

// PhaseTable1x returns the 64-entry phase table for the normal-rate
// (12-tap) interpolator, built once from FIR1x.
func PhaseTable1x() [NumPhases]PhaseRecord { return phaseTable1x() }

// PhaseTable2x returns the 64-entry phase table for the oversampled
// (24-tap) interpolator, built once from FIR2x.
func PhaseTable2x() [NumPhases]PhaseRecord { return phaseTable2x() }

var phaseTable1x = sync.OnceValue(func() [NumPhases]PhaseRecord {
	table := FIR1x()
	rows := make([][]float64, Tap1x)
	for t := range rows {
		rows[t] = table[t][:]
	}
	return BuildPhaseTable(rows, Tap1x)
})

var phaseTable2x = sync.OnceValue(func() [NumPhases]PhaseRecord {
	table := FIR2x()
	rows := make([][]float64, Tap2x)
	for t := range rows {
		rows[t] = table[t][:]
	}
	return BuildPhaseTable(rows, Tap2x)
})

// PhaseRecord holds, for one of the 64 polyphase bank entries, the tap
// coefficients for this phase (Imp) and the delta to the next phase's
// coefficients (Dif), so the interpolator can blend between adjacent
// phases with a single multiply-add per tap:
//
//	coeff(tap, q) = Imp[tap] + q*Dif[tap]
//
// Both arrays are stored tap-reversed (index 0 = the tap furthest from
// the convolution center in sample order) to match the accumulator in
// internal/interp, which walks the source buffer forward while walking
// the coefficient array in the same direction.
type PhaseRecord struct {
	Imp []float32
	Dif []float32
}

// BuildPhaseTable converts a [taps][NumPhases] tap-major prototype table
// into NumPhases PhaseRecords of length taps, tap-reversed, with linear
// inter-phase deltas. Only linear interpolation order is needed here —
// per-phase linear blending, not the cubic order a generic polyphase
// filter bank might support.
func BuildPhaseTable(table [][]float64, taps int) [NumPhases]PhaseRecord {
	var phases [NumPhases]PhaseRecord

	for p := range NumPhases {
		imp := make([]float32, taps)
		for t := range taps {
			// Reverse tap order: reversed[i] corresponds to tap (taps-1-i).
			imp[reverseIndex(t, taps)] = float32(table[t][p])
		}
		phases[p].Imp = imp
	}

	// The top phase (NumPhases-1) has no next phase to blend toward; its
	// synthetic "next" coefficient is zero rather than wrapping around to
	// phase 0, since the prototype's tap coefficients reset to zero past
	// the last phase of each outer tap pass, not cycle back.
	for p := range NumPhases {
		dif := make([]float32, taps)
		if p+1 < NumPhases {
			for t := range taps {
				dif[t] = phases[p+1].Imp[t] - phases[p].Imp[t]
			}
		} else {
			for t := range taps {
				dif[t] = -phases[p].Imp[t]
			}
		}
		phases[p].Dif = dif
	}

	return phases
}

// reverseIndex returns the tap-reversed index for a taps-length array.
func reverseIndex(t, taps int) int {
	return taps - 1 - t
}
