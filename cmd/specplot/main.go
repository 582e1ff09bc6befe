// Command specplot renders a wavetable oscillator at a given pitch and
// prints its spectrum's strongest bins, for checking that pitching up
// through the mip-map keeps aliasing below audibility.
//
// Usage:
//
//	specplot -wave saw -pitch 3 -rate 48000
package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"math/cmplx"
	"sort"

	"gonum.org/v1/gonum/dsp/fourier"

	"github.com/kbrannan/wavetable-oscillator/oscillator"
)

const fftSize = 8192

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	wave := flag.String("wave", "sine", "wavetable shape: sine or saw")
	pitch := flag.Float64("pitch", 0, "pitch offset in octaves relative to the base cycle")
	rate := flag.Int("rate", 48000, "render sample rate in Hz, for labeling bins in Hz")
	levels := flag.Int("levels", oscillator.DefaultMipLevels, "number of mip levels to build")
	peaks := flag.Int("peaks", 8, "number of strongest bins to report")
	flag.Parse()

	var cycle []float32
	var err error
	switch *wave {
	case "sine":
		cycle, err = oscillator.NewSine(oscillator.DefaultCycleLen)
	case "saw":
		cycle, err = oscillator.NewSaw(oscillator.DefaultCycleLen)
	default:
		return fmt.Errorf("unknown wave shape %q", *wave)
	}
	if err != nil {
		return err
	}

	node := oscillator.New()
	if err := node.Prepare(cycle, *levels); err != nil {
		return err
	}
	node.SetVolume(1.0)
	if err := node.SetPitch(*pitch); err != nil {
		return err
	}

	warmup := make([]float32, 256)
	if err := node.Render([][]float32{warmup}, len(warmup)); err != nil {
		return err
	}

	block := make([]float64, fftSize)
	scratch := make([]float32, fftSize)
	if err := node.Render([][]float32{scratch}, fftSize); err != nil {
		return err
	}
	window := hannWindow(fftSize)
	for i, v := range scratch {
		block[i] = float64(v) * window[i]
	}

	fft := fourier.NewFFT(fftSize)
	coeffs := fft.Coefficients(nil, block)

	type bin struct {
		freq float64
		mag  float64
	}
	bins := make([]bin, len(coeffs))
	for i, c := range coeffs {
		bins[i] = bin{
			freq: float64(i) * float64(*rate) / float64(fftSize),
			mag:  cmplx.Abs(c),
		}
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].mag > bins[j].mag })

	fmt.Printf("%s at %.2f octaves, %d Hz, %d-point FFT\n", *wave, *pitch, *rate, fftSize)
	n := min(*peaks, len(bins))
	for i := 0; i < n; i++ {
		db := 20 * math.Log10(bins[i].mag+1e-20)
		fmt.Printf("  %8.1f Hz  %6.1f dB\n", bins[i].freq, db)
	}
	return nil
}

// hannWindow reduces spectral leakage from the block boundary so the
// strongest bins reflect the oscillator's actual harmonic content.
func hannWindow(n int) []float64 {
	w := make([]float64, n)
	for i := range w {
		w[i] = 0.5 - 0.5*math.Cos(2*math.Pi*float64(i)/float64(n-1))
	}
	return w
}
