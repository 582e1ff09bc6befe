// Command wtdump renders a wavetable oscillator at one fixed pitch to a
// mono WAV file, for listening outside of a live audio context.
//
// Usage:
//
//	wtdump -pitch 0 -seconds 2 out.wav
//	wtdump -wave saw -pitch 2.5 -levels 11 -rate 48000 out.wav
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"github.com/kbrannan/wavetable-oscillator/oscillator"
)

const (
	bitDepth    = 16
	maxInt16    = 32767.0
	blockFrames = 512
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	wave := flag.String("wave", "sine", "wavetable shape: sine or saw")
	pitch := flag.Float64("pitch", 0, "pitch offset in octaves relative to the base cycle")
	volume := flag.Float64("volume", 0.8, "output volume in [0,1]")
	seconds := flag.Float64("seconds", 1.0, "duration to render in seconds")
	rate := flag.Int("rate", 44100, "output sample rate in Hz")
	levels := flag.Int("levels", oscillator.DefaultMipLevels, "number of mip levels to build")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Fprintf(os.Stderr, "Usage: %s [options] output.wav\n\n", os.Args[0])
		flag.PrintDefaults()
		return fmt.Errorf("missing output path")
	}
	outputPath := args[0]

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
	node.SetVolume(*volume)
	if err := node.SetPitch(*pitch); err != nil {
		return err
	}

	outFile, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = outFile.Close() }()

	enc := wav.NewEncoder(outFile, *rate, bitDepth, 1, 1)
	defer func() { _ = enc.Close() }()

	total := int(*seconds * float64(*rate))
	block := make([]float32, blockFrames)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: *rate},
		SourceBitDepth: bitDepth,
		Data:           make([]int, blockFrames),
	}

	for written := 0; written < total; {
		n := min(blockFrames, total-written)
		if err := node.Render([][]float32{block[:n]}, n); err != nil {
			return fmt.Errorf("failed to render block: %w", err)
		}
		buf.Data = buf.Data[:n]
		for i := 0; i < n; i++ {
			buf.Data[i] = int(clamp(block[i]) * maxInt16)
		}
		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("failed to write samples: %w", err)
		}
		written += n
	}

	fmt.Printf("Rendered %s: %.2fs of %s at %.2f octaves, %d Hz\n", outputPath, *seconds, *wave, *pitch, *rate)
	return nil
}

func clamp(v float32) float32 {
	switch {
	case v > 1:
		return 1
	case v < -1:
		return -1
	default:
		return v
	}
}
