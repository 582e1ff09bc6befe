// Command wtplay plays a wavetable oscillator live, reading pitch
// changes from stdin while streaming audio through oto.
//
// Usage:
//
//	wtplay -wave saw
//	echo 2.0 | wtplay -wave sine -volume 0.5
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"unsafe"

	"github.com/ebitengine/oto/v3"

	"github.com/kbrannan/wavetable-oscillator/oscillator"
)

const channelCount = 2

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	wave := flag.String("wave", "sine", "wavetable shape: sine or saw")
	pitch := flag.Float64("pitch", 0, "initial pitch offset in octaves")
	volume := flag.Float64("volume", 0.5, "output volume in [0,1]")
	rate := flag.Int("rate", 44100, "playback sample rate in Hz")
	levels := flag.Int("levels", oscillator.DefaultMipLevels, "number of mip levels to build")
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
	node.SetVolume(*volume)
	if err := node.SetPitch(*pitch); err != nil {
		return err
	}

	ctx, ready, err := oto.NewContext(&oto.NewContextOptions{
		SampleRate:   *rate,
		ChannelCount: channelCount,
		Format:       oto.FormatFloat32LE,
	})
	if err != nil {
		return fmt.Errorf("failed to create audio context: %w", err)
	}
	<-ready

	stream := &nodeStream{node: node, channels: channelCount}
	player := ctx.NewPlayer(stream)
	player.Play()
	defer func() { _ = player.Close() }()

	fmt.Fprintln(os.Stderr, "playing; type an octave offset and press enter to retune, Ctrl-D to quit")
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		line := scanner.Text()
		octaves, err := strconv.ParseFloat(line, 64)
		if err != nil {
			fmt.Fprintf(os.Stderr, "invalid octave value %q: %v\n", line, err)
			continue
		}
		if err := node.SetPitch(octaves); err != nil {
			fmt.Fprintf(os.Stderr, "set pitch: %v\n", err)
		}
	}
	return nil
}

// nodeStream adapts oscillator.Node's block Render to the io.Reader oto's
// Player pulls raw interleaved float32LE frames from.
type nodeStream struct {
	node     *oscillator.Node
	channels int
	scratch  [][]float32
}

func (s *nodeStream) Read(p []byte) (int, error) {
	frameSize := s.channels * 4
	n := len(p) / frameSize
	if n == 0 {
		return 0, nil
	}

	if s.scratch == nil || len(s.scratch[0]) < n {
		s.scratch = make([][]float32, s.channels)
		for ch := range s.scratch {
			s.scratch[ch] = make([]float32, n)
		}
	}
	bufs := make([][]float32, s.channels)
	for ch := range bufs {
		bufs[ch] = s.scratch[ch][:n]
	}

	if err := s.node.Render(bufs, n); err != nil {
		return 0, err
	}

	for i := 0; i < n; i++ {
		for ch := 0; ch < s.channels; ch++ {
			sample := bufs[ch][i]
			off := i*frameSize + ch*4
			*(*float32)(unsafe.Pointer(&p[off])) = sample
		}
	}
	return n * frameSize, nil
}
