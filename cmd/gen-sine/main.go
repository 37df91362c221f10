package main

import (
	"flag"
	"fmt"
	"log"
	"math"
	"os"

	"github.com/go-audio/audio"

	"github.com/cwbudde/pcmwav"
)

func main() {
	err := run(os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string) error {
	flagSet := flag.NewFlagSet("gen-sine", flag.ContinueOnError)

	output := flagSet.String("output", "output.wav", "filename to write to")
	frequency := flagSet.Float64("frequency", 440, "frequency in hertz to generate")
	length := flagSet.Float64("length", 5, "length in seconds of output file")
	bits := flagSet.Uint("bits", 16, "bit depth: 8, 16 or 24 for PCM, 32 for IEEE float")
	channels := flagSet.Uint("channels", 1, "number of channels, all carrying the same signal")
	rate := flagSet.Uint("rate", 48000, "sampling rate in hertz")

	err := flagSet.Parse(args)
	if err != nil {
		return err
	}

	if *channels == 0 || *channels > math.MaxUint16 {
		return fmt.Errorf("invalid channel count %d", *channels)
	}

	if *rate == 0 || *rate > math.MaxUint32 {
		return fmt.Errorf("invalid sampling rate %d", *rate)
	}

	audioFormat := pcmwav.WavFormatPCM
	if *bits == 32 {
		audioFormat = pcmwav.WavFormatIEEEFloat
	}

	head := pcmwav.NewHeader(audioFormat, uint16(*channels), uint32(*rate), uint16(*bits))

	log.Printf("generating a %f sec sine wav at %f hz (%s)", *length, *frequency, head)

	numFrames := int(float64(*rate) * *length)
	buf := &audio.Float32Buffer{
		Format: &audio.Format{NumChannels: int(*channels), SampleRate: int(*rate)},
		Data:   make([]float32, 0, numFrames*int(*channels)),
	}

	for i := 0; i < numFrames; i++ {
		v := float32(math.Sin(float64(i) / float64(*rate) * *frequency * 2 * math.Pi))

		for c := uint(0); c < *channels; c++ {
			buf.Data = append(buf.Data, v)
		}
	}

	track, err := pcmwav.FromFloat32Buffer(buf, head)
	if err != nil {
		return fmt.Errorf("error quantizing samples: %w", err)
	}

	if err := pcmwav.WriteFile(*output, head, track); err != nil {
		return fmt.Errorf("error writing %s: %w", *output, err)
	}

	return nil
}
