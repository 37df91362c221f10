// This tool converts a wav file into an aiff file and stores it in the same
// folder as the source unless -output is set.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/go-audio/aiff"
	"github.com/go-audio/audio"

	"github.com/cwbudde/pcmwav"
)

var errMissingPath = errors.New("you must set the -path flag")

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
}

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavtoaiff", flag.ContinueOnError)

	flagPath := flagSet.String("path", "", "The path to the wav file to convert to aiff")
	flagOutput := flagSet.String("output", "", "The aiff file to write, defaults to the source path with an .aif extension")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if *flagPath == "" {
		return errMissingPath
	}

	sourcePath, err := expandHome(*flagPath)
	if err != nil {
		return err
	}

	outPath := *flagOutput
	if outPath == "" {
		outPath = sourcePath[:len(sourcePath)-len(filepath.Ext(sourcePath))] + ".aif"
	}

	head, track, err := pcmwav.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("invalid WAV file %s: %w", sourcePath, err)
	}

	intBuf, err := toIntBuffer(head, track)
	if err != nil {
		return err
	}

	err = writeFile(outPath, func(w io.WriteSeeker) error {
		encoder := aiff.NewEncoder(w, intBuf.Format.SampleRate, intBuf.SourceBitDepth, intBuf.Format.NumChannels)

		if err := encoder.Write(intBuf); err != nil {
			return fmt.Errorf("failed to encode %s: %w", outPath, err)
		}

		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to finalize %s: %w", outPath, err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Wav file converted to %s\n", outPath)

	return nil
}

// writeFile creates path and hands it to encode. The file is removed again
// when encode or closing the file fails.
func writeFile(path string, encode func(w io.WriteSeeker) error) (err error) {
	outFile, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}

	defer func() {
		if closeErr := outFile.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, closeErr)
		}

		if err != nil {
			os.Remove(path)
		}
	}()

	return encode(outFile)
}

func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~/") {
		return path, nil
	}

	usr, err := user.Current()
	if err != nil {
		return "", fmt.Errorf("failed to get the user home directory: %w", err)
	}

	return strings.Replace(path, "~", usr.HomeDir, 1), nil
}

// toIntBuffer maps the wav samples onto the signed integers aiff stores.
// 8-bit samples are re-centered around zero and float samples are quantized
// to 24 bits.
func toIntBuffer(head pcmwav.Header, track pcmwav.BitDepth) (*audio.IntBuffer, error) {
	if track.IsThirtyTwoFloat() {
		floatBuf, err := track.AsFloat32Buffer(head)
		if err != nil {
			return nil, err
		}

		quantized := pcmwav.NewHeader(pcmwav.WavFormatPCM, head.ChannelCount, head.SamplingRate, 24)

		track, err = pcmwav.FromFloat32Buffer(floatBuf, quantized)
		if err != nil {
			return nil, err
		}

		head = quantized
	}

	intBuf, err := track.AsIntBuffer(head)
	if err != nil {
		return nil, err
	}

	if track.IsEight() {
		for i, v := range intBuf.Data {
			intBuf.Data[i] = v - 128
		}
	}

	return intBuf, nil
}
