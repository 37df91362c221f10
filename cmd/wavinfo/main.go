// This tool prints the format header and sample summary of the passed wav
// files.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cwbudde/pcmwav"
)

const missingPathMessage = "You must pass the path of at least one file to inspect"

func main() {
	err := run(os.Args[1:], os.Stdout)
	if err == nil {
		return
	}

	if errors.Is(err, errMissingPath) {
		fmt.Println(missingPathMessage)
		os.Exit(1)
	}

	log.Fatal(err)
}

var errMissingPath = errors.New("missing path argument")

func run(args []string, out io.Writer) error {
	flagSet := flag.NewFlagSet("wavinfo", flag.ContinueOnError)
	flagSet.SetOutput(out)

	headerOnly := flagSet.Bool("header", false, "only decode the fmt chunk")
	samples := flagSet.Int("samples", 0, "number of leading samples to print")

	if err := flagSet.Parse(args); err != nil {
		return err
	}

	if flagSet.NArg() < 1 {
		return errMissingPath
	}

	for _, path := range flagSet.Args() {
		if err := describe(path, *headerOnly, *samples, out); err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}

	return nil
}

func describe(path string, headerOnly bool, samples int, out io.Writer) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Fprintf(out, "%s\n", path)

	if headerOnly {
		head, err := pcmwav.ReadHeader(file)
		if err != nil {
			return err
		}

		printHeader(out, head)

		return nil
	}

	head, track, err := pcmwav.Read(file)
	if err != nil {
		return err
	}

	printHeader(out, head)

	fmt.Fprintf(out, "Samples: %s\n", track)

	if head.ChannelCount > 0 {
		fmt.Fprintf(out, "Frames: %d\n", track.Len()/int(head.ChannelCount))
	}

	fmt.Fprintf(out, "Duration: %s\n", pcmwav.Duration(head, track))

	if samples > 0 {
		fmt.Fprintf(out, "First samples: %s\n", leadingSamples(track, samples))
	}

	return nil
}

func printHeader(out io.Writer, head pcmwav.Header) {
	fmt.Fprintf(out, "Format: %s\n", head)
	fmt.Fprintf(out, "Block align: %d bytes\n", head.BytesPerSample)
}

func leadingSamples(track pcmwav.BitDepth, n int) string {
	n = min(n, track.Len())

	if values, ok := track.SignExtended24(); ok {
		return fmt.Sprint(values[:n])
	}

	switch track.Kind() {
	case pcmwav.KindEight:
		values, _ := track.AsEight()
		return fmt.Sprint(values[:n])
	case pcmwav.KindSixteen:
		values, _ := track.AsSixteen()
		return fmt.Sprint(values[:n])
	case pcmwav.KindThirtyTwoFloat:
		values, _ := track.AsThirtyTwoFloat()
		return fmt.Sprint(values[:n])
	default:
		return "[]"
	}
}
