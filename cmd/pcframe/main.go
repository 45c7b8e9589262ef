// pcframe stuffs and destuffs COBS frames on byte streams.
//
//	pcframe -e < msg.bin > frame.bin      stuff stdin into one frame
//	pcframe -d < capture.bin              split on 0x00 and destuff every frame
//	echo "11 22 00 33" | pcframe -e -x    hex input
//	pcframe -i                            interactive
//
// Output is hex when stdout is a terminal and raw bytes otherwise.
package main

import (
	"bufio"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/pflag"
	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/postcard/cobs"
)

type options struct {
	encode      bool
	decode      bool
	hexIn       bool
	hexOut      bool
	maxFrame    int
	verbose     bool
	interactive bool
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var opts options
	fs := pflag.NewFlagSet("pcframe", pflag.ContinueOnError)
	fs.BoolVarP(&opts.encode, "encode", "e", false, "stuff the input into one frame")
	fs.BoolVarP(&opts.decode, "decode", "d", false, "destuff every frame in the input")
	fs.BoolVarP(&opts.hexIn, "hex", "x", false, "input is hex text")
	fs.IntVar(&opts.maxFrame, "max-frame", 4096, "largest stuffed frame accepted when decoding")
	fs.BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")
	fs.BoolVarP(&opts.interactive, "interactive", "i", false, "interactive mode")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: pcframe (-e | -d | -i) [-x] [file]")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			return nil
		}
		return err
	}

	logger, err := newLogger(opts.verbose)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck
	cobs.SetLogger(logger)

	if opts.interactive {
		return runInteractive()
	}
	if opts.encode == opts.decode {
		fs.Usage()
		return fmt.Errorf("exactly one of --encode or --decode is required")
	}

	in := io.Reader(os.Stdin)
	if fs.NArg() > 0 {
		f, err := os.Open(fs.Arg(0))
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}
	opts.hexOut = term.IsTerminal(int(os.Stdout.Fd()))

	out := bufio.NewWriter(os.Stdout)
	defer out.Flush()

	if opts.encode {
		return encodeStream(in, out, opts)
	}
	stats, err := decodeStream(in, out, opts, logger)
	logger.Debug("decode finished",
		zap.Int("frames", stats.frames),
		zap.Int("dropped", stats.dropped))
	return err
}

func newLogger(verbose bool) (*zap.Logger, error) {
	if verbose {
		return zap.NewDevelopment()
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	cfg.Encoding = "console"
	return cfg.Build()
}

func encodeStream(in io.Reader, out io.Writer, opts options) error {
	data, err := readInput(in, opts.hexIn)
	if err != nil {
		return err
	}
	return writeFrame(out, cobs.Encode(data), opts.hexOut)
}

type decodeStats struct {
	frames  int
	dropped int
}

// decodeStream feeds the input through an Accumulator and writes each
// destuffed frame. Oversized and malformed frames are logged and skipped.
func decodeStream(in io.Reader, out io.Writer, opts options, logger *zap.Logger) (decodeStats, error) {
	var stats decodeStats
	acc := cobs.NewAccumulator(opts.maxFrame)

	feed := func(chunk []byte) error {
		for len(chunk) > 0 {
			frame, rest, err := acc.Feed(chunk)
			chunk = rest
			if err != nil {
				stats.dropped++
				logger.Warn("skipping frame", zap.Int("frame", stats.frames+stats.dropped), zap.Error(err))
				continue
			}
			if frame == nil {
				continue
			}
			stats.frames++
			if err := writeFrame(out, frame, opts.hexOut); err != nil {
				return err
			}
		}
		return nil
	}

	if opts.hexIn {
		data, err := readInput(in, true)
		if err != nil {
			return stats, err
		}
		if err := feed(data); err != nil {
			return stats, err
		}
	} else {
		buf := make([]byte, 4096)
		for {
			n, err := in.Read(buf)
			if n > 0 {
				if ferr := feed(buf[:n]); ferr != nil {
					return stats, ferr
				}
			}
			if err == io.EOF {
				break
			}
			if err != nil {
				return stats, err
			}
		}
	}

	if acc.Pending() > 0 {
		logger.Warn("input ended inside a frame", zap.Int("pending", acc.Pending()))
	}
	return stats, nil
}

func readInput(in io.Reader, hexIn bool) ([]byte, error) {
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, err
	}
	if !hexIn {
		return data, nil
	}
	return parseHex(string(data))
}

// parseHex accepts hex digits separated by any mix of whitespace, commas
// and colons, with optional 0x prefixes.
func parseHex(s string) ([]byte, error) {
	s = strings.NewReplacer("0x", " ", "0X", " ", ",", " ", ":", " ").Replace(s)
	var b strings.Builder
	for _, field := range strings.Fields(s) {
		if len(field)%2 == 1 {
			field = "0" + field
		}
		b.WriteString(field)
	}
	return hex.DecodeString(b.String())
}

func writeFrame(out io.Writer, frame []byte, hexOut bool) error {
	if !hexOut {
		_, err := out.Write(frame)
		return err
	}
	_, err := fmt.Fprintln(out, formatHex(frame))
	return err
}

func formatHex(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02x", c)
	}
	return sb.String()
}
