// SPDX-License-Identifier: EPL-2.0

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ik5/vgmcodec/codec"
	"github.com/ik5/vgmcodec/formats/raw"
	"github.com/ik5/vgmcodec/internal/config"
)

var (
	errUsage          = errors.New("usage: vgmdecode [flags] <input> <output.{wav|aiff}>")
	errUnknownOutput  = errors.New("output must end in .wav, .aif or .aiff")
	errRawNeedsLayout = errors.New("raw input needs -channels and -sample-rate")
)

type options struct {
	cfg *config.Config

	input, output string
	debug         bool
	mono          bool
	format        string

	// raw is set when -codec names the data layout of a headerless input.
	raw *raw.Config
}

// parseArgs overlays command line flags on cfg.
func parseArgs(args []string, cfg *config.Config, stderr io.Writer) (*options, error) {
	opts := &options{cfg: cfg}

	fs := flag.NewFlagSet("vgmdecode", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, errUsage)
		fs.PrintDefaults()
	}

	fs.BoolVar(&opts.debug, "debug", false, "development logging at debug level")
	fs.BoolVar(&opts.mono, "mono", false, "mix the output down to one channel")
	fs.StringVar(&opts.format, "format", "", "input format, detected when empty")
	fs.IntVar(&cfg.LoopCount, "loops", cfg.LoopCount, "times to repeat the loop section")
	fs.IntVar(&cfg.OutputRate, "rate", cfg.OutputRate, "output sample rate, 0 keeps the source rate")
	fs.IntVar(&cfg.BufferSamples, "buffer", cfg.BufferSamples, "frames decoded per read")

	kind := fs.String("codec", "", "decode headerless input with this codec")
	var rc raw.Config
	fs.IntVar(&rc.Channels, "channels", 0, "raw: channel count")
	fs.IntVar(&rc.SampleRate, "sample-rate", 0, "raw: sample rate")
	fs.IntVar(&rc.Interleave, "interleave", 0, "raw: interleave block size in bytes")
	fs.IntVar(&rc.BlockSize, "block-size", 0, "raw: codec block size in bytes")
	fs.Int64Var(&rc.Start, "start", 0, "raw: offset of the first byte of audio")
	fs.IntVar(&rc.TotalSamples, "samples", 0, "raw: samples per channel, 0 derives it from the size")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if fs.NArg() != 2 {
		return nil, errUsage
	}
	opts.input, opts.output = fs.Arg(0), fs.Arg(1)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	switch strings.ToLower(filepath.Ext(opts.output)) {
	case ".wav", ".aif", ".aiff":
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownOutput, opts.output)
	}

	if *kind != "" {
		k, err := codec.ParseKind(*kind)
		if err != nil {
			return nil, err
		}
		if rc.Channels < 1 || rc.SampleRate < 1 {
			return nil, errRawNeedsLayout
		}
		rc.Kind = k
		opts.raw = &rc
	}

	return opts, nil
}
