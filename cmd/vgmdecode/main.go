// SPDX-License-Identifier: EPL-2.0

// Command vgmdecode converts game audio files to WAV or AIFF.
//
//	vgmdecode [flags] <input> <output.{wav|aiff}>
//
// The input format is detected from its header or extension. Headerless
// data is described with -codec, -channels and -sample-rate. Settings not
// given as flags come from VGM_LOG_LEVEL, VGM_BUFFER_SAMPLES,
// VGM_LOOP_COUNT and VGM_OUTPUT_RATE.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/ik5/vgmcodec"
	"github.com/ik5/vgmcodec/audio"
	"github.com/ik5/vgmcodec/formats/aiff"
	"github.com/ik5/vgmcodec/formats/raw"
	"github.com/ik5/vgmcodec/formats/wav"
	"github.com/ik5/vgmcodec/internal/config"
	"github.com/ik5/vgmcodec/metrics"
)

func main() {
	err := run(os.Args[1:], os.Stdout, os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "vgmdecode:", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	opts, err := parseArgs(args, cfg, stderr)
	if err != nil {
		return err
	}

	logger, err := newLogger(opts)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	reg := prometheus.NewRegistry()
	streamOpts := []audio.StreamOption{
		audio.WithLogger(logger),
		audio.WithMetrics(metrics.New(reg)),
		audio.WithLoopCount(cfg.LoopCount),
		audio.WithBufSize(cfg.BufferSamples),
	}

	start := time.Now()
	frames, err := convert(opts, streamOpts, logger)
	if err != nil {
		logger.Error("conversion failed", zap.String("input", opts.input), zap.Error(err))
		return err
	}

	logger.Info("wrote output",
		zap.String("output", opts.output),
		zap.Int("frames", frames),
		zap.Duration("elapsed", time.Since(start)),
	)

	return printSummary(stdout, reg)
}

func newLogger(opts *options) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Level = zap.NewAtomicLevelAt(opts.cfg.LogLevel)
	if opts.debug {
		zcfg = zap.NewDevelopmentConfig()
	}

	logger, err := zcfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logger: %w", err)
	}
	return logger, nil
}

func convert(opts *options, streamOpts []audio.StreamOption, logger *zap.Logger) (int, error) {
	in, err := os.Open(opts.input)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	defer in.Close()

	src, format, err := openSource(opts, in, streamOpts)
	if err != nil {
		return 0, err
	}
	defer src.Close()

	fields := []zap.Field{
		zap.String("input", opts.input),
		zap.String("format", format),
		zap.Int("channels", src.Channels()),
		zap.Int("sample_rate", src.SampleRate()),
	}
	if s, ok := src.(*audio.Stream); ok {
		fields = append(fields, zap.Int("samples", s.Length()), zap.String("stream", s.ID().String()))
	}
	logger.Info("decoding", fields...)

	src = pipeline(src, opts)

	out, err := os.Create(opts.output)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	frames, err := writeOutput(out, opts.output, src)
	if cerr := out.Close(); err == nil && cerr != nil {
		err = fmt.Errorf("%w", cerr)
	}
	if err != nil {
		_ = os.Remove(opts.output)
		return frames, err
	}

	return frames, nil
}

// openSource decodes in as raw data when -codec was given, with the
// decoder -format names, or with the detected one.
func openSource(opts *options, in io.Reader, streamOpts []audio.StreamOption) (audio.Source, string, error) {
	if opts.raw != nil {
		src, err := raw.Decoder{Config: *opts.raw, Options: streamOpts}.Decode(in)
		return src, "raw/" + opts.raw.Kind.String(), err
	}

	reg := vgmcodec.NewRegistry(streamOpts...)
	if opts.format == "" {
		return vgmcodec.Open(reg, in, opts.input)
	}

	d, ok := reg.Get(opts.format)
	if !ok {
		return nil, opts.format, fmt.Errorf("%w: %s", vgmcodec.ErrNoDecoder, opts.format)
	}
	src, err := d.Decode(in)
	return src, opts.format, err
}

func pipeline(src audio.Source, opts *options) audio.Source {
	if rate := opts.cfg.OutputRate; rate > 0 && rate != src.SampleRate() {
		src = audio.NewResampler(src, rate)
	}
	if opts.mono && src.Channels() > 1 {
		src = audio.NewMonoMixer(src)
	}
	return src
}

func writeOutput(w io.WriteSeeker, name string, src audio.Source) (int, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".aif", ".aiff":
		return aiff.WritePCM16(w, src)
	default:
		return wav.WritePCM16(w, src)
	}
}

// printSummary writes one line per gathered metric.
func printSummary(w io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		for _, m := range mf.GetMetric() {
			var labels []string
			for _, lp := range m.GetLabel() {
				labels = append(labels, lp.GetName()+"="+lp.GetValue())
			}
			name := mf.GetName()
			if len(labels) > 0 {
				name += "{" + strings.Join(labels, ",") + "}"
			}

			switch {
			case m.GetCounter() != nil:
				fmt.Fprintf(w, "%s %g\n", name, m.GetCounter().GetValue())
			case m.GetGauge() != nil:
				fmt.Fprintf(w, "%s %g\n", name, m.GetGauge().GetValue())
			case m.GetHistogram() != nil:
				h := m.GetHistogram()
				fmt.Fprintf(w, "%s count=%d sum=%g\n", name, h.GetSampleCount(), h.GetSampleSum())
			}
		}
	}

	return nil
}
