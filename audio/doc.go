// SPDX-License-Identifier: EPL-2.0

// Package audio turns coded channel data into a stream of interleaved
// signed 16-bit PCM and provides the processing stages that sit behind it.
//
//   - Source, the PCM16 pull interface every stage implements
//   - Stream, the layout engine driving codec decoders over N channels
//   - MonoMixer and Resampler
//   - Registry, mapping container names to decoders
//
// # Source Interface
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadPCM16(dst []int16) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// ReadPCM16 returns the number of int16 values written, always a whole
// number of frames. A read returning 0 and io.EOF marks the end.
//
// # Streams
//
// A Stream is built from a StreamConfig naming the codec, channel count,
// sample count and where the data sits in an io.ReaderAt:
//
//	s, err := audio.NewStream(audio.StreamConfig{
//	    Kind:         codec.KindPSX,
//	    Channels:     2,
//	    SampleRate:   44100,
//	    TotalSamples: n,
//	    Start:        0x800,
//	    Interleave:   0x10,
//	}, file, audio.WithLogger(logger))
//
// With Interleave set, each channel's data is stored in blocks of that
// many bytes, one channel after another. Without it every channel either
// has its own offset (set in Init) or the codec reads a frame holding all
// channels, as MS ADPCM and XBOX IMA do.
//
// Loop points repeat [LoopStart, LoopEnd) the number of times given by
// WithLoopCount. The channel state is captured when LoopStart is first
// reached and restored at each jump, so every pass decodes identically.
//
// Decode faults are logged, counted when WithMetrics is set, and returned
// wrapped with the channel number; errors.Is matches the codec sentinels.
//
// # Processing
//
//	mono := audio.NewMonoMixer(audio.NewResampler(s, 16000))
//	pcm, err := audio.ReadAll(mono, 4096)
//
// ResampleToMono16 builds the same chain.
package audio
