// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"io"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ik5/vgmcodec/codec"
	"github.com/ik5/vgmcodec/metrics"
)

const defaultBufSize = 4096

// StreamConfig describes where the coded channels of a stream live and
// how to decode them.
type StreamConfig struct {
	Kind       codec.Kind
	Channels   int
	SampleRate int

	// TotalSamples is the length of the stream per channel.
	TotalSamples int

	// Start is the byte offset of the first channel's data.
	Start int64

	// Interleave, when non-zero, is the number of bytes of one channel
	// stored before the next channel's block begins. InterleaveLast is
	// the per-channel size of a shorter final block, if any.
	Interleave     int
	InterleaveLast int

	// BlockSize is passed to block codecs (MS ADPCM, MS IMA, NDS IMA).
	BlockSize int

	Loop      bool
	LoopStart int
	LoopEnd   int

	// Init, if set, is called once per channel after the default state
	// has been built, to load coefficients, keys or history from a header.
	Init func(channel int, st *codec.ChannelState)
}

// StreamOption configures a Stream.
type StreamOption func(*Stream)

func WithLogger(l *zap.Logger) StreamOption {
	return func(s *Stream) {
		if l != nil {
			s.logger = l
		}
	}
}

func WithMetrics(c *metrics.Collector) StreamOption {
	return func(s *Stream) { s.metrics = c }
}

// WithLoopCount sets how many times the loop section repeats before the
// stream runs on to its end. The default is 1.
func WithLoopCount(n int) StreamOption {
	return func(s *Stream) { s.loopCount = max(n, 0) }
}

// WithCacheWindow sets the read-ahead window kept per channel in front of
// the source. A negative n reads the source directly.
func WithCacheWindow(n int) StreamOption {
	return func(s *Stream) { s.cacheWindow = n }
}

func WithBufSize(n int) StreamOption {
	return func(s *Stream) {
		if n > 0 {
			s.bufSize = n
		}
	}
}

// Stream turns coded channel data into interleaved PCM16. It implements
// Source.
//
// A Stream is not safe for concurrent use.
type Stream struct {
	cfg StreamConfig
	src io.ReaderAt

	// readers feed the decoders, one per channel when blocks interleave
	readers     []io.ReaderAt
	cacheWindow int

	id        uuid.UUID
	logger    *zap.Logger
	metrics   *metrics.Collector
	loopCount int
	bufSize   int

	// samples per channel in one interleave block, 0 without interleave
	blockSamples int
	lastBlock    int

	initial    []codec.ChannelState
	states     []codec.ChannelState
	loopStates []codec.ChannelState
	saved      []codec.ChannelState
	haveLoop   bool

	pos    int // next sample index per channel
	loops  int // loop jumps taken
	played int // frames returned
	closed bool
}

// NewStream validates cfg against the codec's layout rules and prepares
// per-channel state. src is read at absolute offsets through a
// codec.CachedSource; Close closes it when it implements io.Closer.
func NewStream(cfg StreamConfig, src io.ReaderAt, opts ...StreamOption) (*Stream, error) {
	s := &Stream{
		cfg:       cfg,
		src:       src,
		id:        uuid.New(),
		logger:    zap.NewNop(),
		loopCount: 1,
		bufSize:   defaultBufSize,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.validate(); err != nil {
		return nil, err
	}

	s.logger = s.logger.With(
		zap.String("stream", s.id.String()),
		zap.Stringer("codec", cfg.Kind),
	)

	s.initial = make([]codec.ChannelState, cfg.Channels)
	for c := range s.initial {
		st := codec.NewChannelState(cfg.Kind, c, cfg.Channels, s.channelStart(c))
		st.BlockSize = cfg.BlockSize
		if cfg.Init != nil {
			cfg.Init(c, &st)
		}
		s.initial[c] = st
	}
	s.states = make([]codec.ChannelState, cfg.Channels)
	s.loopStates = make([]codec.ChannelState, cfg.Channels)
	s.saved = make([]codec.ChannelState, cfg.Channels)
	s.readers = s.newReaders()
	s.reset()

	s.metrics.StreamOpened()
	s.logger.Debug("stream opened",
		zap.Int("channels", cfg.Channels),
		zap.Int("sample_rate", cfg.SampleRate),
		zap.Int("total_samples", cfg.TotalSamples),
		zap.Int("interleave", cfg.Interleave),
		zap.Bool("loop", cfg.Loop),
	)

	return s, nil
}

func (s *Stream) validate() error {
	cfg := &s.cfg
	k := cfg.Kind

	switch {
	case !k.Valid():
		return fmt.Errorf("%w: %w: %d", ErrInvalidConfig, codec.ErrUnknownKind, int(k))
	case cfg.Channels < 1:
		return fmt.Errorf("%w: %d channels", ErrInvalidConfig, cfg.Channels)
	case cfg.SampleRate < 1:
		return fmt.Errorf("%w: sample rate %d", ErrInvalidConfig, cfg.SampleRate)
	case cfg.TotalSamples < 0:
		return fmt.Errorf("%w: %d total samples", ErrInvalidConfig, cfg.TotalSamples)
	case cfg.Start < 0:
		return fmt.Errorf("%w: start offset %d", ErrInvalidConfig, cfg.Start)
	}

	if cfg.Loop && (cfg.LoopStart < 0 || cfg.LoopStart >= cfg.LoopEnd || cfg.LoopEnd > cfg.TotalSamples) {
		return fmt.Errorf("%w: loop [%d, %d) in %d samples", ErrInvalidConfig, cfg.LoopStart, cfg.LoopEnd, cfg.TotalSamples)
	}

	if cfg.Interleave == 0 {
		if cfg.Channels > 1 && !k.SharesOffset(cfg.Channels) && !k.Interleaved() {
			return fmt.Errorf("%w: %v with %d channels needs an interleave", ErrUnsupportedLayout, k, cfg.Channels)
		}
		return nil
	}

	if cfg.Interleave < 0 || cfg.InterleaveLast < 0 {
		return fmt.Errorf("%w: interleave %d, last %d", ErrInvalidConfig, cfg.Interleave, cfg.InterleaveLast)
	}
	if k.VariableFrames() || k.SharesOffset(cfg.Channels) || k.Interleaved() {
		return fmt.Errorf("%w: %v cannot be block interleaved", ErrUnsupportedLayout, k)
	}

	if k == codec.KindNDSIMA {
		cfg.BlockSize = cfg.Interleave
	}
	spf := k.SamplesPerFrame(1, cfg.BlockSize)
	fs := k.FrameSize(1, cfg.BlockSize)
	if spf <= 0 || fs <= 0 || cfg.Interleave%fs != 0 {
		return fmt.Errorf("%w: interleave %#x is not a multiple of the %d-byte %v frame", ErrUnsupportedLayout, cfg.Interleave, fs, k)
	}
	s.blockSamples = cfg.Interleave / fs * spf
	if cfg.TotalSamples > 0 {
		s.lastBlock = (cfg.TotalSamples - 1) / s.blockSamples
	}

	return nil
}

// newReaders puts a read cache in front of src. Interleaved channels each
// get their own window since their blocks sit Interleave bytes apart.
func (s *Stream) newReaders() []io.ReaderAt {
	readers := make([]io.ReaderAt, s.cfg.Channels)
	if s.cacheWindow < 0 {
		for c := range readers {
			readers[c] = s.src
		}
		return readers
	}

	shared := codec.NewCachedSource(s.src, s.cacheWindow)
	for c := range readers {
		if s.blockSamples > 0 && c > 0 {
			readers[c] = codec.NewCachedSource(s.src, s.cacheWindow)
			continue
		}
		readers[c] = shared
	}

	return readers
}

func (s *Stream) channelStart(c int) int64 {
	if s.cfg.Interleave == 0 && s.cfg.Kind.Interleaved() {
		return s.cfg.Start + int64(c*s.cfg.Kind.SampleBytes())
	}
	return s.blockOffset(0, c)
}

// blockOffset is where channel c's part of interleave block b begins.
func (s *Stream) blockOffset(b, c int) int64 {
	if s.blockSamples == 0 {
		return s.cfg.Start
	}

	size := s.cfg.Interleave
	if s.cfg.InterleaveLast > 0 && b == s.lastBlock {
		size = s.cfg.InterleaveLast
	}

	return s.cfg.Start + int64(b)*int64(s.cfg.Channels)*int64(s.cfg.Interleave) + int64(c)*int64(size)
}

func (s *Stream) reset() {
	copy(s.states, s.initial)
	s.haveLoop = false
	s.pos, s.loops, s.played = 0, 0, 0
}

func (s *Stream) ID() uuid.UUID   { return s.id }
func (s *Stream) SampleRate() int { return s.cfg.SampleRate }
func (s *Stream) Channels() int   { return s.cfg.Channels }
func (s *Stream) BufSize() int    { return s.bufSize }

// Length is the number of frames the stream plays, loops included.
func (s *Stream) Length() int {
	n := s.cfg.TotalSamples
	if s.cfg.Loop {
		n += s.loopCount * (s.cfg.LoopEnd - s.cfg.LoopStart)
	}
	return n
}

// Position is the number of frames returned so far.
func (s *Stream) Position() int { return s.played }

func (s *Stream) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	s.metrics.StreamClosed()
	s.logger.Debug("stream closed", zap.Int("frames", s.played))

	if c, ok := s.src.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// segmentEnd is the sample index the next decode call must stop at.
func (s *Stream) segmentEnd() int {
	if s.cfg.Loop {
		if !s.haveLoop && s.pos < s.cfg.LoopStart {
			return s.cfg.LoopStart
		}
		if s.loops < s.loopCount {
			return s.cfg.LoopEnd
		}
	}
	return s.cfg.TotalSamples
}

// ReadPCM16 decodes interleaved frames into dst. It returns 0 and io.EOF
// once the stream is exhausted; an empty dst returns 0 and nil.
func (s *Stream) ReadPCM16(dst []int16) (int, error) {
	if s.closed {
		return 0, ErrStreamClosed
	}
	if len(dst) == 0 {
		return 0, nil
	}
	ch := s.cfg.Channels
	if len(dst)%ch != 0 {
		return 0, ErrInvalidDstSize
	}

	frames := len(dst) / ch
	done := 0

	for done < frames {
		if s.cfg.Loop {
			if !s.haveLoop && s.pos == s.cfg.LoopStart {
				copy(s.loopStates, s.states)
				s.haveLoop = true
			}
			if s.pos == s.cfg.LoopEnd && s.loops < s.loopCount {
				copy(s.states, s.loopStates)
				s.pos = s.cfg.LoopStart
				s.loops++
				s.metrics.Loop()
				s.logger.Debug("loop", zap.Int("count", s.loops), zap.Int("frame", s.played+done))
				continue
			}
		}

		end := s.segmentEnd()
		if s.pos >= end {
			break
		}

		n := min(frames-done, end-s.pos)
		if s.blockSamples > 0 {
			n = min(n, s.blockSamples-s.pos%s.blockSamples)
		}

		if err := s.decode(dst[done*ch:], n); err != nil {
			s.played += done
			return done * ch, err
		}
		s.pos += n
		done += n
	}

	s.played += done
	if done == 0 {
		s.logger.Debug("stream finished", zap.Int("frames", s.played))
		return 0, io.EOF
	}

	return done * ch, nil
}

func (s *Stream) decode(out []int16, n int) error {
	ch := s.cfg.Channels
	k := s.cfg.Kind

	// a fault in a later channel must not leave earlier ones advanced
	copy(s.saved, s.states)

	for c := range ch {
		st := &s.states[c]
		first := s.pos
		if s.blockSamples > 0 {
			st.Offset = s.blockOffset(s.pos/s.blockSamples, c)
			first = s.pos % s.blockSamples
		}

		if err := k.Decode(st, s.readers[c], out[c:], ch, first, n); err != nil {
			copy(s.states, s.saved)
			s.metrics.Fault(k, err)
			s.logger.Warn("decode failed",
				zap.Int("channel", c),
				zap.Int("sample", s.pos),
				zap.Int("count", n),
				zap.Error(err),
			)
			return fmt.Errorf("channel %d: %w", c, err)
		}
	}

	s.metrics.ObserveCall(n)
	s.metrics.Decoded(k, n*ch)

	return nil
}

// Seek positions the stream so the next ReadPCM16 starts at frame. The
// codecs cannot jump, so the stream restarts and decodes up to frame.
func (s *Stream) Seek(frame int) error {
	if s.closed {
		return ErrStreamClosed
	}
	if frame < 0 || frame > s.Length() {
		return fmt.Errorf("%w: %d of %d", ErrSeekOutOfRange, frame, s.Length())
	}

	s.reset()

	buf := make([]int16, s.bufSize*s.cfg.Channels)
	for s.played < frame {
		want := min(s.bufSize, frame-s.played)
		if _, err := s.ReadPCM16(buf[:want*s.cfg.Channels]); err != nil {
			return fmt.Errorf("seek to %d: %w", frame, err)
		}
	}

	return nil
}
