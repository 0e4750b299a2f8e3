// SPDX-License-Identifier: EPL-2.0

package codec

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfRangeTableIndex reports a coefficient, scale or step index
	// read from the stream that falls outside its fixed table.
	ErrOutOfRangeTableIndex = errors.New("table index out of range")

	// ErrShortRead reports that the byte source could not supply a
	// requested range.
	ErrShortRead = errors.New("short read from byte source")

	// ErrInvalidStateTransition reports frame bookkeeping that is
	// internally inconsistent (Westwood and XBOX IMA).
	ErrInvalidStateTransition = errors.New("invalid decoder state transition")

	ErrShortBuffer    = errors.New("output buffer too small for sample count and spacing")
	ErrInvalidSpacing = errors.New("channel spacing must be positive")
	ErrInvalidRange   = errors.New("first sample and sample count must not be negative")
	ErrUnknownKind    = errors.New("unknown codec kind")
	ErrNoKeyFound     = errors.New("no known ADX key matches stream")
)

// CodecFault is returned by a decode call that could not complete. The
// channel state passed to the call is left untouched.
type CodecFault struct {
	Kind   Kind
	Offset int64 // byte offset being read when the fault was detected
	Sample int   // first_sample-relative index of the sample being decoded
	Err    error
}

func (f *CodecFault) Error() string {
	return fmt.Sprintf("%s: sample %d at offset %#x: %v", f.Kind, f.Sample, f.Offset, f.Err)
}

func (f *CodecFault) Unwrap() error { return f.Err }

func shortRead(off int64, sample int) *CodecFault {
	return &CodecFault{Offset: off, Sample: sample, Err: ErrShortRead}
}

func badIndex(off int64, sample int, what string, v int) *CodecFault {
	return &CodecFault{
		Offset: off,
		Sample: sample,
		Err:    fmt.Errorf("%w: %s %d", ErrOutOfRangeTableIndex, what, v),
	}
}

func badState(off int64, sample int, format string, args ...any) *CodecFault {
	return &CodecFault{
		Offset: off,
		Sample: sample,
		Err:    fmt.Errorf("%w: "+format, append([]any{ErrInvalidStateTransition}, args...)...),
	}
}
