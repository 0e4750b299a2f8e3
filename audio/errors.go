// SPDX-License-Identifier: EPL-2.0

package audio

import "errors"

var (
	ErrInvalidDstSize    = errors.New("dst size must be multiple of channels")
	ErrInvalidConfig     = errors.New("invalid stream configuration")
	ErrUnsupportedLayout = errors.New("codec cannot be used with this channel layout")
	ErrSeekOutOfRange    = errors.New("seek position outside stream")
	ErrStreamClosed      = errors.New("stream is closed")
)
