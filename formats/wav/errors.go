// SPDX-License-Identifier: EPL-2.0

package wav

import "errors"

var (
	ErrNotWavFile           = errors.New("not a WAV file")
	ErrUnsupportedWavLayout = errors.New("unsupported WAV layout")
	ErrUnsupportedCodec     = errors.New("unsupported WAV codec")
	ErrUnsupportedWavChunks = errors.New("unsupported WAV chunks")
)
