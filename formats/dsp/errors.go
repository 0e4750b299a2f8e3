// SPDX-License-Identifier: EPL-2.0

package dsp

import "errors"

var (
	ErrNotDspFile        = errors.New("not a DSP file")
	ErrUnsupportedFormat = errors.New("unsupported DSP format")
)
