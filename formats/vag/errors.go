// SPDX-License-Identifier: EPL-2.0

package vag

import "errors"

var (
	// ErrNotVagFile is returned when the input does not start with a VAGp
	// or VAGi magic.
	ErrNotVagFile = errors.New("not a VAG file")

	// ErrUnsupportedVagLayout covers headers whose sizes or rates cannot
	// describe a stream.
	ErrUnsupportedVagLayout = errors.New("unsupported VAG layout")
)
