// SPDX-License-Identifier: EPL-2.0

package vgmcodec

import "errors"

var (
	ErrUnknownFormat = errors.New("unknown audio format")
	ErrNoDecoder     = errors.New("no decoder registered for format")
)
