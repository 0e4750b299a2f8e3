// SPDX-License-Identifier: EPL-2.0

package adx

import "errors"

var (
	ErrNotAdxFile        = errors.New("not an ADX file")
	ErrUnsupportedType   = errors.New("unsupported ADX encoding type")
	ErrUnsupportedLayout = errors.New("unsupported ADX layout")
)
