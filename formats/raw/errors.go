// SPDX-License-Identifier: EPL-2.0

package raw

import "errors"

// ErrUnknownLength is returned when the sample count is not given and
// cannot be derived from the data size, as for Westwood ADPCM.
var ErrUnknownLength = errors.New("raw stream length unknown")
