// SPDX-License-Identifier: EPL-2.0

// Package adx reads CRI ADX files.
//
// The header starts with 0x8000 and a big-endian offset to the "(c)CRI"
// signature; the audio follows four bytes after that offset. Only the
// standard encoding (type 3) with 18-byte frames is handled. The
// prediction filter is derived from the highpass cutoff and sample rate,
// and loop points are read from version 3 and version 4 headers.
//
// Files with flag 0x08 have XOR-keyed frame scales. The key is taken from
// Decoder.Key or found by testing codec.KnownADXKeys against the first
// frames:
//
//	src, err := adx.Decoder{}.Decode(file)
//	if errors.Is(err, codec.ErrNoKeyFound) {
//	    // encrypted with a key we do not know
//	}
package adx
