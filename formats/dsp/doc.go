// SPDX-License-Identifier: EPL-2.0

// Package dsp reads Nintendo GameCube/Wii DSP ADPCM files with the
// standard 0x60-byte header.
//
// The header carries the eight coefficient pairs, the initial history and
// loop points given as nibble addresses. NibbleToSample converts those to
// sample positions; the loop end is inclusive in the header and exclusive
// in the stream.
//
// Multichannel DSP variants wrap several of these headers in their own
// containers; ReadHeader and Header.StreamConfig take an offset so such
// readers can reuse them.
package dsp
