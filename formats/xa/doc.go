// SPDX-License-Identifier: EPL-2.0

// Package xa adapts the XA ADPCM decoder to the audio.Source interface.
//
// A Source reads the 32-byte header up front and then pulls exactly one
// XA block from the underlying reader whenever its PCM buffer runs dry, so
// memory use does not grow with the file:
//
//	src, err := xa.NewSource(file)
//	buf := make([]int16, 4096)
//	n, err := src.ReadInt16(buf)
//
// Samples are interleaved. Reads stop at the sample count declared in the
// header, so the padding of a partial final block is never returned, and
// io.EOF follows. A payload that ends early yields an error wrapping
// ErrTruncatedInput from the core decoder; a bad profile byte yields one
// wrapping ErrCorruptBlock.
//
// Decoder plugs the format into an audio.Registry under the "xa" key.
package xa
