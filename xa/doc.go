// SPDX-License-Identifier: EPL-2.0

// Package xa decodes XA ADPCM audio into 16-bit linear PCM.
//
// An XA stream is a 32-byte header followed by fixed-size blocks. Every
// block holds 32 samples per channel, stored as 4, 6 or 8-bit residuals
// behind a one-byte profile. The profile selects one of five prediction
// filters (high nibble) and a right shift (low nibble).
//
// # Header
//
// ParseHeader validates the header and returns the stream Format together
// with the initial predictor State seeded from the header:
//
//	f, st, err := xa.ParseHeader(data[:xa.HeaderSize])
//	if errors.Is(err, xa.ErrInvalidHeader) {
//	    // err is a *xa.HeaderError naming the bad field
//	}
//
// # Decoding
//
// DecodeBlocks is the low-level entry point. The predictor State is an
// explicit value that carries over from one call to the next, so a payload
// may be decoded in any number of whole-block chunks:
//
//	pcm := make([]int16, f.BlockCount*f.PCMBlockSize)
//	n, err := xa.DecodeBlocks(pcm, data[xa.HeaderSize:], &st, f)
//
// Decoder wraps the Format, the State and the decode position:
//
//	dec, _ := xa.NewDecoder(data)
//	pcm, err := dec.DecodeAll(data[xa.HeaderSize:])
//
// # Block Layout
//
// For a source depth d each channel region of a block is d*4+1 bytes:
//   - 4-bit: 16 bytes, two residuals per byte, high nibble first
//   - 6-bit: 24 bytes, four residuals per big-endian 24-bit group
//   - 8-bit: 32 bytes, one residual per byte
//
// Stereo blocks hold the channel 0 region followed by the channel 1 region.
// Decoded samples are interleaved.
//
// # Errors
//
//   - ErrInvalidHeader: the header is malformed (see HeaderError)
//   - ErrCorruptBlock: a profile byte selects a filter beyond the table (see BlockError)
//   - ErrTruncatedInput: not even one block fits in the given buffers
//
// # Concurrency
//
// Decoding is sequential. Independent streams may be decoded in parallel,
// each with its own Format and State; a single Decoder must not be shared
// between goroutines without external locking.
package xa
