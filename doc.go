// SPDX-License-Identifier: EPL-2.0

// Package xadpcm decodes XA ADPCM audio into 16-bit PCM and WAV.
//
// XA is the block-based ADPCM format used by PlayStation titles: a 32-byte
// header followed by fixed-size blocks of 4-, 6- or 8-bit residuals, each
// block carrying 32 samples per channel and a profile byte that selects
// one of five prediction filters and a shift.
//
// # Quick Start
//
// Convert a file to WAV:
//
//	in, _ := os.Open("bgm.xa")
//	out, _ := os.Create("bgm.wav")
//	format, err := xadpcm.ConvertToWAV(out, in)
//
// Or decode to memory:
//
//	pcm, format, err := xadpcm.Decode(in)
//
// # Packages
//
//   - xa: header validation, bit unpacking, prediction and the block decoder
//   - formats/xa: an audio.Source that streams an XA reader block by block
//   - formats/wav: WAV header, writer, encoder and decoder
//   - formats/aiff: AIFF encoder and decoder
//   - audio: the Source and Decoder interfaces and the format registry
//
// # Format Registry
//
// NewRegistry returns an audio.Registry with XA, WAV and AIFF registered, so a
// caller can pick a decoder by file extension and drain it with ReadAll16:
//
//	dec, err := xadpcm.NewRegistry().ForPath(path)
//	src, err := dec.Decode(file)
//	pcm, err := xadpcm.ReadAll16(src, 0)
//
// # Errors
//
// Header problems wrap xa.ErrInvalidHeader, bad profile bytes wrap
// xa.ErrCorruptBlock and short payloads wrap xa.ErrTruncatedInput. Use
// errors.Is and errors.As to inspect them.
package xadpcm
