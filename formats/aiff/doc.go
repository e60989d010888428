// SPDX-License-Identifier: EPL-2.0

// Package aiff writes and reads 16-bit PCM AIFF files.
//
// The package wraps github.com/go-audio/aiff. Encode drains an
// audio.Source into a big-endian FORM/AIFF container, which is how
// decoded XA audio is delivered to tools that prefer Apple's format.
// Decoder opens such files again as an audio.Source, so an AIFF written
// here can be verified or converted onward through the same registry as
// WAV.
//
// # Encoding
//
//	out, _ := os.Create("voice.aiff")
//	n, err := aiff.Encode(out, src)
//
// The COMM and SSND chunk sizes are patched when encoding completes, so
// the writer must implement io.WriteSeeker.
//
// # Decoding
//
//	src, err := aiff.Decoder{}.Decode(file)
//	buf := make([]float32, src.BufSize())
//	n, err := src.ReadSamples(buf)
//
// Samples are returned as float32 in [-1, 1). Only 16-bit PCM is
// accepted; any other sample size yields ErrOnlyPCM16bitSupported, and
// input that is not a FORM/AIFF stream yields ErrNotAiffFile.
package aiff
