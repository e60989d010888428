// SPDX-License-Identifier: EPL-2.0

// Package wav reads and writes 16-bit PCM WAV streams.
//
// Decoding and the seekable encoder are backed by github.com/go-audio/wav.
// The stateless header writer is used where the output cannot seek, such
// as stdout or a pipe.
//
// # Writing
//
// WriteWAV16 emits the canonical 44-byte header followed by interleaved
// little-endian samples:
//
//	err := wav.WriteWAV16(file, 22050, 1, pcm)
//
// The header alone is available through Header and WriteHeader. Its
// fields derive from the sample rate, the channel count and the PCM byte
// length:
//
//	RIFF length = 36 + data length
//	block align = channels * 2
//	byte rate   = sample rate * block align
//
// Encode drains any audio.Source into an io.WriteSeeker and patches the
// sizes when the source ends:
//
//	n, err := wav.Encode(file, source)
//
// # Reading
//
// Decoder returns an audio.Source with samples scaled to [-1, 1):
//
//	source, err := wav.Decoder{}.Decode(file)
//	buf := make([]float32, 4096)
//	n, err := source.ReadSamples(buf)
//
// Readers that cannot seek are buffered in memory first. Chunks other than
// fmt and data are skipped.
//
// # Inspecting
//
// Chunks lists the chunk IDs and sizes of a RIFF/WAVE stream, which is
// enough to check the layout of a converted file:
//
//	riffLen, chunks, err := wav.Chunks(file)
//
// # Errors
//
//   - ErrNotWavFile: the input is not a RIFF/WAVE stream
//   - ErrOnlyPCM16bitSupported: the fmt chunk is not 16-bit integer PCM
//   - ErrUnsupportedWavLayout: no data chunk follows the fmt chunk
//   - ErrInvalidChannels: a channel count below one, or samples that do
//     not fill whole frames
package wav
