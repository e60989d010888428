// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const chunkSamples = 8192

// WritePCM16 writes samples as little-endian 16-bit PCM with no header.
func WritePCM16(w io.Writer, samples []int16) error {
	if len(samples) == 0 {
		return nil
	}

	buf := make([]byte, min(len(samples), chunkSamples)*2)

	for i := 0; i < len(samples); i += chunkSamples {
		chunk := samples[i:min(i+chunkSamples, len(samples))]
		b := buf[:len(chunk)*2]

		for j, s := range chunk {
			binary.LittleEndian.PutUint16(b[j*2:], uint16(s))
		}

		if _, err := w.Write(b); err != nil {
			return fmt.Errorf("%w", err)
		}
	}

	return nil
}

// WriteWAV16 writes a complete 16-bit PCM WAV. samples are interleaved
// and len(samples) must be a multiple of channels.
func WriteWAV16(w io.Writer, sampleRate, channels int, samples []int16) error {
	h, err := NewHeader(sampleRate, channels, len(samples))
	if err != nil {
		return err
	}

	if err := WriteHeader(w, h); err != nil {
		return err
	}

	return WritePCM16(w, samples)
}
