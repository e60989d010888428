// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/xadpcm/audio"
	"github.com/ik5/xadpcm/utils"
)

// Encode drains src into a 16-bit big-endian AIFF written to w and
// returns the number of samples written. w must support seeking so the
// chunk sizes can be patched at the end.
func Encode(w io.WriteSeeker, src audio.Source) (int, error) {
	channels := src.Channels()
	if channels < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	enc := aiff.NewEncoder(w, src.SampleRate(), bitsPerSample, channels)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		SourceBitDepth: bitsPerSample,
	}

	if err := enc.Write(buf); err != nil {
		return 0, fmt.Errorf("writing AIFF header: %w", err)
	}

	n, err := audio.Drain(src, 0, func(samples []float32) error {
		buf.Data = buf.Data[:0]
		for _, s := range samples {
			buf.Data = append(buf.Data, int(utils.Float32ToInt16(s)))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing AIFF data: %w", err)
		}
		return nil
	})
	if err != nil {
		return n, err
	}

	if err := enc.Close(); err != nil {
		return n, fmt.Errorf("finishing AIFF: %w", err)
	}

	return n, nil
}
