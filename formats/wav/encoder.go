// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"fmt"
	"io"

	goaudio "github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"

	"github.com/ik5/xadpcm/audio"
	"github.com/ik5/xadpcm/utils"
)

const defaultBufSize = 4096

// Encode drains src into a 16-bit PCM WAV written to w and returns the
// number of samples written. The header sizes are patched on completion,
// so w must support seeking.
func Encode(w io.WriteSeeker, src audio.Source) (int, error) {
	channels := src.Channels()
	if channels < 1 {
		return 0, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}

	enc := gowav.NewEncoder(w, src.SampleRate(), bitsPerSample, channels, pcmFormat)
	buf := &goaudio.IntBuffer{
		Format:         &goaudio.Format{NumChannels: channels, SampleRate: src.SampleRate()},
		SourceBitDepth: bitsPerSample,
	}

	// An empty write emits the header even when src has no samples.
	if err := enc.Write(buf); err != nil {
		return 0, fmt.Errorf("writing WAV header: %w", err)
	}

	n, err := audio.Drain(src, 0, func(samples []float32) error {
		buf.Data = buf.Data[:0]
		for _, s := range samples {
			buf.Data = append(buf.Data, int(utils.Float32ToInt16(s)))
		}

		if err := enc.Write(buf); err != nil {
			return fmt.Errorf("writing WAV data: %w", err)
		}
		return nil
	})
	if err != nil {
		return n, err
	}

	if err := enc.Close(); err != nil {
		return n, fmt.Errorf("finishing WAV: %w", err)
	}

	return n, nil
}
