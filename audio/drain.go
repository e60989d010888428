// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
)

const defaultBufSize = 4096

// Drain reads src until io.EOF and hands every non-empty chunk to fn. The
// chunk is only valid during the call. bufSize <= 0 uses src.BufSize(); the
// size is rounded down to whole frames. Drain returns the number of samples
// passed to fn.
func Drain(src Source, bufSize int, fn func(samples []float32) error) (int, error) {
	channels := src.Channels()
	if channels < 1 {
		return 0, fmt.Errorf("%w: source has %d channels", ErrInvalidDstSize, channels)
	}

	if bufSize <= 0 {
		bufSize = src.BufSize()
	}
	if bufSize <= 0 {
		bufSize = defaultBufSize
	}
	bufSize = max(bufSize-bufSize%channels, channels)

	buf := make([]float32, bufSize)
	total := 0

	for {
		n, err := src.ReadSamples(buf)
		if n > 0 {
			if ferr := fn(buf[:n]); ferr != nil {
				return total, ferr
			}
			total += n
		}

		if errors.Is(err, io.EOF) {
			return total, nil
		}
		if err != nil {
			return total, fmt.Errorf("reading samples: %w", err)
		}
	}
}
