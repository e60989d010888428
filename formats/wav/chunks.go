// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/riff"
)

// Chunk describes one chunk of a RIFF/WAVE container. Size includes the
// pad byte of odd-sized chunks.
type Chunk struct {
	ID   string
	Size int
}

// Chunks walks the RIFF/WAVE container in r and lists its chunks in file
// order. It returns the declared RIFF length along with the chunks.
func Chunks(r io.Reader) (uint32, []Chunk, error) {
	p := riff.New(r)
	if err := p.ParseHeaders(); err != nil {
		return 0, nil, fmt.Errorf("%w: %w", ErrNotWavFile, err)
	}
	if p.Format != riff.WavFormatID {
		return 0, nil, fmt.Errorf("%w: form type %q", ErrNotWavFile, p.Format[:])
	}

	var chunks []Chunk
	for {
		ch, err := p.NextChunk()
		if errors.Is(err, io.EOF) {
			return p.Size, chunks, nil
		}
		if err != nil {
			return p.Size, chunks, fmt.Errorf("reading chunk %d: %w", len(chunks), err)
		}

		chunks = append(chunks, Chunk{ID: string(ch.ID[:]), Size: ch.Size})
		// A chunk cut short leaves the reader at EOF, which ends the walk.
		ch.Drain()
	}
}
