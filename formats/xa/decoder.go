// SPDX-License-Identifier: EPL-2.0

package xa

import (
	"errors"
	"fmt"
	"io"

	"github.com/ik5/xadpcm/audio"
	"github.com/ik5/xadpcm/utils"
	xacodec "github.com/ik5/xadpcm/xa"
)

// Source streams decoded PCM from an XA reader, one block at a time.
type Source struct {
	r      io.Reader
	dec    *xacodec.Decoder
	format xacodec.Format

	block []byte  // one XA block
	pcm   []int16 // the decoded block
	pos   int     // next unread sample in pcm
	left  int     // samples still to deliver
	tmp   []int16
}

// NewSource reads and validates the XA header from r. The payload is
// consumed lazily by ReadInt16 and ReadSamples.
func NewSource(r io.Reader) (*Source, error) {
	header := make([]byte, xacodec.HeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("reading XA header: %w", err)
	}

	dec, err := xacodec.NewDecoder(header)
	if err != nil {
		return nil, fmt.Errorf("%w", err)
	}

	f := dec.Format()

	return &Source{
		r:      r,
		dec:    dec,
		format: f,
		block:  make([]byte, f.XABlockSize),
		pcm:    make([]int16, f.PCMBlockSize),
		pos:    int(f.PCMBlockSize),
		left:   f.PCMSamples(),
	}, nil
}

func (s *Source) Format() xacodec.Format { return s.format }
func (s *Source) SampleRate() int        { return int(s.format.SampleRate) }
func (s *Source) Channels() int          { return int(s.format.Channels) }
func (s *Source) BufSize() int           { return int(s.format.PCMBlockSize) }

// Close closes the underlying reader when it is an io.Closer.
func (s *Source) Close() error {
	if c, ok := s.r.(io.Closer); ok {
		if err := c.Close(); err != nil {
			return fmt.Errorf("%w", err)
		}
	}
	return nil
}

// nextBlock reads and decodes the next XA block.
func (s *Source) nextBlock() error {
	if _, err := io.ReadFull(s.r, s.block); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return fmt.Errorf("%w: %d of %d blocks read",
				xacodec.ErrTruncatedInput, int(s.format.BlockCount)-s.dec.Remaining(), s.format.BlockCount)
		}
		return fmt.Errorf("reading XA block: %w", err)
	}

	if _, err := s.dec.Decode(s.pcm, s.block); err != nil {
		return fmt.Errorf("decoding block %d: %w", int(s.format.BlockCount)-s.dec.Remaining(), err)
	}
	s.pos = 0

	return nil
}

// ReadInt16 fills dst with interleaved samples. It returns io.EOF once the
// declared sample count has been delivered; the padding of a partial final
// block is never returned.
func (s *Source) ReadInt16(dst []int16) (int, error) {
	if s.left == 0 {
		return 0, io.EOF
	}

	n := 0
	for n < len(dst) && s.left > 0 {
		if s.pos == len(s.pcm) {
			if err := s.nextBlock(); err != nil {
				return n, err
			}
		}

		c := copy(dst[n:], s.pcm[s.pos:min(len(s.pcm), s.pos+s.left)])
		s.pos += c
		s.left -= c
		n += c
	}

	return n, nil
}

// ReadSamples fills dst with interleaved float32 samples in [-1, 1).
// len(dst) must be a multiple of the channel count.
func (s *Source) ReadSamples(dst []float32) (int, error) {
	if len(dst)%s.Channels() != 0 {
		return 0, audio.ErrInvalidDstSize
	}

	if cap(s.tmp) < len(dst) {
		s.tmp = make([]int16, len(dst))
	}
	s.tmp = s.tmp[:len(dst)]

	n, err := s.ReadInt16(s.tmp)
	for i := range n {
		dst[i] = utils.Int16ToFloat32(s.tmp[i])
	}

	return n, err
}

// Decoder opens XA streams as audio sources.
type Decoder struct{}

func (Decoder) Decode(r io.Reader) (audio.Source, error) {
	src, err := NewSource(r)
	if err != nil {
		return nil, err
	}
	return src, nil
}
