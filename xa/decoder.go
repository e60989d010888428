// SPDX-License-Identifier: EPL-2.0

package xa

import (
	"fmt"
	"io"
)

// DecodeBlocks decodes whole blocks from src into dst, threading the
// predictor history through st. It stops after f.BlockCount blocks or when
// src or dst cannot supply or hold another full block, and returns the
// number of blocks decoded.
//
// A short buffer is not an error unless no block fits at all, in which case
// ErrTruncatedInput is returned. A block whose profile byte is out of range
// stops decoding with a *BlockError; st and dst then reflect only the
// blocks counted.
func DecodeBlocks(dst []int16, src []byte, st *State, f Format) (int, error) {
	return decodeBlocks(dst, src, st, f, int(f.BlockCount))
}

func decodeBlocks(dst []int16, src []byte, st *State, f Format, limit int) (int, error) {
	inflate := inflaterFor(f.Depth)
	if inflate == nil || f.Channels == 0 || f.Channels > MaxChannels {
		return 0, fmt.Errorf("%w: format %v", ErrInvalidHeader, f)
	}

	channels := int(f.Channels)
	xaSize := int(f.XABlockSize)
	pcmSize := int(f.PCMBlockSize)
	chSize := xaSize / channels

	if limit > 0 && (len(src) < xaSize || len(dst) < pcmSize) {
		return 0, ErrTruncatedInput
	}

	blocks := 0
	for blocks < limit && (blocks+1)*xaSize <= len(src) && (blocks+1)*pcmSize <= len(dst) {
		xaBlock := src[blocks*xaSize : (blocks+1)*xaSize]
		pcmBlock := dst[blocks*pcmSize : (blocks+1)*pcmSize]

		for ch := range channels {
			if profile := xaBlock[ch*chSize]; !validProfile(profile) {
				return blocks, &BlockError{Block: blocks, Channel: ch, Profile: profile}
			}
		}

		for ch := range channels {
			region := xaBlock[ch*chSize : (ch+1)*chSize]
			inflate(pcmBlock[ch:], channels, region[1:])
			predict(pcmBlock[ch:], channels, region[0], &st[ch])
		}

		blocks++
	}

	return blocks, nil
}

// Decoder decodes one XA stream. It owns the stream Format and predictor
// State and remembers how many blocks were already decoded, so a payload
// can be fed in any number of whole-block chunks.
//
// A Decoder is not safe for concurrent use.
type Decoder struct {
	format  Format
	state   State
	decoded int
}

// NewDecoder parses header and returns a decoder positioned at the first
// block.
func NewDecoder(header []byte) (*Decoder, error) {
	d := &Decoder{}
	if err := d.Reset(header); err != nil {
		return nil, err
	}
	return d, nil
}

// Reset replaces the stream with the one described by header. On error
// the decoder is left unchanged.
func (d *Decoder) Reset(header []byte) error {
	f, st, err := ParseHeader(header)
	if err != nil {
		return err
	}

	d.format = f
	d.state = st
	d.decoded = 0

	return nil
}

func (d *Decoder) Format() Format { return d.format }

// State returns a copy of the current predictor history.
func (d *Decoder) State() State { return d.state }

// Remaining is the number of blocks not yet decoded.
func (d *Decoder) Remaining() int { return int(d.format.BlockCount) - d.decoded }

// Decode decodes as many whole blocks of src into dst as fit, never more
// than Remaining. It returns io.EOF once every block has been decoded.
func (d *Decoder) Decode(dst []int16, src []byte) (int, error) {
	remaining := d.Remaining()
	if remaining <= 0 {
		return 0, io.EOF
	}

	n, err := decodeBlocks(dst, src, &d.state, d.format, remaining)
	d.decoded += n

	return n, err
}

// DecodeAll decodes the rest of the stream from payload and returns exactly
// the declared number of samples, including a partial final block. A
// payload shorter than the remaining blocks is rejected with
// ErrTruncatedInput before anything is decoded, leaving the decoder
// unchanged.
func (d *Decoder) DecodeAll(payload []byte) ([]int16, error) {
	remaining := d.Remaining()
	if remaining <= 0 {
		return nil, io.EOF
	}

	if available := len(payload) / int(d.format.XABlockSize); available < remaining {
		return nil, fmt.Errorf("%w: payload holds %d of %d blocks", ErrTruncatedInput, available, remaining)
	}

	pcm := make([]int16, remaining*int(d.format.PCMBlockSize))
	if _, err := d.Decode(pcm, payload); err != nil {
		return nil, fmt.Errorf("decoding block %d: %w", d.decoded, err)
	}

	// Samples already returned by earlier Decode calls are not repeated.
	want := d.format.PCMSamples() - (int(d.format.BlockCount)-remaining)*int(d.format.PCMBlockSize)
	if want < len(pcm) {
		pcm = pcm[:want]
	}

	return pcm, nil
}
