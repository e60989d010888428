// SPDX-License-Identifier: EPL-2.0

package wav

import (
	"encoding/binary"
	"fmt"
	"io"
)

const (
	// HeaderSize is the length of the canonical RIFF/WAVE/fmt/data header.
	HeaderSize = 44

	pcmFormat     = 1
	bitsPerSample = 16
	fmtChunkSize  = 16
)

// Header holds the fields of a canonical 16-bit PCM WAV header.
type Header struct {
	SampleRate uint32
	Channels   uint16
	DataLength uint32 // PCM bytes following the header
}

// NewHeader describes samples interleaved int16 values at sampleRate.
func NewHeader(sampleRate, channels, samples int) (Header, error) {
	if channels < 1 || channels > 0xffff {
		return Header{}, fmt.Errorf("%w: %d", ErrInvalidChannels, channels)
	}
	if samples%channels != 0 {
		return Header{}, fmt.Errorf("%w: %d samples do not fill %d channels", ErrInvalidChannels, samples, channels)
	}

	return Header{
		SampleRate: uint32(sampleRate),
		Channels:   uint16(channels),
		DataLength: uint32(samples * 2),
	}, nil
}

func (h Header) BlockAlign() uint16 { return h.Channels * bitsPerSample / 8 }

// ByteRate is the number of PCM bytes per second.
func (h Header) ByteRate() uint32 { return h.SampleRate * uint32(h.BlockAlign()) }

// RIFFLength is the value of the RIFF chunk size field.
func (h Header) RIFFLength() uint32 { return 36 + h.DataLength }

// AppendBinary appends the 44 header bytes to b.
func (h Header) AppendBinary(b []byte) ([]byte, error) {
	if h.Channels == 0 {
		return b, ErrInvalidChannels
	}

	le := binary.LittleEndian

	b = append(b, "RIFF"...)
	b = le.AppendUint32(b, h.RIFFLength())
	b = append(b, "WAVE"...)

	b = append(b, "fmt "...)
	b = le.AppendUint32(b, fmtChunkSize)
	b = le.AppendUint16(b, pcmFormat)
	b = le.AppendUint16(b, h.Channels)
	b = le.AppendUint32(b, h.SampleRate)
	b = le.AppendUint32(b, h.ByteRate())
	b = le.AppendUint16(b, h.BlockAlign())
	b = le.AppendUint16(b, bitsPerSample)

	b = append(b, "data"...)
	b = le.AppendUint32(b, h.DataLength)

	return b, nil
}

func (h Header) MarshalBinary() ([]byte, error) {
	return h.AppendBinary(make([]byte, 0, HeaderSize))
}

// WriteHeader writes h in a single Write call.
func WriteHeader(w io.Writer, h Header) error {
	var buf [HeaderSize]byte

	b, err := h.AppendBinary(buf[:0])
	if err != nil {
		return err
	}

	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("%w", err)
	}

	return nil
}
