// SPDX-License-Identifier: EPL-2.0

package xa

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
)

const (
	// HeaderSize is the size of the XA stream header in bytes.
	HeaderSize = 32

	// Magic is the little-endian header signature ("KWD1").
	Magic uint32 = 0x3144574b

	// BlockSamples is the number of samples each block yields per channel.
	BlockSamples = 32

	// SampleBitDepth is the width of every decoded sample.
	SampleBitDepth = 16

	// MaxChannels is the largest supported channel count.
	MaxChannels = 2
)

// BitDepth is the residual width of an XA stream.
type BitDepth uint8

const (
	Depth4 BitDepth = 4
	Depth6 BitDepth = 6
	Depth8 BitDepth = 8
)

// Valid reports whether d is one of the supported depths.
func (d BitDepth) Valid() bool {
	return d == Depth4 || d == Depth6 || d == Depth8
}

// SourceBlockSize is the number of payload bytes per channel per block,
// profile byte included: 17, 25 or 33.
func (d BitDepth) SourceBlockSize() int {
	return int(d)*4 + 1
}

func (d BitDepth) String() string {
	return fmt.Sprintf("%d-bit", uint8(d))
}

// HeaderFields holds the raw values read from an XA header, before any
// validation.
type HeaderFields struct {
	Magic      uint32
	DataLength uint32 // XA payload bytes
	Samples    uint32 // frames per channel
	SampleRate uint16
	Depth      BitDepth
	Channels   uint8
	Seeds      [MaxChannels * 2]int16
}

// ReadHeaderFields decodes the fixed offsets of an XA header.
// b must hold at least HeaderSize bytes.
func ReadHeaderFields(b []byte) (HeaderFields, error) {
	if len(b) < HeaderSize {
		return HeaderFields{}, headerErr("length", uint64(len(b)), "need 32 bytes")
	}

	le := binary.LittleEndian
	h := HeaderFields{
		Magic:      le.Uint32(b[0:4]),
		DataLength: le.Uint32(b[4:8]),
		Samples:    le.Uint32(b[8:12]),
		SampleRate: le.Uint16(b[12:14]),
		Depth:      BitDepth(b[14]),
		Channels:   b[15],
	}
	for i := range h.Seeds {
		off := 20 + i*2
		h.Seeds[i] = int16(le.Uint16(b[off : off+2]))
	}

	return h, nil
}

// Format describes a validated XA stream and the PCM it decodes to.
type Format struct {
	PCMByteLength  uint32
	BlockCount     uint32
	PCMBlockSize   uint32 // int16 samples per block, all channels
	XABlockSize    uint32 // payload bytes per block, all channels
	SampleRate     uint16
	SampleBitDepth uint16
	Channels       uint16

	Depth       BitDepth
	SampleCount uint32 // declared frames per channel
}

// PCMSamples is the number of int16 values in the decoded stream.
func (f Format) PCMSamples() int {
	return int(f.PCMByteLength) / 2
}

// XADataLength is the payload size in bytes.
func (f Format) XADataLength() int {
	return int(f.BlockCount) * int(f.XABlockSize)
}

// RIFFLength is the RIFF chunk size of the matching WAV file.
func (f Format) RIFFLength() uint32 {
	return 36 + f.PCMByteLength
}

// BlockAlign is the byte size of one PCM frame.
func (f Format) BlockAlign() uint16 {
	return f.Channels * f.SampleBitDepth / 8
}

// ByteRate is the PCM data rate in bytes per second.
func (f Format) ByteRate() uint32 {
	return uint32(f.SampleRate) * uint32(f.BlockAlign())
}

func (f Format) String() string {
	return fmt.Sprintf("%s %d ch %d Hz, %d blocks of %d bytes, %d frames",
		f.Depth, f.Channels, f.SampleRate, f.BlockCount, f.XABlockSize, f.SampleCount)
}

// PredictorState is the prediction history of one channel.
// Prev0 is the most recent reconstructed sample, Prev1 the one before it.
type PredictorState struct {
	Prev0 int16
	Prev1 int16
}

// State holds the predictor history of every channel.
type State [MaxChannels]PredictorState

// Validate checks the consistency of the raw fields and derives the stream
// Format and seeded predictor State.
func (h HeaderFields) Validate() (Format, State, error) {
	if h.Magic != Magic {
		return Format{}, State{}, headerErr("magic", uint64(h.Magic), fmt.Sprintf("want 0x%08x", Magic))
	}
	if !h.Depth.Valid() {
		return Format{}, State{}, headerErr("bit depth", uint64(h.Depth), "want 4, 6 or 8")
	}
	if h.Channels != 1 && h.Channels != 2 {
		return Format{}, State{}, headerErr("channels", uint64(h.Channels), "want 1 or 2")
	}

	switch {
	case h.DataLength == 0:
		return Format{}, State{}, headerErr("data length", 0, "must be nonzero")
	case h.Samples == 0:
		return Format{}, State{}, headerErr("sample count", 0, "must be nonzero")
	case h.SampleRate == 0:
		return Format{}, State{}, headerErr("sample rate", 0, "must be nonzero")
	}

	blockSize := uint64(h.Depth.SourceBlockSize())
	channels := uint64(h.Channels)
	dataLength := uint64(h.DataLength)
	samples := uint64(h.Samples)

	// The payload holds whole blocks of every channel.
	if dataLength%(blockSize*channels) != 0 {
		return Format{}, State{}, headerErr("data length", dataLength,
			fmt.Sprintf("not a multiple of the %d-byte %d-channel block", blockSize*channels, channels))
	}

	maxSamples := BlockSamples * dataLength / (blockSize * channels)
	if samples > maxSamples {
		return Format{}, State{}, headerErr("sample count", samples,
			fmt.Sprintf("exceeds %d available", maxSamples))
	}
	if maxSamples-samples >= BlockSamples {
		return Format{}, State{}, headerErr("sample count", samples,
			fmt.Sprintf("short of %d by a whole block or more", maxSamples))
	}

	// The PCM and RIFF lengths of the WAV output are 32-bit fields.
	pcmLength := samples * channels * SampleBitDepth / 8
	if pcmLength > math.MaxUint32-36 {
		return Format{}, State{}, headerErr("sample count", samples, "PCM length overflows 32 bits")
	}

	f := Format{
		PCMByteLength:  uint32(pcmLength),
		BlockCount:     uint32(dataLength / (blockSize * channels)),
		PCMBlockSize:   BlockSamples * uint32(h.Channels),
		XABlockSize:    uint32(blockSize * channels),
		SampleRate:     h.SampleRate,
		SampleBitDepth: SampleBitDepth,
		Channels:       uint16(h.Channels),
		Depth:          h.Depth,
		SampleCount:    h.Samples,
	}

	var st State
	for ch := range st {
		st[ch] = PredictorState{Prev0: h.Seeds[ch*2], Prev1: h.Seeds[ch*2+1]}
	}

	return f, st, nil
}

// ParseHeader validates the first HeaderSize bytes of b. It has no side
// effects; the same bytes always give the same Format and State.
func ParseHeader(b []byte) (Format, State, error) {
	h, err := ReadHeaderFields(b)
	if err != nil {
		return Format{}, State{}, err
	}
	return h.Validate()
}

// ReadHeader reads and validates a header from r.
func ReadHeader(r io.Reader) (Format, State, error) {
	var buf [HeaderSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Format{}, State{}, fmt.Errorf("reading XA header: %w", err)
	}
	return ParseHeader(buf[:])
}
