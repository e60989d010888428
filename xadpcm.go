// SPDX-License-Identifier: EPL-2.0

package xadpcm

import (
	"fmt"
	"io"

	"github.com/ik5/xadpcm/audio"
	"github.com/ik5/xadpcm/formats/aiff"
	"github.com/ik5/xadpcm/formats/wav"
	formatxa "github.com/ik5/xadpcm/formats/xa"
	"github.com/ik5/xadpcm/utils"
	"github.com/ik5/xadpcm/xa"
)

// Decode reads a complete XA file from r and returns its interleaved PCM
// samples together with the stream format. Bytes past the declared
// payload are ignored.
func Decode(r io.Reader) ([]int16, xa.Format, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, xa.Format{}, fmt.Errorf("reading XA data: %w", err)
	}

	dec, err := xa.NewDecoder(data)
	if err != nil {
		return nil, xa.Format{}, err
	}

	pcm, err := dec.DecodeAll(data[xa.HeaderSize:])
	if err != nil {
		return nil, dec.Format(), err
	}

	return pcm, dec.Format(), nil
}

// ConvertToWAV decodes the XA stream in r and writes it to w as a 16-bit
// PCM WAV. When w can seek the stream is converted one block at a time;
// otherwise the whole file is decoded first.
func ConvertToWAV(w io.Writer, r io.Reader) (xa.Format, error) {
	if ws, ok := w.(io.WriteSeeker); ok {
		src, err := formatxa.NewSource(r)
		if err != nil {
			return xa.Format{}, err
		}

		if _, err := wav.Encode(ws, src); err != nil {
			return src.Format(), err
		}

		return src.Format(), nil
	}

	pcm, f, err := Decode(r)
	if err != nil {
		return f, err
	}

	if err := wav.WriteWAV16(w, int(f.SampleRate), int(f.Channels), pcm); err != nil {
		return f, err
	}

	return f, nil
}

// ConvertToAIFF decodes the XA stream in r one block at a time and writes
// it to w as a 16-bit big-endian AIFF.
func ConvertToAIFF(w io.WriteSeeker, r io.Reader) (xa.Format, error) {
	src, err := formatxa.NewSource(r)
	if err != nil {
		return xa.Format{}, err
	}

	if _, err := aiff.Encode(w, src); err != nil {
		return src.Format(), err
	}

	return src.Format(), nil
}

// ConvertToPCM decodes the XA stream in r and writes headerless
// little-endian samples to w.
func ConvertToPCM(w io.Writer, r io.Reader) (xa.Format, error) {
	pcm, f, err := Decode(r)
	if err != nil {
		return f, err
	}

	if err := wav.WritePCM16(w, pcm); err != nil {
		return f, err
	}

	return f, nil
}

// ReadAll16 drains src and returns its samples as 16-bit PCM.
// bufferSize <= 0 uses src.BufSize().
func ReadAll16(src audio.Source, bufferSize int) ([]int16, error) {
	var pcm16 []int16

	_, err := audio.Drain(src, bufferSize, func(samples []float32) error {
		for _, s := range samples {
			pcm16 = append(pcm16, utils.Float32ToInt16(s))
		}
		return nil
	})
	if err != nil {
		return pcm16, err
	}

	return pcm16, nil
}

// NewRegistry returns a registry with the XA decoder and the decoders for
// the containers XA audio is converted to.
func NewRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register("xa", formatxa.Decoder{})
	reg.Register("wav", wav.Decoder{})
	reg.Register("aiff", aiff.Decoder{})
	reg.Register("aif", aiff.Decoder{})

	return reg
}
