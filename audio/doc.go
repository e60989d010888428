// SPDX-License-Identifier: EPL-2.0

// Package audio defines the interfaces shared by the format packages.
//
// # Source Interface
//
// A Source delivers interleaved PCM as float32 values:
//
//	type Source interface {
//	    SampleRate() int
//	    Channels() int
//	    ReadSamples(dst []float32) (int, error)
//	    BufSize() int
//	    Close() error
//	}
//
// BufSize reports the read size the source works best with. For XA
// sources that is one decoded block across all channels. Sources that
// require whole frames return ErrInvalidDstSize when len(dst) is not a
// multiple of Channels.
//
// # Format Registry
//
// A Registry maps format keys, usually file extensions, to decoders:
//
//	registry := audio.NewRegistry()
//	registry.Register("xa", xa.Decoder{})
//	registry.Register("wav", wav.Decoder{})
//
//	decoder, err := registry.ForPath("track01.xa")
//
// Keys are case-insensitive. ForPath returns an error wrapping
// ErrUnknownFormat when no decoder matches. A Registry is safe for
// concurrent use.
//
// # Sample Format
//
// Samples are float32 in [-1.0, 1.0]. A 16-bit sample s maps to s/32768,
// so the conversion back to int16 is exact.
//
// # End of Stream
//
// ReadSamples returns io.EOF when no more data is available:
//
//	for {
//	    n, err := source.ReadSamples(buf)
//	    // use buf[:n]
//	    if errors.Is(err, io.EOF) {
//	        break
//	    }
//	    if err != nil {
//	        return err
//	    }
//	}
package audio
