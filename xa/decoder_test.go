// SPDX-License-Identifier: EPL-2.0

package xa

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"testing"
)

type golden struct {
	name  string
	state State // predictor history after the last block
}

var goldens = []golden{
	{"mono4", State{{Prev0: -120, Prev1: -102}}},
	{"stereo6", State{{Prev0: 589, Prev1: 447}, {Prev0: 143, Prev1: -19}}},
	{"mono8", State{{Prev0: 25609, Prev1: 26981}}},
}

func readGolden(t testing.TB, name string) (header, payload []byte, pcm []int16) {
	t.Helper()

	xa, err := os.ReadFile(filepath.Join("testdata", name+".xa"))
	if err != nil {
		t.Fatalf("reading %s.xa: %v", name, err)
	}
	raw, err := os.ReadFile(filepath.Join("testdata", name+".pcm"))
	if err != nil {
		t.Fatalf("reading %s.pcm: %v", name, err)
	}

	pcm = make([]int16, len(raw)/2)
	for i := range pcm {
		pcm[i] = int16(binary.LittleEndian.Uint16(raw[i*2:]))
	}

	return xa[:HeaderSize], xa[HeaderSize:], pcm
}

func TestDecoder_Golden(t *testing.T) {
	t.Parallel()

	for _, g := range goldens {
		t.Run(g.name, func(t *testing.T) {
			t.Parallel()

			header, payload, want := readGolden(t, g.name)

			dec, err := NewDecoder(header)
			if err != nil {
				t.Fatalf("NewDecoder() error = %v", err)
			}
			if dec.Format().XADataLength() != len(payload) {
				t.Fatalf("payload is %d bytes, header says %d", len(payload), dec.Format().XADataLength())
			}

			got, err := dec.DecodeAll(payload)
			if err != nil {
				t.Fatalf("DecodeAll() error = %v", err)
			}

			if len(got) != dec.Format().PCMSamples() {
				t.Errorf("len = %d, want %d", len(got), dec.Format().PCMSamples())
			}
			if i := firstDiff(got, want); i >= 0 {
				t.Fatalf("sample %d = %d, want %d", i, got[i], want[i])
			}
			if dec.State() != g.state {
				t.Errorf("State() = %+v, want %+v", dec.State(), g.state)
			}
			if dec.Remaining() != 0 {
				t.Errorf("Remaining() = %d, want 0", dec.Remaining())
			}
		})
	}
}

func firstDiff(a, b []int16) int {
	for i := range min(len(a), len(b)) {
		if a[i] != b[i] {
			return i
		}
	}
	if len(a) != len(b) {
		return min(len(a), len(b))
	}
	return -1
}

func TestDecodeBlocks_Passthrough(t *testing.T) {
	t.Parallel()

	payload := make([]byte, 17)
	payload[0] = 0x00
	for i := 1; i < len(payload); i++ {
		payload[i] = byte(i*0x11 + 3)
	}

	f, st, err := ParseHeader(testHeader(Magic, 17, 32, 8000, 4, 1, [4]int16{}))
	if err != nil {
		t.Fatal(err)
	}

	dst := make([]int16, 32)
	n, err := DecodeBlocks(dst, payload, &st, f)
	if err != nil || n != 1 {
		t.Fatalf("DecodeBlocks() = %d, %v, want 1, nil", n, err)
	}

	for i, b := range payload[1:] {
		hi := int16(uint16(b&0xf0) << 8)
		lo := int16(uint16(b&0x0f) << 12)
		if dst[2*i] != hi || dst[2*i+1] != lo {
			t.Errorf("samples %d,%d = %d,%d, want %d,%d", 2*i, 2*i+1, dst[2*i], dst[2*i+1], hi, lo)
		}
	}
}

func TestDecodeBlocks_Deterministic(t *testing.T) {
	t.Parallel()

	header, payload, _ := readGolden(t, "stereo6")
	f, seed, err := ParseHeader(header)
	if err != nil {
		t.Fatal(err)
	}

	run := func() ([]int16, State) {
		st := seed
		dst := make([]int16, int(f.BlockCount*f.PCMBlockSize))
		if _, err := DecodeBlocks(dst, payload, &st, f); err != nil {
			t.Fatal(err)
		}
		return dst, st
	}

	a, sa := run()
	b, sb := run()
	if !slices.Equal(a, b) || sa != sb {
		t.Error("two decodes from the same state differ")
	}
}

func TestDecodeBlocks_ChunkedMatchesWhole(t *testing.T) {
	t.Parallel()

	for _, g := range goldens {
		t.Run(g.name, func(t *testing.T) {
			t.Parallel()

			header, payload, _ := readGolden(t, g.name)
			f, seed, err := ParseHeader(header)
			if err != nil {
				t.Fatal(err)
			}

			total := int(f.BlockCount * f.PCMBlockSize)

			whole := make([]int16, total)
			wholeState := seed
			n, err := DecodeBlocks(whole, payload, &wholeState, f)
			if err != nil || n != int(f.BlockCount) {
				t.Fatalf("DecodeBlocks(whole) = %d, %v", n, err)
			}

			chunked := make([]int16, total)
			chunkState := seed
			xaSize, pcmSize := int(f.XABlockSize), int(f.PCMBlockSize)
			for b := range int(f.BlockCount) {
				n, err := DecodeBlocks(chunked[b*pcmSize:], payload[b*xaSize:(b+1)*xaSize], &chunkState, f)
				if err != nil || n != 1 {
					t.Fatalf("block %d: DecodeBlocks() = %d, %v", b, n, err)
				}
			}

			if i := firstDiff(whole, chunked); i >= 0 {
				t.Fatalf("sample %d differs: whole %d, chunked %d", i, whole[i], chunked[i])
			}
			if wholeState != chunkState || wholeState != g.state {
				t.Errorf("states: whole %+v, chunked %+v, want %+v", wholeState, chunkState, g.state)
			}
		})
	}
}

func TestDecodeBlocks_StopsAtShortBuffer(t *testing.T) {
	t.Parallel()

	header, payload, want := readGolden(t, "mono4")
	f, st, err := ParseHeader(header)
	if err != nil {
		t.Fatal(err)
	}

	// 251 samples: the last block does not fit.
	dst := make([]int16, f.PCMSamples())
	n, err := DecodeBlocks(dst, payload, &st, f)
	if err != nil {
		t.Fatalf("DecodeBlocks() error = %v", err)
	}
	if n != int(f.BlockCount)-1 {
		t.Errorf("decoded %d blocks, want %d", n, f.BlockCount-1)
	}
	if !slices.Equal(dst[:n*32], want[:n*32]) {
		t.Error("decoded blocks differ from golden")
	}

	// Source one byte short of the last block.
	_, st2, _ := ParseHeader(header)
	n, err = DecodeBlocks(make([]int16, 1024), payload[:len(payload)-1], &st2, f)
	if err != nil || n != int(f.BlockCount)-1 {
		t.Errorf("short source: DecodeBlocks() = %d, %v", n, err)
	}
}

func TestDecodeBlocks_StopsAtBlockCount(t *testing.T) {
	t.Parallel()

	header, payload, _ := readGolden(t, "mono8")
	f, st, err := ParseHeader(header)
	if err != nil {
		t.Fatal(err)
	}

	extra := append(bytes.Clone(payload), payload...)
	n, err := DecodeBlocks(make([]int16, 4096), extra, &st, f)
	if err != nil {
		t.Fatal(err)
	}
	if n != int(f.BlockCount) {
		t.Errorf("decoded %d blocks, want %d", n, f.BlockCount)
	}
}

func TestDecodeBlocks_Truncated(t *testing.T) {
	t.Parallel()

	header, payload, _ := readGolden(t, "stereo6")
	f, seed, err := ParseHeader(header)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		dst  int
		src  int
	}{
		{"empty source", 64, 0},
		{"source short of one block", 64, 49},
		{"destination short of one block", 63, 50},
		{"both empty", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			st := seed
			n, err := DecodeBlocks(make([]int16, tt.dst), payload[:tt.src], &st, f)
			if !errors.Is(err, ErrTruncatedInput) || n != 0 {
				t.Errorf("DecodeBlocks() = %d, %v, want 0, ErrTruncatedInput", n, err)
			}
			if st != seed {
				t.Errorf("state changed to %+v", st)
			}
		})
	}
}

func TestDecodeBlocks_CorruptBlock(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		golden  string
		block   int
		channel int
	}{
		{"mono", "mono4", 2, 0},
		{"stereo second channel", "stereo6", 3, 1},
		{"first block", "mono8", 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			header, payload, _ := readGolden(t, tt.golden)
			f, seed, err := ParseHeader(header)
			if err != nil {
				t.Fatal(err)
			}

			// State after the good blocks, for comparison.
			good := seed
			if tt.block > 0 {
				buf := make([]int16, tt.block*int(f.PCMBlockSize))
				if _, err := DecodeBlocks(buf, payload[:tt.block*int(f.XABlockSize)], &good, f); err != nil {
					t.Fatal(err)
				}
			}

			bad := bytes.Clone(payload)
			chSize := int(f.XABlockSize) / int(f.Channels)
			bad[tt.block*int(f.XABlockSize)+tt.channel*chSize] = 0x5c

			st := seed
			dst := make([]int16, int(f.BlockCount*f.PCMBlockSize))
			n, err := DecodeBlocks(dst, bad, &st, f)

			if !errors.Is(err, ErrCorruptBlock) {
				t.Fatalf("error = %v, want ErrCorruptBlock", err)
			}
			var berr *BlockError
			if !errors.As(err, &berr) {
				t.Fatalf("error %T is not *BlockError", err)
			}
			if berr.Block != tt.block || berr.Channel != tt.channel || berr.Profile != 0x5c {
				t.Errorf("BlockError = %+v", berr)
			}
			if n != tt.block {
				t.Errorf("n = %d, want %d", n, tt.block)
			}
			if st != good {
				t.Errorf("state = %+v, want %+v", st, good)
			}
			for i, s := range dst[tt.block*int(f.PCMBlockSize):] {
				if s != 0 {
					t.Fatalf("corrupt block sample %d written: %d", i, s)
				}
			}
		})
	}
}

func TestDecoder_ChunkedDecode(t *testing.T) {
	t.Parallel()

	header, payload, want := readGolden(t, "mono4")
	dec, err := NewDecoder(header)
	if err != nil {
		t.Fatal(err)
	}
	f := dec.Format()

	var got []int16
	buf := make([]int16, 3*int(f.PCMBlockSize))
	src := payload
	for {
		n, err := dec.Decode(buf, src)
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Decode() error = %v", err)
		}
		got = append(got, buf[:n*int(f.PCMBlockSize)]...)
		src = src[n*int(f.XABlockSize):]
	}

	if len(got) != int(f.BlockCount*f.PCMBlockSize) {
		t.Fatalf("decoded %d samples, want %d", len(got), f.BlockCount*f.PCMBlockSize)
	}
	if i := firstDiff(got[:len(want)], want); i >= 0 {
		t.Fatalf("sample %d = %d, want %d", i, got[i], want[i])
	}
}

func TestDecoder_DecodeAllAfterDecode(t *testing.T) {
	t.Parallel()

	header, payload, want := readGolden(t, "stereo6")
	dec, err := NewDecoder(header)
	if err != nil {
		t.Fatal(err)
	}
	f := dec.Format()

	first := make([]int16, 2*int(f.PCMBlockSize))
	n, err := dec.Decode(first, payload)
	if err != nil || n != 2 {
		t.Fatalf("Decode() = %d, %v", n, err)
	}

	rest, err := dec.DecodeAll(payload[n*int(f.XABlockSize):])
	if err != nil {
		t.Fatalf("DecodeAll() error = %v", err)
	}

	got := append(first, rest...)
	if i := firstDiff(got, want); i >= 0 {
		t.Fatalf("sample %d = %d, want %d", i, got[i], want[i])
	}

	if _, err := dec.DecodeAll(nil); err != io.EOF {
		t.Errorf("DecodeAll() at end error = %v, want io.EOF", err)
	}
}

func TestDecoder_DecodeAllShortPayload(t *testing.T) {
	t.Parallel()

	header, payload, _ := readGolden(t, "mono8")
	dec, err := NewDecoder(header)
	if err != nil {
		t.Fatal(err)
	}

	_, err = dec.DecodeAll(payload[:len(payload)-10])
	if !errors.Is(err, ErrTruncatedInput) {
		t.Errorf("DecodeAll() error = %v, want ErrTruncatedInput", err)
	}
}

func TestDecoder_DecodeAllShortPayloadKeepsState(t *testing.T) {
	t.Parallel()

	header, payload, want := readGolden(t, "stereo6")
	dec, err := NewDecoder(header)
	if err != nil {
		t.Fatal(err)
	}
	before, remaining := dec.State(), dec.Remaining()

	_, err = dec.DecodeAll(payload[:len(payload)-1])
	if !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("DecodeAll() error = %v, want ErrTruncatedInput", err)
	}
	if dec.State() != before || dec.Remaining() != remaining {
		t.Errorf("decoder advanced on a short payload: state %+v remaining %d", dec.State(), dec.Remaining())
	}

	got, err := dec.DecodeAll(payload)
	if err != nil {
		t.Fatalf("DecodeAll() retry error = %v", err)
	}
	if !slices.Equal(got, want) {
		t.Error("retry after a short payload differs from golden output")
	}
}

// Not parallel: the heap counters must not see other tests.
func TestDecoder_DecodeAllShortPayloadAllocation(t *testing.T) {
	const blocks = 10_000_000

	header := make([]byte, HeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], Magic)
	binary.LittleEndian.PutUint32(header[4:8], blocks*17)
	binary.LittleEndian.PutUint32(header[8:12], blocks*BlockSamples)
	binary.LittleEndian.PutUint16(header[12:14], 22050)
	header[14], header[15] = 4, 1

	dec, err := NewDecoder(header)
	if err != nil {
		t.Fatal(err)
	}

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	_, err = dec.DecodeAll(make([]byte, 17))
	runtime.ReadMemStats(&after)

	if !errors.Is(err, ErrTruncatedInput) {
		t.Fatalf("DecodeAll() error = %v, want ErrTruncatedInput", err)
	}
	if got := after.TotalAlloc - before.TotalAlloc; got > 1<<20 {
		t.Errorf("DecodeAll() allocated %d bytes for a one-block payload", got)
	}
}

func TestDecoder_Reset(t *testing.T) {
	t.Parallel()

	header, payload, want := readGolden(t, "mono8")
	dec, err := NewDecoder(header)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := dec.DecodeAll(payload); err != nil {
		t.Fatal(err)
	}

	bad := bytes.Clone(header)
	bad[0] = 'X'
	if err := dec.Reset(bad); !errors.Is(err, ErrInvalidHeader) {
		t.Fatalf("Reset(bad) error = %v", err)
	}
	if dec.Remaining() != 0 {
		t.Error("failed Reset changed the decoder")
	}

	if err := dec.Reset(header); err != nil {
		t.Fatal(err)
	}
	got, err := dec.DecodeAll(payload)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, want) {
		t.Error("decode after Reset differs from golden")
	}
}

func TestNewDecoder_InvalidHeader(t *testing.T) {
	t.Parallel()

	dec, err := NewDecoder(testHeader(Magic, 17, 32, 8000, 5, 1, [4]int16{}))
	if dec != nil || !errors.Is(err, ErrInvalidHeader) {
		t.Errorf("NewDecoder() = %v, %v", dec, err)
	}
}

func TestDecodeBlocks_ZeroAllocs(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping allocation test in short mode")
	}

	header, payload, _ := readGolden(t, "stereo6")
	f, seed, err := ParseHeader(header)
	if err != nil {
		t.Fatal(err)
	}
	dst := make([]int16, int(f.BlockCount*f.PCMBlockSize))

	allocs := testing.AllocsPerRun(100, func() {
		st := seed
		_, _ = DecodeBlocks(dst, payload, &st, f)
	})

	if allocs > 0 {
		t.Errorf("DecodeBlocks allocated %v times, want 0", allocs)
	}
}

func BenchmarkDecodeBlocks(b *testing.B) {
	for _, g := range goldens {
		b.Run(g.name, func(b *testing.B) {
			header, payload, _ := readGolden(b, g.name)
			f, seed, err := ParseHeader(header)
			if err != nil {
				b.Fatal(err)
			}
			dst := make([]int16, int(f.BlockCount*f.PCMBlockSize))

			b.SetBytes(int64(len(payload)))
			b.ReportAllocs()

			for b.Loop() {
				st := seed
				_, _ = DecodeBlocks(dst, payload, &st, f)
			}
		})
	}
}

func BenchmarkParseHeader(b *testing.B) {
	hdr := testHeader(Magic, 17*2*100, 3200, 22050, 4, 2, [4]int16{})

	b.ReportAllocs()

	for b.Loop() {
		_, _, _ = ParseHeader(hdr)
	}
}
