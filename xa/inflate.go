// SPDX-License-Identifier: EPL-2.0

package xa

// inflater unpacks the residuals of one channel block. src is the block
// payload after the profile byte; residuals land in the high bits of
// dst[0], dst[stride], ... dst[31*stride].
type inflater func(dst []int16, stride int, src []byte)

func inflaterFor(d BitDepth) inflater {
	switch d {
	case Depth4:
		return inflate4
	case Depth6:
		return inflate6
	case Depth8:
		return inflate8
	}
	return nil
}

// inflate4 reads two residuals per byte, high nibble first.
func inflate4(dst []int16, stride int, src []byte) {
	_ = src[BlockSamples/2-1]
	_ = dst[(BlockSamples-1)*stride]

	off := 0
	for _, s := range src[:BlockSamples/2] {
		dst[off] = int16(uint16(s&0xf0) << 8)
		dst[off+stride] = int16(uint16(s&0x0f) << 12)
		off += 2 * stride
	}
}

// inflate6 reads four residuals from every big-endian 24-bit group.
// Each 6-bit field is moved to bits 10-15 with its own shift.
func inflate6(dst []int16, stride int, src []byte) {
	_ = src[BlockSamples/4*3-1]
	_ = dst[(BlockSamples-1)*stride]

	off := 0
	for i := 0; i < BlockSamples/4*3; i += 3 {
		s := uint32(src[i])<<16 | uint32(src[i+1])<<8 | uint32(src[i+2])

		dst[off] = int16(uint16((s & 0x00fc0000) >> 8))
		off += stride
		dst[off] = int16(uint16((s & 0x0003f000) >> 2))
		off += stride
		dst[off] = int16(uint16((s & 0x00000fc0) << 4))
		off += stride
		dst[off] = int16(uint16((s & 0x0000003f) << 10))
		off += stride
	}
}

// inflate8 makes each byte the high byte of one residual.
func inflate8(dst []int16, stride int, src []byte) {
	_ = src[BlockSamples-1]
	_ = dst[(BlockSamples-1)*stride]

	off := 0
	for _, s := range src[:BlockSamples] {
		dst[off] = int16(uint16(s) << 8)
		off += stride
	}
}
