// SPDX-License-Identifier: EPL-2.0

package xa

import "github.com/ik5/xadpcm/utils"

// gainFactors are the (k0, k1) predictor coefficients in 1/256 units,
// indexed by the high nibble of a profile byte.
var gainFactors = [5][2]int32{
	{0, 0},
	{240, 0},
	{460, -208},
	{392, -220},
	{488, -240},
}

// GainFactor returns the coefficient pair of a filter index.
func GainFactor(index int) (k0, k1 int32, ok bool) {
	if index < 0 || index >= len(gainFactors) {
		return 0, 0, false
	}
	return gainFactors[index][0], gainFactors[index][1], true
}

// validProfile reports whether the filter index of profile is in the table.
func validProfile(profile byte) bool {
	return int(profile>>4) < len(gainFactors)
}

// predict turns the inflated residuals of one channel into samples in
// place and advances the channel history. profile must be valid.
func predict(pcm []int16, stride int, profile byte, st *PredictorState) {
	k := gainFactors[profile>>4]
	k0, k1 := k[0], k[1]
	shift := profile & 0x0f

	prev0, prev1 := int32(st.Prev0), int32(st.Prev1)

	off := 0
	for range BlockSamples {
		ranged := int32(pcm[off] >> shift)
		// Go's integer division truncates toward zero.
		gain := (prev0*k0 + prev1*k1) / 256

		sample := utils.ClampInt16(ranged + gain)
		pcm[off] = sample

		prev1 = prev0
		prev0 = int32(sample)
		off += stride
	}

	st.Prev0 = int16(prev0)
	st.Prev1 = int16(prev1)
}
