// SPDX-License-Identifier: EPL-2.0

package utils

// Float32ToInt16 clamps x to [-1, 1] and scales it to 16-bit PCM.
func Float32ToInt16(x float32) int16 {
	// Clamp and scale
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// Use 32767 for positive max to avoid overflow
	return int16(x * 32767.0)
}

// PCMMax returns the symmetric full-scale value for a signed bit depth,
// or 0 when the depth is not one of 8, 16, 24 or 32.
func PCMMax(bitDepth int) int {
	switch bitDepth {
	case 8:
		return 127
	case 16:
		return 32767
	case 24:
		return 8388607
	case 32:
		return 2147483647
	default:
		return 0
	}
}

// Float32ToPCM clamps x to [-1, 1] and scales it to a signed integer
// of the given bit depth. Unknown depths yield 0.
func Float32ToPCM(x float32, bitDepth int) int {
	if x > 1 {
		x = 1
	} else if x < -1 {
		x = -1
	}

	// float64 keeps 32-bit full scale exact.
	return int(float64(x) * float64(PCMMax(bitDepth)))
}
