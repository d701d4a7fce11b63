// SPDX-License-Identifier: EPL-2.0

package audio

// StandardSampleRates lists the rates commonly found in audio files.
var StandardSampleRates = []uint32{
	8000, 11025, 16000, 22050, 32000, 44100, 48000, 88200, 96000, 176400, 192000,
}

// IsStandardRate reports whether rate appears in StandardSampleRates.
func IsStandardRate(rate uint32) bool {
	for _, r := range StandardSampleRates {
		if r == rate {
			return true
		}
	}

	return false
}

// ClosestStandardRate returns the standard rate nearest to rate.
// Ties resolve to the lower rate.
func ClosestStandardRate(rate uint32) uint32 {
	best := StandardSampleRates[0]
	bestDiff := absDiff(rate, best)

	for _, r := range StandardSampleRates[1:] {
		if d := absDiff(rate, r); d < bestDiff {
			best, bestDiff = r, d
		}
	}

	return best
}

func absDiff(a, b uint32) uint32 {
	if a > b {
		return a - b
	}

	return b - a
}
