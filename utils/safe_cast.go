// SPDX-License-Identifier: EPL-2.0

package utils

import (
	"math"
	"time"
)

// MaxExactInt is the largest integer a float64 represents without loss.
const MaxExactInt = 1 << 53

// IntToFloat64 converts a sample count to float64.
// Counts above MaxExactInt would silently lose precision and are rejected.
func IntToFloat64(n int) (float64, error) {
	if n < 0 {
		return 0, newConversionError("IntToFloat64", float64(n), BoundNegative)
	}

	if int64(n) > MaxExactInt {
		return 0, newConversionError("IntToFloat64", float64(n), BoundOverflow)
	}

	return float64(n), nil
}

// Float64ToInt rounds v to the nearest sample count, half away from zero.
func Float64ToInt(v float64) (int, error) {
	return toInt("Float64ToInt", math.Round(v), v)
}

// Float64ToIntFloor truncates v toward negative infinity.
// Used for source frame lookups, where rounding up would read ahead.
func Float64ToIntFloor(v float64) (int, error) {
	return toInt("Float64ToIntFloor", math.Floor(v), v)
}

func toInt(fn string, r, orig float64) (int, error) {
	switch {
	case math.IsNaN(orig) || math.IsInf(orig, 0):
		return 0, newConversionError(fn, orig, BoundNotFinite)
	case r < 0:
		return 0, newConversionError(fn, orig, BoundNegative)
	case r > MaxExactInt || r > float64(math.MaxInt):
		return 0, newConversionError(fn, orig, BoundOverflow)
	}

	return int(r), nil
}

// Float64ToUint64 rounds v into a tick count.
func Float64ToUint64(v float64) (uint64, error) {
	const fn = "Float64ToUint64"

	r := math.Round(v)
	switch {
	case math.IsNaN(v) || math.IsInf(v, 0):
		return 0, newConversionError(fn, v, BoundNotFinite)
	case r < 0:
		return 0, newConversionError(fn, v, BoundNegative)
	// 2^64 is exactly representable; anything at or above it wraps.
	case r >= math.MaxUint64:
		return 0, newConversionError(fn, v, BoundOverflow)
	}

	return uint64(r), nil
}

// SecondsToSamples returns the number of frames covering sec at rate.
func SecondsToSamples(sec float64, rate uint32) (int, error) {
	if rate == 0 {
		return 0, newConversionError("SecondsToSamples", 0, BoundZeroDivisor)
	}

	return Float64ToInt(sec * float64(rate))
}

// DurationToSamples is SecondsToSamples for a time.Duration.
func DurationToSamples(d time.Duration, rate uint32) (int, error) {
	return SecondsToSamples(d.Seconds(), rate)
}

// SamplesToSeconds converts a frame count at rate into seconds.
func SamplesToSeconds(n int, rate uint32) (float64, error) {
	if rate == 0 {
		return 0, newConversionError("SamplesToSeconds", float64(n), BoundZeroDivisor)
	}

	f, err := IntToFloat64(n)
	if err != nil {
		return 0, err
	}

	return f / float64(rate), nil
}

// Ratio returns part/total, e.g. for progress or silence percentages.
func Ratio(part, total int) (float64, error) {
	if total == 0 {
		return 0, newConversionError("Ratio", float64(part), BoundZeroDivisor)
	}

	p, err := IntToFloat64(part)
	if err != nil {
		return 0, err
	}

	t, err := IntToFloat64(total)
	if err != nil {
		return 0, err
	}

	return p / t, nil
}
