// SPDX-License-Identifier: EPL-2.0

package processing

import (
	"fmt"
	"math"
	"os"

	"github.com/ik5/audpipe/audio"
)

// Accepted ranges for configuration values.
const (
	MinSampleRate = 8000
	MaxSampleRate = 192000
	MaxChannels   = 32
)

// invalidf reports a configuration error that matches both family and
// audio.ErrInvalidConfiguration.
func invalidf(family error, format string, args ...any) error {
	return fmt.Errorf("%w: %w: %s", family, audio.ErrInvalidConfiguration, fmt.Sprintf(format, args...))
}

func validateSampleRate(family error, rate uint32) error {
	if rate < MinSampleRate || rate > MaxSampleRate {
		return invalidf(family, "sample rate %d outside [%d, %d]", rate, MinSampleRate, MaxSampleRate)
	}

	return nil
}

func validateChannels(family error, channels uint16) error {
	if channels == 0 || channels > MaxChannels {
		return invalidf(family, "channel count %d outside [1, %d]", channels, MaxChannels)
	}

	return nil
}

func validateFinite(family error, name string, v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return invalidf(family, "%s is not a finite number", name)
	}

	return nil
}

func validateDirectory(family error, dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("%w: %w: output directory: %w", family, audio.ErrInvalidConfiguration, err)
	}

	if !info.IsDir() {
		return invalidf(family, "output directory %q is not a directory", dir)
	}

	return nil
}

// dbToLinear converts decibels relative to full scale into an amplitude.
func dbToLinear(db float64) float32 {
	return float32(math.Pow(10, db/20))
}

// linearToDB is the inverse of dbToLinear. Silence maps to -Inf.
func linearToDB(v float32) float64 {
	return 20 * math.Log10(float64(v))
}
