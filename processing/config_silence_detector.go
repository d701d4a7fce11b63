// SPDX-License-Identifier: EPL-2.0

package processing

import "time"

// SilenceDetectorConfig configures the SilenceDetector.
type SilenceDetectorConfig struct {
	// ThresholdDB is the level at or below which a frame counts as silent.
	ThresholdDB float64 `yaml:"threshold_db"`
	// MinDuration is the shortest run of silent frames that is reported.
	MinDuration time.Duration `yaml:"min_duration"`
	// FadeDuration is the ramp applied where audio was cut.
	FadeDuration time.Duration      `yaml:"fade_duration"`
	RemovalMode  SilenceRemovalMode `yaml:"removal_mode"`
}

func DefaultSilenceDetectorConfig() SilenceDetectorConfig {
	return SilenceDetectorConfig{
		ThresholdDB:  -40,
		MinDuration:  500 * time.Millisecond,
		FadeDuration: 10 * time.Millisecond,
		RemovalMode:  RemoveLeadingTrailing,
	}
}

func (c SilenceDetectorConfig) Validate() error {
	if err := validateFinite(ErrSilenceDetector, "threshold", c.ThresholdDB); err != nil {
		return err
	}

	switch {
	case c.ThresholdDB > 0:
		return invalidf(ErrSilenceDetector, "threshold must not be positive, got %v dB", c.ThresholdDB)
	case c.MinDuration <= 0:
		return invalidf(ErrSilenceDetector, "minimum duration must be positive, got %v", c.MinDuration)
	case c.FadeDuration < 0:
		return invalidf(ErrSilenceDetector, "fade duration must not be negative, got %v", c.FadeDuration)
	case c.FadeDuration > c.MinDuration:
		return invalidf(ErrSilenceDetector, "fade duration %v exceeds minimum duration %v", c.FadeDuration, c.MinDuration)
	}

	return nil
}

func (c SilenceDetectorConfig) WithThreshold(db float64) SilenceDetectorConfig {
	c.ThresholdDB = db
	return c
}

func (c SilenceDetectorConfig) WithMinDuration(d time.Duration) SilenceDetectorConfig {
	c.MinDuration = d
	return c
}

func (c SilenceDetectorConfig) WithRemovalMode(m SilenceRemovalMode) SilenceDetectorConfig {
	c.RemovalMode = m
	return c
}
