// SPDX-License-Identifier: EPL-2.0

package processing

// NormalizerConfig configures the Normalizer. Levels are in dBFS.
type NormalizerConfig struct {
	TargetLoudness float64 `yaml:"target_loudness"`
	PeakLevel      float64 `yaml:"peak_level"`
	// UsePeakNormalization forces NormalizePeak regardless of Algorithm.
	UsePeakNormalization bool                   `yaml:"use_peak_normalization"`
	EnableLimiting       bool                   `yaml:"enable_limiting"`
	Algorithm            NormalizationAlgorithm `yaml:"algorithm"`
	HeadroomDB           float64                `yaml:"headroom_db"`
}

func DefaultNormalizerConfig() NormalizerConfig {
	return NormalizerConfig{
		TargetLoudness:       -16,
		PeakLevel:            -1,
		UsePeakNormalization: true,
		EnableLimiting:       true,
		Algorithm:            NormalizePeak,
		HeadroomDB:           1,
	}
}

func (c NormalizerConfig) Validate() error {
	for _, v := range []struct {
		name string
		v    float64
	}{
		{"target loudness", c.TargetLoudness},
		{"peak level", c.PeakLevel},
		{"headroom", c.HeadroomDB},
	} {
		if err := validateFinite(ErrNormalizer, v.name, v.v); err != nil {
			return err
		}
	}

	switch {
	case c.TargetLoudness > 0:
		return invalidf(ErrNormalizer, "target loudness must not be positive, got %v", c.TargetLoudness)
	case c.PeakLevel > 0:
		return invalidf(ErrNormalizer, "peak level must not be positive, got %v dB", c.PeakLevel)
	case c.HeadroomDB < 0:
		return invalidf(ErrNormalizer, "headroom must not be negative, got %v dB", c.HeadroomDB)
	}

	return nil
}

// algorithm resolves UsePeakNormalization.
func (c NormalizerConfig) algorithm() NormalizationAlgorithm {
	if c.UsePeakNormalization {
		return NormalizePeak
	}

	return c.Algorithm
}

func (c NormalizerConfig) WithTargetLoudness(db float64) NormalizerConfig {
	c.TargetLoudness = db
	return c
}

// WithAlgorithm also clears UsePeakNormalization so the choice sticks.
func (c NormalizerConfig) WithAlgorithm(a NormalizationAlgorithm) NormalizerConfig {
	c.Algorithm = a
	c.UsePeakNormalization = a == NormalizePeak
	return c
}

func (c NormalizerConfig) WithLimiting(enabled bool) NormalizerConfig {
	c.EnableLimiting = enabled
	return c
}

func (c NormalizerConfig) WithHeadroom(db float64) NormalizerConfig {
	c.HeadroomDB = db
	return c
}
