// SPDX-License-Identifier: EPL-2.0

package processing

// ResamplerConfig configures the LinearResampler. A nil TargetSampleRate
// leaves the rate untouched.
type ResamplerConfig struct {
	TargetSampleRate *uint32         `yaml:"target_sample_rate"`
	Quality          ResampleQuality `yaml:"quality"`
	PreserveDuration bool            `yaml:"preserve_duration"`
	AntiAliasing     bool            `yaml:"anti_aliasing"`
}

func DefaultResamplerConfig() ResamplerConfig {
	rate := uint32(44100)

	return ResamplerConfig{
		TargetSampleRate: &rate,
		Quality:          QualityMedium,
		AntiAliasing:     true,
	}
}

func (c ResamplerConfig) Validate() error {
	if c.TargetSampleRate != nil {
		return validateSampleRate(ErrResampler, *c.TargetSampleRate)
	}

	return nil
}

func (c ResamplerConfig) WithTargetSampleRate(rate uint32) ResamplerConfig {
	c.TargetSampleRate = &rate
	return c
}

func (c ResamplerConfig) WithQuality(q ResampleQuality) ResamplerConfig {
	c.Quality = q
	return c
}

func (c ResamplerConfig) clone() *ResamplerConfig {
	if c.TargetSampleRate != nil {
		rate := *c.TargetSampleRate
		c.TargetSampleRate = &rate
	}

	return &c
}
