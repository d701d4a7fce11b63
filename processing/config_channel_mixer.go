// SPDX-License-Identifier: EPL-2.0

package processing

// MixAlgorithm folds stereo into mono. The weights are only read for
// MixWeightedSum.
type MixAlgorithm struct {
	Kind        MixKind `yaml:"kind"`
	LeftWeight  float64 `yaml:"left_weight,omitempty"`
	RightWeight float64 `yaml:"right_weight,omitempty"`
}

// WeightedSum returns a MixWeightedSum algorithm.
func WeightedSum(left, right float64) MixAlgorithm {
	return MixAlgorithm{Kind: MixWeightedSum, LeftWeight: left, RightWeight: right}
}

// ChannelMixerConfig configures the ChannelMixer. A nil TargetChannels
// leaves the layout untouched.
type ChannelMixerConfig struct {
	TargetChannels *uint16      `yaml:"target_channels"`
	MixAlgorithm   MixAlgorithm `yaml:"mix_algorithm"`
}

func DefaultChannelMixerConfig() ChannelMixerConfig {
	mono := uint16(1)

	return ChannelMixerConfig{
		TargetChannels: &mono,
		MixAlgorithm:   MixAlgorithm{Kind: MixAverage},
	}
}

func (c ChannelMixerConfig) Validate() error {
	if c.TargetChannels != nil {
		if err := validateChannels(ErrChannelMixer, *c.TargetChannels); err != nil {
			return err
		}
	}

	if c.MixAlgorithm.Kind != MixWeightedSum {
		return nil
	}

	l, r := c.MixAlgorithm.LeftWeight, c.MixAlgorithm.RightWeight
	switch {
	case !(l >= 0 && l <= 1):
		return invalidf(ErrChannelMixer, "left weight %v outside [0, 1]", l)
	case !(r >= 0 && r <= 1):
		return invalidf(ErrChannelMixer, "right weight %v outside [0, 1]", r)
	case l+r > 1:
		return invalidf(ErrChannelMixer, "weights sum to %.2f, which would clip", l+r)
	}

	return nil
}

func (c ChannelMixerConfig) WithTargetChannels(n uint16) ChannelMixerConfig {
	c.TargetChannels = &n
	return c
}

func (c ChannelMixerConfig) WithMixAlgorithm(a MixAlgorithm) ChannelMixerConfig {
	c.MixAlgorithm = a
	return c
}

func (c ChannelMixerConfig) clone() *ChannelMixerConfig {
	if c.TargetChannels != nil {
		n := *c.TargetChannels
		c.TargetChannels = &n
	}

	return &c
}
