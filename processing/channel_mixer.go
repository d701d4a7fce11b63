// SPDX-License-Identifier: EPL-2.0

package processing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/audpipe/audio"
)

// ChannelMixer converts between channel layouts. Any layout folds to mono
// by averaging; the other mix algorithms need stereo input. Mono expands
// to any layout by duplication.
type ChannelMixer struct {
	cfg    ChannelMixerConfig
	logger *zap.Logger
}

func NewChannelMixer(cfg ChannelMixerConfig, opts ...Option) (*ChannelMixer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	return &ChannelMixer{cfg: *cfg.clone(), logger: o.logger}, nil
}

func (m *ChannelMixer) Process(buf *audio.Buffer) error {
	if m.cfg.TargetChannels == nil {
		return nil
	}

	return m.Mix(buf, *m.cfg.TargetChannels)
}

// Mix converts buf to target channels in place.
func (m *ChannelMixer) Mix(buf *audio.Buffer, target uint16) error {
	if buf.Channels == target {
		return nil
	}

	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrChannelMixer, err)
	}

	from := buf.Channels

	switch {
	case target == 1:
		data, err := m.downmix(buf.Data, int(from))
		if err != nil {
			return err
		}
		buf.Data = data
	case from == 1:
		buf.Data = upmix(buf.Data, int(target))
	default:
		return fmt.Errorf("%w: cannot convert %d channels to %d", ErrChannelMixer, from, target)
	}

	buf.Channels = target

	m.logger.Debug("mixed channels",
		zap.Uint16("from", from),
		zap.Uint16("to", target),
		zap.Stringer("algorithm", m.cfg.MixAlgorithm.Kind),
	)

	return nil
}

// downmix folds interleaved frames into mono, reusing data's storage.
func (m *ChannelMixer) downmix(data []float32, channels int) ([]float32, error) {
	frames := len(data) / channels
	alg := m.cfg.MixAlgorithm

	if alg.Kind != MixAverage && channels != 2 {
		return nil, fmt.Errorf("%w: %s mixing needs stereo input, got %d channels",
			ErrChannelMixer, alg.Kind, channels)
	}

	switch alg.Kind {
	case MixLeftOnly:
		for f := range frames {
			data[f] = data[f<<1]
		}
	case MixRightOnly:
		for f := range frames {
			data[f] = data[f<<1+1]
		}
	case MixWeightedSum:
		lw, rw := float32(alg.LeftWeight), float32(alg.RightWeight)
		for f := range frames {
			idx := f << 1
			data[f] = data[idx]*lw + data[idx+1]*rw
		}
	default:
		averageFrames(data, channels, frames)
	}

	return data[:frames], nil
}

// averageFrames writes the mean of each frame to data[f]. Frame f is read
// before slot f is written, so the fold can run in place.
func averageFrames(data []float32, channels, frames int) {
	// Optimize: cache division result
	invChannels := float32(1.0) / float32(channels)

	// Unrolled loop for common cases
	switch channels {
	case 2: // Stereo (most common)
		for f := range frames {
			idx := f << 1 // f * 2
			data[f] = (data[idx] + data[idx+1]) * 0.5
		}
	case 4: // Quad
		for f := range frames {
			idx := f << 2 // f * 4
			sum := data[idx] + data[idx+1] + data[idx+2] + data[idx+3]
			data[f] = sum * 0.25
		}
	default: // Generic path
		for f := range frames {
			sum := float32(0)
			baseIdx := f * channels
			for c := range channels {
				sum += data[baseIdx+c]
			}
			data[f] = sum * invChannels
		}
	}
}

func upmix(data []float32, channels int) []float32 {
	out := make([]float32, len(data)*channels)
	for f, s := range data {
		base := f * channels
		for c := range channels {
			out[base+c] = s
		}
	}

	return out
}

// Reset is a no-op; the mixer keeps no state between buffers.
func (m *ChannelMixer) Reset() {}

func (m *ChannelMixer) Validate() error { return m.cfg.Validate() }

func (m *ChannelMixer) LatencySamples() int { return 0 }

func (m *ChannelMixer) Configure(cfg ChannelMixerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	m.cfg = *cfg.clone()

	return nil
}

func (m *ChannelMixer) Config() ChannelMixerConfig { return *m.cfg.clone() }
