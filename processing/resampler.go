// SPDX-License-Identifier: EPL-2.0

package processing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/utils"
)

// kernel resamples interleaved frames from one rate to another.
type kernel func(src []float32, channels int, from, to uint32) ([]float32, error)

// LinearResampler converts sample rates by picking, for every output
// frame, the nearest earlier input frame. It is stateless between calls.
type LinearResampler struct {
	cfg    ResamplerConfig
	logger *zap.Logger
}

func NewLinearResampler(cfg ResamplerConfig, opts ...Option) (*LinearResampler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	return &LinearResampler{cfg: *cfg.clone(), logger: o.logger}, nil
}

// Process resamples buf to the configured target rate.
func (r *LinearResampler) Process(buf *audio.Buffer) error {
	if r.cfg.TargetSampleRate == nil {
		return nil
	}

	return r.Resample(buf, *r.cfg.TargetSampleRate)
}

// Resample replaces buf's data and rate with a version at target Hz.
// Equal rates leave buf untouched.
func (r *LinearResampler) Resample(buf *audio.Buffer, target uint32) error {
	if buf.SampleRate == target {
		return nil
	}

	if buf.SampleRate == 0 || target == 0 {
		return invalidf(ErrResampler, "cannot resample %d Hz to %d Hz", buf.SampleRate, target)
	}

	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrResampler, err)
	}

	out, err := resampleKernel(buf.Data, int(buf.Channels), buf.SampleRate, target)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrResampler, err)
	}

	r.logger.Debug("resampled",
		zap.Uint32("from", buf.SampleRate),
		zap.Uint32("to", target),
		zap.Int("in_samples", len(buf.Data)),
		zap.Int("out_samples", len(out)),
	)

	buf.Data = out
	buf.SampleRate = target

	return nil
}

// Reset is a no-op.
func (r *LinearResampler) Reset() {}

func (r *LinearResampler) Validate() error { return r.cfg.Validate() }

// LatencySamples is the one-frame lookbehind of the interpolation.
func (r *LinearResampler) LatencySamples() int { return 1 }

func (r *LinearResampler) Configure(cfg ResamplerConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	r.cfg = *cfg.clone()

	return nil
}

func (r *LinearResampler) Config() ResamplerConfig { return *r.cfg.clone() }

// Ratio returns to/from.
func Ratio(from, to uint32) (float64, error) {
	if from == 0 || to == 0 {
		return 0, invalidf(ErrResampler, "cannot resample %d Hz to %d Hz", from, to)
	}

	return float64(to) / float64(from), nil
}

// OutputFrames returns round(inFrames * to/from), the frame count
// Resample produces.
func OutputFrames(inFrames int, from, to uint32) (int, error) {
	ratio, err := Ratio(from, to)
	if err != nil {
		return 0, err
	}

	n, err := utils.IntToFloat64(inFrames)
	if err != nil {
		return 0, err
	}

	return utils.Float64ToInt(n * ratio)
}

// resampleScalar is the reference kernel.
func resampleScalar(src []float32, channels int, from, to uint32) ([]float32, error) {
	inFrames := len(src) / channels

	outFrames, err := OutputFrames(inFrames, from, to)
	if err != nil {
		return nil, err
	}

	out := make([]float32, outFrames*channels)
	if inFrames == 0 {
		return out, nil
	}

	step := float64(from) / float64(to)
	last := inFrames - 1

	for i := range outFrames {
		sf, err := utils.Float64ToIntFloor(float64(i) * step)
		if err != nil {
			return nil, err
		}

		// Past the end, repeat the channel's last frame.
		base := min(sf, last) * channels
		copy(out[i*channels:(i+1)*channels], src[base:base+channels])
	}

	return out, nil
}
