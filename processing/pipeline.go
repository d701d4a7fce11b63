// SPDX-License-Identifier: EPL-2.0

package processing

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/ik5/audpipe/audio"
)

type namedStage struct {
	name string
	Processor
}

// Pipeline runs the configured stages in a fixed order: resampler,
// channel mixer, normalizer, silence detector. The output stage is built
// but not run by Process; callers pass the result to Output().
//
// A Pipeline is not safe for concurrent use. Build one per goroutine.
type Pipeline struct {
	cfg    ProcessingConfig
	opts   []Option
	logger *zap.Logger

	stages []namedStage
	output *OutputStage
}

func NewPipeline(cfg ProcessingConfig, opts ...Option) (*Pipeline, error) {
	p := &Pipeline{opts: opts, logger: applyOptions(opts).logger}
	if err := p.Configure(cfg); err != nil {
		return nil, err
	}

	return p, nil
}

// Process runs every enabled stage over buf. The first failure stops the
// run and names the stage.
func (p *Pipeline) Process(buf *audio.Buffer) error {
	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrPipeline, err)
	}

	for _, st := range p.stages {
		if err := st.Process(buf); err != nil {
			return fmt.Errorf("%w: %s: %w", ErrPipeline, st.name, err)
		}

		p.logger.Debug("stage done",
			zap.String("stage", st.name),
			zap.Uint32("sample_rate", buf.SampleRate),
			zap.Uint16("channels", buf.Channels),
			zap.Int("frames", buf.Frames()),
		)
	}

	return nil
}

func (p *Pipeline) Reset() {
	for _, st := range p.stages {
		st.Reset()
	}
	p.output.Reset()
}

func (p *Pipeline) Validate() error {
	for _, st := range p.stages {
		if err := st.Validate(); err != nil {
			return err
		}
	}

	return p.output.Validate()
}

// TotalLatency sums the latency of the enabled stages.
func (p *Pipeline) TotalLatency() int {
	total := p.output.LatencySamples()
	for _, st := range p.stages {
		total += st.LatencySamples()
	}

	return total
}

// LatencySamples is TotalLatency.
func (p *Pipeline) LatencySamples() int { return p.TotalLatency() }

// Configure validates cfg and rebuilds every stage from it. On error the
// previous stages stay in place.
func (p *Pipeline) Configure(cfg ProcessingConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg = cfg.Clone()

	var stages []namedStage

	if cfg.Resampler != nil {
		r, err := NewLinearResampler(*cfg.Resampler, p.opts...)
		if err != nil {
			return err
		}
		stages = append(stages, namedStage{"resampler", r})
	}

	if cfg.ChannelMixer != nil {
		m, err := NewChannelMixer(*cfg.ChannelMixer, p.opts...)
		if err != nil {
			return err
		}
		stages = append(stages, namedStage{"channel mixer", m})
	}

	if cfg.Normalizer != nil {
		n, err := NewNormalizer(*cfg.Normalizer, p.opts...)
		if err != nil {
			return err
		}
		stages = append(stages, namedStage{"normalizer", n})
	}

	if cfg.SilenceDetector != nil {
		d, err := NewSilenceDetector(*cfg.SilenceDetector, p.opts...)
		if err != nil {
			return err
		}
		stages = append(stages, namedStage{"silence detector", d})
	}

	out, err := NewOutputStage(cfg.Output, p.opts...)
	if err != nil {
		return err
	}

	p.cfg, p.stages, p.output = cfg, stages, out

	return nil
}

func (p *Pipeline) Config() ProcessingConfig { return p.cfg.Clone() }

// Output returns the output stage built from the config.
func (p *Pipeline) Output() *OutputStage { return p.output }

// StageNames lists the enabled stages in run order.
func (p *Pipeline) StageNames() []string {
	names := make([]string, len(p.stages))
	for i, st := range p.stages {
		names[i] = st.name
	}

	return names
}
