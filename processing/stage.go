// SPDX-License-Identifier: EPL-2.0

package processing

import "github.com/ik5/audpipe/audio"

// Processor is the part of the stage contract that does not depend on the
// config type.
//
// Process mutates buf in place. After an error the buffer contents must
// not be trusted, but the stage itself stays usable.
type Processor interface {
	Process(buf *audio.Buffer) error
	Reset()
	Validate() error
	LatencySamples() int
}

// Stage is a Processor whose configuration can be swapped at runtime.
// Configure validates before replacing anything.
type Stage[C any] interface {
	Processor
	Configure(cfg C) error
	Config() C
}

var (
	_ Stage[ResamplerConfig]       = (*LinearResampler)(nil)
	_ Stage[ChannelMixerConfig]    = (*ChannelMixer)(nil)
	_ Stage[NormalizerConfig]      = (*Normalizer)(nil)
	_ Stage[SilenceDetectorConfig] = (*SilenceDetector)(nil)
	_ Stage[OutputConfig]          = (*OutputStage)(nil)
	_ Stage[ProcessingConfig]      = (*Pipeline)(nil)
)
