// SPDX-License-Identifier: EPL-2.0

package processing

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/ik5/audpipe/audio"
)

// ProcessingConfig is the full pipeline configuration. Stage configs left
// nil disable that stage; Output is always used.
//
// NumThreads and EnableParallel are hints for callers processing many
// files at once. They never split a single buffer.
type ProcessingConfig struct {
	Resampler       *ResamplerConfig       `yaml:"resampler,omitempty"`
	ChannelMixer    *ChannelMixerConfig    `yaml:"channel_mixer,omitempty"`
	Normalizer      *NormalizerConfig      `yaml:"normalizer,omitempty"`
	SilenceDetector *SilenceDetectorConfig `yaml:"silence_detector,omitempty"`
	Output          OutputConfig           `yaml:"output"`
	NumThreads      *int                   `yaml:"num_threads,omitempty"`
	EnableParallel  bool                   `yaml:"enable_parallel"`
}

// DefaultProcessingConfig enables no stages, writes 16-bit WAV and allows
// parallel batch processing.
func DefaultProcessingConfig() ProcessingConfig {
	return ProcessingConfig{
		Output:         DefaultOutputConfig(),
		EnableParallel: true,
	}
}

// Validate checks each configured stage on its own and stops at the first
// failure. Stages are not checked against each other.
func (c ProcessingConfig) Validate() error {
	if c.Resampler != nil {
		if err := c.Resampler.Validate(); err != nil {
			return err
		}
	}

	if c.ChannelMixer != nil {
		if err := c.ChannelMixer.Validate(); err != nil {
			return err
		}
	}

	if c.Normalizer != nil {
		if err := c.Normalizer.Validate(); err != nil {
			return err
		}
	}

	if c.SilenceDetector != nil {
		if err := c.SilenceDetector.Validate(); err != nil {
			return err
		}
	}

	if err := c.Output.Validate(); err != nil {
		return err
	}

	if c.NumThreads != nil && *c.NumThreads < 1 {
		return invalidf(ErrPipeline, "thread count must be positive, got %d", *c.NumThreads)
	}

	return nil
}

// Clone returns a deep copy.
func (c ProcessingConfig) Clone() ProcessingConfig {
	if c.Resampler != nil {
		c.Resampler = c.Resampler.clone()
	}

	if c.ChannelMixer != nil {
		c.ChannelMixer = c.ChannelMixer.clone()
	}

	if c.Normalizer != nil {
		n := *c.Normalizer
		c.Normalizer = &n
	}

	if c.SilenceDetector != nil {
		s := *c.SilenceDetector
		c.SilenceDetector = &s
	}

	if c.NumThreads != nil {
		n := *c.NumThreads
		c.NumThreads = &n
	}

	return c
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (ProcessingConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ProcessingConfig{}, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	return ParseConfig(data)
}

// ParseConfig decodes YAML on top of DefaultProcessingConfig, so omitted
// keys keep their defaults, then validates the result. A stage block
// starts from that stage's defaults. Unknown keys are rejected.
func ParseConfig(data []byte) (ProcessingConfig, error) {
	cfg := DefaultProcessingConfig()

	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return ProcessingConfig{}, fmt.Errorf("%w: %w", audio.ErrInvalidConfiguration, err)
	}

	seedStages(&cfg, &root)

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return ProcessingConfig{}, fmt.Errorf("%w: %w", audio.ErrInvalidConfiguration, err)
	}

	if err := cfg.Validate(); err != nil {
		return ProcessingConfig{}, err
	}

	return cfg, nil
}

// seedStages sets every stage named by a non-null block in root to its
// defaults. The decoder then fills the existing value, so a partial block
// only overrides the keys it lists.
func seedStages(cfg *ProcessingConfig, root *yaml.Node) {
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return
	}

	m := root.Content[0]
	if m.Kind != yaml.MappingNode {
		return
	}

	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i+1].ShortTag() == "!!null" {
			continue
		}

		switch m.Content[i].Value {
		case "resampler":
			c := DefaultResamplerConfig()
			cfg.Resampler = &c
		case "channel_mixer":
			c := DefaultChannelMixerConfig()
			cfg.ChannelMixer = &c
		case "normalizer":
			c := DefaultNormalizerConfig()
			cfg.Normalizer = &c
		case "silence_detector":
			c := DefaultSilenceDetectorConfig()
			cfg.SilenceDetector = &c
		}
	}
}

// Encode writes c as YAML that ParseConfig reads back.
func (c ProcessingConfig) Encode(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("%w", err)
	}

	return enc.Close()
}
