// SPDX-License-Identifier: EPL-2.0

package processing

// ProcessingConfigBuilder assembles a ProcessingConfig. It is a value:
// every With method returns a new builder and leaves the receiver alone,
// so presets can be forked safely.
//
//	cfg, err := processing.NewProcessingConfigBuilder().
//		ForPodcast().
//		WithOutputDir("/tmp/out").
//		BuildValidated()
type ProcessingConfigBuilder struct {
	cfg ProcessingConfig
}

func NewProcessingConfigBuilder() ProcessingConfigBuilder {
	return ProcessingConfigBuilder{cfg: DefaultProcessingConfig()}
}

// Stage setters

func (b ProcessingConfigBuilder) WithResampler(c ResamplerConfig) ProcessingConfigBuilder {
	b.cfg.Resampler = c.clone()
	return b
}

func (b ProcessingConfigBuilder) WithChannelMixer(c ChannelMixerConfig) ProcessingConfigBuilder {
	b.cfg.ChannelMixer = c.clone()
	return b
}

func (b ProcessingConfigBuilder) WithNormalizer(c NormalizerConfig) ProcessingConfigBuilder {
	b.cfg.Normalizer = &c
	return b
}

func (b ProcessingConfigBuilder) WithSilenceDetector(c SilenceDetectorConfig) ProcessingConfigBuilder {
	b.cfg.SilenceDetector = &c
	return b
}

func (b ProcessingConfigBuilder) WithOutput(c OutputConfig) ProcessingConfigBuilder {
	b.cfg.Output = c
	return b
}

// Convenience setters. Each creates the stage config from its defaults
// when it is not set yet.

func (b ProcessingConfigBuilder) WithTargetSampleRate(rate uint32) ProcessingConfigBuilder {
	return b.WithResampler(b.resampler().WithTargetSampleRate(rate))
}

func (b ProcessingConfigBuilder) WithMono() ProcessingConfigBuilder {
	return b.WithChannelMixer(b.channelMixer().WithTargetChannels(1))
}

func (b ProcessingConfigBuilder) WithStereo() ProcessingConfigBuilder {
	return b.WithChannelMixer(b.channelMixer().WithTargetChannels(2))
}

func (b ProcessingConfigBuilder) WithTargetLoudness(db float64) ProcessingConfigBuilder {
	return b.WithNormalizer(b.normalizer().WithTargetLoudness(db))
}

func (b ProcessingConfigBuilder) WithSilenceThreshold(db float64) ProcessingConfigBuilder {
	return b.WithSilenceDetector(b.silenceDetector().WithThreshold(db))
}

func (b ProcessingConfigBuilder) WithOutputFormat(f AudioFormat) ProcessingConfigBuilder {
	return b.WithOutput(b.cfg.Output.WithFormat(f))
}

func (b ProcessingConfigBuilder) WithBitDepth(bits int) ProcessingConfigBuilder {
	return b.WithOutput(b.cfg.Output.WithBitDepth(bits))
}

func (b ProcessingConfigBuilder) WithOutputDir(dir string) ProcessingConfigBuilder {
	return b.WithOutput(b.cfg.Output.WithOutputDir(dir))
}

func (b ProcessingConfigBuilder) WithFilenameSuffix(s string) ProcessingConfigBuilder {
	return b.WithOutput(b.cfg.Output.WithFilenameSuffix(s))
}

func (b ProcessingConfigBuilder) WithNumThreads(n int) ProcessingConfigBuilder {
	b.cfg.NumThreads = &n
	return b
}

func (b ProcessingConfigBuilder) WithParallel(enabled bool) ProcessingConfigBuilder {
	b.cfg.EnableParallel = enabled
	return b
}

// Presets

// ForPodcast targets spoken word: 44.1 kHz mono at -16 dB with leading
// and trailing silence trimmed, written as MP3.
func (b ProcessingConfigBuilder) ForPodcast() ProcessingConfigBuilder {
	return b.
		WithResampler(DefaultResamplerConfig().WithTargetSampleRate(44100).WithQuality(QualityMedium)).
		WithChannelMixer(DefaultChannelMixerConfig().WithTargetChannels(1)).
		WithNormalizer(DefaultNormalizerConfig().WithTargetLoudness(-16).WithLimiting(true)).
		WithSilenceDetector(DefaultSilenceDetectorConfig().WithThreshold(-40).WithRemovalMode(RemoveLeadingTrailing)).
		WithOutput(DefaultOutputConfig().WithFormat(FormatMp3).WithFilenameSuffix("_podcast")).
		WithParallel(true)
}

// ForMusicMastering keeps the channel layout and targets -14 dB at 48 kHz,
// written as 24-bit WAV.
func (b ProcessingConfigBuilder) ForMusicMastering() ProcessingConfigBuilder {
	return b.
		WithResampler(DefaultResamplerConfig().WithTargetSampleRate(48000).WithQuality(QualityHigh)).
		WithNormalizer(DefaultNormalizerConfig().
			WithTargetLoudness(-14).
			WithAlgorithm(NormalizeLufs).
			WithLimiting(true).
			WithHeadroom(1)).
		WithOutput(DefaultOutputConfig().WithFormat(FormatWav).WithBitDepth(24).WithFilenameSuffix("_mastered")).
		WithParallel(true)
}

// ForVoiceRecognition produces 16 kHz mono with every pause removed, the
// usual input for speech-to-text engines.
func (b ProcessingConfigBuilder) ForVoiceRecognition() ProcessingConfigBuilder {
	return b.
		WithResampler(DefaultResamplerConfig().WithTargetSampleRate(16000)).
		WithChannelMixer(DefaultChannelMixerConfig().WithTargetChannels(1)).
		WithNormalizer(DefaultNormalizerConfig().WithTargetLoudness(-24)).
		WithSilenceDetector(DefaultSilenceDetectorConfig().WithThreshold(-30).WithRemovalMode(RemoveAll)).
		WithOutput(DefaultOutputConfig().WithFormat(FormatWav).WithFilenameSuffix("_voice"))
}

// Build returns a copy of the configuration without validating it.
func (b ProcessingConfigBuilder) Build() ProcessingConfig {
	return b.cfg.Clone()
}

// BuildValidated is Build followed by ProcessingConfig.Validate.
func (b ProcessingConfigBuilder) BuildValidated() (ProcessingConfig, error) {
	cfg := b.Build()
	if err := cfg.Validate(); err != nil {
		return ProcessingConfig{}, err
	}

	return cfg, nil
}

func (b ProcessingConfigBuilder) resampler() ResamplerConfig {
	if b.cfg.Resampler == nil {
		return DefaultResamplerConfig()
	}

	return *b.cfg.Resampler
}

func (b ProcessingConfigBuilder) channelMixer() ChannelMixerConfig {
	if b.cfg.ChannelMixer == nil {
		return DefaultChannelMixerConfig()
	}

	return *b.cfg.ChannelMixer
}

func (b ProcessingConfigBuilder) normalizer() NormalizerConfig {
	if b.cfg.Normalizer == nil {
		return DefaultNormalizerConfig()
	}

	return *b.cfg.Normalizer
}

func (b ProcessingConfigBuilder) silenceDetector() SilenceDetectorConfig {
	if b.cfg.SilenceDetector == nil {
		return DefaultSilenceDetectorConfig()
	}

	return *b.cfg.SilenceDetector
}
