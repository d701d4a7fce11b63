// SPDX-License-Identifier: EPL-2.0

package processing_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/processing"
)

func TestDefaults(t *testing.T) {
	t.Parallel()

	r := processing.DefaultResamplerConfig()
	require.NotNil(t, r.TargetSampleRate)
	assert.Equal(t, uint32(44100), *r.TargetSampleRate)
	assert.Equal(t, processing.QualityMedium, r.Quality)
	assert.True(t, r.AntiAliasing)

	m := processing.DefaultChannelMixerConfig()
	require.NotNil(t, m.TargetChannels)
	assert.Equal(t, uint16(1), *m.TargetChannels)
	assert.Equal(t, processing.MixAverage, m.MixAlgorithm.Kind)

	n := processing.DefaultNormalizerConfig()
	assert.Equal(t, -16.0, n.TargetLoudness)
	assert.Equal(t, -1.0, n.PeakLevel)
	assert.True(t, n.EnableLimiting)
	assert.Equal(t, 1.0, n.HeadroomDB)

	s := processing.DefaultSilenceDetectorConfig()
	assert.Equal(t, -40.0, s.ThresholdDB)
	assert.Equal(t, 500*time.Millisecond, s.MinDuration)
	assert.Equal(t, 10*time.Millisecond, s.FadeDuration)
	assert.Equal(t, processing.RemoveLeadingTrailing, s.RemovalMode)

	o := processing.DefaultOutputConfig()
	assert.Equal(t, processing.FormatWav, o.Format)
	assert.Equal(t, 16, o.BitDepth)
	assert.Equal(t, "_processed", o.FilenameSuffix)

	cfg := processing.DefaultProcessingConfig()
	assert.True(t, cfg.EnableParallel)
	assert.Nil(t, cfg.Resampler)
	require.NoError(t, cfg.Validate())

	for _, v := range []interface{ Validate() error }{r, m, n, s, o} {
		assert.NoError(t, v.Validate())
	}
}

func TestConfigValidation(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cfg    interface{ Validate() error }
		family error
	}{
		"resampler zero rate": {
			cfg:    processing.DefaultResamplerConfig().WithTargetSampleRate(0),
			family: processing.ErrResampler,
		},
		"resampler above range": {
			cfg:    processing.DefaultResamplerConfig().WithTargetSampleRate(384000),
			family: processing.ErrResampler,
		},
		"mixer zero channels": {
			cfg:    processing.DefaultChannelMixerConfig().WithTargetChannels(0),
			family: processing.ErrChannelMixer,
		},
		"mixer too many channels": {
			cfg:    processing.DefaultChannelMixerConfig().WithTargetChannels(33),
			family: processing.ErrChannelMixer,
		},
		"mixer weight out of range": {
			cfg:    processing.DefaultChannelMixerConfig().WithMixAlgorithm(processing.WeightedSum(1.5, 0)),
			family: processing.ErrChannelMixer,
		},
		"mixer weights clip": {
			cfg:    processing.DefaultChannelMixerConfig().WithMixAlgorithm(processing.WeightedSum(0.75, 0.5)),
			family: processing.ErrChannelMixer,
		},
		"normalizer positive target": {
			cfg:    processing.DefaultNormalizerConfig().WithTargetLoudness(3),
			family: processing.ErrNormalizer,
		},
		"normalizer negative headroom": {
			cfg:    processing.DefaultNormalizerConfig().WithHeadroom(-1),
			family: processing.ErrNormalizer,
		},
		"normalizer positive peak": {
			cfg:    processing.NormalizerConfig{PeakLevel: 0.5},
			family: processing.ErrNormalizer,
		},
		"silence positive threshold": {
			cfg:    processing.DefaultSilenceDetectorConfig().WithThreshold(1),
			family: processing.ErrSilenceDetector,
		},
		"silence zero duration": {
			cfg:    processing.DefaultSilenceDetectorConfig().WithMinDuration(0),
			family: processing.ErrSilenceDetector,
		},
		"silence fade longer than minimum": {
			cfg:    processing.DefaultSilenceDetectorConfig().WithMinDuration(5 * time.Millisecond),
			family: processing.ErrSilenceDetector,
		},
		"output empty suffix": {
			cfg:    processing.DefaultOutputConfig().WithFilenameSuffix(""),
			family: processing.ErrOutput,
		},
		"output bad bit depth": {
			cfg:    processing.DefaultOutputConfig().WithBitDepth(12),
			family: processing.ErrOutput,
		},
		"output missing dir": {
			cfg:    processing.DefaultOutputConfig().WithOutputDir(filepath.Join(os.TempDir(), "audpipe-does-not-exist")),
			family: processing.ErrOutput,
		},
		"zero threads": {
			cfg:    processing.NewProcessingConfigBuilder().WithNumThreads(0).Build(),
			family: processing.ErrPipeline,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tt.cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.family)
			assert.ErrorIs(t, err, audio.ErrInvalidConfiguration)
		})
	}
}

func TestOutputConfig_DirectoryMustBeDirectory(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, processing.DefaultOutputConfig().WithOutputDir(dir).Validate())

	file := filepath.Join(dir, "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	assert.ErrorIs(t, processing.DefaultOutputConfig().WithOutputDir(file).Validate(), processing.ErrOutput)
}

func TestBuilder_PodcastPreset(t *testing.T) {
	t.Parallel()

	cfg, err := processing.NewProcessingConfigBuilder().ForPodcast().BuildValidated()
	require.NoError(t, err)

	require.NotNil(t, cfg.Resampler)
	assert.Equal(t, uint32(44100), *cfg.Resampler.TargetSampleRate)
	assert.Equal(t, processing.QualityMedium, cfg.Resampler.Quality)

	require.NotNil(t, cfg.ChannelMixer)
	assert.Equal(t, uint16(1), *cfg.ChannelMixer.TargetChannels)

	require.NotNil(t, cfg.Normalizer)
	assert.Equal(t, -16.0, cfg.Normalizer.TargetLoudness)
	assert.True(t, cfg.Normalizer.EnableLimiting)

	require.NotNil(t, cfg.SilenceDetector)
	assert.Equal(t, -40.0, cfg.SilenceDetector.ThresholdDB)
	assert.Equal(t, processing.RemoveLeadingTrailing, cfg.SilenceDetector.RemovalMode)

	assert.Equal(t, processing.FormatMp3, cfg.Output.Format)
	assert.Equal(t, "_podcast", cfg.Output.FilenameSuffix)
	assert.True(t, cfg.EnableParallel)
}

func TestBuilder_MusicMasteringPreset(t *testing.T) {
	t.Parallel()

	cfg, err := processing.NewProcessingConfigBuilder().ForMusicMastering().BuildValidated()
	require.NoError(t, err)

	assert.Equal(t, uint32(48000), *cfg.Resampler.TargetSampleRate)
	assert.Equal(t, processing.QualityHigh, cfg.Resampler.Quality)
	assert.Nil(t, cfg.ChannelMixer)
	assert.Nil(t, cfg.SilenceDetector)
	assert.Equal(t, -14.0, cfg.Normalizer.TargetLoudness)
	assert.Equal(t, processing.NormalizeLufs, cfg.Normalizer.Algorithm)
	assert.False(t, cfg.Normalizer.UsePeakNormalization)
	assert.Equal(t, 24, cfg.Output.BitDepth)
	assert.Equal(t, "_mastered", cfg.Output.FilenameSuffix)
}

func TestBuilder_VoiceRecognitionPreset(t *testing.T) {
	t.Parallel()

	cfg, err := processing.NewProcessingConfigBuilder().ForVoiceRecognition().BuildValidated()
	require.NoError(t, err)

	assert.Equal(t, uint32(16000), *cfg.Resampler.TargetSampleRate)
	assert.Equal(t, uint16(1), *cfg.ChannelMixer.TargetChannels)
	assert.Equal(t, -24.0, cfg.Normalizer.TargetLoudness)
	assert.Equal(t, -30.0, cfg.SilenceDetector.ThresholdDB)
	assert.Equal(t, processing.RemoveAll, cfg.SilenceDetector.RemovalMode)
	assert.Equal(t, "_voice", cfg.Output.FilenameSuffix)
}

func TestBuilder_BuildValidatedFailsFast(t *testing.T) {
	t.Parallel()

	b := processing.NewProcessingConfigBuilder().
		ForPodcast().
		WithTargetSampleRate(0).
		WithSilenceThreshold(10)

	// Build does not validate.
	cfg := b.Build()
	assert.Equal(t, uint32(0), *cfg.Resampler.TargetSampleRate)

	_, err := b.BuildValidated()
	require.Error(t, err)
	assert.ErrorIs(t, err, processing.ErrResampler)
	assert.NotErrorIs(t, err, processing.ErrSilenceDetector)
	assert.ErrorIs(t, err, audio.ErrInvalidConfiguration)

	_, err = processing.NewPipeline(cfg)
	assert.ErrorIs(t, err, processing.ErrResampler)
}

func TestBuilder_IsImmutable(t *testing.T) {
	t.Parallel()

	base := processing.NewProcessingConfigBuilder().WithTargetSampleRate(22050)
	forked := base.WithTargetSampleRate(48000).WithMono()

	assert.Equal(t, uint32(22050), *base.Build().Resampler.TargetSampleRate)
	assert.Nil(t, base.Build().ChannelMixer)
	assert.Equal(t, uint32(48000), *forked.Build().Resampler.TargetSampleRate)

	// Built configs do not share storage with the builder.
	cfg := forked.Build()
	*cfg.Resampler.TargetSampleRate = 8000
	assert.Equal(t, uint32(48000), *forked.Build().Resampler.TargetSampleRate)
}

func TestBuilder_ConvenienceSetters(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()

	cfg, err := processing.NewProcessingConfigBuilder().
		WithStereo().
		WithTargetLoudness(-20).
		WithSilenceThreshold(-50).
		WithOutputFormat(processing.FormatFlac).
		WithBitDepth(32).
		WithOutputDir(dir).
		WithFilenameSuffix("_x").
		WithNumThreads(3).
		WithParallel(false).
		BuildValidated()
	require.NoError(t, err)

	assert.Nil(t, cfg.Resampler)
	assert.Equal(t, uint16(2), *cfg.ChannelMixer.TargetChannels)
	assert.Equal(t, -20.0, cfg.Normalizer.TargetLoudness)
	assert.Equal(t, -1.0, cfg.Normalizer.PeakLevel, "lazily created configs start from defaults")
	assert.Equal(t, -50.0, cfg.SilenceDetector.ThresholdDB)
	assert.Equal(t, processing.OutputConfig{
		Format:         processing.FormatFlac,
		BitDepth:       32,
		OutputDir:      dir,
		FilenameSuffix: "_x",
	}, cfg.Output)
	assert.Equal(t, 3, *cfg.NumThreads)
	assert.False(t, cfg.EnableParallel)
}

func TestParseConfig(t *testing.T) {
	t.Parallel()

	cfg, err := processing.ParseConfig([]byte(`
resampler:
  target_sample_rate: 22050
  quality: high
channel_mixer:
  target_channels: 1
  mix_algorithm:
    kind: weighted_sum
    left_weight: 0.5
    right_weight: 0.25
silence_detector:
  threshold_db: -35
  min_duration: 250ms
  fade_duration: 5ms
  removal_mode: all
output:
  format: wav
  bit_depth: 24
  filename_suffix: _clean
num_threads: 4
`))
	require.NoError(t, err)

	assert.Equal(t, uint32(22050), *cfg.Resampler.TargetSampleRate)
	assert.Equal(t, processing.QualityHigh, cfg.Resampler.Quality)
	assert.Equal(t, processing.WeightedSum(0.5, 0.25), cfg.ChannelMixer.MixAlgorithm)
	assert.Nil(t, cfg.Normalizer)
	assert.Equal(t, 250*time.Millisecond, cfg.SilenceDetector.MinDuration)
	assert.Equal(t, processing.RemoveAll, cfg.SilenceDetector.RemovalMode)
	assert.Equal(t, 24, cfg.Output.BitDepth)
	assert.Equal(t, "_clean", cfg.Output.FilenameSuffix)
	assert.Equal(t, 4, *cfg.NumThreads)
	assert.True(t, cfg.EnableParallel, "omitted keys keep defaults")
}

func TestParseConfig_PartialStageBlocks(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		yaml string
		want func() processing.ProcessingConfig
	}{
		"resampler quality only": {
			yaml: "resampler:\n  quality: high\n",
			want: func() processing.ProcessingConfig {
				c := processing.DefaultResamplerConfig().WithQuality(processing.QualityHigh)
				return processing.NewProcessingConfigBuilder().WithResampler(c).Build()
			},
		},
		"resampler rate cleared": {
			yaml: "resampler:\n  target_sample_rate: null\n",
			want: func() processing.ProcessingConfig {
				c := processing.DefaultResamplerConfig()
				c.TargetSampleRate = nil
				return processing.NewProcessingConfigBuilder().WithResampler(c).Build()
			},
		},
		"channel mixer algorithm only": {
			yaml: "channel_mixer:\n  mix_algorithm:\n    kind: left_only\n",
			want: func() processing.ProcessingConfig {
				c := processing.DefaultChannelMixerConfig().
					WithMixAlgorithm(processing.MixAlgorithm{Kind: processing.MixLeftOnly})
				return processing.NewProcessingConfigBuilder().WithChannelMixer(c).Build()
			},
		},
		"normalizer target only": {
			yaml: "normalizer:\n  target_loudness: -20\n",
			want: func() processing.ProcessingConfig {
				c := processing.DefaultNormalizerConfig().WithTargetLoudness(-20)
				return processing.NewProcessingConfigBuilder().WithNormalizer(c).Build()
			},
		},
		"silence threshold only": {
			yaml: "silence_detector:\n  threshold_db: -30\n",
			want: func() processing.ProcessingConfig {
				c := processing.DefaultSilenceDetectorConfig().WithThreshold(-30)
				return processing.NewProcessingConfigBuilder().WithSilenceDetector(c).Build()
			},
		},
		"empty stage block stays disabled": {
			yaml: "normalizer:\n",
			want: processing.DefaultProcessingConfig,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cfg, err := processing.ParseConfig([]byte(tt.yaml))
			require.NoError(t, err)
			assert.Equal(t, tt.want(), cfg)
		})
	}
}

func TestParseConfig_Errors(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		yaml   string
		family error
	}{
		"unknown key":       {yaml: "bogus: 1\n", family: audio.ErrInvalidConfiguration},
		"unknown stage key": {yaml: "normalizer:\n  loudness: -20\n", family: audio.ErrInvalidConfiguration},
		"unknown enum":      {yaml: "resampler:\n  quality: ultra\n", family: audio.ErrInvalidConfiguration},
		"bad duration":      {yaml: "silence_detector:\n  min_duration: soon\n", family: audio.ErrInvalidConfiguration},
		"invalid value":     {yaml: "resampler:\n  target_sample_rate: 0\n", family: processing.ErrResampler},
		"invalid output":    {yaml: "output:\n  bit_depth: 8\n", family: processing.ErrOutput},
		"not a mapping":     {yaml: "- 1\n- 2\n", family: audio.ErrInvalidConfiguration},
		"negative thread":   {yaml: "num_threads: -2\n", family: processing.ErrPipeline},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := processing.ParseConfig([]byte(tt.yaml))
			assert.ErrorIs(t, err, tt.family)
		})
	}
}

func TestParseConfig_Empty(t *testing.T) {
	t.Parallel()

	cfg, err := processing.ParseConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, processing.DefaultProcessingConfig(), cfg)
}

func TestLoadConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "pipeline.yaml")
	require.NoError(t, os.WriteFile(path, []byte("resampler:\n  target_sample_rate: 16000\n"), 0o600))

	cfg, err := processing.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, uint32(16000), *cfg.Resampler.TargetSampleRate)

	_, err = processing.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, audio.ErrIO)
}

func TestConfig_EncodeRoundTrip(t *testing.T) {
	t.Parallel()

	cfg := processing.NewProcessingConfigBuilder().ForPodcast().WithNumThreads(2).Build()

	var out bytes.Buffer
	require.NoError(t, cfg.Encode(&out))
	assert.Contains(t, out.String(), "format: mp3")
	assert.Contains(t, out.String(), "min_duration: 500ms")

	parsed, err := processing.ParseConfig(out.Bytes())
	require.NoError(t, err)
	assert.Equal(t, cfg, parsed)
}

func TestEnums_Text(t *testing.T) {
	t.Parallel()

	var q processing.ResampleQuality
	require.NoError(t, q.UnmarshalText([]byte("HIGH")))
	assert.Equal(t, processing.QualityHigh, q)

	text, err := processing.MixRightOnly.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "right_only", string(text))

	_, err = processing.AudioFormat(9).MarshalText()
	assert.ErrorIs(t, err, audio.ErrInvalidConfiguration)
	assert.Equal(t, "unknown(9)", processing.AudioFormat(9).String())

	var m processing.SilenceRemovalMode
	assert.ErrorIs(t, m.UnmarshalText([]byte("some")), audio.ErrInvalidConfiguration)
}

func TestAudioFormat(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		format processing.AudioFormat
		ext    string
		mime   string
	}{
		"wav":  {processing.FormatWav, "wav", "audio/wav"},
		"flac": {processing.FormatFlac, "flac", "audio/flac"},
		"mp3":  {processing.FormatMp3, "mp3", "audio/mpeg"},
		"ogg":  {processing.FormatOgg, "ogg", "audio/ogg"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.ext, tt.format.Extension())
			assert.Equal(t, tt.mime, tt.format.MimeType())

			got, ok := processing.FormatFromExtension("." + tt.ext)
			require.True(t, ok)
			assert.Equal(t, tt.format, got)
		})
	}

	got, ok := processing.FormatFromExtension("OGA")
	assert.True(t, ok)
	assert.Equal(t, processing.FormatOgg, got)

	_, ok = processing.FormatFromExtension("aac")
	assert.False(t, ok)
}
