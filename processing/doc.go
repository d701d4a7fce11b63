// SPDX-License-Identifier: EPL-2.0

// Package processing holds the DSP stages that run on decoded audio and the
// configuration that drives them.
//
// Every stage works in place on an *audio.Buffer and implements Stage:
//
//	LinearResampler   sample rate conversion
//	ChannelMixer      downmix to mono or upmix from mono
//	Normalizer        peak or RMS gain with a limiter
//	SilenceDetector   detect and trim silent runs
//	OutputStage       quantize and encode
//
// A Pipeline wires the enabled stages in that order from a
// ProcessingConfig. Configs are built with ProcessingConfigBuilder or loaded
// from YAML:
//
//	cfg, err := processing.NewProcessingConfigBuilder().
//		ForVoiceRecognition().
//		WithOutputDir("out").
//		BuildValidated()
//	if err != nil {
//		return err
//	}
//
//	p, err := processing.NewPipeline(cfg, processing.WithLogger(logger))
//	if err != nil {
//		return err
//	}
//	err = p.Process(buf)
//
// Configuration errors match both the stage family (ErrResampler and so on)
// and audio.ErrInvalidConfiguration.
//
// # Build Tags
//
// With -tags simd on amd64 the resampler selects its vector entry point
// when the CPU has AVX2. Both entry points produce identical output.
package processing
