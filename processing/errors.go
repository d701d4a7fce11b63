// SPDX-License-Identifier: EPL-2.0

package processing

import "errors"

// Stage error families. Configuration failures additionally wrap
// audio.ErrInvalidConfiguration.
var (
	ErrResampler       = errors.New("resampler")
	ErrChannelMixer    = errors.New("channel mixer")
	ErrNormalizer      = errors.New("normalizer")
	ErrSilenceDetector = errors.New("silence detector")
	ErrOutput          = errors.New("output")
	ErrPipeline        = errors.New("pipeline")

	ErrUnsupportedOutputFormat = errors.New("unsupported output format")
)
