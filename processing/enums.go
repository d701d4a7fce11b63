// SPDX-License-Identifier: EPL-2.0

package processing

import (
	"fmt"
	"slices"
	"strings"

	"github.com/ik5/audpipe/audio"
)

// ResampleQuality is a hint kept for configuration compatibility. The
// linear resampler produces the same output at every level.
type ResampleQuality int

const (
	QualityLow ResampleQuality = iota
	QualityMedium
	QualityHigh
)

var qualityNames = []string{"low", "medium", "high"}

func (q ResampleQuality) String() string { return enumString(int(q), qualityNames) }

func (q ResampleQuality) MarshalText() ([]byte, error) {
	return marshalEnum(int(q), qualityNames, "resample quality")
}

func (q *ResampleQuality) UnmarshalText(text []byte) error {
	return unmarshalEnum((*int)(q), text, qualityNames, "resample quality")
}

// MixKind selects how a stereo pair is folded into one channel.
type MixKind int

const (
	MixAverage MixKind = iota
	MixLeftOnly
	MixRightOnly
	MixWeightedSum
)

var mixNames = []string{"average", "left_only", "right_only", "weighted_sum"}

func (k MixKind) String() string { return enumString(int(k), mixNames) }

func (k MixKind) MarshalText() ([]byte, error) {
	return marshalEnum(int(k), mixNames, "mix algorithm")
}

func (k *MixKind) UnmarshalText(text []byte) error {
	return unmarshalEnum((*int)(k), text, mixNames, "mix algorithm")
}

// NormalizationAlgorithm picks the level measurement the normalizer
// targets.
type NormalizationAlgorithm int

const (
	NormalizePeak NormalizationAlgorithm = iota
	NormalizeRms
	// NormalizeLufs is measured as RMS for now.
	NormalizeLufs
)

var normalizationNames = []string{"peak", "rms", "lufs"}

func (a NormalizationAlgorithm) String() string { return enumString(int(a), normalizationNames) }

func (a NormalizationAlgorithm) MarshalText() ([]byte, error) {
	return marshalEnum(int(a), normalizationNames, "normalization algorithm")
}

func (a *NormalizationAlgorithm) UnmarshalText(text []byte) error {
	return unmarshalEnum((*int)(a), text, normalizationNames, "normalization algorithm")
}

// SilenceRemovalMode says what the silence detector does with the
// segments it finds.
type SilenceRemovalMode int

const (
	RemoveNone SilenceRemovalMode = iota
	RemoveLeadingTrailing
	RemoveAll
)

var removalNames = []string{"none", "leading_trailing", "all"}

func (m SilenceRemovalMode) String() string { return enumString(int(m), removalNames) }

func (m SilenceRemovalMode) MarshalText() ([]byte, error) {
	return marshalEnum(int(m), removalNames, "silence removal mode")
}

func (m *SilenceRemovalMode) UnmarshalText(text []byte) error {
	return unmarshalEnum((*int)(m), text, removalNames, "silence removal mode")
}

// AudioFormat is the container written by the output stage.
type AudioFormat int

const (
	FormatWav AudioFormat = iota
	FormatFlac
	FormatMp3
	FormatOgg
)

var formatNames = []string{"wav", "flac", "mp3", "ogg"}

var formatMimeTypes = []string{"audio/wav", "audio/flac", "audio/mpeg", "audio/ogg"}

func (f AudioFormat) String() string { return enumString(int(f), formatNames) }

// Extension returns the file extension without the leading dot.
func (f AudioFormat) Extension() string { return enumString(int(f), formatNames) }

func (f AudioFormat) MimeType() string { return enumString(int(f), formatMimeTypes) }

func (f AudioFormat) MarshalText() ([]byte, error) {
	return marshalEnum(int(f), formatNames, "audio format")
}

func (f *AudioFormat) UnmarshalText(text []byte) error {
	return unmarshalEnum((*int)(f), text, formatNames, "audio format")
}

// FormatFromExtension maps a file extension, with or without the dot, to
// an AudioFormat. "oga" is accepted as Ogg.
func FormatFromExtension(ext string) (AudioFormat, bool) {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if ext == "oga" {
		return FormatOgg, true
	}

	i := slices.Index(formatNames, ext)
	if i < 0 {
		return 0, false
	}

	return AudioFormat(i), true
}

func enumString(v int, names []string) string {
	if v < 0 || v >= len(names) {
		return fmt.Sprintf("unknown(%d)", v)
	}

	return names[v]
}

func marshalEnum(v int, names []string, kind string) ([]byte, error) {
	if v < 0 || v >= len(names) {
		return nil, fmt.Errorf("%w: unknown %s %d", audio.ErrInvalidConfiguration, kind, v)
	}

	return []byte(names[v]), nil
}

func unmarshalEnum(dst *int, text []byte, names []string, kind string) error {
	i := slices.Index(names, strings.ToLower(strings.TrimSpace(string(text))))
	if i < 0 {
		return fmt.Errorf("%w: unknown %s %q", audio.ErrInvalidConfiguration, kind, text)
	}

	*dst = i

	return nil
}
