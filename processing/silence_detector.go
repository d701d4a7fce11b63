// SPDX-License-Identifier: EPL-2.0

package processing

import (
	"fmt"
	"math"
	"slices"

	"go.uber.org/zap"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/utils"
)

// SilenceSegment is a run of silent frames, [Start, End).
type SilenceSegment struct {
	Start    int
	End      int
	Duration float64 // seconds
}

// Frames returns the segment length in frames.
func (s SilenceSegment) Frames() int { return s.End - s.Start }

// SilenceDetector finds runs of frames whose every channel stays at or
// below the threshold, and trims them according to the removal mode.
// Cut edges get a short linear fade to avoid clicks.
type SilenceDetector struct {
	cfg    SilenceDetectorConfig
	logger *zap.Logger
}

func NewSilenceDetector(cfg SilenceDetectorConfig, opts ...Option) (*SilenceDetector, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	o := applyOptions(opts)

	return &SilenceDetector{cfg: cfg, logger: o.logger}, nil
}

func (d *SilenceDetector) Process(buf *audio.Buffer) error {
	if len(buf.Data) == 0 {
		return nil
	}

	if err := buf.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrSilenceDetector, err)
	}

	switch d.cfg.RemovalMode {
	case RemoveLeadingTrailing:
		return d.trimEdges(buf)
	case RemoveAll:
		return d.removeAll(buf)
	default:
		segments, err := d.DetectSilence(buf)
		if err != nil {
			return err
		}

		d.logger.Debug("silence detected", zap.Int("segments", len(segments)))

		return nil
	}
}

// DetectSilence returns every silent run of at least MinDuration.
func (d *SilenceDetector) DetectSilence(buf *audio.Buffer) ([]SilenceSegment, error) {
	frames := buf.Frames()
	if frames == 0 {
		return nil, nil
	}

	minFrames, err := d.minFrames(buf.SampleRate)
	if err != nil {
		return nil, err
	}

	thr := dbToLinear(d.cfg.ThresholdDB)
	ch := int(buf.Channels)

	var segments []SilenceSegment
	start := -1

	// One step past the end closes a trailing run.
	for f := 0; f <= frames; f++ {
		silent := f < frames && frameSilent(buf.Data[f*ch:(f+1)*ch], thr)

		switch {
		case silent && start < 0:
			start = f
		case !silent && start >= 0:
			if f-start >= minFrames {
				seg, err := newSegment(start, f, buf.SampleRate)
				if err != nil {
					return nil, err
				}
				segments = append(segments, seg)
			}
			start = -1
		}
	}

	return segments, nil
}

// SilencePercentage returns the share of frames inside detected segments,
// from 0 to 100.
func (d *SilenceDetector) SilencePercentage(buf *audio.Buffer) (float64, error) {
	frames := buf.Frames()
	if frames == 0 {
		return 0, nil
	}

	segments, err := d.DetectSilence(buf)
	if err != nil {
		return 0, err
	}

	silent := 0
	for _, s := range segments {
		silent += s.Frames()
	}

	r, err := utils.Ratio(silent, frames)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSilenceDetector, err)
	}

	return r * 100, nil
}

// TotalSilenceDuration sums the detected segments in seconds.
func (d *SilenceDetector) TotalSilenceDuration(buf *audio.Buffer) (float64, error) {
	segments, err := d.DetectSilence(buf)
	if err != nil {
		return 0, err
	}

	var total float64
	for _, s := range segments {
		total += s.Duration
	}

	return total, nil
}

// HasSignificantSilence reports whether any segment qualifies.
func (d *SilenceDetector) HasSignificantSilence(buf *audio.Buffer) bool {
	segments, err := d.DetectSilence(buf)
	return err == nil && len(segments) > 0
}

// trimEdges cuts leading and trailing silence that is at least
// MinDuration long. A buffer that is silent throughout is kept.
func (d *SilenceDetector) trimEdges(buf *audio.Buffer) error {
	frames := buf.Frames()
	ch := int(buf.Channels)
	thr := dbToLinear(d.cfg.ThresholdDB)

	first := 0
	for first < frames && frameSilent(buf.Data[first*ch:(first+1)*ch], thr) {
		first++
	}
	if first == frames {
		return nil
	}

	last := frames - 1
	for frameSilent(buf.Data[last*ch:(last+1)*ch], thr) {
		last--
	}

	minFrames, err := d.minFrames(buf.SampleRate)
	if err != nil {
		return err
	}

	start, end := 0, frames
	if first >= minFrames {
		start = first
	}
	if frames-1-last >= minFrames {
		end = last + 1
	}

	if start == 0 && end == frames {
		return nil
	}

	fade, err := d.fadeFrames(buf.SampleRate)
	if err != nil {
		return err
	}

	out := slices.Clone(buf.Data[start*ch : end*ch])
	if start > 0 {
		fadeIn(out, ch, fade)
	}
	if end < frames {
		fadeOut(out, ch, fade)
	}

	d.logger.Debug("trimmed silence",
		zap.Int("leading_frames", start),
		zap.Int("trailing_frames", frames-end),
	)

	buf.Data = out

	return nil
}

// removeAll drops every detected segment and fades both sides of each
// cut.
func (d *SilenceDetector) removeAll(buf *audio.Buffer) error {
	segments, err := d.DetectSilence(buf)
	if err != nil || len(segments) == 0 {
		return err
	}

	fade, err := d.fadeFrames(buf.SampleRate)
	if err != nil {
		return err
	}

	ch := int(buf.Channels)
	frames := buf.Frames()
	out := make([]float32, 0, len(buf.Data))
	prev := 0

	keep := func(from, to int) {
		if from >= to {
			return
		}
		n := len(out)
		out = append(out, buf.Data[from*ch:to*ch]...)
		piece := out[n:]
		if from > 0 {
			fadeIn(piece, ch, fade)
		}
		if to < frames {
			fadeOut(piece, ch, fade)
		}
	}

	removed := 0
	for _, s := range segments {
		keep(prev, s.Start)
		removed += s.Frames()
		prev = s.End
	}
	keep(prev, frames)

	d.logger.Debug("removed silence",
		zap.Int("segments", len(segments)),
		zap.Int("frames", removed),
	)

	buf.Data = out

	return nil
}

func (d *SilenceDetector) minFrames(rate uint32) (int, error) {
	n, err := utils.DurationToSamples(d.cfg.MinDuration, rate)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSilenceDetector, err)
	}

	return max(n, 1), nil
}

func (d *SilenceDetector) fadeFrames(rate uint32) (int, error) {
	n, err := utils.DurationToSamples(d.cfg.FadeDuration, rate)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSilenceDetector, err)
	}

	return n, nil
}

func newSegment(start, end int, rate uint32) (SilenceSegment, error) {
	secs, err := utils.SamplesToSeconds(end-start, rate)
	if err != nil {
		return SilenceSegment{}, fmt.Errorf("%w: %w", ErrSilenceDetector, err)
	}

	return SilenceSegment{Start: start, End: end, Duration: secs}, nil
}

func frameSilent(frame []float32, thr float32) bool {
	for _, s := range frame {
		if float32(math.Abs(float64(s))) > thr {
			return false
		}
	}

	return true
}

// fadeIn ramps the first n frames of data from 0 to 1.
func fadeIn(data []float32, ch, n int) {
	n = min(n, len(data)/ch)
	for f := range n {
		g := float32(f) / float32(n)
		for c := range ch {
			data[f*ch+c] *= g
		}
	}
}

// fadeOut ramps the last n frames of data from 1 to 0.
func fadeOut(data []float32, ch, n int) {
	frames := len(data) / ch
	n = min(n, frames)
	for i := range n {
		g := float32(i) / float32(n)
		f := frames - 1 - i
		for c := range ch {
			data[f*ch+c] *= g
		}
	}
}

func (d *SilenceDetector) Reset() {}

func (d *SilenceDetector) Validate() error { return d.cfg.Validate() }

func (d *SilenceDetector) LatencySamples() int { return 0 }

func (d *SilenceDetector) Configure(cfg SilenceDetectorConfig) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	d.cfg = cfg

	return nil
}

func (d *SilenceDetector) Config() SilenceDetectorConfig { return d.cfg }
