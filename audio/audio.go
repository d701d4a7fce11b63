// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"fmt"
	"slices"

	"github.com/ik5/audpipe/utils"
)

// Source is a pull-based view of decoded PCM.
type Source interface {
	// SampleRate of the PCM stream in Hz.
	SampleRate() int
	// Channels count (e.g., 1=mono, 2=stereo).
	Channels() int
	// ReadSamples fills dst with interleaved float32 samples in [-1,1].
	// Returns number of float32 values written (not frames). When n == 0 with err == io.EOF, the stream is finished.
	ReadSamples(dst []float32) (n int, err error)

	BufSize() int

	// Close releases any resources.
	Close() error
}

const (
	defaultSampleRate uint32 = 44100
	defaultChannels   uint16 = 2
)

// Stream describes the audio a Decoder produces. It is fixed once the
// decoder is open.
type Stream struct {
	SampleRate   uint32
	Channels     uint16
	SampleFormat SampleFormat
	// Duration in seconds, meaningful only when DurationKnown is set.
	Duration      float64
	DurationKnown bool
}

// streamFromParams fills in defaults for anything the container left out.
func streamFromParams(p CodecParams) Stream {
	s := Stream{
		SampleRate:   p.SampleRate,
		Channels:     p.Channels,
		SampleFormat: p.NativeFormat.SampleFormat(),
	}

	if s.SampleRate == 0 {
		s.SampleRate = defaultSampleRate
	}

	if s.Channels == 0 {
		s.Channels = defaultChannels
	}

	if !s.SampleFormat.Valid() {
		s.SampleFormat = F32
	}

	if p.FrameCount > 0 && p.FrameCount <= utils.MaxExactInt {
		if d, err := utils.SamplesToSeconds(int(p.FrameCount), s.SampleRate); err == nil {
			s.Duration, s.DurationKnown = d, true
		}
	}

	return s
}

// Buffer is interleaved canonical PCM.
type Buffer struct {
	Data       []float32
	Format     SampleFormat
	SampleRate uint32
	Channels   uint16
}

// NewBuffer wraps data without copying it.
func NewBuffer(data []float32, format SampleFormat, sampleRate uint32, channels uint16) *Buffer {
	return &Buffer{
		Data:       data,
		Format:     format,
		SampleRate: sampleRate,
		Channels:   channels,
	}
}

// Frames returns the number of complete frames in the buffer.
func (b *Buffer) Frames() int {
	if b.Channels == 0 {
		return 0
	}

	return len(b.Data) / int(b.Channels)
}

// Duration returns the playing time in seconds, or 0 when the buffer
// has no sample rate.
func (b *Buffer) Duration() float64 {
	d, err := utils.SamplesToSeconds(b.Frames(), b.SampleRate)
	if err != nil {
		return 0
	}

	return d
}

func (b *Buffer) Clone() *Buffer {
	c := *b
	c.Data = slices.Clone(b.Data)

	return &c
}

// Validate checks the buffer invariants every stage relies on.
func (b *Buffer) Validate() error {
	switch {
	case b.Channels == 0:
		return fmt.Errorf("%w: channel count is zero", ErrInvalidBuffer)
	case b.SampleRate == 0:
		return fmt.Errorf("%w: sample rate is zero", ErrInvalidBuffer)
	case len(b.Data)%int(b.Channels) != 0:
		return fmt.Errorf("%w: %d samples is not a multiple of %d channels",
			ErrInvalidBuffer, len(b.Data), b.Channels)
	}

	return nil
}
