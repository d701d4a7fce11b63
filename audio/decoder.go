// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"go.uber.org/zap"

	"github.com/ik5/audpipe/utils"
)

const defaultBufSize = 4096

// Decoder pulls packets from one track and normalizes them into
// canonical float32 PCM. A Decoder must not be used from more than one
// goroutine at a time.
type Decoder struct {
	format FormatReader
	codec  PacketDecoder
	track  Track
	stream Stream

	// scratch is reused by every NextPacket call.
	scratch []float32

	// pending and cursor back the Source view.
	pending []float32
	cursor  int

	// frames delivered by NextPacket since open or the last seek.
	position uint64

	closer   io.Closer
	logger   *zap.Logger
	warnedS8 bool
}

// Open probes rs with the containers in reg and returns a decoder for
// the first playable track.
func Open(rs io.ReadSeeker, hint Hint, reg *Registry, opts ...Option) (*Decoder, error) {
	fr, err := reg.Probe(rs, hint)
	if err != nil {
		return nil, err
	}

	d, err := NewDecoder(fr, reg, opts...)
	if err != nil {
		_ = fr.Close()
		return nil, err
	}

	return d, nil
}

// NewDecoder binds a decoder to an already opened format reader.
// The codec for the selected track is built from reg.
func NewDecoder(fr FormatReader, reg *Registry, opts ...Option) (*Decoder, error) {
	o := applyOptions(opts)

	track, err := SelectTrack(fr.Tracks())
	if err != nil {
		return nil, err
	}

	codec, err := reg.MakeDecoder(track.Params)
	if err != nil {
		return nil, err
	}

	stream := streamFromParams(track.Params)

	o.logger.Debug("selected audio track",
		zap.Uint32("track", track.ID),
		zap.String("codec", string(track.Params.Codec)),
		zap.Stringer("native_format", track.Params.NativeFormat),
		zap.Uint32("sample_rate", stream.SampleRate),
		zap.Uint16("channels", stream.Channels),
		zap.Bool("seekable", track.Params.TimeBase != nil),
	)

	return &Decoder{
		format:  fr,
		codec:   codec,
		track:   track,
		stream:  stream,
		scratch: make([]float32, 0, defaultBufSize),
		closer:  o.closer,
		logger:  o.logger,
	}, nil
}

func (d *Decoder) Stream() Stream { return d.stream }
func (d *Decoder) Track() Track   { return d.track }

// NextPacket decodes the next packet of the selected track. It returns
// nil and io.EOF once the stream has ended cleanly.
//
// The returned buffer is owned by the caller.
func (d *Decoder) NextPacket() (*Buffer, error) {
	d.scratch = d.scratch[:0]

	for {
		pkt, err := d.format.NextPacket()
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
				return nil, io.EOF
			}

			return nil, fmt.Errorf("%w: %w", ErrPacketRead, err)
		}

		if pkt.TrackID != d.track.ID {
			continue
		}

		native, err := d.codec.Decode(pkt)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrDecode, err)
		}

		if native.NativeFormat() == NativeS8 && !d.warnedS8 {
			d.warnedS8 = true
			d.logger.Warn("signed 8-bit samples are not supported, dropping packet data",
				zap.Uint32("track", d.track.ID),
				zap.Uint64("timestamp", pkt.Timestamp),
			)
		}

		d.scratch = AppendInterleaved(d.scratch, native)
		break
	}

	if len(d.scratch)%int(d.stream.Channels) != 0 {
		return nil, fmt.Errorf("%w: %d samples do not fill %d-channel frames",
			ErrDecode, len(d.scratch), d.stream.Channels)
	}

	d.position += uint64(len(d.scratch) / int(d.stream.Channels))

	return NewBuffer(slices.Clone(d.scratch), d.stream.SampleFormat, d.stream.SampleRate, d.stream.Channels), nil
}

// Position reports how many frames NextPacket has returned since the
// decoder was opened or last seeked.
func (d *Decoder) Position() uint64 { return d.position }

// Seek moves the decoder to roughly seconds into the track.
func (d *Decoder) Seek(seconds float64) error {
	_, err := d.SeekTo(seconds)
	return err
}

// SeekTo is Seek that also reports where the container actually landed,
// in seconds. The landing point may precede the request by up to one
// packet.
func (d *Decoder) SeekTo(seconds float64) (float64, error) {
	tb := d.track.Params.TimeBase
	if tb == nil || tb.Numer == 0 || tb.Denom == 0 {
		return 0, ErrNoTimeBase
	}

	ticks, err := utils.Float64ToUint64(seconds * float64(tb.Denom) / float64(tb.Numer))
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSeek, err)
	}

	actual, err := d.format.Seek(d.track.ID, ticks)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrSeek, err)
	}

	d.codec.Reset()
	d.scratch = d.scratch[:0]
	d.pending = nil
	d.cursor = 0
	d.position = 0

	landed := float64(actual) * float64(tb.Numer) / float64(tb.Denom)

	d.logger.Debug("seek",
		zap.Float64("requested", seconds),
		zap.Uint64("ticks", ticks),
		zap.Float64("landed", landed),
	)

	return landed, nil
}

func (d *Decoder) SampleRate() int { return int(d.stream.SampleRate) }
func (d *Decoder) Channels() int   { return int(d.stream.Channels) }
func (d *Decoder) BufSize() int    { return max(cap(d.scratch), defaultBufSize) }

// ReadSamples implements Source on top of NextPacket.
func (d *Decoder) ReadSamples(dst []float32) (int, error) {
	if len(dst)%int(d.stream.Channels) != 0 {
		return 0, ErrInvalidDstSize
	}

	n := 0
	for n < len(dst) {
		if d.cursor >= len(d.pending) {
			buf, err := d.NextPacket()
			if err != nil {
				return n, err
			}

			d.pending, d.cursor = buf.Data, 0
			continue
		}

		c := copy(dst[n:], d.pending[d.cursor:])
		d.cursor += c
		n += c
	}

	return n, nil
}

// Close releases the format reader and any resource given with WithCloser.
func (d *Decoder) Close() error {
	var errs []error

	if err := d.format.Close(); err != nil {
		errs = append(errs, err)
	}

	if d.closer != nil {
		if err := d.closer.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}

	return nil
}

var _ Source = (*Decoder)(nil)
