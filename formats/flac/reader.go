// SPDX-License-Identifier: EPL-2.0

package flac

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/mewkiz/flac"
	"github.com/mewkiz/flac/frame"

	"github.com/ik5/audpipe/audio"
)

const trackID = 0

// frameStream is an interface for flac.Stream to allow testing
type frameStream interface {
	ParseNext() (*frame.Frame, error)
	Seek(sampleNum uint64) (uint64, error)
}

// Container describes FLAC for audio.Registry.
func Container() audio.Container {
	return audio.Container{
		Name:       "flac",
		Extensions: []string{"flac"},
		Sniff:      Sniff,
		Open: func(rs io.ReadSeeker) (audio.FormatReader, error) {
			return Open(rs)
		},
	}
}

// Sniff reports whether header starts with the fLaC marker.
func Sniff(header []byte) bool {
	return len(header) >= 4 && bytes.Equal(header[:4], []byte("fLaC"))
}

// Reader emits one little-endian PCM packet per FLAC frame. Samples are
// shifted up to fill the packet width, so 20-bit audio arrives as S24.
type Reader struct {
	stream   frameStream
	track    audio.Track
	channels int
	width    int
	shift    uint
	buf      []byte
	pos      uint64
}

// Open parses the FLAC metadata blocks of rs.
func Open(rs io.ReadSeeker) (*Reader, error) {
	stream, err := flac.NewSeek(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFlacFile, err)
	}

	info := stream.Info

	return newReader(stream, info.SampleRate, int(info.NChannels), int(info.BitsPerSample), info.NSamples)
}

func newReader(stream frameStream, rate uint32, channels, bps int, frames uint64) (*Reader, error) {
	if rate == 0 || channels < 1 || bps < 4 || bps > 32 {
		return nil, fmt.Errorf("%w: %d channels, %d bits at %d Hz", ErrUnsupportedFlacLayout, channels, bps, rate)
	}

	nf := nativeFormat(bps)
	width := nf.Width()

	return &Reader{
		stream: stream,
		track: audio.Track{ID: trackID, Params: audio.CodecParams{
			Codec:        audio.CodecPCM,
			SampleRate:   rate,
			Channels:     uint16(channels),
			NativeFormat: nf,
			ByteOrder:    binary.LittleEndian,
			FrameCount:   frames,
			TimeBase:     &audio.TimeBase{Numer: 1, Denom: rate},
		}},
		channels: channels,
		width:    width,
		shift:    uint(width*8 - bps),
	}, nil
}

func nativeFormat(bps int) audio.NativeFormat {
	switch {
	case bps <= 8:
		return audio.NativeS8
	case bps <= 16:
		return audio.NativeS16
	case bps <= 24:
		return audio.NativeS24
	default:
		return audio.NativeS32
	}
}

func (r *Reader) Tracks() []audio.Track { return []audio.Track{r.track} }

// NextPacket decodes the next FLAC frame. Data is only valid until the
// next call.
func (r *Reader) NextPacket() (audio.Packet, error) {
	f, err := r.stream.ParseNext()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return audio.Packet{}, io.EOF
		}
		return audio.Packet{}, fmt.Errorf("%w", err)
	}

	if len(f.Subframes) != r.channels {
		return audio.Packet{}, fmt.Errorf("%w: frame has %d channels, stream has %d",
			ErrUnsupportedFlacLayout, len(f.Subframes), r.channels)
	}

	frames := len(f.Subframes[0].Samples)
	for _, sf := range f.Subframes[1:] {
		frames = min(frames, len(sf.Samples))
	}

	size := frames * r.channels * r.width
	if cap(r.buf) < size {
		r.buf = make([]byte, size)
	}
	data := r.buf[:size]

	for i := range frames {
		for c, sf := range f.Subframes {
			off := (i*r.channels + c) * r.width
			audio.PutPCM(data[off:], int64(sf.Samples[i])<<r.shift, r.width, binary.LittleEndian)
		}
	}

	pkt := audio.Packet{TrackID: trackID, Timestamp: r.pos, Data: data}
	r.pos += uint64(frames)

	return pkt, nil
}

// Seek lands on the start of the frame containing sample ts.
func (r *Reader) Seek(_ uint32, ts uint64) (uint64, error) {
	if n := r.track.Params.FrameCount; n > 0 && ts >= n {
		ts = n - 1
	}

	landed, err := r.stream.Seek(ts)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	r.pos = landed

	return landed, nil
}

// Close is a no-op; the caller owns rs.
func (r *Reader) Close() error { return nil }

var _ audio.FormatReader = (*Reader)(nil)
