// SPDX-License-Identifier: EPL-2.0

package vorbis

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/jfreymuth/oggvorbis"

	"github.com/ik5/audpipe/audio"
)

const (
	trackID      = 0
	packetFrames = 1024
)

// oggReader is an interface for oggvorbis.Reader to allow testing
type oggReader interface {
	SampleRate() int
	Channels() int
	Length() int64
	SetPosition(pos int64) error
	// Read fills p with interleaved samples and returns the number of
	// values written.
	Read(p []float32) (int, error)
}

// Container describes Ogg Vorbis for audio.Registry.
func Container() audio.Container {
	return audio.Container{
		Name:       "vorbis",
		Extensions: []string{"ogg", "oga"},
		Sniff:      Sniff,
		Open: func(rs io.ReadSeeker) (audio.FormatReader, error) {
			return Open(rs)
		},
	}
}

// Sniff reports whether header starts with an Ogg page.
func Sniff(header []byte) bool {
	return len(header) >= 4 && bytes.Equal(header[:4], []byte("OggS"))
}

// Reader exposes oggvorbis output as F32LE PCM packets.
type Reader struct {
	dec      oggReader
	track    audio.Track
	channels int
	samples  []float32
	buf      []byte
	pos      uint64
}

// Open reads the Vorbis identification headers from rs.
func Open(rs io.ReadSeeker) (*Reader, error) {
	dec, err := oggvorbis.NewReader(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotVorbisFile, err)
	}

	return newReader(dec)
}

func newReader(dec oggReader) (*Reader, error) {
	ch := dec.Channels()
	rate := dec.SampleRate()
	if ch <= 0 || rate <= 0 {
		return nil, fmt.Errorf("%w: %d channels at %d Hz", ErrNotVorbisFile, ch, rate)
	}

	params := audio.CodecParams{
		Codec:        audio.CodecPCM,
		SampleRate:   uint32(rate),
		Channels:     uint16(ch),
		NativeFormat: audio.NativeF32,
		ByteOrder:    binary.LittleEndian,
		TimeBase:     &audio.TimeBase{Numer: 1, Denom: uint32(rate)},
	}

	if n := dec.Length(); n > 0 {
		params.FrameCount = uint64(n)
	}

	return &Reader{
		dec:      dec,
		track:    audio.Track{ID: trackID, Params: params},
		channels: ch,
		samples:  make([]float32, packetFrames*ch),
		buf:      make([]byte, packetFrames*ch*4),
	}, nil
}

func (r *Reader) Tracks() []audio.Track { return []audio.Track{r.track} }

// NextPacket returns up to 1024 frames. Data is only valid until the
// next call.
func (r *Reader) NextPacket() (audio.Packet, error) {
	n := 0
	for n < len(r.samples) {
		got, err := r.dec.Read(r.samples[n:])
		n += got

		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return audio.Packet{}, fmt.Errorf("%w", err)
		}
		if got == 0 {
			break
		}
	}

	n -= n % r.channels
	if n == 0 {
		return audio.Packet{}, io.EOF
	}

	data := r.buf[:n*4]
	for i, v := range r.samples[:n] {
		binary.LittleEndian.PutUint32(data[i*4:], math.Float32bits(v))
	}

	pkt := audio.Packet{TrackID: trackID, Timestamp: r.pos, Data: data}
	r.pos += uint64(n / r.channels)

	return pkt, nil
}

// Seek moves to frame ts.
func (r *Reader) Seek(_ uint32, ts uint64) (uint64, error) {
	if r.track.Params.FrameCount > 0 {
		ts = min(ts, r.track.Params.FrameCount)
	}

	if err := r.dec.SetPosition(int64(ts)); err != nil {
		return 0, fmt.Errorf("%w", err)
	}
	r.pos = ts

	return ts, nil
}

func (r *Reader) Close() error { return nil }

var _ audio.FormatReader = (*Reader)(nil)
