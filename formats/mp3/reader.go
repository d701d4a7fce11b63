// SPDX-License-Identifier: EPL-2.0

package mp3

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	gomp3 "github.com/hajimehoshi/go-mp3"

	"github.com/ik5/audpipe/audio"
)

const (
	trackID      = 0
	packetFrames = 1152
)

// go-mp3 always decodes to 16-bit little-endian stereo.
const (
	channels      = 2
	bytesPerFrame = 4
)

// mp3Reader is an interface for gomp3.Decoder to allow testing
type mp3Reader interface {
	Read([]byte) (int, error)
	Seek(offset int64, whence int) (int64, error)
	SampleRate() int
	Length() int64
}

// Container describes MP3 for audio.Registry.
func Container() audio.Container {
	return audio.Container{
		Name:       "mp3",
		Extensions: []string{"mp3"},
		Sniff:      Sniff,
		Open: func(rs io.ReadSeeker) (audio.FormatReader, error) {
			return Open(rs)
		},
	}
}

// Sniff reports whether header starts with an ID3v2 tag or an MPEG audio
// frame sync.
func Sniff(header []byte) bool {
	if len(header) >= 3 && bytes.Equal(header[:3], []byte("ID3")) {
		return true
	}

	return len(header) >= 2 && header[0] == 0xFF && header[1]&0xE0 == 0xE0
}

// Reader exposes go-mp3 output as S16LE stereo PCM packets.
type Reader struct {
	dec   mp3Reader
	track audio.Track
	buf   []byte
	pos   uint64
}

// Open decodes the first frame header of rs.
func Open(rs io.ReadSeeker) (*Reader, error) {
	dec, err := gomp3.NewDecoder(rs)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotMP3File, err)
	}

	return newReader(dec), nil
}

func newReader(dec mp3Reader) *Reader {
	rate := uint32(dec.SampleRate())

	params := audio.CodecParams{
		Codec:        audio.CodecPCM,
		SampleRate:   rate,
		Channels:     channels,
		NativeFormat: audio.NativeS16,
		ByteOrder:    binary.LittleEndian,
		TimeBase:     &audio.TimeBase{Numer: 1, Denom: rate},
	}

	if n := dec.Length(); n > 0 {
		params.FrameCount = uint64(n / bytesPerFrame)
	}

	return &Reader{
		dec:   dec,
		track: audio.Track{ID: trackID, Params: params},
		buf:   make([]byte, packetFrames*bytesPerFrame),
	}
}

func (r *Reader) Tracks() []audio.Track { return []audio.Track{r.track} }

// NextPacket returns up to one MPEG frame worth of samples. Data is only
// valid until the next call.
func (r *Reader) NextPacket() (audio.Packet, error) {
	n, err := io.ReadFull(r.dec, r.buf)
	n -= n % bytesPerFrame

	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return audio.Packet{}, fmt.Errorf("%w", err)
	}

	if n == 0 {
		return audio.Packet{}, io.EOF
	}

	pkt := audio.Packet{TrackID: trackID, Timestamp: r.pos, Data: r.buf[:n]}
	r.pos += uint64(n / bytesPerFrame)

	return pkt, nil
}

// Seek moves to frame ts. go-mp3 seeks within the decoded stream, so the
// landing point is exact.
func (r *Reader) Seek(_ uint32, ts uint64) (uint64, error) {
	if r.track.Params.FrameCount > 0 {
		ts = min(ts, r.track.Params.FrameCount)
	}

	off, err := r.dec.Seek(int64(ts)*bytesPerFrame, io.SeekStart)
	if err != nil {
		return 0, fmt.Errorf("%w", err)
	}

	r.pos = uint64(off / bytesPerFrame)

	return r.pos, nil
}

func (r *Reader) Close() error { return nil }

var _ audio.FormatReader = (*Reader)(nil)
