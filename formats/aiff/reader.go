// SPDX-License-Identifier: EPL-2.0

package aiff

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/go-audio/aiff"
	goaudio "github.com/go-audio/audio"

	"github.com/ik5/audpipe/audio"
)

const (
	trackID      = 0
	packetFrames = 1024
)

// aiffReader is an interface for aiff.Decoder to allow testing
type aiffReader interface {
	Format() *goaudio.Format
	PCMBuffer(buf *goaudio.IntBuffer) (int, error)
}

// Container describes AIFF and uncompressed AIFF-C for audio.Registry.
func Container() audio.Container {
	return audio.Container{
		Name:       "aiff",
		Extensions: []string{"aiff", "aif", "aifc"},
		Sniff:      Sniff,
		Open: func(rs io.ReadSeeker) (audio.FormatReader, error) {
			return Open(rs)
		},
	}
}

// Sniff reports whether header starts with a FORM/AIFF or FORM/AIFC
// signature.
func Sniff(header []byte) bool {
	if len(header) < 12 || !bytes.Equal(header[0:4], []byte("FORM")) {
		return false
	}

	form := string(header[8:12])
	return form == "AIFF" || form == "AIFC"
}

// Reader repacks the integer samples go-audio/aiff produces into
// big-endian PCM packets.
//
// AIFF carries no seek table here, so the track has no time base and
// audio.Decoder refuses to seek it.
type Reader struct {
	dec      aiffReader
	track    audio.Track
	channels int
	width    int
	intBuf   *goaudio.IntBuffer
	buf      []byte
	frames   uint64
	err      error
}

// Open validates the FORM header and reads the COMM chunk.
func Open(rs io.ReadSeeker) (*Reader, error) {
	dec := aiff.NewDecoder(rs)
	if !dec.IsValidFile() {
		return nil, ErrNotAiffFile
	}

	dec.ReadInfo()

	format := dec.Format()
	if format == nil || format.NumChannels <= 0 || format.SampleRate <= 0 {
		return nil, ErrUnsupportedAiffLayout
	}

	return newReader(dec, format, int(dec.BitDepth), uint64(dec.NumSampleFrames)), nil
}

func newReader(dec aiffReader, format *goaudio.Format, bitDepth int, frameCount uint64) *Reader {
	params := audio.CodecParams{
		Codec:      audio.CodecNull,
		SampleRate: uint32(format.SampleRate),
		Channels:   uint16(format.NumChannels),
		ByteOrder:  binary.BigEndian,
		FrameCount: frameCount,
	}

	width := 0
	if nf, ok := nativeFormat(bitDepth); ok {
		params.Codec = audio.CodecPCM
		params.NativeFormat = nf
		width = nf.Width()
	}

	n := packetFrames * format.NumChannels

	return &Reader{
		dec:      dec,
		track:    audio.Track{ID: trackID, Params: params},
		channels: format.NumChannels,
		width:    width,
		intBuf: &goaudio.IntBuffer{
			Data:           make([]int, n),
			Format:         format,
			SourceBitDepth: bitDepth,
		},
		buf: make([]byte, n*width),
	}
}

// AIFF integer samples are always signed.
func nativeFormat(bitDepth int) (audio.NativeFormat, bool) {
	switch bitDepth {
	case 8:
		return audio.NativeS8, true
	case 16:
		return audio.NativeS16, true
	case 24:
		return audio.NativeS24, true
	case 32:
		return audio.NativeS32, true
	}

	return 0, false
}

func (r *Reader) Tracks() []audio.Track { return []audio.Track{r.track} }

// NextPacket returns up to 1024 frames. Data is only valid until the
// next call.
func (r *Reader) NextPacket() (audio.Packet, error) {
	if r.err != nil {
		return audio.Packet{}, r.err
	}

	if r.width == 0 {
		return audio.Packet{}, io.EOF
	}

	r.intBuf.Data = r.intBuf.Data[:cap(r.intBuf.Data)]

	n, err := r.dec.PCMBuffer(r.intBuf)
	n -= n % r.channels

	switch {
	case err == nil:
	case errors.Is(err, io.EOF), errors.Is(err, io.ErrUnexpectedEOF):
		r.err = io.EOF
	default:
		r.err = fmt.Errorf("%w", err)
	}

	if n <= 0 {
		if r.err == nil {
			r.err = io.EOF
		}
		return audio.Packet{}, r.err
	}

	data := r.buf[:n*r.width]
	for i, v := range r.intBuf.Data[:n] {
		audio.PutPCM(data[i*r.width:], int64(v), r.width, binary.BigEndian)
	}

	pkt := audio.Packet{TrackID: trackID, Timestamp: r.frames, Data: data}
	r.frames += uint64(n / r.channels)

	return pkt, nil
}

// Seek is not supported; the track advertises no time base.
func (r *Reader) Seek(uint32, uint64) (uint64, error) {
	return 0, audio.ErrNoTimeBase
}

func (r *Reader) Close() error { return nil }

var _ audio.FormatReader = (*Reader)(nil)
