// SPDX-License-Identifier: EPL-2.0

package audpipe

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ik5/audpipe/audio"
	"github.com/ik5/audpipe/formats/aiff"
	"github.com/ik5/audpipe/formats/flac"
	"github.com/ik5/audpipe/formats/mp3"
	"github.com/ik5/audpipe/formats/vorbis"
	"github.com/ik5/audpipe/formats/wav"
)

// DefaultRegistry returns a registry holding every bundled container:
// WAV, AIFF, MP3, Ogg Vorbis and FLAC, probed in that order. Each call
// returns a fresh registry that callers may extend.
func DefaultRegistry() *audio.Registry {
	reg := audio.NewRegistry()
	reg.Register(wav.Container())
	reg.Register(aiff.Container())
	reg.Register(mp3.Container())
	reg.Register(vorbis.Container())
	reg.Register(flac.Container())

	return reg
}

// Open probes rs against DefaultRegistry.
func Open(rs io.ReadSeeker, hint audio.Hint, opts ...audio.Option) (*audio.Decoder, error) {
	return audio.Open(rs, hint, DefaultRegistry(), opts...)
}

// OpenFile opens path and probes it, using the file extension as a hint.
// Closing the decoder closes the file.
func OpenFile(path string, opts ...audio.Option) (*audio.Decoder, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", audio.ErrIO, err)
	}

	dec, err := Open(f, audio.HintFromPath(path), append(opts, audio.WithCloser(f))...)
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return dec, nil
}

// PacketReader is the part of *audio.Decoder that DecodeAll needs.
type PacketReader interface {
	Stream() audio.Stream
	NextPacket() (*audio.Buffer, error)
}

// DecodeAll reads packets until the end of the stream and returns them as
// one buffer.
func DecodeAll(r PacketReader) (*audio.Buffer, error) {
	stream := r.Stream()
	out := audio.NewBuffer(nil, stream.SampleFormat, stream.SampleRate, stream.Channels)

	for {
		buf, err := r.NextPacket()
		if errors.Is(err, io.EOF) {
			return out, nil
		}

		if err != nil {
			return nil, err
		}

		out.Data = append(out.Data, buf.Data...)
	}
}
