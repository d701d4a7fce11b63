// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"errors"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
)

// sniffLen is how many leading bytes Probe hands to Container.Sniff.
const sniffLen = 16

// Container describes one container format the Registry can open.
type Container struct {
	Name       string
	Extensions []string
	// Sniff reports whether header (up to 16 leading bytes) looks like
	// this container.
	Sniff func(header []byte) bool
	Open  func(rs io.ReadSeeker) (FormatReader, error)
}

// Registry for containers by name (e.g., "wav", "mp3", "vorbis") and
// codecs by CodecType.
type Registry struct {
	containers map[string]Container
	order      []string
	codecs     map[CodecType]CodecConstructor

	mtx *sync.Mutex
}

// NewRegistry returns a registry that knows the PCM codec and no containers.
func NewRegistry() *Registry {
	r := &Registry{
		containers: make(map[string]Container),
		codecs:     make(map[CodecType]CodecConstructor),
		mtx:        &sync.Mutex{},
	}
	r.codecs[CodecPCM] = NewPCMDecoder

	return r
}

// Register adds c, replacing any container with the same name.
// Probe tries containers in the order they were first registered.
func (r *Registry) Register(c Container) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if _, ok := r.containers[c.Name]; !ok {
		r.order = append(r.order, c.Name)
	}
	r.containers[c.Name] = c
}

func (r *Registry) Get(name string) (Container, bool) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	c, ok := r.containers[name]
	return c, ok
}

// Names lists registered containers in probe order.
func (r *Registry) Names() []string {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	return slices.Clone(r.order)
}

func (r *Registry) RegisterCodec(codec CodecType, ctor CodecConstructor) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	r.codecs[codec] = ctor
}

// MakeDecoder builds the packet decoder for a track's codec.
func (r *Registry) MakeDecoder(params CodecParams) (PacketDecoder, error) {
	r.mtx.Lock()
	ctor, ok := r.codecs[params.Codec]
	r.mtx.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: unknown codec %q", ErrDecoderCreation, params.Codec)
	}

	dec, err := ctor(params)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecoderCreation, err)
	}

	return dec, nil
}

// Probe detects the container of rs and opens it. Containers whose magic
// bytes match are tried first, then those matching hint's extension.
func (r *Registry) Probe(rs io.ReadSeeker, hint Hint) (FormatReader, error) {
	header, err := peek(rs, sniffLen)
	if err != nil {
		return nil, err
	}

	ext := strings.ToLower(strings.TrimPrefix(hint.Extension, "."))

	r.mtx.Lock()
	var sniffed, hinted []Container
	for _, name := range r.order {
		c := r.containers[name]
		switch {
		case c.Sniff != nil && c.Sniff(header):
			sniffed = append(sniffed, c)
		case ext != "" && slices.Contains(c.Extensions, ext):
			hinted = append(hinted, c)
		}
	}
	r.mtx.Unlock()

	var lastErr error
	for _, c := range append(sniffed, hinted...) {
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrIO, err)
		}

		fr, err := c.Open(rs)
		if err == nil {
			return fr, nil
		}
		lastErr = fmt.Errorf("%s: %w", c.Name, err)
	}

	if lastErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormatProbe, lastErr)
	}

	return nil, ErrFormatProbe
}

// peek reads up to n bytes and rewinds rs.
func peek(rs io.ReadSeeker, n int) ([]byte, error) {
	header := make([]byte, n)

	read, err := io.ReadFull(rs, header)
	if err != nil && !errors.Is(err, io.EOF) && !errors.Is(err, io.ErrUnexpectedEOF) {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	if _, err := rs.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	return header[:read], nil
}

// SelectTrack returns the first track with a codec.
func SelectTrack(tracks []Track) (Track, error) {
	for _, t := range tracks {
		if t.Params.Codec != CodecNull {
			return t, nil
		}
	}

	return Track{}, ErrNoSupportedTrack
}
