// SPDX-License-Identifier: EPL-2.0

package audio

import (
	"io"

	"go.uber.org/zap"
)

type options struct {
	logger *zap.Logger
	closer io.Closer
}

// Option configures a Decoder.
type Option func(*options)

// WithLogger sets the logger used for track selection, seeks and
// dropped-sample warnings. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithCloser registers a resource, usually the underlying file, that
// Decoder.Close releases after the format reader.
func WithCloser(c io.Closer) Option {
	return func(o *options) {
		o.closer = c
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
