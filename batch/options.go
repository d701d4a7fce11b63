// SPDX-License-Identifier: EPL-2.0

package batch

import "go.uber.org/zap"

// ProgressFunc is called once per finished file, successful or not.
// Calls are serialized; done counts finished files so far.
type ProgressFunc func(done, total int, path string)

type options struct {
	logger   *zap.Logger
	progress ProgressFunc
}

// Option configures a FileProcessor or a Processor.
type Option func(*options)

// WithLogger sets the logger shared by the processors, their pipelines
// and the decoders they open.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithProgress registers a progress callback. It is ignored by
// FileProcessor.
func WithProgress(fn ProgressFunc) Option {
	return func(o *options) {
		o.progress = fn
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
