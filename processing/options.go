// SPDX-License-Identifier: EPL-2.0

package processing

import "go.uber.org/zap"

type options struct {
	logger *zap.Logger
}

// Option configures a stage or a Pipeline.
type Option func(*options)

// WithLogger sets the logger for per-stage debug output.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

func applyOptions(opts []Option) options {
	o := options{logger: zap.NewNop()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
