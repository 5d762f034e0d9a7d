// SPDX-License-Identifier: MIT

package orbitlist

import (
	"io"

	"github.com/charmbracelet/log"
)

// Option configures New and FromStructure.
type Option func(*options)

type options struct {
	logger           *log.Logger
	consistencyCheck bool
}

// WithLogger routes construction progress to logger. Panics on nil.
func WithLogger(logger *log.Logger) Option {
	if logger == nil {
		panic("orbitlist: WithLogger: nil logger")
	}

	return func(o *options) { o.logger = logger }
}

// WithConsistencyCheck toggles the post-construction check that every
// equivalent tuple canonicalizes to its representative (default true).
func WithConsistencyCheck(enabled bool) Option {
	return func(o *options) { o.consistencyCheck = enabled }
}

func gatherOptions(opts ...Option) options {
	o := options{consistencyCheck: true}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	if o.logger == nil {
		o.logger = log.New(io.Discard)
	}

	return o
}
