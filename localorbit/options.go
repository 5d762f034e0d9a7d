// SPDX-License-Identifier: MIT

package localorbit

import (
	"io"
	"runtime"

	"github.com/charmbracelet/log"
)

// Option configures New.
type Option func(*options)

type options struct {
	workers int
	logger  *log.Logger
}

// WithWorkers bounds the number of local orbit lists FullOrbitList builds
// concurrently (default GOMAXPROCS). Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic("localorbit: WithWorkers: n must be >= 1")
	}

	return func(o *options) { o.workers = n }
}

// WithLogger routes progress messages to logger. Panics on nil.
func WithLogger(logger *log.Logger) Option {
	if logger == nil {
		panic("localorbit: WithLogger: nil logger")
	}

	return func(o *options) { o.logger = logger }
}

func gatherOptions(opts ...Option) options {
	o := options{workers: runtime.GOMAXPROCS(0)}
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
