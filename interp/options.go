package interp

import "github.com/netkatgo/netkat/fdd"

// Options configures Eval's walk, in the manner of the teacher's
// bfs.BFSOptions: no-op hooks by default, overridden one at a time via
// functional Option values.
type Options struct {
	// OnVisit is called with the handle reached and its depth from the
	// root, before that node is interpreted (branch test or leaf
	// application). If it returns an error, Eval aborts and propagates
	// that error wrapped in ErrOnVisit.
	OnVisit func(depth int, reached fdd.Handle) error
}

// Option configures Eval via functional arguments.
type Option func(*Options)

// DefaultOptions returns an Options with a no-op OnVisit hook.
func DefaultOptions() Options {
	return Options{
		OnVisit: func(int, fdd.Handle) error { return nil },
	}
}

// WithOnVisit registers a callback run at every node Eval's walk steps
// through.
func WithOnVisit(fn func(depth int, reached fdd.Handle) error) Option {
	return func(o *Options) {
		if fn != nil {
			o.OnVisit = fn
		}
	}
}
