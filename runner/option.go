package runner

import (
	"github.com/viant/afs"
	"go.uber.org/zap"
)

type Option func(*Runner)

// WithFS sets storage service used to read and write sources
func WithFS(fs afs.Service) Option {
	return func(r *Runner) {
		r.fs = fs
	}
}

// WithLogger sets logger
func WithLogger(logger *zap.Logger) Option {
	return func(r *Runner) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithConcurrency limits number of files analyzed in parallel
func WithConcurrency(concurrency int) Option {
	return func(r *Runner) {
		if concurrency > 0 {
			r.concurrency = concurrency
		}
	}
}

// WithFix enables writing fixed sources back
func WithFix(fix bool) Option {
	return func(r *Runner) {
		r.fix = fix
	}
}
