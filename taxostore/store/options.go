package store

import (
	"io"
	"log/slog"
)

type options struct {
	fs          FileSystem
	lockFactory FileLockFactory
	logger      *slog.Logger
}

// Option configures a Collection.
type Option func(*options)

// WithFileSystem replaces the os-backed FileSystem.
func WithFileSystem(fs FileSystem) Option {
	return func(o *options) { o.fs = fs }
}

// WithFileLockFactory replaces the flock-backed lock factory.
func WithFileLockFactory(factory FileLockFactory) Option {
	return func(o *options) { o.lockFactory = factory }
}

// WithLogger sets the logger used for load and save events.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.fs == nil {
		o.fs = OSFileSystem{}
	}
	if o.lockFactory == nil {
		o.lockFactory = FlockFactory{}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return o
}
