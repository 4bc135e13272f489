package taxostore

import (
	"io"
	"log/slog"

	"github.com/arthur-debert/taxostore/taxostore/ids"
	"github.com/arthur-debert/taxostore/taxostore/store"
)

type options struct {
	ids       ids.Generator
	logger    *slog.Logger
	storeOpts []store.Option
}

// Option configures a Catalog.
type Option func(*options)

// WithIDGenerator replaces the UUID identifier generator.
func WithIDGenerator(g ids.Generator) Option {
	return func(o *options) { o.ids = g }
}

// WithFileSystem replaces the os-backed file system for all collections.
func WithFileSystem(fs store.FileSystem) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, store.WithFileSystem(fs)) }
}

// WithFileLockFactory replaces the flock-backed locks for all collections.
func WithFileLockFactory(f store.FileLockFactory) Option {
	return func(o *options) { o.storeOpts = append(o.storeOpts, store.WithFileLockFactory(f)) }
}

// WithLogger sets the logger for the catalog and its collections.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.ids == nil {
		o.ids = ids.UUIDGenerator{}
	}
	if o.logger == nil {
		o.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	o.storeOpts = append(o.storeOpts, store.WithLogger(o.logger))
	return o
}
