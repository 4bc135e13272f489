// Package store persists one kind of record as a JSON array on disk.
//
// A Collection is an in-memory mirror of its document: it is read once by
// Open and rewritten in full after every successful Upsert or Delete. Writes
// go to "<path>.tmp" and are renamed over the document, so readers never
// see a half-written file. Each load and save holds an exclusive flock on
// "<path>.lock".
//
// The mirror is not refreshed before writing. Two processes editing the
// same collection therefore resolve last-writer-wins at file granularity;
// within a process all access is serialized by a storage.LockManager.
package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/arthur-debert/taxostore/taxostore/ids"
	"github.com/arthur-debert/taxostore/taxostore/storage"
	"github.com/arthur-debert/taxostore/types"
)

// Collection is the ordered set of records of one kind backed by one JSON
// document.
type Collection[T types.Record[T]] struct {
	path     string
	kind     types.Kind
	ids      ids.Generator
	fs       FileSystem
	fileLock FileLock
	locks    *storage.LockManager
	logger   *slog.Logger

	records []T
}

// Open loads the collection stored at path. A missing or empty document
// yields an empty collection.
func Open[T types.Record[T]](path string, gen ids.Generator, opts ...Option) (*Collection[T], error) {
	o := buildOptions(opts)
	if gen == nil {
		gen = ids.UUIDGenerator{}
	}

	var zero T
	c := &Collection[T]{
		path:     path,
		kind:     zero.Kind(),
		ids:      gen,
		fs:       o.fs,
		fileLock: o.lockFactory.New(path + ".lock"),
		locks:    storage.NewLockManager(),
		logger:   o.logger.With("kind", string(zero.Kind())),
		records:  []T{},
	}

	if err := c.withLock(c.load); err != nil {
		return nil, err
	}
	c.logger.Debug("collection loaded", "path", path, "records", len(c.records))
	return c, nil
}

// Kind returns the record kind held by the collection.
func (c *Collection[T]) Kind() types.Kind { return c.kind }

// Path returns the backing document path.
func (c *Collection[T]) Path() string { return c.path }

// Len returns the current number of records.
func (c *Collection[T]) Len() int {
	n, _ := storage.Result(c.locks, storage.ReadOperation, func() (int, error) {
		return len(c.records), nil
	})
	return n
}

// List returns the records for which pred is true, in stored order. A nil
// pred selects every record. The returned slice is a copy.
func (c *Collection[T]) List(pred func(T) bool) []T {
	out, _ := storage.Result(c.locks, storage.ReadOperation, func() ([]T, error) {
		out := make([]T, 0, len(c.records))
		for _, rec := range c.records {
			if pred == nil || pred(rec) {
				out = append(out, rec)
			}
		}
		return out, nil
	})
	return out
}

// Get returns the record with the given id.
func (c *Collection[T]) Get(id string) (T, bool) {
	var zero T
	if id == "" {
		return zero, false
	}
	found := false
	rec, _ := storage.Result(c.locks, storage.ReadOperation, func() (T, error) {
		if i := c.indexOf(id); i >= 0 {
			found = true
			return c.records[i], nil
		}
		return zero, nil
	})
	return rec, found
}

// Upsert stores rec, replacing the record with the same id in place or
// appending it. An empty id is filled from the generator first. The document
// is saved before Upsert returns; if saving fails the in-memory collection
// is left as it was.
func (c *Collection[T]) Upsert(rec T) (T, error) {
	return storage.Result(c.locks, storage.WriteOperation, func() (T, error) {
		var zero T

		if rec.GetID() == "" {
			id, err := c.ids.Next(c.kind)
			if err != nil {
				return zero, err
			}
			rec = rec.WithID(id)
		}
		if err := rec.Validate(); err != nil {
			return zero, err
		}

		next := slices.Clone(c.records)
		replaced := false
		if i := c.indexOf(rec.GetID()); i >= 0 {
			next[i] = rec
			replaced = true
		} else {
			next = append(next, rec)
		}

		if err := c.saveWithLock(next); err != nil {
			return zero, err
		}
		c.records = next

		c.logger.Debug("record stored", "id", rec.GetID(), "replaced", replaced, "records", len(next))
		return rec, nil
	})
}

// Delete removes the first record with the given id and saves. It reports
// whether a record was removed; deleting an unknown id is not an error and
// does not touch the document.
func (c *Collection[T]) Delete(id string) (bool, error) {
	return storage.Result(c.locks, storage.WriteOperation, func() (bool, error) {
		i := c.indexOf(id)
		if i < 0 {
			return false, nil
		}

		next := slices.Delete(slices.Clone(c.records), i, i+1)
		if err := c.saveWithLock(next); err != nil {
			return false, err
		}
		c.records = next

		c.logger.Debug("record deleted", "id", id, "records", len(next))
		return true, nil
	})
}

// Close releases the file lock handle.
func (c *Collection[T]) Close() error {
	if closer, ok := c.fileLock.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (c *Collection[T]) indexOf(id string) int {
	for i, rec := range c.records {
		if rec.GetID() == id {
			return i
		}
	}
	return -1
}

// load reads the document; the caller holds the file lock.
func (c *Collection[T]) load() error {
	if _, err := c.fs.Stat(c.path); errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	data, err := c.fs.ReadFile(c.path)
	if err != nil {
		return &types.StorageError{Op: "read", Path: c.path, Err: err}
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return &types.StorageError{Op: "parse", Path: c.path, Err: err}
	}
	if records != nil {
		c.records = records
	}
	return nil
}

func (c *Collection[T]) saveWithLock(records []T) error {
	err := c.withLock(func() error {
		return c.save(records)
	})
	if err != nil {
		c.logger.Error("save failed", "path", c.path, "error", err)
	}
	return err
}

// withLock creates the document's directory, then runs fn under the file
// lock. The lock file lives next to the document, so the directory must
// exist first. Failures are *types.StorageError.
func (c *Collection[T]) withLock(fn func() error) error {
	if dir := filepath.Dir(c.path); dir != "" && dir != "." {
		if err := c.fs.MkdirAll(dir, 0o755); err != nil {
			return &types.StorageError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	err := withFileLock(c.fileLock, fn)
	if err != nil {
		var storageErr *types.StorageError
		if !errors.As(err, &storageErr) {
			err = &types.StorageError{Op: "lock", Path: c.path + ".lock", Err: err}
		}
	}
	return err
}

// save writes records as an indented JSON array via a temp file and rename;
// the caller holds the file lock and has created the directory.
func (c *Collection[T]) save(records []T) error {
	if records == nil {
		records = []T{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return &types.StorageError{Op: "encode", Path: c.path, Err: err}
	}

	tmpFile := c.path + ".tmp"
	if err := c.fs.WriteFile(tmpFile, buf.Bytes(), 0o644); err != nil {
		return &types.StorageError{Op: "write", Path: tmpFile, Err: err}
	}
	if err := c.fs.Rename(tmpFile, c.path); err != nil {
		_ = c.fs.Remove(tmpFile)
		return &types.StorageError{Op: "rename", Path: c.path, Err: err}
	}
	return nil
}
