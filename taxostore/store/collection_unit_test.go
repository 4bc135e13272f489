package store

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/arthur-debert/taxostore/taxostore/ids"
	"github.com/arthur-debert/taxostore/types"
	"github.com/google/go-cmp/cmp"
)

func openMock[T types.Record[T]](t *testing.T, fs *MockFileSystem, locks *MockFileLockFactory, path string) *Collection[T] {
	t.Helper()
	c, err := Open[T](path, ids.NewSequenceGenerator(), WithFileSystem(fs), WithFileLockFactory(locks))
	if err != nil {
		t.Fatalf("failed to open collection: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCollectionWithMockFS(t *testing.T) {
	t.Run("missing document opens empty without writing", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		c := openMock[types.Literature](t, mockFS, NewMockFileLockFactory(), "data/literature.json")

		if c.Len() != 0 {
			t.Errorf("expected empty collection, got %d records", c.Len())
		}
		if mockFS.Writes != 0 {
			t.Errorf("open should not write, got %d writes", mockFS.Writes)
		}
	})

	t.Run("empty and null documents open empty", func(t *testing.T) {
		for _, content := range []string{"", "  \n", "null"} {
			mockFS := NewMockFileSystem()
			mockFS.SetFileContent("sample.json", []byte(content))
			c := openMock[types.Sample](t, mockFS, NewMockFileLockFactory(), "sample.json")
			if c.Len() != 0 {
				t.Errorf("content %q: expected empty collection, got %d", content, c.Len())
			}
		}
	})

	t.Run("malformed document fails to open", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		mockFS.SetFileContent("taxonomy.json", []byte(`{"not": "an array"}`))

		_, err := Open[types.Taxonomy]("taxonomy.json", nil, WithFileSystem(mockFS), WithFileLockFactory(NewMockFileLockFactory()))
		if !errors.Is(err, types.ErrStorage) {
			t.Errorf("expected storage error, got %v", err)
		}
	})

	t.Run("read error surfaces", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		mockFS.SetFileContent("taxonomy.json", []byte(`[]`))
		mockFS.ReadFileError = errors.New("disk read error")

		_, err := Open[types.Taxonomy]("taxonomy.json", nil, WithFileSystem(mockFS), WithFileLockFactory(NewMockFileLockFactory()))
		if !errors.Is(err, mockFS.ReadFileError) {
			t.Errorf("expected read error, got %v", err)
		}
	})

	t.Run("open creates the document directory before locking", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		openMock[types.Literature](t, mockFS, NewMockFileLockFactory(), "data/nested/literature.json")

		if !mockFS.dirs["data/nested"] {
			t.Error("expected data/nested to be created on open")
		}
	})

	t.Run("mkdir failure on open is a storage error", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		mockFS.MkdirError = errors.New("read-only file system")

		_, err := Open[types.Sample]("data/sample.json", nil, WithFileSystem(mockFS), WithFileLockFactory(NewMockFileLockFactory()))
		var storageErr *types.StorageError
		if !errors.As(err, &storageErr) || storageErr.Op != "mkdir" {
			t.Fatalf("expected mkdir storage error, got %v", err)
		}
		if !errors.Is(err, mockFS.MkdirError) {
			t.Errorf("expected cause in chain, got %v", err)
		}
	})

	t.Run("lock failure on open is a storage error", func(t *testing.T) {
		locks := NewMockFileLockFactory()
		locks.DefaultLockError = errors.New("locked elsewhere")

		_, err := Open[types.Literature]("literature.json", nil, WithFileSystem(NewMockFileSystem()), WithFileLockFactory(locks))
		var storageErr *types.StorageError
		if !errors.As(err, &storageErr) || storageErr.Op != "lock" {
			t.Fatalf("expected lock storage error, got %v", err)
		}
		if storageErr.Path != "literature.json.lock" {
			t.Errorf("expected lock path, got %q", storageErr.Path)
		}
		if !errors.Is(err, types.ErrStorage) {
			t.Errorf("expected ErrStorage in chain, got %v", err)
		}
	})

	t.Run("upsert writes through temp file", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		c := openMock[types.Literature](t, mockFS, NewMockFileLockFactory(), "data/literature.json")

		stored, err := c.Upsert(types.Literature{Title: "A Study"})
		if err != nil {
			t.Fatalf("upsert failed: %v", err)
		}
		if stored.ID != "LIT-0001" {
			t.Errorf("expected generated id LIT-0001, got %q", stored.ID)
		}
		if mockFS.FileExists("data/literature.json.tmp") {
			t.Error("temp file should not remain after a successful save")
		}

		content, ok := mockFS.GetFileContent("data/literature.json")
		if !ok {
			t.Fatal("document was not written")
		}
		var onDisk []types.Literature
		if err := json.Unmarshal(content, &onDisk); err != nil {
			t.Fatalf("document is not a JSON array: %v", err)
		}
		if diff := cmp.Diff([]types.Literature{stored}, onDisk); diff != "" {
			t.Errorf("document mismatch (-want +got):\n%s", diff)
		}
		if !strings.Contains(string(content), "\n  {") {
			t.Errorf("expected two-space indentation, got:\n%s", content)
		}
	})

	t.Run("failed save leaves collection unchanged", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		c := openMock[types.Sample](t, mockFS, NewMockFileLockFactory(), "sample.json")

		first, err := c.Upsert(types.Sample{TaxID: "TAX-1", Collector: "Ada"})
		if err != nil {
			t.Fatal(err)
		}

		mockFS.RenameError = errors.New("rename failed")
		_, err = c.Upsert(types.Sample{ID: first.ID, TaxID: "TAX-2"})
		if !errors.Is(err, types.ErrStorage) || !errors.Is(err, mockFS.RenameError) {
			t.Fatalf("expected wrapped storage error, got %v", err)
		}
		if mockFS.FileExists("sample.json.tmp") {
			t.Error("temp file should be removed after a failed rename")
		}

		_, err = c.Upsert(types.Sample{TaxID: "TAX-3"})
		if err == nil {
			t.Fatal("expected append to fail as well")
		}

		got := c.List(nil)
		if diff := cmp.Diff([]types.Sample{first}, got); diff != "" {
			t.Errorf("collection changed after failed saves (-want +got):\n%s", diff)
		}
	})

	t.Run("validation failure writes nothing", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		c := openMock[types.Taxonomy](t, mockFS, NewMockFileLockFactory(), "taxonomy.json")

		_, err := c.Upsert(types.Taxonomy{Name: "   "})
		var verr *types.ValidationError
		if !errors.As(err, &verr) || verr.Field != "name" {
			t.Fatalf("expected name validation error, got %v", err)
		}
		if mockFS.Writes != 0 || c.Len() != 0 {
			t.Errorf("expected no writes and no records, got %d writes, %d records", mockFS.Writes, c.Len())
		}
	})

	t.Run("lock is taken and released around each write", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		locks := NewMockFileLockFactory()
		c := openMock[types.Literature](t, mockFS, locks, "literature.json")

		if _, err := c.Upsert(types.Literature{Title: "x"}); err != nil {
			t.Fatal(err)
		}
		lock := locks.GetLock("literature.json.lock")
		if lock == nil {
			t.Fatal("expected a lock for literature.json.lock")
		}
		if lock.IsLocked() {
			t.Error("lock should be released after upsert")
		}
		if lock.LockAttempts != 2 || lock.UnlockAttempts != 2 {
			t.Errorf("expected 2 lock/unlock pairs (open + save), got %d/%d", lock.LockAttempts, lock.UnlockAttempts)
		}
	})

	t.Run("lock failure surfaces as storage error", func(t *testing.T) {
		mockFS := NewMockFileSystem()
		locks := NewMockFileLockFactory()
		c := openMock[types.Literature](t, mockFS, locks, "literature.json")

		locks.GetLock("literature.json.lock").SetLockError(errors.New("locked elsewhere"))
		_, err := c.Upsert(types.Literature{Title: "x"})
		if !errors.Is(err, types.ErrStorage) {
			t.Errorf("expected storage error, got %v", err)
		}
		if c.Len() != 0 {
			t.Errorf("expected no records after lock failure, got %d", c.Len())
		}
	})
}

func TestCollectionDeleteWithMockFS(t *testing.T) {
	mockFS := NewMockFileSystem()
	c := openMock[types.Literature](t, mockFS, NewMockFileLockFactory(), "literature.json")

	a, _ := c.Upsert(types.Literature{Title: "A"})
	b, _ := c.Upsert(types.Literature{Title: "B"})
	writes := mockFS.Writes

	removed, err := c.Delete("LIT-9999")
	if err != nil || removed {
		t.Fatalf("deleting unknown id: removed=%v err=%v", removed, err)
	}
	if mockFS.Writes != writes {
		t.Error("deleting an unknown id should not write")
	}

	mockFS.WriteFileError = errors.New("disk full")
	if _, err := c.Delete(a.ID); err == nil {
		t.Fatal("expected delete to fail when the write fails")
	}
	if c.Len() != 2 {
		t.Errorf("failed delete should keep both records, got %d", c.Len())
	}

	mockFS.WriteFileError = nil
	removed, err = c.Delete(a.ID)
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	if diff := cmp.Diff([]types.Literature{b}, c.List(nil)); diff != "" {
		t.Errorf("unexpected records after delete (-want +got):\n%s", diff)
	}
}
