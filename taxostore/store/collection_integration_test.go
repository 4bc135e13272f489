package store_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/arthur-debert/taxostore/taxostore/ids"
	"github.com/arthur-debert/taxostore/taxostore/store"
	"github.com/arthur-debert/taxostore/types"
	"github.com/google/go-cmp/cmp"
)

func openLiterature(t *testing.T, path string) *store.Collection[types.Literature] {
	t.Helper()
	c, err := store.Open[types.Literature](path, ids.UUIDGenerator{})
	if err != nil {
		t.Fatalf("failed to open %s: %v", path, err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestUpsertIsIdempotent(t *testing.T) {
	c := openLiterature(t, filepath.Join(t.TempDir(), "literature.json"))

	rec := types.Literature{ID: "LIT-fixed", Title: "On Beetles", Authors: "Darwin", IsOA: types.Bool(true)}

	first, err := c.Upsert(rec)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Upsert(rec)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(rec, first); diff != "" {
		t.Errorf("stored record differs from input (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second upsert changed the record (-first +second):\n%s", diff)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 record after repeated upsert, got %d", c.Len())
	}
}

func TestUpsertReplacesInPlace(t *testing.T) {
	c := openLiterature(t, filepath.Join(t.TempDir(), "literature.json"))

	for _, title := range []string{"first", "second", "third"} {
		if _, err := c.Upsert(types.Literature{ID: "LIT-" + title, Title: title}); err != nil {
			t.Fatal(err)
		}
	}

	if _, err := c.Upsert(types.Literature{ID: "LIT-second", Title: "second, revised"}); err != nil {
		t.Fatal(err)
	}

	var titles []string
	for _, rec := range c.List(nil) {
		titles = append(titles, rec.Title)
	}
	want := []string{"first", "second, revised", "third"}
	if diff := cmp.Diff(want, titles); diff != "" {
		t.Errorf("order not preserved (-want +got):\n%s", diff)
	}
}

func TestIDsStayUnique(t *testing.T) {
	c := openLiterature(t, filepath.Join(t.TempDir(), "literature.json"))

	sequence := []types.Literature{
		{ID: "LIT-a", Title: "1"},
		{Title: "2"},
		{ID: "LIT-b", Title: "3"},
		{ID: "LIT-a", Title: "4"},
		{Title: "5"},
		{ID: "LIT-b", Title: "6"},
	}
	for _, rec := range sequence {
		if _, err := c.Upsert(rec); err != nil {
			t.Fatal(err)
		}
	}

	seen := make(map[string]bool)
	for _, rec := range c.List(nil) {
		if seen[rec.ID] {
			t.Errorf("duplicate id %q", rec.ID)
		}
		seen[rec.ID] = true
	}
	if c.Len() != 4 {
		t.Errorf("expected 4 records, got %d", c.Len())
	}
}

func TestReopenReadsSavedDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "literature.json")
	c := openLiterature(t, path)

	stored, err := c.Upsert(types.Literature{Title: "Fossils <of> the Burgess & Shale"})
	if err != nil {
		t.Fatal(err)
	}
	if !ids.IsWellFormed(types.KindLiterature, stored.ID) {
		t.Errorf("generated id %q is not LIT-<uuid>", stored.ID)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(raw), "<of> the Burgess & Shale") {
		t.Errorf("expected unescaped text in document, got:\n%s", raw)
	}
	if _, err := os.Stat(path + ".tmp"); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("temp file left behind: %v", err)
	}

	reopened := openLiterature(t, path)
	if diff := cmp.Diff(c.List(nil), reopened.List(nil)); diff != "" {
		t.Errorf("reopened collection differs (-want +got):\n%s", diff)
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "literature.json")
	c := openLiterature(t, path)

	rec, _ := c.Upsert(types.Literature{Title: "keep"})
	before, _ := os.ReadFile(path)

	removed, err := c.Delete("LIT-does-not-exist")
	if err != nil {
		t.Fatalf("delete of unknown id returned error: %v", err)
	}
	if removed {
		t.Error("delete of unknown id reported removal")
	}
	after, _ := os.ReadFile(path)
	if string(before) != string(after) {
		t.Error("delete of unknown id changed the document")
	}

	removed, err = c.Delete(rec.ID)
	if err != nil || !removed {
		t.Fatalf("delete: removed=%v err=%v", removed, err)
	}
	removed, _ = c.Delete(rec.ID)
	if removed {
		t.Error("second delete should report nothing removed")
	}

	raw, _ := os.ReadFile(path)
	if strings.TrimSpace(string(raw)) != "[]" {
		t.Errorf("expected empty array on disk, got %q", raw)
	}
}

func TestConcurrentUpsertsInProcess(t *testing.T) {
	c, err := store.Open[types.Sample](filepath.Join(t.TempDir(), "sample.json"), ids.UUIDGenerator{})
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = c.Close() }()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := c.Upsert(types.Sample{TaxID: "TAX-x"}); err != nil {
				t.Errorf("upsert failed: %v", err)
			}
		}()
	}
	wg.Wait()

	if c.Len() != 20 {
		t.Errorf("expected 20 samples, got %d", c.Len())
	}
}

func TestOpenCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "fresh", "catalog")
	path := filepath.Join(dir, "literature.json")

	c := openLiterature(t, path)
	if c.Len() != 0 {
		t.Fatalf("expected empty collection, got %d records", c.Len())
	}
	if info, err := os.Stat(dir); err != nil || !info.IsDir() {
		t.Fatalf("expected %s to be created: %v", dir, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("open should not write the document, got %v", err)
	}

	stored, err := c.Upsert(types.Literature{Title: "First entry"})
	if err != nil {
		t.Fatalf("upsert into fresh directory: %v", err)
	}

	reopened := openLiterature(t, path)
	if _, ok := reopened.Get(stored.ID); !ok {
		t.Errorf("expected %s to persist", stored.ID)
	}
}

func TestEmptyReferencesKeepTheirKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "taxonomy.json")
	legacy := `[
  {"id": "TAX-1", "name": "Carabidae", "level": "Family", "type": "new taxon", "lit_id": "", "parent_tax_id": "", "description": ""}
]`
	if err := os.WriteFile(path, []byte(legacy), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := store.Open[types.Taxonomy](path, ids.NewSequenceGenerator())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })

	if _, err := c.Upsert(types.Taxonomy{Name: "Carabus"}); err != nil {
		t.Fatal(err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{`"lit_id": ""`, `"parent_tax_id": ""`} {
		if got := strings.Count(string(raw), key); got != 2 {
			t.Errorf("expected %s on both records, found %d:\n%s", key, got, raw)
		}
	}
}
