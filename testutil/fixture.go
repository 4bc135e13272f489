// Package testutil provides a populated catalog for tests.
package testutil

import (
	"embed"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/taxostore/taxostore"
	"github.com/arthur-debert/taxostore/taxostore/ids"
	"github.com/arthur-debert/taxostore/types"
)

//go:embed testdata/*.json
var fixtures embed.FS

// CatalogData provides typed access to the fixture records.
//
// The fixture holds a three-level taxon chain (Carabidae > Carabus >
// Carabus auratus) plus one synonym, and two deliberately dangling
// references: GhostTaxon.LitID and LostSample.TaxID.
type CatalogData struct {
	DataDir string

	Revision      types.Literature // LIT-0001, open access, cited by Genus and Species
	BorneoBeetles types.Literature // LIT-0002, cited by Family
	Moths         types.Literature // LIT-0003, uncited, HTML-sensitive title

	Family     types.Taxonomy // TAX-0001, no parent
	Genus      types.Taxonomy // TAX-0002, parent Family
	Species    types.Taxonomy // TAX-0003, parent Genus
	GhostTaxon types.Taxonomy // TAX-0004, lit_id LIT-9999 does not exist

	PitfallSample types.Sample // SMP-0001, of Species, lat 12.5 / long 30.0
	BatesSample   types.Sample // SMP-0002, of Species, no coordinates
	LostSample    types.Sample // SMP-0003, tax_id TAX-9999 does not exist
}

// CopyFixture writes the fixture documents into dir.
func CopyFixture(t *testing.T, dir string) {
	t.Helper()
	for _, name := range []string{taxostore.DefaultLiteratureFile, taxostore.DefaultTaxonomyFile, taxostore.DefaultSampleFile} {
		data, err := fixtures.ReadFile("testdata/" + name)
		if err != nil {
			t.Fatalf("failed to read fixture %s: %v", name, err)
		}
		if err := os.WriteFile(filepath.Join(dir, name), data, 0o644); err != nil {
			t.Fatalf("failed to write fixture %s: %v", name, err)
		}
	}
}

// LoadCatalog opens a catalog over a fresh copy of the fixture. New ids are
// UUID based so they never collide with the fixture's LIT-0001 style ids.
func LoadCatalog(t *testing.T, opts ...taxostore.Option) (*taxostore.Catalog, *CatalogData) {
	t.Helper()

	dir := t.TempDir()
	CopyFixture(t, dir)

	cat := openCatalog(t, taxostore.DefaultConfig(dir), opts...)

	data := &CatalogData{DataDir: dir}
	data.Revision = mustGet(t, cat.GetLiterature, "LIT-0001")
	data.BorneoBeetles = mustGet(t, cat.GetLiterature, "LIT-0002")
	data.Moths = mustGet(t, cat.GetLiterature, "LIT-0003")
	data.Family = mustGet(t, cat.GetTaxonomy, "TAX-0001")
	data.Genus = mustGet(t, cat.GetTaxonomy, "TAX-0002")
	data.Species = mustGet(t, cat.GetTaxonomy, "TAX-0003")
	data.GhostTaxon = mustGet(t, cat.GetTaxonomy, "TAX-0004")
	data.PitfallSample = mustGet(t, cat.GetSample, "SMP-0001")
	data.BatesSample = mustGet(t, cat.GetSample, "SMP-0002")
	data.LostSample = mustGet(t, cat.GetSample, "SMP-0003")
	return cat, data
}

// NewCatalog opens an empty catalog in a temp directory. New ids come from
// a SequenceGenerator (LIT-0001, TAX-0001, ...) unless opts replace it.
func NewCatalog(t *testing.T, opts ...taxostore.Option) *taxostore.Catalog {
	t.Helper()
	return OpenCatalog(t, taxostore.DefaultConfig(t.TempDir()), opts...)
}

// OpenCatalog opens cfg with a SequenceGenerator and closes it at cleanup.
func OpenCatalog(t *testing.T, cfg taxostore.Config, opts ...taxostore.Option) *taxostore.Catalog {
	t.Helper()
	all := append([]taxostore.Option{taxostore.WithIDGenerator(ids.NewSequenceGenerator())}, opts...)
	return openCatalog(t, cfg, all...)
}

func openCatalog(t *testing.T, cfg taxostore.Config, opts ...taxostore.Option) *taxostore.Catalog {
	t.Helper()
	cat, err := taxostore.Open(cfg, opts...)
	if err != nil {
		t.Fatalf("failed to open catalog: %v", err)
	}
	t.Cleanup(func() { _ = cat.Close() })
	return cat
}

func mustGet[T any](t *testing.T, get func(string) (T, error), id string) T {
	t.Helper()
	rec, err := get(id)
	if err != nil {
		t.Fatalf("fixture record %s missing: %v", id, err)
	}
	return rec
}
