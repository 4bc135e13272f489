package taxostore

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/arthur-debert/taxostore/export"
	"github.com/arthur-debert/taxostore/internal/validation"
	"github.com/arthur-debert/taxostore/ris"
	"github.com/arthur-debert/taxostore/search"
	"github.com/arthur-debert/taxostore/taxostore/graph"
	"github.com/arthur-debert/taxostore/taxostore/ids"
	"github.com/arthur-debert/taxostore/taxostore/storage"
	"github.com/arthur-debert/taxostore/taxostore/store"
	"github.com/arthur-debert/taxostore/types"
)

// Catalog owns the three collections of a data directory.
type Catalog struct {
	cfg    Config
	ids    ids.Generator
	logger *slog.Logger

	// writes serializes mutations across collections so a strict-mode
	// reference check and the write it guards see the same state.
	writes *storage.LockManager

	literature *store.Collection[types.Literature]
	taxonomy   *store.Collection[types.Taxonomy]
	samples    *store.Collection[types.Sample]
	graph      *graph.Graph
}

// Open loads the catalog described by cfg. A missing data directory is
// created; missing documents are treated as empty collections and written
// on the first write.
func Open(cfg Config, opts ...Option) (*Catalog, error) {
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	o := buildOptions(opts)

	c := &Catalog{
		cfg:    cfg,
		ids:    o.ids,
		logger: o.logger,
		writes: storage.NewLockManager(),
	}

	var err error
	if c.literature, err = store.Open[types.Literature](cfg.Path(types.KindLiterature), o.ids, o.storeOpts...); err != nil {
		return nil, fmt.Errorf("failed to open literature: %w", err)
	}
	if c.taxonomy, err = store.Open[types.Taxonomy](cfg.Path(types.KindTaxonomy), o.ids, o.storeOpts...); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to open taxonomy: %w", err)
	}
	if c.samples, err = store.Open[types.Sample](cfg.Path(types.KindSample), o.ids, o.storeOpts...); err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to open samples: %w", err)
	}
	c.graph = graph.New(c.literature, c.taxonomy, c.samples)

	c.logger.Info("catalog opened", "data_dir", cfg.DataDir, "strict", cfg.Strict,
		"literature", c.literature.Len(), "taxonomy", c.taxonomy.Len(), "samples", c.samples.Len())
	return c, nil
}

// Close releases the collections' lock handles.
func (c *Catalog) Close() error {
	var errs []error
	if c.literature != nil {
		errs = append(errs, c.literature.Close())
	}
	if c.taxonomy != nil {
		errs = append(errs, c.taxonomy.Close())
	}
	if c.samples != nil {
		errs = append(errs, c.samples.Close())
	}
	return errors.Join(errs...)
}

// Config returns the configuration the catalog was opened with.
func (c *Catalog) Config() Config { return c.cfg }

// Graph returns the reference graph over the live collections.
func (c *Catalog) Graph() *graph.Graph { return c.graph }

// GenerateID returns a fresh identifier for the kind named by kind
// ("literature", "taxonomy" or "sample").
func (c *Catalog) GenerateID(kind string) (string, error) {
	return ids.NewString(c.ids, kind)
}

// ListLiterature returns the Literature records matching query.
func (c *Catalog) ListLiterature(query string) []types.Literature {
	return c.literature.List(search.Predicate[types.Literature](query))
}

// ListTaxonomy returns the Taxonomy records matching query.
func (c *Catalog) ListTaxonomy(query string) []types.Taxonomy {
	return c.taxonomy.List(search.Predicate[types.Taxonomy](query))
}

// ListSamples returns the Sample records matching query.
func (c *Catalog) ListSamples(query string) []types.Sample {
	return c.samples.List(search.Predicate[types.Sample](query))
}

func (c *Catalog) GetLiterature(id string) (types.Literature, error) {
	return get(c.literature, id)
}

func (c *Catalog) GetTaxonomy(id string) (types.Taxonomy, error) {
	return get(c.taxonomy, id)
}

func (c *Catalog) GetSample(id string) (types.Sample, error) {
	return get(c.samples, id)
}

// UpsertLiterature stores lit, generating an id when it has none.
func (c *Catalog) UpsertLiterature(lit types.Literature) (types.Literature, error) {
	return upsert(c, c.literature, lit, func() error {
		return validation.Literature(lit)
	})
}

// UpsertTaxonomy stores tax, generating an id when it has none.
func (c *Catalog) UpsertTaxonomy(tax types.Taxonomy) (types.Taxonomy, error) {
	return upsert(c, c.taxonomy, tax, func() error {
		return validation.Taxonomy(tax, c)
	})
}

// UpsertSample stores s, generating an id when it has none.
func (c *Catalog) UpsertSample(s types.Sample) (types.Sample, error) {
	return upsert(c, c.samples, s, func() error {
		return validation.Sample(s, c)
	})
}

// DeleteLiterature removes the Literature with id. Taxa citing it keep
// their now dangling lit_id.
func (c *Catalog) DeleteLiterature(id string) (bool, error) {
	if n := len(c.graph.TaxaCiting(id)); n > 0 {
		c.logger.Warn("deleting cited literature", "id", id, "citing_taxa", n)
	}
	return remove(c, c.literature, id)
}

// DeleteTaxonomy removes the Taxonomy with id. Child taxa and samples keep
// their references.
func (c *Catalog) DeleteTaxonomy(id string) (bool, error) {
	children, samples := len(c.graph.ChildrenOf(id)), len(c.graph.SamplesOf(id))
	if children > 0 || samples > 0 {
		c.logger.Warn("deleting referenced taxonomy", "id", id, "children", children, "samples", samples)
	}
	return remove(c, c.taxonomy, id)
}

func (c *Catalog) DeleteSample(id string) (bool, error) {
	return remove(c, c.samples, id)
}

// ImportRIS parses a RIS citation and stores it as a new Literature record.
func (c *Catalog) ImportRIS(text string) (types.Literature, error) {
	lit, err := ris.Parse(text)
	if err != nil {
		return types.Literature{}, fmt.Errorf("%w: %w", types.ErrValidation, err)
	}
	return c.UpsertLiterature(lit)
}

// Snapshot copies the three collections for export.
func (c *Catalog) Snapshot() export.Snapshot {
	var snap export.Snapshot
	_ = c.writes.Execute(storage.ReadOperation, func() error {
		snap = export.Snapshot{
			Literature: c.literature.List(nil),
			Taxonomy:   c.taxonomy.List(nil),
			Samples:    c.samples.List(nil),
			CreatedAt:  time.Now().UTC(),
		}
		return nil
	})
	return snap
}

// LiteratureExists reports whether a Literature record with id exists.
func (c *Catalog) LiteratureExists(id string) bool {
	_, ok := c.literature.Get(id)
	return ok
}

// TaxonomyExists reports whether a Taxonomy record with id exists.
func (c *Catalog) TaxonomyExists(id string) bool {
	_, ok := c.taxonomy.Get(id)
	return ok
}

func get[T types.Record[T]](coll *store.Collection[T], id string) (T, error) {
	rec, ok := coll.Get(id)
	if !ok {
		return rec, fmt.Errorf("%s %q: %w", coll.Kind(), id, types.ErrNotFound)
	}
	return rec, nil
}

func upsert[T types.Record[T]](c *Catalog, coll *store.Collection[T], rec T, strict func() error) (T, error) {
	return storage.Result(c.writes, storage.WriteOperation, func() (T, error) {
		if c.cfg.Strict {
			if err := strict(); err != nil {
				var zero T
				return zero, err
			}
		}

		stored, err := coll.Upsert(rec)
		if err != nil {
			return stored, err
		}
		c.logger.Info("record stored", "kind", string(coll.Kind()), "id", stored.GetID())
		return stored, nil
	})
}

func remove[T types.Record[T]](c *Catalog, coll *store.Collection[T], id string) (bool, error) {
	return storage.Result(c.writes, storage.WriteOperation, func() (bool, error) {
		removed, err := coll.Delete(id)
		if err != nil {
			return false, err
		}
		if removed {
			c.logger.Info("record deleted", "kind", string(coll.Kind()), "id", id)
		}
		return removed, nil
	})
}
