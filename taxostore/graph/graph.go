// Package graph resolves the references between catalog records.
//
// Three references exist: Taxonomy.LitID names the Literature that published
// a taxon, Taxonomy.ParentTaxID names another Taxonomy, and Sample.TaxID
// names the Taxonomy a specimen belongs to. Nothing guarantees a reference
// resolves; lookups report absence instead of failing, and Dangling lists
// every reference that does not resolve.
package graph

import "github.com/arthur-debert/taxostore/types"

// Source is the read side of a record collection. store.Collection
// satisfies it.
type Source[T any] interface {
	Get(id string) (T, bool)
	List(pred func(T) bool) []T
}

// Graph answers joins across the three collections. It holds no copies;
// every call reads the current contents of its sources.
type Graph struct {
	literature Source[types.Literature]
	taxonomy   Source[types.Taxonomy]
	samples    Source[types.Sample]
}

// New builds a graph over the given sources.
func New(lit Source[types.Literature], tax Source[types.Taxonomy], smp Source[types.Sample]) *Graph {
	return &Graph{literature: lit, taxonomy: tax, samples: smp}
}

// LiteratureOf returns the Literature cited by tax.
func (g *Graph) LiteratureOf(tax types.Taxonomy) (types.Literature, bool) {
	if tax.LitID == "" {
		return types.Literature{}, false
	}
	return g.literature.Get(tax.LitID)
}

// ParentOf returns the Taxonomy named by tax.ParentTaxID.
func (g *Graph) ParentOf(tax types.Taxonomy) (types.Taxonomy, bool) {
	if tax.ParentTaxID == "" {
		return types.Taxonomy{}, false
	}
	return g.taxonomy.Get(tax.ParentTaxID)
}

// TaxonomyOf returns the Taxonomy a sample belongs to.
func (g *Graph) TaxonomyOf(s types.Sample) (types.Taxonomy, bool) {
	if s.TaxID == "" {
		return types.Taxonomy{}, false
	}
	return g.taxonomy.Get(s.TaxID)
}

// TaxaCiting returns the taxa whose LitID is litID.
func (g *Graph) TaxaCiting(litID string) []types.Taxonomy {
	if litID == "" {
		return []types.Taxonomy{}
	}
	return g.taxonomy.List(func(t types.Taxonomy) bool { return t.LitID == litID })
}

// ChildrenOf returns the taxa whose ParentTaxID is taxID.
func (g *Graph) ChildrenOf(taxID string) []types.Taxonomy {
	if taxID == "" {
		return []types.Taxonomy{}
	}
	return g.taxonomy.List(func(t types.Taxonomy) bool { return t.ParentTaxID == taxID })
}

// SamplesOf returns the samples collected for taxID.
func (g *Graph) SamplesOf(taxID string) []types.Sample {
	if taxID == "" {
		return []types.Sample{}
	}
	return g.samples.List(func(s types.Sample) bool { return s.TaxID == taxID })
}
