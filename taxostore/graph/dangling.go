package graph

import (
	"fmt"

	"github.com/arthur-debert/taxostore/types"
)

// DanglingRef is a reference whose target does not exist.
type DanglingRef struct {
	Kind  types.Kind `json:"kind" yaml:"kind"`
	ID    string     `json:"id" yaml:"id"`
	Field string     `json:"field" yaml:"field"`
	Ref   string     `json:"ref" yaml:"ref"`
}

func (d DanglingRef) String() string {
	return fmt.Sprintf("%s %s: %s %q does not resolve", d.Kind, d.ID, d.Field, d.Ref)
}

// Dangling lists unresolved references, taxa first and then samples, each in
// stored order. Empty references are not reported.
func (g *Graph) Dangling() []DanglingRef {
	out := []DanglingRef{}

	for _, tax := range g.taxonomy.List(nil) {
		if tax.LitID != "" {
			if _, ok := g.literature.Get(tax.LitID); !ok {
				out = append(out, DanglingRef{Kind: types.KindTaxonomy, ID: tax.ID, Field: "lit_id", Ref: tax.LitID})
			}
		}
		if tax.ParentTaxID != "" {
			if _, ok := g.taxonomy.Get(tax.ParentTaxID); !ok {
				out = append(out, DanglingRef{Kind: types.KindTaxonomy, ID: tax.ID, Field: "parent_tax_id", Ref: tax.ParentTaxID})
			}
		}
	}

	for _, s := range g.samples.List(nil) {
		if s.TaxID == "" {
			continue
		}
		if _, ok := g.taxonomy.Get(s.TaxID); !ok {
			out = append(out, DanglingRef{Kind: types.KindSample, ID: s.ID, Field: "tax_id", Ref: s.TaxID})
		}
	}
	return out
}
