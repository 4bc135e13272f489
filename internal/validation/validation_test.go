package validation_test

import (
	"errors"
	"testing"

	"github.com/arthur-debert/taxostore/internal/validation"
	"github.com/arthur-debert/taxostore/types"
)

type refs map[string]bool

func (r refs) LiteratureExists(id string) bool { return r[id] }
func (r refs) TaxonomyExists(id string) bool   { return r[id] }

var known = refs{"LIT-1": true, "TAX-1": true}

func TestTaxonomy(t *testing.T) {
	tests := []struct {
		name      string
		tax       types.Taxonomy
		wantField string
	}{
		{"minimal", types.Taxonomy{Name: "Carabus"}, ""},
		{"resolved references", types.Taxonomy{ID: "TAX-2", Name: "x", LitID: "LIT-1", ParentTaxID: "TAX-1"}, ""},
		{"known enums", types.Taxonomy{Name: "x", Level: types.LevelGenus, Type: types.TypeTaxonSwap}, ""},
		{"unknown level", types.Taxonomy{Name: "x", Level: "Kingdom"}, "level"},
		{"unknown type", types.Taxonomy{Name: "x", Type: "renamed"}, "type"},
		{"dangling lit_id", types.Taxonomy{Name: "x", LitID: "LIT-404"}, "lit_id"},
		{"dangling parent", types.Taxonomy{Name: "x", ParentTaxID: "TAX-404"}, "parent_tax_id"},
		{"self parent", types.Taxonomy{ID: "TAX-1", Name: "x", ParentTaxID: "TAX-1"}, "parent_tax_id"},
		{"wrong prefix", types.Taxonomy{ID: "LIT-9", Name: "x"}, "id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkField(t, validation.Taxonomy(tt.tax, known), tt.wantField)
		})
	}
}

func TestSample(t *testing.T) {
	tests := []struct {
		name      string
		sample    types.Sample
		wantField string
	}{
		{"no coordinates", types.Sample{TaxID: "TAX-1"}, ""},
		{"edge coordinates", types.Sample{TaxID: "TAX-1", Latitude: types.Float(-90), Longitude: types.Float(180)}, ""},
		{"latitude out of range", types.Sample{TaxID: "TAX-1", Latitude: types.Float(90.5)}, "latitude"},
		{"longitude out of range", types.Sample{TaxID: "TAX-1", Longitude: types.Float(-181)}, "longitude"},
		{"dangling tax_id", types.Sample{TaxID: "TAX-404"}, "tax_id"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checkField(t, validation.Sample(tt.sample, known), tt.wantField)
		})
	}
}

func TestLiterature(t *testing.T) {
	checkField(t, validation.Literature(types.Literature{ID: "LIT-x", Title: "t"}), "")
	checkField(t, validation.Literature(types.Literature{ID: "SMP-x", Title: "t"}), "id")
}

func checkField(t *testing.T, err error, wantField string) {
	t.Helper()
	if wantField == "" {
		if err != nil {
			t.Errorf("expected no error, got %v", err)
		}
		return
	}
	if !errors.Is(err, types.ErrValidation) {
		t.Fatalf("expected validation error on %s, got %v", wantField, err)
	}
	var verr *types.ValidationError
	if !errors.As(err, &verr) || verr.Field != wantField {
		t.Errorf("expected field %q, got %+v", wantField, verr)
	}
}
