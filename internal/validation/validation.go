// Package validation holds the optional consistency rules applied when a
// catalog runs in strict mode. The required-field rules live on the record
// types and always apply; everything here is opt-in.
package validation

import (
	"fmt"

	"github.com/arthur-debert/taxostore/taxostore/ids"
	"github.com/arthur-debert/taxostore/types"
)

// Resolver answers whether a referenced record exists.
type Resolver interface {
	LiteratureExists(id string) bool
	TaxonomyExists(id string) bool
}

// Coordinate bounds in decimal degrees.
const (
	MaxLatitude  = 90.0
	MaxLongitude = 180.0
)

// Literature checks a Literature record.
func Literature(l types.Literature) error {
	return checkID(types.KindLiterature, l.ID)
}

// Taxonomy checks the level and type enums and that lit_id and
// parent_tax_id resolve. A taxon may not be its own parent.
func Taxonomy(t types.Taxonomy, refs Resolver) error {
	if err := checkID(types.KindTaxonomy, t.ID); err != nil {
		return err
	}
	if t.Level != "" && !t.Level.Valid() {
		return invalid(types.KindTaxonomy, "level", "unknown level %q (want one of %v)", t.Level, types.Levels)
	}
	if t.Type != "" && !t.Type.Valid() {
		return invalid(types.KindTaxonomy, "type", "unknown type %q", t.Type)
	}
	if t.LitID != "" && !refs.LiteratureExists(t.LitID) {
		return invalid(types.KindTaxonomy, "lit_id", "literature %s does not exist", t.LitID)
	}
	if t.ParentTaxID != "" {
		if t.ParentTaxID == t.ID {
			return invalid(types.KindTaxonomy, "parent_tax_id", "a taxon cannot be its own parent")
		}
		if !refs.TaxonomyExists(t.ParentTaxID) {
			return invalid(types.KindTaxonomy, "parent_tax_id", "taxonomy %s does not exist", t.ParentTaxID)
		}
	}
	return nil
}

// Sample checks coordinate ranges and that tax_id resolves.
func Sample(s types.Sample, refs Resolver) error {
	if err := checkID(types.KindSample, s.ID); err != nil {
		return err
	}
	if s.Latitude != nil && (*s.Latitude < -MaxLatitude || *s.Latitude > MaxLatitude) {
		return invalid(types.KindSample, "latitude", "%s is outside [-90, 90]", types.FormatCoordinate(s.Latitude))
	}
	if s.Longitude != nil && (*s.Longitude < -MaxLongitude || *s.Longitude > MaxLongitude) {
		return invalid(types.KindSample, "longitude", "%s is outside [-180, 180]", types.FormatCoordinate(s.Longitude))
	}
	if s.TaxID != "" && !refs.TaxonomyExists(s.TaxID) {
		return invalid(types.KindSample, "tax_id", "taxonomy %s does not exist", s.TaxID)
	}
	return nil
}

// checkID rejects caller-supplied ids that carry another kind's prefix.
// Empty ids are generated later and always pass.
func checkID(kind types.Kind, id string) error {
	if id == "" || ids.HasPrefix(kind, id) {
		return nil
	}
	return invalid(kind, "id", "id %q must start with %s-", id, kind.Prefix())
}

func invalid(kind types.Kind, field, format string, args ...any) error {
	return &types.ValidationError{Kind: kind, Field: field, Message: fmt.Sprintf(format, args...)}
}
