// Package types holds the record kinds stored by taxostore and the errors
// shared across its packages.
package types

import (
	"math"
	"strconv"
	"strings"
)

// Record is implemented by the three record kinds. The type parameter lets a
// generic collection assign identifiers without reflection.
type Record[T any] interface {
	GetID() string
	WithID(id string) T
	Kind() Kind
	Validate() error
	SearchFields() []string
}

// Literature is a bibliographic reference.
type Literature struct {
	ID       string `json:"id" yaml:"id"`
	Title    string `json:"title" yaml:"title"`
	Authors  string `json:"authors" yaml:"authors"`
	Journal  string `json:"journal" yaml:"journal"`
	Year     string `json:"year" yaml:"year"`
	DOI      string `json:"doi" yaml:"doi"`
	URL      string `json:"url" yaml:"url"`
	Abstract string `json:"abstract" yaml:"abstract"`
	// IsOA is nil when open-access status is unknown.
	IsOA *bool `json:"is_oa,omitempty" yaml:"is_oa,omitempty"`
}

func (l Literature) GetID() string { return l.ID }

func (l Literature) WithID(id string) Literature {
	l.ID = id
	return l
}

func (Literature) Kind() Kind { return KindLiterature }

// Validate enforces that a title is present.
func (l Literature) Validate() error {
	if strings.TrimSpace(l.Title) == "" {
		return &ValidationError{Kind: KindLiterature, Field: "title", Message: "title is required"}
	}
	return nil
}

func (l Literature) SearchFields() []string {
	return []string{l.ID, l.Title, l.Authors, l.Journal, l.Year, l.DOI, l.Abstract}
}

// Taxonomy is a taxonomic name act. LitID points at the Literature that
// published it; ParentTaxID points at the taxon it recombines or synonymizes.
// An empty reference is stored as "" and never resolves.
type Taxonomy struct {
	ID          string    `json:"id" yaml:"id"`
	Name        string    `json:"name" yaml:"name"`
	Level       Level     `json:"level" yaml:"level"`
	Type        TaxonType `json:"type" yaml:"type"`
	LitID       string    `json:"lit_id" yaml:"lit_id"`
	ParentTaxID string    `json:"parent_tax_id" yaml:"parent_tax_id"`
	Description string    `json:"description" yaml:"description"`
}

func (t Taxonomy) GetID() string { return t.ID }

func (t Taxonomy) WithID(id string) Taxonomy {
	t.ID = id
	return t
}

func (Taxonomy) Kind() Kind { return KindTaxonomy }

// Validate enforces that a name is present.
func (t Taxonomy) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return &ValidationError{Kind: KindTaxonomy, Field: "name", Message: "name is required"}
	}
	return nil
}

func (t Taxonomy) SearchFields() []string {
	return []string{t.ID, t.Name, string(t.Level), string(t.Type), t.LitID, t.Description}
}

// Sample is a collected specimen of a taxon. Coordinates are decimal
// degrees and nil when not recorded.
type Sample struct {
	ID          string   `json:"id" yaml:"id"`
	TaxID       string   `json:"tax_id" yaml:"tax_id"`
	Collector   string   `json:"collector" yaml:"collector"`
	Latitude    *float64 `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	Description string   `json:"description" yaml:"description"`
}

func (s Sample) GetID() string { return s.ID }

func (s Sample) WithID(id string) Sample {
	s.ID = id
	return s
}

func (Sample) Kind() Kind { return KindSample }

// Validate enforces that the sample names a taxon.
func (s Sample) Validate() error {
	if strings.TrimSpace(s.TaxID) == "" {
		return &ValidationError{Kind: KindSample, Field: "tax_id", Message: "tax_id is required"}
	}
	return nil
}

func (s Sample) SearchFields() []string {
	return []string{s.ID, s.TaxID, s.Collector, FormatCoordinate(s.Latitude), FormatCoordinate(s.Longitude), s.Description}
}

// FormatCoordinate renders a coordinate the way the catalog has always shown
// it: shortest decimal form with a trailing ".0" for whole degrees, switching
// to exponent form ("1e-05") below 1e-4 and from 1e16. A nil coordinate
// renders as "".
func FormatCoordinate(v *float64) string {
	if v == nil {
		return ""
	}
	if abs := math.Abs(*v); abs != 0 && (abs < 1e-4 || abs >= 1e16) {
		return strconv.FormatFloat(*v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(*v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}

// Float returns a pointer to v, for building Samples in code.
func Float(v float64) *float64 { return &v }

// Bool returns a pointer to v, for setting Literature.IsOA.
func Bool(v bool) *bool { return &v }
