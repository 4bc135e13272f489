package types

// Kind identifies one of the three record collections.
type Kind string

const (
	KindLiterature Kind = "literature"
	KindTaxonomy   Kind = "taxonomy"
	KindSample     Kind = "sample"
)

// Kinds lists every supported kind in catalog order.
var Kinds = []Kind{KindLiterature, KindTaxonomy, KindSample}

// Prefix returns the identifier prefix for the kind ("LIT", "TAX", "SMP").
func (k Kind) Prefix() string {
	switch k {
	case KindLiterature:
		return "LIT"
	case KindTaxonomy:
		return "TAX"
	case KindSample:
		return "SMP"
	}
	return ""
}

// ParseKind maps the textual kind used by the API and CLI to a Kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindLiterature, KindTaxonomy, KindSample:
		return Kind(s), nil
	}
	return "", &UnsupportedKindError{Kind: s}
}

// Level is the taxonomic rank of a Taxonomy record.
type Level string

const (
	LevelPhylum  Level = "Phylum"
	LevelClass   Level = "Class"
	LevelOrder   Level = "Order"
	LevelFamily  Level = "Family"
	LevelGenus   Level = "Genus"
	LevelSpecies Level = "Species"
)

// Levels lists the ranks from broadest to narrowest.
var Levels = []Level{LevelPhylum, LevelClass, LevelOrder, LevelFamily, LevelGenus, LevelSpecies}

// Valid reports whether l is one of the known ranks.
func (l Level) Valid() bool {
	for _, known := range Levels {
		if l == known {
			return true
		}
	}
	return false
}

// TaxonType records how a name entered the literature.
type TaxonType string

const (
	TypeNewTaxon       TaxonType = "new taxon"
	TypeNewCombination TaxonType = "new combination"
	TypeTaxonSwap      TaxonType = "taxon swap [new synonym]"
)

// TaxonTypes lists every known TaxonType.
var TaxonTypes = []TaxonType{TypeNewTaxon, TypeNewCombination, TypeTaxonSwap}

// Valid reports whether t is one of the known taxon types.
func (t TaxonType) Valid() bool {
	for _, known := range TaxonTypes {
		if t == known {
			return true
		}
	}
	return false
}

func (t TaxonType) String() string { return string(t) }

func (l Level) String() string { return string(l) }

func (k Kind) String() string { return string(k) }

// Collection returns the plural collection name used in API paths
// ("literature", "taxonomy", "samples").
func (k Kind) Collection() string {
	if k == KindSample {
		return "samples"
	}
	return string(k)
}
