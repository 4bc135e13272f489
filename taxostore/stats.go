package taxostore

import "strconv"

// Stats holds the number of records in each collection.
type Stats struct {
	LiteratureCount int `json:"literature_count" yaml:"literature_count"`
	TaxonomyCount   int `json:"taxonomy_count" yaml:"taxonomy_count"`
	SampleCount     int `json:"sample_count" yaml:"sample_count"`
}

// Stats counts the records currently held by the catalog.
func (c *Catalog) Stats() Stats {
	return Stats{
		LiteratureCount: c.literature.Len(),
		TaxonomyCount:   c.taxonomy.Len(),
		SampleCount:     c.samples.Len(),
	}
}

func (s Stats) Header() []string { return []string{"COLLECTION", "COUNT"} }

func (s Stats) Rows() [][]string {
	return [][]string{
		{"literature", strconv.Itoa(s.LiteratureCount)},
		{"taxonomy", strconv.Itoa(s.TaxonomyCount)},
		{"samples", strconv.Itoa(s.SampleCount)},
	}
}
