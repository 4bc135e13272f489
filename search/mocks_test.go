package search

import "github.com/arthur-debert/taxostore/types"

// fakeRecord lets tests control the field list directly.
type fakeRecord []string

func (f fakeRecord) SearchFields() []string { return f }

// sampleLiterature provides a small literature list for testing.
func sampleLiterature() []types.Literature {
	return []types.Literature{
		{ID: "LIT-1", Title: "Beetles of Borneo", Authors: "Smith, J.", Journal: "Zootaxa", Year: "2019"},
		{ID: "LIT-2", Title: "A revision of Carabidae", Authors: "Müller, K.", Year: "2021", DOI: "10.1000/xyz"},
		{ID: "LIT-3", Title: "Moths", Abstract: "Nocturnal LEPIDOPTERA of Sumatra", URL: "https://example.org/beetles"},
	}
}
