// Package export packages a catalog into a single zip archive and delivers
// it to a local directory or an S3 bucket.
package export

import (
	"time"

	"github.com/arthur-debert/taxostore/types"
)

// Snapshot is a point-in-time copy of the three collections.
type Snapshot struct {
	Literature []types.Literature
	Taxonomy   []types.Taxonomy
	Samples    []types.Sample
	CreatedAt  time.Time
}

// Manifest is written to manifest.json inside every archive.
type Manifest struct {
	FormatVersion   int       `json:"format_version"`
	CreatedAt       time.Time `json:"created_at"`
	LiteratureCount int       `json:"literature_count"`
	TaxonomyCount   int       `json:"taxonomy_count"`
	SampleCount     int       `json:"sample_count"`
}

// FormatVersion is bumped when the archive layout changes.
const FormatVersion = 1

// Entry names inside the archive. The collection documents keep the names
// they have in the data directory so an archive can be unpacked in place.
const (
	LiteratureEntry = "literature.json"
	TaxonomyEntry   = "taxonomy.json"
	SampleEntry     = "sample.json"
	ManifestEntry   = "manifest.json"
)

func (s Snapshot) manifest() Manifest {
	return Manifest{
		FormatVersion:   FormatVersion,
		CreatedAt:       s.CreatedAt.UTC(),
		LiteratureCount: len(s.Literature),
		TaxonomyCount:   len(s.Taxonomy),
		SampleCount:     len(s.Samples),
	}
}
