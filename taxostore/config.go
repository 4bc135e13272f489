package taxostore

import (
	"fmt"
	"path/filepath"

	"github.com/arthur-debert/taxostore/types"
)

// Default document names inside the data directory.
const (
	DefaultLiteratureFile = "literature.json"
	DefaultTaxonomyFile   = "taxonomy.json"
	DefaultSampleFile     = "sample.json"
)

// Config locates the catalog on disk.
type Config struct {
	DataDir string `mapstructure:"data_dir"`

	LiteratureFile string `mapstructure:"literature_file"`
	TaxonomyFile   string `mapstructure:"taxonomy_file"`
	SampleFile     string `mapstructure:"sample_file"`

	// Strict enables enum, coordinate-range and reference-existence checks
	// on every upsert.
	Strict bool `mapstructure:"strict"`
}

// DefaultConfig returns a Config for dataDir with the default file names.
func DefaultConfig(dataDir string) Config {
	return Config{
		DataDir:        dataDir,
		LiteratureFile: DefaultLiteratureFile,
		TaxonomyFile:   DefaultTaxonomyFile,
		SampleFile:     DefaultSampleFile,
	}
}

// withDefaults fills empty file names.
func (c Config) withDefaults() Config {
	if c.DataDir == "" {
		c.DataDir = "."
	}
	if c.LiteratureFile == "" {
		c.LiteratureFile = DefaultLiteratureFile
	}
	if c.TaxonomyFile == "" {
		c.TaxonomyFile = DefaultTaxonomyFile
	}
	if c.SampleFile == "" {
		c.SampleFile = DefaultSampleFile
	}
	return c
}

// Path returns the document path for kind.
func (c Config) Path(kind types.Kind) string {
	c = c.withDefaults()
	switch kind {
	case types.KindLiterature:
		return filepath.Join(c.DataDir, c.LiteratureFile)
	case types.KindTaxonomy:
		return filepath.Join(c.DataDir, c.TaxonomyFile)
	case types.KindSample:
		return filepath.Join(c.DataDir, c.SampleFile)
	}
	return ""
}

// Validate rejects configurations whose documents would collide.
func (c Config) Validate() error {
	c = c.withDefaults()
	seen := make(map[string]types.Kind)
	for _, kind := range types.Kinds {
		p := c.Path(kind)
		if other, ok := seen[p]; ok {
			return fmt.Errorf("%s and %s share the document %s", other, kind, p)
		}
		seen[p] = kind
	}
	return nil
}
