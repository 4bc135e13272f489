// Package formats renders command output as a table, JSON or YAML.
package formats

import (
	"fmt"
	"io"
	"sort"
)

// Format writes a value to w in one output style.
type Format struct {
	// Name is the identifier used by --format (lowercase alphanumeric,
	// dashes and underscores).
	Name string

	Render func(w io.Writer, v any) error
}

// registry holds all available output formats
var registry = make(map[string]*Format)

func init() {
	for _, f := range []*Format{Table, JSON, YAML} {
		if err := Register(f); err != nil {
			panic(err)
		}
	}
}

// Register adds a new output format to the registry
func Register(format *Format) error {
	if !isValidFormatName(format.Name) {
		return fmt.Errorf("invalid format name %q: must be lowercase alphanumeric with dashes and underscores only", format.Name)
	}
	if format.Render == nil {
		return fmt.Errorf("format %q has no renderer", format.Name)
	}
	if _, exists := registry[format.Name]; exists {
		return fmt.Errorf("format %q already registered", format.Name)
	}

	registry[format.Name] = format
	return nil
}

// Get returns an output format by name
func Get(name string) (*Format, error) {
	format, exists := registry[name]
	if !exists {
		return nil, fmt.Errorf("unknown format %q (available: %v)", name, List())
	}
	return format, nil
}

// List returns all registered format names, sorted
func List() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func isValidFormatName(name string) bool {
	if name == "" {
		return false
	}

	for _, r := range name {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') && r != '-' && r != '_' {
			return false
		}
	}
	return true
}
