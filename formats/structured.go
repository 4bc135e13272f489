package formats

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"
)

// JSON renders values as indented JSON, matching the on-disk documents.
var JSON = &Format{
	Name: "json",
	Render: func(w io.Writer, v any) error {
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	},
}

// YAML renders values with gopkg.in/yaml.v3.
var YAML = &Format{
	Name: "yaml",
	Render: func(w io.Writer, v any) error {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	},
}
