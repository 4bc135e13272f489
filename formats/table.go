package formats

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/arthur-debert/taxostore/taxostore/graph"
	"github.com/arthur-debert/taxostore/types"
)

// Tabular is implemented by values that know their own table layout.
type Tabular interface {
	Header() []string
	Rows() [][]string
}

// Table renders record lists as aligned columns. Values it has no layout
// for fall back to YAML.
var Table = &Format{
	Name: "table",
	Render: func(w io.Writer, v any) error {
		t, ok := tabulate(v)
		if !ok {
			return YAML.Render(w, v)
		}
		return writeTable(w, t.Header(), t.Rows())
	},
}

type table struct {
	header []string
	rows   [][]string
}

func (t table) Header() []string { return t.header }
func (t table) Rows() [][]string { return t.rows }

var (
	literatureHeader = []string{"ID", "TITLE", "AUTHORS", "JOURNAL", "YEAR"}
	taxonomyHeader   = []string{"ID", "NAME", "LEVEL", "TYPE", "LIT_ID"}
	sampleHeader     = []string{"ID", "TAX_ID", "COLLECTOR", "LATITUDE", "LONGITUDE"}
	danglingHeader   = []string{"KIND", "ID", "FIELD", "REF"}
)

func tabulate(v any) (Tabular, bool) {
	switch v := v.(type) {
	case Tabular:
		return v, true
	case []types.Literature:
		return table{literatureHeader, mapRows(v, literatureRow)}, true
	case types.Literature:
		return table{literatureHeader, [][]string{literatureRow(v)}}, true
	case []types.Taxonomy:
		return table{taxonomyHeader, mapRows(v, taxonomyRow)}, true
	case types.Taxonomy:
		return table{taxonomyHeader, [][]string{taxonomyRow(v)}}, true
	case []types.Sample:
		return table{sampleHeader, mapRows(v, sampleRow)}, true
	case types.Sample:
		return table{sampleHeader, [][]string{sampleRow(v)}}, true
	case []graph.DanglingRef:
		return table{danglingHeader, mapRows(v, func(d graph.DanglingRef) []string {
			return []string{string(d.Kind), d.ID, d.Field, d.Ref}
		})}, true
	}
	return nil, false
}

func literatureRow(l types.Literature) []string {
	return []string{l.ID, l.Title, l.Authors, l.Journal, l.Year}
}

func taxonomyRow(t types.Taxonomy) []string {
	return []string{t.ID, t.Name, string(t.Level), string(t.Type), t.LitID}
}

func sampleRow(s types.Sample) []string {
	return []string{s.ID, s.TaxID, s.Collector, types.FormatCoordinate(s.Latitude), types.FormatCoordinate(s.Longitude)}
}

func mapRows[T any](recs []T, row func(T) []string) [][]string {
	rows := make([][]string, 0, len(recs))
	for _, r := range recs {
		rows = append(rows, row(r))
	}
	return rows
}

func writeTable(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(tw, strings.Join(header, "\t")); err != nil {
		return err
	}
	for _, row := range rows {
		cells := make([]string, len(row))
		for i, c := range row {
			cells[i] = oneLine(c)
		}
		if _, err := fmt.Fprintln(tw, strings.Join(cells, "\t")); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// oneLine keeps multi-line values from breaking the column layout.
func oneLine(s string) string {
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.Join(strings.Fields(s), " ")
}
