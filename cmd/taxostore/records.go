package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/taxostore/taxostore"
	"github.com/arthur-debert/taxostore/types"
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// section is one titled block of show output in table format.
type section struct {
	title string
	value any
}

func (cli *CLI) newLiteratureCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "literature",
		Aliases: []string{"lit"},
		Short:   "Manage bibliographic references",
	}

	var lit types.Literature
	var openAccess bool
	add := &cobra.Command{
		Use:     "add",
		Aliases: []string{"upsert"},
		Short:   "Add a reference, or replace the one with the same --id",
		Example: `  taxostore literature add --title "Beetles of Borneo" --authors "Smith, J." --year 2019
  taxostore literature add --id LIT-0001 --title "Beetles of Borneo (2nd ed.)" --open-access`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("open-access") {
				lit.IsOA = types.Bool(openAccess)
			}
			return cli.runUpsert(cmd, "add literature", func(cat *taxostore.Catalog) (any, error) {
				return cat.UpsertLiterature(lit)
			})
		},
	}
	f := add.Flags()
	f.StringVar(&lit.ID, "id", "", "Identifier (generated when empty)")
	f.StringVar(&lit.Title, "title", "", "Title (required)")
	f.StringVar(&lit.Authors, "authors", "", "Authors, separated by \"; \"")
	f.StringVar(&lit.Journal, "journal", "", "Journal")
	f.StringVar(&lit.Year, "year", "", "Publication year")
	f.StringVar(&lit.DOI, "doi", "", "DOI")
	f.StringVar(&lit.URL, "url", "", "URL")
	f.StringVar(&lit.Abstract, "abstract", "", "Abstract")
	f.BoolVar(&openAccess, "open-access", false, "Mark as open access (--open-access=false for closed; omit when unknown)")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a reference and the taxa citing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}
			lit, err := cat.GetLiterature(args[0])
			if err != nil {
				return cli.notFound("show literature", types.KindLiterature, args[0], err)
			}
			citing := cat.Graph().TaxaCiting(lit.ID)

			view := struct {
				Literature types.Literature  `json:"literature" yaml:"literature"`
				CitedBy    []types.Taxonomy `json:"cited_by" yaml:"cited_by"`
			}{lit, citing}
			sections := []section{{"", lit}}
			if len(citing) > 0 {
				sections = append(sections, section{"Cited by", citing})
			}
			return cli.renderShow(cmd, view, sections)
		},
	}

	importRIS := &cobra.Command{
		Use:   "import-ris <file|->",
		Short: "Add a reference parsed from a RIS citation",
		Long: `Parse a RIS citation (TI/T1, AU/A1, JO/JF/T2, PY/Y1, DO, UR, AB/N2) and store it
as a new reference with a generated id. Reads stdin when the argument is "-".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			text, err := readInput(cmd, args[0])
			if err != nil {
				return WrapError("import RIS", err)
			}
			return cli.runUpsert(cmd, "import RIS", func(cat *taxostore.Catalog) (any, error) {
				return cat.ImportRIS(text)
			})
		},
	}

	cmd.AddCommand(
		cli.newListCommand("references", func(cat *taxostore.Catalog, q string) any { return cat.ListLiterature(q) }),
		add,
		show,
		cli.newDeleteCommand(types.KindLiterature, func(cat *taxostore.Catalog, id string) (bool, error) {
			if n := len(cat.Graph().TaxaCiting(id)); n > 0 {
				cli.warnf("%d taxa cite %s and will keep a dangling lit_id\n", n, id)
			}
			return cat.DeleteLiterature(id)
		}),
		importRIS,
	)
	return cmd
}

func (cli *CLI) newTaxonomyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "taxonomy",
		Aliases: []string{"tax"},
		Short:   "Manage taxonomic name acts",
	}

	var tax types.Taxonomy
	var level, taxonType string
	add := &cobra.Command{
		Use:     "add",
		Aliases: []string{"upsert"},
		Short:   "Add a taxon, or replace the one with the same --id",
		Example: `  taxostore taxonomy add --name "Carabus auratus" --level species --type "new combination" --lit-id LIT-0001`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tax.Level = normalizeLevel(level)
			tax.Type = types.TaxonType(cases.Lower(language.Und).String(strings.TrimSpace(taxonType)))
			return cli.runUpsert(cmd, "add taxonomy", func(cat *taxostore.Catalog) (any, error) {
				return cat.UpsertTaxonomy(tax)
			})
		},
	}
	f := add.Flags()
	f.StringVar(&tax.ID, "id", "", "Identifier (generated when empty)")
	f.StringVar(&tax.Name, "name", "", "Scientific name (required)")
	f.StringVar(&level, "level", "", "Rank: Phylum, Class, Order, Family, Genus or Species")
	f.StringVar(&taxonType, "type", "", `"new taxon", "new combination" or "taxon swap [new synonym]"`)
	f.StringVar(&tax.LitID, "lit-id", "", "Literature publishing this act")
	f.StringVar(&tax.ParentTaxID, "parent", "", "Parent or senior taxon id")
	f.StringVar(&tax.Description, "description", "", "Description")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a taxon with its literature, parent, children and samples",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}
			tax, err := cat.GetTaxonomy(args[0])
			if err != nil {
				return cli.notFound("show taxonomy", types.KindTaxonomy, args[0], err)
			}

			g := cat.Graph()
			view := struct {
				Taxonomy   types.Taxonomy    `json:"taxonomy" yaml:"taxonomy"`
				Literature *types.Literature `json:"literature,omitempty" yaml:"literature,omitempty"`
				Parent     *types.Taxonomy   `json:"parent,omitempty" yaml:"parent,omitempty"`
				Children   []types.Taxonomy  `json:"children" yaml:"children"`
				Samples    []types.Sample    `json:"samples" yaml:"samples"`
			}{Taxonomy: tax, Children: g.ChildrenOf(tax.ID), Samples: g.SamplesOf(tax.ID)}

			sections := []section{{"", tax}}
			if lit, ok := g.LiteratureOf(tax); ok {
				view.Literature = &lit
				sections = append(sections, section{"Literature", lit})
			}
			if parent, ok := g.ParentOf(tax); ok {
				view.Parent = &parent
				sections = append(sections, section{"Parent", parent})
			}
			if len(view.Children) > 0 {
				sections = append(sections, section{"Children", view.Children})
			}
			if len(view.Samples) > 0 {
				sections = append(sections, section{"Samples", view.Samples})
			}
			return cli.renderShow(cmd, view, sections)
		},
	}

	cmd.AddCommand(
		cli.newListCommand("taxa", func(cat *taxostore.Catalog, q string) any { return cat.ListTaxonomy(q) }),
		add,
		show,
		cli.newDeleteCommand(types.KindTaxonomy, func(cat *taxostore.Catalog, id string) (bool, error) {
			g := cat.Graph()
			if n := len(g.ChildrenOf(id)); n > 0 {
				cli.warnf("%d child taxa point at %s and will keep a dangling parent_tax_id\n", n, id)
			}
			if n := len(g.SamplesOf(id)); n > 0 {
				cli.warnf("%d samples point at %s and will keep a dangling tax_id\n", n, id)
			}
			return cat.DeleteTaxonomy(id)
		}),
	)
	return cmd
}

func (cli *CLI) newSampleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "sample",
		Aliases: []string{"samples", "smp"},
		Short:   "Manage collected specimens",
	}

	var smp types.Sample
	var lat, long float64
	add := &cobra.Command{
		Use:     "add",
		Aliases: []string{"upsert"},
		Short:   "Add a sample, or replace the one with the same --id",
		Example: `  taxostore sample add --tax-id TAX-0003 --collector Wallace --lat 12.5 --long 30`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("lat") {
				smp.Latitude = types.Float(lat)
			}
			if cmd.Flags().Changed("long") {
				smp.Longitude = types.Float(long)
			}
			return cli.runUpsert(cmd, "add sample", func(cat *taxostore.Catalog) (any, error) {
				return cat.UpsertSample(smp)
			})
		},
	}
	f := add.Flags()
	f.StringVar(&smp.ID, "id", "", "Identifier (generated when empty)")
	f.StringVar(&smp.TaxID, "tax-id", "", "Taxon the specimen belongs to (required)")
	f.StringVar(&smp.Collector, "collector", "", "Collector")
	f.Float64Var(&lat, "lat", 0, "Latitude in decimal degrees")
	f.Float64Var(&long, "long", 0, "Longitude in decimal degrees")
	f.StringVar(&smp.Description, "description", "", "Description")

	show := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a sample and its taxon",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}
			smp, err := cat.GetSample(args[0])
			if err != nil {
				return cli.notFound("show sample", types.KindSample, args[0], err)
			}

			view := struct {
				Sample   types.Sample    `json:"sample" yaml:"sample"`
				Taxonomy *types.Taxonomy `json:"taxonomy,omitempty" yaml:"taxonomy,omitempty"`
			}{Sample: smp}
			sections := []section{{"", smp}}
			if tax, ok := cat.Graph().TaxonomyOf(smp); ok {
				view.Taxonomy = &tax
				sections = append(sections, section{"Taxonomy", tax})
			}
			return cli.renderShow(cmd, view, sections)
		},
	}

	cmd.AddCommand(
		cli.newListCommand("samples", func(cat *taxostore.Catalog, q string) any { return cat.ListSamples(q) }),
		add,
		show,
		cli.newDeleteCommand(types.KindSample, func(cat *taxostore.Catalog, id string) (bool, error) {
			return cat.DeleteSample(id)
		}),
	)
	return cmd
}

func (cli *CLI) newListCommand(noun string, list func(*taxostore.Catalog, string) any) *cobra.Command {
	var query string
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List " + noun + ", optionally filtered by a case-insensitive substring",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}
			return cli.render(cmd, list(cat, query))
		},
	}
	cmd.Flags().StringVarP(&query, "search", "s", "", "Substring to search for")
	return cmd
}

func (cli *CLI) newDeleteCommand(kind types.Kind, remove func(*taxostore.Catalog, string) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete a " + string(kind) + " record; references to it are left in place",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := cli.openCatalog()
			if err != nil {
				return err
			}
			removed, err := remove(cat, args[0])
			if err != nil {
				return WrapError("delete "+string(kind), err)
			}
			if removed {
				fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %s\n", kind, args[0])
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "No %s with ID %s\n", kind, args[0])
			}
			return nil
		},
	}
}

// runUpsert opens the catalog, stores a record and renders the result.
func (cli *CLI) runUpsert(cmd *cobra.Command, operation string, upsert func(*taxostore.Catalog) (any, error)) error {
	cat, err := cli.openCatalog()
	if err != nil {
		return err
	}
	stored, err := upsert(cat)
	if err != nil {
		return WrapError(operation, err)
	}
	return cli.render(cmd, stored)
}

func (cli *CLI) renderShow(cmd *cobra.Command, view any, sections []section) error {
	if !cli.tableOutput() {
		return cli.render(cmd, view)
	}
	out := cmd.OutOrStdout()
	for i, s := range sections {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if s.title != "" {
			fmt.Fprintf(out, "%s:\n", s.title)
		}
		if err := cli.render(cmd, s.value); err != nil {
			return err
		}
	}
	return nil
}

func (cli *CLI) notFound(operation string, kind types.Kind, id string, err error) error {
	if errors.Is(err, types.ErrNotFound) {
		return NewNotFoundError(operation, kind, id, CommonSuggestions.CheckID)
	}
	return WrapError(operation, err)
}

func (cli *CLI) warnf(format string, args ...any) {
	fmt.Fprintf(cli.rootCmd.ErrOrStderr(), "Warning: "+format, args...)
}

// normalizeLevel maps "species" or "SPECIES" to "Species".
func normalizeLevel(s string) types.Level {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	return types.Level(cases.Title(language.Und).String(s))
}

func readInput(cmd *cobra.Command, path string) (string, error) {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(cmd.InOrStdin())
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
