package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/arthur-debert/taxostore/formats"
	"github.com/arthur-debert/taxostore/taxostore"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// CLI wires the cobra command tree to a viper configuration and a lazily
// opened catalog.
type CLI struct {
	rootCmd   *cobra.Command
	viperInst *viper.Viper

	logger  *slog.Logger
	logFile io.Closer
	catalog *taxostore.Catalog
}

// NewCLI builds the command tree.
func NewCLI() *CLI {
	cli := &CLI{
		viperInst: viper.New(),
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	cli.setupViperConfig()
	cli.createRootCommand()
	cli.addCommands()
	return cli
}

// Execute runs the command selected by os.Args and releases the catalog
// and log file afterwards, whether or not the command failed.
func (cli *CLI) Execute() error {
	err := cli.rootCmd.Execute()
	if closeErr := cli.close(); err == nil {
		err = closeErr
	}
	return err
}

// setupViperConfig configures environment variable lookup. The config file
// is read in PersistentPreRunE, once --config has been parsed.
func (cli *CLI) setupViperConfig() {
	cli.viperInst.SetEnvPrefix("TAXOSTORE")
	cli.viperInst.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	cli.viperInst.AutomaticEnv()

	cli.viperInst.SetDefault("data-dir", ".")
	cli.viperInst.SetDefault("format", "table")
	cli.viperInst.SetDefault("log-level", "warn")
}

// readConfigFile loads --config / TAXOSTORE_CONFIG, or discovers
// taxostore.{yaml,json} in the working directory and ~/.taxostore.
func (cli *CLI) readConfigFile() error {
	if configFile := cli.viperInst.GetString("config"); configFile != "" {
		cli.viperInst.SetConfigFile(configFile)
		if err := cli.viperInst.ReadInConfig(); err != nil {
			return NewConfigError("load configuration", err.Error(), CommonSuggestions.CheckConfig)
		}
		return nil
	}

	cli.viperInst.SetConfigName("taxostore")
	cli.viperInst.AddConfigPath(".")
	cli.viperInst.AddConfigPath("$HOME/.taxostore")
	if err := cli.viperInst.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return NewConfigError("load configuration", err.Error(), CommonSuggestions.CheckConfig)
	}
	return nil
}

func (cli *CLI) createRootCommand() {
	cli.rootCmd = &cobra.Command{
		Use:   "taxostore",
		Short: "Catalog of literature, taxonomic names and specimen samples",
		Long: `taxostore keeps three linked collections in a data directory:

  literature.json  bibliographic references (LIT-...)
  taxonomy.json    taxonomic name acts citing literature (TAX-...)
  sample.json      collected specimens of a taxon (SMP-...)

Configuration Sources (in order of precedence):
1. Command line flags
2. Environment variables (TAXOSTORE_*, also read from ./.env)
3. Configuration file (--config, TAXOSTORE_CONFIG, ./taxostore.yaml, ~/.taxostore/taxostore.yaml)

Examples:
  taxostore literature add --title "Beetles of Borneo" --year 2019
  taxostore taxonomy list --search carabus --format json
  TAXOSTORE_DATA_DIR=./data taxostore stats
  taxostore serve --addr :8000`,
		SilenceUsage:  true,
		SilenceErrors: true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := cli.readConfigFile(); err != nil {
				return err
			}

			var stderr io.Writer
			if cli.viperInst.GetBool("verbose") {
				stderr = cmd.ErrOrStderr()
			}
			logger, logFile, err := initLogging(cli.viperInst.GetString("log-level"), stderr)
			if err != nil {
				return err
			}
			cli.logger, cli.logFile = logger, logFile
			cli.logger.Debug("command started", "command", cmd.CommandPath(), "args", args)
			return nil
		},
	}

	flags := cli.rootCmd.PersistentFlags()
	flags.StringP("data-dir", "d", ".", "Directory holding the collection documents")
	flags.StringP("format", "f", "table", fmt.Sprintf("Output format (%s)", strings.Join(formats.List(), "|")))
	flags.String("log-level", "warn", "Log level (debug|info|warn|error)")
	flags.BoolP("verbose", "v", false, "Also write log output to stderr")
	flags.Bool("strict", false, "Reject unknown enum values, out-of-range coordinates and dangling references")
	flags.String("config", "", "Configuration file path")

	for _, flag := range []string{"data-dir", "format", "log-level", "verbose", "strict", "config"} {
		_ = cli.viperInst.BindPFlag(flag, flags.Lookup(flag))
	}
}

func (cli *CLI) addCommands() {
	cli.rootCmd.AddCommand(
		cli.newLiteratureCommand(),
		cli.newTaxonomyCommand(),
		cli.newSampleCommand(),
		cli.newGenerateIDCommand(),
		cli.newStatsCommand(),
		cli.newCheckCommand(),
		cli.newExportCommand(),
		cli.newServeCommand(),
	)
}

// openCatalog opens the configured catalog on first use.
func (cli *CLI) openCatalog() (*taxostore.Catalog, error) {
	if cli.catalog != nil {
		return cli.catalog, nil
	}

	cfg := taxostore.DefaultConfig(cli.viperInst.GetString("data-dir"))
	cfg.Strict = cli.viperInst.GetBool("strict")
	if name := cli.viperInst.GetString("literature-file"); name != "" {
		cfg.LiteratureFile = name
	}
	if name := cli.viperInst.GetString("taxonomy-file"); name != "" {
		cfg.TaxonomyFile = name
	}
	if name := cli.viperInst.GetString("sample-file"); name != "" {
		cfg.SampleFile = name
	}

	cat, err := taxostore.Open(cfg, taxostore.WithLogger(cli.logger))
	if err != nil {
		return nil, WrapError("open catalog", err, CommonSuggestions.CheckDataDir)
	}
	cli.catalog = cat
	return cat, nil
}

func (cli *CLI) close() error {
	var errs []error
	if cli.catalog != nil {
		errs = append(errs, cli.catalog.Close())
		cli.catalog = nil
	}
	if cli.logFile != nil {
		errs = append(errs, cli.logFile.Close())
		cli.logFile = nil
	}
	return errors.Join(errs...)
}

// render writes v to the command's stdout in the configured format.
func (cli *CLI) render(cmd *cobra.Command, v any) error {
	name := cli.viperInst.GetString("format")
	format, err := formats.Get(name)
	if err != nil {
		return NewValidationError("render output", "format", name,
			fmt.Sprintf("Available formats: %s", strings.Join(formats.List(), ", ")))
	}
	return format.Render(cmd.OutOrStdout(), v)
}

// tableOutput reports whether output is the human-readable table.
func (cli *CLI) tableOutput() bool {
	return cli.viperInst.GetString("format") == formats.Table.Name
}
