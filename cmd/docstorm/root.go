package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/docstorm/internal/config"
	"github.com/dshills/docstorm/internal/logging"
)

// Version information (set via ldflags during build).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// cli carries the global flags and the state resolved from them before a
// subcommand runs.
type cli struct {
	configPath string
	logLevel   string

	cfg *config.Config
	log *logging.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}
	root := &cobra.Command{
		Use:   "docstorm",
		Short: "Inspect rich text document trees",
		Long: `docstorm exercises the docstorm document engine from the command line.
It validates node type schemas, parses and compares tree paths, and walks
the cursor positions of a sample document.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.setup(cmd)
		},
	}

	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "Path to configuration file (TOML or YAML)")
	root.PersistentFlags().StringVar(&c.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	root.AddCommand(newSchemaCmd(c))
	root.AddCommand(newPathCmd())
	root.AddCommand(newCursorCmd(c))
	return root
}

// setup loads the configuration and builds the logger. The --log-level flag
// wins over the configured level.
func (c *cli) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if c.logLevel != "" {
		cfg.Logging.Level = c.logLevel
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	c.cfg = cfg
	c.log = cfg.Logger(cmd.ErrOrStderr())
	c.log.Debug("config loaded from %q", c.configPath)
	return nil
}

// execute runs the command tree and returns the process exit code.
func execute(args []string) int {
	root := newRootCmd()
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}
