package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/docstorm/internal/schema"
)

func newSchemaCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Work with node type schemas",
	}

	var watch bool
	check := &cobra.Command{
		Use:   "check [file]",
		Short: "Load a schema and list its node types",
		Long: `The check command loads a YAML or TOML schema file and validates every
node type in it. Without a file it checks the configured schema, or the
built-in basic schema when none is configured. With --watch the file is
checked again every time it changes, until interrupted.

Example:
  docstorm schema check
  docstorm schema check notes.yaml
  docstorm schema check notes.yaml --watch`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if watch {
				return runSchemaWatch(cmd, c, args)
			}
			return runSchemaCheck(cmd, c, args)
		},
	}
	check.Flags().BoolVarP(&watch, "watch", "w", false, "Check again whenever the schema file changes")

	cmd.AddCommand(check)
	return cmd
}

func runSchemaCheck(cmd *cobra.Command, c *cli, args []string) error {
	var (
		reg    *schema.Registry
		err    error
		source = c.cfg.Schema.Path
	)
	if len(args) == 1 {
		source = args[0]
		reg, err = schema.LoadFile(source)
	} else {
		reg, err = c.cfg.Registry()
	}
	if err != nil {
		return err
	}
	if source == "" {
		source = "basic"
	}
	return reportSchema(cmd.OutOrStdout(), c, source, reg)
}

func runSchemaWatch(cmd *cobra.Command, c *cli, args []string) error {
	source := c.cfg.Schema.Path
	if len(args) == 1 {
		source = args[0]
	}
	if source == "" {
		return fmt.Errorf("--watch needs a schema file")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	out := cmd.OutOrStdout()
	c.log.Info("watching schema %s", source)
	return schema.Watch(ctx, source, func(reg *schema.Registry, err error) {
		if err == nil {
			err = reportSchema(out, c, source, reg)
		}
		if err != nil {
			fmt.Fprintf(out, "%s: %v\n", source, err)
		}
	})
}

func reportSchema(out io.Writer, c *cli, source string, reg *schema.Registry) error {
	c.log.Debug("checking schema %s", source)

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TYPE\tCATEGORY\tCHILDREN\tFACETS")
	for _, t := range reg.Types() {
		if err := t.Validate(); err != nil {
			return fmt.Errorf("type %s: %w", t.Name, err)
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.Name, t.Category, t.Children, facetList(t))
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	docs := reg.Documents()
	if len(docs) == 0 {
		c.log.Warn("schema %s declares no document type", source)
	}
	fmt.Fprintf(out, "\n%s: %d types, %d document types\n", source, reg.Len(), len(docs))
	return nil
}

func facetList(t *schema.NodeType) string {
	if len(t.Facets) == 0 {
		return "-"
	}
	parts := make([]string, 0, len(t.Facets))
	for _, f := range t.Facets {
		s := f.Name + ":" + f.Kind.String()
		if f.Optional {
			s += "?"
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, ",")
}
