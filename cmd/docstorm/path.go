package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/docstorm/internal/treepath"
)

func newPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "path",
		Short: "Parse, compare and adjust tree paths",
		Long: `Tree paths address nodes and graphemes from the document root. Parts are
separated by "/"; a part is a child index ("2"), a facet ("caption") or a
facet entry ("footnotes:1"). The empty path is the root.`,
	}
	cmd.AddCommand(newPathParseCmd(), newPathCompareCmd(), newPathAdjustCmd())
	return cmd
}

func newPathParseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse <path>...",
		Short: "Parse paths and print their canonical form",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, arg := range args {
				p, err := treepath.Parse(arg)
				if err != nil {
					return fmt.Errorf("parsing %q: %w", arg, err)
				}
				fmt.Fprintf(out, "%s\tdepth=%d\n", showPath(p), p.Len())
				for i, part := range p {
					kind := "child"
					if part.IsFacet() {
						kind = "facet"
					}
					fmt.Fprintf(out, "  %d\t%s\t%s\n", i, kind, part)
				}
			}
			return nil
		},
	}
}

func newPathCompareCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "compare <a> <b>",
		Short: "Describe the structural relationship of two paths",
		Long: `The compare command prints how path a relates to path b and the
resulting document order (-1 when a comes first).

Example:
  docstorm path compare 0/1 0/1/2     # ancestor -1
  docstorm path compare 1/0 0/3       # later-branch 1`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, b, err := parsePair(args[0], args[1])
			if err != nil {
				return err
			}
			cmp := a.CompareTo(b)
			fmt.Fprintf(cmd.OutOrStdout(), "%s %d\n", cmp, cmp.Ordering())
			return nil
		},
	}
}

type adjustFlags struct {
	deleted  string
	inserted string
	moveFrom string
	moveTo   string
	split    string
}

func newPathAdjustCmd() *cobra.Command {
	var f adjustFlags
	cmd := &cobra.Command{
		Use:   "adjust <path>",
		Short: "Recompute a path after a structural change",
		Long: `The adjust command recomputes a path after a node was deleted, inserted,
moved or split elsewhere in the tree. Exactly one change must be given.
A split names the first child that moves into the new sibling.

Example:
  docstorm path adjust 0/3 --deleted 0/1        # 0/2 shifted
  docstorm path adjust 0/3 --inserted 0/0       # 0/4 shifted
  docstorm path adjust 0/1/2 --from 0/1 --to 3  # 3/2 shifted
  docstorm path adjust 0/1/5 --split 0/1/3      # 0/2/2 shifted`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := treepath.Parse(args[0])
			if err != nil {
				return fmt.Errorf("parsing %q: %w", args[0], err)
			}
			got, adj, err := f.apply(p)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", showPath(got), adj)
			return nil
		},
	}
	cmd.Flags().StringVar(&f.deleted, "deleted", "", "Path of a deleted node")
	cmd.Flags().StringVar(&f.inserted, "inserted", "", "Path of an inserted node")
	cmd.Flags().StringVar(&f.moveFrom, "from", "", "Original path of a moved node")
	cmd.Flags().StringVar(&f.moveTo, "to", "", "Destination path of a moved node")
	cmd.Flags().StringVar(&f.split, "split", "", "Path of the first child moved out by a split")
	cmd.MarkFlagsMutuallyExclusive("deleted", "inserted", "from", "split")
	cmd.MarkFlagsMutuallyExclusive("deleted", "inserted", "to", "split")
	cmd.MarkFlagsRequiredTogether("from", "to")
	cmd.MarkFlagsOneRequired("deleted", "inserted", "from", "split")
	return cmd
}

func (f adjustFlags) apply(p treepath.Path) (treepath.Path, treepath.Adjustment, error) {
	switch {
	case f.deleted != "":
		ref, err := parseRef("deleted", f.deleted)
		if err != nil {
			return nil, 0, err
		}
		got, adj := p.AdjustDueToRelativeDeletionAt(ref)
		return got, adj, nil
	case f.inserted != "":
		ref, err := parseRef("inserted", f.inserted)
		if err != nil {
			return nil, 0, err
		}
		got, adj := p.AdjustDueToRelativeInsertionBefore(ref)
		return got, adj, nil
	case f.moveFrom != "":
		from, to, err := parsePair(f.moveFrom, f.moveTo)
		if err != nil {
			return nil, 0, err
		}
		got, adj := p.AdjustDueToMove(from, to)
		return got, adj, nil
	case f.split != "":
		at, err := parseRef("split", f.split)
		if err != nil {
			return nil, 0, err
		}
		if tip, _ := at.Tip(); at.Len() < 2 || tip.IsFacet() {
			return nil, 0, fmt.Errorf("--split %q: not a child of a splittable node", f.split)
		}
		got, adj := p.AdjustDueToSplitAt(at)
		return got, adj, nil
	}
	return nil, 0, errors.New("no change given")
}

func parseRef(flag, s string) (treepath.Path, error) {
	p, err := treepath.Parse(s)
	if err != nil {
		return nil, fmt.Errorf("--%s %q: %w", flag, s, err)
	}
	if p.IsRoot() {
		return nil, fmt.Errorf("--%s: the root cannot be %s", flag, flag)
	}
	return p, nil
}

func parsePair(a, b string) (treepath.Path, treepath.Path, error) {
	pa, err := treepath.Parse(a)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %q: %w", a, err)
	}
	pb, err := treepath.Parse(b)
	if err != nil {
		return nil, nil, fmt.Errorf("parsing %q: %w", b, err)
	}
	return pa, pb, nil
}

func showPath(p treepath.Path) string {
	if p.IsRoot() {
		return "(root)"
	}
	return p.String()
}
