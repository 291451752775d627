package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/worktree"
)

type walkFlags struct {
	paragraphs []string
	emoji      bool
	backward   bool
}

func newCursorCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cursor",
		Short: "Explore cursor positions",
	}

	var f walkFlags
	walk := &cobra.Command{
		Use:   "walk",
		Short: "Print every valid cursor position of a sample document",
		Long: `The walk command builds a document with one paragraph per --text value and
prints every valid cursor position from the start to the end of the
document, or from the end to the start with --backward.

Example:
  docstorm cursor walk --text Hi
  docstorm cursor walk --text Hi --text "" --emoji --backward`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCursorWalk(cmd, c, f)
		},
	}
	walk.Flags().StringArrayVar(&f.paragraphs, "text", []string{"Hello", "World"}, "Paragraph text (repeatable)")
	walk.Flags().BoolVar(&f.emoji, "emoji", false, "End every paragraph with an emoji")
	walk.Flags().BoolVar(&f.backward, "backward", false, "Walk from the end of the document")

	cmd.AddCommand(walk)
	return cmd
}

func runCursorWalk(cmd *cobra.Command, c *cli, f walkFlags) error {
	reg, err := c.cfg.Registry()
	if err != nil {
		return err
	}
	root, err := sampleDocument(reg, f)
	if err != nil {
		return err
	}

	opts := append(c.cfg.TreeOptions(), worktree.WithLogger(c.log.WithComponent("worktree")))
	tr, err := worktree.New(root, opts...)
	if err != nil {
		return err
	}

	nav := tr.Navigator()
	move := nav.ToNextCursorPosition
	ok := nav.ToDocumentStart()
	if f.backward {
		move = nav.ToPrecedingCursorPosition
		ok = nav.ToDocumentEnd()
	}

	out := cmd.OutOrStdout()
	n := 0
	for ok {
		fmt.Fprintln(out, nav.Cursor())
		n++
		ok = move()
	}
	c.log.Debug("walked %d cursor positions over %d nodes", n, tr.NodeCount())
	return nil
}

// sampleDocument builds a document of paragraphs holding one span each,
// using the document, paragraph, span and emoji types of reg.
func sampleDocument(reg *schema.Registry, f walkFlags) (*document.Node, error) {
	lookup := func(name string) (*schema.NodeType, error) {
		t, err := reg.Lookup(name)
		if err != nil {
			return nil, fmt.Errorf("sample document needs type %s: %w", name, err)
		}
		return t, nil
	}
	docType, err := lookup(schema.TypeDocument)
	if err != nil {
		return nil, err
	}
	paraType, err := lookup(schema.TypeParagraph)
	if err != nil {
		return nil, err
	}
	spanType, err := lookup(schema.TypeSpan)
	if err != nil {
		return nil, err
	}
	var emojiType *schema.NodeType
	if f.emoji {
		if emojiType, err = lookup(schema.TypeEmoji); err != nil {
			return nil, err
		}
	}

	paras := make([]*document.Node, 0, len(f.paragraphs))
	for _, text := range f.paragraphs {
		children := []*document.Node{document.NewText(spanType, text)}
		if emojiType != nil {
			children = append(children, document.New(emojiType).With("code", document.String("smile")))
		}
		paras = append(paras, document.New(paraType, children...))
	}
	return document.New(docType, paras...), nil
}
