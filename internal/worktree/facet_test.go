package worktree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/style"
	"github.com/dshills/docstorm/internal/treepath"
)

func TestSetFacetAnchorRange(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("Hello"), k.comment(ref("0/0/0", treepath.Before), ref("0/0/4", treepath.After)))))
	comment := nodeAt(t, tr, "0/1")
	oldFrom, oldTo, _ := comment.FacetAnchorRange("range")

	err := tr.SetFacet(comment.ID(), "range", document.AnchorRange{
		From: ref("0/0/1", treepath.After),
		To:   ref("0/0/3", treepath.After),
	})
	require.NoError(t, err)

	_, ok := tr.Anchor(oldFrom)
	require.False(t, ok)
	_, ok = tr.Anchor(oldTo)
	require.False(t, ok)
	require.Len(t, tr.Anchors(), 2)

	from, to, ok := comment.FacetAnchorRange("range")
	require.True(t, ok)
	require.Equal(t, "after:0/0/1", cursorOf(t, tr, from))
	require.Equal(t, "after:0/0/3", cursorOf(t, tr, to))
	require.NoError(t, tr.Check())

	err = tr.SetFacet(comment.ID(), "range", document.AnchorRange{
		From: ref("0/0/9", treepath.After),
		To:   ref("0/0/3", treepath.After),
	})
	require.ErrorIs(t, err, ErrStructural)
	require.Len(t, tr.Anchors(), 2, "a rejected value leaves the old one in place")
}

func TestSetFacetNodeArray(t *testing.T) {
	k := basicKinds()
	note := document.New(k.Footnote, k.para(k.text("N")))
	tr := newTree(t, k.doc(k.para(k.text("AB"))).With("footnotes", document.Nodes{note}))
	root := tr.Root().ID()
	a := addAnchor(t, tr, AtGrapheme(nodeAt(t, tr, "footnotes:0/0/0").ID(), 0, treepath.After))
	require.Equal(t, 6, tr.NodeCount())

	require.NoError(t, tr.SetFacet(root, "footnotes", document.Nodes{}))
	require.Empty(t, tr.Root().FacetNodes("footnotes"))
	require.Equal(t, "before:0/0/0", cursorOf(t, tr, a))
	require.Equal(t, 3, tr.NodeCount())

	two := document.Nodes{
		document.New(k.Footnote, k.para(k.text("X"))),
		document.New(k.Footnote, k.para(k.text("Y"))),
	}
	require.NoError(t, tr.SetFacet(root, "footnotes", two))
	notes := tr.Root().FacetNodes("footnotes")
	require.Len(t, notes, 2)
	require.Equal(t, "footnotes:1", tr.PathOf(notes[1]).String())
	require.Equal(t, "Y", notes[1].Text())
	require.Equal(t, 9, tr.NodeCount())

	err := tr.SetFacet(root, "footnotes", document.Nodes{k.para()})
	require.ErrorIs(t, err, ErrStructural)
	require.NoError(t, tr.Check())
}

func TestSetFacetScalars(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.link("GO", "https://go.dev"))))
	link := nodeAt(t, tr, "0/0")

	require.NoError(t, tr.SetFacet(link.ID(), "url", document.String("https://pkg.go.dev")))
	url, ok := link.Facet("url")
	require.True(t, ok)
	require.Equal(t, document.String("https://pkg.go.dev"), url)

	require.ErrorIs(t, tr.SetFacet(link.ID(), "url", document.Bool(true)), ErrStructural)
	require.ErrorIs(t, tr.SetFacet(link.ID(), "nope", document.String("x")), ErrStructural)
	require.ErrorIs(t, tr.SetFacet("missing", "url", document.String("x")), ErrLookup)

	require.NoError(t, tr.SetFacet(tr.Root().ID(), "title", document.String("Notes")))
	title, ok := tr.Root().Facet("title")
	require.True(t, ok)
	require.Equal(t, document.String("Notes"), title)
}

func TestSetFacetStylesAreCopied(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("ABC"))))
	span := nodeAt(t, tr, "0/0")

	runs := style.NewRuns(style.Entry{At: 1, Modifier: style.Modifier{Italic: style.On}})
	require.NoError(t, tr.SetFacet(span.ID(), "styles", document.Styles{Runs: runs}))
	runs.SetModifier(0, style.Modifier{Italic: style.On})

	got := span.Styles("styles")
	require.False(t, got.ResolveAt(0).Italic)
	require.True(t, got.ResolveAt(1).Italic)
}
