package worktree

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/style"
	"github.com/dshills/docstorm/internal/treepath"
)

func TestInsertNode(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("AB")), k.para(k.text("EF"))))
	root := tr.Root().ID()
	last := nodeAt(t, tr, "1/0")
	a := addAnchor(t, tr, AtGrapheme(last.ID(), 0, treepath.Before))

	n, err := tr.InsertNode(root, k.para(k.text("CD")), 1, "")
	require.NoError(t, err)
	require.Equal(t, "1", tr.PathOf(n).String())
	require.Equal(t, "ABCDEF", tr.Text())
	require.Equal(t, "before:2/0/0", cursorOf(t, tr, a))

	_, err = tr.InsertNode(root, k.para(), 4, "")
	require.ErrorIs(t, err, ErrStructural)
	_, err = tr.InsertNode(root, k.text("x"), 0, "")
	require.ErrorIs(t, err, ErrStructural)
	_, err = tr.InsertNode(root, k.para(document.New(k.Emoji)), 0, "")
	require.ErrorIs(t, err, ErrStructural)
	_, err = tr.InsertNode("missing", k.para(), 0, "")
	require.ErrorIs(t, err, ErrLookup)
	require.NoError(t, tr.Check())
}

func TestInsertNodeIntoFacet(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("AB"))))
	root := tr.Root().ID()

	note, err := tr.InsertNode(root, document.New(k.Footnote, k.para(k.text("N"))), 0, "footnotes")
	require.NoError(t, err)
	require.Equal(t, "footnotes:0", tr.PathOf(note).String())
	require.Len(t, tr.Root().FacetNodes("footnotes"), 1)
	require.Equal(t, "AB", tr.Text())
	require.Equal(t, "N", note.Text())

	tip, ok := tr.Resolve(treepath.MustParse("footnotes:0/0/0/0"))
	require.True(t, ok)
	require.Equal(t, "N", tip.(Grapheme).Grapheme())

	_, err = tr.InsertNode(root, k.para(), 0, "footnotes")
	require.ErrorIs(t, err, ErrStructural)
	_, err = tr.InsertNode(root, document.New(k.Footnote), 0, "title")
	require.ErrorIs(t, err, ErrStructural)
	require.NoError(t, tr.Check())
}

func TestInsertNodeText(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("AD"))))
	span := nodeAt(t, tr, "0/0").ID()
	afterA := addAnchor(t, tr, AtGrapheme(span, 0, treepath.After))
	beforeD := addAnchor(t, tr, AtGrapheme(span, 1, treepath.Before))

	require.NoError(t, tr.InsertNodeText(span, 1, "BC"))
	require.Equal(t, "ABCD", tr.Text())
	require.Equal(t, "after:0/0/0", cursorOf(t, tr, afterA))
	require.Equal(t, "before:0/0/3", cursorOf(t, tr, beforeD))

	require.NoError(t, tr.InsertNodeText(span, 4, "E"))
	require.Equal(t, "ABCDE", tr.Text())
	require.NoError(t, tr.InsertNodeText(span, 0, ""))

	require.ErrorIs(t, tr.InsertNodeText(span, 6, "x"), ErrStructural)
	require.ErrorIs(t, tr.InsertNodeText(nodeAt(t, tr, "0").ID(), 0, "x"), ErrStructural)
	require.NoError(t, tr.Check())
}

func TestInsertNodeTextShiftsStyles(t *testing.T) {
	k := basicKinds()
	bold := style.NewRuns(style.Entry{At: 1, Modifier: style.Modifier{Bold: style.On}})
	tr := newTree(t, k.doc(k.para(k.text("AB").With("styles", document.Styles{Runs: bold}))))
	span := nodeAt(t, tr, "0/0")

	require.NoError(t, tr.InsertNodeText(span.ID(), 1, "xy"))
	runs := span.Styles("styles")
	require.False(t, runs.ResolveAt(2).Bold)
	require.True(t, runs.ResolveAt(3).Bold)
	require.Equal(t, 1, bold.Entries()[0].At, "template runs are not shared")
}

func TestInsertIntoEmptyContainer(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text(""))))
	span := nodeAt(t, tr, "0/0").ID()
	on := addAnchor(t, tr, AtNode(span, treepath.On))
	require.Equal(t, "on:0/0", cursorOf(t, tr, on))

	require.NoError(t, tr.InsertNodeText(span, 0, "xy"))
	require.Equal(t, "after:0/0/1", cursorOf(t, tr, on))
	require.NoError(t, tr.Check())
}

func TestInsertNodeIntoEmptyContainer(t *testing.T) {
	k := basicKinds()
	bus, topics := recordTopics(t)
	tr := newTree(t, k.doc(k.para()), WithBus(bus))
	para := nodeAt(t, tr, "0").ID()
	on, err := tr.AddAnchor(AtNode(para, treepath.On).Named("caret"))
	require.NoError(t, err)
	require.Equal(t, "on:0", cursorOf(t, tr, on.ID()))
	*topics = nil

	_, err = tr.InsertNode(para, k.text("AB"), 0, "")
	require.NoError(t, err)
	require.Equal(t, "after:0/0/1", cursorOf(t, tr, on.ID()))
	require.Equal(t, "caret", on.Name())
	require.Contains(t, *topics, TopicAnchorUpdated)
	require.NoError(t, tr.Check())

	_, err = tr.AddAnchor(AtNode(nodeAt(t, tr, "0/0").ID(), treepath.On))
	require.ErrorIs(t, err, ErrStructural, "a filled span cannot hold on")
	_, err = tr.AddAnchor(AtNode(para, treepath.On))
	require.ErrorIs(t, err, ErrStructural)
}

func TestInsertNormalizesText(t *testing.T) {
	k := basicKinds()
	decomposed := "e\u0301"

	tr := newTree(t, k.doc(k.para(k.text(""))))
	span := nodeAt(t, tr, "0/0")
	require.NoError(t, tr.InsertNodeText(span.ID(), 0, decomposed))
	require.Equal(t, []string{decomposed}, span.Graphemes())

	tr = newTree(t, k.doc(k.para(k.text(""))), WithNormalizeText(true))
	span = nodeAt(t, tr, "0/0")
	require.NoError(t, tr.InsertNodeText(span.ID(), 0, decomposed+"!"))
	require.Equal(t, []string{"\u00e9", "!"}, span.Graphemes())
}

func TestInsertNodeGrapheme(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("A"), document.NewFancy(k.Formula, document.FancyGrapheme{Value: "x"}))))
	span := nodeAt(t, tr, "0/0").ID()
	formula := nodeAt(t, tr, "0/1")

	require.NoError(t, tr.InsertNodeGrapheme(formula.ID(), 1, document.FancyGrapheme{Value: "y", Emblem: "sym"}))
	require.Equal(t, []document.FancyGrapheme{{Value: "x"}, {Value: "y", Emblem: "sym"}}, formula.FancyGraphemes())
	require.Equal(t, "Axy", tr.Text())

	require.NoError(t, tr.InsertNodeGrapheme(span, 1, document.FancyGrapheme{Value: "B"}))
	require.Equal(t, "ABxy", tr.Text())

	require.ErrorIs(t, tr.InsertNodeGrapheme(span, 0, document.FancyGrapheme{Value: "B", Emblem: "sym"}), ErrStructural)
	require.ErrorIs(t, tr.InsertNodeGrapheme(span, 0, document.FancyGrapheme{Value: "BC"}), ErrStructural)
	require.ErrorIs(t, tr.InsertNodeGrapheme(span, 0, document.FancyGrapheme{}), ErrStructural)
	require.NoError(t, tr.Check())
}
