package worktree

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/docstorm/internal/document"
	"github.com/dshills/docstorm/internal/event"
	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/treepath"
)

type kinds struct {
	Document, Paragraph, Span, Hyperlink, Emoji, Formula, Comment, Footnote *schema.NodeType
}

func basicKinds() kinds {
	reg := schema.Basic()
	return kinds{
		Document:  reg.MustLookup(schema.TypeDocument),
		Paragraph: reg.MustLookup(schema.TypeParagraph),
		Span:      reg.MustLookup(schema.TypeSpan),
		Hyperlink: reg.MustLookup(schema.TypeHyperlink),
		Emoji:     reg.MustLookup(schema.TypeEmoji),
		Formula:   reg.MustLookup(schema.TypeFormula),
		Comment:   reg.MustLookup(schema.TypeComment),
		Footnote:  reg.MustLookup(schema.TypeFootnote),
	}
}

func (k kinds) doc(blocks ...*document.Node) *document.Node {
	return document.New(k.Document, blocks...)
}

func (k kinds) para(inlines ...*document.Node) *document.Node {
	return document.New(k.Paragraph, inlines...)
}

func (k kinds) text(s string) *document.Node {
	return document.NewText(k.Span, s)
}

func (k kinds) link(s, url string) *document.Node {
	return document.NewText(k.Hyperlink, s).With("url", document.String(url))
}

func (k kinds) smile() *document.Node {
	return document.New(k.Emoji).With("code", document.String("smile"))
}

func (k kinds) comment(from, to document.AnchorRef) *document.Node {
	return document.New(k.Comment).With("range", document.AnchorRange{From: from, To: to})
}

func ref(path string, o treepath.Orientation) document.AnchorRef {
	return document.AnchorRef{Target: treepath.MustParse(path), Orientation: o}
}

func newTree(t *testing.T, root *document.Node, opts ...Option) *Tree {
	t.Helper()
	tr, err := New(root, opts...)
	require.NoError(t, err)
	require.NoError(t, tr.Check())
	return tr
}

func nodeAt(t *testing.T, tr *Tree, path string) *Node {
	t.Helper()
	tip, ok := tr.Resolve(treepath.MustParse(path))
	require.True(t, ok, "path %s", path)
	n, ok := tip.(*Node)
	require.True(t, ok, "path %s is a grapheme", path)
	return n
}

func cursorOf(t *testing.T, tr *Tree, id AnchorID) string {
	t.Helper()
	cur, err := tr.CursorOf(id)
	require.NoError(t, err)
	return cur.String()
}

func addAnchor(t *testing.T, tr *Tree, s AnchorSpec) AnchorID {
	t.Helper()
	a, err := tr.AddAnchor(s)
	require.NoError(t, err)
	return a.ID()
}

// recordTopics subscribes to every topic on a new bus.
func recordTopics(t *testing.T) (*event.Bus, *[]event.Topic) {
	t.Helper()
	bus := event.NewBus()
	var topics []event.Topic
	_, err := bus.SubscribeFunc("**", func(_ context.Context, ev any) error {
		topics = append(topics, ev.(event.TopicProvider).EventTopic())
		return nil
	})
	require.NoError(t, err)
	return bus, &topics
}

func TestNewHydratesTemplate(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("AB"), k.smile()), k.para()))

	require.Equal(t, "AB", tr.Text())
	require.Equal(t, 5, tr.NodeCount())

	span := nodeAt(t, tr, "0/0")
	require.Equal(t, k.Span, span.Type())
	require.Equal(t, []string{"A", "B"}, span.Graphemes())
	require.Equal(t, "0/0", tr.PathOf(span).String())
	require.Equal(t, 3, tr.ChainOf(span).Len())

	parent, ok := span.Parent()
	require.True(t, ok)
	require.Equal(t, tr.PathOf(parent).String(), "0")

	emoji := nodeAt(t, tr, "0/1")
	code, ok := emoji.Facet("code")
	require.True(t, ok)
	require.Equal(t, document.String("smile"), code)

	_, hasPart := tr.Root().Part()
	require.False(t, hasPart)
}

func TestNewRejectsInvalidTemplates(t *testing.T) {
	k := basicKinds()
	tests := []struct {
		name string
		root *document.Node
	}{
		{"nil", nil},
		{"not a document", k.para(k.text("x"))},
		{"block in paragraph", k.doc(k.para(k.para()))},
		{"missing facet", k.doc(k.para(document.New(k.Emoji)))},
		{"dangling anchor", k.doc(k.para(k.comment(ref("0/5", treepath.Before), ref("0/0", treepath.After))))},
		{"grapheme anchor on", k.doc(k.para(k.text("AB"), k.comment(ref("0/0/0", treepath.On), ref("0/0/1", treepath.After))))},
		{"on a filled span", k.doc(k.para(k.text("AB"), k.comment(ref("0/0", treepath.On), ref("0/0/1", treepath.After))))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.root)
			require.ErrorIs(t, err, ErrStructural)
		})
	}
}

func TestHydrateFacetAnchors(t *testing.T) {
	k := basicKinds()
	to := document.AnchorRef{
		Target:           treepath.MustParse("0/0"),
		Orientation:      treepath.After,
		GraphemeIndex:    4,
		HasGraphemeIndex: true,
		Name:             "end",
	}
	tr := newTree(t, k.doc(k.para(k.text("Hello"), k.comment(ref("0/0/0", treepath.Before), to))))

	span := nodeAt(t, tr, "0/0")
	comment := nodeAt(t, tr, "0/1")
	from, toID, ok := comment.FacetAnchorRange("range")
	require.True(t, ok)
	require.Equal(t, "before:0/0/0", cursorOf(t, tr, from))
	require.Equal(t, "after:0/0/4", cursorOf(t, tr, toID))

	a, ok := tr.Anchor(toID)
	require.True(t, ok)
	require.Equal(t, "end", a.Name())
	require.Equal(t, span.ID(), a.Node())
	owner, facet, ok := a.Origin()
	require.True(t, ok)
	require.Equal(t, comment.ID(), owner)
	require.Equal(t, "range", facet)
	require.ElementsMatch(t, []AnchorID{from, toID}, span.Anchors())

	require.NoError(t, tr.DeleteNode(comment.ID()))
	require.Empty(t, tr.Anchors())
	require.Empty(t, span.Anchors())
	require.NoError(t, tr.Check())
}

func TestAnchorLifecycle(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("AB"))))
	span := nodeAt(t, tr, "0/0")

	a, err := tr.AddAnchor(AtGrapheme(span.ID(), 1, treepath.After).Named("end"))
	require.NoError(t, err)
	require.Equal(t, "after:0/0/1", cursorOf(t, tr, a.ID()))
	require.Equal(t, "end", a.Name())

	_, err = tr.AddAnchor(AtGrapheme(span.ID(), 3, treepath.After))
	require.ErrorIs(t, err, ErrStructural)
	_, err = tr.AddAnchor(AtGrapheme(span.ID(), 0, treepath.On))
	require.ErrorIs(t, err, ErrStructural)
	_, err = tr.AddAnchor(AtGrapheme(nodeAt(t, tr, "0").ID(), 0, treepath.After))
	require.ErrorIs(t, err, ErrStructural)
	_, err = tr.AddAnchor(AtNode("missing", treepath.On))
	require.ErrorIs(t, err, ErrLookup)

	require.NoError(t, tr.UpdateAnchor(a.ID(), AtGrapheme(span.ID(), 0, treepath.Before)))
	require.Equal(t, "before:0/0/0", cursorOf(t, tr, a.ID()))
	require.Empty(t, a.Name())

	spec, err := tr.AnchorFromCursor(treepath.NewCursor(treepath.New(0), treepath.On))
	require.NoError(t, err)
	require.ErrorIs(t, tr.UpdateAnchor(a.ID(), spec), ErrStructural, "on is only valid on an empty container")
	require.Equal(t, "before:0/0/0", cursorOf(t, tr, a.ID()))

	require.NoError(t, tr.DeleteAnchor(a.ID(), false))
	_, ok := tr.Anchor(a.ID())
	require.False(t, ok)
	require.ErrorIs(t, tr.DeleteAnchor(a.ID(), false), ErrLookup)
	require.ErrorIs(t, tr.UpdateAnchor(a.ID(), spec), ErrLookup)
	require.NoError(t, tr.Check())
}

func TestAnchorPastLastGrapheme(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("AB")), k.para(k.text(""))))
	span := nodeAt(t, tr, "0/0").ID()
	empty := nodeAt(t, tr, "1/0").ID()

	end, err := tr.AddAnchor(AtGrapheme(span, 2, treepath.Before).Named("end"))
	require.NoError(t, err)
	require.Equal(t, "after:0/0/1", cursorOf(t, tr, end.ID()))
	require.Equal(t, "end", end.Name())
	idx, ok := end.GraphemeIndex()
	require.True(t, ok)
	require.Equal(t, 1, idx)

	on, err := tr.AddAnchor(AtGrapheme(empty, 0, treepath.After))
	require.NoError(t, err)
	require.Equal(t, "on:1/0", cursorOf(t, tr, on.ID()))
	_, ok = on.GraphemeIndex()
	require.False(t, ok)

	require.NoError(t, tr.UpdateAnchor(on.ID(), AtGrapheme(span, 2, treepath.After)))
	require.Equal(t, "after:0/0/1", cursorOf(t, tr, on.ID()))
	require.ErrorIs(t, tr.UpdateAnchor(on.ID(), AtGrapheme(empty, 1, treepath.After)), ErrStructural)
	require.NoError(t, tr.Check())
}

func TestCheckRejectsIllegalOn(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("AB"))))
	a := addAnchor(t, tr, AtNode(nodeAt(t, tr, "0/0").ID(), treepath.After))

	tr.anchors[a].spec.Orientation = treepath.On
	require.ErrorIs(t, tr.Check(), ErrInvariant)

	tr.anchors[a].spec = AtGrapheme(nodeAt(t, tr, "0/0").ID(), 0, treepath.On)
	require.ErrorIs(t, tr.Check(), ErrInvariant)

	tr.anchors[a].spec.Orientation = treepath.Before
	require.NoError(t, tr.Check())
}

func TestInteractorOwnsAnchors(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("AB"))))
	span := nodeAt(t, tr, "0/0").ID()

	sel := AtGrapheme(span, 0, treepath.Before)
	in, err := tr.AddInteractor(InteractorSpec{
		Main:      AtGrapheme(span, 1, treepath.After),
		Selection: &sel,
		Name:      "me",
	})
	require.NoError(t, err)
	require.Equal(t, Active, in.Status())
	require.Equal(t, "me", in.Name())
	require.Len(t, tr.Anchors(), 2)

	selID, ok := in.Selection()
	require.True(t, ok)
	require.Equal(t, "before:0/0/0", cursorOf(t, tr, selID))
	owner, ok := tr.anchors[in.Main()].Interactor()
	require.True(t, ok)
	require.Equal(t, in.ID(), owner)

	require.ErrorIs(t, tr.DeleteAnchor(in.Main(), false), ErrInvariant)
	require.ErrorIs(t, tr.DeleteAnchor(selID, false), ErrInvariant)

	inactive := Inactive
	require.NoError(t, tr.UpdateInteractor(in.ID(), InteractorUpdate{ClearSelection: true, Status: &inactive}))
	_, ok = in.Selection()
	require.False(t, ok)
	require.Equal(t, Inactive, in.Status())
	require.Len(t, tr.Anchors(), 1)

	require.NoError(t, tr.UpdateInteractor(in.ID(), InteractorUpdate{Selection: &sel}))
	require.Len(t, tr.Anchors(), 2)
	require.NoError(t, tr.Check())

	bad := AtGrapheme(span, 7, treepath.After)
	require.ErrorIs(t, tr.UpdateInteractor(in.ID(), InteractorUpdate{Main: &bad}), ErrStructural)
	require.ErrorIs(t, tr.UpdateInteractor("missing", InteractorUpdate{}), ErrLookup)

	require.NoError(t, tr.DeleteAnchor(in.Main(), true))
	_, ok = tr.Interactor(in.ID())
	require.False(t, ok)
	require.Empty(t, tr.Anchors())
	require.ErrorIs(t, tr.DeleteInteractor(in.ID()), ErrLookup)
	require.NoError(t, tr.Check())
}

func TestUpdateInteractorKeepsAnchorNames(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("ABC"))))
	span := nodeAt(t, tr, "0/0").ID()

	sel := AtGrapheme(span, 0, treepath.Before).Named("anchor")
	in, err := tr.AddInteractor(InteractorSpec{
		Main:      AtGrapheme(span, 0, treepath.After).Named("caret"),
		Selection: &sel,
	})
	require.NoError(t, err)

	caret := AtGrapheme(span, 2, treepath.After)
	moved := AtGrapheme(span, 1, treepath.After)
	require.NoError(t, tr.UpdateInteractor(in.ID(), InteractorUpdate{Main: &caret, Selection: &moved}))
	require.Equal(t, "after:0/0/2", cursorOf(t, tr, in.Main()))
	a, _ := tr.Anchor(in.Main())
	require.Equal(t, "caret", a.Name())

	selID, _ := in.Selection()
	require.Equal(t, "after:0/0/1", cursorOf(t, tr, selID))
	a, _ = tr.Anchor(selID)
	require.Equal(t, "anchor", a.Name())
	require.NoError(t, tr.Check())
}

func TestEventsArePublished(t *testing.T) {
	k := basicKinds()
	bus, topics := recordTopics(t)
	var orphaned []AnchorEvent
	_, err := bus.Subscribe(TopicAnchorOrphaned, event.AsHandler(func(_ context.Context, e event.Event[AnchorEvent]) error {
		orphaned = append(orphaned, e.Payload)
		return nil
	}))
	require.NoError(t, err)

	tr := newTree(t, k.doc(k.para(k.text("AB"))), WithBus(bus))
	span := nodeAt(t, tr, "0/0").ID()
	in, err := tr.AddInteractor(InteractorSpec{Main: AtGrapheme(span, 1, treepath.After)})
	require.NoError(t, err)

	require.NoError(t, tr.DeleteGrapheme(span, 1, InDirection(Backward)))
	require.Equal(t, "after:0/0/0", cursorOf(t, tr, in.Main()))
	require.NoError(t, tr.DeleteInteractor(in.ID()))

	require.Equal(t, []event.Topic{
		TopicAnchorAdded,
		TopicInteractorAdded,
		TopicAnchorOrphaned,
		TopicAnchorUpdated,
		TopicAnchorDeleted,
		TopicInteractorDeleted,
	}, *topics)
	require.Len(t, orphaned, 1)
	require.Equal(t, in.Main(), orphaned[0].Anchor)
	require.Equal(t, 1, orphaned[0].Spec.GraphemeIndex)
}

func TestErrorKinds(t *testing.T) {
	k := basicKinds()
	tr := newTree(t, k.doc(k.para(k.text("AB"), k.smile())))
	root := tr.Root().ID()
	span := nodeAt(t, tr, "0/0").ID()
	para := nodeAt(t, tr, "0").ID()

	err := tr.DeleteNode(root)
	require.ErrorIs(t, err, ErrInvariant)
	var werr *Error
	require.True(t, errors.As(err, &werr))
	require.Equal(t, "delete node", werr.Op)

	require.ErrorIs(t, tr.JoinSiblingIntoNode(span, Backward), ErrInvariant)
	require.ErrorIs(t, tr.JoinSiblingIntoNode(span, Forward), ErrInvariant)
	_, err = tr.SplitNode(root, treepath.New(0))
	require.ErrorIs(t, err, ErrInvariant)
	_, err = tr.InsertNode(span, k.para(), 0, "")
	require.ErrorIs(t, err, ErrStructural)
	require.ErrorIs(t, tr.DeleteGrapheme(para, 0), ErrStructural)
	require.ErrorIs(t, tr.InsertNodeText("missing", 0, "x"), ErrLookup)
	require.ErrorIs(t, tr.DeleteNode("missing"), ErrLookup)
	_, err = tr.CursorOf("missing")
	require.ErrorIs(t, err, ErrLookup)

	deleted, err := tr.DeleteAtPath(treepath.MustParse("7/3"))
	require.NoError(t, err)
	require.False(t, deleted)
	require.NoError(t, tr.Check())
}

// spanLines puts every text container on its own line. Columns count
// graphemes from the start of the line.
type spanLines struct{}

func (spanLines) DetectLineWrapOrBreakBetweenNodes(a, b treepath.Node) (bool, bool) {
	return lineOf(a) != lineOf(b), true
}

func lineOf(n treepath.Node) treepath.Node {
	if g, ok := n.(Grapheme); ok {
		return g.Container()
	}
	return n
}

func (spanLines) TargetHorizontalAnchor(c treepath.Chain, o treepath.Orientation) (float64, bool) {
	return column(c, o), true
}

func (spanLines) HorizontalDistanceFromTargetHorizontalAnchor(c treepath.Chain, o treepath.Orientation, target float64) (float64, bool) {
	return column(c, o) - target, true
}

func column(c treepath.Chain, o treepath.Orientation) float64 {
	x := float64(c.TipLink().Part.Index)
	if o == treepath.After {
		x++
	}
	return x
}

func TestMoveInteractorVertically(t *testing.T) {
	k := basicKinds()
	root := k.doc(k.para(k.text("ABCD")), k.para(k.text("EFGH")))

	tr := newTree(t, root)
	in, err := tr.AddInteractor(InteractorSpec{Main: AtGrapheme(nodeAt(t, tr, "0/0").ID(), 1, treepath.After)})
	require.NoError(t, err)
	moved, err := tr.MoveInteractorVertically(in.ID(), true)
	require.NoError(t, err)
	require.False(t, moved)

	tr = newTree(t, root, WithLayout(spanLines{}))
	in, err = tr.AddInteractor(InteractorSpec{Main: AtGrapheme(nodeAt(t, tr, "0/0").ID(), 1, treepath.After)})
	require.NoError(t, err)

	moved, err = tr.MoveInteractorVertically(in.ID(), true)
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, "after:1/0/1", cursorOf(t, tr, in.Main()))
	hint, ok := in.Hint()
	require.True(t, ok)
	require.Equal(t, 2.0, hint)

	moved, err = tr.MoveInteractorVertically(in.ID(), true)
	require.NoError(t, err)
	require.False(t, moved)

	moved, err = tr.MoveInteractorVertically(in.ID(), false)
	require.NoError(t, err)
	require.True(t, moved)
	require.Equal(t, "after:0/0/1", cursorOf(t, tr, in.Main()))

	_, err = tr.MoveInteractorVertically("missing", true)
	require.ErrorIs(t, err, ErrLookup)
	require.NoError(t, tr.Check())
}
