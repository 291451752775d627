package schema

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const yamlSchema = `
types:
  - name: Doc
    category: document
    children: blocks
  - name: Para
    category: block
    children: inlines
  - name: Span
    category: inline
    children: text
    facets:
      - name: styles
        kind: styles
        optional: true
  - name: Note
    category: lateral
    children: blocks
  - name: Holder
    category: block
    children: none
    facets:
      - name: notes
        kind: nodes
        node_category: lateral
      - name: align
        kind: enum
        options: [left, right]
`

const tomlSchema = `
[[types]]
name = "Doc"
category = "document"
children = "blocks-and-superblocks"

[[types]]
name = "List"
category = "super-block"
children = "intermediates"
intermediate = "Item"

[[types]]
name = "Item"
category = "intermediate"
children = "blocks"

[[types]]
name = "Para"
category = "block"
children = "inlines"

[[types.facets]]
name = "id"
kind = "string"
optional = true
`

func TestLoadYAML(t *testing.T) {
	reg, err := LoadYAML(strings.NewReader(yamlSchema))
	require.NoError(t, err)
	require.Equal(t, 5, reg.Len())

	span := reg.MustLookup("Span")
	require.Equal(t, CategoryInline, span.Category)
	require.Equal(t, ChildrenText, span.Children)
	require.True(t, span.Behavior().TextBearing)
	require.Equal(t, []string{"styles"}, span.Behavior().StyleFacets)

	holder := reg.MustLookup("Holder")
	spec, ok := holder.Facet("notes")
	require.True(t, ok)
	require.Equal(t, FacetNodeArray, spec.Kind)
	require.NotNil(t, spec.NodeCategory)
	require.Equal(t, CategoryLateral, *spec.NodeCategory)
	require.NoError(t, holder.CanHoldInFacet("notes", reg.MustLookup("Note")))
	require.Error(t, holder.CanHoldInFacet("notes", reg.MustLookup("Para")))
	require.Error(t, holder.CanHoldInFacet("align", reg.MustLookup("Note")))
}

func TestLoadTOML(t *testing.T) {
	reg, err := LoadTOML(strings.NewReader(tomlSchema))
	require.NoError(t, err)

	list := reg.MustLookup("List")
	require.Equal(t, CategorySuperBlock, list.Category)
	require.True(t, list.CanContain(reg.MustLookup("Item")))
	require.False(t, list.CanContain(reg.MustLookup("Para")))

	doc := reg.MustLookup("Doc")
	require.True(t, doc.CanContain(list))
	require.True(t, doc.CanContain(reg.MustLookup("Para")))
	require.Len(t, reg.Documents(), 1)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
	}{
		{"unknown category", "types:\n  - name: X\n    category: bogus\n"},
		{"unknown field", "types:\n  - name: X\n    category: block\n    colour: red\n"},
		{"enum without options", "types:\n  - name: X\n    category: block\n    facets:\n      - name: e\n        kind: enum\n"},
		{"duplicate", "types:\n  - name: X\n    category: block\n  - name: X\n    category: block\n"},
		{"styles without text", "types:\n  - name: X\n    category: block\n    children: inlines\n    facets:\n      - name: s\n        kind: styles\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadYAML(strings.NewReader(tt.src))
			require.Error(t, err)
			var pe *ParseError
			require.True(t, errors.As(err, &pe))
		})
	}
}

func TestCanContain(t *testing.T) {
	reg := Basic()
	para := reg.MustLookup(TypeParagraph)
	span := reg.MustLookup(TypeSpan)
	doc := reg.MustLookup(TypeDocument)

	require.True(t, para.CanContain(span))
	require.True(t, para.CanContain(reg.MustLookup(TypeComment)))
	require.False(t, para.CanContain(para))
	require.True(t, doc.CanContain(para))
	require.True(t, doc.CanContain(reg.MustLookup(TypeList)))
	require.False(t, span.CanContain(span))
	require.False(t, reg.MustLookup(TypeQuote).CanContain(reg.MustLookup(TypeList)))
}

func TestBehavior(t *testing.T) {
	reg := Basic()
	tests := []struct {
		name       string
		atomic     bool
		text       bool
		splittable bool
	}{
		{TypeDocument, false, false, false},
		{TypeParagraph, false, false, true},
		{TypeSpan, false, true, true},
		{TypeEmoji, true, false, false},
		{TypeFormula, false, true, true},
	}
	for _, tt := range tests {
		b := reg.MustLookup(tt.name).Behavior()
		require.Equal(t, tt.atomic, b.Atomic, tt.name)
		require.Equal(t, tt.text, b.TextBearing, tt.name)
		require.Equal(t, tt.splittable, b.Splittable, tt.name)
	}
}

func TestRegistryDuplicate(t *testing.T) {
	reg := Basic()
	err := reg.Register(&NodeType{Name: TypeSpan, Category: CategoryInline, Children: ChildrenText})
	require.ErrorIs(t, err, ErrDuplicateType)

	_, err = reg.Lookup("Nope")
	require.ErrorIs(t, err, ErrUnknownType)
}

func TestParseNames(t *testing.T) {
	c, err := ParseCategory("Super-Block")
	require.NoError(t, err)
	require.Equal(t, CategorySuperBlock, c)

	k, err := ParseChildrenKind("fancy_text")
	require.NoError(t, err)
	require.Equal(t, ChildrenFancyText, k)

	f, err := ParseFacetKind("node-array")
	require.NoError(t, err)
	require.Equal(t, FacetNodeArray, f)
	require.True(t, FacetAnchorRange.HoldsAnchors())
	require.False(t, FacetStyles.HoldsAnchors())
}
