package schema

import (
	"fmt"
	"strings"
)

// Category classifies where a node may appear in a document.
type Category int

const (
	// CategoryBlock is a block level node such as a paragraph or heading.
	CategoryBlock Category = iota
	// CategoryInline is an inline node such as a span or hyperlink.
	CategoryInline
	// CategoryAnnotation is an inline annotation such as a comment marker.
	CategoryAnnotation
	// CategoryLateral is content that lives beside the main flow (footnotes).
	CategoryLateral
	// CategorySuperBlock groups blocks (lists, tables).
	CategorySuperBlock
	// CategoryIntermediate is a structural node inside a super-block (list items, rows).
	CategoryIntermediate
	// CategoryDocument is the document root.
	CategoryDocument
)

var categoryNames = map[Category]string{
	CategoryBlock:        "block",
	CategoryInline:       "inline",
	CategoryAnnotation:   "annotation",
	CategoryLateral:      "lateral",
	CategorySuperBlock:   "superblock",
	CategoryIntermediate: "intermediate",
	CategoryDocument:     "document",
}

// String returns the lower case name of the category.
func (c Category) String() string {
	if s, ok := categoryNames[c]; ok {
		return s
	}
	return "unknown"
}

// ParseCategory parses a category name. Names are case insensitive and
// accept "super-block" as well as "superblock".
func ParseCategory(s string) (Category, error) {
	norm := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "")
	for c, name := range categoryNames {
		if name == norm {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown category %q", ErrInvalidType, s)
}

// ChildrenKind declares what a node's ordinary children are.
type ChildrenKind int

const (
	// ChildrenNone means the node has no children.
	ChildrenNone ChildrenKind = iota
	// ChildrenText means the children are plain graphemes.
	ChildrenText
	// ChildrenFancyText means the children are graphemes that may carry emblems.
	ChildrenFancyText
	// ChildrenInlines means the children are inline nodes.
	ChildrenInlines
	// ChildrenBlocks means the children are block nodes.
	ChildrenBlocks
	// ChildrenIntermediates means the children are intermediate nodes of one type.
	ChildrenIntermediates
	// ChildrenBlocksAndSuperBlocks means the children are blocks or super-blocks.
	ChildrenBlocksAndSuperBlocks
)

var childrenKindNames = map[ChildrenKind]string{
	ChildrenNone:                 "none",
	ChildrenText:                 "text",
	ChildrenFancyText:            "fancytext",
	ChildrenInlines:              "inlines",
	ChildrenBlocks:               "blocks",
	ChildrenIntermediates:        "intermediates",
	ChildrenBlocksAndSuperBlocks: "blocksandsuperblocks",
}

// String returns the lower case name of the children kind.
func (k ChildrenKind) String() string {
	if s, ok := childrenKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseChildrenKind parses a children kind name. Dashes and underscores are ignored.
func ParseChildrenKind(s string) (ChildrenKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "").Replace(norm)
	if norm == "" {
		return ChildrenNone, nil
	}
	for k, name := range childrenKindNames {
		if name == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown children kind %q", ErrInvalidType, s)
}

// HasGraphemes reports whether children of this kind are graphemes.
func (k ChildrenKind) HasGraphemes() bool {
	return k == ChildrenText || k == ChildrenFancyText
}

// HasNodes reports whether children of this kind are nodes.
func (k ChildrenKind) HasNodes() bool {
	switch k {
	case ChildrenInlines, ChildrenBlocks, ChildrenIntermediates, ChildrenBlocksAndSuperBlocks:
		return true
	}
	return false
}

// FacetKind declares the value type held by a facet.
type FacetKind int

const (
	// FacetBoolean holds a bool.
	FacetBoolean FacetKind = iota
	// FacetString holds a string.
	FacetString
	// FacetEnum holds one of a declared set of strings.
	FacetEnum
	// FacetText holds a run of graphemes.
	FacetText
	// FacetNodeArray holds an ordered list of nodes.
	FacetNodeArray
	// FacetAnchor holds one anchor.
	FacetAnchor
	// FacetAnchorRange holds a pair of anchors.
	FacetAnchorRange
	// FacetAnchorOrRange holds either one anchor or a pair of anchors.
	FacetAnchorOrRange
	// FacetStyles holds sparse style runs over the node's graphemes.
	FacetStyles
)

var facetKindNames = map[FacetKind]string{
	FacetBoolean:       "boolean",
	FacetString:        "string",
	FacetEnum:          "enum",
	FacetText:          "text",
	FacetNodeArray:     "nodes",
	FacetAnchor:        "anchor",
	FacetAnchorRange:   "anchorrange",
	FacetAnchorOrRange: "anchororrange",
	FacetStyles:        "styles",
}

// String returns the lower case name of the facet kind.
func (k FacetKind) String() string {
	if s, ok := facetKindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseFacetKind parses a facet kind name. "bool" and "nodearray" are accepted aliases.
func ParseFacetKind(s string) (FacetKind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	norm = strings.NewReplacer("-", "", "_", "").Replace(norm)
	switch norm {
	case "bool":
		return FacetBoolean, nil
	case "nodearray":
		return FacetNodeArray, nil
	}
	for k, name := range facetKindNames {
		if name == norm {
			return k, nil
		}
	}
	return 0, fmt.Errorf("%w: unknown facet kind %q", ErrInvalidType, s)
}

// HoldsAnchors reports whether values of this kind own anchors.
func (k FacetKind) HoldsAnchors() bool {
	return k == FacetAnchor || k == FacetAnchorRange || k == FacetAnchorOrRange
}
