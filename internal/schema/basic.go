package schema

// Names of the types in the Basic schema.
const (
	TypeDocument  = "Document"
	TypeParagraph = "Paragraph"
	TypeHeading   = "Heading"
	TypeSpan      = "Span"
	TypeHyperlink = "Hyperlink"
	TypeEmoji     = "Emoji"
	TypeFormula   = "Formula"
	TypeComment   = "Comment"
	TypeList      = "List"
	TypeListItem  = "ListItem"
	TypeFootnote  = "Footnote"
	TypeQuote     = "BlockQuote"
)

// Basic returns a small general purpose rich text schema. Each call returns
// fresh types so callers may register them in their own registry.
func Basic() *Registry {
	lateral := CategoryLateral
	return MustRegistry(
		&NodeType{
			Name:     TypeDocument,
			Category: CategoryDocument,
			Children: ChildrenBlocksAndSuperBlocks,
			Facets: []FacetSpec{
				{Name: "title", Kind: FacetString, Optional: true},
				{Name: "footnotes", Kind: FacetNodeArray, Optional: true, NodeCategory: &lateral},
			},
		},
		&NodeType{Name: TypeParagraph, Category: CategoryBlock, Children: ChildrenInlines},
		&NodeType{
			Name:     TypeHeading,
			Category: CategoryBlock,
			Children: ChildrenInlines,
			Facets: []FacetSpec{
				{Name: "level", Kind: FacetEnum, Options: []string{"h1", "h2", "h3"}},
			},
		},
		&NodeType{
			Name:     TypeSpan,
			Category: CategoryInline,
			Children: ChildrenText,
			Facets: []FacetSpec{
				{Name: "styles", Kind: FacetStyles, Optional: true},
			},
		},
		&NodeType{
			Name:     TypeHyperlink,
			Category: CategoryInline,
			Children: ChildrenText,
			Facets: []FacetSpec{
				{Name: "url", Kind: FacetString},
				{Name: "styles", Kind: FacetStyles, Optional: true},
			},
		},
		&NodeType{Name: TypeEmoji, Category: CategoryInline, Children: ChildrenNone,
			Facets: []FacetSpec{{Name: "code", Kind: FacetString}}},
		&NodeType{Name: TypeFormula, Category: CategoryInline, Children: ChildrenFancyText},
		&NodeType{
			Name:     TypeComment,
			Category: CategoryAnnotation,
			Children: ChildrenNone,
			Facets: []FacetSpec{
				{Name: "range", Kind: FacetAnchorRange},
				{Name: "body", Kind: FacetText, Optional: true},
			},
		},
		&NodeType{
			Name:         TypeList,
			Category:     CategorySuperBlock,
			Children:     ChildrenIntermediates,
			Intermediate: TypeListItem,
			Facets: []FacetSpec{
				{Name: "ordered", Kind: FacetBoolean, Optional: true},
			},
		},
		&NodeType{Name: TypeListItem, Category: CategoryIntermediate, Children: ChildrenBlocks},
		&NodeType{
			Name:     TypeFootnote,
			Category: CategoryLateral,
			Children: ChildrenBlocks,
			Facets: []FacetSpec{
				{Name: "ref", Kind: FacetAnchor, Optional: true},
			},
		},
		&NodeType{Name: TypeQuote, Category: CategoryBlock, Children: ChildrenBlocks},
	)
}
