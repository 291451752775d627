package schema

import "fmt"

// FacetSpec declares one named facet slot on a node type.
type FacetSpec struct {
	// Name is the facet name used in paths ("caption", "items:2").
	Name string
	// Kind is the type of value held by the facet.
	Kind FacetKind
	// Optional facets may be absent from a node.
	Optional bool
	// Options lists the accepted values of an enum facet.
	Options []string
	// NodeCategory restricts the nodes accepted by a node array facet.
	// Nil accepts any category except document.
	NodeCategory *Category
}

// AcceptsOption reports whether value is a declared enum option.
func (f FacetSpec) AcceptsOption(value string) bool {
	for _, o := range f.Options {
		if o == value {
			return true
		}
	}
	return false
}

// Behavior holds flags derived from a NodeType when it is registered.
type Behavior struct {
	Graphemes   bool // children are graphemes
	Fancy       bool // graphemes carry emblems
	NodeHolder  bool // children are nodes
	Atomic      bool // inline with no children at all
	TextBearing bool // inline with grapheme children
	Splittable  bool // has children and is not the document
	StyleFacets []string
	NodeFacets  []string
	AnchorFacet []string
}

// NodeType is the immutable declaration of a kind of document node.
type NodeType struct {
	Name     string
	Category Category
	Children ChildrenKind
	// Intermediate names the only type accepted when Children is
	// ChildrenIntermediates. Empty accepts any intermediate.
	Intermediate string
	Facets       []FacetSpec

	behavior Behavior
	resolved bool
}

// Behavior returns the flags resolved for this type. Types that were never
// registered resolve lazily on first use.
func (t *NodeType) Behavior() Behavior {
	if !t.resolved {
		t.behavior = resolveBehavior(t)
		t.resolved = true
	}
	return t.behavior
}

// Facet returns the facet declaration with the given name.
func (t *NodeType) Facet(name string) (FacetSpec, bool) {
	for _, f := range t.Facets {
		if f.Name == name {
			return f, true
		}
	}
	return FacetSpec{}, false
}

// String returns the type name.
func (t *NodeType) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.Name
}

// CanContain reports whether child may be an ordinary child of t.
func (t *NodeType) CanContain(child *NodeType) bool {
	switch t.Children {
	case ChildrenInlines:
		return child.Category == CategoryInline || child.Category == CategoryAnnotation
	case ChildrenBlocks:
		return child.Category == CategoryBlock
	case ChildrenBlocksAndSuperBlocks:
		return child.Category == CategoryBlock || child.Category == CategorySuperBlock
	case ChildrenIntermediates:
		if child.Category != CategoryIntermediate {
			return false
		}
		return t.Intermediate == "" || t.Intermediate == child.Name
	}
	return false
}

// CanHoldInFacet reports whether child may be stored in the named node array facet.
func (t *NodeType) CanHoldInFacet(facet string, child *NodeType) error {
	spec, ok := t.Facet(facet)
	if !ok {
		return fmt.Errorf("%s has no facet %q", t.Name, facet)
	}
	if spec.Kind != FacetNodeArray {
		return fmt.Errorf("facet %s.%s holds %s, not nodes", t.Name, facet, spec.Kind)
	}
	if child.Category == CategoryDocument {
		return fmt.Errorf("facet %s.%s cannot hold a document", t.Name, facet)
	}
	if spec.NodeCategory != nil && *spec.NodeCategory != child.Category {
		return fmt.Errorf("facet %s.%s holds %s nodes, got %s", t.Name, facet, *spec.NodeCategory, child.Category)
	}
	return nil
}

// Validate checks the declaration for internal consistency.
func (t *NodeType) Validate() error {
	if t.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidType)
	}
	if t.Category == CategoryInline && !(t.Children == ChildrenNone || t.Children.HasGraphemes() || t.Children == ChildrenInlines) {
		return fmt.Errorf("%w: inline %s cannot hold %s", ErrInvalidType, t.Name, t.Children)
	}
	if t.Category == CategoryDocument && !t.Children.HasNodes() {
		return fmt.Errorf("%w: document %s must hold nodes", ErrInvalidType, t.Name)
	}
	seen := make(map[string]bool, len(t.Facets))
	for _, f := range t.Facets {
		if f.Name == "" {
			return fmt.Errorf("%w: %s has an unnamed facet", ErrInvalidType, t.Name)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %s declares facet %q twice", ErrInvalidType, t.Name, f.Name)
		}
		seen[f.Name] = true
		if f.Kind == FacetEnum && len(f.Options) == 0 {
			return fmt.Errorf("%w: enum facet %s.%s has no options", ErrInvalidType, t.Name, f.Name)
		}
		if f.Kind == FacetStyles && !t.Children.HasGraphemes() {
			return fmt.Errorf("%w: styles facet %s.%s on a node without text", ErrInvalidType, t.Name, f.Name)
		}
	}
	return nil
}

func resolveBehavior(t *NodeType) Behavior {
	b := Behavior{
		Graphemes:  t.Children.HasGraphemes(),
		Fancy:      t.Children == ChildrenFancyText,
		NodeHolder: t.Children.HasNodes(),
	}
	inline := t.Category == CategoryInline || t.Category == CategoryAnnotation
	b.Atomic = inline && t.Children == ChildrenNone
	b.TextBearing = inline && b.Graphemes
	b.Splittable = t.Category != CategoryDocument && (b.Graphemes || b.NodeHolder)
	for _, f := range t.Facets {
		switch {
		case f.Kind == FacetStyles:
			b.StyleFacets = append(b.StyleFacets, f.Name)
		case f.Kind == FacetNodeArray:
			b.NodeFacets = append(b.NodeFacets, f.Name)
		case f.Kind.HoldsAnchors():
			b.AnchorFacet = append(b.AnchorFacet, f.Name)
		}
	}
	return b
}
