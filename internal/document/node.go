// Package document holds immutable node templates.
//
// Templates are authored outside the engine (by a command layer, an importer
// or a test) and are hydrated into working nodes when inserted into a
// working tree. A template is never modified after it is handed to the
// engine; hydration deep copies everything it needs.
package document

import (
	"fmt"
	"strings"

	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/treepath"
)

// FancyGrapheme is a grapheme that may carry an emblem, such as a symbol
// reference inside a formula.
type FancyGrapheme struct {
	Value  string
	Emblem string
}

// Node is an immutable template for a document node.
type Node struct {
	Type     *schema.NodeType
	Children []*Node
	Text     []string
	Fancy    []FancyGrapheme
	Facets   map[string]FacetValue
}

// New returns a template of type t with node children.
func New(t *schema.NodeType, children ...*Node) *Node {
	return &Node{Type: t, Children: children}
}

// NewText returns a template of type t whose graphemes are segmented from text.
func NewText(t *schema.NodeType, text string) *Node {
	return &Node{Type: t, Text: Graphemes(text)}
}

// NewFancy returns a template of type t holding fancy graphemes.
func NewFancy(t *schema.NodeType, graphemes ...FancyGrapheme) *Node {
	return &Node{Type: t, Fancy: graphemes}
}

// With returns a copy of n with facet name set to v.
func (n *Node) With(name string, v FacetValue) *Node {
	out := *n
	out.Facets = make(map[string]FacetValue, len(n.Facets)+1)
	for k, fv := range n.Facets {
		out.Facets[k] = fv
	}
	out.Facets[name] = v
	return &out
}

// Facet returns the facet value with the given name.
func (n *Node) Facet(name string) (FacetValue, bool) {
	v, ok := n.Facets[name]
	return v, ok
}

// PlainText concatenates the graphemes of n and all descendants in order.
func (n *Node) PlainText() string {
	var sb strings.Builder
	n.writeText(&sb)
	return sb.String()
}

func (n *Node) writeText(sb *strings.Builder) {
	for _, g := range n.Text {
		sb.WriteString(g)
	}
	for _, g := range n.Fancy {
		sb.WriteString(g.Value)
	}
	for _, c := range n.Children {
		c.writeText(sb)
	}
}

// NodeType implements treepath.Node.
func (n *Node) NodeType() *schema.NodeType { return n.Type }

// ChildCount implements treepath.Node.
func (n *Node) ChildCount() int {
	switch {
	case n.Type.Children == schema.ChildrenText:
		return len(n.Text)
	case n.Type.Children == schema.ChildrenFancyText:
		return len(n.Fancy)
	default:
		return len(n.Children)
	}
}

// Child implements treepath.Node.
func (n *Node) Child(index int) (treepath.Node, bool) {
	if index < 0 || index >= n.ChildCount() {
		return nil, false
	}
	if n.Type.Children.HasGraphemes() {
		return Grapheme{Parent: n, Index: index}, true
	}
	return n.Children[index], true
}

// FacetCount implements treepath.Node.
func (n *Node) FacetCount(facet string) int {
	if nodes, ok := n.Facets[facet].(Nodes); ok {
		return len(nodes)
	}
	return 0
}

// FacetChild implements treepath.Node.
func (n *Node) FacetChild(facet string, index int) (treepath.Node, bool) {
	nodes, ok := n.Facets[facet].(Nodes)
	if !ok || index < 0 || index >= len(nodes) {
		return nil, false
	}
	return nodes[index], true
}

// Grapheme is a template grapheme addressed through its parent.
type Grapheme struct {
	Parent *Node
	Index  int
}

// NodeType implements treepath.Node; graphemes have no type.
func (Grapheme) NodeType() *schema.NodeType { return nil }

// ChildCount implements treepath.Node.
func (Grapheme) ChildCount() int { return 0 }

// Child implements treepath.Node.
func (Grapheme) Child(int) (treepath.Node, bool) { return nil, false }

// FacetCount implements treepath.Node.
func (Grapheme) FacetCount(string) int { return 0 }

// FacetChild implements treepath.Node.
func (Grapheme) FacetChild(string, int) (treepath.Node, bool) { return nil, false }

// Grapheme implements treepath.Grapheme.
func (g Grapheme) Grapheme() string {
	if g.Parent.Type.Children == schema.ChildrenFancyText {
		return g.Parent.Fancy[g.Index].Value
	}
	return g.Parent.Text[g.Index]
}

// Validate checks that n and its subtree obey the schema.
func Validate(n *Node) error {
	return validate(n, treepath.Root())
}

func validate(n *Node, at treepath.Path) error {
	if n == nil || n.Type == nil {
		return fmt.Errorf("template at %q: missing node type", at)
	}
	t := n.Type
	kind := t.Children
	switch {
	case kind == schema.ChildrenNone:
		if len(n.Children)+len(n.Text)+len(n.Fancy) > 0 {
			return fmt.Errorf("template at %q: %s takes no children", at, t.Name)
		}
	case kind == schema.ChildrenText:
		if len(n.Children)+len(n.Fancy) > 0 {
			return fmt.Errorf("template at %q: %s takes plain text only", at, t.Name)
		}
	case kind == schema.ChildrenFancyText:
		if len(n.Children)+len(n.Text) > 0 {
			return fmt.Errorf("template at %q: %s takes fancy text only", at, t.Name)
		}
	default:
		if len(n.Text)+len(n.Fancy) > 0 {
			return fmt.Errorf("template at %q: %s takes nodes, not text", at, t.Name)
		}
		for i, c := range n.Children {
			if c == nil || c.Type == nil {
				return fmt.Errorf("template at %q: child %d has no type", at, i)
			}
			if !t.CanContain(c.Type) {
				return fmt.Errorf("template at %q: %s cannot contain %s (%s)", at, t.Name, c.Type.Name, c.Type.Category)
			}
			if err := validate(c, at.Child(i)); err != nil {
				return err
			}
		}
	}

	for name, v := range n.Facets {
		spec, ok := t.Facet(name)
		if !ok {
			return fmt.Errorf("template at %q: %s has no facet %q", at, t.Name, name)
		}
		if err := checkFacet(t, spec, v); err != nil {
			return fmt.Errorf("template at %q: %w", at, err)
		}
		if nodes, ok := v.(Nodes); ok {
			for i, c := range nodes {
				if err := t.CanHoldInFacet(name, c.Type); err != nil {
					return fmt.Errorf("template at %q: %w", at, err)
				}
				if err := validate(c, at.Append(treepath.FacetEntry(name, i))); err != nil {
					return err
				}
			}
		}
	}
	for _, spec := range t.Facets {
		if _, ok := n.Facets[spec.Name]; !ok && !spec.Optional {
			return fmt.Errorf("template at %q: %s requires facet %q", at, t.Name, spec.Name)
		}
	}
	return nil
}

func checkFacet(t *schema.NodeType, spec schema.FacetSpec, v FacetValue) error {
	if v == nil {
		return fmt.Errorf("facet %s.%s: nil value", t.Name, spec.Name)
	}
	got := v.Kind()
	ok := got == spec.Kind
	if spec.Kind == schema.FacetAnchorOrRange {
		ok = got == schema.FacetAnchor || got == schema.FacetAnchorRange
	}
	if !ok {
		return fmt.Errorf("facet %s.%s holds %s, got %s", t.Name, spec.Name, spec.Kind, got)
	}
	if e, isEnum := v.(Enum); isEnum && !spec.AcceptsOption(string(e)) {
		return fmt.Errorf("facet %s.%s: %q is not one of %v", t.Name, spec.Name, string(e), spec.Options)
	}
	return nil
}

// CheckFacet validates a single facet value against the declaration of
// facet name on t.
func CheckFacet(t *schema.NodeType, name string, v FacetValue) error {
	spec, ok := t.Facet(name)
	if !ok {
		return fmt.Errorf("%s has no facet %q", t.Name, name)
	}
	if err := checkFacet(t, spec, v); err != nil {
		return err
	}
	if nodes, ok := v.(Nodes); ok {
		for _, c := range nodes {
			if err := t.CanHoldInFacet(name, c.Type); err != nil {
				return err
			}
			if err := Validate(c); err != nil {
				return err
			}
		}
	}
	return nil
}
