package document

import (
	"github.com/dshills/docstorm/internal/schema"
	"github.com/dshills/docstorm/internal/style"
	"github.com/dshills/docstorm/internal/treepath"
)

// FacetValue is a value stored in a template facet.
type FacetValue interface {
	Kind() schema.FacetKind
}

// Bool is a boolean facet value.
type Bool bool

// Kind implements FacetValue.
func (Bool) Kind() schema.FacetKind { return schema.FacetBoolean }

// String is a string facet value.
type String string

// Kind implements FacetValue.
func (String) Kind() schema.FacetKind { return schema.FacetString }

// Enum is an enum facet value; it must be one of the declared options.
type Enum string

// Kind implements FacetValue.
func (Enum) Kind() schema.FacetKind { return schema.FacetEnum }

// Text is a text facet value.
type Text string

// Kind implements FacetValue.
func (Text) Kind() schema.FacetKind { return schema.FacetText }

// Nodes is a node array facet value.
type Nodes []*Node

// Kind implements FacetValue.
func (Nodes) Kind() schema.FacetKind { return schema.FacetNodeArray }

// AnchorRef declares an anchor inside a template. Target is relative to the
// template being hydrated (the empty path is the template root itself).
type AnchorRef struct {
	Target           treepath.Path
	Orientation      treepath.Orientation
	GraphemeIndex    int
	HasGraphemeIndex bool
	Name             string
}

// Kind implements FacetValue.
func (AnchorRef) Kind() schema.FacetKind { return schema.FacetAnchor }

// AnchorRange declares a pair of anchors inside a template.
type AnchorRange struct {
	From AnchorRef
	To   AnchorRef
}

// Kind implements FacetValue.
func (AnchorRange) Kind() schema.FacetKind { return schema.FacetAnchorRange }

// Styles is a style run facet value. Hydration clones the runs.
type Styles struct {
	Runs *style.Runs
}

// Kind implements FacetValue.
func (Styles) Kind() schema.FacetKind { return schema.FacetStyles }
