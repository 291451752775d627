package treepath

import (
	"fmt"
	"strconv"
	"strings"
)

// PathPart addresses one step down the tree: either an ordinary child by
// index, or a named facet optionally followed by an index into its array.
type PathPart struct {
	Facet    string
	Index    int
	HasIndex bool
}

// Child returns a part addressing the ordinary child at index.
func Child(index int) PathPart {
	return PathPart{Index: index, HasIndex: true}
}

// Facet returns a part addressing a whole facet.
func Facet(name string) PathPart {
	return PathPart{Facet: name}
}

// FacetEntry returns a part addressing entry index of a facet array.
func FacetEntry(name string, index int) PathPart {
	return PathPart{Facet: name, Index: index, HasIndex: true}
}

// IsFacet reports whether the part addresses a facet.
func (p PathPart) IsFacet() bool {
	return p.Facet != ""
}

// SameContainer reports whether p and o address the same child array.
func (p PathPart) SameContainer(o PathPart) bool {
	return p.Facet == o.Facet && p.HasIndex == o.HasIndex
}

// WithIndex returns p pointing at a different index of the same container.
func (p PathPart) WithIndex(index int) PathPart {
	p.Index = index
	p.HasIndex = true
	return p
}

// Compare orders two parts. It returns -1, 0 or 1 and ok=false when the
// parts address different containers and so cannot be ordered.
func (p PathPart) Compare(o PathPart) (cmp int, ok bool) {
	if !p.SameContainer(o) {
		return 0, false
	}
	switch {
	case !p.HasIndex || p.Index == o.Index:
		return 0, true
	case p.Index < o.Index:
		return -1, true
	default:
		return 1, true
	}
}

// Equal reports whether two parts address the same slot.
func (p PathPart) Equal(o PathPart) bool {
	c, ok := p.Compare(o)
	return ok && c == 0
}

// String renders the part in path text form: "3", "facet" or "facet:3".
func (p PathPart) String() string {
	switch {
	case p.Facet == "":
		return strconv.Itoa(p.Index)
	case p.HasIndex:
		return p.Facet + ":" + strconv.Itoa(p.Index)
	default:
		return p.Facet
	}
}

// ParsePart parses one path segment.
func ParsePart(s string) (PathPart, error) {
	if s == "" {
		return PathPart{}, fmt.Errorf("%w: empty segment", ErrInvalidPath)
	}
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || strings.HasPrefix(s, "+") {
			return PathPart{}, fmt.Errorf("%w: bad index %q", ErrInvalidPath, s)
		}
		if strconv.Itoa(n) != s {
			return PathPart{}, fmt.Errorf("%w: non canonical index %q", ErrInvalidPath, s)
		}
		return Child(n), nil
	}
	name, idx, hasIdx := strings.Cut(s, ":")
	if !validFacetName(name) {
		return PathPart{}, fmt.Errorf("%w: bad facet name %q", ErrInvalidPath, name)
	}
	if !hasIdx {
		return Facet(name), nil
	}
	n, err := strconv.Atoi(idx)
	if err != nil || n < 0 || strconv.Itoa(n) != idx {
		return PathPart{}, fmt.Errorf("%w: bad facet index %q", ErrInvalidPath, s)
	}
	return FacetEntry(name, n), nil
}

func validFacetName(name string) bool {
	if name == "" {
		return false
	}
	for i, r := range name {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9' && i > 0:
		case r == '-' && i > 0:
		default:
			return false
		}
	}
	return true
}
