package document

import (
	"github.com/rivo/uniseg"
	"golang.org/x/text/unicode/norm"
)

// Graphemes splits s into user-perceived characters.
func Graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, uniseg.GraphemeClusterCount(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// Normalize returns s in Unicode normalization form C so that equal text
// segments into equal graphemes.
func Normalize(s string) string {
	return norm.NFC.String(s)
}
