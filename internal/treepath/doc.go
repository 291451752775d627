// Package treepath provides structural addressing for document trees.
//
// A Path is a sequence of PathParts leading from the root to a node. Each
// part addresses either an ordinary child by index ("3") or a facet, with an
// optional index into the facet's node array ("footnotes:1"). Paths are
// plain values: they can be compared, ordered, printed and re-derived after
// a structural change elsewhere in the tree without touching the tree.
//
// A Chain is a Path resolved against a concrete tree. It records every node
// on the way down, root first, so navigators can move to parents and
// siblings without searching.
//
// Cursor pairs a Path with an Orientation (Before, On, After) and is the
// addressable form of a text cursor position.
//
// Text form:
//
//	""               the root
//	"0/2"            third child of the first child
//	"0/footnotes:1"  second entry of the footnotes facet of the first child
//
// Parse and String round trip exactly.
package treepath
