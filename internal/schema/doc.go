// Package schema describes the node types a document is built from.
//
// A NodeType declares three things:
//
//   - a Category (block, inline, annotation, lateral, super-block,
//     intermediate or document) that says where the node may appear
//   - a ChildrenKind that says what its ordinary children are (nothing,
//     graphemes, fancy graphemes, inlines, blocks, intermediates, or blocks
//     and super-blocks)
//   - a list of facets: named slots holding booleans, strings, enums, text,
//     node arrays, anchors, anchor ranges or style runs
//
// Node types are immutable once registered. A Registry is the lookup table
// keyed by type name; registering a type resolves its behavior flags once so
// the rest of the engine never switches on concrete node kinds.
//
// Schemas are usually authored as data and loaded with LoadYAML or LoadTOML:
//
//	types:
//	  - name: Paragraph
//	    category: block
//	    children: inlines
//	  - name: Span
//	    category: inline
//	    children: text
//	    facets:
//	      - name: styles
//	        kind: styles
//	        optional: true
package schema
