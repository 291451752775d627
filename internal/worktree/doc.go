// Package worktree implements the mutable working copy of a document.
//
// A Tree is hydrated from an immutable document template and owns three
// registries: nodes, anchors and interactors, each keyed by a stable id.
// Structural references (parent, anchor target, attached anchors) are ids
// resolved through the tree, never pointers between nodes.
//
// All edits go through Tree methods:
//
//	InsertNode, InsertNodeText, InsertNodeGrapheme
//	DeleteNode, DeleteAtPath, DeleteGrapheme, DeleteNodesInRange
//	SplitNode, JoinSiblingIntoNode, SetFacet
//
// Every edit keeps anchors alive. Anchors on moved content follow it;
// anchors whose target is deleted are relocated to a single position
// computed before the delete mutates anything, and anchors created by a
// deleted node's facets are deleted with it.
//
// Changes are published on an optional event bus (see WithBus) under the
// anchor.*, interactor.* and node.joined topics. Delivery is synchronous;
// handlers must not mutate the tree.
package worktree
