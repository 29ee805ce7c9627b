// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

/*
Package avl provides an ordered key-value map backed by an AVL tree.

Insert, Delete and Get run in O(log n). After every mutation the tree keeps
the AVL invariant: at every node the heights of the left and right subtrees
differ by at most one. A lone leaf has height 1 and an empty tree height 0.

Nodes are stored in an arena and reference each other (parent, left, right)
by index. Cells released by Delete are reused by later inserts.

Inserting a key which is already present overwrites its value in place, so a
tree never holds two nodes with equal keys.

A Tree is not safe for concurrent use. Callers sharing a tree between
goroutines must serialize all access, including reads.
*/
package avl

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'avl'
func tracer() tracing.Trace {
	return tracing.Select("avl")
}
