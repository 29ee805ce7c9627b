// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

import "math"

// nodeIndex addresses a cell in the tree's arena. Parent and child relations
// are stored as indices so that rotations relink nodes without aliasing.
type nodeIndex int32

const nilIndex nodeIndex = -1

// maxNodes is the largest number of cells an arena can address.
const maxNodes = math.MaxInt32

// node is a single tree cell. A live node has height >= 1 (a leaf has
// height 1); a cell sitting on the free list has height 0.
type node[K, V any] struct {
	key    K
	value  V
	height int32
	parent nodeIndex
	left   nodeIndex
	right  nodeIndex
}

func (n *node[K, V]) isLive() bool {
	return n.height > 0
}

func (n *node[K, V]) isLeaf() bool {
	return n.left == nilIndex && n.right == nilIndex
}

// arena owns every node of a tree. Freed cells are recycled through a
// free list, so indices stay small and stable for the lifetime of a node.
type arena[K, V any] struct {
	nodes []node[K, V]
	free  []nodeIndex
}

func newArena[K, V any](capacity int) arena[K, V] {
	return arena[K, V]{nodes: make([]node[K, V], 0, capacity)}
}

// alloc returns an unlinked leaf holding key and value.
func (a *arena[K, V]) alloc(key K, value V) nodeIndex {
	n := node[K, V]{
		key:    key,
		value:  value,
		height: 1,
		parent: nilIndex,
		left:   nilIndex,
		right:  nilIndex,
	}
	if last := len(a.free) - 1; last >= 0 {
		i := a.free[last]
		a.free = a.free[:last]
		a.nodes[i] = n
		return i
	}
	if len(a.nodes) >= maxNodes {
		panic("avl: node arena exhausted")
	}
	a.nodes = append(a.nodes, n)
	return nodeIndex(len(a.nodes) - 1)
}

// release puts a fully unlinked cell back on the free list. The payload is
// zeroed so the arena does not keep keys or values reachable.
func (a *arena[K, V]) release(i nodeIndex) {
	a.nodes[i] = node[K, V]{parent: nilIndex, left: nilIndex, right: nilIndex}
	a.free = append(a.free, i)
}

func (a *arena[K, V]) at(i nodeIndex) *node[K, V] {
	return &a.nodes[i]
}

// valid reports whether i addresses a live cell.
func (a *arena[K, V]) valid(i nodeIndex) bool {
	return i >= 0 && int(i) < len(a.nodes) && a.nodes[i].isLive()
}

func (a *arena[K, V]) clone() arena[K, V] {
	c := arena[K, V]{
		nodes: make([]node[K, V], len(a.nodes), cap(a.nodes)),
		free:  make([]nodeIndex, len(a.free)),
	}
	copy(c.nodes, a.nodes)
	copy(c.free, a.free)
	return c
}

// height returns the cached height of i, 0 for nilIndex.
func (a *arena[K, V]) height(i nodeIndex) int32 {
	if i == nilIndex {
		return 0
	}
	return a.nodes[i].height
}

// updateHeight recomputes the height of i from its children, which must
// already be current.
func (a *arena[K, V]) updateHeight(i nodeIndex) {
	n := &a.nodes[i]
	n.height = max(a.height(n.left), a.height(n.right)) + 1
}

// balanceFactor returns height(left) - height(right).
func (a *arena[K, V]) balanceFactor(i nodeIndex) int {
	n := &a.nodes[i]
	return int(a.height(n.left) - a.height(n.right))
}

func (a *arena[K, V]) setLeft(p, c nodeIndex) {
	a.nodes[p].left = c
	if c != nilIndex {
		a.nodes[c].parent = p
	}
}

func (a *arena[K, V]) setRight(p, c nodeIndex) {
	a.nodes[p].right = c
	if c != nilIndex {
		a.nodes[c].parent = p
	}
}

// minimum returns the leftmost node of the subtree rooted at i.
func (a *arena[K, V]) minimum(i nodeIndex) nodeIndex {
	if i == nilIndex {
		return nilIndex
	}
	for a.nodes[i].left != nilIndex {
		i = a.nodes[i].left
	}
	return i
}

// maximum returns the rightmost node of the subtree rooted at i.
func (a *arena[K, V]) maximum(i nodeIndex) nodeIndex {
	if i == nilIndex {
		return nilIndex
	}
	for a.nodes[i].right != nilIndex {
		i = a.nodes[i].right
	}
	return i
}

// successor returns the in-order successor of i, or nilIndex.
func (a *arena[K, V]) successor(i nodeIndex) nodeIndex {
	if r := a.nodes[i].right; r != nilIndex {
		return a.minimum(r)
	}
	p := a.nodes[i].parent
	for p != nilIndex && a.nodes[p].right == i {
		i, p = p, a.nodes[p].parent
	}
	return p
}

// predecessor returns the in-order predecessor of i, or nilIndex.
func (a *arena[K, V]) predecessor(i nodeIndex) nodeIndex {
	if l := a.nodes[i].left; l != nilIndex {
		return a.maximum(l)
	}
	p := a.nodes[i].parent
	for p != nilIndex && a.nodes[p].left == i {
		i, p = p, a.nodes[p].parent
	}
	return p
}
