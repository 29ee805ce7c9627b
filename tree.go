// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

import (
	"cmp"
	"io"

	"golang.org/x/exp/constraints"
)

// Tree is an ordered map from K to V kept balanced as an AVL tree.
// The zero value is not usable; create trees with New, NewFunc or
// NewWithConfig.
type Tree[K, V any] struct {
	cmp   func(a, b K) int
	nodes arena[K, V]
	root  nodeIndex
	size  int
}

// WalkFn is used when walking the tree. Takes a
// key and value, returning if iteration should
// be terminated.
type WalkFn[K, V any] func(k K, v V) bool

// New creates an empty tree ordering keys by their natural order.
func New[K constraints.Ordered, V any]() *Tree[K, V] {
	return NewFunc[K, V](cmp.Compare[K])
}

// NewFunc creates an empty tree ordering keys with compare.
func NewFunc[K, V any](compare func(a, b K) int) *Tree[K, V] {
	if compare == nil {
		panic("avl: nil comparator")
	}
	return &Tree[K, V]{cmp: compare, root: nilIndex}
}

// NewWithConfig creates an empty tree from a validated configuration.
func NewWithConfig[K, V any](cfg Config[K]) (*Tree[K, V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Tree[K, V]{
		cmp:   cfg.Compare,
		nodes: newArena[K, V](cfg.InitialCapacity),
		root:  nilIndex,
	}, nil
}

// Len is used to return the number of elements in the tree
func (t *Tree[K, V]) Len() int {
	return t.size
}

// Height returns the cached height of the root, 0 for an empty tree.
func (t *Tree[K, V]) Height() int {
	return int(t.nodes.height(t.root))
}

// Clone returns an independent copy of the tree. Keys and values are
// copied by assignment.
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	return &Tree[K, V]{
		cmp:   t.cmp,
		nodes: t.nodes.clone(),
		root:  t.root,
		size:  t.size,
	}
}

// Get is used to look up a specific key, returning
// the value and if it was found
func (t *Tree[K, V]) Get(key K) (V, bool) {
	var zero V
	i := t.search(key)
	if i == nilIndex {
		return zero, false
	}
	return t.nodes.at(i).value, true
}

// Insert adds or updates the mapping for key. If key was already present its
// value is overwritten in place and the previous value is returned together
// with true.
func (t *Tree[K, V]) Insert(key K, value V) (V, bool) {
	old, updated, _ := t.insert(key, value)
	return old, updated
}

// insert returns the index of the node now holding key.
func (t *Tree[K, V]) insert(key K, value V) (V, bool, nodeIndex) {
	var zero V
	parent, c := nilIndex, 0
	for i := t.root; i != nilIndex; {
		n := t.nodes.at(i)
		c = t.cmp(key, n.key)
		if c == 0 {
			old := n.value
			n.value = value
			return old, true, i
		}
		parent = i
		if c < 0 {
			i = n.left
		} else {
			i = n.right
		}
	}
	x := t.nodes.alloc(key, value)
	t.size++
	if parent == nilIndex {
		t.root = x
		return zero, false, x
	}
	if c < 0 {
		t.nodes.setLeft(parent, x)
	} else {
		t.nodes.setRight(parent, x)
	}
	if root, ok := t.nodes.fixup(parent); ok {
		t.root = root
	}
	return zero, false, x
}

// Delete removes the mapping for key and returns its value. Deleting an
// absent key is a no-op returning false.
func (t *Tree[K, V]) Delete(key K) (V, bool) {
	var zero V
	x := t.search(key)
	if x == nilIndex {
		return zero, false
	}
	old := t.nodes.at(x).value
	t.delete(x)
	return old, true
}

// delete unlinks the node at x. A node with two children swaps its payload
// with its in-order successor and the successor cell is removed instead.
func (t *Tree[K, V]) delete(x nodeIndex) {
	n := t.nodes.at(x)
	if n.left != nilIndex && n.right != nilIndex {
		s := t.nodes.minimum(n.right)
		sn := t.nodes.at(s)
		n.key, sn.key = sn.key, n.key
		n.value, sn.value = sn.value, n.value
		tracer().Debugf("avl: delete node %d via successor %d", x, s)
		x, n = s, sn
	}
	child := n.left
	if child == nilIndex {
		child = n.right
	}
	p := n.parent
	t.nodes.replaceChild(p, x, child)
	t.nodes.release(x)
	t.size--
	if p == nilIndex {
		t.root = child
		return
	}
	if root, ok := t.nodes.fixup(p); ok {
		t.root = root
	}
}

// search descends from the root and returns the node holding key.
func (t *Tree[K, V]) search(key K) nodeIndex {
	i := t.root
	for i != nilIndex {
		n := t.nodes.at(i)
		c := t.cmp(key, n.key)
		switch {
		case c < 0:
			i = n.left
		case c > 0:
			i = n.right
		default:
			return i
		}
	}
	return nilIndex
}

// Minimum returns the smallest key and its value.
func (t *Tree[K, V]) Minimum() (K, V, bool) {
	return t.entry(t.nodes.minimum(t.root))
}

// Maximum returns the largest key and its value.
func (t *Tree[K, V]) Maximum() (K, V, bool) {
	return t.entry(t.nodes.maximum(t.root))
}

func (t *Tree[K, V]) entry(i nodeIndex) (K, V, bool) {
	var (
		zeroK K
		zeroV V
	)
	if i == nilIndex {
		return zeroK, zeroV, false
	}
	n := t.nodes.at(i)
	return n.key, n.value, true
}

// Walk is used to walk the tree in ascending key order
func (t *Tree[K, V]) Walk(fn WalkFn[K, V]) {
	for i := t.nodes.minimum(t.root); i != nilIndex; i = t.nodes.successor(i) {
		n := t.nodes.at(i)
		if fn(n.key, n.value) {
			return
		}
	}
}

// Dump prints the tree to w, one node per line, indented by depth with the
// right subtree above its parent. Output stops at depth Len()+1, so a
// corrupted tree with a cycle still prints.
func (t *Tree[K, V]) Dump(w io.Writer) {
	t.nodes.dump(w, t.root, 0, t.size+1)
}
