// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

// ReverseIterator is used to iterate over the tree
// in reverse in-order
type ReverseIterator[K, V any] struct {
	t    *Tree[K, V]
	prev nodeIndex
}

// ReverseIterator returns an iterator positioned at the largest key.
func (t *Tree[K, V]) ReverseIterator() *ReverseIterator[K, V] {
	return &ReverseIterator[K, V]{t: t, prev: t.nodes.maximum(t.root)}
}

// SeekReverseLowerBound is used to seek the iterator to the largest key that is
// lower or equal to the given key.
func (ri *ReverseIterator[K, V]) SeekReverseLowerBound(key K) {
	ri.prev = ri.t.reverseLowerBound(key)
}

// Previous returns the previous node in reverse order
func (ri *ReverseIterator[K, V]) Previous() (K, V, bool) {
	k, v, ok := ri.t.entry(ri.prev)
	if ok {
		ri.prev = ri.t.nodes.predecessor(ri.prev)
	}
	return k, v, ok
}
