// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

// Iterator walks the tree in ascending key order. It follows parent links
// and keeps no stack, so it must not be used after the tree is mutated.
type Iterator[K, V any] struct {
	t    *Tree[K, V]
	next nodeIndex
}

// Iterator returns an iterator positioned at the smallest key.
func (t *Tree[K, V]) Iterator() *Iterator[K, V] {
	return &Iterator[K, V]{t: t, next: t.nodes.minimum(t.root)}
}

// SeekLowerBound is used to seek the iterator to the smallest key that is
// greater or equal to the given key.
func (i *Iterator[K, V]) SeekLowerBound(key K) {
	i.next = i.t.lowerBound(key)
}

// Next returns the next key and value in order, or false once the
// iterator is exhausted.
func (i *Iterator[K, V]) Next() (K, V, bool) {
	k, v, ok := i.t.entry(i.next)
	if ok {
		i.next = i.t.nodes.successor(i.next)
	}
	return k, v, ok
}
