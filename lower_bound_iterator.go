// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

// lowerBound returns the node with the smallest key >= key.
func (t *Tree[K, V]) lowerBound(key K) nodeIndex {
	found := nilIndex
	for i := t.root; i != nilIndex; {
		n := t.nodes.at(i)
		c := t.cmp(key, n.key)
		if c == 0 {
			return i
		}
		if c < 0 {
			// n is a candidate, anything smaller is to the left
			found = i
			i = n.left
		} else {
			i = n.right
		}
	}
	return found
}

// reverseLowerBound returns the node with the largest key <= key.
func (t *Tree[K, V]) reverseLowerBound(key K) nodeIndex {
	found := nilIndex
	for i := t.root; i != nilIndex; {
		n := t.nodes.at(i)
		c := t.cmp(key, n.key)
		if c == 0 {
			return i
		}
		if c > 0 {
			found = i
			i = n.right
		} else {
			i = n.left
		}
	}
	return found
}

// Ceiling returns the smallest key greater or equal to key.
func (t *Tree[K, V]) Ceiling(key K) (K, V, bool) {
	return t.entry(t.lowerBound(key))
}

// Floor returns the largest key lower or equal to key.
func (t *Tree[K, V]) Floor(key K) (K, V, bool) {
	return t.entry(t.reverseLowerBound(key))
}
