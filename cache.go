// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

import (
	lru "github.com/hashicorp/golang-lru/v2"
)

// CachedTree is a Tree with a bounded memo of recently used keys and the
// arena cells holding them. Repeated lookups of hot keys skip the descent.
//
// Memo entries are checked on use: a hit counts only if the cell is still
// live and still holds an equal key. Deletes move keys between cells, so a
// stale entry is simply dropped and the lookup falls back to the tree.
//
// Writes must go through the CachedTree or its Txn to keep the memo warm.
// Methods promoted from Tree (Clone, the iterators, Walk) do not consult
// the memo; a clone is a plain Tree.
type CachedTree[K comparable, V any] struct {
	*Tree[K, V]
	memo   *lru.Cache[K, nodeIndex]
	hits   uint64
	misses uint64
}

// NewCached creates an empty cached tree ordering keys with compare and
// remembering up to size keys.
func NewCached[K comparable, V any](compare func(a, b K) int, size int) (*CachedTree[K, V], error) {
	memo, err := lru.New[K, nodeIndex](size)
	if err != nil {
		return nil, err
	}
	return &CachedTree[K, V]{Tree: NewFunc[K, V](compare), memo: memo}, nil
}

// Get is used to look up a specific key, returning
// the value and if it was found
func (c *CachedTree[K, V]) Get(key K) (V, bool) {
	if i, ok := c.memo.Get(key); ok {
		if c.nodes.valid(i) && c.cmp(c.nodes.at(i).key, key) == 0 {
			c.hits++
			return c.nodes.at(i).value, true
		}
		c.memo.Remove(key)
	}
	c.misses++
	i := c.search(key)
	if i == nilIndex {
		var zero V
		return zero, false
	}
	c.memo.Add(key, i)
	return c.nodes.at(i).value, true
}

// Insert adds or updates the mapping for key, see Tree.Insert.
func (c *CachedTree[K, V]) Insert(key K, value V) (V, bool) {
	old, updated, i := c.insert(key, value)
	c.memo.Add(key, i)
	return old, updated
}

// Delete removes the mapping for key, see Tree.Delete.
func (c *CachedTree[K, V]) Delete(key K) (V, bool) {
	c.memo.Remove(key)
	return c.Tree.Delete(key)
}

// Txn starts a transaction whose Commit updates the memo along with the tree.
func (c *CachedTree[K, V]) Txn() *Txn[K, V] {
	return &Txn[K, V]{tree: c.Tree, dst: c}
}

// Purge drops every memo entry.
func (c *CachedTree[K, V]) Purge() {
	c.memo.Purge()
}

// Stats returns the number of memo hits and misses served by Get.
func (c *CachedTree[K, V]) Stats() (hits, misses uint64) {
	return c.hits, c.misses
}
