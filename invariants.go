// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

import "fmt"

// Check validates the structural invariants of the tree: cached heights,
// AVL balance, key order, parent links and the node count.
//
// Check visits every node and is meant for tests and diagnostics.
func (t *Tree[K, V]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrCorrupted)
	}
	if t.root == nilIndex {
		if t.size != 0 {
			return fmt.Errorf("%w: empty tree reports %d nodes", ErrCorrupted, t.size)
		}
		return nil
	}
	if !t.nodes.valid(t.root) {
		return fmt.Errorf("%w: root %d is not a live node", ErrCorrupted, t.root)
	}
	if p := t.nodes.at(t.root).parent; p != nilIndex {
		return fmt.Errorf("%w: root %d has parent %d", ErrCorrupted, t.root, p)
	}
	count, _, err := t.checkNode(t.root, nil, nil, 0)
	if err != nil {
		return err
	}
	if count != t.size {
		return fmt.Errorf("%w: counted %d nodes, tree reports %d", ErrCorrupted, count, t.size)
	}
	if live := len(t.nodes.nodes) - len(t.nodes.free); live != t.size {
		return fmt.Errorf("%w: arena holds %d live cells, tree reports %d", ErrCorrupted, live, t.size)
	}
	return nil
}

// checkNode verifies the subtree rooted at i, whose keys must lie strictly
// between lo and hi when those are given. depth guards against cycles.
func (t *Tree[K, V]) checkNode(i nodeIndex, lo, hi *K, depth int) (count int, height int32, err error) {
	if i == nilIndex {
		return 0, 0, nil
	}
	if depth > t.size {
		return 0, 0, fmt.Errorf("%w: cycle through node %d", ErrCorrupted, i)
	}
	if !t.nodes.valid(i) {
		return 0, 0, fmt.Errorf("%w: node %d is not live", ErrCorrupted, i)
	}
	n := t.nodes.at(i)
	if lo != nil && t.cmp(n.key, *lo) <= 0 {
		return 0, 0, fmt.Errorf("%w: node %d key %v not above %v", ErrCorrupted, i, n.key, *lo)
	}
	if hi != nil && t.cmp(n.key, *hi) >= 0 {
		return 0, 0, fmt.Errorf("%w: node %d key %v not below %v", ErrCorrupted, i, n.key, *hi)
	}
	for _, c := range [2]nodeIndex{n.left, n.right} {
		if c != nilIndex && t.nodes.valid(c) && t.nodes.at(c).parent != i {
			return 0, 0, fmt.Errorf("%w: node %d has parent %d, expected %d",
				ErrCorrupted, c, t.nodes.at(c).parent, i)
		}
	}
	lc, lh, err := t.checkNode(n.left, lo, &n.key, depth+1)
	if err != nil {
		return 0, 0, err
	}
	rc, rh, err := t.checkNode(n.right, &n.key, hi, depth+1)
	if err != nil {
		return 0, 0, err
	}
	height = max(lh, rh) + 1
	if n.height != height {
		return 0, 0, fmt.Errorf("%w: node %d caches height %d, computed %d", ErrCorrupted, i, n.height, height)
	}
	if bf := lh - rh; bf < -1 || bf > 1 {
		return 0, 0, fmt.Errorf("%w: node %d has balance factor %d", ErrCorrupted, i, bf)
	}
	return lc + rc + 1, height, nil
}
