// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

import (
	"fmt"
	"io"
	"strings"
)

// dumpDepth limits how many levels of the offending subtree are printed
// when the balancer detects corruption.
const dumpDepth = 4

// replaceChild makes c take over the slot of old below p. If p is nilIndex
// old was the root and the caller is responsible for updating the tree.
func (a *arena[K, V]) replaceChild(p, old, c nodeIndex) {
	if c != nilIndex {
		a.nodes[c].parent = p
	}
	if p == nilIndex {
		return
	}
	switch old {
	case a.nodes[p].left:
		a.nodes[p].left = c
	case a.nodes[p].right:
		a.nodes[p].right = c
	default:
		a.corrupted(p, "node %d is not a child of its parent %d", old, p)
	}
}

// rotateRight turns (x (l a b) c) into (l a (x b c)) and returns l, which
// now sits where x used to be.
func (a *arena[K, V]) rotateRight(x nodeIndex) nodeIndex {
	l := a.nodes[x].left
	if l == nilIndex {
		a.corrupted(x, "rotate right without left child")
	}
	p := a.nodes[x].parent
	a.setLeft(x, a.nodes[l].right)
	a.replaceChild(p, x, l)
	a.setRight(l, x)
	a.updateHeight(x)
	a.updateHeight(l)
	return l
}

// rotateLeft turns (x a (r b c)) into (r (x a b) c) and returns r, which
// now sits where x used to be.
func (a *arena[K, V]) rotateLeft(x nodeIndex) nodeIndex {
	r := a.nodes[x].right
	if r == nilIndex {
		a.corrupted(x, "rotate left without right child")
	}
	p := a.nodes[x].parent
	a.setRight(x, a.nodes[r].left)
	a.replaceChild(p, x, r)
	a.setLeft(r, x)
	a.updateHeight(x)
	a.updateHeight(r)
	return r
}

// rebalance restores the balance of x, whose balance factor is +2 or -2,
// with a single or double rotation. It returns the node now occupying x's
// position.
func (a *arena[K, V]) rebalance(x nodeIndex, factor int) nodeIndex {
	if factor == 2 {
		l := a.nodes[x].left
		switch cf := a.balanceFactor(l); cf {
		case 0, 1:
		case -1:
			a.rotateLeft(l)
		default:
			a.corrupted(x, "balance factors %d/%d", factor, cf)
		}
		return a.rotateRight(x)
	}
	r := a.nodes[x].right
	switch cf := a.balanceFactor(r); cf {
	case 0, -1:
	case 1:
		a.rotateRight(r)
	default:
		a.corrupted(x, "balance factors %d/%d", factor, cf)
	}
	return a.rotateLeft(x)
}

// fixup walks from x towards the root, recomputing heights and rotating
// wherever a node is out of balance. The walk stops as soon as a subtree
// below the root keeps its previous height. When the walk reaches the top it
// returns the node which is now the root and true; otherwise the root is
// unchanged and fixup returns false.
func (a *arena[K, V]) fixup(x nodeIndex) (nodeIndex, bool) {
	for x != nilIndex {
		old := a.nodes[x].height
		a.updateHeight(x)
		switch factor := a.balanceFactor(x); factor {
		case -1, 0, 1:
		case -2, 2:
			tracer().Debugf("avl: rebalance node %d with factor %d", x, factor)
			x = a.rebalance(x, factor)
		default:
			a.corrupted(x, "balance factor %d", factor)
		}
		// a rotation at the top moves the root even when the height is kept
		p := a.nodes[x].parent
		if p == nilIndex {
			return x, true
		}
		if a.nodes[x].height == old {
			return nilIndex, false
		}
		x = p
	}
	return nilIndex, false
}

// corrupted reports a broken structural invariant at x. It never returns.
func (a *arena[K, V]) corrupted(x nodeIndex, format string, args ...interface{}) {
	var b strings.Builder
	fmt.Fprintf(&b, "avl: corrupted at node %d: ", x)
	fmt.Fprintf(&b, format, args...)
	b.WriteByte('\n')
	a.dump(&b, x, 0, dumpDepth)
	msg := b.String()
	tracer().Errorf("%s", msg)
	panic(msg)
}

// dump prints the subtree rooted at i, right subtree first, so that the
// output reads as the tree rotated by 90 degrees.
func (a *arena[K, V]) dump(w io.Writer, i nodeIndex, depth, limit int) {
	if i == nilIndex || (limit > 0 && depth >= limit) {
		return
	}
	if !a.valid(i) {
		fmt.Fprintf(w, "%s#%d <free>\n", strings.Repeat("    ", depth), i)
		return
	}
	n := &a.nodes[i]
	a.dump(w, n.right, depth+1, limit)
	fmt.Fprintf(w, "%s#%d key=%v h=%d bf=%d parent=%d\n",
		strings.Repeat("    ", depth), i, n.key, n.height, a.balanceFactor(i), n.parent)
	a.dump(w, n.left, depth+1, limit)
}
