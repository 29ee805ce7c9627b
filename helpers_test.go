// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// leftSpine links keys as a left spine under the first key and returns the
// indices in the order given. Heights are computed bottom-up, balance is
// not restored.
func leftSpine(a *arena[int, int], keys ...int) []nodeIndex {
	idx := make([]nodeIndex, len(keys))
	for i, k := range keys {
		idx[i] = a.alloc(k, k)
		if i > 0 {
			a.setLeft(idx[i-1], idx[i])
		}
	}
	for i := len(idx) - 1; i >= 0; i-- {
		a.updateHeight(idx[i])
	}
	return idx
}

func requirePanicContains(t *testing.T, fragment string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		require.NotNil(t, r, "expected panic")
		msg, ok := r.(string)
		require.True(t, ok)
		require.Contains(t, msg, fragment)
	}()
	fn()
}

func TestArena_HeightAndBalance(t *testing.T) {
	a := newArena[int, int](0)
	require.Equal(t, int32(0), a.height(nilIndex))

	idx := leftSpine(&a, 3, 2, 1)
	require.Equal(t, int32(3), a.height(idx[0]))
	require.Equal(t, int32(2), a.height(idx[1]))
	require.Equal(t, int32(1), a.height(idx[2]))
	require.Equal(t, 2, a.balanceFactor(idx[0]))
	require.Equal(t, 1, a.balanceFactor(idx[1]))
	require.Equal(t, 0, a.balanceFactor(idx[2]))
}

func TestArena_RotateRightAtRoot(t *testing.T) {
	a := newArena[int, int](0)
	idx := leftSpine(&a, 3, 2, 1)
	x, l, ll := idx[0], idx[1], idx[2]

	top := a.rotateRight(x)
	require.Equal(t, l, top)
	require.Equal(t, nilIndex, a.at(l).parent)
	require.Equal(t, ll, a.at(l).left)
	require.Equal(t, x, a.at(l).right)
	require.Equal(t, l, a.at(x).parent)
	require.Equal(t, l, a.at(ll).parent)
	require.Equal(t, nilIndex, a.at(x).left)
	require.Equal(t, int32(1), a.height(x))
	require.Equal(t, int32(2), a.height(l))
	require.Equal(t, 0, a.balanceFactor(l))
}

func TestArena_RotateRightMovesInnerSubtree(t *testing.T) {
	a := newArena[int, int](0)
	g := a.alloc(10, 10)
	x := a.alloc(4, 4)
	l := a.alloc(2, 2)
	ll := a.alloc(1, 1)
	lr := a.alloc(3, 3)
	r := a.alloc(5, 5)
	a.setLeft(g, x)
	a.setLeft(x, l)
	a.setRight(x, r)
	a.setLeft(l, ll)
	a.setRight(l, lr)
	for _, i := range []nodeIndex{ll, lr, r, l, x, g} {
		a.updateHeight(i)
	}

	top := a.rotateRight(x)
	require.Equal(t, l, top)
	require.Equal(t, l, a.at(g).left)
	require.Equal(t, g, a.at(l).parent)
	require.Equal(t, x, a.at(l).right)
	require.Equal(t, l, a.at(x).parent)
	require.Equal(t, lr, a.at(x).left)
	require.Equal(t, x, a.at(lr).parent)
	require.Equal(t, r, a.at(x).right)
	require.Equal(t, int32(2), a.height(x))
	require.Equal(t, int32(3), a.height(l))
}

func TestArena_RotateLeftMirrors(t *testing.T) {
	a := newArena[int, int](0)
	x := a.alloc(1, 1)
	r := a.alloc(3, 3)
	rl := a.alloc(2, 2)
	rr := a.alloc(4, 4)
	a.setRight(x, r)
	a.setLeft(r, rl)
	a.setRight(r, rr)
	for _, i := range []nodeIndex{rl, rr, r, x} {
		a.updateHeight(i)
	}

	top := a.rotateLeft(x)
	require.Equal(t, r, top)
	require.Equal(t, nilIndex, a.at(r).parent)
	require.Equal(t, x, a.at(r).left)
	require.Equal(t, rr, a.at(r).right)
	require.Equal(t, r, a.at(x).parent)
	require.Equal(t, rl, a.at(x).right)
	require.Equal(t, x, a.at(rl).parent)
	require.Equal(t, int32(2), a.height(x))
	require.Equal(t, int32(3), a.height(r))
}

func TestArena_FixupDoubleRotation(t *testing.T) {
	a := newArena[int, int](0)
	x := a.alloc(3, 3)
	l := a.alloc(1, 1)
	lr := a.alloc(2, 2)
	a.setLeft(x, l)
	a.setRight(l, lr)
	a.updateHeight(l)

	root, changed := a.fixup(x)
	require.True(t, changed)
	require.Equal(t, lr, root)
	require.Equal(t, l, a.at(lr).left)
	require.Equal(t, x, a.at(lr).right)
	require.Equal(t, int32(2), a.height(lr))
	require.True(t, a.at(l).isLeaf())
	require.True(t, a.at(x).isLeaf())
}

func TestArena_FixupRotationAtRootKeepsHeight(t *testing.T) {
	a := newArena[int, int](0)
	x := a.alloc(1, 1)
	r := a.alloc(2, 2)
	a.setRight(x, r)
	a.updateHeight(r)
	a.updateHeight(x)

	rr := a.alloc(3, 3)
	a.setRight(r, rr)
	a.updateHeight(r)

	// the promoted node ends at the old root height
	root, changed := a.fixup(x)
	require.True(t, changed)
	require.Equal(t, r, root)
	require.Equal(t, nilIndex, a.at(r).parent)
	require.Equal(t, x, a.at(r).left)
	require.Equal(t, rr, a.at(r).right)
	require.Equal(t, int32(2), a.height(r))
}

func TestArena_FixupStopsWhenHeightUnchanged(t *testing.T) {
	tree := New[int, int]()
	for _, k := range []int{4, 2, 6, 1} {
		tree.Insert(k, k)
	}
	// filling the gap beside 6 does not change any height on the path
	root := tree.root
	before := tree.nodes.height(root)
	tree.Insert(5, 5)
	tree.Insert(7, 7)
	require.Equal(t, root, tree.root)
	require.Equal(t, before, tree.nodes.height(tree.root))

	six := tree.search(6)
	_, changed := tree.nodes.fixup(six)
	require.False(t, changed)
}

func TestArena_FixupPanicsOnCorruptFactor(t *testing.T) {
	a := newArena[int, int](0)
	idx := leftSpine(&a, 4, 3, 2, 1)
	requirePanicContains(t, "balance factor 3", func() {
		a.fixup(idx[0])
	})
}

func TestArena_FixupPanicsOnCorruptChildFactor(t *testing.T) {
	a := newArena[int, int](0)
	idx := leftSpine(&a, 10, 8, 6, 4)
	r := a.alloc(12, 12)
	a.setRight(idx[0], r)
	a.updateHeight(idx[0])
	require.Equal(t, 2, a.balanceFactor(idx[0]))
	require.Equal(t, 2, a.balanceFactor(idx[1]))

	requirePanicContains(t, "balance factors 2/2", func() {
		a.fixup(idx[0])
	})
}

func TestArena_RotateWithoutChildPanics(t *testing.T) {
	a := newArena[int, int](0)
	x := a.alloc(1, 1)
	requirePanicContains(t, "rotate right without left child", func() {
		a.rotateRight(x)
	})
	requirePanicContains(t, "rotate left without right child", func() {
		a.rotateLeft(x)
	})
}

func TestArena_SuccessorPredecessor(t *testing.T) {
	tree := New[int, int]()
	for _, k := range []int{50, 30, 70, 20, 40, 60, 80, 35, 45} {
		tree.Insert(k, k)
	}
	want := []int{20, 30, 35, 40, 45, 50, 60, 70, 80}
	var got []int
	for i := tree.nodes.minimum(tree.root); i != nilIndex; i = tree.nodes.successor(i) {
		got = append(got, tree.nodes.at(i).key)
	}
	require.Equal(t, want, got)

	got = got[:0]
	for i := tree.nodes.maximum(tree.root); i != nilIndex; i = tree.nodes.predecessor(i) {
		got = append(got, tree.nodes.at(i).key)
	}
	for i, j := 0, len(got)-1; i < j; i, j = i+1, j-1 {
		got[i], got[j] = got[j], got[i]
	}
	require.Equal(t, want, got)
}
