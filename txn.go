// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

type opKind uint8

const (
	opInsert opKind = iota
	opDelete
)

type txnOp[K, V any] struct {
	kind  opKind
	key   K
	value V
}

// applier is where a transaction sends its operations on Commit.
type applier[K, V any] interface {
	Get(key K) (V, bool)
	Insert(key K, value V) (V, bool)
	Delete(key K) (V, bool)
}

// Txn stages inserts and deletes against a tree. Nothing is applied until
// Commit, so a batch can be built up and dropped with Abort without the
// tree ever observing it.
type Txn[K, V any] struct {
	tree *Tree[K, V]
	dst  applier[K, V]
	ops  []txnOp[K, V]
	done bool
}

// Txn starts a new transaction that can be used to mutate the tree
func (t *Tree[K, V]) Txn() *Txn[K, V] {
	return &Txn[K, V]{tree: t, dst: t}
}

// Len returns the number of staged operations.
func (txn *Txn[K, V]) Len() int {
	return len(txn.ops)
}

// Insert stages an insert of key with value.
func (txn *Txn[K, V]) Insert(key K, value V) {
	txn.stage(txnOp[K, V]{kind: opInsert, key: key, value: value})
}

// Delete stages the removal of key.
func (txn *Txn[K, V]) Delete(key K) {
	txn.stage(txnOp[K, V]{kind: opDelete, key: key})
}

func (txn *Txn[K, V]) stage(op txnOp[K, V]) {
	if txn.done {
		panic("avl: transaction already committed or aborted")
	}
	txn.ops = append(txn.ops, op)
}

// Get is used to look up a specific key, returning
// the value and if it was found. Staged operations
// take precedence over the contents of the tree.
func (txn *Txn[K, V]) Get(key K) (V, bool) {
	for i := len(txn.ops) - 1; i >= 0; i-- {
		op := &txn.ops[i]
		if txn.tree.cmp(op.key, key) != 0 {
			continue
		}
		if op.kind == opDelete {
			var zero V
			return zero, false
		}
		return op.value, true
	}
	return txn.dst.Get(key)
}

// Commit applies the staged operations in order and returns the tree.
func (txn *Txn[K, V]) Commit() *Tree[K, V] {
	if txn.done {
		panic("avl: transaction already committed or aborted")
	}
	txn.done = true
	for _, op := range txn.ops {
		switch op.kind {
		case opInsert:
			txn.dst.Insert(op.key, op.value)
		case opDelete:
			txn.dst.Delete(op.key)
		}
	}
	tracer().Debugf("avl: committed %d operations", len(txn.ops))
	txn.ops = nil
	return txn.tree
}

// Abort discards the staged operations.
func (txn *Txn[K, V]) Abort() {
	txn.done = true
	txn.ops = nil
}
