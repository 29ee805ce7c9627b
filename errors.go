// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("avl: invalid configuration")
	// ErrCorrupted signals that a structural invariant of the tree does not hold.
	ErrCorrupted = errors.New("avl: tree corrupted")
)
