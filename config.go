// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package avl

import "fmt"

// Config configures a Tree.
type Config[K any] struct {
	// Compare orders keys. It must return a negative number when a < b,
	// zero when a == b and a positive number when a > b.
	Compare func(a, b K) int
	// InitialCapacity pre-sizes the node arena. Zero lets the arena grow
	// on demand.
	InitialCapacity int
}

func (cfg Config[K]) validate() error {
	if cfg.Compare == nil {
		return fmt.Errorf("%w: comparator is required", ErrInvalidConfig)
	}
	if cfg.InitialCapacity < 0 {
		return fmt.Errorf("%w: negative initial capacity %d", ErrInvalidConfig, cfg.InitialCapacity)
	}
	if cfg.InitialCapacity > maxNodes {
		return fmt.Errorf("%w: initial capacity %d exceeds %d nodes",
			ErrInvalidConfig, cfg.InitialCapacity, maxNodes)
	}
	return nil
}
