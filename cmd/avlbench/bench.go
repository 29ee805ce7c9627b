// Copyright (c) HashiCorp, Inc.
// SPDX-License-Identifier: BUSL-1.1

package main

import (
	"cmp"
	"fmt"
	"io"
	"math"
	"math/rand"
	"time"

	"github.com/absolutelightning/go-avl"
	"github.com/fatih/color"
	"github.com/google/btree"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/schollz/progressbar/v3"
)

// referenceDegree is the fan-out of the B-tree used as reference map.
const referenceDegree = 32

// Result holds the measurements of one run.
type Result struct {
	Run       RunConfig
	Height    int
	Bound     float64
	Len       int
	AVL       time.Duration
	Reference time.Duration
}

type entry struct {
	key, value int
}

func lessEntry(a, b entry) bool {
	return a.key < b.key
}

// keys produces the key sequence of a run.
func keys(rc RunConfig) []int {
	ks := make([]int, rc.Size)
	for i := range ks {
		ks[i] = i
	}
	switch rc.Order {
	case OrderDescending:
		for i, j := 0, len(ks)-1; i < j; i, j = i+1, j-1 {
			ks[i], ks[j] = ks[j], ks[i]
		}
	case OrderShuffled:
		rnd := rand.New(rand.NewSource(rc.Seed))
		rnd.Shuffle(len(ks), func(i, j int) { ks[i], ks[j] = ks[j], ks[i] })
	}
	return ks
}

// heightBound is the worst case height of an AVL tree with n nodes.
func heightBound(n int) float64 {
	return 1.4405*math.Log2(float64(n+2)) - 0.3277
}

// runBenchmark bulk-inserts the keys of rc into an AVL tree and into a
// reference B-tree, timing both.
func runBenchmark(rc RunConfig, progress io.Writer) (*Result, error) {
	ks := keys(rc)
	tree, err := avl.NewWithConfig[int, int](avl.Config[int]{
		Compare:         cmp.Compare[int],
		InitialCapacity: rc.Size,
	})
	if err != nil {
		return nil, err
	}

	var bar *progressbar.ProgressBar
	if progress != nil {
		bar = progressbar.NewOptions(len(ks),
			progressbar.OptionSetWriter(progress),
			progressbar.OptionSetDescription(fmt.Sprintf("inserting %d %s keys", rc.Size, rc.Order)),
			progressbar.OptionSetWidth(50),
			progressbar.OptionShowCount(),
			progressbar.OptionThrottle(100*time.Millisecond),
		)
	}
	start := time.Now()
	for i, k := range ks {
		tree.Insert(k, -k)
		if rc.DeleteEvery > 0 && i%rc.DeleteEvery == rc.DeleteEvery-1 {
			tree.Delete(ks[i-rc.DeleteEvery+1])
		}
		if bar != nil && i%1024 == 0 {
			_ = bar.Set(i)
		}
	}
	avlElapsed := time.Since(start)
	if bar != nil {
		_ = bar.Finish()
	}
	gtrace.CoreTracer.Infof("avl: %d keys inserted in %v", rc.Size, avlElapsed)

	ref := btree.NewG[entry](referenceDegree, lessEntry)
	start = time.Now()
	for i, k := range ks {
		ref.ReplaceOrInsert(entry{key: k, value: -k})
		if rc.DeleteEvery > 0 && i%rc.DeleteEvery == rc.DeleteEvery-1 {
			ref.Delete(entry{key: ks[i-rc.DeleteEvery+1]})
		}
	}
	refElapsed := time.Since(start)
	gtrace.CoreTracer.Infof("btree: %d keys inserted in %v", rc.Size, refElapsed)

	if rc.Verify {
		if err := tree.Check(); err != nil {
			return nil, err
		}
		if tree.Len() != ref.Len() {
			return nil, fmt.Errorf("avl holds %d keys, reference holds %d", tree.Len(), ref.Len())
		}
		var mismatch error
		ref.Ascend(func(e entry) bool {
			v, ok := tree.Get(e.key)
			if !ok || v != e.value {
				mismatch = fmt.Errorf("key %d: avl has (%d, %v), reference has %d", e.key, v, ok, e.value)
				return false
			}
			return true
		})
		if mismatch != nil {
			return nil, mismatch
		}
	}
	return &Result{
		Run:       rc,
		Height:    tree.Height(),
		Bound:     heightBound(tree.Len()),
		Len:       tree.Len(),
		AVL:       avlElapsed,
		Reference: refElapsed,
	}, nil
}

// report prints a result as a short colored block.
func report(w io.Writer, r *Result) {
	title := color.New(color.FgCyan, color.Bold)
	good := color.New(color.FgGreen)
	bad := color.New(color.FgRed, color.Bold)

	title.Fprintf(w, "%d %s keys", r.Run.Size, r.Run.Order)
	if r.Run.DeleteEvery > 0 {
		title.Fprintf(w, ", deleting every %d", r.Run.DeleteEvery)
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "  nodes:  %d\n", r.Len)
	heightLine := fmt.Sprintf("  height: %d (bound %.2f)\n", r.Height, r.Bound)
	if float64(r.Height) <= r.Bound {
		good.Fprint(w, heightLine)
	} else {
		bad.Fprint(w, heightLine)
	}
	fmt.Fprintf(w, "  avl:    %v\n", r.AVL)
	fmt.Fprintf(w, "  btree:  %v\n", r.Reference)
}
