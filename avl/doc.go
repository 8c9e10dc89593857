/*
Package avl provides an arena-backed, augmented AVL tree with order-statistic
queries.

The tree is a single generic engine used for all key shapes of the roster:
plain integer ids, dual keys (secondary key first, id as tie-break) and
triple keys. Every node caches its subtree size, so Select and Rank run in
O(log n). Clients may additionally provide an Augmenter, a summary monoid
which is aggregated per subtree (counting or max-query variants).

Nodes live in an arena owned by the tree and reference each other through
handles. The parent link is a plain handle and never owns anything. An empty
tree still has a root: a placeholder node of height -1 which is reused in
place by the first insert and restored in place when the last entry is
removed.

Current status:
  - insert/remove/lookup with the classic four rotations,
  - subtree sizes and optional summaries maintained through rotations,
  - rank/select, min/max, in-order iteration with an explicit stack,
  - O(n) bulk build from sorted entries and merging of two trees,
  - arena capacity limits reported as ErrOutOfMemory,
  - structural invariant checker and Graphviz output for tests/debugging.

All algorithms are iterative except Build and Check, whose recursion depth is
bounded by the tree height.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package avl

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
