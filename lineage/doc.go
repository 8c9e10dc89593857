/*
Package lineage implements a union-find forest with algebraic path
compression.

Every record carries a local additive counter and a local group element,
both expressed relative to the record's parent. The true aggregate of a
record is the ordered fold of local values from its forest root down to the
record itself:

	counter(x) = local(root) + … + local(parent(x)) + local(x)
	element(x) = local(root) ∘ … ∘ local(parent(x)) ∘ local(x)

The group need not be commutative; ancestors always appear on the left.
Find compresses paths by folding the values of skipped ancestors into each
visited record, so aggregates never change under compression.

Records live in an arena owned by the forest and are addressed by Handle.
A parent link is a plain handle; records are never freed individually.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package lineage

import (
	"errors"

	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

var (
	// ErrInvalidGroup signals a forest created without group operations.
	ErrInvalidGroup = errors.New("lineage: group operations required")
	// ErrUnknownHandle signals a handle not issued by this forest.
	ErrUnknownHandle = errors.New("lineage: unknown handle")
)

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
