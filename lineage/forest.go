package lineage

import "fmt"

// Group is the algebra of the elements folded along paths.
//
// Compose must be associative with Identity as neutral element, and
// Compose(a, Inverse(a)) must equal Identity(). Commutativity is not required.
type Group[G any] interface {
	Identity() G
	Compose(a, b G) G
	Inverse(a G) G
}

// Handle addresses a record of a forest.
type Handle int32

// None is the handle of no record.
const None Handle = -1

type record[G any] struct {
	parent  Handle // None for roots
	counter int64  // relative to parent
	partial G      // relative to parent
}

// Forest is an arena of union-find records.
//
// The forest is not safe for concurrent use.
type Forest[G any] struct {
	group Group[G]
	recs  []record[G]
}

// New creates an empty forest over the given group.
func New[G any](group Group[G]) (*Forest[G], error) {
	if group == nil {
		return nil, ErrInvalidGroup
	}
	return &Forest[G]{group: group}, nil
}

// Len returns the number of records ever added.
func (f *Forest[G]) Len() int {
	return len(f.recs)
}

// Add creates a new root record.
func (f *Forest[G]) Add(counter int64, partial G) Handle {
	f.recs = append(f.recs, record[G]{parent: None, counter: counter, partial: partial})
	return Handle(len(f.recs) - 1)
}

// Attach creates a new record directly below parent. counter and partial are
// relative to parent.
func (f *Forest[G]) Attach(parent Handle, counter int64, partial G) Handle {
	assert(f.valid(parent), "Attach: parent is not a record of this forest")
	f.recs = append(f.recs, record[G]{parent: parent, counter: counter, partial: partial})
	return Handle(len(f.recs) - 1)
}

// Check returns ErrUnknownHandle if h was not issued by f.
func (f *Forest[G]) Check(h Handle) error {
	if !f.valid(h) {
		return fmt.Errorf("%w: %d", ErrUnknownHandle, h)
	}
	return nil
}

func (f *Forest[G]) valid(h Handle) bool {
	return h >= 0 && int(h) < len(f.recs)
}

// Parent returns the parent of h, or None for a root.
func (f *Forest[G]) Parent(h Handle) Handle {
	return f.recs[h].parent
}

// IsRoot reports whether h has no parent.
func (f *Forest[G]) IsRoot(h Handle) bool {
	return f.recs[h].parent == None
}

// Local returns the counter and group element of h relative to its parent.
func (f *Forest[G]) Local(h Handle) (int64, G) {
	r := &f.recs[h]
	return r.counter, r.partial
}

// AddCounter adds delta to the local counter of h. Applied to a root, it
// shifts the aggregate counter of every record of the tree.
func (f *Forest[G]) AddCounter(h Handle, delta int64) {
	f.recs[h].counter += delta
}

// Fold returns the aggregate counter and group element of h, folding every
// record from the root down to h. The forest is not modified.
func (f *Forest[G]) Fold(h Handle) (int64, G) {
	assert(f.valid(h), "Fold: unknown handle")
	r := &f.recs[h]
	sum, elem := r.counter, r.partial
	for p := r.parent; p != None; p = f.recs[p].parent {
		sum += f.recs[p].counter
		elem = f.group.Compose(f.recs[p].partial, elem)
	}
	return sum, elem
}

// Find returns the root of h's tree and compresses the path: every record
// visited is re-attached directly below the root, with the values of the
// skipped ancestors folded into its own. Aggregates are unchanged.
func (f *Forest[G]) Find(h Handle) Handle {
	assert(f.valid(h), "Find: unknown handle")
	var path []Handle
	cur := h
	for f.recs[cur].parent != None {
		path = append(path, cur)
		cur = f.recs[cur].parent
	}
	root := cur
	// path[len-1] is a child of the root already; walk downwards from there
	for i := len(path) - 2; i >= 0; i-- {
		up, r := &f.recs[path[i+1]], &f.recs[path[i]]
		r.counter += up.counter
		r.partial = f.group.Compose(up.partial, r.partial)
		r.parent = root
	}
	return root
}
