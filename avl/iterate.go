package avl

import "iter"

// Entry is a key/value pair, used for bulk building and in-order export.
type Entry[K, V any] struct {
	Key   K
	Value V
}

// ForEach walks entries in-order.
//
// Iteration stops early if callback returns false.
func (t *Tree[K, V, A]) ForEach(fn func(key K, value V) bool) {
	if t == nil || t.count == 0 || fn == nil {
		return
	}
	stack := make([]handle, 0, t.nodes[t.root].height+1)
	cur := t.root
	for cur != nilHandle || len(stack) > 0 {
		for cur != nilHandle {
			stack = append(stack, cur)
			cur = t.nodes[cur].left
		}
		cur = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !fn(t.nodes[cur].key, t.nodes[cur].value) {
			return
		}
		cur = t.nodes[cur].right
	}
}

// All returns an iterator over all entries in key order.
func (t *Tree[K, V, A]) All() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		t.ForEach(yield)
	}
}

// Entries returns all entries in key order.
func (t *Tree[K, V, A]) Entries() []Entry[K, V] {
	out := make([]Entry[K, V], 0, t.Len())
	t.ForEach(func(key K, value V) bool {
		out = append(out, Entry[K, V]{Key: key, Value: value})
		return true
	})
	return out
}
