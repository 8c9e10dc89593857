package avl

import "fmt"

// Build creates a tree from entries in strictly ascending key order in O(n).
//
// Every sub-range is rooted at its middle element, which yields a tree of
// minimal height. Unsorted input or duplicate keys fail with ErrNotSorted;
// more entries than cfg.MaxNodes fail with ErrOutOfMemory.
func Build[K, V, A any](cfg Config[K, V, A], entries []Entry[K, V]) (*Tree[K, V, A], error) {
	t, err := New(cfg)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return t, nil
	}
	if t.cfg.MaxNodes > 0 && len(entries) > t.cfg.MaxNodes {
		return nil, fmt.Errorf("%w: %d entries exceed limit of %d nodes",
			ErrOutOfMemory, len(entries), t.cfg.MaxNodes)
	}
	for i := 1; i < len(entries); i++ {
		if t.cfg.Compare(entries[i-1].Key, entries[i].Key) >= 0 {
			return nil, fmt.Errorf("%w: at index %d", ErrNotSorted, i)
		}
	}
	// slot i holds entries[i]; slot 0 replaces the placeholder
	t.nodes = make([]node[K, V, A], len(entries))
	for i, e := range entries {
		t.nodes[i] = node[K, V, A]{
			key:    e.Key,
			value:  e.Value,
			left:   nilHandle,
			right:  nilHandle,
			parent: nilHandle,
		}
	}
	t.root = t.buildRange(0, len(entries)-1, nilHandle)
	t.count = len(entries)
	T().Debugf("avl: built tree of %d entries, height %d", t.count, t.Height())
	return t, nil
}

// buildRange links nodes[lo..hi] below parent and returns the subtree root.
func (t *Tree[K, V, A]) buildRange(lo, hi int, parent handle) handle {
	if lo > hi {
		return nilHandle
	}
	mid := lo + (hi-lo)/2
	h := handle(mid)
	t.nodes[h].parent = parent
	t.nodes[h].left = t.buildRange(lo, mid-1, h)
	t.nodes[h].right = t.buildRange(mid+1, hi, h)
	t.update(h)
	return h
}

// Merge combines two trees into a new one in O(n+m). Neither input is
// modified. Keys present in both trees fail with ErrDuplicateKey.
//
// Both trees must share the same compare function semantics; the
// configuration of a is used for the result.
func Merge[K, V, A any](a, b *Tree[K, V, A]) (*Tree[K, V, A], error) {
	if a == nil || b == nil {
		return nil, fmt.Errorf("%w: nil tree", ErrIncompatibleTrees)
	}
	left, right := a.Entries(), b.Entries()
	merged := make([]Entry[K, V], 0, len(left)+len(right))
	i, j := 0, 0
	for i < len(left) && j < len(right) {
		c := a.cfg.Compare(left[i].Key, right[j].Key)
		switch {
		case c < 0:
			merged = append(merged, left[i])
			i++
		case c > 0:
			merged = append(merged, right[j])
			j++
		default:
			return nil, fmt.Errorf("%w: %v present in both trees", ErrDuplicateKey, left[i].Key)
		}
	}
	merged = append(merged, left[i:]...)
	merged = append(merged, right[j:]...)
	return Build(a.cfg, merged)
}
