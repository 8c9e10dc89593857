package avl

import (
	"fmt"
)

// Tree is an augmented AVL tree with order-statistic queries.
//
// K is the key type ordered by Config.Compare, V the payload type and A the
// optional subtree summary type (use NO_AUG without augmentation).
//
// The tree is not safe for concurrent use. A nil *Tree reads as an empty tree;
// Insert on it fails with ErrInvalidConfig.
type Tree[K, V, A any] struct {
	cfg   Config[K, V, A]
	nodes []node[K, V, A] // arena; nodes[root] always exists
	root  handle
	free  handle // head of released slots, chained through right
	count int
}

// New creates an empty tree with validated configuration.
func New[K, V, A any](cfg Config[K, V, A]) (*Tree[K, V, A], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	t := &Tree[K, V, A]{cfg: cfg.normalized()}
	t.reset()
	return t, nil
}

func (t *Tree[K, V, A]) reset() {
	t.nodes = t.nodes[:0]
	t.nodes = append(t.nodes, node[K, V, A]{})
	t.root = 0
	t.free = nilHandle
	t.count = 0
	t.placeholder(t.root)
}

// Config returns a copy of the effective tree configuration.
func (t *Tree[K, V, A]) Config() Config[K, V, A] {
	if t == nil {
		return Config[K, V, A]{}
	}
	return t.cfg
}

// Len returns the number of entries in the tree.
func (t *Tree[K, V, A]) Len() int {
	if t == nil {
		return 0
	}
	return t.count
}

// IsEmpty reports whether the tree has no entries.
func (t *Tree[K, V, A]) IsEmpty() bool {
	return t.Len() == 0
}

// Height returns the height of the root, where -1 means empty and 0 means a
// single entry.
func (t *Tree[K, V, A]) Height() int {
	if t == nil {
		return -1
	}
	return int(t.nodes[t.root].height)
}

// Summary returns the root summary, or Zero() for an empty tree.
func (t *Tree[K, V, A]) Summary() A {
	var zero A
	if t == nil || t.cfg.Augment == nil {
		return zero
	}
	if t.count == 0 {
		return t.cfg.Augment.Zero()
	}
	return t.nodes[t.root].aug
}

// Clear removes all entries. The placeholder root is restored in place.
func (t *Tree[K, V, A]) Clear() {
	if t == nil {
		return
	}
	t.reset()
}

// Insert adds value under key.
//
// It fails with ErrDuplicateKey if key is already present and with
// ErrOutOfMemory if the arena limit is reached. In both cases the tree is
// unchanged.
func (t *Tree[K, V, A]) Insert(key K, value V) error {
	if t == nil {
		return fmt.Errorf("%w: insert into nil tree", ErrInvalidConfig)
	}
	if t.count == 0 {
		// reuse the placeholder root, no allocation needed
		n := &t.nodes[t.root]
		n.key, n.value = key, value
		n.left, n.right, n.parent = nilHandle, nilHandle, nilHandle
		t.count = 1
		t.update(t.root)
		return nil
	}
	parent, c := nilHandle, 0
	for cur := t.root; cur != nilHandle; {
		c = t.cfg.Compare(key, t.nodes[cur].key)
		if c == 0 {
			return fmt.Errorf("%w: %v", ErrDuplicateKey, key)
		}
		parent = cur
		if c < 0 {
			cur = t.nodes[cur].left
		} else {
			cur = t.nodes[cur].right
		}
	}
	leaf, err := t.alloc(key, value)
	if err != nil {
		T().Debugf("avl: insert of %v failed: arena limit %d reached", key, t.cfg.MaxNodes)
		return fmt.Errorf("%w: limit of %d nodes reached", err, t.cfg.MaxNodes)
	}
	t.nodes[leaf].parent = parent
	if c < 0 {
		t.nodes[parent].left = leaf
	} else {
		t.nodes[parent].right = leaf
	}
	t.count++
	t.rebalanceFrom(parent)
	return nil
}

// Remove deletes the entry for key, or fails with ErrKeyNotFound.
func (t *Tree[K, V, A]) Remove(key K) error {
	h := t.lookup(key)
	if h == nilHandle {
		return fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	if t.count == 1 {
		assert(h == t.root, "Remove: single entry is not the root")
		t.placeholder(t.root)
		t.count = 0
		return nil
	}
	fix := t.unlink(h)
	t.release(h)
	t.count--
	t.rebalanceFrom(fix)
	return nil
}

// unlink detaches h from the tree using the three classic cases and returns
// the deepest node whose subtree changed.
func (t *Tree[K, V, A]) unlink(h handle) handle {
	n := t.nodes[h]
	switch {
	case n.left == nilHandle && n.right == nilHandle:
		t.replaceChild(n.parent, h, nilHandle)
		return n.parent
	case n.left == nilHandle || n.right == nilHandle:
		child := n.left
		if child == nilHandle {
			child = n.right
		}
		t.replaceChild(n.parent, h, child)
		if n.parent == nilHandle {
			return child
		}
		return n.parent
	}
	// two children: the in-order successor takes h's place
	succ := t.leftmost(n.right)
	var fix handle
	if succ == n.right {
		fix = succ
	} else {
		sp := t.nodes[succ].parent
		sr := t.nodes[succ].right
		t.nodes[sp].left = sr
		if sr != nilHandle {
			t.nodes[sr].parent = sp
		}
		t.nodes[succ].right = n.right
		t.nodes[n.right].parent = succ
		fix = sp
	}
	t.nodes[succ].left = n.left
	t.nodes[n.left].parent = succ
	t.replaceChild(n.parent, h, succ)
	return fix
}

// lookup returns the handle for key or nilHandle.
func (t *Tree[K, V, A]) lookup(key K) handle {
	if t == nil || t.count == 0 {
		return nilHandle
	}
	cur := t.root
	for cur != nilHandle {
		c := t.cfg.Compare(key, t.nodes[cur].key)
		switch {
		case c == 0:
			return cur
		case c < 0:
			cur = t.nodes[cur].left
		default:
			cur = t.nodes[cur].right
		}
	}
	return nilHandle
}

// Find returns the value stored under key, or ErrKeyNotFound.
func (t *Tree[K, V, A]) Find(key K) (V, error) {
	h := t.lookup(key)
	if h == nilHandle {
		var zero V
		return zero, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
	}
	return t.nodes[h].value, nil
}

// Contains reports whether key is present.
func (t *Tree[K, V, A]) Contains(key K) bool {
	return t.lookup(key) != nilHandle
}

// Min returns the smallest entry, or ErrKeyNotFound for an empty tree.
func (t *Tree[K, V, A]) Min() (K, V, error) {
	if t == nil || t.count == 0 {
		var zk K
		var zv V
		return zk, zv, fmt.Errorf("%w: tree is empty", ErrKeyNotFound)
	}
	n := &t.nodes[t.leftmost(t.root)]
	return n.key, n.value, nil
}

// Max returns the largest entry, or ErrKeyNotFound for an empty tree.
func (t *Tree[K, V, A]) Max() (K, V, error) {
	if t == nil || t.count == 0 {
		var zk K
		var zv V
		return zk, zv, fmt.Errorf("%w: tree is empty", ErrKeyNotFound)
	}
	n := &t.nodes[t.rightmost(t.root)]
	return n.key, n.value, nil
}
