package avl

// handle addresses a node in the tree's arena.
type handle int32

const nilHandle handle = -1

type node[K, V, A any] struct {
	key   K
	value V
	// aug is the summary of the subtree rooted here; zero without Augmenter.
	aug A
	// left and right are owned by the tree; parent is a back-reference.
	left, right, parent handle
	// height is -1 for the empty placeholder, 0 for a leaf.
	height int32
	// size is the number of entries in the subtree rooted here.
	size int32
}

func (t *Tree[K, V, A]) height(h handle) int32 {
	if h == nilHandle {
		return -1
	}
	return t.nodes[h].height
}

func (t *Tree[K, V, A]) size(h handle) int32 {
	if h == nilHandle {
		return 0
	}
	return t.nodes[h].size
}

// balance returns height(left) - height(right).
func (t *Tree[K, V, A]) balance(h handle) int32 {
	n := &t.nodes[h]
	return t.height(n.left) - t.height(n.right)
}

// update recomputes the derived fields of h from its children.
func (t *Tree[K, V, A]) update(h handle) {
	n := &t.nodes[h]
	n.height = 1 + max(t.height(n.left), t.height(n.right))
	n.size = 1 + t.size(n.left) + t.size(n.right)
	if t.cfg.Augment != nil {
		s := t.cfg.Augment.FromValue(n.value)
		if n.left != nilHandle {
			s = t.cfg.Augment.Add(t.nodes[n.left].aug, s)
		}
		if n.right != nilHandle {
			s = t.cfg.Augment.Add(s, t.nodes[n.right].aug)
		}
		n.aug = s
	}
}

// alloc returns a fresh leaf slot, reusing released slots first.
//
// alloc must be called before any relinking, so that a failure leaves the tree
// untouched.
func (t *Tree[K, V, A]) alloc(key K, value V) (handle, error) {
	if t.cfg.MaxNodes > 0 && t.count >= t.cfg.MaxNodes {
		return nilHandle, ErrOutOfMemory
	}
	leaf := node[K, V, A]{
		key:    key,
		value:  value,
		left:   nilHandle,
		right:  nilHandle,
		parent: nilHandle,
		height: 0,
		size:   1,
	}
	if t.cfg.Augment != nil {
		leaf.aug = t.cfg.Augment.FromValue(value)
	}
	if t.free != nilHandle {
		h := t.free
		t.free = t.nodes[h].right
		t.nodes[h] = leaf
		return h, nil
	}
	t.nodes = append(t.nodes, leaf)
	return handle(len(t.nodes) - 1), nil
}

// release puts h on the free list. Key and value are cleared so the arena
// does not keep payloads alive.
func (t *Tree[K, V, A]) release(h handle) {
	t.nodes[h] = node[K, V, A]{
		left:   nilHandle,
		right:  t.free,
		parent: nilHandle,
		height: -1,
	}
	t.free = h
}

// placeholder turns h into the empty-tree root.
func (t *Tree[K, V, A]) placeholder(h handle) {
	var zk K
	var zv V
	n := &t.nodes[h]
	n.key, n.value = zk, zv
	n.left, n.right, n.parent = nilHandle, nilHandle, nilHandle
	n.height = -1
	n.size = 0
	if t.cfg.Augment != nil {
		n.aug = t.cfg.Augment.Zero()
	} else {
		var za A
		n.aug = za
	}
}

// replaceChild makes repl take old's place below parent (or at the root).
func (t *Tree[K, V, A]) replaceChild(parent, old, repl handle) {
	if parent == nilHandle {
		t.root = repl
	} else if t.nodes[parent].left == old {
		t.nodes[parent].left = repl
	} else {
		assert(t.nodes[parent].right == old, "replaceChild: old is not a child of parent")
		t.nodes[parent].right = repl
	}
	if repl != nilHandle {
		t.nodes[repl].parent = parent
	}
}

func (t *Tree[K, V, A]) leftmost(h handle) handle {
	for t.nodes[h].left != nilHandle {
		h = t.nodes[h].left
	}
	return h
}

func (t *Tree[K, V, A]) rightmost(h handle) handle {
	for t.nodes[h].right != nilHandle {
		h = t.nodes[h].right
	}
	return h
}
