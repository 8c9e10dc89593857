package avl

// rebalanceFrom walks from h up to the root, recomputing derived fields and
// rotating every node whose balance factor reached ±2.
//
// The walk never stops early: sizes and summaries of all ancestors change
// with every insert or remove, even when heights do not.
func (t *Tree[K, V, A]) rebalanceFrom(h handle) {
	for cur := h; cur != nilHandle; {
		t.update(cur)
		bf := t.balance(cur)
		switch {
		case bf > 1:
			if t.balance(t.nodes[cur].left) < 0 {
				cur = t.rotateLeftRight(cur)
			} else {
				cur = t.rotateRight(cur)
			}
		case bf < -1:
			if t.balance(t.nodes[cur].right) > 0 {
				cur = t.rotateRightLeft(cur)
			} else {
				cur = t.rotateLeft(cur)
			}
		}
		assert(t.balance(cur) >= -1 && t.balance(cur) <= 1, "rebalanceFrom: rotation left node unbalanced")
		cur = t.nodes[cur].parent
	}
}

// rotateRight lifts the left child of x (left-left case) and returns it.
//
//	    x          y
//	   / \        / \
//	  y   c  →   a   x
//	 / \            / \
//	a   b          b   c
func (t *Tree[K, V, A]) rotateRight(x handle) handle {
	y := t.nodes[x].left
	assert(y != nilHandle, "rotateRight: missing left child")
	b := t.nodes[y].right
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[x].left = b
	if b != nilHandle {
		t.nodes[b].parent = x
	}
	t.nodes[y].right = x
	t.nodes[x].parent = y
	t.update(x)
	t.update(y)
	T().Debugf("avl: rotate right at slot %d", x)
	return y
}

// rotateLeft lifts the right child of x (right-right case) and returns it.
func (t *Tree[K, V, A]) rotateLeft(x handle) handle {
	y := t.nodes[x].right
	assert(y != nilHandle, "rotateLeft: missing right child")
	b := t.nodes[y].left
	t.replaceChild(t.nodes[x].parent, x, y)
	t.nodes[x].right = b
	if b != nilHandle {
		t.nodes[b].parent = x
	}
	t.nodes[y].left = x
	t.nodes[x].parent = y
	t.update(x)
	t.update(y)
	T().Debugf("avl: rotate left at slot %d", x)
	return y
}

// rotateLeftRight handles a left-heavy x with a right-heavy left child.
func (t *Tree[K, V, A]) rotateLeftRight(x handle) handle {
	t.rotateLeft(t.nodes[x].left)
	return t.rotateRight(x)
}

// rotateRightLeft handles a right-heavy x with a left-heavy right child.
func (t *Tree[K, V, A]) rotateRightLeft(x handle) handle {
	t.rotateRight(t.nodes[x].right)
	return t.rotateLeft(x)
}
