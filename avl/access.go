package avl

import "fmt"

// Select returns the entry at in-order position rank.
//
// Valid ranks are 0 ≤ rank < Len(); others fail with ErrIndexOutOfRange.
func (t *Tree[K, V, A]) Select(rank int) (K, V, error) {
	var zk K
	var zv V
	if t == nil || rank < 0 || rank >= t.count {
		return zk, zv, fmt.Errorf("%w: %d", ErrIndexOutOfRange, rank)
	}
	h := t.selectNode(int32(rank))
	return t.nodes[h].key, t.nodes[h].value, nil
}

func (t *Tree[K, V, A]) selectNode(rank int32) handle {
	cur := t.root
	for cur != nilHandle {
		ls := t.size(t.nodes[cur].left)
		switch {
		case rank < ls:
			cur = t.nodes[cur].left
		case rank == ls:
			return cur
		default:
			rank -= ls + 1
			cur = t.nodes[cur].right
		}
	}
	assert(false, "selectNode rank routing exceeded subtree size")
	return nilHandle
}

// Rank returns the in-order position of key, or ErrKeyNotFound.
func (t *Tree[K, V, A]) Rank(key K) (int, error) {
	if t != nil && t.count > 0 {
		var rank int32
		cur := t.root
		for cur != nilHandle {
			n := &t.nodes[cur]
			c := t.cfg.Compare(key, n.key)
			switch {
			case c == 0:
				return int(rank + t.size(n.left)), nil
			case c < 0:
				cur = n.left
			default:
				rank += t.size(n.left) + 1
				cur = n.right
			}
		}
	}
	return -1, fmt.Errorf("%w: %v", ErrKeyNotFound, key)
}
