package avl

import "fmt"

// Check validates structural tree invariants.
//
// This checker is intentionally strict and should be used in tests. It
// verifies parent links, key order, heights, balance factors and subtree
// sizes. Summaries are not compared, as A carries no equality.
func (t *Tree[K, V, A]) Check() error {
	if t == nil {
		return fmt.Errorf("%w: nil tree", ErrInvalidConfig)
	}
	if t.root == nilHandle || int(t.root) >= len(t.nodes) {
		return fmt.Errorf("%w: root handle %d outside arena", ErrInvalidConfig, t.root)
	}
	root := &t.nodes[t.root]
	if t.count == 0 {
		if root.height != -1 || root.size != 0 {
			return fmt.Errorf("%w: empty tree must have placeholder root (height=%d size=%d)",
				ErrInvalidConfig, root.height, root.size)
		}
		return nil
	}
	if root.parent != nilHandle {
		return fmt.Errorf("%w: root has parent %d", ErrInvalidConfig, root.parent)
	}
	height, size, err := t.checkNode(t.root, nilHandle)
	if err != nil {
		return err
	}
	if int(size) != t.count {
		return fmt.Errorf("%w: size mismatch (%d != %d)", ErrInvalidConfig, size, t.count)
	}
	if height != root.height {
		return fmt.Errorf("%w: height mismatch (%d != %d)", ErrInvalidConfig, height, root.height)
	}
	return t.checkOrder()
}

func (t *Tree[K, V, A]) checkNode(h, parent handle) (height int32, size int32, err error) {
	if h == nilHandle {
		return -1, 0, nil
	}
	n := &t.nodes[h]
	if n.parent != parent {
		return 0, 0, fmt.Errorf("%w: slot %d has parent %d, expected %d", ErrInvalidConfig, h, n.parent, parent)
	}
	lh, ls, err := t.checkNode(n.left, h)
	if err != nil {
		return 0, 0, err
	}
	rh, rs, err := t.checkNode(n.right, h)
	if err != nil {
		return 0, 0, err
	}
	if bf := lh - rh; bf < -1 || bf > 1 {
		return 0, 0, fmt.Errorf("%w: slot %d has balance factor %d", ErrInvalidConfig, h, bf)
	}
	height = 1 + max(lh, rh)
	size = 1 + ls + rs
	if n.height != height {
		return 0, 0, fmt.Errorf("%w: slot %d caches height %d, is %d", ErrInvalidConfig, h, n.height, height)
	}
	if n.size != size {
		return 0, 0, fmt.Errorf("%w: slot %d caches size %d, is %d", ErrInvalidConfig, h, n.size, size)
	}
	return height, size, nil
}

func (t *Tree[K, V, A]) checkOrder() error {
	var prev K
	first := true
	var err error
	t.ForEach(func(key K, _ V) bool {
		if !first && t.cfg.Compare(prev, key) >= 0 {
			err = fmt.Errorf("%w: keys out of order at %v", ErrInvalidConfig, key)
			return false
		}
		prev, first = key, false
		return true
	})
	return err
}
