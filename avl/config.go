package avl

import "fmt"

// Augmenter defines an optional summary aggregated over every subtree.
//
// For summaries s, t, u, Add should be associative:
//
//	Add(Add(s, t), u) == Add(s, Add(t, u))
//
// and Zero should be the neutral element:
//
//	Add(Zero(), s) == s == Add(s, Zero())
//
// Add is always called with summaries in key order (left subtree, node,
// right subtree), so non-commutative summaries are supported.
type Augmenter[V, A any] interface {
	Zero() A
	FromValue(V) A
	Add(left, right A) A
}

// NO_AUG is the summary type for trees without augmentation.
type NO_AUG struct{}

// Config configures an AVL tree.
type Config[K, V, A any] struct {
	// Compare orders keys. It must return a negative number, zero or a
	// positive number, like cmp.Compare. Keys comparing equal are duplicates.
	Compare func(a, b K) int
	// Augment is an optional subtree summary. May be nil.
	Augment Augmenter[V, A]
	// MaxNodes bounds the number of live nodes. 0 means unbounded.
	MaxNodes int
}

func (cfg Config[K, V, A]) normalized() Config[K, V, A] {
	if cfg.MaxNodes < 0 {
		cfg.MaxNodes = 0
	}
	return cfg
}

func (cfg Config[K, V, A]) validate() error {
	if cfg.Compare == nil {
		return fmt.Errorf("%w: compare function is required", ErrInvalidConfig)
	}
	if cfg.MaxNodes < 0 {
		return fmt.Errorf("%w: negative node limit %d", ErrInvalidConfig, cfg.MaxNodes)
	}
	return nil
}
