package avl

import "errors"

var (
	// ErrInvalidConfig signals an invalid tree configuration.
	ErrInvalidConfig = errors.New("avl: invalid configuration")
	// ErrDuplicateKey signals an insert of a key which is already present.
	ErrDuplicateKey = errors.New("avl: duplicate key")
	// ErrKeyNotFound signals a lookup or removal of an absent key.
	ErrKeyNotFound = errors.New("avl: key not found")
	// ErrIndexOutOfRange signals a rank outside [0, Len()).
	ErrIndexOutOfRange = errors.New("avl: index out of range")
	// ErrOutOfMemory signals that the node arena is exhausted. The tree is
	// left unmodified.
	ErrOutOfMemory = errors.New("avl: out of memory")
	// ErrNotSorted signals bulk-build input which is not strictly ascending.
	ErrNotSorted = errors.New("avl: entries not sorted")
	// ErrIncompatibleTrees signals a merge of trees with different configs.
	ErrIncompatibleTrees = errors.New("avl: incompatible trees")
)
