/*
Package directory implements a resizable hash directory of integer ids.

The directory is an array of 2^k − 1 buckets, each bucket being an AVL tree
keyed by id. A bucket is chosen by a murmur3 hash of the id. When the number
of entries would reach the number of buckets, k is incremented and all
entries are rehashed into the larger array.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package directory

import (
	"encoding/binary"
	"fmt"
	"iter"

	"github.com/npillmayer/roster/avl"
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
	"github.com/spaolacci/murmur3"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

// Config configures a directory.
type Config struct {
	// InitialExponent k gives 2^k − 1 initial buckets. 0 means 3.
	InitialExponent int
	// MaxNodesPerBucket bounds every bucket tree. 0 means unbounded.
	MaxNodesPerBucket int
}

const (
	defaultExponent = 3
	maxExponent     = 30
)

func (cfg Config) normalized() Config {
	if cfg.InitialExponent == 0 {
		cfg.InitialExponent = defaultExponent
	}
	return cfg
}

func (cfg Config) validate() error {
	if cfg.InitialExponent < 0 || cfg.InitialExponent == 1 || cfg.InitialExponent > maxExponent {
		return fmt.Errorf("%w: initial exponent %d not in [2,%d]", avl.ErrInvalidConfig,
			cfg.InitialExponent, maxExponent)
	}
	if cfg.MaxNodesPerBucket < 0 {
		return fmt.Errorf("%w: negative bucket limit %d", avl.ErrInvalidConfig, cfg.MaxNodesPerBucket)
	}
	return nil
}

// Directory maps integer ids to values of type V.
//
// The directory is not safe for concurrent use.
type Directory[V any] struct {
	cfg     Config
	exp     int
	buckets []*avl.Tree[int, V, avl.NO_AUG] // nil until first used
	count   int
}

// New creates an empty directory.
func New[V any](cfg Config) (*Directory[V], error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.normalized()
	d := &Directory[V]{cfg: cfg, exp: cfg.InitialExponent}
	d.buckets = make([]*avl.Tree[int, V, avl.NO_AUG], bucketCount(d.exp))
	return d, nil
}

func bucketCount(exp int) int {
	return 1<<exp - 1
}

func bucketIndex(id, n int) int {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(id))
	return int(murmur3.Sum32(b[:]) % uint32(n))
}

// Len returns the number of entries.
func (d *Directory[V]) Len() int {
	return d.count
}

// Buckets returns the current number of buckets.
func (d *Directory[V]) Buckets() int {
	return len(d.buckets)
}

// Insert adds v under id. It fails with avl.ErrDuplicateKey if id is present
// and with avl.ErrOutOfMemory if a bucket is full; the directory is unchanged
// in both cases.
func (d *Directory[V]) Insert(id int, v V) error {
	if d.Contains(id) {
		return fmt.Errorf("%w: id %d", avl.ErrDuplicateKey, id)
	}
	if d.count+1 >= len(d.buckets) {
		larger, err := d.rehashed()
		if err != nil {
			return err
		}
		if err := d.insertInto(larger, id, v); err != nil {
			return err
		}
		d.exp++
		d.buckets = larger
		d.count++
		T().Debugf("directory: enlarged to %d buckets for %d entries", len(larger), d.count)
		return nil
	}
	if err := d.insertInto(d.buckets, id, v); err != nil {
		return err
	}
	d.count++
	return nil
}

func (d *Directory[V]) insertInto(buckets []*avl.Tree[int, V, avl.NO_AUG], id int, v V) error {
	i := bucketIndex(id, len(buckets))
	if buckets[i] == nil {
		t, err := avl.New(avl.Config[int, V, avl.NO_AUG]{
			Compare:  avl.CompareInt,
			MaxNodes: d.cfg.MaxNodesPerBucket,
		})
		if err != nil {
			return err
		}
		buckets[i] = t
	}
	return buckets[i].Insert(id, v)
}

// rehashed copies every entry into a fresh array of 2^(k+1) − 1 buckets.
// The current buckets are not touched.
func (d *Directory[V]) rehashed() ([]*avl.Tree[int, V, avl.NO_AUG], error) {
	if d.exp >= maxExponent {
		return nil, fmt.Errorf("%w: directory cannot grow beyond 2^%d buckets", avl.ErrOutOfMemory, maxExponent)
	}
	larger := make([]*avl.Tree[int, V, avl.NO_AUG], bucketCount(d.exp+1))
	for id, v := range d.All() {
		if err := d.insertInto(larger, id, v); err != nil {
			return nil, err
		}
	}
	return larger, nil
}

func (d *Directory[V]) bucketOf(id int) *avl.Tree[int, V, avl.NO_AUG] {
	return d.buckets[bucketIndex(id, len(d.buckets))]
}

// Find returns the value for id, or avl.ErrKeyNotFound.
func (d *Directory[V]) Find(id int) (V, error) {
	b := d.bucketOf(id)
	if b == nil {
		var zero V
		return zero, fmt.Errorf("%w: id %d", avl.ErrKeyNotFound, id)
	}
	return b.Find(id)
}

// Contains reports whether id is present.
func (d *Directory[V]) Contains(id int) bool {
	b := d.bucketOf(id)
	return b != nil && b.Contains(id)
}

// Remove deletes id, or fails with avl.ErrKeyNotFound. The directory never
// shrinks.
func (d *Directory[V]) Remove(id int) error {
	b := d.bucketOf(id)
	if b == nil {
		return fmt.Errorf("%w: id %d", avl.ErrKeyNotFound, id)
	}
	if err := b.Remove(id); err != nil {
		return err
	}
	d.count--
	return nil
}

// All iterates over all entries, bucket by bucket. Order between buckets is
// unspecified.
func (d *Directory[V]) All() iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		for _, b := range d.buckets {
			if b == nil {
				continue
			}
			for id, v := range b.All() {
				if !yield(id, v) {
					return
				}
			}
		}
	}
}
