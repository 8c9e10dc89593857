/*
Package perm implements the symmetric group over five elements.

Permutations are used as non-numeric "spirit" values of players. Composition
is associative but not commutative, so the order of operands always matters:

	p.Compose(q)   // apply q first, then p

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package perm

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// N is the number of elements permuted.
const N = 5

// ErrInvalidPermutation signals malformed permutation input.
var ErrInvalidPermutation = errors.New("perm: invalid permutation")

// Permutation holds the images of 1..N: p[i] is the image of i+1.
//
// The zero value is not a valid permutation; use Identity().
type Permutation [N]int8

// Identity returns the neutral element.
func Identity() Permutation {
	return Permutation{1, 2, 3, 4, 5}
}

// Compose returns p∘q, i.e. (p∘q)(i) = p(q(i)).
func (p Permutation) Compose(q Permutation) Permutation {
	var r Permutation
	for i := range r {
		r[i] = p[q[i]-1]
	}
	return r
}

// Inverse returns the permutation r with p∘r = r∘p = Identity().
func (p Permutation) Inverse() Permutation {
	var r Permutation
	for i, img := range p {
		r[img-1] = int8(i + 1)
	}
	return r
}

// IsValid reports whether p is a bijection on 1..N.
func (p Permutation) IsValid() bool {
	var seen [N + 1]bool
	for _, img := range p {
		if img < 1 || img > N || seen[img] {
			return false
		}
		seen[img] = true
	}
	return true
}

// Strength is a scalar derived from p, used as a tie-break only.
// It counts the inversions of p, so Identity() has strength 0.
func (p Permutation) Strength() int {
	s := 0
	for i := 0; i < N; i++ {
		for j := i + 1; j < N; j++ {
			if p[i] > p[j] {
				s++
			}
		}
	}
	return s
}

// Equal reports whether p and q are the same permutation.
func (p Permutation) Equal(q Permutation) bool {
	return p == q
}

// String prints p in the format accepted by Parse.
func (p Permutation) String() string {
	var sb strings.Builder
	for i, img := range p {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.Itoa(int(img)))
	}
	return sb.String()
}

// Parse reads a permutation from a comma-separated list of images,
// e.g. "2,1,3,4,5".
func Parse(s string) (Permutation, error) {
	var p Permutation
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != N {
		return p, fmt.Errorf("%w: need %d images, have %d in %q", ErrInvalidPermutation, N, len(parts), s)
	}
	for i, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || n < 1 || n > N {
			return p, fmt.Errorf("%w: bad image %q in %q", ErrInvalidPermutation, part, s)
		}
		p[i] = int8(n)
	}
	if !p.IsValid() {
		return p, fmt.Errorf("%w: %q is not a bijection", ErrInvalidPermutation, s)
	}
	return p, nil
}

// Group exposes the permutation group operations to generic clients.
type Group struct{}

// Identity returns Identity().
func (Group) Identity() Permutation { return Identity() }

// Compose returns a∘b.
func (Group) Compose(a, b Permutation) Permutation { return a.Compose(b) }

// Inverse returns a⁻¹.
func (Group) Inverse(a Permutation) Permutation { return a.Inverse() }
