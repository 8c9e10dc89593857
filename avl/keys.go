package avl

import "cmp"

// CompareInt orders plain integer ids.
func CompareInt(a, b int) int {
	return cmp.Compare(a, b)
}

// DualKey orders by Secondary first and uses ID as tie-break. Equal secondary
// keys never make two entries equal.
type DualKey struct {
	Secondary int
	ID        int
}

// CompareDual orders dual keys lexicographically by (Secondary, ID).
func CompareDual(a, b DualKey) int {
	if c := cmp.Compare(a.Secondary, b.Secondary); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// TripleKey orders by First, then Second, then ID.
type TripleKey struct {
	First  int
	Second int
	ID     int
}

// CompareTriple orders triple keys lexicographically by (First, Second, ID).
func CompareTriple(a, b TripleKey) int {
	if c := cmp.Compare(a.First, b.First); c != 0 {
		return c
	}
	if c := cmp.Compare(a.Second, b.Second); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}
