package lineage

// Union merges the trees of buyerRoot and boughtRoot and returns the
// surviving root.
//
// Afterwards every record of the bought tree aggregates buyerSpirit composed
// on the left of its former element, and records of the buyer tree keep their
// aggregates. The root of the smaller tree (by buyerSize and boughtSize) is
// attached below the other one; ties favour the buyer. If either size is 0
// nothing is merged and the root of the non-empty side is returned, or None
// if both are empty.
//
// Counters of both roots must already include all pending per-tree
// contributions, as counters are merged relative to each other.
func (f *Forest[G]) Union(buyerRoot, boughtRoot Handle, buyerSize, boughtSize int,
	buyerSpirit, boughtSpirit G) Handle {
	//
	switch {
	case buyerSize == 0 && boughtSize == 0:
		return None
	case buyerSize == 0:
		return boughtRoot
	case boughtSize == 0:
		return buyerRoot
	}
	assert(f.IsRoot(buyerRoot) && f.IsRoot(boughtRoot), "Union: arguments must be roots")
	assert(buyerRoot != boughtRoot, "Union: cannot merge a tree with itself")
	buyer, bought := &f.recs[buyerRoot], &f.recs[boughtRoot]
	if buyerSize >= boughtSize {
		// bought root moves below the buyer root:
		// local(buyer) ∘ local'(bought) = buyerSpirit ∘ local(bought)
		bought.parent = buyerRoot
		bought.partial = f.group.Compose(buyerSpirit, bought.partial)
		bought.partial = f.group.Compose(f.group.Inverse(buyer.partial), bought.partial)
		bought.counter -= buyer.counter
		T().Debugf("lineage: union attaches %d below buyer %d (spirit %v)", boughtRoot, buyerRoot, boughtSpirit)
		return buyerRoot
	}
	// buyer root moves below the bought root:
	// local'(bought) = buyerSpirit ∘ local(bought)
	// local'(bought) ∘ local'(buyer) = local(buyer)
	buyer.parent = boughtRoot
	bought.partial = f.group.Compose(buyerSpirit, bought.partial)
	buyer.partial = f.group.Compose(f.group.Inverse(bought.partial), buyer.partial)
	buyer.counter -= bought.counter
	T().Debugf("lineage: union attaches buyer %d below %d (spirit %v)", buyerRoot, boughtRoot, boughtSpirit)
	return boughtRoot
}
