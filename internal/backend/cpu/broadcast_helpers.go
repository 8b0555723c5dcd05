package cpu

// BroadcastPlan describes how two batch axes line up in a batched product.
//
// Invariant: EffectiveBatchSize == max(lhs, rhs) and each side is either equal
// to it or exactly 1. A side broadcasts iff its batch size is 1 and
// EffectiveBatchSize > 1.
type BroadcastPlan struct {
	EffectiveBatchSize int
	LhsBroadcasts      bool
	RhsBroadcasts      bool
}

// ResolveBroadcast derives the BroadcastPlan for batch sizes lhsBatch and rhsBatch.
//
// Only the "1 vs N" pattern is broadcast: batch sizes such as 2 and 3 fail
// with *UnsupportedBroadcastError (shapes are left for the caller to fill in).
//
// Examples:
//
//	(4, 4) → {4, false, false}
//	(1, 4) → {4, true, false}
//	(4, 1) → {4, false, true}
//	(1, 1) → {1, false, false}
//	(2, 3) → error
func ResolveBroadcast(lhsBatch, rhsBatch int) (BroadcastPlan, error) {
	effective := max(lhsBatch, rhsBatch)
	if (lhsBatch != effective && lhsBatch != 1) || (rhsBatch != effective && rhsBatch != 1) {
		return BroadcastPlan{}, &UnsupportedBroadcastError{LhsBatch: lhsBatch, RhsBatch: rhsBatch}
	}
	return BroadcastPlan{
		EffectiveBatchSize: effective,
		LhsBroadcasts:      lhsBatch == 1 && effective > 1,
		RhsBroadcasts:      rhsBatch == 1 && effective > 1,
	}, nil
}

// lhsIndex returns the lhs batch slice feeding output batch b.
func (p BroadcastPlan) lhsIndex(b int) int {
	if p.LhsBroadcasts {
		return 0
	}
	return b
}

// rhsIndex returns the rhs batch slice feeding output batch b.
func (p BroadcastPlan) rhsIndex(b int) int {
	if p.RhsBroadcasts {
		return 0
	}
	return b
}
