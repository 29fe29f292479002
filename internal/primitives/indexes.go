package primitives

import "github.com/cardano-lightning/konduit-go/internal/errs"

// Indexes is a strictly monotonically increasing sequence of u64 indices,
// capped at Params.MaxExcludeLength. It backs SquashBody.exclude. Both
// invariants (strict monotonicity, cardinality) are enforced once, at
// construction, rather than re-checked by every consumer — the same
// discipline lnwire constructors use for bounded-length protocol fields.
type Indexes struct {
	values []uint64
}

// NewIndexes validates and wraps a slice of indices. The input is copied;
// callers may reuse or mutate it afterwards.
func NewIndexes(params Params, values []uint64) (Indexes, error) {
	if len(values) > params.MaxExcludeLength {
		return Indexes{}, errs.New(errs.InvariantViolation, "indexes exceed max exclude length")
	}
	for i := 1; i < len(values); i++ {
		if values[i] <= values[i-1] {
			return Indexes{}, errs.New(errs.InvariantViolation, "indexes not strictly increasing")
		}
	}
	out := make([]uint64, len(values))
	copy(out, values)
	return Indexes{values: out}, nil
}

// Len returns the number of indices held.
func (ix Indexes) Len() int { return len(ix.values) }

// Values returns a read-only view of the underlying slice.
func (ix Indexes) Values() []uint64 { return ix.values }

// Contains reports whether i is a member of the set. Binary search is valid
// because construction guarantees sorted, strictly increasing order.
func (ix Indexes) Contains(i uint64) bool {
	lo, hi := 0, len(ix.values)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case ix.values[mid] == i:
			return true
		case ix.values[mid] < i:
			lo = mid + 1
		default:
			hi = mid
		}
	}
	return false
}

// Last returns the greatest index and true, or (0, false) if empty.
func (ix Indexes) Last() (uint64, bool) {
	if len(ix.values) == 0 {
		return 0, false
	}
	return ix.values[len(ix.values)-1], true
}
