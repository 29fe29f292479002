// Package squash implements the consumer's countersigned debt compression
// model and its partial order over compression states.
package squash

import (
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Body is the squash's signed claim: "I owe you amount, and this
// summarizes every cheque with index <= index except those in exclude."
type Body struct {
	Amount  primitives.Lovelace
	Index   uint64
	Exclude primitives.Indexes
}

// NewBody validates and constructs a SquashBody. Every element of exclude
// must be < index; this is enforced here so no downstream consumer needs
// to re-check it.
func NewBody(amount primitives.Lovelace, index uint64, exclude primitives.Indexes) (Body, error) {
	for _, i := range exclude.Values() {
		if i >= index {
			return Body{}, errs.New(errs.InvariantViolation, "exclude entry not less than index")
		}
	}
	return Body{Amount: amount, Index: index, Exclude: exclude}, nil
}

// Covers reports whether index i is summarized by this body: i <= b.Index
// and i is not a member of b.Exclude.
func (b Body) Covers(i uint64) bool {
	return i <= b.Index && !b.Exclude.Contains(i)
}

// LessOrEqual implements the partial order a <= b: a.index <= b.index,
// and every index covered by a is also covered by b. Rather
// than scanning every integer in [0, a.index] (which could be astronomical
// for a sparse, high-index channel), this is reduced to a containment
// check over the two exclude sets: a-covered ⊆ b-covered holds exactly
// when every index other excludes at or below a's index is also excluded
// by a — any index other does NOT exclude in that range is, by
// construction, covered by both.
func (b Body) LessOrEqual(other Body) bool {
	if b.Index > other.Index {
		return false
	}
	for _, i := range other.Exclude.Values() {
		if i > b.Index {
			break
		}
		if !b.Exclude.Contains(i) {
			return false
		}
	}
	return true
}
