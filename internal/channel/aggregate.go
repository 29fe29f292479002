package channel

import (
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/receipt"
	"github.com/cardano-lightning/konduit-go/internal/squash"
)

// Aggregate is the adaptor's per-keytag account: the best currently-known
// on-chain retainer, the debt receipt owed against it, and whether the
// adaptor is currently willing to accept new work on it.
//
// A nil Retainer or Receipt means "not yet known" — most operations
// require both to be present.
type Aggregate struct {
	Key primitives.VerificationKey
	Tag primitives.Tag

	Retainer *L1Channel
	Receipt  *receipt.Receipt
	IsActive bool

	params primitives.Params
}

// NewAggregate opens a fresh aggregate for a keytag. Aggregates start
// active; an operator deactivates one to stop issuing new locked cheques
// against it without forgetting its history.
func NewAggregate(params primitives.Params, key primitives.VerificationKey, tag primitives.Tag) *Aggregate {
	return &Aggregate{Key: key, Tag: tag, IsActive: true, params: params}
}

// stageSubbedUseds extracts the subbed counter and used-index set a Stage
// carries, if any. Responded carries neither.
func stageSubbedUseds(s Stage) (primitives.Lovelace, map[uint64]struct{}) {
	switch s.Kind {
	case StageOpened, StageClosed:
		return s.Subbed, s.UsedIndices()
	default:
		return 0, nil
	}
}

// UpdateRetainer selects the best L1Channel among candidates to back this
// aggregate: maximise the lexicographic key
// (min(potentially_subable(useds) − l1.subbed, l1.amount), l1.amount).
// With no receipt yet, it picks by l1.amount alone. A nil/empty candidate
// list leaves the current retainer untouched.
func (a *Aggregate) UpdateRetainer(candidates []L1Channel) {
	if len(candidates) == 0 {
		return
	}
	if a.Receipt == nil {
		best := candidates[0]
		for _, c := range candidates[1:] {
			if c.Amount > best.Amount {
				best = c
			}
		}
		a.Retainer = &best
		return
	}

	var (
		bestSet  bool
		best     L1Channel
		bestKey1 primitives.Lovelace
	)
	for _, c := range candidates {
		subbed, useds := stageSubbedUseds(c.Stage)
		subable := a.Receipt.PotentiallySubable(useds)
		key1 := primitives.Min(subable.SaturatingSub(subbed), c.Amount)
		if !bestSet || key1 > bestKey1 || (key1 == bestKey1 && c.Amount > best.Amount) {
			best, bestKey1, bestSet = c, key1, true
		}
	}
	a.Retainer = &best
}

// UpdateSquash verifies newSquash against (key, tag) and folds it into the
// receipt, creating one if none exists yet. Returns whether the receipt's
// state actually changed.
func (a *Aggregate) UpdateSquash(newSquash squash.Squash) (bool, error) {
	if err := newSquash.Verify(a.Key, a.Tag); err != nil {
		return false, err
	}
	if a.Receipt == nil {
		r := receipt.New(a.params, newSquash)
		a.Receipt = &r
		return true, nil
	}
	return a.Receipt.UpdateSquash(newSquash), nil
}

// Capacity is the maximum additional lovelace this channel may commit to
// new locked cheques: retainer.amount − (receipt.potentially_subable(useds)
// − retainer.subbed), saturating at zero.
func (a *Aggregate) Capacity() (primitives.Lovelace, error) {
	if a.Retainer == nil || a.Receipt == nil {
		return 0, errs.New(errs.NoRetainer, "channel has no retainer or receipt")
	}
	subbed, useds := stageSubbedUseds(a.Retainer.Stage)
	subable := a.Receipt.PotentiallySubable(useds)
	return a.Retainer.Amount.SaturatingSub(subable.SaturatingSub(subbed)), nil
}

// NextIndex is max(receipt.max_index, retainer.useds.last.index) + 1.
func (a *Aggregate) NextIndex() (uint64, error) {
	if a.Retainer == nil || a.Receipt == nil {
		return 0, errs.New(errs.NoRetainer, "channel has no retainer or receipt")
	}
	max := a.Receipt.MaxIndex()
	_, useds := stageSubbedUseds(a.Retainer.Stage)
	for idx := range useds {
		if idx > max {
			max = idx
		}
	}
	return max + 1, nil
}

// AppendLocked verifies locked's signature and freshness, checks its
// amount against Capacity, and pushes it onto the receipt.
func (a *Aggregate) AppendLocked(locked cheque.Locked, now primitives.Duration) error {
	if err := locked.VerifyFresh(a.Key, a.Tag, now); err != nil {
		return err
	}
	capacity, err := a.Capacity()
	if err != nil {
		return err
	}
	if locked.Body.Amount > capacity {
		return errs.New(errs.Capacity, "locked cheque amount exceeds channel capacity")
	}
	if a.Receipt == nil {
		return errs.New(errs.NoReceipt, "channel has no receipt")
	}
	return a.Receipt.AppendLocked(locked)
}

// Unlock delegates to the receipt, failing with NoReceipt if none exists.
func (a *Aggregate) Unlock(secret primitives.Secret) error {
	if a.Receipt == nil {
		return errs.New(errs.NoReceipt, "channel has no receipt")
	}
	return a.Receipt.Unlock(secret)
}

// Params returns the cardinality limits this aggregate validates against.
func (a *Aggregate) Params() primitives.Params {
	return a.params
}

// Deactivate stops the aggregate from accepting new locked cheques while
// preserving its retainer and receipt history.
func (a *Aggregate) Deactivate() {
	a.IsActive = false
}

// Reactivate resumes accepting new locked cheques.
func (a *Aggregate) Reactivate() {
	a.IsActive = true
}
