// Package receipt implements the adaptor-side debt ledger: the current
// countersigned squash plus the ordered cheques issued since. A Receipt
// is owned by exactly one channel aggregate and is mutated only through
// this package's methods.
package receipt

import (
	"sort"

	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/squash"
)

// Receipt is the adaptor's provable set of outstanding obligations for one
// channel: the current squash plus the ordered list of cheques it does not
// yet cover.
type Receipt struct {
	Squash  squash.Squash
	Cheques []cheque.Cheque

	maxUnsquashed int
}

// New creates an initial receipt with no cheques. The squash is trusted —
// the caller must already have verified its signature.
func New(params primitives.Params, sq squash.Squash) Receipt {
	return Receipt{Squash: sq, maxUnsquashed: params.MaxUnsquashed}
}

// NewWithCheques builds a receipt from a pre-existing squash and cheque
// set, validating that no cheque index is squashed by sq.Body, indices
// are pairwise distinct, and the count does not exceed MaxUnsquashed. On
// success cheques are sorted ascending by index.
func NewWithCheques(params primitives.Params, sq squash.Squash, cheques []cheque.Cheque) (Receipt, error) {
	if len(cheques) > params.MaxUnsquashed {
		return Receipt{}, errs.New(errs.InvariantViolation, "too many unsquashed cheques")
	}
	sorted := make([]cheque.Cheque, len(cheques))
	copy(sorted, cheques)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Less(sorted[j]) })

	seen := make(map[uint64]struct{}, len(sorted))
	for _, c := range sorted {
		idx := c.Index()
		if sq.Body.Covers(idx) {
			return Receipt{}, errs.New(errs.InvariantViolation, "cheque index already squashed")
		}
		if _, dup := seen[idx]; dup {
			return Receipt{}, errs.New(errs.InvariantViolation, "duplicate cheque index")
		}
		seen[idx] = struct{}{}
	}
	return Receipt{Squash: sq, Cheques: sorted, maxUnsquashed: params.MaxUnsquashed}, nil
}

// maxCap returns the configured MaxUnsquashed, defaulting to the reference
// value if the receipt was constructed via the zero value in a test.
func (r Receipt) maxCap() int {
	if r.maxUnsquashed == 0 {
		return primitives.DefaultParams().MaxUnsquashed
	}
	return r.maxUnsquashed
}

// MaxIndex returns max(squash.body.index, cheques.last?.index).
func (r Receipt) MaxIndex() uint64 {
	max := r.Squash.Body.Index
	if n := len(r.Cheques); n > 0 {
		if last := r.Cheques[n-1].Index(); last > max {
			max = last
		}
	}
	return max
}

// Owed is squash.body.amount + sum(amount of unlocked cheques).
func (r Receipt) Owed() primitives.Lovelace {
	owed := r.Squash.Body.Amount
	for _, c := range r.Cheques {
		if c.IsUnlocked() {
			owed += c.Body().Amount
		}
	}
	return owed
}

// Committed is squash.body.amount + sum(amount of all cheques).
func (r Receipt) Committed() primitives.Lovelace {
	committed := r.Squash.Body.Amount
	for _, c := range r.Cheques {
		committed += c.Body().Amount
	}
	return committed
}

// Unlockeds returns every Unlocked cheque currently on file, in index
// order.
func (r Receipt) Unlockeds() []cheque.Unlocked {
	var out []cheque.Unlocked
	for _, c := range r.Cheques {
		if u, ok := c.AsUnlocked(); ok {
			out = append(out, u)
		}
	}
	return out
}

// LockedIndices returns the indices of every currently-Locked cheque.
func (r Receipt) LockedIndices() []uint64 {
	var out []uint64
	for _, c := range r.Cheques {
		if _, ok := c.AsLocked(); ok {
			out = append(out, c.Index())
		}
	}
	return out
}

// Insert places a Locked cheque at its sorted position by index, rejecting
// a duplicate index. Unlike AppendLocked this does not require the new
// cheque to be the highest-indexed one on file.
func (r *Receipt) Insert(l cheque.Locked) error {
	idx := l.Body.Index
	if r.Squash.Body.Covers(idx) {
		return errs.New(errs.InvariantViolation, "cheque index already squashed")
	}
	pos := sort.Search(len(r.Cheques), func(i int) bool { return r.Cheques[i].Index() >= idx })
	if pos < len(r.Cheques) && r.Cheques[pos].Index() == idx {
		return errs.New(errs.InvariantViolation, "duplicate cheque index")
	}
	if len(r.Cheques) >= r.maxCap() {
		return errs.New(errs.InvariantViolation, "receipt cheque count at capacity")
	}
	r.Cheques = append(r.Cheques, cheque.Cheque{})
	copy(r.Cheques[pos+1:], r.Cheques[pos:])
	r.Cheques[pos] = cheque.FromLocked(l)
	return nil
}

// AppendLocked is the optimized insertion path: it requires
// locked.index > MaxIndex() and simply pushes. The caller must already
// have verified the cheque's signature and timeout.
func (r *Receipt) AppendLocked(l cheque.Locked) error {
	if l.Body.Index <= r.MaxIndex() {
		return errs.New(errs.InvariantViolation, "append requires a strictly higher index")
	}
	if len(r.Cheques) >= r.maxCap() {
		return errs.New(errs.InvariantViolation, "receipt cheque count at capacity")
	}
	r.Cheques = append(r.Cheques, cheque.FromLocked(l))
	return nil
}

// Unlock promotes every Locked cheque whose lock matches sha256(secret) to
// Unlocked. It fails if no cheque changed state.
func (r *Receipt) Unlock(secret primitives.Secret) error {
	lock := primitives.NewLock(secret)
	changed := false
	for i, c := range r.Cheques {
		l, ok := c.AsLocked()
		if !ok || l.Body.Lock != lock {
			continue
		}
		u, err := cheque.FromLocked(l, secret)
		if err != nil {
			return err
		}
		r.Cheques[i] = cheque.FromUnlocked(u)
		changed = true
	}
	if !changed {
		return errs.New(errs.InvariantViolation, "secret does not unlock any cheque")
	}
	return nil
}

// Timeout drops every Locked cheque whose timeout has elapsed as of now.
// Unlocked cheques are never dropped by timeout.
func (r *Receipt) Timeout(now primitives.Duration) {
	kept := r.Cheques[:0]
	for _, c := range r.Cheques {
		if l, ok := c.AsLocked(); ok && !l.Body.Timeout.After(now) {
			continue
		}
		kept = append(kept, c)
	}
	r.Cheques = kept
}

// UpdateSquash accepts newSquash iff its amount covers the old squash's
// amount plus the amount of every cheque it newly squashes. On acceptance
// it replaces the squash and drops the now-covered cheques, returning
// true; otherwise it leaves the receipt unchanged and returns false.
func (r *Receipt) UpdateSquash(newSquash squash.Squash) bool {
	var squashedAmount primitives.Lovelace
	var kept []cheque.Cheque
	for _, c := range r.Cheques {
		if newSquash.Body.Covers(c.Index()) {
			squashedAmount += c.Body().Amount
		} else {
			kept = append(kept, c)
		}
	}
	required := r.Squash.Body.Amount + squashedAmount
	if newSquash.Body.Amount < required {
		return false
	}
	r.Squash = newSquash
	r.Cheques = kept
	return true
}

// PotentiallySubable is the total lovelace the channel aggregate's
// capacity and retainer-selection computations treat as eventually destined for the
// on-chain subbed counter: the squash amount plus every
// cheque — locked or unlocked — not already recorded in usedIndices. A
// locked cheque still reserves capacity, since the consumer can unlock it
// with its secret at any point before its timeout. usedIndices is the
// on-chain Stage's Used set, so a cheque the adaptor has already
// subtracted against is not double-counted.
func (r Receipt) PotentiallySubable(usedIndices map[uint64]struct{}) primitives.Lovelace {
	total := r.Squash.Body.Amount
	for _, c := range r.Cheques {
		if _, used := usedIndices[c.Index()]; used {
			continue
		}
		total += c.Body().Amount
	}
	return total
}

// Proposal is the result of SquashProposal: the squash body the adaptor
// wants the consumer to countersign, alongside the evidence the client
// needs to re-verify before signing it.
type Proposal struct {
	Proposal  squash.Body
	Current   squash.Squash
	Unlockeds []cheque.Unlocked
}

// SquashProposal computes the next squash the adaptor will ask the
// consumer to countersign: index = max(squash.index, last_unlocked.index),
// amount = owed, exclude = locked indices below
// that index (cheques the adaptor has not yet been given a secret for,
// and therefore cannot fold into the proposed amount).
func (r Receipt) SquashProposal(params primitives.Params) (Proposal, error) {
	index := r.Squash.Body.Index
	unlockeds := r.Unlockeds()
	if n := len(unlockeds); n > 0 {
		if last := unlockeds[n-1].Body.Index; last > index {
			index = last
		}
	}
	var excludeVals []uint64
	for _, i := range r.LockedIndices() {
		if i < index {
			excludeVals = append(excludeVals, i)
		}
	}
	sort.Slice(excludeVals, func(i, j int) bool { return excludeVals[i] < excludeVals[j] })
	exclude, err := primitives.NewIndexes(params, excludeVals)
	if err != nil {
		return Proposal{}, err
	}
	body, err := squash.NewBody(r.Owed(), index, exclude)
	if err != nil {
		return Proposal{}, err
	}
	return Proposal{Proposal: body, Current: r.Squash, Unlockeds: unlockeds}, nil
}
