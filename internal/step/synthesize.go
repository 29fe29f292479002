package step

import (
	"sort"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/receipt"
)

// Synthesize computes the next (Cont, L1Channel) transition for a channel
// currently at l1, given the adaptor's receipt, as of upperBound — the
// ambient clock at the upper bound of the enclosing transaction's validity
// interval. The third return value is false when no step applies and the
// other two are zero values.
func Synthesize(upperBound primitives.Duration, r receipt.Receipt, l1 channel.L1Channel) (Cont, channel.L1Channel, bool) {
	switch l1.Stage.Kind {
	case channel.StageOpened:
		return synthesizeOpened(r, l1)
	case channel.StageClosed:
		return synthesizeClosed(r, l1)
	case channel.StageResponded:
		return synthesizeResponded(upperBound, r, l1)
	default:
		return Cont{}, channel.L1Channel{}, false
	}
}

func synthesizeOpened(r receipt.Receipt, l1 channel.L1Channel) (Cont, channel.L1Channel, bool) {
	stage := l1.Stage
	usedIdx := stage.UsedIndices()

	var unlockedsPrime []cheque.Unlocked
	for _, u := range r.Unlockeds() {
		if _, used := usedIdx[u.Body.Index]; !used {
			unlockedsPrime = append(unlockedsPrime, u)
		}
	}

	usedsPrime := make([]channel.Used, 0, len(stage.Useds)+len(unlockedsPrime))
	for _, u := range stage.Useds {
		if !r.Squash.Body.Covers(u.Index) {
			usedsPrime = append(usedsPrime, u)
		}
	}
	for _, u := range unlockedsPrime {
		usedsPrime = append(usedsPrime, channel.Used{Index: u.Body.Index, Amount: u.Body.Amount})
	}
	sort.Slice(usedsPrime, func(i, j int) bool { return usedsPrime[i].Index < usedsPrime[j].Index })

	abs := r.Squash.Body.Amount
	for _, u := range usedsPrime {
		abs += u.Amount
	}
	if abs <= stage.Subbed {
		return Cont{}, channel.L1Channel{}, false
	}

	actuallySubable := primitives.Min(abs.SaturatingSub(stage.Subbed), l1.Amount)
	newL1 := channel.L1Channel{
		Amount: l1.Amount.SaturatingSub(actuallySubable),
		Stage:  channel.NewOpened(stage.Subbed+actuallySubable, usedsPrime),
	}
	cont := Cont{Kind: ContSub, Squash: r.Squash, Unlockeds: unlockedsPrime}
	return cont, newL1, true
}

func synthesizeClosed(r receipt.Receipt, l1 channel.L1Channel) (Cont, channel.L1Channel, bool) {
	stage := l1.Stage
	usedIdx := stage.UsedIndices()

	var cheques []cheque.Cheque
	var pendings []channel.Pending
	var unusedUnlockedAmount primitives.Lovelace
	for _, c := range r.Cheques {
		if _, used := usedIdx[c.Index()]; used {
			continue
		}
		cheques = append(cheques, c)
		if l, ok := c.AsLocked(); ok {
			pendings = append(pendings, channel.Pending{Amount: l.Body.Amount, Timeout: l.Body.Timeout, Lock: l.Body.Lock})
		} else if u, ok := c.AsUnlocked(); ok {
			unusedUnlockedAmount += u.Body.Amount
		}
	}

	abs := r.Squash.Body.Amount
	for _, u := range stage.Useds {
		if !r.Squash.Body.Covers(u.Index) {
			abs += u.Amount
		}
	}
	abs += unusedUnlockedAmount

	if stage.Subbed > abs && len(pendings) == 0 {
		return Cont{}, channel.L1Channel{}, false
	}

	var pendingAmount primitives.Lovelace
	for _, p := range pendings {
		pendingAmount += p.Amount
	}

	newL1 := channel.L1Channel{
		Amount: l1.Amount.SaturatingSub(unusedUnlockedAmount),
		Stage:  channel.NewResponded(pendingAmount, pendings),
	}
	cont := Cont{Kind: ContRespond, Squash: r.Squash, Cheques: cheques}
	return cont, newL1, true
}

func synthesizeResponded(upperBound primitives.Duration, r receipt.Receipt, l1 channel.L1Channel) (Cont, channel.L1Channel, bool) {
	stage := l1.Stage

	unpends := make([]Unpend, len(stage.Pendings))
	var keptPendings []channel.Pending
	var claim primitives.Lovelace
	for i, p := range stage.Pendings {
		if secret, ok := findSecret(r, p); ok {
			unpends[i] = Unpend{Kind: UnpendSecret, Secret: secret, Amount: p.Amount}
			claim += p.Amount
			continue
		}
		unpends[i] = Unpend{Kind: UnpendContinue, Amount: p.Amount}
		keptPendings = append(keptPendings, p)
	}
	if claim == 0 {
		return Cont{}, channel.L1Channel{}, false
	}

	var keptAmount primitives.Lovelace
	for _, p := range keptPendings {
		keptAmount += p.Amount
	}

	newL1 := channel.L1Channel{
		Amount: l1.Amount.SaturatingSub(claim),
		Stage:  channel.NewResponded(keptAmount, keptPendings),
	}
	cont := Cont{Kind: ContUnlock, Unpends: unpends}
	return cont, newL1, true
}

func findSecret(r receipt.Receipt, p channel.Pending) (primitives.Secret, bool) {
	for _, u := range r.Unlockeds() {
		if u.Secret.Matches(p.Lock) {
			return u.Secret, true
		}
	}
	return primitives.Secret{}, false
}

// SynthesizeExpire is the consumer-side counterpart of the Responded
// branch's unlock path, resolved against
// original_source/rust/crates/konduit-data/src/can_step.rs: a Responded
// pending whose timeout has passed as of lowerBound may be reclaimed by
// the consumer even though the adaptor never found its secret.
func SynthesizeExpire(lowerBound primitives.Duration, l1 channel.L1Channel) (Cont, channel.L1Channel, bool) {
	if l1.Stage.Kind != channel.StageResponded {
		return Cont{}, channel.L1Channel{}, false
	}
	stage := l1.Stage

	unpends := make([]Unpend, len(stage.Pendings))
	var keptPendings []channel.Pending
	var claim primitives.Lovelace
	for i, p := range stage.Pendings {
		if p.Timeout.Before(lowerBound) {
			unpends[i] = Unpend{Kind: UnpendExpire, Amount: p.Amount}
			claim += p.Amount
			continue
		}
		unpends[i] = Unpend{Kind: UnpendContinue, Amount: p.Amount}
		keptPendings = append(keptPendings, p)
	}
	if claim == 0 {
		return Cont{}, channel.L1Channel{}, false
	}

	var keptAmount primitives.Lovelace
	for _, p := range keptPendings {
		keptAmount += p.Amount
	}

	newL1 := channel.L1Channel{
		Amount: l1.Amount.SaturatingSub(claim),
		Stage:  channel.NewResponded(keptAmount, keptPendings),
	}
	cont := Cont{Kind: ContExpire, Unpends: unpends}
	return cont, newL1, true
}

// SynthesizeEol decides whether a channel has reached end of life as of
// lowerBound: an Opened channel the consumer has fully withdrawn from
// (End, collapsing the UTxO), or a Responded channel whose every pending
// has either been claimed already or whose timeout has passed (Elapse,
// returning whatever pending_amount remains to the consumer). Grounded on
// original_source/rust/crates/konduit-data/src/can_step.rs.
func SynthesizeEol(lowerBound primitives.Duration, l1 channel.L1Channel) (Eol, bool) {
	switch l1.Stage.Kind {
	case channel.StageOpened:
		if l1.Amount == 0 {
			return Eol{Kind: EolEnd}, true
		}
	case channel.StageResponded:
		for _, p := range l1.Stage.Pendings {
			if !p.Timeout.Before(lowerBound) {
				return Eol{}, false
			}
		}
		return Eol{Kind: EolElapse}, true
	}
	return Eol{}, false
}
