// Package channel implements the on-chain channel state model —
// Stage/L1Channel/Constants/Datum/Keytag — and the adaptor's per-keytag
// channel aggregate built on top of it.
package channel

import (
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Used records that the adaptor has already subtracted on-chain against a
// given cheque index, so it is never sub-tracted twice.
type Used struct {
	Index  uint64
	Amount primitives.Lovelace
}

// Pending is a hash-locked obligation the adaptor has posted in a
// Responded stage: claimable by revealing secret before Timeout, or
// reclaimable by the consumer once it elapses.
type Pending struct {
	Amount  primitives.Lovelace
	Timeout primitives.Duration
	Lock    primitives.Lock
}

// StageKind discriminates the Stage sum type's three variants.
type StageKind int

const (
	StageOpened StageKind = iota
	StageClosed
	StageResponded
)

// Stage is the on-chain channel lifecycle state. Only the fields relevant
// to Kind are meaningful; this mirrors the teacher's tagged-union idiom
// of a discriminant plus variant-specific payload fields (see lnwire's
// per-message-type structs) rather than an interface hierarchy, since Go
// has no native sum types.
type Stage struct {
	Kind StageKind

	// Opened, Closed
	Subbed primitives.Lovelace
	Useds  []Used

	// Closed only
	ElapseAt primitives.Duration

	// Responded only
	PendingAmount primitives.Lovelace
	Pendings      []Pending
}

// NewOpened constructs an Opened stage.
func NewOpened(subbed primitives.Lovelace, useds []Used) Stage {
	return Stage{Kind: StageOpened, Subbed: subbed, Useds: useds}
}

// NewClosed constructs a Closed stage.
func NewClosed(subbed primitives.Lovelace, useds []Used, elapseAt primitives.Duration) Stage {
	return Stage{Kind: StageClosed, Subbed: subbed, Useds: useds, ElapseAt: elapseAt}
}

// NewResponded constructs a Responded stage.
func NewResponded(pendingAmount primitives.Lovelace, pendings []Pending) Stage {
	return Stage{Kind: StageResponded, PendingAmount: pendingAmount, Pendings: pendings}
}

// UsedIndices returns the set of indices already recorded in Useds.
func (s Stage) UsedIndices() map[uint64]struct{} {
	out := make(map[uint64]struct{}, len(s.Useds))
	for _, u := range s.Useds {
		out[u.Index] = struct{}{}
	}
	return out
}
