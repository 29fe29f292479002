// Package cheque implements the signed-IOU data model of a payment
// channel: a cheque binds an index, amount, timeout, and hashlock, and is
// presented either locked (signed only) or unlocked (signed, with the
// preimage revealed).
package cheque

import (
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Body is the common payload every cheque variant signs over. Field order
// is part of the signing preimage and of the encoded representation:
// index, amount, timeout, lock.
type Body struct {
	Index   uint64
	Amount  primitives.Lovelace
	Timeout primitives.Duration
	Lock    primitives.Lock
}

// Equal reports whether two bodies carry identical fields.
func (b Body) Equal(other Body) bool {
	return b.Index == other.Index &&
		b.Amount == other.Amount &&
		b.Timeout == other.Timeout &&
		b.Lock == other.Lock
}

// Less orders bodies lexicographically by (index, amount, timeout, lock).
func (b Body) Less(other Body) bool {
	if b.Index != other.Index {
		return b.Index < other.Index
	}
	if b.Amount != other.Amount {
		return b.Amount < other.Amount
	}
	if b.Timeout != other.Timeout {
		return b.Timeout < other.Timeout
	}
	return b.Lock.Less(other.Lock)
}
