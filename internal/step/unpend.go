package step

import "github.com/cardano-lightning/konduit-go/internal/primitives"

// UnpendKind discriminates the Unpend sum type: the per-pending
// classification the Responded stage's synthesis performs.
type UnpendKind int

const (
	// UnpendContinue means the pending's timeout has not passed and no
	// secret is yet known for it; it stays pending unchanged.
	UnpendContinue UnpendKind = iota
	// UnpendSecret means the adaptor found the pending's preimage among
	// the receipt's unlocked cheques and can reveal it on-chain.
	UnpendSecret
	// UnpendExpire means the pending's timeout is in the past as of the
	// synthesis lower bound; the consumer may reclaim it.
	UnpendExpire
)

// Unpend is one entry of a Cont::Unlock/Cont::Expire redeemer payload, one
// per pending in the Responded stage's original order.
type Unpend struct {
	Kind   UnpendKind
	Secret primitives.Secret
	Amount primitives.Lovelace
}
