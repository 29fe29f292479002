package step

// RedeemerKind discriminates the Redeemer sum type spent against a
// channel UTxO.
type RedeemerKind int

const (
	// RedeemerDefer marks an input validated by another input's Main
	// redeemer rather than carrying its own step.
	RedeemerDefer RedeemerKind = iota
	// RedeemerMain carries the ordered list of steps for every channel
	// input in a multi-channel transaction.
	RedeemerMain
	// RedeemerMutual is a consumer/adaptor jointly-signed spend outside
	// the step contract (e.g. a mutual close).
	RedeemerMutual
)

// Redeemer is the on-chain spend authorization for a channel UTxO.
type Redeemer struct {
	Kind  RedeemerKind
	Steps []Step // RedeemerMain only, one per channel input in input order
}
