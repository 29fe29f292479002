package channel

import "github.com/cardano-lightning/konduit-go/internal/primitives"

// L1Channel is the observable state of one on-chain channel UTxO: its
// spendable value (the UTxO's balance minus the fixed min-reserve) and its
// current Stage.
type L1Channel struct {
	Amount primitives.Lovelace
	Stage  Stage
}

// UTxO is the ledger connector's view of a candidate channel output: an
// opaque reference plus the decoded datum it carries. Konduit does not
// interpret the reference itself — that is the ledger connector's
// concern — only compares/selects among the L1Channel/Constants values,
// and groups candidates by Keytag.
type UTxO struct {
	Ref       []byte
	Datum     Datum
	L1Channel L1Channel
}

// Keytag is the Keytag this candidate's datum declares.
func (u UTxO) Keytag() Keytag {
	return NewKeytag(u.Datum.Constants.AddVKey, u.Datum.Constants.Tag)
}
