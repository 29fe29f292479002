// Package consumer implements the consumer-side on-chain transaction
// synthesis: open, add, close. Unlike internal/step
// (the adaptor's side of channel evolution), these three operations are
// consumer-initiated and need no receipt at all — they only touch the
// Datum and attached lovelace of a channel UTxO.
package consumer

import (
	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// MinAdaBuffer is the fixed reserve every channel output carries on top
// of its declared spendable amount, so the UTxO always meets the ledger's
// minimum-ADA requirement regardless of how far the channel has been
// spent down. Grounded on the original implementation's konduit-tx shared
// constant of the same name (2,000,000 lovelace).
const MinAdaBuffer primitives.Lovelace = 2_000_000

// Open builds the datum and attached lovelace for a brand new channel
// output: Stage::Opened(0, []), no useds yet, value amount+MinAdaBuffer.
// ownHash is the script hash of the channel validator's own locking
// credential, supplied by the caller's ledger connector since it depends
// on the network the transaction is being built for.
func Open(ownHash primitives.Hash28, tag primitives.Tag, addVKey, subVKey primitives.VerificationKey, closePeriod primitives.Duration, amount primitives.Lovelace) (channel.Datum, primitives.Lovelace) {
	datum := channel.Datum{
		OwnHash: ownHash,
		Constants: channel.Constants{
			Tag:         tag,
			AddVKey:     addVKey,
			SubVKey:     subVKey,
			ClosePeriod: closePeriod,
		},
		Stage: channel.NewOpened(0, nil),
	}
	return datum, amount + MinAdaBuffer
}

// Add spends the matching channel UTxO and re-emits it with the same
// datum (stage and subbed untouched) and increased value. existingValue is the
// channel's current on-chain value (spendable amount plus MinAdaBuffer,
// i.e. the full UTxO lovelace).
func Add(datum channel.Datum, existingValue primitives.Lovelace, amount primitives.Lovelace) (channel.Datum, primitives.Lovelace) {
	return datum, existingValue + amount
}

// Close transitions Opened(subbed, useds) -> Closed(subbed, useds,
// upperBound+closePeriod), the only stage change a consumer ever
// initiates directly. It returns an error if the channel is not
// currently Opened.
func Close(datum channel.Datum, upperBound primitives.Duration) (channel.Datum, error) {
	if datum.Stage.Kind != channel.StageOpened {
		return datum, errs.New(errs.InvariantViolation, "close requires an Opened channel")
	}
	elapseAt := upperBound + datum.Constants.ClosePeriod
	datum.Stage = channel.NewClosed(datum.Stage.Subbed, datum.Stage.Useds, elapseAt)
	return datum, nil
}

// ReconcileCheque pairs a locally-drafted cheque body with the adaptor's
// last confirmed cheque for the same index and refuses to proceed if they
// disagree, so a consumer never signs a body the adaptor would reject as
// a conflicting rewrite of an index it already holds.
func ReconcileCheque(draft cheque.Body, confirmed *cheque.Cheque) (cheque.Mixed, error) {
	mixed := cheque.Mixed{Draft: draft, Confirmed: confirmed}
	if !mixed.Agrees() {
		return mixed, errs.New(errs.InvariantViolation, "drafted cheque body disagrees with adaptor's confirmed cheque at this index")
	}
	return mixed, nil
}
