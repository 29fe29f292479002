// Package bln declares the contract the adaptor uses to reach the
// Lightning-style payment network: quoting a route, paying an invoice,
// and recovering a payment's preimage after the fact. The concrete
// binding lives outside the core — the Lightning connector is an
// external collaborator, not a package this repo ships.
package bln

import (
	"context"

	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Bridge is the adaptor's view of the BLN. Every method may block on
// network IO and must be bounded by ctx: a BLN call that does not return
// in time surfaces as errs.Bln, not an ApiError — the adaptor, not the
// consumer, owns that failure.
type Bridge interface {
	// Quote produces a routing estimate for paying amountMsat to payee
	// without reserving any route or balance.
	Quote(ctx context.Context, amountMsat uint64, payee string) (feeMsat uint64, relTimeout primitives.Duration, err error)

	// Pay attempts the payment described by invoice, refusing routes
	// whose fee exceeds feeLimitMsat or whose timeout exceeds relTimeout.
	// On success it returns the revealed preimage.
	Pay(ctx context.Context, invoice string, feeLimitMsat uint64, relTimeout primitives.Duration) (*primitives.Secret, error)

	// Reveal looks up a payment's preimage by its hash, for recovering a
	// locked cheque's secret after a Pay call was interrupted.
	Reveal(ctx context.Context, paymentHash primitives.Hash32) (*primitives.Secret, error)
}
