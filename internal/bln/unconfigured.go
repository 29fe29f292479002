package bln

import (
	"context"

	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Unconfigured is a Bridge that refuses every call, the default a daemon
// wires when no concrete Lightning connector was configured at startup.
type Unconfigured struct{}

func (Unconfigured) Quote(ctx context.Context, amountMsat uint64, payee string) (uint64, primitives.Duration, error) {
	return 0, 0, errs.New(errs.Bln, "no bln connector configured")
}

func (Unconfigured) Pay(ctx context.Context, invoice string, feeLimitMsat uint64, relTimeout primitives.Duration) (*primitives.Secret, error) {
	return nil, errs.New(errs.Bln, "no bln connector configured")
}

func (Unconfigured) Reveal(ctx context.Context, paymentHash primitives.Hash32) (*primitives.Secret, error) {
	return nil, errs.New(errs.Bln, "no bln connector configured")
}
