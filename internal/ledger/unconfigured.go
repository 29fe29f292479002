package ledger

import (
	"context"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Unconfigured is a Ledger that refuses every call, the default a daemon
// wires when no concrete ledger connector was configured at startup.
type Unconfigured struct{}

func (Unconfigured) ChannelUTxOs(ctx context.Context, subVkey primitives.VerificationKey) ([]channel.UTxO, error) {
	return nil, errs.New(errs.Ledger, "no ledger connector configured")
}

func (Unconfigured) Submit(ctx context.Context, tx []byte) error {
	return errs.New(errs.Ledger, "no ledger connector configured")
}
