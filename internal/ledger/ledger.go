// Package ledger declares the contract the adaptor and consumer
// orchestration layers use to reach the L1 settlement ledger: reading
// candidate channel UTxOs and submitting signed transactions. The
// concrete connector lives outside the core.
package ledger

import (
	"context"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Ledger is the adaptor's view of the UTxO settlement layer.
type Ledger interface {
	// ChannelUTxOs returns every channel UTxO whose datum's sub_vkey
	// matches subVkey — the candidate set the channel aggregate's
	// UpdateRetainer chooses among.
	ChannelUTxOs(ctx context.Context, subVkey primitives.VerificationKey) ([]channel.UTxO, error)

	// Submit broadcasts a fully-signed transaction. A non-nil error means
	// the transaction was not accepted; callers must not assume partial
	// application.
	Submit(ctx context.Context, tx []byte) error
}
