// Package withlnd documents the concrete shape the adaptor's BLN bridge
// binds to in production: an LND client, quoting routes via
// router.EstimateRouteFee, paying via router.SendPaymentV2, and
// recovering preimages via lookupInvoice. konduit-go does not ship an
// LND RPC client — that belongs to the connector layer outside this
// repo's scope — but keeps Mock here as a programmable bln.Bridge test
// double, mirroring htlcswitch/mock.go's role in the teacher. No
// production code imports it, and no test in this repo currently does
// either.
package withlnd

import (
	"context"
	"sync"

	"github.com/cardano-lightning/konduit-go/internal/bln"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

var _ bln.Bridge = (*Mock)(nil)

// Mock is an in-memory bln.Bridge stand-in. Responses are pre-programmed
// per invoice/payment-hash before the test drives the code under test.
type Mock struct {
	mu sync.Mutex

	quotes  map[string]quoteResp
	pays    map[string]payResp
	reveals map[primitives.Hash32]*primitives.Secret
}

type quoteResp struct {
	feeMsat    uint64
	relTimeout primitives.Duration
	err        error
}

type payResp struct {
	secret *primitives.Secret
	err    error
}

// NewMock returns an empty Mock; use the With* methods to program
// responses before invoking it.
func NewMock() *Mock {
	return &Mock{
		quotes:  make(map[string]quoteResp),
		pays:    make(map[string]payResp),
		reveals: make(map[primitives.Hash32]*primitives.Secret),
	}
}

// WithQuote programs the response for a future Quote(_, _, payee) call.
func (m *Mock) WithQuote(payee string, feeMsat uint64, relTimeout primitives.Duration, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.quotes[payee] = quoteResp{feeMsat: feeMsat, relTimeout: relTimeout, err: err}
	return m
}

// WithPay programs the response for a future Pay(_, invoice, ...) call.
func (m *Mock) WithPay(invoice string, secret *primitives.Secret, err error) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pays[invoice] = payResp{secret: secret, err: err}
	return m
}

// WithReveal programs the response for a future Reveal(_, paymentHash).
func (m *Mock) WithReveal(paymentHash primitives.Hash32, secret *primitives.Secret) *Mock {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reveals[paymentHash] = secret
	return m
}

// Quote implements bln.Bridge.
func (m *Mock) Quote(ctx context.Context, amountMsat uint64, payee string) (uint64, primitives.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp, ok := m.quotes[payee]
	if !ok {
		return 0, 0, errs.New(errs.Bln, "withlnd mock: no quote programmed for payee")
	}
	return resp.feeMsat, resp.relTimeout, resp.err
}

// Pay implements bln.Bridge.
func (m *Mock) Pay(ctx context.Context, invoice string, feeLimitMsat uint64, relTimeout primitives.Duration) (*primitives.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	resp, ok := m.pays[invoice]
	if !ok {
		return nil, errs.New(errs.Bln, "withlnd mock: no pay response programmed for invoice")
	}
	return resp.secret, resp.err
}

// Reveal implements bln.Bridge.
func (m *Mock) Reveal(ctx context.Context, paymentHash primitives.Hash32) (*primitives.Secret, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	secret, ok := m.reveals[paymentHash]
	if !ok {
		return nil, nil
	}
	return secret, nil
}
