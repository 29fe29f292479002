package httpapi

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/codec"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/receipt"
	"github.com/cardano-lightning/konduit-go/internal/squash"
	"github.com/cardano-lightning/konduit-go/konduitlog"
)

// adaptorTimeDelta is the fixed cushion the adaptor adds on top of the
// BLN's own quoted relative timeout, so a cheque's on-chain claim window
// comfortably outlives the Lightning payment's own HTLC expiry. Grounded
// on the original implementation's ADAPTOR_TIME_DELTA (40 blocks at the
// chain's target ~10min spacing).
const adaptorTimeDelta primitives.Duration = 40 * 10 * 60 * 1000

type channelParameters struct {
	AdaptorKey  string `json:"adaptor_key"`
	ClosePeriod uint64 `json:"close_period"`
	TagLength   int    `json:"tag_length"`
}

type tosInfo struct {
	FlatFee uint64 `json:"flat_fee"`
}

type infoResponse struct {
	ChannelParameters channelParameters `json:"channel_parameters"`
	Tos               tosInfo           `json:"tos"`
}

type quoteRequest struct {
	Bolt11 string `json:"Bolt11"`
}

type quoteResponse struct {
	Index           uint64              `json:"index"`
	Amount          primitives.Lovelace `json:"amount"`
	RelativeTimeout uint64              `json:"relative_timeout"`
	RoutingFee      uint64              `json:"routing_fee"`
}

type payRequest struct {
	Invoice    string      `json:"invoice"`
	ChequeBody cheque.Body `json:"cheque_body"`
	Signature  primitives.Signature `json:"signature"`
}

// squashStatusKind discriminates the SquashStatus sum type:
// Complete | Incomplete{proposal, current, unlockeds} | Stale{...}.
type squashStatusKind int

const (
	squashComplete squashStatusKind = iota
	squashIncomplete
	squashStale
)

type squashStatus struct {
	kind     squashStatusKind
	proposal receipt.Proposal
}

func (s squashStatus) MarshalJSON() ([]byte, error) {
	type body struct {
		Status    string            `json:"status"`
		Proposal  squash.Body       `json:"proposal,omitempty"`
		Current   squash.Squash     `json:"current,omitempty"`
		Unlockeds []cheque.Unlocked `json:"unlockeds,omitempty"`
	}
	switch s.kind {
	case squashComplete:
		return json.Marshal(body{Status: "complete"})
	case squashIncomplete:
		return json.Marshal(body{Status: "incomplete", Proposal: s.proposal.Proposal, Current: s.proposal.Current, Unlockeds: s.proposal.Unlockeds})
	default:
		return json.Marshal(body{Status: "stale", Proposal: s.proposal.Proposal, Current: s.proposal.Current, Unlockeds: s.proposal.Unlockeds})
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		konduitlog.HTTPLog.Errorf("encoding response: %v", err)
	}
}

func (s *Server) writeSquashStatus(w http.ResponseWriter, agg *channel.Aggregate, kind squashStatusKind) {
	if kind == squashComplete {
		writeJSON(w, http.StatusOK, squashStatus{kind: squashComplete})
		return
	}
	params := agg.Params()
	proposal, err := agg.Receipt.SquashProposal(params)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, squashStatus{kind: kind, proposal: proposal})
}

// respondSquashStatus reports Complete if the receipt has no outstanding
// unlocked cheques left to fold into a squash, Incomplete with the next
// proposal otherwise.
func (s *Server) respondSquashStatus(w http.ResponseWriter, agg *channel.Aggregate) {
	if agg.Receipt == nil || len(agg.Receipt.Unlockeds()) == 0 {
		s.writeSquashStatus(w, agg, squashComplete)
		return
	}
	s.writeSquashStatus(w, agg, squashIncomplete)
}

// handleReceipt is GET /ch/receipt: returns the channel's current receipt,
// or JSON null if none has been recorded yet.
func (s *Server) handleReceipt(w http.ResponseWriter, r *http.Request, kt keytagCtx) {
	agg := s.orchestrator.Aggregate(kt.Key, kt.Tag)
	writeJSON(w, http.StatusOK, agg.Receipt)
}

// handleQuote is POST /ch/quote: decode the bolt11 invoice, ask the
// Lightning bridge for a routing estimate, and translate it into the
// index/amount/timeout a consumer should sign the next cheque for.
// Lovelace/millisatoshi conversion is a placeholder rate of one lovelace
// per satoshi (1000 msat), rounding down — real FX
// quoting belongs to the ledger/BLN connectors, not this core.
func (s *Server) handleQuote(w http.ResponseWriter, r *http.Request, kt keytagCtx) {
	var req quoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.New(errs.InvariantViolation, "malformed quote request body"))
		return
	}
	invoice, err := decodeBolt11(req.Bolt11)
	if err != nil {
		writeError(w, errs.New(errs.InvariantViolation, "malformed or incomplete bolt11 invoice"))
		return
	}
	amountMsat := invoice.AmountMsat
	payee := invoice.Payee

	feeMsat, relTimeout, err := s.bridge.Quote(r.Context(), amountMsat, payee)
	if err != nil {
		writeError(w, errs.Wrap(errs.Bln, "quote", err))
		return
	}

	agg := s.orchestrator.Aggregate(kt.Key, kt.Tag)
	index, err := agg.NextIndex()
	if err != nil {
		writeError(w, err)
		return
	}

	amountLovelace := primitives.Lovelace((amountMsat+feeMsat)/1000) + s.info.FlatFee
	writeJSON(w, http.StatusOK, quoteResponse{
		Index:           index,
		Amount:          amountLovelace,
		RelativeTimeout: uint64(adaptorTimeDelta + relTimeout),
		RoutingFee:      feeMsat,
	})
}

// handlePay is POST /ch/pay: verify the consumer's signed cheque body,
// record it as a locked cheque, attempt the Lightning payment, and on
// success unlock the cheque with the revealed secret. The response is the
// channel's resulting SquashStatus, same shape as /ch/squash.
func (s *Server) handlePay(w http.ResponseWriter, r *http.Request, kt keytagCtx) {
	var req payRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errs.New(errs.InvariantViolation, "malformed pay request body"))
		return
	}
	if _, err := decodeBolt11(req.Invoice); err != nil {
		writeError(w, errs.New(errs.InvariantViolation, "malformed bolt11 invoice"))
		return
	}

	locked := cheque.Locked{Body: req.ChequeBody, Signature: req.Signature}
	agg := s.orchestrator.Aggregate(kt.Key, kt.Tag)
	if !agg.IsActive {
		writeError(w, errs.New(errs.NotActive, "channel is not accepting new cheques"))
		return
	}
	if err := agg.AppendLocked(locked, s.now()); err != nil {
		writeError(w, err)
		return
	}

	feeLimitMsat := uint64(req.ChequeBody.Amount) * 1000
	relTimeout, err := req.ChequeBody.Timeout.Sub(s.now())
	if err != nil {
		writeError(w, err)
		return
	}
	secret, err := s.bridge.Pay(r.Context(), req.Invoice, feeLimitMsat, primitives.Duration(relTimeout))
	if err != nil {
		writeError(w, errs.Wrap(errs.Bln, "pay", err))
		return
	}
	if secret != nil {
		if err := agg.Unlock(*secret); err != nil {
			writeError(w, err)
			return
		}
	}

	s.respondSquashStatus(w, agg)
}

// handleSquash is POST /ch/squash: decode and verify a consumer-signed
// Squash, fold it into the channel's receipt, and report whether the
// resulting receipt is fully covered.
func (s *Server) handleSquash(w http.ResponseWriter, r *http.Request, kt keytagCtx) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, errs.New(errs.InvariantViolation, "cannot read squash body"))
		return
	}
	var sq squash.Squash
	if err := codec.Unmarshal(body, &sq); err != nil {
		writeError(w, errs.New(errs.InvariantViolation, "cannot decode squash"))
		return
	}

	agg := s.orchestrator.Aggregate(kt.Key, kt.Tag)
	changed, err := agg.UpdateSquash(sq)
	if err != nil {
		writeError(w, err)
		return
	}
	if !changed {
		s.writeSquashStatus(w, agg, squashStale)
		return
	}

	s.respondSquashStatus(w, agg)
}
