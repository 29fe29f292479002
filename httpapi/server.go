// Package httpapi is the adaptor's REST surface: a plain net/http server
// (no router library — see DESIGN.md for why the teacher's grpc-gateway
// stack does not apply here) exposing /info, /ch/receipt, /ch/quote,
// /ch/pay and /ch/squash.
package httpapi

import (
	"encoding/hex"
	"net/http"

	"github.com/cardano-lightning/konduit-go/internal/adaptor"
	"github.com/cardano-lightning/konduit-go/internal/bln"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/konduitlog"
)

// Info is the fixed, per-instance content of GET /info.
type Info struct {
	AdaptorKey  primitives.VerificationKey
	ClosePeriod primitives.Duration
	TagLength   int
	FlatFee     primitives.Lovelace
}

// Server wires the HTTP surface to an Orchestrator (for the channel
// aggregates it owns) and a Bridge (for quote/pay).
type Server struct {
	mux *http.ServeMux

	orchestrator *adaptor.Orchestrator
	bridge       bln.Bridge
	info         Info
	now          func() primitives.Duration
}

// NewServer builds a Server and registers its routes. now supplies the
// ambient clock used to validate cheque freshness and compute relative
// timeouts; production callers pass a wrapper over time.Now, tests pass a
// fixed clock.
func NewServer(o *adaptor.Orchestrator, bridge bln.Bridge, info Info, now func() primitives.Duration) *Server {
	s := &Server{orchestrator: o, bridge: bridge, info: info, now: now}
	s.mux = http.NewServeMux()
	s.mux.HandleFunc("GET /info", s.handleInfo)
	s.mux.HandleFunc("GET /ch/receipt", s.withKeytag(s.handleReceipt))
	s.mux.HandleFunc("POST /ch/quote", s.withKeytag(s.handleQuote))
	s.mux.HandleFunc("POST /ch/pay", s.withKeytag(s.handlePay))
	s.mux.HandleFunc("POST /ch/squash", s.withKeytag(s.handleSquash))
	return s
}

// ServeHTTP lets Server be dropped directly into http.ListenAndServe.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mux.ServeHTTP(w, r)
}

// keytagCtx carries the (verification_key, tag) pair decoded from the
// KONDUIT request header into a handler.
type keytagCtx struct {
	Key primitives.VerificationKey
	Tag primitives.Tag
}

// withKeytag decodes the KONDUIT header (hex(verification_key ‖ tag)) and
// passes the decoded pair to the wrapped handler, replying 400 if the
// header is missing or malformed.
func (s *Server) withKeytag(next func(http.ResponseWriter, *http.Request, keytagCtx)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get("KONDUIT")
		if raw == "" {
			writeError(w, errs.New(errs.InvariantViolation, "missing KONDUIT header"))
			return
		}
		decoded, err := hex.DecodeString(raw)
		if err != nil || len(decoded) <= len(primitives.VerificationKey{}) {
			writeError(w, errs.New(errs.InvariantViolation, "malformed KONDUIT header"))
			return
		}
		var kt keytagCtx
		copy(kt.Key[:], decoded[:len(kt.Key)])
		kt.Tag = primitives.Tag(decoded[len(kt.Key):])
		next(w, r, kt)
	}
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, infoResponse{
		ChannelParameters: channelParameters{
			AdaptorKey:  hex.EncodeToString(s.info.AdaptorKey[:]),
			ClosePeriod: uint64(s.info.ClosePeriod),
			TagLength:   s.info.TagLength,
		},
		Tos: tosInfo{FlatFee: uint64(s.info.FlatFee)},
	})
}

// statusFor maps an errs.Kind to the HTTP status it should answer with:
// 400 on signature/invariant failure and on the other caller-side kinds
// (Capacity, NoRetainer, NoReceipt, NotActive, Time), 502 on a BLN
// failure, an ApiError's own carried status, and 500 on anything else.
func statusFor(err error) int {
	e, ok := err.(*errs.Error)
	if !ok {
		return http.StatusInternalServerError
	}
	switch e.Kind {
	case errs.SignatureInvalid, errs.InvariantViolation, errs.Capacity, errs.NoRetainer, errs.NoReceipt, errs.NotActive, errs.Time:
		return http.StatusBadRequest
	case errs.Bln:
		return http.StatusBadGateway
	case errs.ApiError:
		return e.Status
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		konduitlog.HTTPLog.Errorf("internal error: %v", err)
	}
	w.WriteHeader(status)
	w.Write([]byte(err.Error()))
}
