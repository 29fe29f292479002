// Package errs defines the structured error kinds shared by every konduit
// subsystem. Pure core packages (primitives, cheque, squash, receipt,
// channel, step) return *Error directly; orchestration layers translate a
// Kind into an HTTP status code.
package errs

import (
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Kind classifies the failure modes every konduit subsystem can surface.
type Kind int

const (
	// SignatureInvalid marks a cheque/squash whose signature failed
	// verification against the channel's declared key.
	SignatureInvalid Kind = iota
	// InvariantViolation marks a failed partial-order, ordering, or
	// cardinality check (duplicate index, oversized index list, a squash
	// that would shrink amount, etc).
	InvariantViolation
	// Capacity marks an append that would exceed a channel's capacity.
	Capacity
	// NoRetainer marks an operation that needs a channel aggregate with
	// no selected on-chain UTxO yet.
	NoRetainer
	// NoReceipt marks an operation that needs a receipt not yet created.
	NoReceipt
	// NotActive marks an operation against a channel flagged inactive.
	NotActive
	// Time marks overflowed or negative duration arithmetic.
	Time
	// ApiError marks a non-success response from an external HTTP/RPC
	// service, carrying the status the caller returned.
	ApiError
	// Ledger marks a failure from the ledger connector.
	Ledger
	// Bln marks a failure from the Lightning bridge.
	Bln
)

func (k Kind) String() string {
	switch k {
	case SignatureInvalid:
		return "signature_invalid"
	case InvariantViolation:
		return "invariant_violation"
	case Capacity:
		return "capacity"
	case NoRetainer:
		return "no_retainer"
	case NoReceipt:
		return "no_receipt"
	case NotActive:
		return "not_active"
	case Time:
		return "time"
	case ApiError:
		return "api_error"
	case Ledger:
		return "ledger"
	case Bln:
		return "bln"
	default:
		return "unknown"
	}
}

// Error is the structured error type every konduit package returns.
type Error struct {
	Kind    Kind
	Message string
	Status  int // only meaningful for Kind == ApiError
	cause   error
}

func (e *Error) Error() string {
	if e.Kind == ApiError {
		return fmt.Sprintf("%s: %s (status %d)", e.Kind, e.Message, e.Status)
	}
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap lets errors.Is/errors.As see through to the wrapped cause.
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target is an *Error with the same Kind, so callers can
// write errors.Is(err, errs.New(errs.Capacity, "")).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// New constructs a bare *Error of the given kind, capturing a stack trace via
// go-errors so daemon logs can report where a core invariant was violated.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, cause: goerrors.New(message)}
}

// Wrap attaches kind/message context to an underlying cause (a connector
// failure, typically), preserving the original error for inspection.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{Kind: kind, Message: message, cause: cause}
}

// NewAPI constructs an ApiError carrying the offending HTTP/RPC status.
func NewAPI(status int, message string) *Error {
	return &Error{Kind: ApiError, Message: message, Status: status}
}
