package cheque

import (
	"fmt"

	"github.com/cardano-lightning/konduit-go/internal/codec"
	"github.com/cardano-lightning/konduit-go/internal/errs"
)

// Cheque is the sum Unlocked | Locked. Value holds either a Locked or an
// Unlocked, dispatched on type rather than modeled via subclass
// polymorphism.
type Cheque struct {
	Value interface{} // Locked or Unlocked
}

// FromLocked wraps a Locked cheque as a Cheque.
func FromLocked(l Locked) Cheque { return Cheque{Value: l} }

// FromUnlocked wraps an Unlocked cheque as a Cheque.
func FromUnlocked(u Unlocked) Cheque { return Cheque{Value: u} }

// IsUnlocked reports whether the underlying variant is Unlocked.
func (c Cheque) IsUnlocked() bool {
	_, ok := c.Value.(Unlocked)
	return ok
}

// AsLocked returns the Locked variant and true, or the zero value and
// false if c wraps an Unlocked cheque.
func (c Cheque) AsLocked() (Locked, bool) {
	l, ok := c.Value.(Locked)
	return l, ok
}

// AsUnlocked returns the Unlocked variant and true, or the zero value and
// false if c wraps a Locked cheque.
func (c Cheque) AsUnlocked() (Unlocked, bool) {
	u, ok := c.Value.(Unlocked)
	return u, ok
}

// Body returns the common ChequeBody of either variant.
func (c Cheque) Body() Body {
	if l, ok := c.AsLocked(); ok {
		return l.Body
	}
	u, _ := c.AsUnlocked()
	return u.Body
}

// Index returns the cheque's index, for sorting and lookups.
func (c Cheque) Index() uint64 {
	return c.Body().Index
}

// Less orders cheques by body.index ascending; on a tie, Unlocked sorts
// after (is "greater than") Locked, since unlocked cheques are stronger
// evidence.
func (c Cheque) Less(other Cheque) bool {
	if c.Index() != other.Index() {
		return c.Index() < other.Index()
	}
	return !c.IsUnlocked() && other.IsUnlocked()
}

func preimage(tag []byte, body Body) ([]byte, error) {
	return codec.Preimage(tag, body)
}

func timeoutExpiredErr() error {
	return errs.New(errs.Time, "cheque timeout already elapsed")
}

func errUnknownConstr(tag uint64) error {
	return errs.New(errs.InvariantViolation, fmt.Sprintf("unknown cheque constructor tag %d", tag))
}
