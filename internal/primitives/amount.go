package primitives

import "strconv"

// Lovelace is an amount of the UTxO ledger's base unit, modeled on
// btcsuite/btcd/btcutil.Amount: a plain integer newtype carrying
// arithmetic and formatting helpers instead of being passed around as a
// bare uint64.
type Lovelace uint64

// String renders the amount as a bare integer followed by its unit, the
// same convention btcutil.Amount.String uses for "BTC".
func (l Lovelace) String() string {
	return strconv.FormatUint(uint64(l), 10) + " lovelace"
}

// SaturatingSub returns l-other, floored at zero instead of wrapping —
// the saturation semantics channel capacity and subtraction-limit
// computations both rely on.
func (l Lovelace) SaturatingSub(other Lovelace) Lovelace {
	if other >= l {
		return 0
	}
	return l - other
}

// Min returns the smaller of two Lovelace amounts.
func Min(a, b Lovelace) Lovelace {
	if a < b {
		return a
	}
	return b
}
