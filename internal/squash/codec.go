package squash

import (
	"github.com/cardano-lightning/konduit-go/internal/codec"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// bodyWire is Body's canonical array encoding: [amount, index, exclude].
type bodyWire struct {
	_ struct{} `cbor:",toarray"`

	Amount  uint64
	Index   uint64
	Exclude []uint64
}

// MarshalCBOR implements cbor.Marshaler.
func (b Body) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(bodyWire{
		Amount:  uint64(b.Amount),
		Index:   b.Index,
		Exclude: b.Exclude.Values(),
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler. Decoding re-validates the
// exclude-set invariants via NewBody rather than trusting the wire bytes,
// since a remote peer may have sent a malformed squash.
func (b *Body) UnmarshalCBOR(data []byte) error {
	var w bodyWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	// Indexes validation is capped by whatever Params the caller applies
	// downstream; here we only rebuild the strictly-increasing invariant,
	// which is a property of the wire format itself, not of any one
	// channel's configured limits.
	ix, err := primitives.NewIndexes(primitives.Params{MaxExcludeLength: len(w.Exclude) + 1}, w.Exclude)
	if err != nil {
		return err
	}
	built, err := NewBody(primitives.Lovelace(w.Amount), w.Index, ix)
	if err != nil {
		return err
	}
	*b = built
	return nil
}
