package cheque

import (
	"github.com/cardano-lightning/konduit-go/internal/codec"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// bodyWire is Body's canonical array encoding: [index, amount, timeout,
// lock] — the exact field order that is part of the signing preimage.
type bodyWire struct {
	_ struct{} `cbor:",toarray"`

	Index   uint64
	Amount  uint64
	Timeout uint64
	Lock    []byte
}

// MarshalCBOR implements cbor.Marshaler.
func (b Body) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(bodyWire{
		Index:   b.Index,
		Amount:  uint64(b.Amount),
		Timeout: uint64(b.Timeout),
		Lock:    b.Lock[:],
	})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (b *Body) UnmarshalCBOR(data []byte) error {
	var w bodyWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	b.Index = w.Index
	b.Amount = primitives.Lovelace(w.Amount)
	b.Timeout = primitives.Duration(w.Timeout)
	copy(b.Lock[:], w.Lock)
	return nil
}

const (
	// constrLocked tags the Locked variant of Cheque.
	constrLocked uint64 = 0
	// constrUnlocked tags the Unlocked variant of Cheque.
	constrUnlocked uint64 = 1
)

// MarshalCBOR implements cbor.Marshaler for the Cheque sum type: a
// constructor-tagged array, the same encoding convention used on-chain
// for Datum/Redeemer sums.
func (c Cheque) MarshalCBOR() ([]byte, error) {
	switch v := c.Value.(type) {
	case Locked:
		return codec.Constr{
			Tag: constrLocked,
			Fields: codec.Fields(
				codec.EncodeField(v.Body),
				codec.EncodeField(v.Signature[:]),
			),
		}.MarshalCBOR()
	case Unlocked:
		return codec.Constr{
			Tag: constrUnlocked,
			Fields: codec.Fields(
				codec.EncodeField(v.Body),
				codec.EncodeField(v.Signature[:]),
				codec.EncodeField(v.Secret[:]),
			),
		}.MarshalCBOR()
	default:
		panic("cheque: unknown variant")
	}
}

// UnmarshalCBOR implements cbor.Unmarshaler for the Cheque sum type.
func (c *Cheque) UnmarshalCBOR(data []byte) error {
	var wrap codec.Constr
	if err := wrap.UnmarshalCBOR(data); err != nil {
		return err
	}
	switch wrap.Tag {
	case constrLocked:
		var l Locked
		if err := codec.DecodeField(wrap.Fields[0], &l.Body); err != nil {
			return err
		}
		var sig []byte
		if err := codec.DecodeField(wrap.Fields[1], &sig); err != nil {
			return err
		}
		copy(l.Signature[:], sig)
		c.Value = l
	case constrUnlocked:
		var u Unlocked
		if err := codec.DecodeField(wrap.Fields[0], &u.Body); err != nil {
			return err
		}
		var sig []byte
		if err := codec.DecodeField(wrap.Fields[1], &sig); err != nil {
			return err
		}
		copy(u.Signature[:], sig)
		var secret []byte
		if err := codec.DecodeField(wrap.Fields[2], &secret); err != nil {
			return err
		}
		copy(u.Secret[:], secret)
		c.Value = u
	default:
		return errUnknownConstr(wrap.Tag)
	}
	return nil
}
