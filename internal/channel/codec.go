package channel

import (
	"github.com/cardano-lightning/konduit-go/internal/codec"
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

type usedWire struct {
	_ struct{} `cbor:",toarray"`

	Index  uint64
	Amount uint64
}

func (u Used) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(usedWire{Index: u.Index, Amount: uint64(u.Amount)})
}

func (u *Used) UnmarshalCBOR(data []byte) error {
	var w usedWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	u.Index, u.Amount = w.Index, primitives.Lovelace(w.Amount)
	return nil
}

type pendingWire struct {
	_ struct{} `cbor:",toarray"`

	Amount  uint64
	Timeout uint64
	Lock    []byte
}

func (p Pending) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(pendingWire{Amount: uint64(p.Amount), Timeout: uint64(p.Timeout), Lock: p.Lock[:]})
}

func (p *Pending) UnmarshalCBOR(data []byte) error {
	var w pendingWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	p.Amount = primitives.Lovelace(w.Amount)
	p.Timeout = primitives.Duration(w.Timeout)
	copy(p.Lock[:], w.Lock)
	return nil
}

const (
	constrOpened    uint64 = 0
	constrClosed    uint64 = 1
	constrResponded uint64 = 2
)

// MarshalCBOR implements cbor.Marshaler for the Stage sum type.
func (s Stage) MarshalCBOR() ([]byte, error) {
	switch s.Kind {
	case StageOpened:
		return codec.Constr{
			Tag: constrOpened,
			Fields: codec.Fields(
				codec.EncodeField(uint64(s.Subbed)),
				codec.EncodeField(s.Useds),
			),
		}.MarshalCBOR()
	case StageClosed:
		return codec.Constr{
			Tag: constrClosed,
			Fields: codec.Fields(
				codec.EncodeField(uint64(s.Subbed)),
				codec.EncodeField(s.Useds),
				codec.EncodeField(uint64(s.ElapseAt)),
			),
		}.MarshalCBOR()
	case StageResponded:
		return codec.Constr{
			Tag: constrResponded,
			Fields: codec.Fields(
				codec.EncodeField(uint64(s.PendingAmount)),
				codec.EncodeField(s.Pendings),
			),
		}.MarshalCBOR()
	default:
		return nil, errs.New(errs.InvariantViolation, "unknown stage kind")
	}
}

// UnmarshalCBOR implements cbor.Unmarshaler for the Stage sum type.
func (s *Stage) UnmarshalCBOR(data []byte) error {
	var wrap codec.Constr
	if err := wrap.UnmarshalCBOR(data); err != nil {
		return err
	}
	switch wrap.Tag {
	case constrOpened:
		var subbed uint64
		var useds []Used
		if err := codec.DecodeField(wrap.Fields[0], &subbed); err != nil {
			return err
		}
		if err := codec.DecodeField(wrap.Fields[1], &useds); err != nil {
			return err
		}
		*s = NewOpened(primitives.Lovelace(subbed), useds)
	case constrClosed:
		var subbed, elapseAt uint64
		var useds []Used
		if err := codec.DecodeField(wrap.Fields[0], &subbed); err != nil {
			return err
		}
		if err := codec.DecodeField(wrap.Fields[1], &useds); err != nil {
			return err
		}
		if err := codec.DecodeField(wrap.Fields[2], &elapseAt); err != nil {
			return err
		}
		*s = NewClosed(primitives.Lovelace(subbed), useds, primitives.Duration(elapseAt))
	case constrResponded:
		var pendingAmount uint64
		var pendings []Pending
		if err := codec.DecodeField(wrap.Fields[0], &pendingAmount); err != nil {
			return err
		}
		if err := codec.DecodeField(wrap.Fields[1], &pendings); err != nil {
			return err
		}
		*s = NewResponded(primitives.Lovelace(pendingAmount), pendings)
	default:
		return errs.New(errs.InvariantViolation, "unknown stage constructor tag")
	}
	return nil
}

type constantsWire struct {
	_ struct{} `cbor:",toarray"`

	Tag         []byte
	AddVKey     []byte
	SubVKey     []byte
	ClosePeriod uint64
}

func (c Constants) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(constantsWire{
		Tag:         c.Tag,
		AddVKey:     c.AddVKey[:],
		SubVKey:     c.SubVKey[:],
		ClosePeriod: uint64(c.ClosePeriod),
	})
}

func (c *Constants) UnmarshalCBOR(data []byte) error {
	var w constantsWire
	if err := codec.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Tag = primitives.Tag(w.Tag)
	copy(c.AddVKey[:], w.AddVKey)
	copy(c.SubVKey[:], w.SubVKey)
	c.ClosePeriod = primitives.Duration(w.ClosePeriod)
	return nil
}

type datumWire struct {
	_ struct{} `cbor:",toarray"`

	OwnHash   []byte
	Constants Constants
	Stage     Stage
}

// MarshalCBOR implements cbor.Marshaler for Datum: constr(0, own_hash,
// constants, stage).
func (d Datum) MarshalCBOR() ([]byte, error) {
	return codec.Constr{
		Tag: 0,
		Fields: codec.Fields(
			codec.EncodeField(d.OwnHash[:]),
			codec.EncodeField(d.Constants),
			codec.EncodeField(d.Stage),
		),
	}.MarshalCBOR()
}

func (d *Datum) UnmarshalCBOR(data []byte) error {
	var wrap codec.Constr
	if err := wrap.UnmarshalCBOR(data); err != nil {
		return err
	}
	if wrap.Tag != 0 {
		return errs.New(errs.InvariantViolation, "unexpected datum constructor tag")
	}
	var ownHash []byte
	if err := codec.DecodeField(wrap.Fields[0], &ownHash); err != nil {
		return err
	}
	copy(d.OwnHash[:], ownHash)
	if err := codec.DecodeField(wrap.Fields[1], &d.Constants); err != nil {
		return err
	}
	return codec.DecodeField(wrap.Fields[2], &d.Stage)
}
