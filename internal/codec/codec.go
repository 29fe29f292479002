// Package codec implements the canonical binary encoding every wire and
// signing-preimage type in this system needs: a structured format
// supporting tagged sums, ordered maps, integers and bytestrings, with
// mandatory round-tripping (decode(encode(x)) = x). It is built on CBOR's
// core deterministic encoding (RFC 8949 §4.2.1), via
// github.com/fxamacker/cbor/v2 — CBOR's major types (unsigned integers,
// byte strings, arrays, maps) already are "tagged sums, arrays, maps,
// integers, bytestrings", and its "core deterministic" mode guarantees
// the single canonical byte sequence every signature preimage in this
// system depends on.
//
// Sum types (Cheque, Stage, Datum) encode as a two-element CBOR array
// [constructorIndex, [fields...]], mirroring the
// constr(tag, ...) convention the UTxO ledger's own Plutus Data encoding
// uses for on-chain datums and redeemers (see
// original_source/rust/crates/cardano-tx-builder/src/cardano/plutus_data.rs).
package codec

import (
	"github.com/fxamacker/cbor/v2"
)

// encMode is the single deterministic encoder every konduit type must use.
// Sorting map keys and using the shortest-form integer encoding makes the
// output a pure function of the value, which is what the signing preimage
// (tag ‖ encode(body)) requires.
var encMode = func() cbor.EncMode {
	opts := cbor.CoreDetEncOptions()
	m, err := opts.EncMode()
	if err != nil {
		panic(err)
	}
	return m
}()

var decMode = func() cbor.DecMode {
	opts := cbor.DecOptions{}
	m, err := opts.DecMode()
	if err != nil {
		panic(err)
	}
	return m
}()

// Marshal canonically encodes v.
func Marshal(v interface{}) ([]byte, error) {
	return encMode.Marshal(v)
}

// Unmarshal decodes data into v. Round-tripping with Marshal is mandatory
// for every type in this package and its callers.
func Unmarshal(data []byte, v interface{}) error {
	return decMode.Unmarshal(data, v)
}

// Preimage builds the signing preimage tag ‖ encode(body) used for both
// cheques and squashes.
func Preimage(tag []byte, body interface{}) ([]byte, error) {
	encoded, err := Marshal(body)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(tag)+len(encoded))
	out = append(out, tag...)
	out = append(out, encoded...)
	return out, nil
}

// Constr is a constructor-tagged sum value: a two-element CBOR array whose
// first element is the constructor index and whose second element is an
// array of the variant's already-encoded fields, in declared field order.
type Constr struct {
	Tag    uint64
	Fields []cbor.RawMessage
}

// constrWire is the literal array shape Constr (de)serializes to/from.
type constrWire struct {
	_ struct{} `cbor:",toarray"`

	Tag    uint64
	Fields []cbor.RawMessage
}

// MarshalCBOR implements cbor.Marshaler.
func (c Constr) MarshalCBOR() ([]byte, error) {
	return encMode.Marshal(constrWire{Tag: c.Tag, Fields: c.Fields})
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (c *Constr) UnmarshalCBOR(data []byte) error {
	var w constrWire
	if err := decMode.Unmarshal(data, &w); err != nil {
		return err
	}
	c.Tag = w.Tag
	c.Fields = w.Fields
	return nil
}

// EncodeField canonically encodes a single field for inclusion in a Constr.
func EncodeField(v interface{}) cbor.RawMessage {
	raw, err := encMode.Marshal(v)
	if err != nil {
		// Every field type in this codebase is a concrete, always-
		// encodable value (no channels/funcs); a marshal failure here
		// indicates a programming error, not bad input.
		panic(err)
	}
	return cbor.RawMessage(raw)
}

// DecodeField decodes a single Constr field into v.
func DecodeField(field cbor.RawMessage, v interface{}) error {
	return decMode.Unmarshal(field, v)
}

// Fields collects already-encoded fields (from EncodeField) into the slice
// Constr.Fields expects, so callers never need to import the underlying
// cbor package directly.
func Fields(fields ...cbor.RawMessage) []cbor.RawMessage {
	return fields
}
