package channel

import (
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Constants are the immutable per-channel parameters recorded in its
// Datum: the channel tag, the two keys allowed to sign cheques/sub-tract
// on-chain, and the close period.
type Constants struct {
	Tag        primitives.Tag
	AddVKey    primitives.VerificationKey
	SubVKey    primitives.VerificationKey
	ClosePeriod primitives.Duration
}

// Datum is the complete on-chain channel record: constr(0, own_hash,
// constants, stage). OwnHash must equal the script hash of the channel's
// own locking credential — checked by value comparison, since a UTxO
// script cannot hold a pointer to itself.
type Datum struct {
	OwnHash   primitives.Hash28
	Constants Constants
	Stage     Stage
}

// Keytag is the primary index for channels at the adaptor: a
// (verification_key, tag) pair. Equal keytags collapse same-adaptor
// channels into a single logical account.
type Keytag struct {
	Key primitives.VerificationKey
	Tag string // comparable form of primitives.Tag for use as a map key
}

// NewKeytag builds a Keytag, using the tag's raw bytes as the map-key
// string representation.
func NewKeytag(key primitives.VerificationKey, tag primitives.Tag) Keytag {
	return Keytag{Key: key, Tag: string(tag)}
}
