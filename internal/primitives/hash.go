package primitives

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Hash28 is a 28-byte digest: the size the UTxO ledger uses for script and
// credential hashes (blake2b-224 in the Cardano original this was distilled
// from — see original_source/rust/crates/cardano-sdk/src/cardano/credential.rs).
type Hash28 [28]byte

// Hash32 is a 32-byte digest, used for payment hashes/locks and for any
// blake2b-256 or sha256 commitment in the data model.
type Hash32 [32]byte

// Less orders Hash28 lexicographically by byte value.
func (h Hash28) Less(other Hash28) bool {
	return bytes.Compare(h[:], other[:]) < 0
}

// Less orders Hash32 lexicographically by byte value.
func (h Hash32) Less(other Hash32) bool {
	return bytes.Compare(h[:], other[:]) < 0
}

func (h Hash28) String() string { return hex.EncodeToString(h[:]) }
func (h Hash32) String() string { return hex.EncodeToString(h[:]) }

// Blake2b224 computes the script-hash digest used for Datum.own_hash.
func Blake2b224(data []byte) Hash28 {
	h, err := blake2b.New(28, nil)
	if err != nil {
		// Only possible if the requested size is invalid, which 28
		// never is; blake2b supports any size up to 64.
		panic(err)
	}
	h.Write(data)
	var out Hash28
	copy(out[:], h.Sum(nil))
	return out
}

// Sha256 computes a SHA-256 digest as a Hash32, used for Lock(secret).
func Sha256(data []byte) Hash32 {
	return Hash32(sha256.Sum256(data))
}
