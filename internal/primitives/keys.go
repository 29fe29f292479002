package primitives

import (
	"crypto/ed25519"

	"github.com/cardano-lightning/konduit-go/internal/errs"
)

// VerificationKey is an Ed25519 public key.
type VerificationKey [ed25519.PublicKeySize]byte

// SigningKey is an Ed25519 private key in the standard 64-byte expanded
// format (seed || public key), as returned by ed25519.GenerateKey.
type SigningKey [ed25519.PrivateKeySize]byte

// Signature is a raw Ed25519 signature.
type Signature [ed25519.SignatureSize]byte

// Public derives the VerificationKey for a SigningKey.
func (sk SigningKey) Public() VerificationKey {
	pub := ed25519.PrivateKey(sk[:]).Public().(ed25519.PublicKey)
	var vk VerificationKey
	copy(vk[:], pub)
	return vk
}

// Sign produces a raw Ed25519 signature over preimage. The caller is
// responsible for constructing preimage as tag ‖ encode(body) — this
// function is the bare cryptographic primitive, not the signing domain.
func Sign(sk SigningKey, preimage []byte) Signature {
	sig := ed25519.Sign(ed25519.PrivateKey(sk[:]), preimage)
	var out Signature
	copy(out[:], sig)
	return out
}

// Verify checks a raw Ed25519 signature over preimage.
func Verify(vk VerificationKey, preimage []byte, sig Signature) bool {
	return ed25519.Verify(ed25519.PublicKey(vk[:]), preimage, sig[:])
}

// VerifyOrError is Verify, wrapped into the konduit error kind every
// acceptance path must surface on a bad signature.
func VerifyOrError(vk VerificationKey, preimage []byte, sig Signature) error {
	if !Verify(vk, preimage, sig) {
		return errs.New(errs.SignatureInvalid, "signature verification failed")
	}
	return nil
}
