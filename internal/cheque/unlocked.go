package cheque

import (
	"github.com/cardano-lightning/konduit-go/internal/errs"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Unlocked is a cheque whose secret preimage has been revealed, making it
// directly redeemable evidence of debt.
type Unlocked struct {
	Body      Body
	Signature primitives.Signature
	Secret    primitives.Secret
}

// FromLocked pairs a Locked cheque with the secret that unlocks it,
// validating body.lock = sha256(secret).
func FromLocked(l Locked, secret primitives.Secret) (Unlocked, error) {
	if !secret.Matches(l.Body.Lock) {
		return Unlocked{}, errs.New(errs.InvariantViolation, "secret does not match cheque lock")
	}
	return Unlocked{Body: l.Body, Signature: l.Signature, Secret: secret}, nil
}

// VerifyNoTime checks the signature and the lock/secret relation but skips
// the timeout check, for inspecting historical unlockeds after their
// timeout has legitimately passed.
func (u Unlocked) VerifyNoTime(vk primitives.VerificationKey, tag []byte) error {
	if err := (Locked{Body: u.Body, Signature: u.Signature}).Verify(vk, tag); err != nil {
		return err
	}
	if !u.Secret.Matches(u.Body.Lock) {
		return errs.New(errs.InvariantViolation, "secret does not match cheque lock")
	}
	return nil
}

// Verify is VerifyNoTime plus a freshness check against now, used when
// accepting a newly-presented unlocked cheque.
func (u Unlocked) Verify(vk primitives.VerificationKey, tag []byte, now primitives.Duration) error {
	if err := u.VerifyNoTime(vk, tag); err != nil {
		return err
	}
	if !u.Body.Timeout.After(now) {
		return timeoutExpiredErr()
	}
	return nil
}
