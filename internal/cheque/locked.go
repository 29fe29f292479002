package cheque

import (
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Locked is a cheque whose secret has not yet been revealed.
type Locked struct {
	Body      Body
	Signature primitives.Signature
}

// MakeLocked signs body under (sk, tag) and returns the resulting Locked
// cheque.
func MakeLocked(sk primitives.SigningKey, tag []byte, body Body) (Locked, error) {
	preimage, err := preimage(tag, body)
	if err != nil {
		return Locked{}, err
	}
	return Locked{Body: body, Signature: primitives.Sign(sk, preimage)}, nil
}

// Verify checks Locked's signature against (vk, tag). This is a plain
// signature check with no timeout comparison — callers that need
// freshness call VerifyFresh.
func (l Locked) Verify(vk primitives.VerificationKey, tag []byte) error {
	preimage, err := preimage(tag, l.Body)
	if err != nil {
		return err
	}
	return primitives.VerifyOrError(vk, preimage, l.Signature)
}

// VerifyFresh is Verify plus a check that the cheque has not yet expired as
// of now, used on the acceptance path (inserting a brand-new locked
// cheque) as opposed to inspecting a cheque already on file.
func (l Locked) VerifyFresh(vk primitives.VerificationKey, tag []byte, now primitives.Duration) error {
	if err := l.Verify(vk, tag); err != nil {
		return err
	}
	if !l.Body.Timeout.After(now) {
		return timeoutExpiredErr()
	}
	return nil
}
