package squash

import (
	"github.com/cardano-lightning/konduit-go/internal/codec"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
)

// Squash pairs a Body with the consumer's signature over it. The signing
// domain is identical to Cheque's: tag ‖ encode(body).
type Squash struct {
	Body      Body
	Signature primitives.Signature
}

// Make signs body under (sk, tag), mirroring cheque.MakeLocked.
func Make(sk primitives.SigningKey, tag []byte, body Body) (Squash, error) {
	preimage, err := codec.Preimage(tag, body)
	if err != nil {
		return Squash{}, err
	}
	return Squash{Body: body, Signature: primitives.Sign(sk, preimage)}, nil
}

// Verify checks s's signature against (vk, tag).
func (s Squash) Verify(vk primitives.VerificationKey, tag []byte) error {
	preimage, err := codec.Preimage(tag, s.Body)
	if err != nil {
		return err
	}
	return primitives.VerifyOrError(vk, preimage, s.Signature)
}

// Empty returns the canonical zero squash a brand-new channel starts with:
// no debt acknowledged, no cheques covered.
func Empty() Body {
	return Body{Amount: 0, Index: 0, Exclude: primitives.Indexes{}}
}
