package primitives

import (
	"bytes"

	"github.com/cardano-lightning/konduit-go/internal/errs"
)

// Tag is an opaque, variable-length label that, paired with a verification
// key, identifies a logical channel (see Keytag in package channel). Its
// length is bounded by Params.MaxTagLength.
type Tag []byte

// NewTag validates tag length against the configured maximum and returns an
// owned copy (callers may reuse or mutate the input slice afterwards).
func NewTag(params Params, tag []byte) (Tag, error) {
	if len(tag) > params.MaxTagLength {
		return nil, errs.New(errs.InvariantViolation, "tag exceeds max length")
	}
	out := make(Tag, len(tag))
	copy(out, tag)
	return out, nil
}

// Equal reports whether two tags carry the same bytes.
func (t Tag) Equal(other Tag) bool {
	return bytes.Equal(t, other)
}
