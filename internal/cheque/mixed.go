package cheque

// Mixed pairs a locally-drafted cheque body with the adaptor's last
// confirmed cheque for the same index, if any, so a consumer client can
// check the two agree before signing and sending the next cheque.
// Grounded on mixed_cheque.rs/mixed_receipt.rs in the original
// implementation, reworked here as plain data rather than a sum type
// since the two sides are compared, not dispatched on.
type Mixed struct {
	Draft     Body
	Confirmed *Cheque
}

// Agrees reports whether Confirmed, if present, carries the same body as
// Draft. A nil Confirmed trivially agrees: the adaptor hasn't recorded a
// cheque at this index yet.
func (m Mixed) Agrees() bool {
	if m.Confirmed == nil {
		return true
	}
	return m.Confirmed.Body().Equal(m.Draft)
}
