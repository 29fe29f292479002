package primitives

import "github.com/cardano-lightning/konduit-go/internal/errs"

// Duration is an unsigned millisecond offset from the POSIX epoch,
// total-ordered. All cross-component time comparisons (cheque timeouts,
// squash/channel elapse points, the on-chain validity interval's upper
// bound) use this single representation.
type Duration uint64

// Before reports whether d is strictly earlier than other.
func (d Duration) Before(other Duration) bool { return d < other }

// After reports whether d is strictly later than other.
func (d Duration) After(other Duration) bool { return d > other }

// AddMillis adds a millisecond offset, returning errs.Time on overflow.
func (d Duration) AddMillis(ms uint64) (Duration, error) {
	sum := uint64(d) + ms
	if sum < uint64(d) {
		return 0, errs.New(errs.Time, "duration overflow")
	}
	return Duration(sum), nil
}

// Sub returns d - other as a signed millisecond delta, returning errs.Time
// if other is later than d (a negative relative time is treated as an
// error rather than silently wrapping).
func (d Duration) Sub(other Duration) (int64, error) {
	if other > d {
		return 0, errs.New(errs.Time, "negative relative duration")
	}
	return int64(d - other), nil
}
