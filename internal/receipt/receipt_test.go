package receipt

import (
	"crypto/ed25519"
	"testing"

	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/squash"
	"github.com/stretchr/testify/require"
)

func key(t *testing.T) primitives.SigningKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var sk primitives.SigningKey
	copy(sk[:], priv)
	return sk
}

func ix(t *testing.T, vs ...uint64) primitives.Indexes {
	t.Helper()
	out, err := primitives.NewIndexes(primitives.DefaultParams(), vs)
	require.NoError(t, err)
	return out
}

func mkLocked(t *testing.T, sk primitives.SigningKey, tag []byte, index uint64, amount primitives.Lovelace, timeout primitives.Duration, lock primitives.Lock) cheque.Locked {
	t.Helper()
	l, err := cheque.MakeLocked(sk, tag, cheque.Body{Index: index, Amount: amount, Timeout: timeout, Lock: lock})
	require.NoError(t, err)
	return l
}

// TestUpdateSquashRejectsShrink checks that a proposed squash covering
// less than the old squash's amount is rejected outright.
func TestUpdateSquashRejectsShrink(t *testing.T) {
	sk := key(t)
	params := primitives.DefaultParams()
	oldBody, err := squash.NewBody(50, 20, ix(t))
	require.NoError(t, err)
	oldSquash, err := squash.Make(sk, []byte("t"), oldBody)
	require.NoError(t, err)
	r := New(params, oldSquash)

	newBody, err := squash.NewBody(49, 30, ix(t))
	require.NoError(t, err)
	newSquash, err := squash.Make(sk, []byte("t"), newBody)
	require.NoError(t, err)

	ok := r.UpdateSquash(newSquash)
	require.False(t, ok)
	require.Equal(t, oldSquash, r.Squash)
}

// TestUpdateSquashRemovesCoveredCheques checks that accepting a new squash
// drops every cheque the new squash's index now covers.
func TestUpdateSquashRemovesCoveredCheques(t *testing.T) {
	sk := key(t)
	tag := []byte("t")
	params := primitives.DefaultParams()

	oldBody, err := squash.NewBody(50, 5, ix(t))
	require.NoError(t, err)
	oldSquash, err := squash.Make(sk, tag, oldBody)
	require.NoError(t, err)

	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	lock := primitives.NewLock(secret)

	c6 := cheque.FromLocked(mkLocked(t, sk, tag, 6, 20, 1000, lock))
	c7 := cheque.FromLocked(mkLocked(t, sk, tag, 7, 20, 1000, lock))

	r, err := NewWithCheques(params, oldSquash, []cheque.Cheque{c6, c7})
	require.NoError(t, err)

	newBody, err := squash.NewBody(90, 7, ix(t))
	require.NoError(t, err)
	newSquash, err := squash.Make(sk, tag, newBody)
	require.NoError(t, err)

	ok := r.UpdateSquash(newSquash)
	require.True(t, ok)
	require.Empty(t, r.Cheques)
	require.Equal(t, primitives.Lovelace(90), r.Squash.Body.Amount)
}

// TestTimeoutExpiresLockedCheque checks that Timeout drops a Locked
// cheque once its timeout has elapsed.
func TestTimeoutExpiresLockedCheque(t *testing.T) {
	sk := key(t)
	tag := []byte("t")
	params := primitives.DefaultParams()
	sq, err := squash.Make(sk, tag, squash.Empty())
	require.NoError(t, err)
	r := New(params, sq)

	var secret primitives.Secret
	l := mkLocked(t, sk, tag, 1, 60, 100, primitives.NewLock(secret))
	require.NoError(t, r.AppendLocked(l))
	require.Len(t, r.Cheques, 1)

	r.Timeout(101)
	require.Empty(t, r.Cheques)
}

func TestInsertRejectsDuplicate(t *testing.T) {
	sk := key(t)
	tag := []byte("t")
	params := primitives.DefaultParams()
	sq, err := squash.Make(sk, tag, squash.Empty())
	require.NoError(t, err)
	r := New(params, sq)

	var secret primitives.Secret
	l := mkLocked(t, sk, tag, 1, 10, 100, primitives.NewLock(secret))
	require.NoError(t, r.Insert(l))
	require.Error(t, r.Insert(l))
}

func TestAppendLockedRequiresHigherIndex(t *testing.T) {
	sk := key(t)
	tag := []byte("t")
	params := primitives.DefaultParams()
	sq, err := squash.Make(sk, tag, squash.Empty())
	require.NoError(t, err)
	r := New(params, sq)

	var secret primitives.Secret
	l1 := mkLocked(t, sk, tag, 5, 10, 100, primitives.NewLock(secret))
	require.NoError(t, r.AppendLocked(l1))

	l2 := mkLocked(t, sk, tag, 5, 10, 100, primitives.NewLock(secret))
	require.Error(t, r.AppendLocked(l2))
	l3 := mkLocked(t, sk, tag, 4, 10, 100, primitives.NewLock(secret))
	require.Error(t, r.AppendLocked(l3))
}

func TestUnlockFailsWhenNothingMatches(t *testing.T) {
	sk := key(t)
	tag := []byte("t")
	params := primitives.DefaultParams()
	sq, err := squash.Make(sk, tag, squash.Empty())
	require.NoError(t, err)
	r := New(params, sq)

	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	require.Error(t, r.Unlock(secret))
}

// TestCommittedGEOwedGESquashAmount checks the quantified invariant
// committed(r) >= owed(r) >= r.squash.amount.
func TestCommittedGEOwedGESquashAmount(t *testing.T) {
	sk := key(t)
	tag := []byte("t")
	params := primitives.DefaultParams()
	body, err := squash.NewBody(10, 0, ix(t))
	require.NoError(t, err)
	sq, err := squash.Make(sk, tag, body)
	require.NoError(t, err)
	r := New(params, sq)

	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	lock := primitives.NewLock(secret)
	require.NoError(t, r.AppendLocked(mkLocked(t, sk, tag, 1, 20, 100, lock)))
	require.NoError(t, r.AppendLocked(mkLocked(t, sk, tag, 2, 30, 100, lock)))
	require.NoError(t, r.Unlock(secret))

	require.GreaterOrEqual(t, uint64(r.Committed()), uint64(r.Owed()))
	require.GreaterOrEqual(t, uint64(r.Owed()), uint64(r.Squash.Body.Amount))
}
