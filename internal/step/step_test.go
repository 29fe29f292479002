package step

import (
	"crypto/ed25519"
	"testing"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/receipt"
	"github.com/cardano-lightning/konduit-go/internal/squash"
	"github.com/stretchr/testify/require"
)

func genKey(t *testing.T) primitives.SigningKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var sk primitives.SigningKey
	copy(sk[:], priv)
	return sk
}

// TestSynthesizeOpenedSingleSub checks that an Opened channel with one
// unlocked cheque synthesizes a single ContSub that moves the cheque's
// amount from l1.Amount into Stage.Subbed/Useds.
func TestSynthesizeOpenedSingleSub(t *testing.T) {
	sk := genKey(t)
	tag := primitives.Tag("t")

	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	lock := primitives.NewLock(secret)

	l, err := cheque.MakeLocked(sk, tag, cheque.Body{Index: 1, Amount: 30, Timeout: 3600_000, Lock: lock})
	require.NoError(t, err)

	emptySquash, err := squash.Make(sk, tag, squash.Empty())
	require.NoError(t, err)
	r := receipt.New(primitives.DefaultParams(), emptySquash)
	require.NoError(t, r.AppendLocked(l))
	require.NoError(t, r.Unlock(secret))

	l1 := channel.L1Channel{Amount: 100, Stage: channel.NewOpened(0, nil)}

	cont, newL1, ok := Synthesize(0, r, l1)
	require.True(t, ok)
	require.Equal(t, ContSub, cont.Kind)
	require.Equal(t, emptySquash, cont.Squash)
	require.Len(t, cont.Unlockeds, 1)
	require.Equal(t, uint64(1), cont.Unlockeds[0].Body.Index)
	require.Equal(t, primitives.Lovelace(30), cont.Unlockeds[0].Body.Amount)

	require.Equal(t, primitives.Lovelace(70), newL1.Amount)
	require.Equal(t, channel.StageOpened, newL1.Stage.Kind)
	require.Equal(t, primitives.Lovelace(30), newL1.Stage.Subbed)
	require.Len(t, newL1.Stage.Useds, 1)
	require.Equal(t, uint64(1), newL1.Stage.Useds[0].Index)
	require.Equal(t, primitives.Lovelace(30), newL1.Stage.Useds[0].Amount)
}

// TestSynthesizeClosedThenRespondedThenUnlock walks a channel through
// Closed -> Responded -> the adaptor claiming the pending amount by
// revealing its secret (ContUnlock).
func TestSynthesizeClosedThenRespondedThenUnlock(t *testing.T) {
	sk := genKey(t)
	tag := primitives.Tag("t")

	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	lock := primitives.NewLock(secret)

	const t0 = primitives.Duration(0)
	const closePeriod = primitives.Duration(3600_000)

	l, err := cheque.MakeLocked(sk, tag, cheque.Body{Index: 1, Amount: 40, Timeout: t0 + 7200_000, Lock: lock})
	require.NoError(t, err)

	emptySquash, err := squash.Make(sk, tag, squash.Empty())
	require.NoError(t, err)
	r := receipt.New(primitives.DefaultParams(), emptySquash)
	require.NoError(t, r.AppendLocked(l))

	closedL1 := channel.L1Channel{Amount: 100, Stage: channel.NewClosed(0, nil, t0+closePeriod)}

	cont, responded, ok := Synthesize(t0+600_000, r, closedL1)
	require.True(t, ok)
	require.Equal(t, ContRespond, cont.Kind)
	require.Len(t, cont.Cheques, 1)
	require.Equal(t, channel.StageResponded, responded.Stage.Kind)
	require.Equal(t, primitives.Lovelace(40), responded.Stage.PendingAmount)
	require.Len(t, responded.Stage.Pendings, 1)
	require.Equal(t, primitives.Lovelace(100), responded.Amount)

	require.NoError(t, r.Unlock(secret))

	cont2, ended, ok := Synthesize(t0+1_200_000, r, responded)
	require.True(t, ok)
	require.Equal(t, ContUnlock, cont2.Kind)
	require.Len(t, cont2.Unpends, 1)
	require.Equal(t, UnpendSecret, cont2.Unpends[0].Kind)
	require.Equal(t, channel.StageResponded, ended.Stage.Kind)
	require.Equal(t, primitives.Lovelace(0), ended.Stage.PendingAmount)
	require.Empty(t, ended.Stage.Pendings)
	require.Equal(t, primitives.Lovelace(60), ended.Amount)
}
