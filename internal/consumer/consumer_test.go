package consumer

import (
	"crypto/ed25519"
	"testing"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/stretchr/testify/require"
)

func genKey(t *testing.T) primitives.VerificationKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var vk primitives.VerificationKey
	copy(vk[:], pub)
	return vk
}

func TestOpenAttachesMinAdaBuffer(t *testing.T) {
	addVKey, subVKey := genKey(t), genKey(t)
	var ownHash primitives.Hash28
	tag := primitives.Tag("t")

	datum, value := Open(ownHash, tag, addVKey, subVKey, 1000, 50_000_000)

	require.Equal(t, primitives.Lovelace(50_000_000)+MinAdaBuffer, value)
	require.Equal(t, channel.StageOpened, datum.Stage.Kind)
	require.Equal(t, primitives.Lovelace(0), datum.Stage.Subbed)
	require.Empty(t, datum.Stage.Useds)
	require.Equal(t, tag, datum.Constants.Tag)
	require.Equal(t, addVKey, datum.Constants.AddVKey)
	require.Equal(t, subVKey, datum.Constants.SubVKey)
}

func TestAddIncreasesValueAndKeepsDatum(t *testing.T) {
	addVKey, subVKey := genKey(t), genKey(t)
	var ownHash primitives.Hash28
	tag := primitives.Tag("t")
	datum, value := Open(ownHash, tag, addVKey, subVKey, 1000, 50_000_000)

	newDatum, newValue := Add(datum, value, 10_000_000)

	require.Equal(t, value+10_000_000, newValue)
	require.Equal(t, datum, newDatum)
}

func TestCloseTransitionsOpenedToClosed(t *testing.T) {
	addVKey, subVKey := genKey(t), genKey(t)
	var ownHash primitives.Hash28
	tag := primitives.Tag("t")
	datum, _ := Open(ownHash, tag, addVKey, subVKey, 1000, 50_000_000)
	datum.Stage = channel.NewOpened(5_000_000, []channel.Used{{Index: 1, Amount: 5_000_000}})

	closed, err := Close(datum, 100)

	require.NoError(t, err)
	require.Equal(t, channel.StageClosed, closed.Stage.Kind)
	require.Equal(t, primitives.Duration(1100), closed.Stage.ElapseAt)
	require.Equal(t, primitives.Lovelace(5_000_000), closed.Stage.Subbed)
	require.Len(t, closed.Stage.Useds, 1)
}

func TestCloseRejectsNonOpened(t *testing.T) {
	var ownHash primitives.Hash28
	datum := channel.Datum{OwnHash: ownHash, Stage: channel.NewResponded(0, nil)}

	_, err := Close(datum, 100)

	require.Error(t, err)
}

func genSigningKey(t *testing.T) primitives.SigningKey {
	t.Helper()
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var sk primitives.SigningKey
	copy(sk[:], priv)
	return sk
}

func TestReconcileChequeAcceptsNilConfirmed(t *testing.T) {
	draft := cheque.Body{Index: 1, Amount: 30, Timeout: 1000}

	mixed, err := ReconcileCheque(draft, nil)

	require.NoError(t, err)
	require.Equal(t, draft, mixed.Draft)
	require.Nil(t, mixed.Confirmed)
}

func TestReconcileChequeAcceptsMatchingConfirmed(t *testing.T) {
	sk := genSigningKey(t)
	tag := []byte("t")
	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	body := cheque.Body{Index: 1, Amount: 30, Timeout: 1000, Lock: primitives.NewLock(secret)}
	locked, err := cheque.MakeLocked(sk, tag, body)
	require.NoError(t, err)
	confirmed := cheque.FromLocked(locked)

	mixed, err := ReconcileCheque(body, &confirmed)

	require.NoError(t, err)
	require.True(t, mixed.Agrees())
}

func TestReconcileChequeRejectsMismatchedConfirmed(t *testing.T) {
	sk := genSigningKey(t)
	tag := []byte("t")
	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	body := cheque.Body{Index: 1, Amount: 30, Timeout: 1000, Lock: primitives.NewLock(secret)}
	locked, err := cheque.MakeLocked(sk, tag, body)
	require.NoError(t, err)
	confirmed := cheque.FromLocked(locked)

	draft := body
	draft.Amount = 31

	_, err = ReconcileCheque(draft, &confirmed)

	require.Error(t, err)
}
