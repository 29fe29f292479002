package adaptor

import (
	"context"
	"crypto/ed25519"
	"testing"

	"github.com/cardano-lightning/konduit-go/internal/channel"
	"github.com/cardano-lightning/konduit-go/internal/cheque"
	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/cardano-lightning/konduit-go/internal/squash"
	"github.com/stretchr/testify/require"
)

type stubLedger struct {
	utxos []channel.UTxO
}

func (s *stubLedger) ChannelUTxOs(ctx context.Context, subVkey primitives.VerificationKey) ([]channel.UTxO, error) {
	return s.utxos, nil
}

func (s *stubLedger) Submit(ctx context.Context, tx []byte) error { return nil }

func genKey(t *testing.T) (primitives.SigningKey, primitives.VerificationKey) {
	t.Helper()
	pub, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var sk primitives.SigningKey
	var vk primitives.VerificationKey
	copy(sk[:], priv)
	copy(vk[:], pub)
	return sk, vk
}

func TestRunOnceSynthesizesSubStep(t *testing.T) {
	sk, vk := genKey(t)
	_, subVKey := genKey(t)
	tag := primitives.Tag("t")
	params := primitives.DefaultParams()

	utxo := channel.UTxO{
		Ref: []byte("utxo-1"),
		Datum: channel.Datum{
			Constants: channel.Constants{Tag: tag, AddVKey: vk, SubVKey: subVKey},
		},
		L1Channel: channel.L1Channel{Amount: 100, Stage: channel.NewOpened(0, nil)},
	}
	l := &stubLedger{utxos: []channel.UTxO{utxo}}

	o := NewOrchestrator(l, subVKey, params, 1, 1)
	agg := o.Aggregate(vk, tag)

	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	lock := primitives.NewLock(secret)
	body := cheque.Body{Index: 1, Amount: 30, Timeout: 1 << 40, Lock: lock}
	locked, err := cheque.MakeLocked(sk, tag, body)
	require.NoError(t, err)

	emptySquash, err := squash.Make(sk, tag, squash.Empty())
	require.NoError(t, err)
	_, err = agg.UpdateSquash(emptySquash)
	require.NoError(t, err)
	agg.UpdateRetainer([]channel.L1Channel{utxo.L1Channel})
	require.NoError(t, agg.AppendLocked(locked, 0))
	require.NoError(t, agg.Unlock(secret))

	plans, err := o.RunOnce(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	require.Equal(t, primitives.Lovelace(30), plans[0].Gain)

	require.NoError(t, o.Commit(plans[0]))
	require.Equal(t, primitives.Lovelace(70), agg.Retainer.Amount)
}

func TestRunOnceAbortsBelowMinTotal(t *testing.T) {
	sk, vk := genKey(t)
	_, subVKey := genKey(t)
	tag := primitives.Tag("t")
	params := primitives.DefaultParams()

	l := &stubLedger{}
	o := NewOrchestrator(l, subVKey, params, 1, 1_000_000)
	agg := o.Aggregate(vk, tag)

	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	lock := primitives.NewLock(secret)
	body := cheque.Body{Index: 1, Amount: 30, Timeout: 1 << 40, Lock: lock}
	locked, err := cheque.MakeLocked(sk, tag, body)
	require.NoError(t, err)

	emptySquash, err := squash.Make(sk, tag, squash.Empty())
	require.NoError(t, err)
	_, err = agg.UpdateSquash(emptySquash)
	require.NoError(t, err)
	agg.UpdateRetainer([]channel.L1Channel{{Amount: 100, Stage: channel.NewOpened(0, nil)}})
	require.NoError(t, agg.AppendLocked(locked, 0))
	require.NoError(t, agg.Unlock(secret))

	plans, err := o.RunOnce(context.Background(), 0)
	require.NoError(t, err)
	require.Nil(t, plans)
}
