package cheque

import (
	"testing"

	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/stretchr/testify/require"
)

func TestMixedAgreesWithNilConfirmed(t *testing.T) {
	draft := Body{Index: 1, Amount: 30, Timeout: 1000}
	m := Mixed{Draft: draft}
	require.True(t, m.Agrees())
}

func TestMixedAgreesWithMatchingConfirmed(t *testing.T) {
	sk := genKey(t)
	tag := []byte("t")
	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	body := Body{Index: 1, Amount: 30, Timeout: 1000, Lock: primitives.NewLock(secret)}

	locked, err := MakeLocked(sk, tag, body)
	require.NoError(t, err)
	confirmed := FromLocked(locked)

	m := Mixed{Draft: body, Confirmed: &confirmed}
	require.True(t, m.Agrees())
}

func TestMixedDisagreesOnMismatchedBody(t *testing.T) {
	sk := genKey(t)
	tag := []byte("t")
	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	body := Body{Index: 1, Amount: 30, Timeout: 1000, Lock: primitives.NewLock(secret)}

	locked, err := MakeLocked(sk, tag, body)
	require.NoError(t, err)
	confirmed := FromLocked(locked)

	draft := body
	draft.Amount = 31
	m := Mixed{Draft: draft, Confirmed: &confirmed}
	require.False(t, m.Agrees())
}
