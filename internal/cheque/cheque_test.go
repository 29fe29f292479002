package cheque

import (
	"crypto/ed25519"
	"testing"

	"github.com/cardano-lightning/konduit-go/internal/primitives"
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

func TestMakeLockedVerifies(t *testing.T) {
	sk := genKey(t)
	tag := []byte("channel-tag")
	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))

	body := Body{Index: 1, Amount: 30, Timeout: 1000, Lock: primitives.NewLock(secret)}
	locked, err := MakeLocked(sk, tag, body)
	require.NoError(t, err)
	require.NoError(t, locked.Verify(sk.Public(), tag))

	// Tampering with any field invalidates the signature.
	tampered := locked
	tampered.Body.Amount = 31
	require.Error(t, tampered.Verify(sk.Public(), tag))
}

func TestUnlockedVerify(t *testing.T) {
	sk := genKey(t)
	tag := []byte("t")
	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	body := Body{Index: 1, Amount: 10, Timeout: 100, Lock: primitives.NewLock(secret)}
	locked, err := MakeLocked(sk, tag, body)
	require.NoError(t, err)

	unlocked, err := FromLocked(locked, secret)
	require.NoError(t, err)
	require.NoError(t, unlocked.VerifyNoTime(sk.Public(), tag))
	require.NoError(t, unlocked.Verify(sk.Public(), tag, 50))

	// Past the timeout, Verify fails freshness but VerifyNoTime still
	// accepts it (inspecting a historical unlocked cheque).
	require.Error(t, unlocked.Verify(sk.Public(), tag, 200))
	require.NoError(t, unlocked.VerifyNoTime(sk.Public(), tag))

	var wrongSecret primitives.Secret
	copy(wrongSecret[:], []byte("wrongwrongwrongwrongwrongwrongw1"))
	_, err = FromLocked(locked, wrongSecret)
	require.Error(t, err)
}

func TestChequeOrdering(t *testing.T) {
	lowLocked := Cheque{Value: Locked{Body: Body{Index: 1}}}
	lowUnlocked := Cheque{Value: Unlocked{Body: Body{Index: 1}}}
	high := Cheque{Value: Locked{Body: Body{Index: 2}}}

	require.True(t, lowLocked.Less(lowUnlocked))
	require.False(t, lowUnlocked.Less(lowLocked))
	require.True(t, lowUnlocked.Less(high))
}

func TestChequeCodecRoundTrip(t *testing.T) {
	sk := genKey(t)
	tag := []byte("t")
	var secret primitives.Secret
	copy(secret[:], []byte("secretsecretsecretsecretsecretse"))
	body := Body{Index: 5, Amount: 7, Timeout: 9, Lock: primitives.NewLock(secret)}
	locked, err := MakeLocked(sk, tag, body)
	require.NoError(t, err)

	c := FromLocked(locked)
	data, err := c.MarshalCBOR()
	require.NoError(t, err)

	var out Cheque
	require.NoError(t, out.UnmarshalCBOR(data))
	gotLocked, ok := out.AsLocked()
	require.True(t, ok)
	require.True(t, gotLocked.Body.Equal(locked.Body))
	require.Equal(t, locked.Signature, gotLocked.Signature)

	unlocked, err := FromLocked(locked, secret)
	require.NoError(t, err)
	c2 := FromUnlocked(unlocked)
	data2, err := c2.MarshalCBOR()
	require.NoError(t, err)
	var out2 Cheque
	require.NoError(t, out2.UnmarshalCBOR(data2))
	require.True(t, out2.IsUnlocked())
}
