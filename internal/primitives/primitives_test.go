package primitives

import (
	"crypto/ed25519"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLockMatchesSha256(t *testing.T) {
	var secret Secret
	copy(secret[:], []byte("01234567890123456789012345678901"))
	lock := NewLock(secret)
	require.True(t, secret.Matches(lock))

	secret[0] ^= 0xff
	require.False(t, secret.Matches(lock))
}

func TestIndexesRejectsNonMonotonic(t *testing.T) {
	params := DefaultParams()
	_, err := NewIndexes(params, []uint64{1, 1, 2})
	require.Error(t, err)

	_, err = NewIndexes(params, []uint64{3, 2})
	require.Error(t, err)

	ix, err := NewIndexes(params, []uint64{1, 5, 9})
	require.NoError(t, err)
	require.True(t, ix.Contains(5))
	require.False(t, ix.Contains(6))
}

func TestIndexesRejectsOversizedSet(t *testing.T) {
	params := Params{MaxTagLength: 32, MaxExcludeLength: 2, MaxUnsquashed: 10}
	_, err := NewIndexes(params, []uint64{1, 2, 3})
	require.Error(t, err)
}

// TestIndexesInvariant is the property-based check that, for strictly
// monotonically increasing inputs, Indexes accepts those of size at most
// MaxExcludeLength (keeping them strictly increasing) and rejects larger
// ones.
func TestIndexesInvariant(t *testing.T) {
	params := DefaultParams()
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, params.MaxExcludeLength+5).Draw(t, "n")
		values := make([]uint64, n)
		cur := uint64(0)
		for i := range values {
			cur += rapid.Uint64Range(1, 50).Draw(t, "delta")
			values[i] = cur
		}
		ix, err := NewIndexes(params, values)
		if n > params.MaxExcludeLength {
			require.Error(t, err)
			return
		}
		require.NoError(t, err)
		for i := 1; i < ix.Len(); i++ {
			require.Less(t, ix.Values()[i-1], ix.Values()[i])
		}
	})
}

func TestSignVerifyRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		seed := rapid.SliceOfN(rapid.Byte(), ed25519.SeedSize, ed25519.SeedSize).Draw(t, "seed")
		priv := ed25519.NewKeyFromSeed(seed)
		var sk SigningKey
		copy(sk[:], priv)
		msg := rapid.SliceOfN(rapid.Byte(), 0, 128).Draw(t, "msg")

		sig := Sign(sk, msg)
		require.True(t, Verify(sk.Public(), msg, sig))

		if len(msg) > 0 {
			msg[0] ^= 0xff
			require.False(t, Verify(sk.Public(), msg, sig))
		}
	})
}

func TestDurationSub(t *testing.T) {
	_, err := Duration(5).Sub(Duration(10))
	require.Error(t, err)

	delta, err := Duration(10).Sub(Duration(5))
	require.NoError(t, err)
	require.Equal(t, int64(5), delta)
}
