package squash

import (
	"crypto/ed25519"
	"testing"

	"github.com/cardano-lightning/konduit-go/internal/primitives"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func mustIndexes(t *testing.T, vs []uint64) primitives.Indexes {
	t.Helper()
	ix, err := primitives.NewIndexes(primitives.DefaultParams(), vs)
	require.NoError(t, err)
	return ix
}

func TestNewBodyRejectsExcludeNotLessThanIndex(t *testing.T) {
	_, err := NewBody(10, 5, mustIndexes(t, []uint64{5}))
	require.Error(t, err)

	_, err = NewBody(10, 5, mustIndexes(t, []uint64{1, 3}))
	require.NoError(t, err)
}

func TestCoversAndPartialOrder(t *testing.T) {
	a, err := NewBody(50, 5, mustIndexes(t, nil))
	require.NoError(t, err)
	b, err := NewBody(90, 7, mustIndexes(t, nil))
	require.NoError(t, err)

	require.True(t, a.LessOrEqual(b))
	require.False(t, b.LessOrEqual(a))
	require.True(t, a.LessOrEqual(a))

	// b excludes index 3, which a covers: a is no longer <= b.
	bWithExclude, err := NewBody(90, 7, mustIndexes(t, []uint64{3}))
	require.NoError(t, err)
	require.False(t, a.LessOrEqual(bWithExclude))
}

func TestPartialOrderReflexiveAndTransitive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		gen := func(label string) Body {
			idx := rapid.Uint64Range(0, 30).Draw(t, label+"idx")
			n := rapid.IntRange(0, 5).Draw(t, label+"n")
			if uint64(n) > idx {
				n = int(idx)
			}
			vals := map[uint64]struct{}{}
			for len(vals) < n {
				v := rapid.Uint64Range(0, idx-1).Draw(t, label+"v")
				vals[v] = struct{}{}
			}
			var flat []uint64
			for v := range vals {
				flat = append(flat, v)
			}
			// sort
			for i := 0; i < len(flat); i++ {
				for j := i + 1; j < len(flat); j++ {
					if flat[j] < flat[i] {
						flat[i], flat[j] = flat[j], flat[i]
					}
				}
			}
			ix, err := primitives.NewIndexes(primitives.DefaultParams(), flat)
			require.NoError(t, err)
			body, err := NewBody(primitives.Lovelace(idx), idx, ix)
			require.NoError(t, err)
			return body
		}
		a := gen("a")
		require.True(t, a.LessOrEqual(a))

		b := gen("b")
		c := gen("c")
		if a.LessOrEqual(b) && b.LessOrEqual(c) {
			require.True(t, a.LessOrEqual(c))
		}
	})
}

func TestSquashSignVerify(t *testing.T) {
	_, priv, err := ed25519.GenerateKey(nil)
	require.NoError(t, err)
	var sk primitives.SigningKey
	copy(sk[:], priv)

	body, err := NewBody(10, 3, mustIndexes(t, nil))
	require.NoError(t, err)
	sq, err := Make(sk, []byte("tag"), body)
	require.NoError(t, err)
	require.NoError(t, sq.Verify(sk.Public(), []byte("tag")))
	require.Error(t, sq.Verify(sk.Public(), []byte("other-tag")))
}

func TestBodyCodecRoundTrip(t *testing.T) {
	body, err := NewBody(77, 10, mustIndexes(t, []uint64{1, 4, 9}))
	require.NoError(t, err)
	data, err := body.MarshalCBOR()
	require.NoError(t, err)

	var out Body
	require.NoError(t, out.UnmarshalCBOR(data))
	require.Equal(t, body.Amount, out.Amount)
	require.Equal(t, body.Index, out.Index)
	require.Equal(t, body.Exclude.Values(), out.Exclude.Values())
}
