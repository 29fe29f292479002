package codec

import (
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/stretchr/testify/require"
)

type sample struct {
	A uint64
	B []byte
}

func TestMarshalRoundTrip(t *testing.T) {
	in := sample{A: 42, B: []byte("hello")}
	data, err := Marshal(in)
	require.NoError(t, err)

	var out sample
	require.NoError(t, Unmarshal(data, &out))
	require.Equal(t, in, out)
}

func TestMarshalIsDeterministic(t *testing.T) {
	in := sample{A: 7, B: []byte{1, 2, 3}}
	a, err := Marshal(in)
	require.NoError(t, err)
	b, err := Marshal(in)
	require.NoError(t, err)
	require.Equal(t, a, b)
}

func TestConstrRoundTrip(t *testing.T) {
	c := Constr{
		Tag: 2,
		Fields: []cbor.RawMessage{
			EncodeField(uint64(9)),
			EncodeField("payload"),
		},
	}
	data, err := c.MarshalCBOR()
	require.NoError(t, err)

	var out Constr
	require.NoError(t, out.UnmarshalCBOR(data))
	require.Equal(t, c.Tag, out.Tag)

	var n uint64
	require.NoError(t, DecodeField(out.Fields[0], &n))
	require.Equal(t, uint64(9), n)

	var s string
	require.NoError(t, DecodeField(out.Fields[1], &s))
	require.Equal(t, "payload", s)
}

func TestPreimageConcatenatesTagThenBody(t *testing.T) {
	body := sample{A: 1, B: []byte{0xaa}}
	encodedBody, err := Marshal(body)
	require.NoError(t, err)

	pre, err := Preimage([]byte("tag"), body)
	require.NoError(t, err)
	require.Equal(t, append([]byte("tag"), encodedBody...), pre)
}
