package sphinx

import (
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func curve25519Params(n, l, m int) Params {
	return Params{
		N:      n,
		L:      l,
		M:      m,
		Group:  Curve25519Group{},
		Hash:   SHA256Hash{},
		MAC:    HMACSHA256{},
		Stream: ChaCha20Stream{},
	}
}

func randomCurve25519Scalar(t *testing.T, g Curve25519Group) Scalar {
	t.Helper()
	b := make([]byte, 32)
	for {
		_, err := rand.Read(b)
		require.NoError(t, err)
		s, err := g.ScalarFromBytes(b)
		if err == nil {
			return s
		}
	}
}

// TestCurve25519DHSymmetry checks the fundamental ECDH identity the
// shared-secret derivation relies on: a*(b*G) == b*(a*G).
func TestCurve25519DHSymmetry(t *testing.T) {
	g := Curve25519Group{}

	a := randomCurve25519Scalar(t, g)
	b := randomCurve25519Scalar(t, g)

	aPub, err := g.BasePoint(a)
	require.NoError(t, err)
	bPub, err := g.BasePoint(b)
	require.NoError(t, err)

	sharedAB, err := g.DH(a, bPub)
	require.NoError(t, err)
	sharedBA, err := g.DH(b, aPub)
	require.NoError(t, err)

	assert.Equal(t, sharedAB.Bytes(), sharedBA.Bytes())
}

// TestCurve25519RoundTrip demonstrates the packet core is not hard-wired
// to secp256k1: a full construct/process round trip using the alternate
// Curve25519Group.
func TestCurve25519RoundTrip(t *testing.T) {
	params := curve25519Params(6, 24, 16)
	g := params.Group.(Curve25519Group)

	sessionScalar := randomCurve25519Scalar(t, g)

	const k = 3
	hopScalars := make([]Scalar, k)
	route := make([]HopInput, k)
	for i := 0; i < k; i++ {
		hopScalars[i] = randomCurve25519Scalar(t, g)
		pub, err := g.BasePoint(hopScalars[i])
		require.NoError(t, err)

		payload := make([]byte, params.L)
		_, err = rand.Read(payload)
		require.NoError(t, err)
		route[i] = HopInput{Point: pub, Payload: payload}
	}

	pkt, err := Construct(params, sessionScalar, route, []byte("ad"), nil, nil)
	require.NoError(t, err)

	cur := pkt
	for i := 0; i < k; i++ {
		processed, err := Process(params, hopScalars[i], cur, []byte("ad"))
		if i == k-1 {
			require.ErrorIs(t, err, ErrExitHop)
		} else {
			require.NoError(t, err)
			cur = processed.Next
		}
		assert.Equal(t, route[i].Payload, processed.Payload)
	}
}
