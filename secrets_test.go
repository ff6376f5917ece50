package sphinx

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestAssembleMatchesConstruct exercises the split derive/assemble form:
// deriving shared secrets once and reusing them to assemble a packet
// along a route must produce the same result Construct would for the
// same payloads.
func TestAssembleMatchesConstruct(t *testing.T) {
	params := BOLT04Params()

	sessionPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	sessionScalar, err := params.Group.ScalarFromBytes(sessionPriv.Serialize())
	require.NoError(t, err)

	hops, route := buildRoute(t, params, 4)
	points := make([]Point, len(route))
	payloads := make([][]byte, len(route))
	for i, h := range route {
		points[i] = h.Point
		payloads[i] = h.Payload
	}

	viaConstruct, err := Construct(params, sessionScalar, route, nil, nil, nil)
	require.NoError(t, err)

	secrets, ephemeral, err := DeriveSharedSecrets(params, sessionScalar, points)
	require.NoError(t, err)
	viaAssemble, err := Assemble(params, secrets, ephemeral, payloads, nil, nil, nil)
	require.NoError(t, err)

	assert.Equal(t, viaConstruct.Serialize(), viaAssemble.Serialize())

	// Processing through the same hops must still recover the payloads.
	cur := viaAssemble
	for i := 0; i < len(route); i++ {
		scalar, err := params.Group.ScalarFromBytes(hops[i].priv.Serialize())
		require.NoError(t, err)
		processed, err := Process(params, scalar, cur, nil)
		if i == len(route)-1 {
			require.ErrorIs(t, err, ErrExitHop)
		} else {
			require.NoError(t, err)
			cur = processed.Next
		}
		assert.Equal(t, payloads[i], processed.Payload)
	}
}

func TestDeriveSharedSecretsRejectsOutOfRangeRoute(t *testing.T) {
	params := BOLT04Params()
	sessionPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	sessionScalar, err := params.Group.ScalarFromBytes(sessionPriv.Serialize())
	require.NoError(t, err)

	_, _, err = DeriveSharedSecrets(params, sessionScalar, nil)
	require.ErrorIs(t, err, ErrRouteLength)
}
