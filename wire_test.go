package sphinx

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeDeserializeRoundTrip(t *testing.T) {
	params := BOLT04Params()

	sessionPriv, err := secp256k1.GeneratePrivateKey()
	require.NoError(t, err)
	sessionScalar, err := params.Group.ScalarFromBytes(sessionPriv.Serialize())
	require.NoError(t, err)

	_, route := buildRoute(t, params, 5)
	ad := randomBytes(t, 4)

	pkt, err := Construct(params, sessionScalar, route, ad, nil, nil)
	require.NoError(t, err)

	raw := pkt.Serialize()
	parsed, err := Deserialize(params, raw)
	require.NoError(t, err)

	assert.Equal(t, raw, parsed.Serialize())
	assert.Equal(t, pkt.Hmac, parsed.Hmac)
	assert.Equal(t, pkt.Ephemeral.Bytes(), parsed.Ephemeral.Bytes())
}

func TestDeserializeRejectsWrongLength(t *testing.T) {
	params := BOLT04Params()
	_, err := Deserialize(params, make([]byte, params.wireLen()-1))
	require.ErrorIs(t, err, ErrInvalidPacketLength)
}

func TestDeserializeRejectsWrongVersion(t *testing.T) {
	params := BOLT04Params()
	raw := make([]byte, params.wireLen())
	raw[0] = 0x01
	_, err := Deserialize(params, raw)
	require.ErrorIs(t, err, ErrInvalidVersion)
}
