package sphinx

import (
	"testing"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/stretchr/testify/require"
)

// TestRoutingInfoByteDistribution is a light-weight statistical
// indistinguishability check: it samples one byte position across many
// independent constructions with random routes of varying length and
// checks the observed byte-value distribution isn't grossly skewed. A
// full chi-square test over every position is left to an offline
// statistical harness; this is a smoke check that filler/XOR encryption
// isn't leaking obvious structure.
func TestRoutingInfoByteDistribution(t *testing.T) {
	params := BOLT04Params()

	const samples = 2000
	var buckets [16]int // coarse: high nibble of the sampled byte

	for i := 0; i < samples; i++ {
		sessionPriv, err := secp256k1.GeneratePrivateKey()
		require.NoError(t, err)
		sessionScalar, err := params.Group.ScalarFromBytes(sessionPriv.Serialize())
		require.NoError(t, err)

		k := 1 + i%params.N
		_, route := buildRoute(t, params, k)

		pkt, err := Construct(params, sessionScalar, route, nil, nil, nil)
		require.NoError(t, err)

		b := pkt.RoutingInfo.Bytes()[params.SlotSize()/2]
		buckets[b>>4]++
	}

	expected := float64(samples) / 16
	var chiSquare float64
	for _, observed := range buckets {
		diff := float64(observed) - expected
		chiSquare += diff * diff / expected
	}

	// 15 degrees of freedom; a generous cutoff well above the 0.01
	// critical value (~30) catches gross bias without making the test
	// flaky on a fair sample.
	require.Lessf(t, chiSquare, 60.0, "chi-square %.2f suggests routing_info bytes are not uniform", chiSquare)
}
