package sphinx

import "fmt"

// DeriveSharedSecrets computes, for a session scalar and an ordered
// route of hop points, the per-hop shared secrets and the ephemeral
// public point the first hop will see. A sender that wants to rebuild a
// packet along the same route with different payloads can call this
// once and reuse the result with Assemble, skipping a repeat of the
// Diffie-Hellman exchange.
func DeriveSharedSecrets(params Params, sessionScalar Scalar, route []Point) ([][]byte, Point, error) {
	if len(route) < 1 || len(route) > params.N {
		return nil, nil, fmt.Errorf("%w: %d hops, must be in [1,%d]", ErrRouteLength, len(route), params.N)
	}

	x := sessionScalar
	alpha, err := params.Group.BasePoint(x)
	if err != nil {
		return nil, nil, &GroupError{Op: "base-point", Err: err}
	}
	ephemeral := alpha

	secrets := make([][]byte, len(route))
	for i, hopPoint := range route {
		dh, err := params.Group.DH(x, hopPoint)
		if err != nil {
			return nil, nil, &GroupError{Op: "dh", Err: err}
		}
		s := params.tau(dh)
		secrets[i] = s

		b, err := params.blinding(alpha, s)
		if err != nil {
			return nil, nil, &GroupError{Op: "blinding", Err: err}
		}

		x, err = params.Group.ScalarMul(x, b)
		if err != nil {
			return nil, nil, &GroupError{Op: "scalar-mul", Err: err}
		}
		alpha, err = params.Group.BasePoint(x)
		if err != nil {
			return nil, nil, &GroupError{Op: "base-point", Err: err}
		}
	}

	return secrets, ephemeral, nil
}
