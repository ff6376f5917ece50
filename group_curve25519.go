package sphinx

import (
	"errors"
	"math/big"

	"golang.org/x/crypto/curve25519"
)

// curve25519Order is the order of the prime-order subgroup generated by
// the Curve25519 base point (the same subgroup order Ed25519 uses).
// Scalars are kept reduced mod this value so that repeated blinding
// (scalar*scalar, then re-applied as a base-point exponent) stays
// consistent across hops.
var curve25519Order, _ = new(big.Int).SetString("7237005577332262213973186563042994240857116359379907606001950938285454250989", 10)

type curve25519Scalar struct{ b [32]byte }

func (s curve25519Scalar) Bytes() []byte { return append([]byte(nil), s.b[:]...) }

type curve25519Point struct{ b [32]byte }

func (p curve25519Point) Bytes() []byte { return append([]byte(nil), p.b[:]...) }

// curve25519 scalars are little-endian; big.Int wants big-endian.
func scalarToBig(b []byte) *big.Int {
	return new(big.Int).SetBytes(reversed(b))
}

func bigToScalar(v *big.Int) [32]byte {
	v = new(big.Int).Mod(v, curve25519Order)
	be := reversed(v.Bytes())
	var out [32]byte
	copy(out[:], be)
	return out
}

// Curve25519Group is an alternate Group capability built on
// golang.org/x/crypto/curve25519, for deployments that don't want the
// packet core wired to secp256k1. It uses curve25519's raw, unclamped
// ScalarMult/ScalarBaseMult so the session scalar forms an honest ring
// under ScalarMul across the whole blinding chain, the property the
// generic shared-secret derivation relies on.
type Curve25519Group struct{}

func (Curve25519Group) PointSize() int { return 32 }

func (Curve25519Group) ScalarFromBytes(b []byte) (Scalar, error) {
	v := new(big.Int).SetBytes(reversed(b))
	v.Mod(v, curve25519Order)
	if v.Sign() == 0 {
		return nil, errors.New("curve25519: zero scalar")
	}
	return curve25519Scalar{bigToScalar(v)}, nil
}

func (g Curve25519Group) ScalarFromHash(b []byte) (Scalar, error) {
	return g.ScalarFromBytes(b)
}

func (Curve25519Group) BasePoint(s Scalar) (Point, error) {
	sc, ok := s.(curve25519Scalar)
	if !ok {
		return nil, errors.New("curve25519: scalar from a different group")
	}
	var dst [32]byte
	curve25519.ScalarBaseMult(&dst, &sc.b)
	return curve25519Point{dst}, nil
}

func (Curve25519Group) DH(s Scalar, p Point) (Point, error) {
	sc, ok := s.(curve25519Scalar)
	if !ok {
		return nil, errors.New("curve25519: scalar from a different group")
	}
	pt, ok := p.(curve25519Point)
	if !ok {
		return nil, errors.New("curve25519: point from a different group")
	}
	var dst [32]byte
	curve25519.ScalarMult(&dst, &sc.b, &pt.b)
	if isZero(dst[:]) {
		return nil, errors.New("curve25519: low-order point")
	}
	return curve25519Point{dst}, nil
}

func (Curve25519Group) ScalarMul(a, b Scalar) (Scalar, error) {
	sa, ok := a.(curve25519Scalar)
	if !ok {
		return nil, errors.New("curve25519: scalar from a different group")
	}
	sb, ok := b.(curve25519Scalar)
	if !ok {
		return nil, errors.New("curve25519: scalar from a different group")
	}
	product := new(big.Int).Mul(scalarToBig(sa.b[:]), scalarToBig(sb.b[:]))
	product.Mod(product, curve25519Order)
	if product.Sign() == 0 {
		return nil, errors.New("curve25519: scalar product is zero")
	}
	return curve25519Scalar{bigToScalar(product)}, nil
}

func (Curve25519Group) ParsePoint(b []byte) (Point, error) {
	if len(b) != 32 {
		return nil, errors.New("curve25519: point must be 32 bytes")
	}
	var pt curve25519Point
	copy(pt.b[:], b)
	return pt, nil
}

func reversed(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		out[len(b)-1-i] = c
	}
	return out
}
