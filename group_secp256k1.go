package sphinx

import (
	"errors"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

// secp256k1Scalar and secp256k1Point adapt decred's secp256k1 types to
// the Scalar/Point interfaces.
type secp256k1Scalar struct{ key *secp256k1.PrivateKey }

func (s secp256k1Scalar) Bytes() []byte { return s.key.Serialize() }

type secp256k1Point struct{ key *secp256k1.PublicKey }

func (p secp256k1Point) Bytes() []byte { return p.key.SerializeCompressed() }

// Secp256k1Group is the default Group capability: secp256k1 scalar and
// point arithmetic via github.com/decred/dcrd/dcrec/secp256k1/v4,
// required for BOLT-04 bit-exactness.
type Secp256k1Group struct{}

// PointSize is the width of a compressed secp256k1 public key.
func (Secp256k1Group) PointSize() int { return 33 }

func (Secp256k1Group) ScalarFromBytes(b []byte) (Scalar, error) {
	if len(b) != 32 {
		return nil, errors.New("secp256k1: scalar must be 32 bytes")
	}
	priv := secp256k1.PrivKeyFromBytes(b)
	if priv.Key.IsZero() {
		return nil, errors.New("secp256k1: zero scalar")
	}
	return secp256k1Scalar{priv}, nil
}

func (g Secp256k1Group) ScalarFromHash(b []byte) (Scalar, error) {
	return g.ScalarFromBytes(b)
}

func (Secp256k1Group) BasePoint(s Scalar) (Point, error) {
	sc, ok := s.(secp256k1Scalar)
	if !ok {
		return nil, errors.New("secp256k1: scalar from a different group")
	}
	return secp256k1Point{sc.key.PubKey()}, nil
}

// DH returns s*p via Jacobian scalar multiplication.
func (Secp256k1Group) DH(s Scalar, p Point) (Point, error) {
	sc, ok := s.(secp256k1Scalar)
	if !ok {
		return nil, errors.New("secp256k1: scalar from a different group")
	}
	pt, ok := p.(secp256k1Point)
	if !ok {
		return nil, errors.New("secp256k1: point from a different group")
	}

	var pkPoint, dhPoint secp256k1.JacobianPoint
	pt.key.AsJacobian(&pkPoint)
	secp256k1.ScalarMultNonConst(&sc.key.Key, &pkPoint, &dhPoint)
	dhPoint.ToAffine()
	return secp256k1Point{secp256k1.NewPublicKey(&dhPoint.X, &dhPoint.Y)}, nil
}

func (Secp256k1Group) ScalarMul(a, b Scalar) (Scalar, error) {
	sa, ok := a.(secp256k1Scalar)
	if !ok {
		return nil, errors.New("secp256k1: scalar from a different group")
	}
	sb, ok := b.(secp256k1Scalar)
	if !ok {
		return nil, errors.New("secp256k1: scalar from a different group")
	}

	result := *sa.key
	result.Key.Mul(&sb.key.Key)
	if result.Key.IsZero() {
		return nil, errors.New("secp256k1: scalar product is zero")
	}
	return secp256k1Scalar{&result}, nil
}

func (Secp256k1Group) ParsePoint(b []byte) (Point, error) {
	pk, err := secp256k1.ParsePubKey(b)
	if err != nil {
		return nil, err
	}
	return secp256k1Point{pk}, nil
}
