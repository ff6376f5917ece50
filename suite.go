// Package sphinx implements the core cryptographic packet format of a
// Sphinx mix-net: header assembly with filler padding, per-hop keystream
// encryption, HMAC chaining, and ephemeral-key blinding. It is a pure
// transformation between a path description and a fixed-size packet:
// no I/O, no network or storage glue, no retained state.
package sphinx

// Scalar is an opaque group scalar: a session key, a hop's long-term
// private key, or a derived blinding factor.
type Scalar interface {
	Bytes() []byte
}

// Point is a group element serialised to a fixed-width byte string, e.g.
// a compressed public key.
type Point interface {
	Bytes() []byte
}

// Group binds together the scalar/point arithmetic the packet core
// needs: Diffie-Hellman, base-point multiplication, scalar chaining for
// blinding, and point (de)serialisation. Implementations must reject
// invalid input rather than panic.
type Group interface {
	// PointSize is the width in bytes of a serialised Point.
	PointSize() int

	// ScalarFromBytes decodes a scalar from session-key material,
	// reducing it modulo the group order and rejecting a value that is
	// zero after reduction.
	ScalarFromBytes(b []byte) (Scalar, error)

	// ScalarFromHash interprets a hash/MAC digest as a scalar, used to
	// turn a blinding factor's digest into a group scalar.
	ScalarFromHash(b []byte) (Scalar, error)

	// BasePoint returns s*G for the group's fixed base point.
	BasePoint(s Scalar) (Point, error)

	// DH returns s*p: Diffie-Hellman when p is a peer's public point,
	// or the re-blinding of an ephemeral point when s is a blinding
	// factor. Both are the same scalar-times-point operation.
	DH(s Scalar, p Point) (Point, error)

	// ScalarMul returns a*b, used to fold a blinding factor into the
	// session scalar carried hop to hop.
	ScalarMul(a, b Scalar) (Scalar, error)

	// ParsePoint decodes and validates a serialised point.
	ParsePoint(b []byte) (Point, error)
}

// Hash absorbs one or more byte strings and finalises to a fixed-width
// digest (tau: compressing a DH point down to a shared secret).
type Hash interface {
	Size() int
	Sum(data ...[]byte) []byte
}

// MAC is a keyed message authentication code: mu key derivation keys the
// MAC on a fixed domain-separation label and absorbs the shared secret,
// as do rho/um when the MAC is at least as wide as the Stream key;
// header integrity keys the MAC on mu(s) and absorbs the routing_info
// plus associated data.
type MAC interface {
	Size() int
	Tag(key []byte, data ...[]byte) []byte
}

// KeyStream is a seekable pseudo-random byte stream produced from a
// fixed-width key.
type KeyStream interface {
	XORKeyStream(dst, src []byte)
	// Seek moves the stream forward to the given byte offset from its
	// start. ChaCha20Stream cannot move backwards: seeking to an offset
	// before its current position panics.
	Seek(byteOffset uint64) error
}

// Stream seeds a KeyStream from a fixed-width key.
type Stream interface {
	// KeySize is the exact key width New requires. Key derivation must
	// produce material of this width regardless of the MAC's (possibly
	// truncated) output size.
	KeySize() int
	New(key []byte) (KeyStream, error)
}

// Params is the capability suite (group, hash, MAC, keystream) plus the
// fixed sizes the wire format is built from: N routing slots of L-byte
// payload and M-byte MAC each. It must not hard-wire any one group or
// hash; alternate instantiations (truncated MACs, different curves) are
// just different Params values.
type Params struct {
	N int // number of routing_info slots, fixed regardless of route length
	L int // per-hop payload width
	M int // MAC width

	Group  Group
	Hash   Hash
	MAC    MAC
	Stream Stream

	// VersionByte, when non-nil, is prefixed to the wire encoding and
	// checked on parse. The pure-header BOLT-04 profile carries 0x00;
	// other profiles may omit it entirely.
	VersionByte *byte

	// MessageLen is the width of the optional end-to-end encrypted
	// message channel. Zero means the header-only variant.
	MessageLen int
}

// SlotSize is the width in bytes of one routing_info slot.
func (p Params) SlotSize() int { return p.L + p.M }

// PathSize is the total width in bytes of routing_info.
func (p Params) PathSize() int { return p.N * p.SlotSize() }

func (p Params) wireLen() int {
	n := p.Group.PointSize() + p.PathSize() + p.M
	if p.VersionByte != nil {
		n++
	}
	if p.MessageLen > 0 {
		n += p.MessageLen
	}
	return n
}
