package sphinx

// Domain separation labels for MAC-keyed derivation. um is used rather
// than the older pi label seen in some Sphinx drafts, matching BOLT-04.
var (
	labelRho = []byte("rho")
	labelMu  = []byte("mu")
	labelUm  = []byte("um")
)

// rhoStream seeds the keystream used to encrypt/decrypt routing_info and
// filler from a per-hop shared secret.
func (p Params) rhoStream(secret []byte) (KeyStream, error) {
	return p.Stream.New(p.streamKey(labelRho, secret))
}

// umStream seeds the keystream used to encrypt/decrypt the optional
// end-to-end message from a per-hop shared secret.
func (p Params) umStream(secret []byte) (KeyStream, error) {
	return p.Stream.New(p.streamKey(labelUm, secret))
}

// streamKey derives the Stream capability's key for label and secret.
// When the MAC is at least Stream.KeySize() wide, the key is the
// label-keyed MAC of the secret cut to that width (with HMAC-SHA-256 and
// ChaCha20, the BOLT-04 rho/um key). A narrower MAC, such as a 20-byte
// BLAKE2b tag, cannot fill the key, so label and secret are then
// expanded through repeated Hash calls over a block counter instead.
func (p Params) streamKey(label []byte, secret []byte) []byte {
	n := p.Stream.KeySize()
	if key := p.MAC.Tag(label, secret); len(key) >= n {
		return key[:n]
	}
	out := make([]byte, 0, n)
	for counter := byte(0); len(out) < n; counter++ {
		out = append(out, p.Hash.Sum(label, secret, []byte{counter})...)
	}
	return out[:n]
}

// muKey derives the HMAC key used for routing_info integrity from a
// per-hop shared secret.
func (p Params) muKey(secret []byte) []byte {
	return p.MAC.Tag(labelMu, secret)
}

// mac computes the integrity tag over data and associatedData, truncated
// to the wire width M. This is the convention the truncated-MAC profiles
// (e.g. M=16 or M=20 over a 32-byte BLAKE2b/HMAC-SHA-256 primitive) rely
// on. Both the chained per-hop tag and the packet's top-level Hmac go
// through this so a forwarded packet's Hmac field is always exactly M
// bytes, matching what the next hop recomputes.
func (p Params) mac(key []byte, data ...[]byte) []byte {
	return p.MAC.Tag(key, data...)[:p.M]
}

// tau compresses a DH point into the fixed-length shared secret.
func (p Params) tau(point Point) []byte {
	return p.Hash.Sum(point.Bytes())
}

// blinding derives the scalar that updates the session key (at the
// sender) or the ephemeral point (at a hop) from the point it was
// computed against and the shared secret derived there.
func (p Params) blinding(point Point, secret []byte) (Scalar, error) {
	return p.Group.ScalarFromHash(p.Hash.Sum(point.Bytes(), secret))
}
