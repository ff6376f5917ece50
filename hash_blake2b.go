package sphinx

import "golang.org/x/crypto/blake2b"

// Blake2bHash is an alternate Hash capability for tau/blinding, for
// deployments that don't want the core wired to SHA-256.
type Blake2bHash struct{}

func (Blake2bHash) Size() int { return blake2b.Size256 }

func (Blake2bHash) Sum(data ...[]byte) []byte {
	h, err := blake2b.New256(nil)
	if err != nil {
		panic(err) // unkeyed blake2b-256 never fails to construct
	}
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// Blake2bMAC is an alternate MAC capability using BLAKE2b's native keyed
// mode rather than HMAC wrapping, with a configurable output width.
// BLAKE2b supports any digest size up to 64 bytes directly, so a 16- or
// 20-byte tag needs no separate truncation step.
type Blake2bMAC struct{ OutputSize int }

func (m Blake2bMAC) Size() int { return m.OutputSize }

func (m Blake2bMAC) Tag(key []byte, data ...[]byte) []byte {
	h, err := blake2b.New(m.OutputSize, key)
	if err != nil {
		panic(err)
	}
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}
