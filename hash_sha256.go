package sphinx

import (
	"crypto/hmac"
	"crypto/sha256"
)

// SHA256Hash is the default Hash capability, required for BOLT-04
// bit-exactness.
type SHA256Hash struct{}

func (SHA256Hash) Size() int { return sha256.Size }

func (SHA256Hash) Sum(data ...[]byte) []byte {
	h := sha256.New()
	for _, d := range data {
		h.Write(d)
	}
	return h.Sum(nil)
}

// HMACSHA256 is the default MAC capability.
type HMACSHA256 struct{}

func (HMACSHA256) Size() int { return sha256.Size }

func (HMACSHA256) Tag(key []byte, data ...[]byte) []byte {
	mac := hmac.New(sha256.New, key)
	for _, d := range data {
		mac.Write(d)
	}
	return mac.Sum(nil)
}
