package sphinx

// BOLT04Params instantiates the parameter suite used by the Lightning
// Network's onion routing (BOLT-04): secp256k1, SHA-256, HMAC-SHA-256,
// ChaCha20, N=20 hops of 33-byte payloads each, a 32-byte MAC, and the
// single leading 0x00 version byte. Bit-exact with the reference
// implementation when the same session key, route, and payloads are
// used.
func BOLT04Params() Params {
	version := byte(0x00)
	return Params{
		N:           20,
		L:           33,
		M:           32,
		Group:       Secp256k1Group{},
		Hash:        SHA256Hash{},
		MAC:         HMACSHA256{},
		Stream:      ChaCha20Stream{},
		VersionByte: &version,
	}
}

// BOLT04MessageParams extends BOLT04Params with a fixed-width
// end-to-end encrypted message channel, the "message" variant of the
// wire format.
func BOLT04MessageParams(messageLen int) Params {
	p := BOLT04Params()
	p.MessageLen = messageLen
	return p
}

// TruncatedMACParams builds a secp256k1/ChaCha20 profile using BLAKE2b
// as both the hash and a truncated-width MAC, for deployments that want
// a concrete 16- or 20-byte tag instead of a full SHA-256 digest.
func TruncatedMACParams(n, payloadLen, macLen, messageLen int) Params {
	return Params{
		N:          n,
		L:          payloadLen,
		M:          macLen,
		Group:      Secp256k1Group{},
		Hash:       Blake2bHash{},
		MAC:        Blake2bMAC{OutputSize: macLen},
		Stream:     ChaCha20Stream{},
		MessageLen: messageLen,
	}
}
