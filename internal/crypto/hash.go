// Package crypto provides the hashing and signing primitives used by the
// ledger: SHA-512Half for state keys and descriptor digests, RIPEMD160
// account IDs, and secp256k1 operation signatures.
package crypto

import "crypto/sha512"

// HashSize is the size of a ledger hash in bytes.
const HashSize = 32

// Sha512Half returns the first 32 bytes of a SHA-512 hash over the
// concatenation of the given inputs.
func Sha512Half(inputs ...[]byte) [HashSize]byte {
	h := sha512.New()
	for _, in := range inputs {
		h.Write(in)
	}
	sum := h.Sum(nil)

	var result [HashSize]byte
	copy(result[:], sum[:HashSize])
	return result
}
