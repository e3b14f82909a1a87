package crypto

import (
	"crypto/sha256"

	"github.com/decred/dcrd/crypto/ripemd160"
)

// AccountIDSize is the size of an account ID in bytes.
const AccountIDSize = 20

// CalcAccountID computes the account ID for a public key as
// RIPEMD160(SHA256(publicKey)).
//
// Two different hash functions are used so that a length extension on one
// does not carry to the other, and RIPEMD160 is the only hash generally
// considered safe at 160 bits.
func CalcAccountID(publicKey []byte) [AccountIDSize]byte {
	sha := sha256.Sum256(publicKey)

	ripemd := ripemd160.New()
	ripemd.Write(sha[:])
	digest := ripemd.Sum(nil)

	var result [AccountIDSize]byte
	copy(result[:], digest)
	return result
}

// IsZeroAccountID returns true if the account ID is all zeros. The zero
// account is the neutral identity used when no royalty term is set.
func IsZeroAccountID(id [AccountIDSize]byte) bool {
	for _, b := range id {
		if b != 0 {
			return false
		}
	}
	return true
}
