package crypto

import (
	"errors"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// ErrBadSignature is returned when a signature does not verify against the
// given public key and payload.
var ErrBadSignature = errors.New("signature verification failed")

// GenerateKeyPair creates a fresh secp256k1 key pair and returns the
// private key together with the compressed public key bytes.
func GenerateKeyPair() (*secp256k1.PrivateKey, []byte, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return nil, nil, fmt.Errorf("generate private key: %w", err)
	}
	return priv, priv.PubKey().SerializeCompressed(), nil
}

// Sign signs the SHA-512Half digest of payload with the given private key
// and returns a DER-encoded signature.
func Sign(priv *secp256k1.PrivateKey, payload []byte) []byte {
	digest := Sha512Half(payload)
	sig := ecdsa.Sign(priv, digest[:])
	return sig.Serialize()
}

// Verify checks a DER-encoded signature over the SHA-512Half digest of
// payload against the compressed public key bytes.
func Verify(publicKey, payload, signature []byte) error {
	pub, err := secp256k1.ParsePubKey(publicKey)
	if err != nil {
		return fmt.Errorf("parse public key: %w", err)
	}

	sig, err := ecdsa.ParseDERSignature(signature)
	if err != nil {
		return fmt.Errorf("parse signature: %w", err)
	}

	digest := Sha512Half(payload)
	if !sig.Verify(digest[:], pub) {
		return ErrBadSignature
	}
	return nil
}
