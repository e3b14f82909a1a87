package testing

import (
	"crypto/sha512"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"

	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/crypto"
)

// Account represents a test identity with a keypair and account id.
type Account struct {
	// Name is a human-readable identifier for the account (used for debugging).
	Name string

	// PublicKey is the compressed secp256k1 public key bytes.
	PublicKey []byte

	// PrivateKey is the signing key.
	PrivateKey *secp256k1.PrivateKey

	// ID is the 20-byte account id derived from the public key.
	ID sle.AccountID
}

// NewAccount creates a test account with a deterministic keypair derived
// from the name. The same name always produces the same account, keeping
// tests reproducible.
func NewAccount(name string) *Account {
	hash := sha512.Sum512([]byte(name))
	priv := secp256k1.PrivKeyFromBytes(hash[:32])
	pub := priv.PubKey().SerializeCompressed()

	return &Account{
		Name:       name,
		PublicKey:  pub,
		PrivateKey: priv,
		ID:         crypto.CalcAccountID(pub),
	}
}

// Address returns the hex account id string used in operations.
func (a *Account) Address() string {
	return a.ID.String()
}
