// Package sle defines the serialized ledger entries of the token ledger
// and their binary codecs. Every encoded entry starts with a one-byte
// entry type tag so metadata generation can name entries generically.
package sle

import (
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/mintforge/goMintd/internal/core/ledger/entry"
)

// Codec errors.
var (
	ErrShortEntry    = errors.New("entry data too short")
	ErrWrongType     = errors.New("entry type tag mismatch")
	ErrBadAccountID  = errors.New("malformed account id")
	ErrDescriptorLen = errors.New("descriptor exceeds maximum length")
)

// AccountIDSize is the size of an identity in bytes.
const AccountIDSize = 20

// MaxDescriptorLen bounds the descriptor, which is length-prefixed with
// a uint16 in the token entry encoding.
const MaxDescriptorLen = 0xFFFF

// AccountID is a 160-bit identity, rendered as 40 hex characters.
type AccountID [AccountIDSize]byte

// ZeroAccountID is the neutral identity: the royaltyInfo recipient when
// no term is set, and never a valid operation source.
var ZeroAccountID AccountID

// DecodeAccountID parses a 40-character hex identity.
func DecodeAccountID(s string) (AccountID, error) {
	var id AccountID
	raw, err := hex.DecodeString(s)
	if err != nil {
		return id, fmt.Errorf("%w: %v", ErrBadAccountID, err)
	}
	if len(raw) != AccountIDSize {
		return id, fmt.Errorf("%w: got %d bytes", ErrBadAccountID, len(raw))
	}
	copy(id[:], raw)
	return id, nil
}

// String returns the hex form of the identity.
func (a AccountID) String() string {
	return hex.EncodeToString(a[:])
}

// IsZero reports whether this is the neutral identity.
func (a AccountID) IsZero() bool {
	return a == ZeroAccountID
}

// EntryType reads the type tag of an encoded entry.
func EntryType(data []byte) entry.Type {
	if len(data) == 0 {
		return 0
	}
	return entry.Type(data[0])
}

// checkTag validates the tag byte of an encoded entry.
func checkTag(data []byte, want entry.Type) error {
	if len(data) < 1 {
		return ErrShortEntry
	}
	if entry.Type(data[0]) != want {
		return fmt.Errorf("%w: want %s, got %s", ErrWrongType, want, entry.Type(data[0]))
	}
	return nil
}
