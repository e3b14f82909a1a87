// Package keylet computes addressable locations in the ledger state map.
// Every entry key is SHA-512Half over a two-byte space identifier followed
// by the entry-specific data, so distinct entry kinds can never collide.
package keylet

import (
	"encoding/binary"

	"github.com/mintforge/goMintd/internal/core/ledger/entry"
	"github.com/mintforge/goMintd/internal/crypto"
)

// Space identifiers for keylet generation.
const (
	spaceToken      uint16 = 'n' // Prepared token record
	spaceDescriptor uint16 = 'x' // Descriptor uniqueness index
	spaceCounter    uint16 = 'c' // Token counter (singleton)
	spaceRoyalty    uint16 = 'y' // Royalty term
	spaceBasePath   uint16 = 'p' // Base descriptor path (singleton)
	spaceOwnerDir   uint16 = 'O' // Owner directory
)

// Keylet represents an addressable location in the ledger state.
// It combines a type identifier with a 256-bit key.
type Keylet struct {
	Type entry.Type
	Key  [32]byte
}

// indexHash computes a keylet key by hashing the space and provided data.
func indexHash(space uint16, data ...[]byte) [32]byte {
	spaceBytes := make([]byte, 2)
	binary.BigEndian.PutUint16(spaceBytes, space)

	inputs := make([][]byte, 0, len(data)+1)
	inputs = append(inputs, spaceBytes)
	inputs = append(inputs, data...)

	return crypto.Sha512Half(inputs...)
}

// uint64Bytes encodes an id as fixed-width big-endian bytes for hashing.
func uint64Bytes(v uint64) []byte {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, v)
	return buf
}

// Token returns the keylet for a prepared token record.
func Token(id uint64) Keylet {
	return Keylet{
		Type: entry.TypeToken,
		Key:  indexHash(spaceToken, uint64Bytes(id)),
	}
}

// DescriptorIndex returns the keylet for the uniqueness index entry of a
// descriptor hash.
func DescriptorIndex(descriptorHash [32]byte) Keylet {
	return Keylet{
		Type: entry.TypeDescriptorIndex,
		Key:  indexHash(spaceDescriptor, descriptorHash[:]),
	}
}

// TokenCounter returns the keylet for the singleton id allocator.
func TokenCounter() Keylet {
	return Keylet{
		Type: entry.TypeTokenCounter,
		Key:  indexHash(spaceCounter),
	}
}

// Royalty returns the keylet for a token's royalty term.
func Royalty(id uint64) Keylet {
	return Keylet{
		Type: entry.TypeRoyalty,
		Key:  indexHash(spaceRoyalty, uint64Bytes(id)),
	}
}

// BasePath returns the keylet for the singleton base descriptor path.
func BasePath() Keylet {
	return Keylet{
		Type: entry.TypeBasePath,
		Key:  indexHash(spaceBasePath),
	}
}

// OwnerDir returns the keylet for an identity's owner directory.
func OwnerDir(owner [20]byte) Keylet {
	return Keylet{
		Type: entry.TypeOwnerDir,
		Key:  indexHash(spaceOwnerDir, owner[:]),
	}
}
