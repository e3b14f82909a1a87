// Package entry defines the ledger entry types tracked by the state map.
package entry

import "fmt"

// Type identifies the kind of a serialized ledger entry. It is stored as
// the first byte of every encoded entry so that metadata generation can
// name affected entries without type-specific decoding.
type Type uint8

const (
	// TypeToken is a prepared token record: creator, descriptor, mint
	// status and, once minted, the owner of record.
	TypeToken Type = 0x01

	// TypeDescriptorIndex maps a descriptor hash to the token id that
	// claimed it. The index is injective: one hash, one id, forever.
	TypeDescriptorIndex Type = 0x02

	// TypeTokenCounter is the singleton id allocator. Its value equals
	// the count of prepared tokens.
	TypeTokenCounter Type = 0x03

	// TypeRoyalty is a per-token royalty term set by the creator.
	TypeRoyalty Type = 0x04

	// TypeBasePath is the singleton descriptor resolution prefix.
	TypeBasePath Type = 0x05

	// TypeOwnerDir tracks how many minted tokens an identity holds.
	TypeOwnerDir Type = 0x06
)

// String returns the entry type name as it appears in operation metadata.
func (t Type) String() string {
	switch t {
	case TypeToken:
		return "Token"
	case TypeDescriptorIndex:
		return "DescriptorIndex"
	case TypeTokenCounter:
		return "TokenCounter"
	case TypeRoyalty:
		return "Royalty"
	case TypeBasePath:
		return "BasePath"
	case TypeOwnerDir:
		return "OwnerDir"
	default:
		return fmt.Sprintf("Unknown(0x%02x)", uint8(t))
	}
}
