package sle

import (
	"encoding/binary"

	"github.com/mintforge/goMintd/internal/core/ledger/entry"
)

// DescriptorIndex entry: [tag][8 bytes: claiming token id].
// The descriptor hash itself lives in the entry's keylet.

// SerializeDescriptorIndex encodes a descriptor index entry.
func SerializeDescriptorIndex(id uint64) []byte {
	buf := make([]byte, 9)
	buf[0] = byte(entry.TypeDescriptorIndex)
	binary.BigEndian.PutUint64(buf[1:], id)
	return buf
}

// ParseDescriptorIndex decodes the claiming token id.
func ParseDescriptorIndex(data []byte) (uint64, error) {
	if err := checkTag(data, entry.TypeDescriptorIndex); err != nil {
		return 0, err
	}
	if len(data) < 9 {
		return 0, ErrShortEntry
	}
	return binary.BigEndian.Uint64(data[1:]), nil
}

// TokenCounter entry: [tag][8 bytes: last issued id].

// SerializeTokenCounter encodes the id allocator state.
func SerializeTokenCounter(lastIssued uint64) []byte {
	buf := make([]byte, 9)
	buf[0] = byte(entry.TypeTokenCounter)
	binary.BigEndian.PutUint64(buf[1:], lastIssued)
	return buf
}

// ParseTokenCounter decodes the id allocator state. A nil entry (counter
// never written) decodes as zero issued ids.
func ParseTokenCounter(data []byte) (uint64, error) {
	if data == nil {
		return 0, nil
	}
	if err := checkTag(data, entry.TypeTokenCounter); err != nil {
		return 0, err
	}
	if len(data) < 9 {
		return 0, ErrShortEntry
	}
	return binary.BigEndian.Uint64(data[1:]), nil
}

// Royalty is a per-token royalty term.
type Royalty struct {
	TokenID   uint64
	Recipient AccountID
	Bps       uint16
}

// Royalty entry: [tag][8 bytes: token id][20 bytes: recipient][2 bytes: bps].
const royaltySize = 1 + 8 + AccountIDSize + 2

// SerializeRoyalty encodes a royalty term.
func SerializeRoyalty(r *Royalty) []byte {
	buf := make([]byte, royaltySize)
	off := 0

	buf[off] = byte(entry.TypeRoyalty)
	off++

	binary.BigEndian.PutUint64(buf[off:], r.TokenID)
	off += 8

	copy(buf[off:], r.Recipient[:])
	off += AccountIDSize

	binary.BigEndian.PutUint16(buf[off:], r.Bps)
	return buf
}

// ParseRoyalty decodes a royalty term.
func ParseRoyalty(data []byte) (*Royalty, error) {
	if err := checkTag(data, entry.TypeRoyalty); err != nil {
		return nil, err
	}
	if len(data) < royaltySize {
		return nil, ErrShortEntry
	}

	r := &Royalty{}
	off := 1

	r.TokenID = binary.BigEndian.Uint64(data[off:])
	off += 8

	copy(r.Recipient[:], data[off:])
	off += AccountIDSize

	r.Bps = binary.BigEndian.Uint16(data[off:])
	return r, nil
}

// BasePath entry: [tag][2 bytes: length][path bytes].

// SerializeBasePath encodes the base descriptor path.
func SerializeBasePath(path string) ([]byte, error) {
	raw := []byte(path)
	if len(raw) > MaxDescriptorLen {
		return nil, ErrDescriptorLen
	}

	buf := make([]byte, 3+len(raw))
	buf[0] = byte(entry.TypeBasePath)
	binary.BigEndian.PutUint16(buf[1:], uint16(len(raw)))
	copy(buf[3:], raw)
	return buf, nil
}

// ParseBasePath decodes the base descriptor path. A nil entry decodes as
// the empty path.
func ParseBasePath(data []byte) (string, error) {
	if data == nil {
		return "", nil
	}
	if err := checkTag(data, entry.TypeBasePath); err != nil {
		return "", err
	}
	if len(data) < 3 {
		return "", ErrShortEntry
	}
	n := int(binary.BigEndian.Uint16(data[1:]))
	if len(data) < 3+n {
		return "", ErrShortEntry
	}
	return string(data[3 : 3+n]), nil
}

// OwnerDir entry: [tag][8 bytes: owned token count].

// SerializeOwnerDir encodes an identity's owned-token count.
func SerializeOwnerDir(count uint64) []byte {
	buf := make([]byte, 9)
	buf[0] = byte(entry.TypeOwnerDir)
	binary.BigEndian.PutUint64(buf[1:], count)
	return buf
}

// ParseOwnerDir decodes an identity's owned-token count. A nil entry
// decodes as zero.
func ParseOwnerDir(data []byte) (uint64, error) {
	if data == nil {
		return 0, nil
	}
	if err := checkTag(data, entry.TypeOwnerDir); err != nil {
		return 0, err
	}
	if len(data) < 9 {
		return 0, ErrShortEntry
	}
	return binary.BigEndian.Uint64(data[1:]), nil
}
