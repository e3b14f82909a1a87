package sle

import (
	"encoding/binary"
	"fmt"

	"github.com/mintforge/goMintd/internal/core/ledger/entry"
)

// Token is a prepared token record.
//
// Creator and Descriptor are write-once: set at preparation, never
// mutated. Minted flips false→true exactly once, and Owner is meaningful
// only while Minted is true.
type Token struct {
	ID         uint64
	Creator    AccountID
	Descriptor string
	Minted     bool
	Owner      AccountID
}

// Token entry layout:
//
//	[1 byte:  entry type tag]
//	[8 bytes: id (big-endian)]
//	[20 bytes: creator]
//	[1 byte:  minted flag]
//	[20 bytes: owner (zero while unminted)]
//	[2 bytes: descriptor length]
//	[descriptor bytes (UTF-8)]
const tokenFixedSize = 1 + 8 + AccountIDSize + 1 + AccountIDSize + 2

// SerializeToken encodes a token record.
func SerializeToken(t *Token) ([]byte, error) {
	desc := []byte(t.Descriptor)
	if len(desc) > MaxDescriptorLen {
		return nil, ErrDescriptorLen
	}

	buf := make([]byte, tokenFixedSize+len(desc))
	off := 0

	buf[off] = byte(entry.TypeToken)
	off++

	binary.BigEndian.PutUint64(buf[off:], t.ID)
	off += 8

	copy(buf[off:], t.Creator[:])
	off += AccountIDSize

	if t.Minted {
		buf[off] = 1
	}
	off++

	copy(buf[off:], t.Owner[:])
	off += AccountIDSize

	binary.BigEndian.PutUint16(buf[off:], uint16(len(desc)))
	off += 2

	copy(buf[off:], desc)
	return buf, nil
}

// ParseToken decodes a token record.
func ParseToken(data []byte) (*Token, error) {
	if err := checkTag(data, entry.TypeToken); err != nil {
		return nil, err
	}
	if len(data) < tokenFixedSize {
		return nil, ErrShortEntry
	}

	t := &Token{}
	off := 1

	t.ID = binary.BigEndian.Uint64(data[off:])
	off += 8

	copy(t.Creator[:], data[off:])
	off += AccountIDSize

	t.Minted = data[off] == 1
	off++

	copy(t.Owner[:], data[off:])
	off += AccountIDSize

	descLen := int(binary.BigEndian.Uint16(data[off:]))
	off += 2
	if len(data) < off+descLen {
		return nil, fmt.Errorf("%w: descriptor truncated", ErrShortEntry)
	}
	t.Descriptor = string(data[off : off+descLen])

	return t, nil
}
