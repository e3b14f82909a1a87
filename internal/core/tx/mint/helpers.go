package mint

import (
	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/core/tx"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/crypto"
)

// DescriptorHash computes the uniqueness-index key for a descriptor.
func DescriptorHash(descriptor string) [32]byte {
	return crypto.Sha512Half([]byte(descriptor))
}

// readToken loads the token record for id, or nil if it was never prepared.
func readToken(view tx.LedgerView, id uint64) (*sle.Token, error) {
	data, err := view.Read(keylet.Token(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, nil
	}
	return sle.ParseToken(data)
}

// writeToken stores an updated token record.
func writeToken(view tx.LedgerView, token *sle.Token) error {
	data, err := sle.SerializeToken(token)
	if err != nil {
		return err
	}
	return view.Update(keylet.Token(token.ID), data)
}

// lastIssuedID returns the highest token id issued so far, zero if none.
func lastIssuedID(view tx.LedgerView) (uint64, error) {
	data, err := view.Read(keylet.TokenCounter())
	if err != nil {
		return 0, err
	}
	return sle.ParseTokenCounter(data)
}

// mulDiv computes (a * b) / c with overflow protection.
// Returns MaxUint64 on overflow.
func mulDiv(a, b, c uint64) uint64 {
	if c == 0 {
		return ^uint64(0)
	}

	hi, lo := mul64(a, b)

	// If high bits are significant relative to c, we'll overflow
	if hi >= c {
		return ^uint64(0)
	}

	return div128(hi, lo, c)
}

// mul64 multiplies two uint64 values and returns a 128-bit result as (high, low).
func mul64(a, b uint64) (hi, lo uint64) {
	const mask32 = (1 << 32) - 1
	a0 := a & mask32
	a1 := a >> 32
	b0 := b & mask32
	b1 := b >> 32

	p0 := a0 * b0
	p1 := a0 * b1
	p2 := a1 * b0
	p3 := a1 * b1

	mid := p1 + (p0 >> 32) + (p2 & mask32)
	hi = p3 + (p1 >> 32) + (p2 >> 32) + (mid >> 32)
	lo = (p0 & mask32) | (mid << 32)
	return
}

// div128 divides a 128-bit value (hi, lo) by a 64-bit divisor.
// Callers guarantee hi < divisor.
func div128(hi, lo, divisor uint64) uint64 {
	if hi == 0 {
		return lo / divisor
	}

	quotient := uint64(0)
	remainder := hi

	for i := 63; i >= 0; i-- {
		remainder = (remainder << 1) | ((lo >> i) & 1)
		if remainder >= divisor {
			remainder -= divisor
			quotient |= 1 << i
		}
	}

	return quotient
}
