package sle

import (
	"strings"
	"testing"

	"github.com/mintforge/goMintd/internal/core/ledger/entry"
	"github.com/stretchr/testify/require"
)

func TestDecodeAccountID(t *testing.T) {
	id, err := DecodeAccountID("00112233445566778899aabbccddeeff00112233")
	require.NoError(t, err)
	require.Equal(t, "00112233445566778899aabbccddeeff00112233", id.String())

	_, err = DecodeAccountID("zz")
	require.ErrorIs(t, err, ErrBadAccountID)

	_, err = DecodeAccountID("0011")
	require.ErrorIs(t, err, ErrBadAccountID)
}

func TestTokenRoundTrip(t *testing.T) {
	creator, _ := DecodeAccountID("00112233445566778899aabbccddeeff00112233")
	owner, _ := DecodeAccountID("ffeeddccbbaa99887766554433221100ffeeddcc")

	tok := &Token{
		ID:         42,
		Creator:    creator,
		Descriptor: "ipfs://QmExample/42.json",
		Minted:     true,
		Owner:      owner,
	}

	data, err := SerializeToken(tok)
	require.NoError(t, err)
	require.Equal(t, entry.TypeToken, EntryType(data))

	got, err := ParseToken(data)
	require.NoError(t, err)
	require.Equal(t, tok, got)
}

func TestTokenUnmintedHasZeroOwner(t *testing.T) {
	creator, _ := DecodeAccountID("00112233445566778899aabbccddeeff00112233")

	data, err := SerializeToken(&Token{ID: 1, Creator: creator, Descriptor: "d"})
	require.NoError(t, err)

	got, err := ParseToken(data)
	require.NoError(t, err)
	require.False(t, got.Minted)
	require.True(t, got.Owner.IsZero())
}

func TestTokenDescriptorTooLong(t *testing.T) {
	_, err := SerializeToken(&Token{
		ID:         1,
		Descriptor: strings.Repeat("x", MaxDescriptorLen+1),
	})
	require.ErrorIs(t, err, ErrDescriptorLen)
}

func TestParseRejectsWrongTag(t *testing.T) {
	data := SerializeTokenCounter(7)
	_, err := ParseToken(data)
	require.ErrorIs(t, err, ErrWrongType)
}

func TestCounterNilDecodesAsZero(t *testing.T) {
	n, err := ParseTokenCounter(nil)
	require.NoError(t, err)
	require.Zero(t, n)

	n, err = ParseTokenCounter(SerializeTokenCounter(9))
	require.NoError(t, err)
	require.Equal(t, uint64(9), n)
}

func TestRoyaltyRoundTrip(t *testing.T) {
	recipient, _ := DecodeAccountID("ffeeddccbbaa99887766554433221100ffeeddcc")
	r := &Royalty{TokenID: 3, Recipient: recipient, Bps: 500}

	got, err := ParseRoyalty(SerializeRoyalty(r))
	require.NoError(t, err)
	require.Equal(t, r, got)
}

func TestBasePathRoundTrip(t *testing.T) {
	data, err := SerializeBasePath("https://meta.example/v1/")
	require.NoError(t, err)

	path, err := ParseBasePath(data)
	require.NoError(t, err)
	require.Equal(t, "https://meta.example/v1/", path)

	empty, err := ParseBasePath(nil)
	require.NoError(t, err)
	require.Empty(t, empty)
}
