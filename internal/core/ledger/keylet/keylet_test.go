package keylet

import (
	"testing"

	"github.com/mintforge/goMintd/internal/core/ledger/entry"
	"github.com/mintforge/goMintd/internal/crypto"
	"github.com/stretchr/testify/require"
)

func TestKeyletsAreDeterministic(t *testing.T) {
	require.Equal(t, Token(1), Token(1))
	require.Equal(t, TokenCounter(), TokenCounter())

	hash := crypto.Sha512Half([]byte("ipfs://Qm1"))
	require.Equal(t, DescriptorIndex(hash), DescriptorIndex(hash))
}

func TestKeyletsDoNotCollide(t *testing.T) {
	var owner [20]byte
	owner[0] = 0x7a

	hash := crypto.Sha512Half([]byte("ipfs://Qm1"))

	keys := map[[32]byte]string{
		Token(1).Key:                "token-1",
		Token(2).Key:                "token-2",
		Royalty(1).Key:              "royalty-1",
		Royalty(2).Key:              "royalty-2",
		TokenCounter().Key:          "counter",
		BasePath().Key:              "basepath",
		DescriptorIndex(hash).Key:   "descriptor",
		OwnerDir(owner).Key:         "ownerdir",
		OwnerDir([20]byte{1}).Key:   "ownerdir-other",
	}
	require.Len(t, keys, 9, "distinct keylets must map to distinct keys")
}

func TestKeyletTypes(t *testing.T) {
	require.Equal(t, entry.TypeToken, Token(7).Type)
	require.Equal(t, entry.TypeRoyalty, Royalty(7).Type)
	require.Equal(t, entry.TypeTokenCounter, TokenCounter().Type)
	require.Equal(t, entry.TypeBasePath, BasePath().Type)
}
