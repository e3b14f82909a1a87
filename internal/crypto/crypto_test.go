package crypto

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSha512HalfDeterministic(t *testing.T) {
	a := Sha512Half([]byte("ipfs://QmDescriptor"))
	b := Sha512Half([]byte("ipfs://QmDescriptor"))
	require.Equal(t, a, b)

	c := Sha512Half([]byte("ipfs://QmOther"))
	require.NotEqual(t, a, c)
}

func TestSha512HalfConcatenation(t *testing.T) {
	// Hashing in pieces must equal hashing the concatenation.
	joined := Sha512Half([]byte("prefix-payload"))
	pieces := Sha512Half([]byte("prefix-"), []byte("payload"))
	require.Equal(t, joined, pieces)
}

func TestCalcAccountID(t *testing.T) {
	_, pub, err := GenerateKeyPair()
	require.NoError(t, err)

	id := CalcAccountID(pub)
	require.False(t, IsZeroAccountID(id))
	require.Equal(t, id, CalcAccountID(pub))
}

func TestSignAndVerify(t *testing.T) {
	priv, pub, err := GenerateKeyPair()
	require.NoError(t, err)

	payload := []byte(`{"type":"Prepare","descriptor":"ipfs://Qm1"}`)
	sig := Sign(priv, payload)

	require.NoError(t, Verify(pub, payload, sig))
	require.ErrorIs(t, Verify(pub, []byte("tampered"), sig), ErrBadSignature)
}
