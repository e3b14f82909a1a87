package testing

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// RequireTxSuccess asserts that an operation result indicates success.
func RequireTxSuccess(t *testing.T, result TxResult) {
	t.Helper()
	require.True(t, result.Success,
		"Expected operation success, got %s: %s", result.Code, result.Message)
	require.Equal(t, "tesSUCCESS", result.Code,
		"Expected tesSUCCESS, got %s: %s", result.Code, result.Message)
}

// RequireTxFail asserts that an operation failed with a specific code.
func RequireTxFail(t *testing.T, result TxResult, expectedCode string) {
	t.Helper()
	require.False(t, result.Success,
		"Expected operation failure with code %s, but it succeeded", expectedCode)
	require.Equal(t, expectedCode, result.Code,
		"Expected failure code %s, got %s: %s", expectedCode, result.Code, result.Message)
}

// RequireMinted asserts that a token is minted.
func RequireMinted(t *testing.T, env *TestEnv, tokenID uint64) {
	t.Helper()
	minted, err := env.Service().IsMinted(tokenID)
	require.NoError(t, err)
	require.True(t, minted, "Expected token %d to be minted", tokenID)
}

// RequireNotMinted asserts that a token is prepared but not minted.
func RequireNotMinted(t *testing.T, env *TestEnv, tokenID uint64) {
	t.Helper()
	minted, err := env.Service().IsMinted(tokenID)
	require.NoError(t, err)
	require.False(t, minted, "Expected token %d to be unminted", tokenID)
}

// RequireOwner asserts the current owner of a minted token.
func RequireOwner(t *testing.T, env *TestEnv, tokenID uint64, acc *Account) {
	t.Helper()
	owner, err := env.Service().OwnerOf(tokenID)
	require.NoError(t, err)
	require.Equal(t, acc.Address(), owner,
		"Expected token %d owned by %s", tokenID, acc.Name)
}

// RequireCreator asserts the registered creator of a token.
func RequireCreator(t *testing.T, env *TestEnv, tokenID uint64, acc *Account) {
	t.Helper()
	creator, err := env.Service().CreatorOf(tokenID)
	require.NoError(t, err)
	require.Equal(t, acc.Address(), creator,
		"Expected token %d created by %s", tokenID, acc.Name)
}
