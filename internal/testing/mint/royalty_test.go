package mint_test

import (
	stdtesting "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/goMintd/internal/events"
	jtx "github.com/mintforge/goMintd/internal/testing"
)

func TestRoyaltyInfoDefaultsToZero(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))

	recipient, amount, err := env.Service().RoyaltyInfo(1, 10000)
	require.NoError(t, err)
	assert.Empty(t, recipient)
	assert.Zero(t, amount)
}

func TestRoyaltySetAndQuery(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	royalties := env.Account("royalties")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireTxSuccess(t, env.SetRoyalty(alice, 1, royalties, 500))

	recipient, amount, err := env.Service().RoyaltyInfo(1, 10000)
	require.NoError(t, err)
	assert.Equal(t, royalties.Address(), recipient)
	assert.Equal(t, uint64(500), amount)

	// Amounts round down.
	_, amount, err = env.Service().RoyaltyInfo(1, 3)
	require.NoError(t, err)
	assert.Zero(t, amount)

	_, amount, err = env.Service().RoyaltyInfo(1, 199)
	require.NoError(t, err)
	assert.Equal(t, uint64(9), amount)
}

func TestRoyaltySetLastWriteWins(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")
	first := env.Account("first")
	second := env.Account("second")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireTxSuccess(t, env.SetRoyalty(alice, 1, first, 250))
	jtx.RequireTxSuccess(t, env.SetRoyalty(alice, 1, second, 1000))

	recipient, amount, err := env.Service().RoyaltyInfo(1, 10000)
	require.NoError(t, err)
	assert.Equal(t, second.Address(), recipient)
	assert.Equal(t, uint64(1000), amount)

	// The creator keeps the right to update terms after the token has
	// been minted and transferred away.
	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))
	jtx.RequireTxSuccess(t, env.SetRoyalty(alice, 1, first, 100))

	recipient, amount, err = env.Service().RoyaltyInfo(1, 10000)
	require.NoError(t, err)
	assert.Equal(t, first.Address(), recipient)
	assert.Equal(t, uint64(100), amount)
}

func TestRoyaltySetCreatorOnly(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")
	royalties := env.Account("royalties")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))

	// Even the current owner cannot set royalty terms.
	jtx.RequireTxFail(t, env.SetRoyalty(bob, 1, royalties, 500), "tecNO_PERMISSION")

	recipient, amount, err := env.Service().RoyaltyInfo(1, 10000)
	require.NoError(t, err)
	assert.Empty(t, recipient)
	assert.Zero(t, amount)
}

func TestRoyaltySetUnknownToken(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	royalties := env.Account("royalties")

	jtx.RequireTxFail(t, env.SetRoyalty(alice, 42, royalties, 500), "tecUNKNOWN_TOKEN")
}

func TestRoyaltySetBpsBounds(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	royalties := env.Account("royalties")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireTxFail(t, env.SetRoyalty(alice, 1, royalties, 10001), "temROYALTY_TOO_HIGH")

	// The full sale price is a legal royalty.
	jtx.RequireTxSuccess(t, env.SetRoyalty(alice, 1, royalties, 10000))

	_, amount, err := env.Service().RoyaltyInfo(1, 12345)
	require.NoError(t, err)
	assert.Equal(t, uint64(12345), amount)
}

func TestRoyaltySetEmitsEvent(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	royalties := env.Account("royalties")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))

	sub := env.Subscribe(events.StreamRoyaltySet)
	defer sub.Unsubscribe()

	jtx.RequireTxSuccess(t, env.SetRoyalty(alice, 1, royalties, 750))

	ev := <-sub.C
	set, ok := ev.(*events.RoyaltySet)
	require.True(t, ok)
	assert.Equal(t, uint64(1), set.ID)
	assert.Equal(t, royalties.Address(), set.Recipient)
	assert.Equal(t, uint16(750), set.Bps)
}
