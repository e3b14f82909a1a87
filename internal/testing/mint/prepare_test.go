package mint_test

import (
	stdtesting "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/goMintd/internal/events"
	jtx "github.com/mintforge/goMintd/internal/testing"
)

func TestPrepareIssuesSequentialIDs(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")

	for i := 1; i <= 5; i++ {
		result := env.Prepare(alice, descriptorN(i))
		jtx.RequireTxSuccess(t, result)

		current, err := env.Service().CurrentTokenID()
		require.NoError(t, err)
		assert.Equal(t, uint64(i), current)
	}
}

func TestPrepareRecordsCreatorAndDescriptor(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))

	info, err := env.Service().TokenInfo(1)
	require.NoError(t, err)
	assert.Equal(t, alice.Address(), info.Creator)
	assert.Equal(t, "ipfs://meta/1", info.Descriptor)
	assert.False(t, info.Minted)
	assert.Empty(t, info.Owner)

	jtx.RequireNotMinted(t, env, 1)
	jtx.RequireCreator(t, env, 1, alice)
}

func TestPrepareEmptyDescriptorRejected(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")

	jtx.RequireTxFail(t, env.Prepare(alice, ""), "temEMPTY_DESCRIPTOR")
	jtx.RequireTxFail(t, env.Prepare(alice, "   "), "temEMPTY_DESCRIPTOR")

	current, err := env.Service().CurrentTokenID()
	require.NoError(t, err)
	assert.Zero(t, current)
}

func TestPrepareDuplicateDescriptorConsumesNoID(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "X"))
	jtx.RequireTxFail(t, env.Prepare(alice, "X"), "tecDUPLICATE_METADATA")

	// Duplicates are rejected across creators too.
	jtx.RequireTxFail(t, env.Prepare(bob, "X"), "tecDUPLICATE_METADATA")

	// The first token is unaffected and no id was burned.
	jtx.RequireCreator(t, env, 1, alice)
	jtx.RequireTxSuccess(t, env.Prepare(alice, "Y"))

	current, err := env.Service().CurrentTokenID()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), current)
}

func TestPrepareEmitsPreparedEvent(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")

	sub := env.Subscribe(events.StreamPrepared)
	defer sub.Unsubscribe()

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/evt"))

	ev := <-sub.C
	prepared, ok := ev.(*events.Prepared)
	require.True(t, ok)
	assert.Equal(t, uint64(1), prepared.ID)
	assert.Equal(t, alice.Address(), prepared.Creator)
	assert.Equal(t, "ipfs://meta/evt", prepared.Descriptor)
}

func descriptorN(i int) string {
	return "ipfs://meta/" + string(rune('a'+i))
}
