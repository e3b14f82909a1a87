package mint_test

import (
	stdtesting "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/goMintd/internal/events"
	jtx "github.com/mintforge/goMintd/internal/testing"
)

func TestBasePathAdminOnly(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")

	jtx.RequireTxFail(t, env.SetBasePath(alice, "https://cdn.example/"), "tecNO_PERMISSION")
	jtx.RequireTxSuccess(t, env.SetBasePath(env.Admin, "https://cdn.example/"))

	path, err := env.Service().BasePath()
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/", path)
}

func TestBasePathResolvesDescriptorURI(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "meta/1.json"))

	// Without a base path the descriptor is the URI.
	uri, err := env.Service().DescriptorURI(1)
	require.NoError(t, err)
	assert.Equal(t, "meta/1.json", uri)

	jtx.RequireTxSuccess(t, env.SetBasePath(env.Admin, "https://cdn.example/tokens/"))

	uri, err = env.Service().DescriptorURI(1)
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/tokens/meta/1.json", uri)

	// The path applies to already prepared tokens when updated.
	jtx.RequireTxSuccess(t, env.SetBasePath(env.Admin, "ipfs://"))

	uri, err = env.Service().DescriptorURI(1)
	require.NoError(t, err)
	assert.Equal(t, "ipfs://meta/1.json", uri)
}

func TestBasePathSetEmitsEvent(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)

	sub := env.Subscribe(events.StreamBasePathSet)
	defer sub.Unsubscribe()

	jtx.RequireTxSuccess(t, env.SetBasePath(env.Admin, "https://cdn.example/"))

	ev := <-sub.C
	set, ok := ev.(*events.BasePathSet)
	require.True(t, ok)
	assert.Equal(t, "https://cdn.example/", set.Path)
}
