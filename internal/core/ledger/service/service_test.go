package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/goMintd/internal/core/tx"
	_ "github.com/mintforge/goMintd/internal/core/tx/all"
	"github.com/mintforge/goMintd/internal/core/tx/mint"
	"github.com/mintforge/goMintd/internal/storage/history"
	"github.com/mintforge/goMintd/internal/storage/statestore"
)

const (
	testCreator = "aa11223344556677889900aabbccddeeff001122"
	testDest    = "bb11223344556677889900aabbccddeeff001122"
)

func newStartedService(t *testing.T, cfg Config) *Service {
	t.Helper()

	svc, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, svc.Start())
	return svc
}

func submitOK(t *testing.T, svc *Service, op tx.Operation) {
	t.Helper()

	result, err := svc.Submit(context.Background(), op)
	require.NoError(t, err)
	require.True(t, result.Applied, "expected success, got %s: %s", result.Result, result.Message)
}

func TestServiceNotStarted(t *testing.T) {
	svc, err := New(DefaultConfig())
	require.NoError(t, err)

	_, err = svc.Submit(context.Background(), mint.NewPrepare(testCreator, "x"))
	assert.ErrorIs(t, err, ErrNotStarted)

	_, err = svc.CurrentTokenID()
	assert.ErrorIs(t, err, ErrNotStarted)
}

func TestServiceSubmitJSON(t *testing.T) {
	svc := newStartedService(t, DefaultConfig())

	raw := []byte(`{"OperationType":"Prepare","Account":"` + testCreator + `","Descriptor":"ipfs://meta/1"}`)
	result, err := svc.SubmitJSON(context.Background(), raw)
	require.NoError(t, err)
	assert.True(t, result.Applied)

	info, err := svc.TokenInfo(1)
	require.NoError(t, err)
	assert.Equal(t, testCreator, info.Creator)
	assert.Equal(t, "ipfs://meta/1", info.Descriptor)
}

func TestServicePersistenceReload(t *testing.T) {
	store, err := statestore.Open(statestore.DefaultConfig())
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Store = store

	svc := newStartedService(t, cfg)
	submitOK(t, svc, mint.NewPrepare(testCreator, "ipfs://meta/1"))
	submitOK(t, svc, mint.NewTransfer(testCreator, 1, testDest))

	// A fresh service over the same store sees the committed state.
	reloaded := newStartedService(t, cfg)

	minted, err := reloaded.IsMinted(1)
	require.NoError(t, err)
	assert.True(t, minted)

	owner, err := reloaded.OwnerOf(1)
	require.NoError(t, err)
	assert.Equal(t, testDest, owner)

	current, err := reloaded.CurrentTokenID()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), current)
}

func TestServiceRecordsHistory(t *testing.T) {
	ctx := context.Background()

	hist, err := history.New(history.DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, hist.Open(ctx))
	defer hist.Close()

	cfg := DefaultConfig()
	cfg.History = hist

	svc := newStartedService(t, cfg)
	submitOK(t, svc, mint.NewPrepare(testCreator, "ipfs://meta/1"))
	submitOK(t, svc, mint.NewTransfer(testCreator, 1, testDest))

	// Failed operations are recorded too.
	result, err := svc.Submit(ctx, mint.NewTransfer(testCreator, 42, testDest))
	require.NoError(t, err)
	assert.False(t, result.Applied)

	count, err := hist.OperationCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	ops, err := hist.OperationsByAccount(ctx, testCreator, 10)
	require.NoError(t, err)
	require.Len(t, ops, 3)
	assert.Equal(t, "Transfer", ops[0].OperationType)
	assert.False(t, ops[0].Applied)
	assert.Equal(t, "tecUNKNOWN_TOKEN", ops[0].Result)
	assert.Equal(t, "Prepare", ops[2].OperationType)
	assert.True(t, ops[2].Applied)

	// Event log for the token: prepared first, then minted.
	evs, err := hist.EventsByToken(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, evs, 2)
	assert.Equal(t, "prepared", evs[0].Stream)
	assert.Equal(t, "minted", evs[1].Stream)
}

func TestServerInfoCounters(t *testing.T) {
	svc := newStartedService(t, DefaultConfig())

	submitOK(t, svc, mint.NewPrepare(testCreator, "ipfs://meta/1"))
	submitOK(t, svc, mint.NewPrepare(testCreator, "ipfs://meta/2"))

	info, err := svc.ServerInfo()
	require.NoError(t, err)
	assert.True(t, info.Standalone)
	assert.Equal(t, uint64(2), info.Applied)
	assert.Equal(t, uint64(2), info.TokenCount)
	assert.Greater(t, info.EntryCount, 0)
}
