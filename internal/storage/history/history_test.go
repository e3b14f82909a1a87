package history

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) Store {
	t.Helper()

	store, err := New(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, store.Open(context.Background()))
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndQueryOperations(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, store.RecordOperation(ctx, &OperationRecord{
			Account:       "aabbccdd",
			OperationType: "Prepare",
			TokenID:       uint64(i + 1),
			Result:        "tesSUCCESS",
			Applied:       true,
		}))
	}

	recs, err := store.OperationsByAccount(ctx, "aabbccdd", 10)
	require.NoError(t, err)
	require.Len(t, recs, 3)

	// Newest first.
	assert.Equal(t, uint64(3), recs[0].TokenID)
	assert.Equal(t, "Prepare", recs[0].OperationType)

	count, err := store.OperationCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestEventLogOrdering(t *testing.T) {
	store := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.RecordEvent(ctx, &EventRecord{Stream: "prepared", TokenID: 1}))
	require.NoError(t, store.RecordEvent(ctx, &EventRecord{Stream: "minted", TokenID: 1}))
	require.NoError(t, store.RecordEvent(ctx, &EventRecord{Stream: "prepared", TokenID: 2}))

	events, err := store.EventsByToken(ctx, 1, 10)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "prepared", events[0].Stream)
	assert.Equal(t, "minted", events[1].Stream)
}

func TestUnknownDriverRejected(t *testing.T) {
	_, err := New(Config{Driver: "oracle"})
	assert.ErrorIs(t, err, ErrUnsupportedDriver)
}
