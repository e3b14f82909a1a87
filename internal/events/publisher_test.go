package events

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSubscribeReceivesMatchingStream(t *testing.T) {
	m := NewSubscriptionManager()
	sub := m.Subscribe(StreamMinted)
	defer sub.Unsubscribe()

	m.Publish(NewPrepared(1, "aa", "ipfs://Qm1"))
	m.Publish(NewMinted(1, "bb"))

	ev := <-sub.C
	minted, ok := ev.(*Minted)
	require.True(t, ok)
	require.Equal(t, uint64(1), minted.ID)
	require.Equal(t, "bb", minted.Owner)
}

func TestSubscribeAllStreams(t *testing.T) {
	m := NewSubscriptionManager()
	sub := m.Subscribe()
	defer sub.Unsubscribe()

	m.Publish(NewPrepared(1, "aa", "ipfs://Qm1"))
	m.Publish(NewRoyaltySet(1, "cc", 500))

	require.Equal(t, StreamPrepared, (<-sub.C).Stream())
	require.Equal(t, StreamRoyaltySet, (<-sub.C).Stream())
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	m := NewSubscriptionManager()
	sub := m.Subscribe()
	sub.Unsubscribe()

	_, open := <-sub.C
	require.False(t, open)
	require.Zero(t, m.SubscriberCount(""))
}

func TestSlowSubscriberDoesNotBlockPublish(t *testing.T) {
	m := NewSubscriptionManager()
	sub := m.Subscribe(StreamPrepared)
	defer sub.Unsubscribe()

	// Overfill the subscriber buffer; Publish must not block.
	for i := 0; i < 200; i++ {
		m.Publish(NewPrepared(uint64(i+1), "aa", "d"))
	}
	require.Equal(t, 1, m.SubscriberCount(StreamPrepared))
}
