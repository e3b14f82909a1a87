package statestore

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/goMintd/internal/storage/statestore/compression"
)

func testKey(b byte) Key {
	var k Key
	k[0] = b
	return k
}

func TestMemoryBackendRoundTrip(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Open())
	defer backend.Close()

	key := testKey(1)
	require.NoError(t, backend.Put(key, []byte("hello")))

	value, err := backend.Get(key)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), value)

	require.NoError(t, backend.Delete(key))
	_, err = backend.Get(key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryBackendForEach(t *testing.T) {
	backend := NewMemoryBackend()
	require.NoError(t, backend.Open())
	defer backend.Close()

	require.NoError(t, backend.Put(testKey(1), []byte("a")))
	require.NoError(t, backend.Put(testKey(2), []byte("b")))

	seen := 0
	require.NoError(t, backend.ForEach(func(key Key, value []byte) bool {
		seen++
		return true
	}))
	assert.Equal(t, 2, seen)
}

func TestStoreCompressesThroughBackend(t *testing.T) {
	store, err := Open(&Config{
		Backend:    "memory",
		Compressor: "lz4",
		CacheSize:  0,
	})
	require.NoError(t, err)
	defer store.Close()

	key := testKey(7)
	value := bytes.Repeat([]byte("descriptor "), 100)
	require.NoError(t, store.Put(key, value))

	got, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, got)
}

func TestStoreCacheHit(t *testing.T) {
	store, err := Open(&Config{
		Backend:    "memory",
		Compressor: "none",
		CacheSize:  16,
		CacheTTL:   time.Minute,
	})
	require.NoError(t, err)
	defer store.Close()

	key := testKey(3)
	require.NoError(t, store.Put(key, []byte("cached")))

	_, err = store.Get(key)
	require.NoError(t, err)

	hits, _ := store.CacheStats()
	assert.Greater(t, hits, uint64(0))
}

func TestUnknownBackendRejected(t *testing.T) {
	_, err := Open(&Config{Backend: "bogus", Path: "x"})
	assert.ErrorIs(t, err, ErrUnsupportedBackend)
}

func TestLZ4RoundTrip(t *testing.T) {
	c, err := compression.Get("lz4")
	require.NoError(t, err)

	for _, input := range [][]byte{
		nil,
		[]byte("x"),
		bytes.Repeat([]byte("abcd"), 500),
	} {
		compressed, err := c.Compress(input)
		require.NoError(t, err)

		out, err := c.Decompress(compressed)
		require.NoError(t, err)
		assert.Equal(t, len(input), len(out))
		if len(input) > 0 {
			assert.Equal(t, input, out)
		}
	}
}
