package statestore

import "sync"

// MemoryBackend is an in-memory backend for tests and standalone mode.
type MemoryBackend struct {
	mu     sync.RWMutex
	items  map[Key][]byte
	closed bool
}

// NewMemoryBackend creates an empty in-memory backend.
func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		items: make(map[Key][]byte),
	}
}

// Name returns the name of this backend.
func (m *MemoryBackend) Name() string {
	return "memory"
}

// Open prepares the backend for use.
func (m *MemoryBackend) Open() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = false
	return nil
}

// Get returns the stored value, or ErrNotFound.
func (m *MemoryBackend) Get(key Key) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrBackendClosed
	}
	value, ok := m.items[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(value))
	copy(out, value)
	return out, nil
}

// Put stores a value, overwriting any previous one.
func (m *MemoryBackend) Put(key Key, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrBackendClosed
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	m.items[key] = stored
	return nil
}

// Delete removes a value.
func (m *MemoryBackend) Delete(key Key) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrBackendClosed
	}
	delete(m.items, key)
	return nil
}

// ForEach iterates over all stored entries.
func (m *MemoryBackend) ForEach(fn func(key Key, value []byte) bool) error {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return ErrBackendClosed
	}
	for key, value := range m.items {
		if !fn(key, value) {
			return nil
		}
	}
	return nil
}

// Close releases backend resources.
func (m *MemoryBackend) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
