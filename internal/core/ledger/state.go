// Package ledger holds the authoritative ledger state: an in-memory map of
// state entries with optional write-through persistence to a statestore.
package ledger

import (
	"errors"
	"sync"

	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/storage/statestore"
)

var (
	ErrEntryExists   = errors.New("entry already exists")
	ErrEntryNotFound = errors.New("entry not found")
)

// State is the full ledger state map. It implements tx.LedgerView and is
// the base view every operation sandbox reads from and commits into.
// Writes go through to the statestore, if one is attached, so state
// survives restarts.
type State struct {
	mu    sync.RWMutex
	items map[[32]byte][]byte
	store *statestore.Store
}

// NewState creates an empty ledger state with no persistence.
func NewState() *State {
	return &State{
		items: make(map[[32]byte][]byte),
	}
}

// NewPersistentState creates a ledger state backed by a statestore and
// loads everything the store already holds.
func NewPersistentState(store *statestore.Store) (*State, error) {
	s := &State{
		items: make(map[[32]byte][]byte),
		store: store,
	}

	err := store.ForEach(func(key statestore.Key, value []byte) bool {
		stored := make([]byte, len(value))
		copy(stored, value)
		s.items[key] = stored
		return true
	})
	if err != nil {
		return nil, err
	}

	return s, nil
}

// Read returns the entry data, or nil if the entry does not exist.
func (s *State) Read(k keylet.Keylet) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.items[k.Key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Exists checks if an entry exists.
func (s *State) Exists(k keylet.Keylet) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.items[k.Key]
	return ok, nil
}

// Insert adds a new entry. Inserting over an existing entry is an error.
func (s *State) Insert(k keylet.Keylet, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[k.Key]; ok {
		return ErrEntryExists
	}
	return s.writeLocked(k.Key, data)
}

// Update modifies an existing entry.
func (s *State) Update(k keylet.Keylet, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[k.Key]; !ok {
		return ErrEntryNotFound
	}
	return s.writeLocked(k.Key, data)
}

// Erase removes an entry.
func (s *State) Erase(k keylet.Keylet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.items[k.Key]; !ok {
		return ErrEntryNotFound
	}
	delete(s.items, k.Key)

	if s.store != nil {
		return s.store.Delete(k.Key)
	}
	return nil
}

// ForEach iterates over all state entries. If fn returns false, iteration
// stops early.
func (s *State) ForEach(fn func(key [32]byte, data []byte) bool) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for key, data := range s.items {
		if !fn(key, data) {
			return nil
		}
	}
	return nil
}

// EntryCount returns the number of entries in the state map.
func (s *State) EntryCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

func (s *State) writeLocked(key [32]byte, data []byte) error {
	stored := make([]byte, len(data))
	copy(stored, data)
	s.items[key] = stored

	if s.store != nil {
		return s.store.Put(key, data)
	}
	return nil
}
