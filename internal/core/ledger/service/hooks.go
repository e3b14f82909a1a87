package service

import (
	"sync"

	"github.com/mintforge/goMintd/internal/core/tx"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
)

// ReceiverRegistry maps accounts to their registered receive hooks. It is
// the tx.ReceiverRegistry the engine consults after a token lands on a
// destination account.
type ReceiverRegistry struct {
	mu        sync.RWMutex
	receivers map[sle.AccountID]tx.TokenReceiver
}

// NewReceiverRegistry creates an empty registry.
func NewReceiverRegistry() *ReceiverRegistry {
	return &ReceiverRegistry{
		receivers: make(map[sle.AccountID]tx.TokenReceiver),
	}
}

// Register installs a hook for an account, replacing any previous one.
func (r *ReceiverRegistry) Register(account sle.AccountID, receiver tx.TokenReceiver) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receivers[account] = receiver
}

// Unregister removes an account's hook.
func (r *ReceiverRegistry) Unregister(account sle.AccountID) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.receivers, account)
}

// Receiver returns the hook registered for the account, or nil.
func (r *ReceiverRegistry) Receiver(account sle.AccountID) tx.TokenReceiver {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.receivers[account]
}
