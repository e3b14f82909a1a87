// Package testing provides a ledger environment for operation tests: an
// in-memory service with signature checks skipped, deterministic test
// accounts, and assertion helpers.
package testing

import (
	"context"
	"testing"

	"github.com/mintforge/goMintd/internal/core/ledger/service"
	"github.com/mintforge/goMintd/internal/core/tx"
	_ "github.com/mintforge/goMintd/internal/core/tx/all"
	"github.com/mintforge/goMintd/internal/core/tx/mint"
	"github.com/mintforge/goMintd/internal/events"
)

// TestEnv manages a test ledger environment for operation testing.
type TestEnv struct {
	t         *testing.T
	service   *service.Service
	publisher *events.SubscriptionManager
	accounts  map[string]*Account

	// Admin is the account allowed to submit BasePathSet.
	Admin *Account
}

// NewTestEnv creates a new in-memory test environment. Signature checks
// are skipped; the named admin account is authorized for base-path admin.
func NewTestEnv(t *testing.T) *TestEnv {
	t.Helper()

	admin := NewAccount("admin")
	publisher := events.NewSubscriptionManager()

	cfg := service.DefaultConfig()
	cfg.AdminAccount = admin.Address()
	cfg.Publisher = publisher

	svc, err := service.New(cfg)
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	if err := svc.Start(); err != nil {
		t.Fatalf("failed to start service: %v", err)
	}

	env := &TestEnv{
		t:         t,
		service:   svc,
		publisher: publisher,
		accounts:  map[string]*Account{"admin": admin},
		Admin:     admin,
	}
	return env
}

// Account returns the named test account, creating it on first use.
func (e *TestEnv) Account(name string) *Account {
	if acc, ok := e.accounts[name]; ok {
		return acc
	}
	acc := NewAccount(name)
	e.accounts[name] = acc
	return acc
}

// Service exposes the underlying ledger service for direct queries.
func (e *TestEnv) Service() *service.Service {
	return e.service
}

// Subscribe opens an event subscription on the given streams.
func (e *TestEnv) Subscribe(streams ...string) *events.Subscription {
	return e.publisher.Subscribe(streams...)
}

// Submit sends an operation through the service and returns its result.
func (e *TestEnv) Submit(op tx.Operation) TxResult {
	e.t.Helper()

	result, err := e.service.Submit(context.Background(), op)
	if err != nil {
		e.t.Fatalf("submit failed: %v", err)
	}
	return newTxResult(result)
}

// Prepare submits a Prepare operation for the account.
func (e *TestEnv) Prepare(acc *Account, descriptor string) TxResult {
	e.t.Helper()
	return e.Submit(mint.NewPrepare(acc.Address(), descriptor))
}

// Transfer submits a Transfer of tokenID from acc to dest.
func (e *TestEnv) Transfer(acc *Account, tokenID uint64, dest *Account) TxResult {
	e.t.Helper()
	return e.Submit(mint.NewTransfer(acc.Address(), tokenID, dest.Address()))
}

// SetRoyalty submits a RoyaltySet operation for the account.
func (e *TestEnv) SetRoyalty(acc *Account, tokenID uint64, recipient *Account, bps uint16) TxResult {
	e.t.Helper()
	return e.Submit(mint.NewRoyaltySet(acc.Address(), tokenID, recipient.Address(), bps))
}

// SetBasePath submits a BasePathSet operation for the account.
func (e *TestEnv) SetBasePath(acc *Account, path string) TxResult {
	e.t.Helper()
	return e.Submit(mint.NewBasePathSet(acc.Address(), path))
}
