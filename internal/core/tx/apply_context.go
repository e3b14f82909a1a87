package tx

import (
	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/events"
)

// LedgerView provides read/write access to ledger state.
type LedgerView interface {
	// Read reads a ledger entry; nil data means absent.
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists.
	Exists(k keylet.Keylet) (bool, error)

	// Insert adds a new entry.
	Insert(k keylet.Keylet, data []byte) error

	// Update modifies an existing entry.
	Update(k keylet.Keylet, data []byte) error

	// Erase removes an entry.
	Erase(k keylet.Keylet) error

	// ForEach iterates over all state entries. If fn returns false,
	// iteration stops early.
	ForEach(fn func(key [32]byte, data []byte) bool) error
}

// ReadView is the read-only capability handed to external hooks.
type ReadView interface {
	// Read reads a ledger entry; nil data means absent.
	Read(k keylet.Keylet) ([]byte, error)

	// Exists checks if an entry exists.
	Exists(k keylet.Keylet) (bool, error)
}

type readView struct {
	view LedgerView
}

func (r readView) Read(k keylet.Keylet) ([]byte, error) { return r.view.Read(k) }
func (r readView) Exists(k keylet.Keylet) (bool, error) { return r.view.Exists(k) }

// ReadOnly wraps a view so that the write half cannot be recovered by a
// type assertion.
func ReadOnly(view LedgerView) ReadView {
	return readView{view: view}
}

// ApplyContext provides the state and helpers an operation needs to apply
// itself. It is passed to Appliable.Apply instead of individual values.
type ApplyContext struct {
	// View provides read/write access to the operation sandbox.
	View LedgerView

	// AccountID is the decoded source identity.
	AccountID sle.AccountID

	// Config holds engine configuration.
	Config EngineConfig

	// Metadata collects affected entries and pending notifications.
	Metadata *Metadata

	// Engine provides access to shared collaborators (receive hooks).
	Engine *Engine
}

// Emit queues a notification. Queued events are delivered only if the
// enclosing operation commits; a failed operation publishes nothing.
func (ctx *ApplyContext) Emit(ev events.Event) {
	ctx.Metadata.Events = append(ctx.Metadata.Events, ev)
}
