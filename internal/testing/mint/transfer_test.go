package mint_test

import (
	"errors"
	stdtesting "testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/core/tx"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/events"
	jtx "github.com/mintforge/goMintd/internal/testing"
)

func TestFirstTransferMints(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireNotMinted(t, env, 1)

	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))

	jtx.RequireMinted(t, env, 1)
	jtx.RequireOwner(t, env, 1, bob)
	jtx.RequireCreator(t, env, 1, alice)
}

func TestFirstTransferEmitsMintedForCreator(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))

	sub := env.Subscribe(events.StreamMinted)
	defer sub.Unsubscribe()

	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))

	// Minted names the owner at the instant of minting, which is the
	// creator, even though ownership has already moved on to bob.
	ev := <-sub.C
	minted, ok := ev.(*events.Minted)
	require.True(t, ok)
	assert.Equal(t, uint64(1), minted.ID)
	assert.Equal(t, alice.Address(), minted.Owner)

	select {
	case extra := <-sub.C:
		t.Fatalf("unexpected second minted event: %+v", extra)
	default:
	}
}

func TestSecondTransferDoesNotRemint(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")
	carol := env.Account("carol")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))

	sub := env.Subscribe(events.StreamMinted)
	defer sub.Unsubscribe()

	jtx.RequireTxSuccess(t, env.Transfer(bob, 1, carol))
	jtx.RequireOwner(t, env, 1, carol)

	select {
	case ev := <-sub.C:
		t.Fatalf("transfer of a minted token must not re-mint, got %+v", ev)
	default:
	}
}

func TestTransferUnknownToken(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	sub := env.Subscribe()
	defer sub.Unsubscribe()

	jtx.RequireTxFail(t, env.Transfer(alice, 42, bob), "tecUNKNOWN_TOKEN")

	select {
	case ev := <-sub.C:
		t.Fatalf("failed transfer must not publish events, got %+v", ev)
	default:
	}
}

func TestOnlyCreatorTriggersMint(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")
	carol := env.Account("carol")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))

	// The unminted token is implicitly held by its creator.
	jtx.RequireTxFail(t, env.Transfer(bob, 1, carol), "tecNO_PERMISSION")
	jtx.RequireNotMinted(t, env, 1)
}

func TestTransferNotHeld(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")
	carol := env.Account("carol")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))

	// alice no longer holds the token.
	jtx.RequireTxFail(t, env.Transfer(alice, 1, carol), "tecNO_PERMISSION")
	jtx.RequireOwner(t, env, 1, bob)
}

func TestTransferTracksHoldings(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/2"))
	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))
	jtx.RequireTxSuccess(t, env.Transfer(alice, 2, bob))

	count, err := env.Service().Holdings(bob.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)

	count, err = env.Service().Holdings(alice.Address())
	require.NoError(t, err)
	assert.Zero(t, count)

	jtx.RequireTxSuccess(t, env.Transfer(bob, 1, alice))

	count, err = env.Service().Holdings(bob.Address())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

// recordingReceiver captures the ledger state visible to the receiver
// hook at the moment it runs.
type recordingReceiver struct {
	calls      int
	sawMinted  bool
	sawOwnerTo bool
	reject     error
}

func (r *recordingReceiver) OnTokenReceived(view tx.ReadView, tokenID uint64, from, to sle.AccountID) error {
	r.calls++

	data, err := view.Read(keylet.Token(tokenID))
	if err == nil && data != nil {
		if token, err := sle.ParseToken(data); err == nil {
			r.sawMinted = token.Minted
			r.sawOwnerTo = token.Owner == to
		}
	}
	return r.reject
}

func TestReceiverHookRunsAfterStateChanges(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	hook := &recordingReceiver{}
	env.Service().Receivers().Register(bob.ID, hook)

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))

	// Effects before external calls: the hook must already observe the
	// minted token owned by the destination.
	require.Equal(t, 1, hook.calls)
	assert.True(t, hook.sawMinted)
	assert.True(t, hook.sawOwnerTo)
}

func TestReceiverRejectionDiscardsTransfer(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	hook := &recordingReceiver{reject: errors.New("not accepting tokens")}
	env.Service().Receivers().Register(bob.ID, hook)

	sub := env.Subscribe()
	defer sub.Unsubscribe()

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))

	drainEvents(sub)
	jtx.RequireTxFail(t, env.Transfer(alice, 1, bob), "tecRECEIVER_REJECTED")

	// The staged mint and ownership change are discarded with the
	// rejection; the token can still be minted later.
	jtx.RequireNotMinted(t, env, 1)
	select {
	case ev := <-sub.C:
		t.Fatalf("rejected transfer must not publish events, got %+v", ev)
	default:
	}

	env.Service().Receivers().Unregister(bob.ID)
	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))
	jtx.RequireOwner(t, env, 1, bob)
}

// reentrantReceiver probes whether the hook can recover write access to
// the sandbox it is handed.
type reentrantReceiver struct {
	attempted    bool
	gotWriteView bool
	sawMinted    bool
}

func (r *reentrantReceiver) OnTokenReceived(view tx.ReadView, tokenID uint64, from, to sle.AccountID) error {
	r.attempted = true

	// The capability handed to hooks must not be widenable back to the
	// writable sandbox.
	if _, ok := view.(tx.LedgerView); ok {
		r.gotWriteView = true
	}

	if data, err := view.Read(keylet.Token(tokenID)); err == nil && data != nil {
		if token, err := sle.ParseToken(data); err == nil {
			r.sawMinted = token.Minted
		}
	}
	return nil
}

func TestReceiverCannotWriteSandbox(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	hook := &reentrantReceiver{}
	env.Service().Receivers().Register(bob.ID, hook)

	jtx.RequireTxSuccess(t, env.Prepare(alice, "ipfs://meta/1"))
	jtx.RequireTxSuccess(t, env.Transfer(alice, 1, bob))

	require.True(t, hook.attempted)
	assert.False(t, hook.gotWriteView)
	assert.True(t, hook.sawMinted)
	jtx.RequireMinted(t, env, 1)
	jtx.RequireOwner(t, env, 1, bob)
}

func TestTransferValidation(t *stdtesting.T) {
	env := jtx.NewTestEnv(t)
	alice := env.Account("alice")
	bob := env.Account("bob")

	jtx.RequireTxFail(t, env.Transfer(alice, 0, bob), "temMALFORMED")
}

func drainEvents(sub *events.Subscription) {
	for {
		select {
		case <-sub.C:
		default:
			return
		}
	}
}
