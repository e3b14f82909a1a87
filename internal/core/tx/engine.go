package tx

import (
	"encoding/hex"

	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/crypto"
	"github.com/mintforge/goMintd/internal/events"
)

// Engine processes ledger operations against a ledger view.
//
// Every operation runs in three steps: preflight (stateless validation of
// the submitted form), a sandboxed apply against an ApplyStateTable, and a
// commit of the tracked changes. Any failure in any step leaves the base
// view untouched and drops all queued notifications.
type Engine struct {
	// view provides access to ledger state
	view LedgerView

	// config holds engine configuration
	config EngineConfig

	// receivers resolves receive hooks registered for destination accounts
	receivers ReceiverRegistry
}

// EngineConfig holds configuration for the operation engine
type EngineConfig struct {
	// AdminAccount is the only account allowed to submit BasePathSet.
	// A zero value disables the operation entirely.
	AdminAccount sle.AccountID

	// SkipSignatureVerification skips signature checks (for testing/standalone)
	SkipSignatureVerification bool

	// Standalone indicates if running in standalone mode (relaxes some validation)
	Standalone bool
}

// TokenReceiver is the hook a destination account can register to be
// consulted when a token arrives. It runs after the transfer's state
// changes are staged in the sandbox, so a rejection discards everything.
//
// Returning a non-nil error fails the enclosing transfer with
// tecRECEIVER_REJECTED. The view passed in is a read-only window on the
// operation sandbox: the hook observes the transfer already applied but
// cannot stage writes of its own.
type TokenReceiver interface {
	OnTokenReceived(view ReadView, tokenID uint64, from, to sle.AccountID) error
}

// ReceiverRegistry resolves the receive hook for an account, if any.
type ReceiverRegistry interface {
	// Receiver returns the hook registered for the account, or nil.
	Receiver(account sle.AccountID) TokenReceiver
}

// ApplyResult contains the result of applying an operation
type ApplyResult struct {
	// Result is the operation result code
	Result Result

	// Applied indicates if the operation was committed to the ledger
	Applied bool

	// Metadata contains the changes made by the operation
	Metadata *Metadata

	// Message is a human-readable result message
	Message string
}

// Metadata tracks the changes made by a single operation
type Metadata struct {
	// AffectedNodes lists all entries that were created, modified, or deleted
	AffectedNodes []AffectedNode

	// OperationResult is the result code
	OperationResult Result

	// Events holds notifications queued during apply. They are published
	// by the caller only after the operation commits.
	Events []events.Event
}

// AffectedNode describes one ledger entry touched by an operation
type AffectedNode struct {
	// NodeType is "CreatedNode", "ModifiedNode" or "DeletedNode"
	NodeType string `json:"NodeType"`

	// EntryType names the kind of entry (Token, Royalty, ...)
	EntryType string `json:"EntryType"`

	// LedgerIndex is the hex-encoded state key
	LedgerIndex string `json:"LedgerIndex"`
}

// NewEngine creates a new operation engine. receivers may be nil when no
// receive hooks are in use.
func NewEngine(view LedgerView, config EngineConfig, receivers ReceiverRegistry) *Engine {
	return &Engine{
		view:      view,
		config:    config,
		receivers: receivers,
	}
}

// Config returns the engine configuration.
func (e *Engine) Config() EngineConfig {
	return e.config
}

// ReceiverFor returns the receive hook registered for an account, or nil.
func (e *Engine) ReceiverFor(account sle.AccountID) TokenReceiver {
	if e.receivers == nil {
		return nil
	}
	return e.receivers.Receiver(account)
}

// Apply processes an operation and, on success, commits it to the ledger
func (e *Engine) Apply(op Operation) ApplyResult {
	// Step 1: Preflight checks (syntax and signature validation)
	result := e.preflight(op)
	if !result.IsSuccess() {
		return ApplyResult{
			Result:  result,
			Applied: false,
			Message: result.Message(),
		}
	}

	// Step 2: Sandboxed apply
	metadata := &Metadata{
		AffectedNodes:   make([]AffectedNode, 0),
		OperationResult: TesSUCCESS,
	}

	result = e.doApply(op, metadata)
	metadata.OperationResult = result

	// A failed operation commits nothing and notifies nobody.
	if !result.IsSuccess() {
		metadata.Events = nil
	}

	return ApplyResult{
		Result:   result,
		Applied:  result.IsSuccess(),
		Metadata: metadata,
		Message:  result.Message(),
	}
}

// preflight performs stateless validation on the operation
func (e *Engine) preflight(op Operation) Result {
	common := op.GetCommon()

	// Account is required
	if common.Account == "" {
		return TemBAD_SRC_ACCOUNT
	}

	// OperationType is required
	if common.OperationType == "" {
		return TemINVALID
	}

	accountID, err := sle.DecodeAccountID(common.Account)
	if err != nil {
		return TemINVALID_ACCOUNT_ID
	}

	// Verify signature (unless skipped for testing/standalone)
	if !e.config.SkipSignatureVerification {
		if result := e.checkSignature(op, accountID); !result.IsSuccess() {
			return result
		}
	}

	// Operation-specific validation
	if err := op.Validate(); err != nil {
		return parseValidationError(err)
	}

	return TesSUCCESS
}

// checkSignature verifies the operation signature and that the signing key
// belongs to the submitting account.
func (e *Engine) checkSignature(op Operation, accountID sle.AccountID) Result {
	common := op.GetCommon()

	if common.SigningPubKey == "" || common.Signature == "" {
		return TefBAD_SIGNATURE
	}

	pubKey, err := hex.DecodeString(common.SigningPubKey)
	if err != nil {
		return TefBAD_SIGNATURE
	}
	signature, err := hex.DecodeString(common.Signature)
	if err != nil {
		return TefBAD_SIGNATURE
	}

	// The signing key must hash to the submitting account.
	if crypto.CalcAccountID(pubKey) != [sle.AccountIDSize]byte(accountID) {
		return TefBAD_SIGNATURE
	}

	payload, err := SigningPayload(op)
	if err != nil {
		return TefINTERNAL
	}

	if err := crypto.Verify(pubKey, payload, signature); err != nil {
		return TefBAD_SIGNATURE
	}

	return TesSUCCESS
}

// parseValidationError extracts a result code from a validation error
// message. Validate implementations prefix their errors with the code
// (e.g. "temEMPTY_DESCRIPTOR: ..."); anything unrecognized maps to
// temINVALID.
func parseValidationError(err error) Result {
	msg := err.Error()

	terCodes := map[string]Result{
		"temMALFORMED":          TemMALFORMED,
		"temBAD_SRC_ACCOUNT":    TemBAD_SRC_ACCOUNT,
		"temINVALID":            TemINVALID,
		"temINVALID_ACCOUNT_ID": TemINVALID_ACCOUNT_ID,
		"temEMPTY_DESCRIPTOR":   TemEMPTY_DESCRIPTOR,
		"temROYALTY_TOO_HIGH":   TemROYALTY_TOO_HIGH,
	}

	for code, result := range terCodes {
		if len(msg) >= len(code) && msg[:len(code)] == code {
			if len(msg) == len(code) || msg[len(code)] == ':' || msg[len(code)] == ' ' {
				return result
			}
		}
	}

	return TemINVALID
}

// doApply runs the operation inside a sandbox and commits on success.
// Nothing reaches the base view until every state change and invariant
// check has passed, so callers never observe partial effects.
func (e *Engine) doApply(op Operation, metadata *Metadata) Result {
	accountID, err := sle.DecodeAccountID(op.GetCommon().Account)
	if err != nil {
		return TemINVALID_ACCOUNT_ID
	}

	table := NewApplyStateTable(e.view)

	ctx := &ApplyContext{
		View:      table,
		AccountID: accountID,
		Config:    e.config,
		Metadata:  metadata,
		Engine:    e,
	}

	var result Result
	if appliable, ok := op.(Appliable); ok {
		result = appliable.Apply(ctx)
	} else {
		result = TefINTERNAL
	}

	if !result.IsSuccess() {
		return result
	}

	// Check state invariants over the tracked changes before committing.
	if err := checkInvariants(table); err != nil {
		return TefINVARIANT_FAILED
	}

	// Commit all tracked changes to the base view and generate metadata.
	generatedMeta, err := table.Apply()
	if err != nil {
		return TefINTERNAL
	}
	metadata.AffectedNodes = generatedMeta.AffectedNodes

	return result
}
