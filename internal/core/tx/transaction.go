package tx

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Common errors shared by operation validation.
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidAccount       = errors.New("invalid account")
)

// Operation is the interface that all operation types implement.
type Operation interface {
	// TxType returns the operation type.
	TxType() Type

	// GetCommon returns the common operation fields.
	GetCommon() *Common

	// Validate checks the operation's structural validity. It must not
	// touch ledger state; state-dependent checks belong in Apply.
	Validate() error
}

// Appliable is implemented by operation types that apply themselves to
// ledger state. All registered operations implement it; the split keeps
// parsing-only call sites off the apply path.
type Appliable interface {
	Apply(ctx *ApplyContext) Result
}

// Common contains fields common to all operation types.
type Common struct {
	// Account is the authenticated invoker of the operation.
	Account string `json:"Account"`

	// OperationType names the operation for JSON round-trips.
	OperationType string `json:"OperationType"`

	// SigningPubKey is the compressed secp256k1 public key (hex) that
	// signed this operation. Optional in standalone mode.
	SigningPubKey string `json:"SigningPubKey,omitempty"`

	// Signature is the DER-encoded signature (hex) over the operation's
	// signing payload.
	Signature string `json:"Signature,omitempty"`
}

// BaseOp provides the Common fields plus default behavior shared by all
// operation types. Concrete operations embed it.
type BaseOp struct {
	Common
}

// NewBaseOp creates the embedded base for an operation of the given type.
func NewBaseOp(t Type, account string) *BaseOp {
	return &BaseOp{
		Common: Common{
			Account:       account,
			OperationType: t.String(),
		},
	}
}

// GetCommon returns the common operation fields.
func (b *BaseOp) GetCommon() *Common {
	return &b.Common
}

// Validate checks the fields every operation must carry.
func (b *BaseOp) Validate() error {
	if b.Account == "" {
		return fmt.Errorf("%w: Account", ErrMissingRequiredField)
	}
	return nil
}

// SigningPayload returns the canonical byte form of an operation for
// signing: its JSON encoding with the Signature field removed and object
// keys sorted. encoding/json sorts map keys, which makes the round-trip
// through a map deterministic.
func SigningPayload(op Operation) ([]byte, error) {
	raw, err := json.Marshal(op)
	if err != nil {
		return nil, err
	}

	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, err
	}
	delete(fields, "Signature")

	return json.Marshal(fields)
}
