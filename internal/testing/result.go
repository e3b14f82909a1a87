package testing

import "github.com/mintforge/goMintd/internal/core/tx"

// TxResult is the outcome of a submitted operation, flattened for
// assertions.
type TxResult struct {
	// Code is the result code name, e.g. "tesSUCCESS".
	Code string

	// Success is true when the operation committed.
	Success bool

	// Message is the human-readable result message.
	Message string

	// Raw is the underlying engine result.
	Raw tx.ApplyResult
}

func newTxResult(raw tx.ApplyResult) TxResult {
	return TxResult{
		Code:    raw.Result.String(),
		Success: raw.Applied,
		Message: raw.Message,
		Raw:     raw,
	}
}
