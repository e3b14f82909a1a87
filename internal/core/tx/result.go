package tx

import "fmt"

// Result represents an operation result code.
type Result int

// Operation result codes, organized by category:
//   - tes (0): success, state committed
//   - tec (100-199): valid operation rejected by ledger state; nothing committed
//   - tef (-199 to -100): failure, typically internal
//   - tem (-299 to -200): malformed operation
const (
	TesSUCCESS Result = 0

	TecNO_PERMISSION      Result = 139
	TecUNKNOWN_TOKEN      Result = 140
	TecDUPLICATE_METADATA Result = 149
	TecALREADY_MINTED     Result = 150
	TecRECEIVER_REJECTED  Result = 153

	TefFAILURE          Result = -199
	TefINTERNAL         Result = -192
	TefBAD_SIGNATURE    Result = -186
	TefINVARIANT_FAILED Result = -182

	TemMALFORMED          Result = -299
	TemBAD_SRC_ACCOUNT    Result = -281
	TemINVALID            Result = -277
	TemINVALID_ACCOUNT_ID Result = -268
	TemEMPTY_DESCRIPTOR   Result = -262
	TemROYALTY_TOO_HIGH   Result = -261
)

// String returns the string representation of the result code.
func (r Result) String() string {
	switch r {
	case TesSUCCESS:
		return "tesSUCCESS"
	case TecNO_PERMISSION:
		return "tecNO_PERMISSION"
	case TecUNKNOWN_TOKEN:
		return "tecUNKNOWN_TOKEN"
	case TecDUPLICATE_METADATA:
		return "tecDUPLICATE_METADATA"
	case TecALREADY_MINTED:
		return "tecALREADY_MINTED"
	case TecRECEIVER_REJECTED:
		return "tecRECEIVER_REJECTED"
	case TefFAILURE:
		return "tefFAILURE"
	case TefINTERNAL:
		return "tefINTERNAL"
	case TefBAD_SIGNATURE:
		return "tefBAD_SIGNATURE"
	case TefINVARIANT_FAILED:
		return "tefINVARIANT_FAILED"
	case TemMALFORMED:
		return "temMALFORMED"
	case TemBAD_SRC_ACCOUNT:
		return "temBAD_SRC_ACCOUNT"
	case TemINVALID:
		return "temINVALID"
	case TemINVALID_ACCOUNT_ID:
		return "temINVALID_ACCOUNT_ID"
	case TemEMPTY_DESCRIPTOR:
		return "temEMPTY_DESCRIPTOR"
	case TemROYALTY_TOO_HIGH:
		return "temROYALTY_TOO_HIGH"
	default:
		return fmt.Sprintf("Unknown(%d)", int(r))
	}
}

// IsSuccess returns true if the result indicates success.
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec (rejected by ledger state) code.
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code.
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTem returns true if this is a tem (malformed) code.
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// Message returns a human-readable message for the result.
func (r Result) Message() string {
	switch r {
	case TesSUCCESS:
		return "The operation was applied."
	case TecNO_PERMISSION:
		return "The caller is not authorized for this operation."
	case TecUNKNOWN_TOKEN:
		return "The referenced token id was never prepared."
	case TecDUPLICATE_METADATA:
		return "The descriptor hash is already claimed by another token."
	case TecALREADY_MINTED:
		return "The token has already been minted."
	case TecRECEIVER_REJECTED:
		return "The recipient's receive hook rejected the transfer."
	case TemEMPTY_DESCRIPTOR:
		return "Prepare requires a non-empty descriptor."
	case TemROYALTY_TOO_HIGH:
		return "Royalty basis points cannot exceed 10000."
	case TemBAD_SRC_ACCOUNT:
		return "Missing or malformed source account."
	case TemINVALID_ACCOUNT_ID:
		return "An account identifier could not be decoded."
	case TemINVALID:
		return "The operation is ill-formed."
	case TefBAD_SIGNATURE:
		return "Invalid signature."
	case TefINVARIANT_FAILED:
		return "A ledger invariant check failed; the operation was discarded."
	default:
		return r.String()
	}
}
