package mint

import (
	"errors"

	"github.com/mintforge/goMintd/internal/core/ledger/ownership"
	"github.com/mintforge/goMintd/internal/core/tx"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/events"
)

func init() {
	tx.Register(tx.TypeTransfer, func() tx.Operation {
		return &Transfer{BaseOp: *tx.NewBaseOp(tx.TypeTransfer, "")}
	})
}

// Transfer moves a token from the submitting account to Destination. If the
// token has never been minted, the transfer mints it first with the source
// as the initial owner of record, then hands it over. Mint and first
// transfer are one atomic step: a never-owned token goes straight to its
// first real holder without a separate mint operation.
type Transfer struct {
	tx.BaseOp

	// TokenID is the id of the token to move (required)
	TokenID uint64 `json:"TokenID"`

	// Destination is the account receiving the token (required)
	Destination string `json:"Destination"`
}

// NewTransfer creates a new Transfer operation
func NewTransfer(account string, tokenID uint64, destination string) *Transfer {
	return &Transfer{
		BaseOp:      *tx.NewBaseOp(tx.TypeTransfer, account),
		TokenID:     tokenID,
		Destination: destination,
	}
}

// TxType returns the operation type
func (t *Transfer) TxType() tx.Type {
	return tx.TypeTransfer
}

// Validate validates the Transfer operation
func (t *Transfer) Validate() error {
	if err := t.BaseOp.Validate(); err != nil {
		return err
	}

	if t.TokenID == 0 {
		return errors.New("temMALFORMED: TokenID is required")
	}
	if t.Destination == "" {
		return errors.New("temMALFORMED: Destination is required")
	}
	if _, err := sle.DecodeAccountID(t.Destination); err != nil {
		return errors.New("temINVALID_ACCOUNT_ID: malformed Destination")
	}

	return nil
}

// Apply applies the Transfer operation to the ledger.
//
// Ordering matters here: the minted flag and the ownership change are both
// staged before any receive hook on the destination runs. A hook that
// re-enters the transfer path for the same token sees minted == true and
// fails the already-minted guard, so reentrancy cannot double-mint.
func (t *Transfer) Apply(ctx *tx.ApplyContext) tx.Result {
	from := ctx.AccountID
	to, err := sle.DecodeAccountID(t.Destination)
	if err != nil {
		return tx.TefINTERNAL
	}

	token, err := readToken(ctx.View, t.TokenID)
	if err != nil {
		return tx.TefINTERNAL
	}
	if token == nil {
		return tx.TecUNKNOWN_TOKEN
	}

	if !token.Minted {
		if result := markMinted(ctx, token, from); !result.IsSuccess() {
			return result
		}
	}

	if result := ownership.Authorize(ctx.AccountID, from); !result.IsSuccess() {
		return result
	}
	if result := ownership.Move(ctx.View, token, from, to); !result.IsSuccess() {
		return result
	}

	// The hook runs last, against the sandbox with all effects applied.
	if receiver := ctx.Engine.ReceiverFor(to); receiver != nil {
		if err := receiver.OnTokenReceived(tx.ReadOnly(ctx.View), token.ID, from, to); err != nil {
			return tx.TecRECEIVER_REJECTED
		}
	}

	return tx.TesSUCCESS
}

// markMinted flips the minted flag and records owner. It is the single
// writer of the minted flag; the precondition check below is what makes
// minting exactly-once.
func markMinted(ctx *tx.ApplyContext, token *sle.Token, owner sle.AccountID) tx.Result {
	if token.Minted {
		return tx.TecALREADY_MINTED
	}

	// Until mint, a token is implicitly held by its creator, and only the
	// creator can trigger the minting transfer.
	if owner != token.Creator {
		return tx.TecNO_PERMISSION
	}

	token.Minted = true
	token.Owner = owner
	if err := writeToken(ctx.View, token); err != nil {
		return tx.TefINTERNAL
	}
	if result := ownership.AddHolding(ctx.View, owner); !result.IsSuccess() {
		return result
	}

	ctx.Emit(events.NewMinted(token.ID, owner.String()))

	return tx.TesSUCCESS
}
