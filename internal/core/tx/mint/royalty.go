package mint

import (
	"errors"

	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/core/tx"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/events"
)

func init() {
	tx.Register(tx.TypeRoyaltySet, func() tx.Operation {
		return &RoyaltySet{BaseOp: *tx.NewBaseOp(tx.TypeRoyaltySet, "")}
	})
}

// MaxRoyaltyBps is the upper bound for royalty terms (100%).
const MaxRoyaltyBps = 10000

// RoyaltySet records royalty terms for a token. Only the token's creator
// may set terms, regardless of who currently owns it, and a later set
// overwrites an earlier one. Terms are reported, not enforced; collecting
// the royalty on a sale is the marketplace's concern.
type RoyaltySet struct {
	tx.BaseOp

	// TokenID is the token the terms apply to (required)
	TokenID uint64 `json:"TokenID"`

	// Recipient is the account to receive royalty proceeds (required)
	Recipient string `json:"Recipient"`

	// Bps is the royalty rate in basis points of the sale price (0-10000)
	Bps uint16 `json:"Bps"`
}

// NewRoyaltySet creates a new RoyaltySet operation
func NewRoyaltySet(account string, tokenID uint64, recipient string, bps uint16) *RoyaltySet {
	return &RoyaltySet{
		BaseOp:    *tx.NewBaseOp(tx.TypeRoyaltySet, account),
		TokenID:   tokenID,
		Recipient: recipient,
		Bps:       bps,
	}
}

// TxType returns the operation type
func (r *RoyaltySet) TxType() tx.Type {
	return tx.TypeRoyaltySet
}

// Validate validates the RoyaltySet operation
func (r *RoyaltySet) Validate() error {
	if err := r.BaseOp.Validate(); err != nil {
		return err
	}

	if r.TokenID == 0 {
		return errors.New("temMALFORMED: TokenID is required")
	}
	if r.Recipient == "" {
		return errors.New("temMALFORMED: Recipient is required")
	}
	if _, err := sle.DecodeAccountID(r.Recipient); err != nil {
		return errors.New("temINVALID_ACCOUNT_ID: malformed Recipient")
	}
	if r.Bps > MaxRoyaltyBps {
		return errors.New("temROYALTY_TOO_HIGH: Bps cannot exceed 10000")
	}

	return nil
}

// Apply applies the RoyaltySet operation to the ledger
func (r *RoyaltySet) Apply(ctx *tx.ApplyContext) tx.Result {
	token, err := readToken(ctx.View, r.TokenID)
	if err != nil {
		return tx.TefINTERNAL
	}
	if token == nil {
		return tx.TecUNKNOWN_TOKEN
	}

	// Creator-only, independent of mint state and of current owner.
	if ctx.AccountID != token.Creator {
		return tx.TecNO_PERMISSION
	}

	recipient, err := sle.DecodeAccountID(r.Recipient)
	if err != nil {
		return tx.TefINTERNAL
	}

	royaltyKey := keylet.Royalty(r.TokenID)
	serialized := sle.SerializeRoyalty(&sle.Royalty{
		TokenID:   r.TokenID,
		Recipient: recipient,
		Bps:       r.Bps,
	})

	exists, err := ctx.View.Exists(royaltyKey)
	if err != nil {
		return tx.TefINTERNAL
	}
	if exists {
		err = ctx.View.Update(royaltyKey, serialized)
	} else {
		err = ctx.View.Insert(royaltyKey, serialized)
	}
	if err != nil {
		return tx.TefINTERNAL
	}

	ctx.Emit(events.NewRoyaltySet(r.TokenID, recipient.String(), r.Bps))

	return tx.TesSUCCESS
}

// RoyaltyInfo computes the royalty due on a sale at the given price. A
// token with no recorded terms yields a zero recipient and zero amount;
// absence is not an error. The amount is floor(salePrice * bps / 10000)
// computed through a 128-bit intermediate so large prices cannot overflow.
func RoyaltyInfo(view tx.LedgerView, tokenID uint64, salePrice uint64) (sle.AccountID, uint64, error) {
	data, err := view.Read(keylet.Royalty(tokenID))
	if err != nil {
		return sle.ZeroAccountID, 0, err
	}
	if data == nil {
		return sle.ZeroAccountID, 0, nil
	}

	term, err := sle.ParseRoyalty(data)
	if err != nil {
		return sle.ZeroAccountID, 0, err
	}

	return term.Recipient, mulDiv(salePrice, uint64(term.Bps), MaxRoyaltyBps), nil
}
