package mint

import (
	"errors"

	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/core/tx"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/events"
)

func init() {
	tx.Register(tx.TypeBasePathSet, func() tx.Operation {
		return &BasePathSet{BaseOp: *tx.NewBaseOp(tx.TypeBasePathSet, "")}
	})
}

// BasePathSet updates the base descriptor path prepended to every token
// descriptor when resolving its full URI. Admin-only; the admin account
// comes from engine configuration and a zero admin disables the operation.
type BasePathSet struct {
	tx.BaseOp

	// Path is the new base path. Empty clears it.
	Path string `json:"Path"`
}

// NewBasePathSet creates a new BasePathSet operation
func NewBasePathSet(account, path string) *BasePathSet {
	return &BasePathSet{
		BaseOp: *tx.NewBaseOp(tx.TypeBasePathSet, account),
		Path:   path,
	}
}

// TxType returns the operation type
func (b *BasePathSet) TxType() tx.Type {
	return tx.TypeBasePathSet
}

// Validate validates the BasePathSet operation
func (b *BasePathSet) Validate() error {
	if err := b.BaseOp.Validate(); err != nil {
		return err
	}

	if len(b.Path) > sle.MaxDescriptorLen {
		return errors.New("temMALFORMED: Path too long")
	}

	return nil
}

// Apply applies the BasePathSet operation to the ledger
func (b *BasePathSet) Apply(ctx *tx.ApplyContext) tx.Result {
	admin := ctx.Config.AdminAccount
	if admin.IsZero() || ctx.AccountID != admin {
		return tx.TecNO_PERMISSION
	}

	key := keylet.BasePath()
	serialized, err := sle.SerializeBasePath(b.Path)
	if err != nil {
		return tx.TefINTERNAL
	}

	exists, err := ctx.View.Exists(key)
	if err != nil {
		return tx.TefINTERNAL
	}
	if exists {
		err = ctx.View.Update(key, serialized)
	} else {
		err = ctx.View.Insert(key, serialized)
	}
	if err != nil {
		return tx.TefINTERNAL
	}

	ctx.Emit(events.NewBasePathSet(b.Path))

	return tx.TesSUCCESS
}

// ResolveDescriptorURI joins the configured base path with a token's
// descriptor. With no base path set the descriptor stands alone.
func ResolveDescriptorURI(view tx.LedgerView, token *sle.Token) (string, error) {
	data, err := view.Read(keylet.BasePath())
	if err != nil {
		return "", err
	}
	base, err := sle.ParseBasePath(data)
	if err != nil {
		return "", err
	}
	return base + token.Descriptor, nil
}
