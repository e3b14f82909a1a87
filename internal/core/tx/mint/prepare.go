package mint

import (
	"errors"
	"strings"

	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/core/tx"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/events"
)

func init() {
	tx.Register(tx.TypePrepare, func() tx.Operation {
		return &Prepare{BaseOp: *tx.NewBaseOp(tx.TypePrepare, "")}
	})
}

// Prepare registers a token descriptor and reserves the next sequential id
// for it. The token starts unminted with no owner; the submitting account
// is recorded as its creator. The actual mint happens on first transfer.
type Prepare struct {
	tx.BaseOp

	// Descriptor is the opaque metadata pointer (required, non-empty)
	Descriptor string `json:"Descriptor"`
}

// NewPrepare creates a new Prepare operation
func NewPrepare(account, descriptor string) *Prepare {
	return &Prepare{
		BaseOp:     *tx.NewBaseOp(tx.TypePrepare, account),
		Descriptor: descriptor,
	}
}

// TxType returns the operation type
func (p *Prepare) TxType() tx.Type {
	return tx.TypePrepare
}

// Validate validates the Prepare operation
func (p *Prepare) Validate() error {
	if err := p.BaseOp.Validate(); err != nil {
		return err
	}

	if strings.TrimSpace(p.Descriptor) == "" {
		return errors.New("temEMPTY_DESCRIPTOR: Descriptor must not be empty")
	}
	if len(p.Descriptor) > sle.MaxDescriptorLen {
		return errors.New("temMALFORMED: Descriptor too long")
	}

	return nil
}

// Apply applies the Prepare operation to the ledger.
//
// The uniqueness check runs before the id counter moves, so a duplicate
// descriptor consumes no id. All three writes (token record, descriptor
// index, counter) land in the same sandbox and commit together.
func (p *Prepare) Apply(ctx *tx.ApplyContext) tx.Result {
	indexKey := keylet.DescriptorIndex(DescriptorHash(p.Descriptor))
	claimed, err := ctx.View.Exists(indexKey)
	if err != nil {
		return tx.TefINTERNAL
	}
	if claimed {
		return tx.TecDUPLICATE_METADATA
	}

	counterKey := keylet.TokenCounter()
	counterData, err := ctx.View.Read(counterKey)
	if err != nil {
		return tx.TefINTERNAL
	}
	last, err := sle.ParseTokenCounter(counterData)
	if err != nil {
		return tx.TefINTERNAL
	}
	id := last + 1

	token := &sle.Token{
		ID:         id,
		Creator:    ctx.AccountID,
		Descriptor: p.Descriptor,
	}
	tokenData, err := sle.SerializeToken(token)
	if err != nil {
		return tx.TefINTERNAL
	}

	if err := ctx.View.Insert(keylet.Token(id), tokenData); err != nil {
		return tx.TefINTERNAL
	}
	if err := ctx.View.Insert(indexKey, sle.SerializeDescriptorIndex(id)); err != nil {
		return tx.TefINTERNAL
	}

	counterSerialized := sle.SerializeTokenCounter(id)
	if counterData == nil {
		err = ctx.View.Insert(counterKey, counterSerialized)
	} else {
		err = ctx.View.Update(counterKey, counterSerialized)
	}
	if err != nil {
		return tx.TefINTERNAL
	}

	ctx.Emit(events.NewPrepared(id, ctx.AccountID.String(), p.Descriptor))

	return tx.TesSUCCESS
}
