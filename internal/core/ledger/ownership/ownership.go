// Package ownership is the transferable-ownership collaborator: it decides
// who may move a token and keeps per-account holding counts. It never
// touches the minted flag; minting is the transfer operation's job, done
// before the ownership change is delegated here.
package ownership

import (
	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/core/tx"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
)

// Authorize checks that caller may move the token out of from. There is no
// operator delegation; only the holder itself may initiate a transfer.
func Authorize(caller, from sle.AccountID) tx.Result {
	if caller != from {
		return tx.TecNO_PERMISSION
	}
	return tx.TesSUCCESS
}

// Move transfers a minted token from one holder to another and adjusts
// both holding directories. The token must already be minted with from as
// its recorded owner.
func Move(view tx.LedgerView, token *sle.Token, from, to sle.AccountID) tx.Result {
	if !token.Minted || token.Owner != from {
		return tx.TecNO_PERMISSION
	}

	token.Owner = to
	data, err := sle.SerializeToken(token)
	if err != nil {
		return tx.TefINTERNAL
	}
	if err := view.Update(keylet.Token(token.ID), data); err != nil {
		return tx.TefINTERNAL
	}

	if result := adjustHoldings(view, from, -1); !result.IsSuccess() {
		return result
	}
	return adjustHoldings(view, to, +1)
}

// AddHolding records one more token held by account. Used at mint time,
// when a token first gains an owner of record.
func AddHolding(view tx.LedgerView, account sle.AccountID) tx.Result {
	return adjustHoldings(view, account, +1)
}

// Holdings returns how many tokens an account currently holds.
func Holdings(view tx.LedgerView, account sle.AccountID) (uint64, error) {
	data, err := view.Read(keylet.OwnerDir(account))
	if err != nil {
		return 0, err
	}
	return sle.ParseOwnerDir(data)
}

func adjustHoldings(view tx.LedgerView, account sle.AccountID, delta int64) tx.Result {
	key := keylet.OwnerDir(account)

	data, err := view.Read(key)
	if err != nil {
		return tx.TefINTERNAL
	}
	count, err := sle.ParseOwnerDir(data)
	if err != nil {
		return tx.TefINTERNAL
	}

	if delta < 0 && count == 0 {
		return tx.TefINTERNAL
	}
	count = uint64(int64(count) + delta)

	// An empty directory is removed rather than stored as zero.
	if count == 0 {
		if err := view.Erase(key); err != nil {
			return tx.TefINTERNAL
		}
		return tx.TesSUCCESS
	}

	serialized := sle.SerializeOwnerDir(count)
	if data == nil {
		err = view.Insert(key, serialized)
	} else {
		err = view.Update(key, serialized)
	}
	if err != nil {
		return tx.TefINTERNAL
	}
	return tx.TesSUCCESS
}
