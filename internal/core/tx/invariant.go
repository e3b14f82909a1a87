package tx

import (
	"bytes"
	"fmt"

	"github.com/mintforge/goMintd/internal/core/ledger/entry"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
)

// checkInvariants inspects an operation's tracked changes before commit.
// A violation means a bug in an operation's Apply, not bad caller input,
// so the enclosing operation fails tefINVARIANT_FAILED and commits nothing.
//
// Checked here:
//   - token records are never erased, creator/descriptor never change,
//     minted never goes true→false, owner is set iff minted
//   - the token counter never decreases, and grows by exactly one per
//     newly created token record
//   - descriptor index entries are write-once
func checkInvariants(table *ApplyStateTable) error {
	tokensCreated := 0
	var counterDelta int64

	for _, tracked := range table.entries() {
		if tracked.Action == ActionCache {
			continue
		}

		entryType := sle.EntryType(tracked.Current)
		if tracked.Current == nil {
			entryType = sle.EntryType(tracked.Original)
		}

		switch entryType {
		case entry.TypeToken:
			if err := checkTokenInvariants(tracked); err != nil {
				return err
			}
			if tracked.Action == ActionInsert {
				tokensCreated++
			}

		case entry.TypeTokenCounter:
			before, err := sle.ParseTokenCounter(tracked.Original)
			if err != nil {
				return err
			}
			after, err := sle.ParseTokenCounter(tracked.Current)
			if err != nil {
				return err
			}
			if after < before {
				return fmt.Errorf("token counter decreased: %d -> %d", before, after)
			}
			counterDelta = int64(after) - int64(before)

		case entry.TypeDescriptorIndex:
			if tracked.Action != ActionInsert {
				return fmt.Errorf("descriptor index entries are write-once")
			}
		}
	}

	if int64(tokensCreated) != counterDelta {
		return fmt.Errorf("counter moved by %d for %d new tokens", counterDelta, tokensCreated)
	}

	return nil
}

func checkTokenInvariants(tracked *TrackedEntry) error {
	if tracked.Action == ActionErase {
		return fmt.Errorf("token records are never destroyed")
	}

	current, err := sle.ParseToken(tracked.Current)
	if err != nil {
		return err
	}

	if current.Minted == current.Owner.IsZero() {
		return fmt.Errorf("token %d: owner must be set iff minted", current.ID)
	}

	if tracked.Action != ActionModify || tracked.Original == nil {
		return nil
	}

	original, err := sle.ParseToken(tracked.Original)
	if err != nil {
		return err
	}

	if original.Minted && !current.Minted {
		return fmt.Errorf("token %d: minted flag cleared", current.ID)
	}
	if !bytes.Equal(original.Creator[:], current.Creator[:]) {
		return fmt.Errorf("token %d: creator mutated", current.ID)
	}
	if original.Descriptor != current.Descriptor {
		return fmt.Errorf("token %d: descriptor mutated", current.ID)
	}

	return nil
}
