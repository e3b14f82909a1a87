package service

import (
	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/core/ledger/ownership"
	"github.com/mintforge/goMintd/internal/core/tx/mint"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
)

// TokenInfo is the full queryable view of one token.
type TokenInfo struct {
	ID         uint64 `json:"id"`
	Creator    string `json:"creator"`
	Descriptor string `json:"descriptor"`
	URI        string `json:"uri"`
	Minted     bool   `json:"minted"`
	Owner      string `json:"owner,omitempty"`

	// Royalty terms, nil when none are set
	Royalty *RoyaltyTerm `json:"royalty,omitempty"`
}

// RoyaltyTerm is the queryable royalty record.
type RoyaltyTerm struct {
	Recipient string `json:"recipient"`
	Bps       uint16 `json:"bps"`
}

// TokenInfo returns everything known about a token.
func (s *Service) TokenInfo(id uint64) (*TokenInfo, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, err := s.readTokenLocked(id)
	if err != nil {
		return nil, err
	}

	uri, err := mint.ResolveDescriptorURI(s.state, token)
	if err != nil {
		return nil, err
	}

	info := &TokenInfo{
		ID:         token.ID,
		Creator:    token.Creator.String(),
		Descriptor: token.Descriptor,
		URI:        uri,
		Minted:     token.Minted,
	}
	if token.Minted {
		info.Owner = token.Owner.String()
	}

	royaltyData, err := s.state.Read(keylet.Royalty(id))
	if err != nil {
		return nil, err
	}
	if royaltyData != nil {
		term, err := sle.ParseRoyalty(royaltyData)
		if err != nil {
			return nil, err
		}
		info.Royalty = &RoyaltyTerm{
			Recipient: term.Recipient.String(),
			Bps:       term.Bps,
		}
	}

	return info, nil
}

// IsMinted reports whether a token has been minted.
func (s *Service) IsMinted(id uint64) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, err := s.readTokenLocked(id)
	if err != nil {
		return false, err
	}
	return token.Minted, nil
}

// CreatorOf returns the identity that prepared a token.
func (s *Service) CreatorOf(id uint64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, err := s.readTokenLocked(id)
	if err != nil {
		return "", err
	}
	return token.Creator.String(), nil
}

// OwnerOf returns the current owner of a minted token.
func (s *Service) OwnerOf(id uint64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, err := s.readTokenLocked(id)
	if err != nil {
		return "", err
	}
	if !token.Minted {
		return "", nil
	}
	return token.Owner.String(), nil
}

// RoyaltyInfo computes the royalty due on a sale. A token with no terms
// yields a zero recipient and zero amount.
func (s *Service) RoyaltyInfo(id uint64, salePrice uint64) (recipient string, amount uint64, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return "", 0, ErrNotStarted
	}
	if _, err := s.readTokenLocked(id); err != nil {
		return "", 0, err
	}

	who, amount, err := mint.RoyaltyInfo(s.state, id, salePrice)
	if err != nil || who.IsZero() {
		return "", 0, err
	}
	return who.String(), amount, nil
}

// CurrentTokenID returns the highest issued token id, zero if none.
func (s *Service) CurrentTokenID() (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return 0, ErrNotStarted
	}
	return s.currentTokenIDLocked()
}

// DescriptorURI resolves a token's descriptor against the configured base
// path.
func (s *Service) DescriptorURI(id uint64) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	token, err := s.readTokenLocked(id)
	if err != nil {
		return "", err
	}
	return mint.ResolveDescriptorURI(s.state, token)
}

// BasePath returns the configured base descriptor path, empty if unset.
func (s *Service) BasePath() (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return "", ErrNotStarted
	}
	data, err := s.state.Read(keylet.BasePath())
	if err != nil {
		return "", err
	}
	return sle.ParseBasePath(data)
}

// Holdings returns how many minted tokens an account currently holds.
func (s *Service) Holdings(account string) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return 0, ErrNotStarted
	}
	id, err := sle.DecodeAccountID(account)
	if err != nil {
		return 0, err
	}
	return ownership.Holdings(s.state, id)
}

func (s *Service) readTokenLocked(id uint64) (*sle.Token, error) {
	if s.state == nil {
		return nil, ErrNotStarted
	}

	data, err := s.state.Read(keylet.Token(id))
	if err != nil {
		return nil, err
	}
	if data == nil {
		return nil, ErrUnknownToken
	}
	return sle.ParseToken(data)
}
