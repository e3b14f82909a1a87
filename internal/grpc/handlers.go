package grpc

import (
	"context"
	"errors"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mintforge/goMintd/internal/core/ledger/service"
)

// SubmitRequest carries one JSON-encoded operation.
type SubmitRequest struct {
	// Operation is the JSON operation object
	Operation []byte
}

// SubmitResponse reports the engine result of a submission.
type SubmitResponse struct {
	// EngineResult is the result code name (e.g. tesSUCCESS)
	EngineResult string

	// Applied indicates whether the operation committed
	Applied bool

	// Message explains non-success results
	Message string
}

// Submit applies one operation.
func (s *Server) Submit(ctx context.Context, req *SubmitRequest) (*SubmitResponse, error) {
	svc, err := s.service()
	if err != nil {
		return nil, err
	}
	if len(req.Operation) == 0 {
		return nil, status.Error(codes.InvalidArgument, "operation is required")
	}

	result, err := svc.SubmitJSON(ctx, req.Operation)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	return &SubmitResponse{
		EngineResult: result.Result.String(),
		Applied:      result.Applied,
		Message:      result.Message,
	}, nil
}

// GetTokenRequest identifies one token.
type GetTokenRequest struct {
	TokenID uint64
}

// GetTokenResponse carries the queryable view of a token.
type GetTokenResponse struct {
	TokenID    uint64
	Creator    string
	Descriptor string
	URI        string
	Minted     bool

	// Owner is set only for minted tokens
	Owner string

	// HasRoyalty indicates whether royalty terms exist
	HasRoyalty       bool
	RoyaltyRecipient string
	RoyaltyBps       uint32
}

// GetToken retrieves token information.
func (s *Server) GetToken(ctx context.Context, req *GetTokenRequest) (*GetTokenResponse, error) {
	svc, err := s.service()
	if err != nil {
		return nil, err
	}

	info, err := svc.TokenInfo(req.TokenID)
	if err != nil {
		return nil, tokenError(err)
	}

	resp := &GetTokenResponse{
		TokenID:    info.ID,
		Creator:    info.Creator,
		Descriptor: info.Descriptor,
		URI:        info.URI,
		Minted:     info.Minted,
		Owner:      info.Owner,
	}
	if info.Royalty != nil {
		resp.HasRoyalty = true
		resp.RoyaltyRecipient = info.Royalty.Recipient
		resp.RoyaltyBps = uint32(info.Royalty.Bps)
	}
	return resp, nil
}

// GetRoyaltyRequest asks for the royalty due on a sale.
type GetRoyaltyRequest struct {
	TokenID   uint64
	SalePrice uint64
}

// GetRoyaltyResponse carries the computed royalty.
type GetRoyaltyResponse struct {
	// Recipient is empty when no terms are set
	Recipient string
	Amount    uint64
}

// GetRoyalty computes the royalty due on a sale.
func (s *Server) GetRoyalty(ctx context.Context, req *GetRoyaltyRequest) (*GetRoyaltyResponse, error) {
	svc, err := s.service()
	if err != nil {
		return nil, err
	}

	recipient, amount, err := svc.RoyaltyInfo(req.TokenID, req.SalePrice)
	if err != nil {
		return nil, tokenError(err)
	}
	return &GetRoyaltyResponse{Recipient: recipient, Amount: amount}, nil
}

// GetCurrentTokenIDResponse carries the allocator position.
type GetCurrentTokenIDResponse struct {
	CurrentTokenID uint64
}

// GetCurrentTokenID returns the highest issued token id.
func (s *Server) GetCurrentTokenID(ctx context.Context, req *struct{}) (*GetCurrentTokenIDResponse, error) {
	svc, err := s.service()
	if err != nil {
		return nil, err
	}

	current, err := svc.CurrentTokenID()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &GetCurrentTokenIDResponse{CurrentTokenID: current}, nil
}

// GetHoldingsRequest identifies one account.
type GetHoldingsRequest struct {
	Account string
}

// GetHoldingsResponse carries an account's owned-token count.
type GetHoldingsResponse struct {
	Account  string
	Holdings uint64
}

// GetHoldings returns how many minted tokens an account holds.
func (s *Server) GetHoldings(ctx context.Context, req *GetHoldingsRequest) (*GetHoldingsResponse, error) {
	svc, err := s.service()
	if err != nil {
		return nil, err
	}

	count, err := svc.Holdings(req.Account)
	if err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	return &GetHoldingsResponse{Account: req.Account, Holdings: count}, nil
}

// GetServerInfoResponse summarizes the running node.
type GetServerInfoResponse struct {
	Standalone        bool
	AppliedOperations uint64
	StateEntries      int
	TokenCount        uint64
}

// GetServerInfo returns a snapshot of service state.
func (s *Server) GetServerInfo(ctx context.Context, req *struct{}) (*GetServerInfoResponse, error) {
	svc, err := s.service()
	if err != nil {
		return nil, err
	}

	info, err := svc.ServerInfo()
	if err != nil {
		return nil, status.Error(codes.Internal, err.Error())
	}
	return &GetServerInfoResponse{
		Standalone:        info.Standalone,
		AppliedOperations: info.Applied,
		StateEntries:      info.EntryCount,
		TokenCount:        info.TokenCount,
	}, nil
}

func (s *Server) service() (LedgerServiceInterface, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.ledgerService == nil {
		return nil, status.Error(codes.Internal, "ledger service not available")
	}
	return s.ledgerService, nil
}

// tokenError maps ledger lookup errors to gRPC status codes.
func tokenError(err error) error {
	if errors.Is(err, service.ErrUnknownToken) {
		return status.Error(codes.NotFound, "token not found")
	}
	if errors.Is(err, service.ErrNotStarted) {
		return status.Error(codes.Unavailable, "ledger not started")
	}
	return status.Error(codes.Internal, err.Error())
}
