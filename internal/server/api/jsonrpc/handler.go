// Package jsonrpc serves the ledger over JSON-RPC 2.0, with a websocket
// endpoint for notification streams.
package jsonrpc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mintforge/goMintd/internal/core/ledger/service"
	"github.com/mintforge/goMintd/internal/storage/history"
)

// ErrHistoryDisabled is returned by history methods when no history store
// is configured.
var ErrHistoryDisabled = errors.New("history recording is not enabled")

const defaultHistoryLimit = 50

type methodFunc func(ctx context.Context, params json.RawMessage) (interface{}, error)

// Handler dispatches JSON-RPC methods against the ledger service.
type Handler struct {
	ledger  *service.Service
	history history.Store
	methods map[string]methodFunc
}

// NewHandler creates a handler over the ledger service. The history store
// may be nil, which disables the history methods.
func NewHandler(ledger *service.Service, hist history.Store) *Handler {
	h := &Handler{
		ledger:  ledger,
		history: hist,
		methods: make(map[string]methodFunc),
	}

	h.methods["ping"] = h.handlePing
	h.methods["server_info"] = h.handleServerInfo
	h.methods["submit"] = h.handleSubmit
	h.methods["token_info"] = h.handleTokenInfo
	h.methods["is_minted"] = h.handleIsMinted
	h.methods["creator_of"] = h.handleCreatorOf
	h.methods["owner_of"] = h.handleOwnerOf
	h.methods["royalty_info"] = h.handleRoyaltyInfo
	h.methods["current_token_id"] = h.handleCurrentTokenID
	h.methods["descriptor_uri"] = h.handleDescriptorURI
	h.methods["base_path"] = h.handleBasePath
	h.methods["holdings"] = h.handleHoldings
	h.methods["account_history"] = h.handleAccountHistory
	h.methods["token_events"] = h.handleTokenEvents

	return h
}

// Handle dispatches a JSON-RPC method. Unknown methods and bad params are
// reported as *Error values.
func (h *Handler) Handle(ctx context.Context, method string, params json.RawMessage) (interface{}, *Error) {
	fn, ok := h.methods[method]
	if !ok {
		return nil, errMethodNotFound(method)
	}

	result, err := fn(ctx, params)
	if err != nil {
		var rpcErr *Error
		if errors.As(err, &rpcErr) {
			return nil, rpcErr
		}
		return nil, errInternal(err)
	}
	return result, nil
}

// Methods lists the registered method names.
func (h *Handler) Methods() []string {
	names := make([]string, 0, len(h.methods))
	for name := range h.methods {
		names = append(names, name)
	}
	return names
}

func unmarshalParams(params json.RawMessage, dst interface{}) error {
	if len(params) == 0 {
		return errInvalidParams(fmt.Errorf("params required"))
	}
	if err := json.Unmarshal(params, dst); err != nil {
		return errInvalidParams(err)
	}
	return nil
}

type tokenParams struct {
	TokenID uint64 `json:"token_id"`
}

func (h *Handler) handlePing(ctx context.Context, params json.RawMessage) (interface{}, error) {
	return map[string]string{"status": "ok"}, nil
}

func (h *Handler) handleServerInfo(ctx context.Context, params json.RawMessage) (interface{}, error) {
	info, err := h.ledger.ServerInfo()
	if err != nil {
		return nil, err
	}
	return info, nil
}

// submitResult is the JSON shape of an operation submission outcome.
type submitResult struct {
	EngineResult string      `json:"engine_result"`
	Applied      bool        `json:"applied"`
	Message      string      `json:"message,omitempty"`
	Metadata     interface{} `json:"metadata,omitempty"`
}

func (h *Handler) handleSubmit(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if len(params) == 0 {
		return nil, errInvalidParams(fmt.Errorf("operation object required"))
	}

	result, err := h.ledger.SubmitJSON(ctx, params)
	if err != nil {
		return nil, errInvalidParams(err)
	}

	out := submitResult{
		EngineResult: result.Result.String(),
		Applied:      result.Applied,
		Message:      result.Message,
	}
	if result.Applied && result.Metadata != nil {
		out.Metadata = result.Metadata
	}
	return out, nil
}

func (h *Handler) handleTokenInfo(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p tokenParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}
	return h.ledger.TokenInfo(p.TokenID)
}

func (h *Handler) handleIsMinted(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p tokenParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}
	minted, err := h.ledger.IsMinted(p.TokenID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"token_id": p.TokenID, "minted": minted}, nil
}

func (h *Handler) handleCreatorOf(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p tokenParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}
	creator, err := h.ledger.CreatorOf(p.TokenID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"token_id": p.TokenID, "creator": creator}, nil
}

func (h *Handler) handleOwnerOf(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p tokenParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}
	owner, err := h.ledger.OwnerOf(p.TokenID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"token_id": p.TokenID, "owner": owner}, nil
}

func (h *Handler) handleRoyaltyInfo(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		TokenID   uint64 `json:"token_id"`
		SalePrice uint64 `json:"sale_price"`
	}
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}
	recipient, amount, err := h.ledger.RoyaltyInfo(p.TokenID, p.SalePrice)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"token_id":  p.TokenID,
		"recipient": recipient,
		"amount":    amount,
	}, nil
}

func (h *Handler) handleCurrentTokenID(ctx context.Context, params json.RawMessage) (interface{}, error) {
	current, err := h.ledger.CurrentTokenID()
	if err != nil {
		return nil, err
	}
	return map[string]uint64{"current_token_id": current}, nil
}

func (h *Handler) handleDescriptorURI(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p tokenParams
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}
	uri, err := h.ledger.DescriptorURI(p.TokenID)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"token_id": p.TokenID, "uri": uri}, nil
}

func (h *Handler) handleBasePath(ctx context.Context, params json.RawMessage) (interface{}, error) {
	path, err := h.ledger.BasePath()
	if err != nil {
		return nil, err
	}
	return map[string]string{"base_path": path}, nil
}

func (h *Handler) handleHoldings(ctx context.Context, params json.RawMessage) (interface{}, error) {
	var p struct {
		Account string `json:"account"`
	}
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}
	count, err := h.ledger.Holdings(p.Account)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"account": p.Account, "holdings": count}, nil
}

func (h *Handler) handleAccountHistory(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if h.history == nil {
		return nil, ErrHistoryDisabled
	}

	var p struct {
		Account string `json:"account"`
		Limit   int    `json:"limit"`
	}
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}
	if p.Limit <= 0 {
		p.Limit = defaultHistoryLimit
	}

	ops, err := h.history.OperationsByAccount(ctx, p.Account, p.Limit)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"account": p.Account, "operations": ops}, nil
}

func (h *Handler) handleTokenEvents(ctx context.Context, params json.RawMessage) (interface{}, error) {
	if h.history == nil {
		return nil, ErrHistoryDisabled
	}

	var p struct {
		TokenID uint64 `json:"token_id"`
		Limit   int    `json:"limit"`
	}
	if err := unmarshalParams(params, &p); err != nil {
		return nil, err
	}
	if p.Limit <= 0 {
		p.Limit = defaultHistoryLimit
	}

	evs, err := h.history.EventsByToken(ctx, p.TokenID, p.Limit)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{"token_id": p.TokenID, "events": evs}, nil
}
