// Package service wires the ledger state, the operation engine, event
// publishing and history recording into one sequenced surface. All
// submissions pass through a single writer lock, which is the global
// ordering the rest of the system assumes: one operation at a time, each
// fully committed or fully discarded before the next begins.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/mintforge/goMintd/internal/core/ledger"
	"github.com/mintforge/goMintd/internal/core/ledger/keylet"
	"github.com/mintforge/goMintd/internal/core/tx"
	"github.com/mintforge/goMintd/internal/core/tx/mint"
	"github.com/mintforge/goMintd/internal/core/tx/sle"
	"github.com/mintforge/goMintd/internal/events"
	"github.com/mintforge/goMintd/internal/storage/history"
	"github.com/mintforge/goMintd/internal/storage/statestore"
)

var (
	ErrNotStarted     = errors.New("service not started")
	ErrUnknownToken   = errors.New("token not found")
	ErrInvalidAccount = errors.New("invalid admin account")
)

// Config holds configuration for the ledger service.
type Config struct {
	// Standalone indicates whether the node runs without signature checks
	Standalone bool

	// AdminAccount is the hex account id allowed to submit BasePathSet.
	// Empty disables the operation.
	AdminAccount string

	// Store is the persistent statestore (optional, nil for in-memory only)
	Store *statestore.Store

	// History records applied operations (optional)
	History history.Store

	// Publisher delivers committed notifications (optional)
	Publisher events.Publisher
}

// DefaultConfig returns the default service configuration.
func DefaultConfig() Config {
	return Config{
		Standalone: true,
	}
}

// Service manages the ledger lifecycle and sequences all operations.
type Service struct {
	mu sync.RWMutex

	config    Config
	state     *ledger.State
	engine    *tx.Engine
	receivers *ReceiverRegistry
	publisher events.Publisher
	history   history.Store

	startedAt time.Time
	applied   uint64
}

// New creates a new ledger service.
func New(cfg Config) (*Service, error) {
	publisher := cfg.Publisher
	if publisher == nil {
		publisher = events.NopPublisher{}
	}

	return &Service{
		config:    cfg,
		receivers: NewReceiverRegistry(),
		publisher: publisher,
		history:   cfg.History,
	}, nil
}

// Start initializes the ledger state and the operation engine.
func (s *Service) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var state *ledger.State
	if s.config.Store != nil {
		loaded, err := ledger.NewPersistentState(s.config.Store)
		if err != nil {
			return err
		}
		state = loaded
	} else {
		state = ledger.NewState()
	}

	engineConfig := tx.EngineConfig{
		SkipSignatureVerification: s.config.Standalone,
		Standalone:                s.config.Standalone,
	}
	if s.config.AdminAccount != "" {
		admin, err := sle.DecodeAccountID(s.config.AdminAccount)
		if err != nil {
			return ErrInvalidAccount
		}
		engineConfig.AdminAccount = admin
	}

	s.state = state
	s.engine = tx.NewEngine(state, engineConfig, s.receivers)
	s.startedAt = time.Now()

	log.Printf("ledger service started, %d entries loaded", state.EntryCount())
	return nil
}

// Receivers exposes the receive-hook registry.
func (s *Service) Receivers() *ReceiverRegistry {
	return s.receivers
}

// Submit applies one operation under the sequencer lock. On commit, queued
// notifications are published. Both outcomes are recorded in history, but
// a failed operation leaves no state change and publishes nothing.
func (s *Service) Submit(ctx context.Context, op tx.Operation) (tx.ApplyResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.engine == nil {
		return tx.ApplyResult{}, ErrNotStarted
	}

	result := s.engine.Apply(op)
	if result.Applied {
		s.applied++
		s.publishLocked(result.Metadata)
	}
	s.recordLocked(ctx, op, result)

	return result, nil
}

// SubmitJSON parses a JSON-encoded operation and submits it.
func (s *Service) SubmitJSON(ctx context.Context, raw []byte) (tx.ApplyResult, error) {
	op, err := tx.FromJSON(raw)
	if err != nil {
		return tx.ApplyResult{}, err
	}
	return s.Submit(ctx, op)
}

// publishLocked hands committed notifications to the publisher, strictly
// in emission order.
func (s *Service) publishLocked(metadata *tx.Metadata) {
	if metadata == nil {
		return
	}
	for _, ev := range metadata.Events {
		s.publisher.Publish(ev)
	}
}

// recordLocked writes the operation and its notifications to history.
// History failures are logged, not surfaced: the ledger has already moved
// on and the index can be rebuilt.
func (s *Service) recordLocked(ctx context.Context, op tx.Operation, result tx.ApplyResult) {
	if s.history == nil {
		return
	}

	raw, err := json.Marshal(op)
	if err != nil {
		raw = nil
	}

	rec := &history.OperationRecord{
		Account:       op.GetCommon().Account,
		OperationType: op.GetCommon().OperationType,
		TokenID:       operationTokenID(op),
		Result:        result.Result.String(),
		Applied:       result.Applied,
		RawJSON:       raw,
	}
	if err := s.history.RecordOperation(ctx, rec); err != nil {
		log.Printf("history: record operation: %v", err)
	}

	if result.Metadata == nil {
		return
	}
	for _, ev := range result.Metadata.Events {
		payload, err := json.Marshal(ev)
		if err != nil {
			continue
		}
		eventRec := &history.EventRecord{
			Stream:  ev.Stream(),
			TokenID: ev.TokenID(),
			Payload: payload,
		}
		if err := s.history.RecordEvent(ctx, eventRec); err != nil {
			log.Printf("history: record event: %v", err)
		}
	}
}

func operationTokenID(op tx.Operation) uint64 {
	switch o := op.(type) {
	case *mint.Transfer:
		return o.TokenID
	case *mint.RoyaltySet:
		return o.TokenID
	default:
		return 0
	}
}

// Info summarizes the running service for server_info style queries.
type Info struct {
	Standalone  bool      `json:"standalone"`
	StartedAt   time.Time `json:"started_at"`
	Applied     uint64    `json:"applied_operations"`
	EntryCount  int       `json:"state_entries"`
	TokenCount  uint64    `json:"token_count"`
	Subscribers int       `json:"-"`
}

// ServerInfo returns a snapshot of service state.
func (s *Service) ServerInfo() (Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.state == nil {
		return Info{}, ErrNotStarted
	}

	tokens, err := s.currentTokenIDLocked()
	if err != nil {
		return Info{}, err
	}

	return Info{
		Standalone: s.config.Standalone,
		StartedAt:  s.startedAt,
		Applied:    s.applied,
		EntryCount: s.state.EntryCount(),
		TokenCount: tokens,
	}, nil
}

func (s *Service) currentTokenIDLocked() (uint64, error) {
	data, err := s.state.Read(keylet.TokenCounter())
	if err != nil {
		return 0, err
	}
	return sle.ParseTokenCounter(data)
}
