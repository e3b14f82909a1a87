package grpc

import (
	"context"
	"errors"
	"net"
	"sync"

	"google.golang.org/grpc"

	"github.com/mintforge/goMintd/internal/core/ledger/service"
	"github.com/mintforge/goMintd/internal/core/tx"
)

// LedgerServiceInterface defines the ledger operations the gRPC handlers
// need. It is implemented by *service.Service.
type LedgerServiceInterface interface {
	// Submit applies one operation and returns its engine result
	Submit(ctx context.Context, op tx.Operation) (tx.ApplyResult, error)

	// SubmitJSON parses a JSON-encoded operation and submits it
	SubmitJSON(ctx context.Context, raw []byte) (tx.ApplyResult, error)

	// TokenInfo returns everything known about a token
	TokenInfo(id uint64) (*service.TokenInfo, error)

	// IsMinted reports whether a token has been minted
	IsMinted(id uint64) (bool, error)

	// RoyaltyInfo computes the royalty due on a sale
	RoyaltyInfo(id uint64, salePrice uint64) (string, uint64, error)

	// CurrentTokenID returns the highest issued token id
	CurrentTokenID() (uint64, error)

	// DescriptorURI resolves a token descriptor against the base path
	DescriptorURI(id uint64) (string, error)

	// Holdings returns how many minted tokens an account holds
	Holdings(account string) (uint64, error)

	// ServerInfo returns a snapshot of service state
	ServerInfo() (service.Info, error)
}

// Server represents the gRPC server for mint ledger operations.
type Server struct {
	mu sync.RWMutex

	// grpcServer is the underlying gRPC server
	grpcServer *grpc.Server

	// ledgerService provides access to ledger operations
	ledgerService LedgerServiceInterface

	// config holds the server configuration
	config *ServerConfig

	// listener is the network listener
	listener net.Listener

	// running indicates if the server is currently running
	running bool
}

// NewServer creates a new gRPC server with the given configuration.
func NewServer(cfg *ServerConfig, ledgerSvc LedgerServiceInterface) (*Server, error) {
	if cfg == nil {
		cfg = DefaultServerConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opts := []grpc.ServerOption{
		grpc.MaxRecvMsgSize(cfg.MaxRecvMsgSize),
		grpc.MaxSendMsgSize(cfg.MaxSendMsgSize),
	}

	return &Server{
		grpcServer:    grpc.NewServer(opts...),
		ledgerService: ledgerSvc,
		config:        cfg,
	}, nil
}

// Start starts the gRPC server and begins accepting connections.
// This method blocks until the server is stopped or an error occurs.
func (s *Server) Start() error {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return errors.New("server is already running")
	}

	listener, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	s.listener = listener
	s.running = true
	s.mu.Unlock()

	return s.grpcServer.Serve(listener)
}

// Stop gracefully stops the gRPC server. It stops accepting new
// connections and waits for existing connections to complete.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}

	s.grpcServer.GracefulStop()
	s.running = false
}

// IsRunning returns true if the server is currently running.
func (s *Server) IsRunning() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.running
}

// Address returns the address the server is listening on.
// Returns empty string if the server is not running.
func (s *Server) Address() string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

// GetGRPCServer returns the underlying grpc.Server.
// This can be used to register additional services.
func (s *Server) GetGRPCServer() *grpc.Server {
	return s.grpcServer
}
