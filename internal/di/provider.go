package di

import (
	"context"
	"time"

	"github.com/mintforge/goMintd/internal/config"
	"github.com/mintforge/goMintd/internal/core/ledger/service"
	"github.com/mintforge/goMintd/internal/events"
	"github.com/mintforge/goMintd/internal/grpc"
	"github.com/mintforge/goMintd/internal/server/api/jsonrpc"
	"github.com/mintforge/goMintd/internal/storage/history"
	"github.com/mintforge/goMintd/internal/storage/statestore"
)

// Provider configures and registers services in the container.
type Provider struct {
	container *Container
	config    *config.Config
}

// NewProvider creates a new service provider.
func NewProvider(container *Container, cfg *config.Config) *Provider {
	return &Provider{
		container: container,
		config:    cfg,
	}
}

// RegisterAll registers all services.
func (p *Provider) RegisterAll() error {
	p.container.Register(ServiceConfig, p.config)

	p.registerStorageBuilders()
	p.registerLedgerBuilders()
	p.registerServerBuilders()

	return nil
}

// registerStorageBuilders registers storage service builders.
func (p *Provider) registerStorageBuilders() {
	// State store builder. The memory backend is still opened through the
	// store so caching and compression behave the same in every mode.
	p.container.RegisterBuilder(ServiceStateStore, func(c *Container) (interface{}, error) {
		store, err := statestore.Open(p.config.StateStore.StoreConfig())
		if err != nil {
			return nil, err
		}
		return store, nil
	})

	// History builder, nil when recording is disabled.
	p.container.RegisterBuilder(ServiceHistory, func(c *Container) (interface{}, error) {
		if !p.config.History.Enabled {
			return nil, nil
		}

		store, err := history.New(p.config.History.HistoryStoreConfig())
		if err != nil {
			return nil, err
		}
		if err := store.Open(context.Background()); err != nil {
			return nil, err
		}
		return store, nil
	})
}

// registerLedgerBuilders registers ledger service builders.
func (p *Provider) registerLedgerBuilders() {
	p.container.RegisterBuilder(ServiceEventPublisher, func(c *Container) (interface{}, error) {
		return events.NewSubscriptionManager(), nil
	})

	p.container.RegisterBuilder(ServiceLedger, func(c *Container) (interface{}, error) {
		store, err := p.StateStore()
		if err != nil {
			return nil, err
		}
		hist, err := p.History()
		if err != nil {
			return nil, err
		}
		publisher, err := p.EventPublisher()
		if err != nil {
			return nil, err
		}

		cfg := service.Config{
			Standalone:   p.config.Ledger.Standalone,
			AdminAccount: p.config.Ledger.AdminAccount,
			Store:        store,
			History:      hist,
			Publisher:    publisher,
		}

		svc, err := service.New(cfg)
		if err != nil {
			return nil, err
		}
		if err := svc.Start(); err != nil {
			return nil, err
		}
		return svc, nil
	})
}

// registerServerBuilders registers the RPC server builders.
func (p *Provider) registerServerBuilders() {
	p.container.RegisterBuilder(ServiceJSONRPCServer, func(c *Container) (interface{}, error) {
		ledger, err := p.LedgerService()
		if err != nil {
			return nil, err
		}
		hist, err := p.History()
		if err != nil {
			return nil, err
		}
		publisher, err := p.EventPublisher()
		if err != nil {
			return nil, err
		}

		handler := jsonrpc.NewHandler(ledger, hist)
		pingInterval := time.Duration(p.config.Server.WebsocketPingFrequency) * time.Second
		ws := jsonrpc.NewWebSocketServer(publisher, pingInterval)

		return jsonrpc.NewServer(p.config.Server.JSONRPCAddr, handler, ws), nil
	})

	p.container.RegisterBuilder(ServiceGRPCServer, func(c *Container) (interface{}, error) {
		if p.config.Server.GRPCAddr == "" {
			return nil, nil
		}

		ledger, err := p.LedgerService()
		if err != nil {
			return nil, err
		}

		cfg := grpc.DefaultServerConfig()
		cfg.Address = p.config.Server.GRPCAddr
		return grpc.NewServer(cfg, ledger)
	})
}

// LedgerService returns the started ledger service.
func (p *Provider) LedgerService() (*service.Service, error) {
	svc, err := p.container.Get(ServiceLedger)
	if err != nil {
		return nil, err
	}
	return svc.(*service.Service), nil
}

// StateStore returns the opened state store.
func (p *Provider) StateStore() (*statestore.Store, error) {
	store, err := p.container.Get(ServiceStateStore)
	if err != nil {
		return nil, err
	}
	return store.(*statestore.Store), nil
}

// History returns the history store, nil when recording is disabled.
func (p *Provider) History() (history.Store, error) {
	hist, err := p.container.Get(ServiceHistory)
	if err != nil {
		return nil, err
	}
	if hist == nil {
		return nil, nil
	}
	return hist.(history.Store), nil
}

// EventPublisher returns the shared subscription manager.
func (p *Provider) EventPublisher() (*events.SubscriptionManager, error) {
	publisher, err := p.container.Get(ServiceEventPublisher)
	if err != nil {
		return nil, err
	}
	return publisher.(*events.SubscriptionManager), nil
}

// JSONRPCServer returns the JSON-RPC server.
func (p *Provider) JSONRPCServer() (*jsonrpc.Server, error) {
	server, err := p.container.Get(ServiceJSONRPCServer)
	if err != nil {
		return nil, err
	}
	return server.(*jsonrpc.Server), nil
}

// GRPCServer returns the gRPC server, nil when not configured.
func (p *Provider) GRPCServer() (*grpc.Server, error) {
	server, err := p.container.Get(ServiceGRPCServer)
	if err != nil {
		return nil, err
	}
	if server == nil {
		return nil, nil
	}
	return server.(*grpc.Server), nil
}

// GetConfig returns the configuration from the container.
func (p *Provider) GetConfig() *config.Config {
	return p.config
}
