package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mintforge/goMintd/internal/config"
	"github.com/mintforge/goMintd/internal/di"
)

var (
	// Server flag overrides
	standalone   bool
	jsonrpcAddr  string
	grpcAddr     string
	adminAccount string
)

// serverCmd represents the server command (default action)
var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the mint ledger daemon",
	Long: `Start the mintd server which provides:
- HTTP JSON-RPC API for operation submission and queries
- WebSocket streams for prepared/minted/royalty/base-path notifications
- Optional gRPC API

This is the default command when no subcommand is specified.`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(serverCmd)

	// Set server as the default command
	rootCmd.RunE = serverCmd.RunE

	serverCmd.Flags().BoolVar(&standalone, "standalone", false, "skip signature verification on submitted operations")
	serverCmd.Flags().StringVar(&jsonrpcAddr, "jsonrpc", "", "JSON-RPC listen address (overrides config)")
	serverCmd.Flags().StringVar(&grpcAddr, "grpc", "", "gRPC listen address (overrides config)")
	serverCmd.Flags().StringVar(&adminAccount, "admin", "", "hex account id allowed to set the base descriptor path")
}

func runServer(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(configFile)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)

	if cfg.DebugLogfile != "" {
		f, err := os.OpenFile(cfg.DebugLogfile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("failed to open debug logfile: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	container := di.New()
	provider := di.NewProvider(container, cfg)
	if err := provider.RegisterAll(); err != nil {
		return err
	}

	jsonrpcServer, err := provider.JSONRPCServer()
	if err != nil {
		return err
	}
	grpcServer, err := provider.GRPCServer()
	if err != nil {
		return err
	}

	if !quiet {
		fmt.Println("Starting mintd - deferred-minting token ledger")
		fmt.Printf("  - JSON-RPC:  http://%s/\n", jsonrpcServer.Addr())
		fmt.Printf("  - WebSocket: ws://%s/ws\n", jsonrpcServer.Addr())
		if grpcServer != nil {
			fmt.Printf("  - gRPC:      %s\n", cfg.Server.GRPCAddr)
		}
		if cfg.Ledger.Standalone {
			fmt.Println("  - Standalone mode: signature checks disabled")
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	group, ctx := errgroup.WithContext(ctx)

	group.Go(func() error {
		if err := jsonrpcServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if grpcServer != nil {
		group.Go(func() error {
			return grpcServer.Start()
		})
	}

	group.Go(func() error {
		<-ctx.Done()
		if !quiet {
			fmt.Println("shutting down...")
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if grpcServer != nil {
			grpcServer.Stop()
		}
		return jsonrpcServer.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	if store, err := provider.StateStore(); err == nil && store != nil {
		if err := store.Close(); err != nil {
			log.Printf("statestore close: %v", err)
		}
	}
	if hist, err := provider.History(); err == nil && hist != nil {
		if err := hist.Close(); err != nil {
			log.Printf("history close: %v", err)
		}
	}
	return nil
}

// applyFlagOverrides lets explicit command line flags win over the config
// file and environment.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("standalone") {
		cfg.Ledger.Standalone = standalone
	}
	if jsonrpcAddr != "" {
		cfg.Server.JSONRPCAddr = jsonrpcAddr
	}
	if grpcAddr != "" {
		cfg.Server.GRPCAddr = grpcAddr
	}
	if adminAccount != "" {
		cfg.Ledger.AdminAccount = adminAccount
	}
}
