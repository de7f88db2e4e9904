package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rpggio/recipebox/internal/app"
	"github.com/rpggio/recipebox/internal/config"
	"github.com/rpggio/recipebox/internal/domain/identity"
	"github.com/rpggio/recipebox/internal/domain/recipe"
	"github.com/rpggio/recipebox/internal/mcp"
	"github.com/rpggio/recipebox/internal/sqlite"
	"github.com/rpggio/recipebox/internal/transport"
	"github.com/spf13/cobra"
)

func newServeCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the recipe manager MCP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.ConfigPath)
			if err != nil {
				return fmt.Errorf("config error: %w", err)
			}
			return runServe(cfg)
		},
	}
}

func runServe(cfg config.Config) error {
	// Use stderr for logs in stdio mode to keep stdout clean for JSON-RPC.
	logWriter := io.Writer(os.Stdout)
	if cfg.Transport.Mode == config.ModeStdio {
		logWriter = os.Stderr
	}
	if logPath := os.Getenv("RECIPEBOX_LOG_PATH"); logPath != "" {
		fileWriter, file, err := newLogFileWriter(logPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "log file error: %v\n", err)
		} else {
			defer file.Close()
			logWriter = fileWriter
		}
	}
	logger := slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var (
		provider   identity.Provider
		store      recipe.CollectionStore
		identities *sqlite.Identities
		collection *sqlite.Collection
	)
	if cfg.Store.Path == "" {
		logger.Warn("store path not configured, running without a backing store")
	} else {
		db, err := openStore(cfg.Store.Path)
		if err != nil {
			logger.Error("failed to open store", "path", cfg.Store.Path, "error", err)
			return err
		}
		defer db.Close()

		identities = sqlite.NewIdentities(db)
		collection = sqlite.NewCollection(db, logger)
		provider = identities
		store = collection
	}

	authSvc := identity.NewService(provider, cfg.Auth.Token, logger)
	recipeSvc := recipe.NewService(store, logger)
	ctrl := app.NewController(authSvc, recipeSvc, recipe.NewPrinter(cfg.Locale), logger)

	ctrlDone := make(chan struct{})
	go func() {
		defer close(ctrlDone)
		if err := ctrl.Run(ctx); err != nil {
			logger.Error("controller stopped", "error", err)
		}
	}()
	defer func() {
		cancel()
		<-ctrlDone
	}()

	if cfg.Store.Watch && collection != nil {
		go func() {
			if err := collection.Watch(ctx, sqlite.DefaultWatchDebounce); err != nil {
				logger.Warn("store watch stopped", "error", err)
			}
		}()
	}

	mcpServer := mcp.NewServer(mcp.Config{
		Controller: ctrl,
		Version:    version,
		Logger:     logger,
	})

	if cfg.Transport.Mode == config.ModeStdio {
		return runStdioMode(ctx, logger, mcpServer)
	}

	var authMiddleware func(http.Handler) http.Handler
	if cfg.Server.RequireToken {
		if identities == nil {
			return errors.New("server.require_token needs a configured store")
		}
		authMiddleware = transport.AuthMiddleware(identities)
	}
	router := transport.NewRouter(transport.Options{
		MCP: sdkmcp.NewStreamableHTTPHandler(
			func(r *http.Request) *sdkmcp.Server { return mcpServer },
			&sdkmcp.StreamableHTTPOptions{
				Stateless:      false,
				SessionTimeout: 30 * time.Minute,
			},
		),
		Status: authSvc.Status,
		Auth:   authMiddleware,
		Logger: logger,
	})
	return runHTTPMode(logger, router, cfg.Server.Host, cfg.Server.Port)
}

func openStore(path string) (*sqlite.DB, error) {
	if err := ensureDBDir(path); err != nil {
		return nil, fmt.Errorf("prepare database path: %w", err)
	}
	db, err := sqlite.New(path)
	if err != nil {
		return nil, err
	}
	if err := db.RunMigrations(); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func runStdioMode(ctx context.Context, logger *slog.Logger, mcpServer *sdkmcp.Server) error {
	logger.Info("starting stdio transport")

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Run blocks until stdin closes or context is canceled
	if err := mcpServer.Run(ctx, &sdkmcp.StdioTransport{}); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("stdio server error", "error", err)
		return err
	}
	logger.Info("shutting down")
	return nil
}

func runHTTPMode(logger *slog.Logger, handler http.Handler, host string, port int) error {
	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server listening", "addr", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	return waitForShutdown(logger, httpServer, errCh)
}

func ensureDBDir(path string) error {
	if path == ":memory:" || path == "" {
		return nil
	}
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func waitForShutdown(logger *slog.Logger, server *http.Server, errCh <-chan error) error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
	case err := <-errCh:
		logger.Error("server error", "error", err)
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	logger.Info("shutting down")
	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", "error", err)
		return err
	}
	return nil
}
