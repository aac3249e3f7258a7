package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/slalom/capabilities-management/internal"
	"github.com/slalom/capabilities-management/internal/auth"
	"github.com/slalom/capabilities-management/internal/capability"
	"github.com/slalom/capabilities-management/internal/transport/rest"
	"github.com/slalom/capabilities-management/pkg/logger"

	"github.com/go-chi/chi"
	"github.com/spf13/cobra"
)

var httpServerCmd = &cobra.Command{
	Use:   "server",
	Short: "Start HTTP server",
	Long:  `Start the HTTP server to handle API requests`,
	Run: func(cmd *cobra.Command, args []string) {
		startHTTPServer()
	},
}

// Dependencies owns all process-wide state: both stores are constructed from
// seed data at startup and live until the process exits.
type Dependencies struct {
	Config            *internal.Config
	Router            *chi.Mux
	Logger            *slog.Logger
	AuthHandler       *auth.Handler
	RBAC              *auth.RBACAuthorization
	CapabilityHandler *capability.Handler
}

func startHTTPServer() {
	deps, err := initializeDependencies()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize dependencies: %v\n", err)
		os.Exit(1)
	}

	rest.RegisterAllRoutes(
		deps.Router,
		deps.AuthHandler,
		deps.RBAC,
		deps.CapabilityHandler,
		deps.Config.Server.AllowedOrigins,
		deps.Logger,
	)

	addr := fmt.Sprintf(":%d", deps.Config.Server.Port)
	slog.Info("Starting HTTP server", "address", addr)

	server := &http.Server{
		Addr:              addr,
		Handler:           deps.Router,
		ReadHeaderTimeout: deps.Config.Server.ReadHeaderTimeout,
		ReadTimeout:       deps.Config.Server.ReadTimeout,
		WriteTimeout:      deps.Config.Server.WriteTimeout,
		IdleTimeout:       deps.Config.Server.IdleTimeout,
	}

	// Signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	serverErrChan := make(chan error, 1)
	go func() {
		serverErrChan <- server.ListenAndServe()
	}()

	select {
	case sig := <-sigChan:
		slog.Info("Received signal, shutting down...", "signal", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}
	case err := <-serverErrChan:
		if err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}

	slog.Info("Server stopped")
}

func initializeDependencies() (*Dependencies, error) {
	config, err := loadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(config.Observability.Logging.Level, config.Observability.Logging.Format)
	lg := logger.LoggerWrapper()

	userStore, err := auth.SeedUserStore(config.Security.BCryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to seed user store: %w", err)
	}

	tokenGen := auth.NewJWTTokenGenerator(config.Security.JWTSecret, config.Security.AccessTokenDuration)
	authService := auth.NewService(userStore, tokenGen, config.Security.BCryptCost)
	authorizer := auth.NewAuthorizer(auth.NewRolePermissionMatrix())

	registry := capability.NewRegistry(capability.SeedCapabilities())
	capabilityService := capability.NewService(registry, authorizer, lg)

	lg.Info("stores seeded", "users", userStore.Len(), "capabilities", registry.Len())

	return &Dependencies{
		Config:            config,
		Logger:            lg,
		Router:            chi.NewRouter(),
		AuthHandler:       auth.NewHandler(authService),
		RBAC:              auth.NewRBACAuthorization(authorizer, lg),
		CapabilityHandler: capability.NewHandler(capabilityService),
	}, nil
}
