package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/LavaJover/storefront-wallet-service/internal/app/background"
	"github.com/LavaJover/storefront-wallet-service/internal/app/setup"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/grpcapi"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/handlers"
	"github.com/LavaJover/storefront-wallet-service/internal/delivery/http/middleware"
	"github.com/LavaJover/storefront-wallet-service/internal/infrastructure/migrate"
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc"
)

const shutdownTimeout = 15 * time.Second

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API, gRPC health endpoint and the reconcile poller",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply SQL migrations on startup")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	deps, err := setup.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("init dependencies: %w", err)
	}
	defer deps.Close()

	if !skipMigrations {
		if err := migrate.RunMigrations(deps.DB, cfg.WalletDB.MigrationsPath); err != nil {
			return err
		}
	}

	ucs, err := setup.InitializeUseCases(deps)
	if err != nil {
		return fmt.Errorf("init usecases: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := ucs.BankProfileUsecase.SeedBankProfiles(ctx, cfg.Banks); err != nil {
		return fmt.Errorf("seed bank profiles: %w", err)
	}

	sqlDB, err := deps.DB.DB()
	if err != nil {
		return err
	}
	health := grpcapi.NewHealthHandler(sqlDB)
	grpcServer := grpc.NewServer()
	health.Register(grpcServer)

	router := handlers.NewRouter(handlers.RouterDeps{
		Wallet:   handlers.NewWalletHandler(ucs.DepositUsecase),
		Payment:  handlers.NewPaymentHandler(ucs.SettlementUsecase, ucs.BankProfileUsecase),
		Order:    handlers.NewOrderHandler(ucs.OrderUsecase),
		Admin:    handlers.NewAdminHandler(ucs.AdminUsecase, ucs.SettlementUsecase, ucs.ReconcileUsecase),
		Auth:     middleware.NewAuthenticator(cfg.Auth.JWTSecret),
		Gatherer: deps.Registry,
		Logger:   slog.Default(),
	})
	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var reconcileInterval time.Duration
	if cfg.Reconcile.Enabled {
		reconcileInterval = cfg.Reconcile.Interval
	}
	tasks := background.NewBackgroundTasks(ucs.ReconcileUsecase, health, reconcileInterval)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("http server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		addr := fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port)
		lis, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("failed to listen: %w", err)
		}
		slog.Info("grpc server started", "addr", addr)
		return grpcServer.Serve(lis)
	})

	g.Go(func() error {
		return tasks.StartAll(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		slog.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		grpcServer.GracefulStop()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
