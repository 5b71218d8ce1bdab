package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/opsdeck/opsdeck/internal/accounts"
	"github.com/opsdeck/opsdeck/internal/app"
	"github.com/opsdeck/opsdeck/internal/auth"
	"github.com/opsdeck/opsdeck/internal/fixture"
	"github.com/opsdeck/opsdeck/internal/observability"
	"github.com/opsdeck/opsdeck/internal/platform/cache"
	"github.com/opsdeck/opsdeck/internal/rbac"
	"github.com/opsdeck/opsdeck/internal/requests"
	"github.com/opsdeck/opsdeck/internal/roles"
	"github.com/opsdeck/opsdeck/internal/sales"
	"github.com/opsdeck/opsdeck/internal/shared"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	dataset := fixture.Default()

	accountsRepo, err := accounts.NewRepository(dataset.Users)
	if err != nil {
		logger.Error("seed accounts", slog.Any("error", err))
		os.Exit(1)
	}
	accountsService := accounts.NewService(accountsRepo)

	tokens := auth.NewTokenStore(redisClient, cfg.TokenSecret, cfg.TokenTTL)
	authService := auth.NewService(accountsService, tokens)
	authHandler := auth.NewHandler(logger, authService)

	rbacMiddleware := rbac.Middleware{Verifier: tokens, Logger: logger}
	auditLog := shared.NewAuditLogger(0)

	accountsHandler := accounts.NewHandler(logger, accountsService, rbacMiddleware, auditLog)

	salesRepo := sales.NewRepository(dataset.Sales)
	salesHandler := sales.NewHandler(logger, sales.NewService(salesRepo), rbacMiddleware, auditLog)

	requestsRepo := requests.NewRepository(dataset.Requests)
	requestsHandler := requests.NewHandler(logger, requests.NewService(requestsRepo), rbacMiddleware, auditLog)

	rolesHandler := roles.NewHandler(logger, roles.NewRepository(dataset.Roles))

	metrics := observability.NewMetrics()

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		AuthHandler:     authHandler,
		AccountsHandler: accountsHandler,
		SalesHandler:    salesHandler,
		RequestsHandler: requestsHandler,
		RolesHandler:    rolesHandler,
		RBACMiddleware:  rbacMiddleware,
		Audit:           auditLog,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("resource service listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exited", slog.Any("error", err))
		os.Exit(1)
	}
}
