package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"infaqku_backend/internals/features/infaq/bookingsync"
	"infaqku_backend/internals/features/infaq/slots/service"
	helper "infaqku_backend/internals/helpers"
	"infaqku_backend/internals/middlewares"
	routes "infaqku_backend/internals/route"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Jalankan HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd.Context())
	},
}

func runServe(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("store close", zap.Error(err))
		}
	}()

	// ✅ Booking sync (best-effort, tidak memblokir request)
	var notifier bookingsync.Notifier = bookingsync.LogNotifier{Log: logger.Named("bookingsync")}
	if cfg.BookingSyncURL != "" {
		notifier = bookingsync.NewWebhookNotifier(cfg.BookingSyncURL, cfg.BookingSyncTimeout)
	} else {
		logger.Warn("⚠️ BOOKING_SYNC_URL kosong, notifikasi booking hanya di-log")
	}
	dispatcher := bookingsync.NewDispatcher(notifier, cfg.BookingSyncMaxInflight, cfg.BookingSyncTimeout, logger)

	// ✅ MIDTRANS (opsional)
	var payments service.PaymentLinker
	if cfg.MidtransServerKey != "" {
		payments = service.NewMidtransLinker(cfg.MidtransServerKey, cfg.MidtransUseProd)
	}

	contribution := service.NewContributionService(store, dispatcher, payments, logger, service.Options{
		MaxAttempts: cfg.TxMaxAttempts,
	})

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ProxyHeader:           fiber.HeaderXForwardedFor,
		ReadTimeout:           15 * time.Second,
		WriteTimeout:          30 * time.Second,
		IdleTimeout:           90 * time.Second,
		ErrorHandler:          helper.ErrorHandler(logger),
	})
	middlewares.SetupMiddlewares(app, cfg.CorsAllowOrigins, logger)
	routes.SetupRoutes(app, routes.Deps{
		Store:        store,
		Contribution: contribution,
		Log:          logger,
		Environment:  cfg.AppEnv,
	})

	// Start server non-blocking
	errCh := make(chan error, 1)
	go func() {
		logger.Info("✅ Listening", zap.String("port", cfg.Port))
		errCh <- app.Listen("0.0.0.0:" + cfg.Port)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	var serveErr error
	select {
	case <-quit:
		logger.Info("🛑 Shutdown...")
	case serveErr = <-errCh:
		logger.Error("server error", zap.Error(serveErr))
	case <-ctx.Done():
	}

	// graceful shutdown: HTTP dulu, lalu drain notifikasi, store ditutup lewat defer
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	if err := dispatcher.Close(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
		logger.Warn("dispatcher close", zap.Error(err))
	}
	return serveErr
}
