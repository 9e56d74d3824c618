package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nordsym/guldkant-api/internal/config"
	"github.com/nordsym/guldkant-api/internal/http/handler"
	"github.com/nordsym/guldkant-api/internal/http/middleware"
	"github.com/nordsym/guldkant-api/internal/http/router"
	"github.com/nordsym/guldkant-api/internal/jobs"
	"github.com/nordsym/guldkant-api/internal/logger"
	"github.com/nordsym/guldkant-api/internal/service"
	"github.com/nordsym/guldkant-api/internal/webhook"
	"go.uber.org/zap"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize logger
	log, err := logger.NewLogger(&cfg.Logging, &cfg.App)
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting application",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Environment),
		zap.Int("port", cfg.App.Port),
	)

	// Webhook client is the only external collaborator; all persistence
	// and proposal dispatch go through it
	webhookClient := webhook.NewClient(&cfg.Webhook, log)

	// Initialize services
	quoteService := service.NewQuoteService(webhookClient, log)
	lifecycleService := service.NewLifecycleService(quoteService, webhookClient, log)
	metricsService := service.NewMetricsService(quoteService, log)

	// Initialize middleware
	rateLimiter := middleware.NewRateLimiter(&cfg.RateLimit, log)

	// Initialize handlers
	quoteHandler := handler.NewQuoteHandler(quoteService, lifecycleService, log)
	dashboardHandler := handler.NewDashboardHandler(metricsService, log)

	// Setup router
	rt := router.NewRouter(cfg, log, rateLimiter, quoteHandler, dashboardHandler)

	// Initialize and start scheduler for background jobs
	var scheduler *jobs.Scheduler
	if cfg.Jobs.FollowUpEnabled {
		scheduler = jobs.NewScheduler(log)

		followUpJob := jobs.NewFollowUpJob(
			quoteService,
			log,
			cfg.Jobs.FollowUpStaleDays,
			cfg.Jobs.FollowUpTimeoutDuration(),
		)
		if err := scheduler.AddJob(jobs.FollowUpJobName, cfg.Jobs.FollowUpCron, followUpJob.Run); err != nil {
			log.Error("Failed to register follow-up job", zap.Error(err))
		} else {
			scheduler.Start()
			log.Info("Scheduler started with follow-up job",
				zap.String("cron_expr", cfg.Jobs.FollowUpCron),
				zap.Int("stale_days", cfg.Jobs.FollowUpStaleDays),
			)
		}
	} else {
		log.Info("Follow-up scan disabled")
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      rt.Setup(),
		ReadTimeout:  cfg.Server.ReadTimeoutDuration(),
		WriteTimeout: cfg.Server.WriteTimeoutDuration(),
	}

	// Start server in goroutine
	serverErrors := make(chan error, 1)
	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		serverErrors <- srv.ListenAndServe()
	}()

	// Wait for interrupt signal
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-shutdown:
		log.Info("Shutdown signal received", zap.String("signal", sig.String()))

		// Stop scheduler if running
		if scheduler != nil {
			ctx := scheduler.Stop()
			<-ctx.Done()
			log.Info("Scheduler stopped")
		}

		// Graceful shutdown with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Failed to shutdown gracefully", zap.Error(err))
			return err
		}

		log.Info("Server stopped gracefully")
	}

	return nil
}
