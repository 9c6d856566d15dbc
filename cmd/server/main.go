// Package main is the entry point for the ERP reports API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"erpreports/internal/config"
	"erpreports/internal/domain/payables"
	"erpreports/internal/domain/reports"
	v1 "erpreports/internal/infrastructure/http/v1"
	"erpreports/internal/infrastructure/storage/mssql"
	"erpreports/internal/infrastructure/storage/mssql/report_repo"
	"erpreports/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log, err := logger.New(logger.Config{
		Level:       cfg.Log.Level,
		Development: cfg.App.IsDevelopment(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)

	ctx := context.Background()
	log.Infow("starting erpreports server", "env", cfg.App.Env)

	// --- Database connection ---
	connectCtx, cancelConnect := context.WithTimeout(ctx, 30*time.Second)
	pool, err := mssql.NewPool(connectCtx, cfg.Database.PoolConfig())
	cancelConnect()
	if err != nil {
		log.Fatalw("failed to connect to database",
			"server", cfg.Database.Server,
			"database", cfg.Database.Name,
			"error", err,
		)
	}
	defer pool.Close()

	log.Infow("database connection established",
		"server", cfg.Database.Server,
		"database", cfg.Database.Name,
		"max_open_conns", cfg.Database.MaxOpenConns,
		"time_zone", cfg.Database.Location.String(),
	)

	// --- Reports ---
	runner := mssql.NewRunner(pool, cfg.Database.QueryTimeout)
	repo := report_repo.NewReportRepo(runner, cfg.Reports.HistoryStart)
	engine := payables.NewEngine(nil).WithLocation(cfg.Database.Location)
	reportService := reports.NewService(repo, engine)

	// --- Router ---
	handler := v1.NewHandler(v1.RouterConfig{
		DB:      pool,
		Reports: reportService,
		Logger:  log,
		APIKey:  cfg.App.APIKey,
		Debug:   cfg.App.IsDevelopment(),
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.App.Port,
		Handler:      handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	go func() {
		log.Infow("server starting", "port", cfg.App.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	pool.LogStats(shutdownCtx)
	log.Info("server stopped")
}
