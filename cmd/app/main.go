package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"freight-assignment-engine/internal/config"
	pg "freight-assignment-engine/internal/infra/db/postgres"
	"freight-assignment-engine/internal/infra/logging"
	"freight-assignment-engine/internal/infra/metrics"
	red "freight-assignment-engine/internal/infra/redis"
	"freight-assignment-engine/internal/infra/web"
	"freight-assignment-engine/internal/infra/worker"
	"freight-assignment-engine/internal/usecase"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ---- CLI flags ----
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	devMode := flag.Bool("dev", false, "enable developer mode")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, *devMode)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.Log, cfg.Runtime.Dev)
	if cfg.Runtime.Dev {
		logger.Info().Msg("developer mode enabled")
	}

	metrics.MustRegister()

	// ---- Postgres ----
	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, cfg.Database.PoolSize)
	if err != nil {
		logger.Fatal().Err(err).Msg("postgres")
	}
	defer pool.Close()

	// ---- Redis ----
	redisClient, err := red.NewClient(ctx, &cfg.Redis)
	if err != nil {
		logger.Fatal().Err(err).Msg("redis")
	}
	defer redisClient.Close()
	decisionCache := red.NewDecisionCache(redisClient, cfg.Redis.TTL)

	// ---- Repositories ----
	tm := pg.NewTxManager(pool)
	orderRepo := pg.NewOrderRepo(pool)
	shipmentRepo := pg.NewShipmentRepo(pool)
	assignmentRepo := pg.NewAssignmentRepo(pool)
	jobRepo := pg.NewOptimizationJobRepo(pool, tm)

	// ---- Use cases ----
	optimizeUC := usecase.NewOptimizeUseCase(orderRepo, shipmentRepo, assignmentRepo, decisionCache, logger)
	submissionUC := usecase.NewSubmissionUseCase(jobRepo, logger)

	// ---- Worker pool + processor ----
	wpool := worker.NewPool(cfg.Worker.Count, logger)
	wpool.Start(ctx)
	processor := worker.NewOptimizationProcessor(jobRepo, optimizeUC, cfg.Worker.JobTimeout, logger)
	go processor.Start(ctx, wpool, cfg.Worker.PollInterval)

	// ---- HTTP server ----
	srv := web.NewServer(submissionUC, cfg.Server.APIKey, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: srv.Router(),
	}
	go func() {
		logger.Info().Str("addr", server.Addr).Msg("http server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error().Err(err).Msg("http server error")
		}
	}()

	// ---- Graceful shutdown ----
	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, syscall.SIGINT, syscall.SIGTERM)
	<-sigc
	logger.Info().Msg("shutdown requested")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = server.Shutdown(shutdownCtx)
	wpool.Stop()
}
