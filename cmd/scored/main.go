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

	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/application/usecase"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/port"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/domain/service"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/infrastructure/config"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/infrastructure/kafka"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/infrastructure/scorecard"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/infrastructure/telemetry"
	grpcPresentation "github.com/BrianGithinji-BMG/Credit--Scoring/internal/presentation/grpc"
	"github.com/BrianGithinji-BMG/Credit--Scoring/internal/presentation/rest"
	pkgkafka "github.com/BrianGithinji-BMG/Credit--Scoring/pkg/kafka"
	"github.com/BrianGithinji-BMG/Credit--Scoring/pkg/observability"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	// Load configuration.
	cfg := config.Load()

	logger := observability.InitLogger(observability.LogConfig{
		Level:   cfg.Log.Level,
		Format:  cfg.Log.Format,
		Service: cfg.ServiceName,
	})

	if err := cfg.Validate(); err != nil {
		logger.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger.Info("starting farmscore",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"default_scorecard", cfg.DefaultScorecard,
	)

	// Metrics and tracing.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		logger.Error("failed to initialize metrics", "error", err)
		os.Exit(1)
	}
	defer func() { _ = meterProvider.Shutdown(context.Background()) }() //nolint:errcheck // best-effort flush

	if cfg.OTLPEndpoint != "" {
		shutdown, tracerErr := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: cfg.ServiceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if tracerErr != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", tracerErr)
		} else {
			defer func() { _ = shutdown(context.Background()) }() //nolint:errcheck // best-effort tracer shutdown
		}
	}

	recorder, err := telemetry.NewRecorder(meterProvider)
	if err != nil {
		logger.Error("failed to create metric instruments", "error", err)
		os.Exit(1)
	}

	// Scorecards are validated once; a bad weight table stops the process.
	registry, err := scorecard.Load(cfg.DefaultScorecard, cfg.ScorecardDir)
	if err != nil {
		logger.Error("failed to load scorecards", "error", err, "dir", cfg.ScorecardDir)
		os.Exit(1)
	}
	logger.Info("scorecards loaded", "names", registry.Names())

	// Event publishing.
	var (
		publisher port.EventPublisher = kafka.NewLogEventPublisher(logger)
		producer  *pkgkafka.Producer
	)
	kafkaCfg := cfg.Kafka.Client()
	if kafkaCfg.Enabled() {
		producer, err = pkgkafka.NewProducer(kafkaCfg)
		if err != nil {
			logger.Error("failed to create kafka producer", "error", err)
			os.Exit(1)
		}
		defer func() { _ = producer.Close() }() //nolint:errcheck // best-effort close
		publisher = kafka.NewKafkaEventPublisher(producer, cfg.Kafka.EventsTopic, logger)
		logger.Info("publishing assessment events to kafka", "topic", cfg.Kafka.EventsTopic)
	}

	// Use cases.
	normalizer := service.NewNormalizer(logger, recorder)
	scoreUC := usecase.NewScoreFarmerUseCase(registry, normalizer, publisher, recorder, logger)
	batchUC := usecase.NewScoreBatchUseCase(scoreUC, cfg.BatchConcurrency)
	listUC := usecase.NewListScorecardsUseCase(registry)

	// gRPC server.
	grpcServer, err := grpcPresentation.NewServer(
		grpcPresentation.NewScoringHandler(scoreUC, batchUC, listUC),
		logger,
		grpcPresentation.ServerConfig{
			TLSCertFile:     cfg.GRPC.TLSCertFile,
			TLSKeyFile:      cfg.GRPC.TLSKeyFile,
			TLSClientCAFile: cfg.GRPC.TLSClientCAFile,
			Reflection:      cfg.GRPC.Reflection,
		},
	)
	if err != nil {
		logger.Error("failed to create gRPC server", "error", err)
		os.Exit(1)
	}

	// HTTP server.
	mux := http.NewServeMux()
	rest.NewHealthHandler(registry, logger).RegisterRoutes(mux)
	rest.NewScoreHandler(scoreUC, batchUC, listUC, logger).RegisterRoutes(mux)
	mux.Handle("GET /metrics", metricsHandler)

	var limiter *rest.RateLimiter
	if cfg.RateLimit > 0 {
		limiter = rest.NewRateLimiter(cfg.RateLimit, cfg.RateBurst)
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr(),
		Handler:           rest.Chain(mux, rest.LoggingMiddleware(logger), rest.RateLimitMiddleware(limiter)),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 3)

	go func() {
		if err := grpcServer.Serve(cfg.GRPCAddr()); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "port", cfg.HTTPPort)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Score requests arriving on Kafka.
	if producer != nil && cfg.Kafka.RequestTopic != "" {
		handler := kafka.NewScoreRequestHandler(scoreUC, producer, cfg.Kafka.ResultTopic, logger)
		consumer, consumerErr := pkgkafka.NewConsumer(kafkaCfg, cfg.Kafka.RequestTopic, handler.Handle, logger)
		if consumerErr != nil {
			logger.Error("failed to create kafka consumer", "error", consumerErr)
			os.Exit(1)
		}
		defer func() { _ = consumer.Close() }() //nolint:errcheck // best-effort close
		go func() {
			if err := consumer.Start(ctx); err != nil {
				errCh <- fmt.Errorf("kafka consumer error: %w", err)
			}
		}()
	}

	// Wait for shutdown signal.
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case err := <-errCh:
		logger.Error("server error", "error", err)
	}

	// Graceful shutdown.
	grpcServer.GracefulStop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("farmscore stopped")
}
