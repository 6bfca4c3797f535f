package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.uber.org/zap"

	"github.com/cygnus-aran/serverless-card-sub004/internal/circuitbreaker"
	"github.com/cygnus-aran/serverless-card-sub004/internal/config"
	"github.com/cygnus-aran/serverless-card-sub004/internal/gateway"
	"github.com/cygnus-aran/serverless-card-sub004/internal/logging"
	"github.com/cygnus-aran/serverless-card-sub004/internal/metrics"
	"github.com/cygnus-aran/serverless-card-sub004/internal/provider"
	"github.com/cygnus-aran/serverless-card-sub004/internal/void"
)

const serviceName = "card-router"

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("configuration invalid", zap.Error(err))
	}

	logger := logging.New(cfg.Stage, os.Getenv("LOG_LEVEL"))
	defer logging.Sync(logger)

	tp, err := tracerProvider()
	if err != nil {
		logger.Fatal("tracer init failed", zap.Error(err))
	}
	otel.SetTracerProvider(tp)
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tp.Shutdown(ctx)
	}()

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)

	store, err := gateway.NewSQLiteStore(cfg.SQLitePath)
	if err != nil {
		logger.Fatal("storage init failed", zap.Error(err))
	}
	defer store.Close()

	queue := gateway.NewKafkaPublisher(cfg.KafkaBrokers, logger)
	defer queue.Close()

	remote := gateway.NewHTTPInvoker(cfg.FunctionBaseURL, nil, logger)
	breaker := circuitbreaker.New()
	tokens := provider.NewTokenIssuer(remote, cfg, logger)

	deps := provider.Deps{
		Remote:  remote,
		Store:   store,
		Breaker: breaker,
		Tokens:  tokens,
		Config:  cfg,
		Logger:  logger,
		Metrics: m,
	}
	adapters := provider.NewRegistry(cfg, provider.NewAll(deps)...)

	guard := void.NewRedisGuard(cfg.RedisAddr, 0)
	defer guard.Close()
	voids, err := void.NewService(cfg, store, queue, guard,
		void.NewRemoteExecutor(remote, cfg), logger, m)
	if err != nil {
		logger.Fatal("void service init failed", zap.Error(err))
	}

	srv := &server{
		cfg:      cfg,
		logger:   logger,
		registry: adapters,
		voids:    voids,
	}

	if cfg.Stage != "local" && cfg.Stage != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery(), otelgin.Middleware(serviceName))
	srv.routes(engine, registry)

	httpSrv := &http.Server{Addr: cfg.HTTPAddr, Handler: engine}
	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr))
		if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server stopped", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		logger.Error("shutdown incomplete", zap.Error(err))
	}
}

func tracerProvider() (*sdktrace.TracerProvider, error) {
	exporter, err := stdouttrace.New(stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, err
	}
	return sdktrace.NewTracerProvider(sdktrace.WithBatcher(exporter)), nil
}
