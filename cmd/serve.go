package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/RaikyD/tracking-number-service/internal/application"
	"github.com/RaikyD/tracking-number-service/internal/config"
	"github.com/RaikyD/tracking-number-service/internal/kafka"
	"github.com/RaikyD/tracking-number-service/internal/logger"
	"github.com/RaikyD/tracking-number-service/internal/metrics"
	"github.com/RaikyD/tracking-number-service/internal/presentation"
	"github.com/RaikyD/tracking-number-service/internal/repository"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and, when configured, the Kafka consumer",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(parent context.Context) error {
	if parent == nil {
		parent = context.Background()
	}
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("config load failed: %w", err)
	}
	if err := logger.Init(cfg.LOG_LEVEL); err != nil {
		return fmt.Errorf("logger init failed: %w", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(parent, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Wiring
	m := metrics.NewRegistry()
	store := repository.NewShardedStore()
	m.WatchEntries(store.Len)
	svc := application.NewTrackingService(repository.NewInstrumentedStore(store, m))

	var pub presentation.Publisher
	var consumer *kafka.Consumer
	if cfg.KafkaEnabled() {
		prod := kafka.NewProducer(cfg.KAFKA_BROKERS, cfg.KAFKA_ISSUED_TOPIC)
		defer prod.Close()
		pub = prod

		consumer = kafka.NewConsumer(kafka.ConsumerConfig{
			Brokers: cfg.KAFKA_BROKERS,
			Topic:   cfg.KAFKA_REQUEST_TOPIC,
			GroupID: cfg.KAFKA_GROUP_ID,
		}, svc, prod)
	} else {
		logger.Info("kafka disabled, KAFKA_BROKERS not set")
	}

	h := presentation.NewTrackingHandler(svc, pub, m)
	srv := &http.Server{
		Addr:              ":" + cfg.HTTP_PORT,
		Handler:           presentation.NewRouter(h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server crashed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down http")
		return srv.Shutdown(shutdownCtx)
	})
	if consumer != nil {
		g.Go(func() error { return consumer.Run(gctx) })
	}

	if err := g.Wait(); err != nil {
		logger.Error("service stopped with error", "err", err)
		return err
	}
	logger.Info("service stopped")
	return nil
}
