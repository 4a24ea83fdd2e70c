package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/base-angewandte/image-backend-sub000/internal/config"
	"github.com/base-angewandte/image-backend-sub000/internal/event"
	"github.com/base-angewandte/image-backend-sub000/internal/repository/postgres"
	"github.com/base-angewandte/image-backend-sub000/internal/service"
	"github.com/base-angewandte/image-backend-sub000/pkg/database"
	pkgkafka "github.com/base-angewandte/image-backend-sub000/pkg/kafka"
	"github.com/base-angewandte/image-backend-sub000/pkg/logger"
)

// The index worker keeps artwork search vectors in sync with catalogue and
// vocabulary changes. It consumes every image domain topic with one consumer
// group so each event is processed once across worker replicas.
var indexTopics = []string{
	event.TopicArtworkCreated,
	event.TopicArtworkUpdated,
	event.TopicArtworkDeleted,
	event.TopicPersonUpdated,
	event.TopicKeywordUpdated,
	event.TopicLocationUpdated,
	event.TopicMaterialUpdated,
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log := logger.New("image-indexworker", cfg.LogLevel)
	log.Info("starting index worker",
		slog.String("environment", cfg.Environment),
		slog.Any("brokers", cfg.KafkaBrokers),
		slog.String("group_id", cfg.KafkaIndexGroupID),
	)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("index worker error", slog.String("error", err.Error()))
		os.Exit(1)
	}

	log.Info("index worker stopped")
}

func run(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	initCtx, initCancel := context.WithTimeout(ctx, 30*time.Second)
	defer initCancel()

	pgCfg := database.PostgresConfig{
		Host:            cfg.PostgresHost,
		Port:            cfg.PostgresPort,
		User:            cfg.PostgresUser,
		Password:        cfg.PostgresPass,
		DBName:          cfg.PostgresDB,
		SSLMode:         cfg.PostgresSSL,
		MaxConns:        cfg.DBMaxConns,
		MinConns:        cfg.DBMinConns,
		MaxConnLifetime: time.Duration(cfg.DBMaxConnLifetimeMins) * time.Minute,
		MaxConnIdleTime: time.Duration(cfg.DBMaxConnIdleTimeMins) * time.Minute,
	}

	pool, err := database.NewPostgresPoolWithLogger(initCtx, &pgCfg, log)
	if err != nil {
		return fmt.Errorf("connect to postgres: %w", err)
	}
	defer pool.Close()
	log.Info("connected to PostgreSQL",
		slog.String("host", cfg.PostgresHost),
		slog.String("database", cfg.PostgresDB),
	)

	if err := pkgkafka.PingBrokers(initCtx, cfg.KafkaBrokers); err != nil {
		return fmt.Errorf("ping kafka brokers: %w", err)
	}

	indexer := service.NewIndexerService(postgres.NewIndexRepository(pool), log)
	eventConsumer := event.NewConsumer(indexer, log)

	// Duplicate deliveries are harmless here (the recompute is idempotent),
	// the store just skips redundant vector rebuilds on rebalance replays.
	idempotencyStore := pkgkafka.NewMemoryIdempotencyStore(24 * time.Hour)
	handle := pkgkafka.IdempotentHandler(idempotencyStore, eventConsumer.Handle, log)

	dlq := pkgkafka.NewDLQProducer(cfg.KafkaBrokers, log)
	defer func() {
		if err := dlq.Close(); err != nil {
			log.Error("dlq producer close error", slog.String("error", err.Error()))
		}
	}()

	consumers := make([]*pkgkafka.Consumer, 0, len(indexTopics))
	for _, topic := range indexTopics {
		consumer := pkgkafka.NewConsumer(pkgkafka.ConsumerConfig{
			Brokers:  cfg.KafkaBrokers,
			GroupID:  cfg.KafkaIndexGroupID,
			Topic:    topic,
			MinBytes: 1,
			MaxBytes: 10e6,
		}, handle, log).WithDLQ(dlq)
		consumers = append(consumers, consumer)
	}

	errCh := make(chan error, len(consumers))
	for i, consumer := range consumers {
		topic := indexTopics[i]
		c := consumer
		go func() {
			if err := c.Start(ctx); err != nil {
				errCh <- fmt.Errorf("consumer %s: %w", topic, err)
			}
		}()
	}

	select {
	case <-ctx.Done():
		log.Info("shutdown signal received")
	case err := <-errCh:
		cancel()
		closeConsumers(consumers, log)
		return err
	}

	closeConsumers(consumers, log)
	return nil
}

func closeConsumers(consumers []*pkgkafka.Consumer, log *slog.Logger) {
	for _, c := range consumers {
		if err := c.Close(); err != nil {
			log.Error("consumer close error", slog.String("error", err.Error()))
		}
	}
}
