package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"storefront-events/config"
	"storefront-events/internal/auditlog"
	"storefront-events/internal/handler"
	"storefront-events/internal/queue"
	redisqueue "storefront-events/internal/redis"
	"storefront-events/internal/repository"
	"storefront-events/internal/server"
	"storefront-events/internal/services"
	"storefront-events/internal/storage"
	"storefront-events/internal/worker"
	"storefront-events/pkg/database"
	storefront_errors "storefront-events/pkg/errors"
	"storefront-events/pkg/logger"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	log := logger.New(cfg.LogMode)
	logger.SetGlobalLogger(log)
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("storefront-events exited with error", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *logger.Logger) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	port, err := queue.Open(ctx, queue.Config{
		Driver: cfg.QueueDriver,
		Prefix: cfg.QueuePrefix,
		Redis: redisqueue.Config{
			Host:     cfg.RedisHost,
			Port:     cfg.RedisPort,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		},
		Kafka: queue.KafkaConfig{
			Brokers:     cfg.KafkaBrokers,
			GroupID:     cfg.KafkaGroupID,
			PollTimeout: cfg.KafkaPollWait,
		},
	}, log)
	if err != nil {
		return fmt.Errorf("open queue: %w", err)
	}
	defer func() {
		if err := queue.Close(port); err != nil {
			log.Warn("failed to close queue driver", zap.Error(err))
		}
	}()
	log.Info("queue driver ready", zap.String("driver", cfg.QueueDriver))

	sink, auditCheck, closeAudit, err := openAudit(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open audit sink: %w", err)
	}
	defer closeAudit()
	log.Info("audit sink ready", zap.String("driver", cfg.AuditDriver))

	var inspector services.ImageInspector
	if cfg.S3Bucket != "" {
		client, err := storage.NewClient(ctx, storage.S3Config{
			Region:     cfg.S3Region,
			Bucket:     cfg.S3Bucket,
			AccessKey:  cfg.S3AccessKey,
			SecretKey:  cfg.S3SecretKey,
			Endpoint:   cfg.S3Endpoint,
			PublicBase: cfg.S3PublicBase,
		})
		if err != nil {
			log.Warn("image inspection disabled", zap.Error(err))
		} else {
			inspector = client
		}
	}

	workers, err := services.BuildWorkers(services.SettingsFromConfig(cfg), port, sink, inspector, log)
	if err != nil {
		return err
	}
	runner := worker.NewRunner(log, workers.Tasks()...)
	runner.Start(ctx)

	srv := server.New(cfg, log)
	srv.SetupRoutes(&server.Handlers{
		Notifications: handler.NewNotificationHandler(services.NewNotifier(port, log)),
		Queues:        handler.NewQueueHandler(port),
	}, services.NewAuthService(cfg.JWTSecret))
	if pinger, ok := port.(queue.Pinger); ok {
		srv.AddHealthCheck("queue", pinger.Ping)
	}
	srv.AddHealthCheck("audit", auditCheck)

	serveErr := srv.Run(ctx)

	// the server only returns early on a listen error; stop the workers too
	cancel()
	runner.Wait()
	for name, state := range runner.States() {
		log.Info("worker finished", zap.String("worker", name), zap.Stringer("state", state))
	}
	return serveErr
}

func openAudit(ctx context.Context, cfg *config.Config) (auditlog.Sink, server.HealthCheck, func(), error) {
	switch strings.ToLower(cfg.AuditDriver) {
	case "memory":
		sink := auditlog.NewMemorySink()
		return sink, sink.Ping, func() {}, nil
	case "postgres", "":
		db, err := database.Connect(ctx, cfg)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := repository.InitSchema(ctx, db); err != nil {
			_ = db.Close()
			return nil, nil, nil, err
		}
		repo := repository.NewAuditRepository(db)
		return repo, repo.Ping, func() { _ = db.Close() }, nil
	default:
		return nil, nil, nil, fmt.Errorf("%w: audit driver %q", storefront_errors.ErrUnknownDriver, cfg.AuditDriver)
	}
}
