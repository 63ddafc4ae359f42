package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/nexvstar/site/internal/bootstrap"
	"github.com/nexvstar/site/internal/db"
	"github.com/nexvstar/site/internal/leads"
	"github.com/nexvstar/site/internal/notify"
	"github.com/nexvstar/site/internal/store/rabbitmq"
	"go.uber.org/zap"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := bootstrap.Init(ctx)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	gdb, err := db.Connect(cfg.DBDriver, cfg.DBDSN)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	if err := db.Migrate(gdb); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	notifier, err := bootstrap.Notifier(cfg)
	if err != nil {
		logger.Fatal("notifier", zap.Error(err))
	}

	// strict concurrency control: prefetch matches the pool size
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitURL, cfg.RabbitQueue, cfg.WorkerConcurrency)
	if err != nil {
		logger.Fatal("rabbit consumer", zap.Error(err))
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries()
	if err != nil {
		logger.Fatal("consume", zap.Error(err))
	}

	source := leads.NewService(leads.NewRepo(gdb), nil, logger)
	proc := notify.NewProcessor(notify.NewRepo(gdb), source, notifier, logger)
	pool := &notify.Pool{
		Concurrency: cfg.WorkerConcurrency,
		Handle:      proc.Handle,
		Log:         logger,
	}

	logger.Info("worker started",
		zap.String("queue", cfg.RabbitQueue),
		zap.Int("concurrency", cfg.WorkerConcurrency),
		zap.Int("channels", len(notifier)),
	)
	pool.Run(ctx, msgs)
}
