package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/nexvstar/site/internal/bootstrap"
	"github.com/nexvstar/site/internal/chatbot"
	"github.com/nexvstar/site/internal/content"
	"github.com/nexvstar/site/internal/db"
	"github.com/nexvstar/site/internal/httpapi"
	"github.com/nexvstar/site/internal/httpapi/handlers"
	"github.com/nexvstar/site/internal/httpapi/middleware"
	"github.com/nexvstar/site/internal/leads"
	"github.com/nexvstar/site/internal/newsletter"
	"github.com/nexvstar/site/internal/notify"
	"github.com/nexvstar/site/internal/site"
	"github.com/nexvstar/site/internal/store/rabbitmq"
	"github.com/nexvstar/site/internal/store/redisstore"
	"github.com/nexvstar/site/internal/users"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, logger, err := bootstrap.Init(ctx)
	if err != nil {
		log.Fatalf("startup: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	gin.SetMode(cfg.GinMode)

	catalog, err := site.Load()
	if err != nil {
		logger.Fatal("load site catalog", zap.Error(err))
	}
	placeholders, err := site.LoadPlaceholders()
	if err != nil {
		logger.Fatal("load placeholders", zap.Error(err))
	}

	// Without a database the site still serves the catalog and placeholder
	// content; store-backed calls answer "unavailable".
	var gdb *gorm.DB
	if conn, err := db.Connect(cfg.DBDriver, cfg.DBDSN); err != nil {
		logger.Error("database unavailable", zap.Error(err))
	} else if err := db.Migrate(conn); err != nil {
		logger.Error("database migrate failed", zap.Error(err))
	} else {
		gdb = conn
	}

	var (
		cache   content.Cache
		limiter middleware.Limiter
	)
	if cfg.RedisEnabled {
		rds := redisstore.New(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		if err := rds.Ping(pingCtx); err != nil {
			logger.Warn("redis unavailable, cache and rate limit off", zap.Error(err))
			_ = rds.Close()
		} else {
			defer rds.Close()
			cache, limiter = rds, rds
		}
		cancel()
	}

	var enqueuer leads.Enqueuer
	if cfg.RabbitEnabled && gdb != nil {
		pub, err := rabbitmq.NewPublisher(cfg.RabbitURL, cfg.RabbitQueue)
		if err != nil {
			logger.Warn("rabbitmq unavailable, sales notifications off", zap.Error(err))
		} else {
			defer pub.Close()
			enqueuer = notify.NewQueue(notify.NewRepo(gdb), pub)
		}
	}

	h := handlers.NewHandler(cfg, handlers.Deps{
		Leads:        leads.NewService(leads.NewRepo(gdb), enqueuer, logger),
		Newsletter:   newsletter.NewService(gdb),
		Content:      content.NewService(content.NewRepo(gdb), cache, cfg.ContentCacheTTL, logger),
		Users:        users.NewStore(gdb),
		Catalog:      catalog,
		Placeholders: placeholders,
		Chat: chatbot.NewRegistry(chatbot.Delay{
			Min:    cfg.ChatTypingMin,
			Jitter: cfg.ChatTypingJitter,
		}, cfg.ChatIdleTTL, cfg.ChatMaxConversations),
	}, logger)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           httpapi.NewRouter(cfg, h, limiter, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server started", zap.String("addr", cfg.HTTPAddr), zap.Bool("db", gdb != nil))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logger.Fatal("listen", zap.Error(err))
		}
	case <-ctx.Done():
	}

	logger.Info("server shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
}
