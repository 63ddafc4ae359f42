// Package bootstrap holds the startup steps shared by the server, the worker
// and sitectl.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nexvstar/site/internal/config"
	"github.com/nexvstar/site/internal/integrations/paramstore"
	"github.com/nexvstar/site/internal/logging"
	"github.com/nexvstar/site/internal/notify"
	"go.uber.org/zap"
)

var ErrNoNotifier = errors.New("bootstrap: no notification channel configured (set SMTP_HOST+SALES_NOTIFY_EMAIL or TELEGRAM_BOT_TOKEN+TELEGRAM_CHAT_ID)")

// Init loads the environment config, overlays SSM secrets when a prefix is
// set and builds the logger.
func Init(ctx context.Context) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.Config{}, nil, err
	}
	if cfg.SSMParamPrefix != "" {
		ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
		defer cancel()
		ps, err := paramstore.NewFromEnv(ctx)
		if err != nil {
			return config.Config{}, nil, err
		}
		if err := cfg.ApplySecrets(ctx, ps); err != nil {
			return config.Config{}, nil, err
		}
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, log, nil
}

// Notifier builds the sales notification fan-out from the configured
// channels.
func Notifier(cfg config.Config) (notify.Multi, error) {
	var out notify.Multi
	if cfg.SMTPHost != "" && cfg.SalesNotifyEmail != "" {
		out = append(out, notify.NewEmailNotifier(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SalesNotifyEmail))
	}
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		tg, err := notify.NewTelegramNotifier(cfg.TelegramBotToken, cfg.TelegramChatID)
		if err != nil {
			return nil, fmt.Errorf("telegram: %w", err)
		}
		out = append(out, tg)
	}
	if len(out) == 0 {
		return nil, ErrNoNotifier
	}
	return out, nil
}
