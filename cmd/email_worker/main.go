package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/oksasatya/alc-backend/config"
	"github.com/oksasatya/alc-backend/internal/container"
	"github.com/oksasatya/alc-backend/pkg/helpers"
	"github.com/oksasatya/alc-backend/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env, cfg.LogLevel)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("email queue not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		logger.Fatal("Mailgun not configured")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	q, err := container.OpenMQ(ctx, cfg)
	if err != nil {
		logger.WithError(err).Fatal("broker connect failed")
	}
	defer func() { _ = q.Close() }()

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	w := &worker{Sender: mg, Log: logger, Timeout: cfg.CollaboratorTimeout}

	logger.WithField("queue", cfg.RabbitMQEmailQueue).WithField("driver", cfg.MQDriver).Info("email worker listening")
	if err := q.Subscribe(ctx, cfg.RabbitMQEmailQueue, w.Handle); err != nil && !errors.Is(err, context.Canceled) {
		logger.WithError(err).Fatal("subscription ended")
	}
	logger.Info("email worker stopped")
}
