package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/storelab/review-gateway/internal/config"
	"github.com/storelab/review-gateway/internal/db"
	httpSrv "github.com/storelab/review-gateway/internal/http"
	"github.com/storelab/review-gateway/internal/logger"
	"github.com/storelab/review-gateway/internal/mailer"
	"github.com/storelab/review-gateway/internal/orders"
	"github.com/storelab/review-gateway/internal/service/review"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the webhook HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		logger.Init(cfg.Log.Level)
		defer logger.Sync()

		if cfg.Webhook.Secret == "" {
			return errors.New("webhook.secret must be configured")
		}

		// Redis is optional: without it the rate limiter is disabled.
		var rds *redis.Client
		if cfg.Redis.Addr != "" {
			rds, err = db.NewRedisClient(db.RedisOpts{
				Addr:        cfg.Redis.Addr,
				Password:    cfg.Redis.Password,
				DB:          cfg.Redis.DB,
				DialTimeout: cfg.Redis.DialTimeout,
			})
			if err != nil {
				return fmt.Errorf("redis connect: %w", err)
			}
			defer func() { _ = rds.Close() }()
		}

		ordersClient := orders.NewClient(cfg.Orders.Endpoint, cfg.Orders.AdminSecret, cfg.Orders.Timeout)

		mail := mailer.NewSMTP(mailer.SMTPOpts{
			Host:           cfg.SMTP.Host,
			Port:           cfg.SMTP.Port,
			Username:       cfg.SMTP.Username,
			Password:       cfg.SMTP.Password,
			From:           cfg.SMTP.FromAddress,
			FromName:       cfg.SMTP.FromName,
			PreviewURLBase: cfg.SMTP.PreviewURLBase,
			FailThreshold:  cfg.SMTP.Breaker.FailThreshold,
			OpenForMs:      cfg.SMTP.Breaker.OpenForMs,
		})

		svc := review.New(ordersClient, mail)
		server := httpSrv.NewServer(cfg, rds, svc)

		errCh := make(chan error, 1)
		go func() {
			logger.Log.Info("starting http server", zap.String("addr", cfg.HTTP.Addr))
			errCh <- server.Start(cfg.HTTP.Addr)
		}()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

		select {
		case sig := <-sigCh:
			logger.Log.Info("signal received, shutting down", zap.String("signal", sig.String()))
		case err := <-errCh:
			if err != nil {
				logger.Log.Error("http server exited", zap.Error(err))
			}
		}

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(ctx)

		return nil
	},
}
