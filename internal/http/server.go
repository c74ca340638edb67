package http

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echoMid "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"github.com/storelab/review-gateway/internal/config"
	"github.com/storelab/review-gateway/internal/http/middleware"
	"github.com/storelab/review-gateway/internal/metrics"
	"github.com/storelab/review-gateway/internal/model"
)

// TriggerRunner executes one trigger invocation end to end.
type TriggerRunner interface {
	Run(ctx context.Context) ([]model.Outcome, error)
}

type Server struct{ e *echo.Echo }

func NewServer(cfg config.Config, rds *redis.Client, runner TriggerRunner) *Server {
	e := echo.New()
	e.HideBanner = true
	e.Use(echoMid.Recover(), echoMid.Logger())

	metrics.MustRegister(prometheus.DefaultRegisterer)

	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	// health
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	// middlewares
	authMW := middleware.SharedSecret(cfg.Webhook.Secret)
	rlMW := middleware.RateLimitMiddleware(middleware.RateLimitConfig{
		Redis:          rds,
		RPS:            cfg.RateLimit.RPS,
		KeyPrefix:      "rl:src:",
		Window:         time.Second,
		RetryAfterHint: true,
	})

	// routes
	e.POST("/review-request", reviewRequestHandler(runner), authMW, rlMW)

	return &Server{e: e}
}

func (s *Server) Start(addr string) error            { return s.e.Start(addr) }
func (s *Server) Shutdown(ctx context.Context) error { return s.e.Shutdown(ctx) }
