package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"

	"github.com/storelab/review-gateway/internal/metrics"
	"github.com/storelab/review-gateway/internal/model"
	"github.com/storelab/review-gateway/internal/orders"
)

// triggerReq is the optional invocation body sent by the scheduler.
// trigger_type is informational only.
type triggerReq struct {
	TriggerType string `json:"trigger_type"`
}

type triggerResponse struct {
	Message  string          `json:"message"`
	Outcomes []model.Outcome `json:"outcomes"`
}

func reviewRequestHandler(runner TriggerRunner) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req triggerReq
		// body is optional and may be absent entirely
		_ = c.Bind(&req)
		if req.TriggerType != "" {
			log.Infof("trigger invoked: type=%s", req.TriggerType)
		}

		outcomes, err := runner.Run(c.Request().Context())
		if err != nil {
			log.Errorf("trigger processing failed: %v", err)
			metrics.WebhookRequestsTotal.WithLabelValues("fetch_failed").Inc()

			status := http.StatusInternalServerError
			if errors.Is(err, orders.ErrUpstream) {
				status = http.StatusBadGateway
			}

			return c.JSON(status, map[string]string{"message": "failed to fetch review candidates"})
		}

		metrics.WebhookRequestsTotal.WithLabelValues("ok").Inc()

		return c.JSON(http.StatusOK, triggerResponse{
			Message:  "Review requests sent!",
			Outcomes: outcomes,
		})
	}
}
