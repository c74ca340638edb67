// Package review turns one trigger invocation into review-request emails:
// compute the delivery window, fetch qualifying orders, send one email per
// order and collect per-order outcomes.
package review

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/storelab/review-gateway/internal/logger"
	"github.com/storelab/review-gateway/internal/mailer"
	"github.com/storelab/review-gateway/internal/metrics"
	"github.com/storelab/review-gateway/internal/model"
	"github.com/storelab/review-gateway/internal/util"
	"github.com/storelab/review-gateway/internal/window"
)

// OrdersClient fetches delivered-but-unreviewed orders for a window.
type OrdersClient interface {
	FetchReviewCandidates(ctx context.Context, w window.Window) ([]model.Order, error)
}

type Service struct {
	orders OrdersClient
	mail   mailer.Mailer
	now    func() time.Time
}

func New(orders OrdersClient, mail mailer.Mailer) *Service {
	return &Service{orders: orders, mail: mail, now: time.Now}
}

// Run executes one invocation. A fetch failure aborts before any email is
// sent. Send failures are isolated per order: every order is attempted
// exactly once and the returned outcomes line up index-for-index with the
// fetched order sequence regardless of completion order.
func (s *Service) Run(ctx context.Context) ([]model.Outcome, error) {
	w := window.Compute(s.now())

	logger.Log.Info("processing review request trigger",
		zap.String("window_start", w.StartString()),
		zap.String("window_end", w.EndString()),
	)

	fetchStart := time.Now()
	candidates, err := s.orders.FetchReviewCandidates(ctx, w)
	metrics.OrdersFetchSeconds.Observe(time.Since(fetchStart).Seconds())
	if err != nil {
		return nil, fmt.Errorf("fetch review candidates: %w", err)
	}

	outcomes := make([]model.Outcome, len(candidates))

	var wg sync.WaitGroup
	for i, o := range candidates {
		wg.Add(1)
		go func(i int, o model.Order) {
			defer wg.Done()
			outcomes[i] = s.sendOne(ctx, o)
		}(i, o)
	}
	wg.Wait()

	logger.Log.Info("review request trigger processed",
		zap.Int("orders", len(candidates)),
	)

	return outcomes, nil
}

func (s *Service) sendOne(ctx context.Context, o model.Order) model.Outcome {
	first := util.FirstName(o.User.Name)

	msg := mailer.Message{
		To:      o.User.Email,
		ToName:  o.User.Name,
		Subject: fmt.Sprintf("%s, how was your %s?", first, o.Product.Name),
		Text: fmt.Sprintf(
			"Hi %s,\n\n"+
				"Your %s was delivered last week. We'd love to hear how it's working out.\n"+
				"It only takes a minute to leave a review.\n\n"+
				"Thanks for shopping with us!",
			first, o.Product.Name,
		),
	}

	receipt, err := s.mail.Send(ctx, msg)
	if err != nil {
		logger.Log.Warn("review email dispatch failed",
			zap.String("order_id", o.ID),
			zap.Error(err),
		)
		metrics.ReviewEmailsTotal.WithLabelValues("failed").Inc()

		return model.Outcome{Error: err.Error()}
	}

	metrics.ReviewEmailsTotal.WithLabelValues("sent").Inc()

	return model.Outcome{MessageID: receipt.MessageID, PreviewURL: receipt.PreviewURL}
}
