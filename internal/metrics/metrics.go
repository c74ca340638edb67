package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	WebhookRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewgw_webhook_requests_total",
			Help: "Webhook invocations by terminal status",
		},
		[]string{"status"}, // ok|unauthorized|rate_limited|fetch_failed
	)

	ReviewEmailsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reviewgw_review_emails_total",
			Help: "Review request emails by dispatch result",
		},
		[]string{"result"}, // sent|failed
	)

	OrdersFetchSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reviewgw_orders_fetch_seconds",
			Help:    "Latency of the upstream orders query",
			Buckets: prometheus.DefBuckets,
		},
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		WebhookRequestsTotal,
		ReviewEmailsTotal,
		OrdersFetchSeconds,
	)
}
