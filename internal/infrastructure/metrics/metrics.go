// Package metrics holds the ledger's Prometheus collectors.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
)

// Metrics implements usecase.PostingMetrics.
type Metrics struct {
	VouchersPosted  *prometheus.CounterVec
	PostingDuration prometheus.Histogram
	PostedAmount    *prometheus.HistogramVec
	PostingErrors   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. A nil reg uses
// the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		VouchersPosted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restledger_vouchers_posted_total",
				Help: "Total number of vouchers posted by kind",
			},
			[]string{"kind"},
		),
		PostingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "restledger_posting_duration_seconds",
			Help:    "Duration of posting transactions",
			Buckets: prometheus.DefBuckets,
		}),
		PostedAmount: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "restledger_posted_amount",
				Help:    "Posted voucher amounts",
				Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
			},
			[]string{"kind"},
		),
		PostingErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "restledger_posting_errors_total",
				Help: "Total number of failed postings by reason",
			},
			[]string{"reason"},
		),
	}
}

// VoucherPosted records one committed voucher.
func (m *Metrics) VoucherPosted(kind domain.Kind, amount decimal.Decimal, took time.Duration) {
	m.VouchersPosted.WithLabelValues(string(kind)).Inc()
	m.PostingDuration.Observe(took.Seconds())
	m.PostedAmount.WithLabelValues(string(kind)).Observe(amount.InexactFloat64())
}

// PostingFailed records a rejected or failed posting.
func (m *Metrics) PostingFailed(reason string) {
	m.PostingErrors.WithLabelValues(reason).Inc()
}
