package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"

	"github.com/iho/restledger/internal/domain"
)

func TestNewRegistersMetrics(t *testing.T) {
	registry := prometheus.NewRegistry()
	m := New(registry)

	m.VoucherPosted(domain.KindPayIn, decimal.RequireFromString("12.50"), 20*time.Millisecond)

	families, err := registry.Gather()
	if err != nil {
		t.Fatalf("failed to gather metrics: %v", err)
	}
	if len(families) < 3 {
		t.Fatalf("expected posting metrics to be registered, got %d families", len(families))
	}
}

func TestVoucherPostedCountsByKind(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.VoucherPosted(domain.KindPayIn, decimal.NewFromInt(10), time.Millisecond)
	m.VoucherPosted(domain.KindPayIn, decimal.NewFromInt(20), time.Millisecond)
	m.VoucherPosted(domain.KindReversal, decimal.NewFromInt(10), time.Millisecond)

	if got := testutil.ToFloat64(m.VouchersPosted.WithLabelValues("payin")); got != 2 {
		t.Fatalf("expected 2 payin vouchers, got %v", got)
	}
	if got := testutil.ToFloat64(m.VouchersPosted.WithLabelValues("reversal")); got != 1 {
		t.Fatalf("expected 1 reversal, got %v", got)
	}
	if got := testutil.CollectAndCount(m.PostingDuration); got != 1 {
		t.Fatalf("expected one duration series, got %d", got)
	}
}

func TestPostingFailedCountsByReason(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.PostingFailed("validation")
	m.PostingFailed("validation")
	m.PostingFailed("persistence")

	if got := testutil.ToFloat64(m.PostingErrors.WithLabelValues("validation")); got != 2 {
		t.Fatalf("expected 2 validation failures, got %v", got)
	}
	if got := testutil.ToFloat64(m.PostingErrors.WithLabelValues("persistence")); got != 1 {
		t.Fatalf("expected 1 persistence failure, got %v", got)
	}
}
