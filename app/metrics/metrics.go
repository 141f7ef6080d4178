package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/vibast-solutions/ms-go-billing/app/entity"
)

const namespace = "bizshop"

// UnknownPlanLabel replaces unresolved plan ids to keep label cardinality bounded.
const UnknownPlanLabel = "unknown"

var (
	feeQuotes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fee_quotes_total",
		Help:      "Transaction fee quotes by plan and whether the default rate was applied.",
	}, []string{"plan", "fallback"})

	settlements = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settlements_total",
		Help:      "Settlement state transitions by resulting status.",
	}, []string{"status"})

	settledPayout = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "settled_payout_amount_total",
		Help:      "Sum of payouts moved to settled, in whole currency units.",
	})

	entitlementChecks = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "entitlement_checks_total",
		Help:      "Entitlement decisions by resource and outcome.",
	}, []string{"resource", "allowed"})

	grpcRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "grpc_request_duration_seconds",
		Help:      "Latency of unary gRPC calls by method and status code.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "code"})
)

const (
	ResourceStore   = "store"
	ResourceProduct = "product"
)

func ObserveFeeQuote(planID string, fallback bool) {
	if fallback {
		planID = UnknownPlanLabel
	}
	feeQuotes.WithLabelValues(planID, strconv.FormatBool(fallback)).Inc()
}

func ObserveSettlement(status int32, payout int64) {
	settlements.WithLabelValues(entity.SettlementStatusName(status)).Inc()
	if status == entity.SettlementStatusSettled && payout > 0 {
		settledPayout.Add(float64(payout))
	}
}

func ObserveEntitlementCheck(resource string, allowed bool) {
	entitlementChecks.WithLabelValues(resource, strconv.FormatBool(allowed)).Inc()
}

func ObserveGRPCRequest(method, code string, latency time.Duration) {
	grpcRequests.WithLabelValues(method, code).Observe(latency.Seconds())
}
