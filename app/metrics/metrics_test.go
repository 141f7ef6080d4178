package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/vibast-solutions/ms-go-billing/app/entity"
)

func TestObserveFeeQuoteCollapsesUnknownPlans(t *testing.T) {
	before := testutil.ToFloat64(feeQuotes.WithLabelValues(UnknownPlanLabel, "true"))

	ObserveFeeQuote("made-up-1", true)
	ObserveFeeQuote("made-up-2", true)

	assert.Equal(t, before+2, testutil.ToFloat64(feeQuotes.WithLabelValues(UnknownPlanLabel, "true")))
}

func TestObserveFeeQuoteKnownPlan(t *testing.T) {
	before := testutil.ToFloat64(feeQuotes.WithLabelValues("premium", "false"))
	ObserveFeeQuote("premium", false)
	assert.Equal(t, before+1, testutil.ToFloat64(feeQuotes.WithLabelValues("premium", "false")))
}

func TestObserveSettlement(t *testing.T) {
	settledBefore := testutil.ToFloat64(settlements.WithLabelValues("settled"))
	failedBefore := testutil.ToFloat64(settlements.WithLabelValues("failed"))
	payoutBefore := testutil.ToFloat64(settledPayout)

	ObserveSettlement(entity.SettlementStatusSettled, 990)
	ObserveSettlement(entity.SettlementStatusFailed, 500)

	assert.Equal(t, settledBefore+1, testutil.ToFloat64(settlements.WithLabelValues("settled")))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(settlements.WithLabelValues("failed")))
	assert.Equal(t, payoutBefore+990, testutil.ToFloat64(settledPayout))
}

func TestObserveEntitlementCheck(t *testing.T) {
	before := testutil.ToFloat64(entitlementChecks.WithLabelValues(ResourceStore, "false"))
	ObserveEntitlementCheck(ResourceStore, false)
	assert.Equal(t, before+1, testutil.ToFloat64(entitlementChecks.WithLabelValues(ResourceStore, "false")))
}

func TestObserveGRPCRequest(t *testing.T) {
	ObserveGRPCRequest("/bizshop.billing.BillingService/GetPlan", "OK", 3*time.Millisecond)
	assert.GreaterOrEqual(t, testutil.CollectAndCount(grpcRequests, "bizshop_grpc_request_duration_seconds"), 1)
}
