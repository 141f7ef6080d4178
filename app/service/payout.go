package service

import (
	"context"
	"fmt"
	"time"

	"github.com/vibast-solutions/ms-go-billing/app/entity"
	"github.com/vibast-solutions/ms-go-billing/app/payment"
)

// attemptPayout calls the gateway once and moves the settlement to the resulting status.
// It returns the gateway's redirect URL, if any.
func (s *SettlementService) attemptPayout(ctx context.Context, item *entity.Settlement) string {
	result, err := s.processPayoutSafely(ctx, item)
	item.Attempts++
	now := time.Now().UTC()

	if err != nil {
		settlementLogger(item).WithError(err).Warn("payout_attempt_panicked")
		item.Status = entity.SettlementStatusFailed
		s.scheduleRetry(item, now)
		return ""
	}

	switch result.Type {
	case payment.ResultTypeSuccess:
		transactionID := result.TransactionID
		item.Status = entity.SettlementStatusSettled
		item.TransactionID = &transactionID
		item.NextAttemptAt = nil
	case payment.ResultTypeRedirect:
		item.Status = entity.SettlementStatusPendingPayout
		item.NextAttemptAt = nil
		return result.PaymentURL
	default:
		settlementLogger(item).
			WithField("attempts", item.Attempts).
			WithField("gateway_error", result.Error).
			Warn("payout_attempt_failed")
		item.Status = entity.SettlementStatusFailed
		s.scheduleRetry(item, now)
	}
	return ""
}

func (s *SettlementService) processPayoutSafely(ctx context.Context, item *entity.Settlement) (_ payment.Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("payout processing failed: %v", rec)
		}
	}()

	return s.paymentService.ProcessPayout(ctx, item.ID, item.MerchantID, item.Payout, item.Currency), nil
}
