package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-billing/app/entity"
	"github.com/vibast-solutions/ms-go-billing/app/metrics"
	"github.com/vibast-solutions/ms-go-billing/app/payment"
	"github.com/vibast-solutions/ms-go-billing/app/plan"
	"github.com/vibast-solutions/ms-go-billing/app/report"
	"github.com/vibast-solutions/ms-go-billing/app/repository"
	"github.com/vibast-solutions/ms-go-billing/config"
)

const (
	callbackStatusSuccess = "success"
	callbackStatusFailed  = "failed"
)

type settleOrderRequest interface {
	GetOrderId() string
	GetMerchantId() uint64
	GetAmount() int64
	GetCurrency() string
}

type listSettlementsRequest interface {
	GetMerchantId() uint64
	GetHasStatus() bool
	GetStatus() int32
}

type exportSettlementsRequest interface {
	GetMerchantId() uint64
	GetFrom() string
	GetTo() string
}

type payoutCallbackRequest interface {
	GetSettlementId() uint64
	GetStatus() string
	GetTransactionId() string
}

type settlementRepository interface {
	Create(ctx context.Context, settlement *entity.Settlement) error
	Update(ctx context.Context, settlement *entity.Settlement) error
	FindByID(ctx context.Context, id uint64) (*entity.Settlement, error)
	FindByOrderID(ctx context.Context, orderID string) (*entity.Settlement, error)
	List(ctx context.Context, filter repository.SettlementFilter) ([]*entity.Settlement, error)
	ListDueRetry(ctx context.Context, now time.Time, maxAttempts int32) ([]*entity.Settlement, error)
	ListStalled(ctx context.Context, pendingCutoff, processingCutoff time.Time) ([]*entity.Settlement, error)
}

type SettleResult struct {
	Settlement *entity.Settlement
	PaymentURL string
}

type SettlementService struct {
	registry       *plan.Registry
	merchantRepo   merchantRepository
	settlementRepo settlementRepository
	paymentService payment.Service
	cfg            config.BillingConfig
}

func NewSettlementService(
	registry *plan.Registry,
	merchantRepo merchantRepository,
	settlementRepo settlementRepository,
	paymentService payment.Service,
	cfg config.BillingConfig,
) *SettlementService {
	return &SettlementService{
		registry:       registry,
		merchantRepo:   merchantRepo,
		settlementRepo: settlementRepo,
		paymentService: paymentService,
		cfg:            cfg,
	}
}

func (s *SettlementService) SettleOrder(ctx context.Context, req settleOrderRequest) (*SettleResult, error) {
	orderID := strings.TrimSpace(req.GetOrderId())
	if orderID == "" || req.GetMerchantId() == 0 {
		return nil, fmt.Errorf("%w: order_id and merchant_id are required", ErrInvalidRequest)
	}
	if req.GetAmount() < 0 {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, plan.ErrNegativeAmount)
	}

	merchant, err := s.merchantRepo.FindByID(ctx, req.GetMerchantId())
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, ErrMerchantNotFound
	}

	existing, err := s.settlementRepo.FindByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrSettlementAlreadyExists
	}

	planID := merchant.SubscriptionPlanID()
	fee, err := s.registry.CalculateTransactionFee(req.GetAmount(), planID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
	}

	currency := strings.ToUpper(strings.TrimSpace(req.GetCurrency()))
	if currency == "" {
		currency = entity.DefaultCurrency
	}

	now := time.Now().UTC()
	settlement := &entity.Settlement{
		OrderID:    orderID,
		MerchantID: merchant.ID,
		PlanID:     planID,
		Amount:     req.GetAmount(),
		FeePercent: int32(s.registry.GetTransactionFeePercent(planID)),
		Fee:        fee,
		Payout:     req.GetAmount() - fee,
		Currency:   currency,
		Gateway:    s.paymentService.Name(),
		Status:     entity.SettlementStatusProcessing,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.settlementRepo.Create(ctx, settlement); err != nil {
		if errors.Is(err, repository.ErrSettlementAlreadyExists) {
			return nil, ErrSettlementAlreadyExists
		}
		return nil, err
	}

	result := &SettleResult{Settlement: settlement}
	if settlement.Payout == 0 {
		settlement.Status = entity.SettlementStatusSettled
	} else {
		result.PaymentURL = s.attemptPayout(ctx, settlement)
	}
	if err := s.saveOutcome(ctx, settlement); err != nil {
		if errors.Is(err, repository.ErrSettlementNotFound) {
			return nil, ErrSettlementNotFound
		}
		return nil, err
	}

	metrics.ObserveSettlement(settlement.Status, settlement.Payout)
	return result, nil
}

func (s *SettlementService) GetSettlement(ctx context.Context, id uint64) (*entity.Settlement, error) {
	settlement, err := s.settlementRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}
	return settlement, nil
}

func (s *SettlementService) ListSettlements(ctx context.Context, req listSettlementsRequest) ([]*entity.Settlement, error) {
	if req.GetHasStatus() && !isSettlementStatusAllowed(req.GetStatus()) {
		return nil, ErrInvalidStatus
	}

	return s.settlementRepo.List(ctx, repository.SettlementFilter{
		MerchantID: req.GetMerchantId(),
		HasStatus:  req.GetHasStatus(),
		Status:     req.GetStatus(),
	})
}

func (s *SettlementService) PayoutCallback(ctx context.Context, req payoutCallbackRequest) (*entity.Settlement, error) {
	settlement, err := s.settlementRepo.FindByID(ctx, req.GetSettlementId())
	if err != nil {
		return nil, err
	}
	if settlement == nil {
		return nil, ErrSettlementNotFound
	}

	now := time.Now().UTC()
	switch strings.ToLower(strings.TrimSpace(req.GetStatus())) {
	case callbackStatusSuccess:
		if settlement.Status == entity.SettlementStatusSettled {
			return settlement, nil
		}
		transactionID := strings.TrimSpace(req.GetTransactionId())
		if transactionID == "" {
			return nil, fmt.Errorf("%w: transaction_id is required", ErrInvalidRequest)
		}
		settlement.Status = entity.SettlementStatusSettled
		settlement.TransactionID = &transactionID
		settlement.NextAttemptAt = nil
	case callbackStatusFailed:
		if settlement.Status == entity.SettlementStatusSettled {
			return nil, fmt.Errorf("%w: settlement is already settled", ErrInvalidStatus)
		}
		settlement.Status = entity.SettlementStatusFailed
		s.scheduleRetry(settlement, now)
	default:
		return nil, fmt.Errorf("%w: invalid callback status", ErrInvalidRequest)
	}
	settlement.UpdatedAt = now

	if err := s.settlementRepo.Update(ctx, settlement); err != nil {
		if errors.Is(err, repository.ErrSettlementNotFound) {
			return nil, ErrSettlementNotFound
		}
		return nil, err
	}

	metrics.ObserveSettlement(settlement.Status, settlement.Payout)
	return settlement, nil
}

func (s *SettlementService) RunPayoutRetryBatch(ctx context.Context) error {
	now := time.Now().UTC()
	items, err := s.settlementRepo.ListDueRetry(ctx, now, s.cfg.MaxPayoutAttempts)
	if err != nil {
		return err
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		item.Status = entity.SettlementStatusProcessing
		item.UpdatedAt = time.Now().UTC()
		if err := s.settlementRepo.Update(ctx, item); err != nil {
			settlementLogger(item).WithError(err).Warn("payout_retry_claim_failed")
			continue
		}

		s.attemptPayout(ctx, item)
		if err := s.saveOutcome(ctx, item); err != nil {
			continue
		}
		metrics.ObserveSettlement(item.Status, item.Payout)
	}

	return nil
}

// RunPendingPayoutCleanupBatch fails settlements stuck awaiting a gateway callback, and
// settlements left in processing by a run that never saved its result, then schedules a retry.
func (s *SettlementService) RunPendingPayoutCleanupBatch(ctx context.Context) error {
	now := time.Now().UTC()
	items, err := s.settlementRepo.ListStalled(ctx, now.Add(-s.cfg.PendingPayoutTimeout), now.Add(-s.cfg.ProcessingTimeout))
	if err != nil {
		return err
	}

	for _, item := range items {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		previous := item.Status
		item.Status = entity.SettlementStatusFailed
		s.scheduleRetry(item, now)
		item.UpdatedAt = now
		if err := s.settlementRepo.Update(ctx, item); err != nil {
			settlementLogger(item).WithError(err).Warn("stalled_settlement_update_failed")
			continue
		}
		settlementLogger(item).
			WithField("previous_status", entity.SettlementStatusName(previous)).
			Info("stalled_settlement_failed")
		metrics.ObserveSettlement(item.Status, item.Payout)
	}

	return nil
}

// saveOutcome persists the result of a gateway call. The gateway may already have moved money,
// so the write is not tied to the caller's cancellation.
func (s *SettlementService) saveOutcome(ctx context.Context, item *entity.Settlement) error {
	item.UpdatedAt = time.Now().UTC()
	if err := s.settlementRepo.Update(context.WithoutCancel(ctx), item); err != nil {
		settlementLogger(item).
			WithField("status", entity.SettlementStatusName(item.Status)).
			WithError(err).
			Error("payout_outcome_save_failed")
		return err
	}
	return nil
}

func settlementLogger(item *entity.Settlement) *logrus.Entry {
	return logrus.WithFields(logrus.Fields{
		"module":        "billing-settlements",
		"settlement_id": item.ID,
		"order_id":      item.OrderID,
	})
}

func (s *SettlementService) ExportSettlements(ctx context.Context, w io.Writer, req exportSettlementsRequest) error {
	filter := repository.SettlementFilter{MerchantID: req.GetMerchantId()}

	from, err := parseOptionalTime(req.GetFrom(), "from")
	if err != nil {
		return err
	}
	to, err := parseOptionalTime(req.GetTo(), "to")
	if err != nil {
		return err
	}
	if from != nil && to != nil && !from.Before(*to) {
		return fmt.Errorf("%w: from must be before to", ErrInvalidRequest)
	}
	filter.From = from
	filter.To = to

	items, err := s.settlementRepo.List(ctx, filter)
	if err != nil {
		return err
	}
	return report.WriteSettlementsXLSX(w, items)
}

// scheduleRetry sets the next payout attempt, or clears it once attempts are exhausted.
func (s *SettlementService) scheduleRetry(item *entity.Settlement, now time.Time) {
	if item.Attempts >= s.cfg.MaxPayoutAttempts {
		item.NextAttemptAt = nil
		return
	}
	next := now.Add(s.cfg.PayoutRetryInterval)
	item.NextAttemptAt = &next
}

func parseOptionalTime(value, field string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid %s format", ErrInvalidRequest, field)
	}
	t = t.UTC()
	return &t, nil
}

func isSettlementStatusAllowed(status int32) bool {
	switch status {
	case entity.SettlementStatusFailed,
		entity.SettlementStatusProcessing,
		entity.SettlementStatusPendingPayout,
		entity.SettlementStatusSettled:
		return true
	default:
		return false
	}
}
