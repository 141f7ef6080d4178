package service

import (
	"context"
	"time"

	"github.com/vibast-solutions/ms-go-billing/app/entity"
	"github.com/vibast-solutions/ms-go-billing/app/payment"
	"github.com/vibast-solutions/ms-go-billing/app/repository"
	"github.com/vibast-solutions/ms-go-billing/config"
)

type mockMerchantRepo struct {
	findByIDFn      func(ctx context.Context, id uint64) (*entity.Merchant, error)
	updatePlanFn    func(ctx context.Context, id uint64, planID string, updatedAt time.Time) error
	countStoresFn   func(ctx context.Context, merchantID uint64) (int64, error)
	countProductsFn func(ctx context.Context, merchantID uint64) (int64, error)
}

func (m *mockMerchantRepo) FindByID(ctx context.Context, id uint64) (*entity.Merchant, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockMerchantRepo) UpdatePlan(ctx context.Context, id uint64, planID string, updatedAt time.Time) error {
	if m.updatePlanFn != nil {
		return m.updatePlanFn(ctx, id, planID, updatedAt)
	}
	return nil
}

func (m *mockMerchantRepo) CountStores(ctx context.Context, merchantID uint64) (int64, error) {
	if m.countStoresFn != nil {
		return m.countStoresFn(ctx, merchantID)
	}
	return 0, nil
}

func (m *mockMerchantRepo) CountProducts(ctx context.Context, merchantID uint64) (int64, error) {
	if m.countProductsFn != nil {
		return m.countProductsFn(ctx, merchantID)
	}
	return 0, nil
}

type mockSettlementRepo struct {
	createFn                 func(ctx context.Context, settlement *entity.Settlement) error
	updateFn                 func(ctx context.Context, settlement *entity.Settlement) error
	findByIDFn               func(ctx context.Context, id uint64) (*entity.Settlement, error)
	findByOrderIDFn          func(ctx context.Context, orderID string) (*entity.Settlement, error)
	listFn                   func(ctx context.Context, filter repository.SettlementFilter) ([]*entity.Settlement, error)
	listDueRetryFn           func(ctx context.Context, now time.Time, maxAttempts int32) ([]*entity.Settlement, error)
	listStalledFn            func(ctx context.Context, pendingCutoff, processingCutoff time.Time) ([]*entity.Settlement, error)
}

func (m *mockSettlementRepo) Create(ctx context.Context, settlement *entity.Settlement) error {
	if m.createFn != nil {
		return m.createFn(ctx, settlement)
	}
	return nil
}

func (m *mockSettlementRepo) Update(ctx context.Context, settlement *entity.Settlement) error {
	if m.updateFn != nil {
		return m.updateFn(ctx, settlement)
	}
	return nil
}

func (m *mockSettlementRepo) FindByID(ctx context.Context, id uint64) (*entity.Settlement, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockSettlementRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.Settlement, error) {
	if m.findByOrderIDFn != nil {
		return m.findByOrderIDFn(ctx, orderID)
	}
	return nil, nil
}

func (m *mockSettlementRepo) List(ctx context.Context, filter repository.SettlementFilter) ([]*entity.Settlement, error) {
	if m.listFn != nil {
		return m.listFn(ctx, filter)
	}
	return nil, nil
}

func (m *mockSettlementRepo) ListDueRetry(ctx context.Context, now time.Time, maxAttempts int32) ([]*entity.Settlement, error) {
	if m.listDueRetryFn != nil {
		return m.listDueRetryFn(ctx, now, maxAttempts)
	}
	return nil, nil
}

func (m *mockSettlementRepo) ListStalled(ctx context.Context, pendingCutoff, processingCutoff time.Time) ([]*entity.Settlement, error) {
	if m.listStalledFn != nil {
		return m.listStalledFn(ctx, pendingCutoff, processingCutoff)
	}
	return nil, nil
}

type fakePaymentService struct {
	result      payment.Result
	calledCount int
	lastAmount  int64
}

func (f *fakePaymentService) Name() string {
	return "fake"
}

func (f *fakePaymentService) ProcessPayout(_ context.Context, _ uint64, _ uint64, amount int64, _ string) payment.Result {
	f.calledCount++
	f.lastAmount = amount
	return f.result
}

// cancelingPaymentService cancels the caller's context as the gateway call returns.
type cancelingPaymentService struct {
	cancel context.CancelFunc
	result payment.Result
}

func (c *cancelingPaymentService) Name() string {
	return "canceling"
}

func (c *cancelingPaymentService) ProcessPayout(context.Context, uint64, uint64, int64, string) payment.Result {
	c.cancel()
	return c.result
}

type panicPaymentService struct{}

func (p *panicPaymentService) Name() string {
	return "panic"
}

func (p *panicPaymentService) ProcessPayout(context.Context, uint64, uint64, int64, string) payment.Result {
	panic("gateway exploded")
}

func testConfig() config.BillingConfig {
	return config.BillingConfig{
		PayoutGateway:        "fake",
		PayoutRetryInterval:  10 * time.Minute,
		MaxPayoutAttempts:    3,
		PendingPayoutTimeout: 30 * time.Minute,
		ProcessingTimeout:    15 * time.Minute,
	}
}

func copySettlement(item *entity.Settlement) *entity.Settlement {
	cp := *item
	return &cp
}
