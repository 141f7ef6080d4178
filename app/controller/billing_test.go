package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/vibast-solutions/ms-go-billing/app/entity"
	"github.com/vibast-solutions/ms-go-billing/app/payment"
	"github.com/vibast-solutions/ms-go-billing/app/plan"
	"github.com/vibast-solutions/ms-go-billing/app/repository"
	"github.com/vibast-solutions/ms-go-billing/app/service"
	"github.com/vibast-solutions/ms-go-billing/config"
)

type controllerMerchantRepo struct {
	findByIDFn func(ctx context.Context, id uint64) (*entity.Merchant, error)
}

func (r *controllerMerchantRepo) FindByID(ctx context.Context, id uint64) (*entity.Merchant, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerMerchantRepo) UpdatePlan(context.Context, uint64, string, time.Time) error {
	return nil
}

func (r *controllerMerchantRepo) CountStores(context.Context, uint64) (int64, error) {
	return 0, nil
}

func (r *controllerMerchantRepo) CountProducts(context.Context, uint64) (int64, error) {
	return 0, nil
}

type controllerSettlementRepo struct {
	createFn   func(ctx context.Context, settlement *entity.Settlement) error
	findByIDFn func(ctx context.Context, id uint64) (*entity.Settlement, error)
	listFn     func(ctx context.Context, filter repository.SettlementFilter) ([]*entity.Settlement, error)
}

func (r *controllerSettlementRepo) Create(ctx context.Context, settlement *entity.Settlement) error {
	if r.createFn != nil {
		return r.createFn(ctx, settlement)
	}
	return nil
}

func (r *controllerSettlementRepo) Update(context.Context, *entity.Settlement) error {
	return nil
}

func (r *controllerSettlementRepo) FindByID(ctx context.Context, id uint64) (*entity.Settlement, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *controllerSettlementRepo) FindByOrderID(context.Context, string) (*entity.Settlement, error) {
	return nil, nil
}

func (r *controllerSettlementRepo) List(ctx context.Context, filter repository.SettlementFilter) ([]*entity.Settlement, error) {
	if r.listFn != nil {
		return r.listFn(ctx, filter)
	}
	return nil, nil
}

func (r *controllerSettlementRepo) ListDueRetry(context.Context, time.Time, int32) ([]*entity.Settlement, error) {
	return nil, nil
}

func (r *controllerSettlementRepo) ListStalled(context.Context, time.Time, time.Time) ([]*entity.Settlement, error) {
	return nil, nil
}

type controllerPaymentService struct {
	result payment.Result
}

func (s *controllerPaymentService) Name() string {
	return "test"
}

func (s *controllerPaymentService) ProcessPayout(context.Context, uint64, uint64, int64, string) payment.Result {
	return s.result
}

func newControllerForTest(merchantRepo *controllerMerchantRepo, settlementRepo *controllerSettlementRepo, paySvc *controllerPaymentService) *BillingController {
	cfg := config.BillingConfig{
		PayoutRetryInterval:  time.Minute,
		MaxPayoutAttempts:    3,
		PendingPayoutTimeout: 5 * time.Minute,
	}
	registry := plan.Default()
	return NewBillingController(
		service.NewPlanService(registry),
		service.NewEntitlementService(registry, merchantRepo),
		service.NewSettlementService(registry, merchantRepo, settlementRepo, paySvc, cfg),
	)
}

func newJSONContext(method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestListPlans(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodGet, "/plans", "")

	if err := ctrl.ListPlans(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var payload struct {
		Plans []struct {
			ID string `json:"id"`
		} `json:"plans"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if len(payload.Plans) != 4 || payload.Plans[0].ID != plan.IDFree {
		t.Fatalf("unexpected plans payload: %s", rec.Body.String())
	}
}

func TestGetPlanNotFound(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodGet, "/plans/gold", "")
	ctx.SetParamNames("id")
	ctx.SetParamValues("gold")

	_ = ctrl.GetPlan(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestQuoteFeeFallback(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodGet, "/fees/quote?plan_id=gold&amount=999", "")

	_ = ctrl.QuoteFee(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	var payload struct {
		Quote struct {
			Fee      int64 `json:"fee"`
			Payout   int64 `json:"payout"`
			Fallback bool  `json:"fallback"`
		} `json:"quote"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !payload.Quote.Fallback || payload.Quote.Fee != 50 || payload.Quote.Payout != 949 {
		t.Fatalf("unexpected quote: %s", rec.Body.String())
	}
}

func TestQuoteFeeNegativeAmount(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodGet, "/fees/quote?plan_id=free&amount=-10", "")

	_ = ctrl.QuoteFee(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestCheckEntitlementsUnknownPlanDenied(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodPost, "/entitlements/check", `{"plan_id":"gold","store_count":0,"product_count":0}`)

	_ = ctrl.CheckEntitlements(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"can_create_store":false`) || !strings.Contains(rec.Body.String(), `"can_add_product":false`) {
		t.Fatalf("expected both entitlements denied, got %s", rec.Body.String())
	}
}

func TestGetMerchantEntitlementsNotFound(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodGet, "/merchants/5/entitlements", "")
	ctx.SetParamNames("id")
	ctx.SetParamValues("5")

	_ = ctrl.GetMerchantEntitlements(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestChangeMerchantPlanUnknownPlan(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodPatch, "/merchants/5/plan", `{"plan_id":"gold"}`)
	ctx.SetParamNames("id")
	ctx.SetParamValues("5")

	_ = ctrl.ChangeMerchantPlan(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSettleOrderBadBody(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodPost, "/settlements", "{bad")

	if err := ctrl.SettleOrder(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestSettleOrderSuccess(t *testing.T) {
	ctrl := newControllerForTest(
		&controllerMerchantRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Merchant, error) {
			return &entity.Merchant{ID: id, SubscriptionPlan: plan.IDPremium}, nil
		}},
		&controllerSettlementRepo{createFn: func(_ context.Context, s *entity.Settlement) error {
			s.ID = 77
			return nil
		}},
		&controllerPaymentService{result: payment.Result{Type: payment.ResultTypeSuccess, TransactionID: "tx"}},
	)
	ctx, rec := newJSONContext(http.MethodPost, "/settlements", `{"order_id":"o-1","merchant_id":3,"amount":1000}`)

	_ = ctrl.SettleOrder(ctx)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d body=%s", rec.Code, rec.Body.String())
	}

	var payload struct {
		Settlement struct {
			ID     uint64 `json:"id"`
			Fee    int64  `json:"fee"`
			Status int32  `json:"status"`
		} `json:"settlement"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if payload.Settlement.ID != 77 || payload.Settlement.Fee != 10 || payload.Settlement.Status != entity.SettlementStatusSettled {
		t.Fatalf("unexpected settlement payload: %s", rec.Body.String())
	}
}

func TestSettleOrderMerchantNotFound(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodPost, "/settlements", `{"order_id":"o-1","merchant_id":3,"amount":1000}`)

	_ = ctrl.SettleOrder(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestSettleOrderConflict(t *testing.T) {
	ctrl := newControllerForTest(
		&controllerMerchantRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Merchant, error) {
			return &entity.Merchant{ID: id, SubscriptionPlan: plan.IDFree}, nil
		}},
		&controllerSettlementRepo{createFn: func(context.Context, *entity.Settlement) error {
			return repository.ErrSettlementAlreadyExists
		}},
		&controllerPaymentService{},
	)
	ctx, rec := newJSONContext(http.MethodPost, "/settlements", `{"order_id":"o-1","merchant_id":3,"amount":1000}`)

	_ = ctrl.SettleOrder(ctx)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
}

func TestGetSettlementNotFound(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodGet, "/settlements/4", "")
	ctx.SetParamNames("id")
	ctx.SetParamValues("4")

	_ = ctrl.GetSettlement(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestListSettlementsInvalidStatus(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodGet, "/settlements?status=4", "")

	_ = ctrl.ListSettlements(ctx)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestExportSettlements(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{
		listFn: func(context.Context, repository.SettlementFilter) ([]*entity.Settlement, error) {
			return []*entity.Settlement{{ID: 1, OrderID: "o-1", Amount: 100, Fee: 5, Payout: 95}}, nil
		},
	}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodGet, "/settlements/export?merchant_id=2", "")

	_ = ctrl.ExportSettlements(ctx)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d body=%s", rec.Code, rec.Body.String())
	}
	if rec.Header().Get(echo.HeaderContentType) != xlsxContentType {
		t.Fatalf("unexpected content type %q", rec.Header().Get(echo.HeaderContentType))
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected workbook body")
	}
}

func TestPayoutCallbackNotFound(t *testing.T) {
	ctrl := newControllerForTest(&controllerMerchantRepo{}, &controllerSettlementRepo{}, &controllerPaymentService{})
	ctx, rec := newJSONContext(http.MethodPost, "/webhooks/payout-callback", `{"settlement_id":5,"status":"success","transaction_id":"tx"}`)

	_ = ctrl.PayoutCallback(ctx)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
