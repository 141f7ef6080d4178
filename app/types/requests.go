package types

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
)

const maxOrderIDLength = 128

func NewGetPlanRequestFromContext(ctx echo.Context) (*GetPlanRequest, error) {
	return &GetPlanRequest{Id: strings.TrimSpace(ctx.Param("id"))}, nil
}

func (r *GetPlanRequest) Validate() error {
	if r.GetId() == "" {
		return errors.New("plan id is required")
	}
	return nil
}

func NewQuoteFeeRequestFromContext(ctx echo.Context) (*QuoteFeeRequest, error) {
	amount, err := strconv.ParseInt(strings.TrimSpace(ctx.QueryParam("amount")), 10, 64)
	if err != nil {
		return nil, err
	}
	return &QuoteFeeRequest{
		PlanId: strings.TrimSpace(ctx.QueryParam("plan_id")),
		Amount: amount,
	}, nil
}

// Validate leaves unknown plan ids alone: quoting falls back to the default rate.
func (r *QuoteFeeRequest) Validate() error {
	if r.GetAmount() < 0 {
		return errors.New("amount must be non-negative")
	}
	return nil
}

func NewCheckEntitlementsRequestFromContext(ctx echo.Context) (*CheckEntitlementsRequest, error) {
	var body CheckEntitlementsRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.PlanId = strings.TrimSpace(body.PlanId)
	return &body, nil
}

func (r *CheckEntitlementsRequest) Validate() error {
	if r.GetStoreCount() < 0 || r.GetProductCount() < 0 {
		return errors.New("store_count and product_count must be non-negative")
	}
	return nil
}

func NewGetMerchantEntitlementsRequestFromContext(ctx echo.Context) (*GetMerchantEntitlementsRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &GetMerchantEntitlementsRequest{MerchantId: id}, nil
}

func (r *GetMerchantEntitlementsRequest) Validate() error {
	if r.GetMerchantId() == 0 {
		return errors.New("invalid merchant id")
	}
	return nil
}

func NewChangeMerchantPlanRequestFromContext(ctx echo.Context) (*ChangeMerchantPlanRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}

	var body struct {
		PlanId string `json:"plan_id"`
	}
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}

	return &ChangeMerchantPlanRequest{MerchantId: id, PlanId: strings.TrimSpace(body.PlanId)}, nil
}

func (r *ChangeMerchantPlanRequest) Validate() error {
	if r.GetMerchantId() == 0 {
		return errors.New("invalid merchant id")
	}
	if r.GetPlanId() == "" {
		return errors.New("plan_id is required")
	}
	return nil
}

func NewSettleOrderRequestFromContext(ctx echo.Context) (*SettleOrderRequest, error) {
	var body SettleOrderRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.OrderId = strings.TrimSpace(body.OrderId)
	body.Currency = strings.ToUpper(strings.TrimSpace(body.Currency))
	return &body, nil
}

func (r *SettleOrderRequest) Validate() error {
	if r.GetOrderId() == "" {
		return errors.New("order_id is required")
	}
	if len(r.GetOrderId()) > maxOrderIDLength {
		return errors.New("order_id is too long")
	}
	if r.GetMerchantId() == 0 {
		return errors.New("merchant_id is required")
	}
	if r.GetAmount() < 0 {
		return errors.New("amount must be non-negative")
	}
	if c := r.GetCurrency(); c != "" && len(c) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	return nil
}

func NewGetSettlementRequestFromContext(ctx echo.Context) (*GetSettlementRequest, error) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		return nil, err
	}
	return &GetSettlementRequest{Id: id}, nil
}

func (r *GetSettlementRequest) Validate() error {
	if r.GetId() == 0 {
		return errors.New("invalid settlement id")
	}
	return nil
}

func NewListSettlementsRequestFromContext(ctx echo.Context) (*ListSettlementsRequest, error) {
	req := &ListSettlementsRequest{}
	if raw := strings.TrimSpace(ctx.QueryParam("merchant_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.MerchantId = id
	}
	if raw := strings.TrimSpace(ctx.QueryParam("status")); raw != "" {
		statusValue, err := strconv.ParseInt(raw, 10, 32)
		if err != nil {
			return nil, err
		}
		req.HasStatus = true
		req.Status = int32(statusValue)
	}
	return req, nil
}

func (r *ListSettlementsRequest) Validate() error {
	if r.GetHasStatus() {
		switch r.GetStatus() {
		case 0, 1, 2, 10:
		default:
			return errors.New("status must be one of 0, 1, 2, 10")
		}
	}
	return nil
}

func NewExportSettlementsRequestFromContext(ctx echo.Context) (*ExportSettlementsRequest, error) {
	req := &ExportSettlementsRequest{
		From: strings.TrimSpace(ctx.QueryParam("from")),
		To:   strings.TrimSpace(ctx.QueryParam("to")),
	}
	if raw := strings.TrimSpace(ctx.QueryParam("merchant_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return nil, err
		}
		req.MerchantId = id
	}
	return req, nil
}

func (r *ExportSettlementsRequest) Validate() error {
	var from, to time.Time
	var err error
	if r.GetFrom() != "" {
		if from, err = time.Parse(time.RFC3339, r.GetFrom()); err != nil {
			return errors.New("from must be RFC3339")
		}
	}
	if r.GetTo() != "" {
		if to, err = time.Parse(time.RFC3339, r.GetTo()); err != nil {
			return errors.New("to must be RFC3339")
		}
	}
	if !from.IsZero() && !to.IsZero() && !from.Before(to) {
		return errors.New("from must be before to")
	}
	return nil
}

func NewPayoutCallbackRequestFromContext(ctx echo.Context) (*PayoutCallbackRequest, error) {
	var body PayoutCallbackRequest
	if err := ctx.Bind(&body); err != nil {
		return nil, err
	}
	body.Status = strings.TrimSpace(strings.ToLower(body.Status))
	body.TransactionId = strings.TrimSpace(body.TransactionId)
	return &body, nil
}

func (r *PayoutCallbackRequest) Validate() error {
	if r.GetSettlementId() == 0 {
		return errors.New("settlement_id is required")
	}
	if r.GetStatus() != "success" && r.GetStatus() != "failed" {
		return errors.New("status must be success or failed")
	}
	if r.GetStatus() == "success" && r.GetTransactionId() == "" {
		return errors.New("transaction_id is required for successful payouts")
	}
	return nil
}
