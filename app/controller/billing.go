package controller

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-billing/app/factory"
	"github.com/vibast-solutions/ms-go-billing/app/mapper"
	"github.com/vibast-solutions/ms-go-billing/app/service"
	"github.com/vibast-solutions/ms-go-billing/app/types"
)

const (
	xlsxContentType    = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	settlementsXLSXDoc = `attachment; filename="settlements.xlsx"`
)

type BillingController struct {
	planService        *service.PlanService
	entitlementService *service.EntitlementService
	settlementService  *service.SettlementService
	logger             logrus.FieldLogger
}

func NewBillingController(
	planService *service.PlanService,
	entitlementService *service.EntitlementService,
	settlementService *service.SettlementService,
) *BillingController {
	return &BillingController{
		planService:        planService,
		entitlementService: entitlementService,
		settlementService:  settlementService,
		logger:             factory.NewModuleLogger("billing-controller"),
	}
}

func (c *BillingController) Health(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, &types.HealthResponse{Status: "ok"})
}

func (c *BillingController) ListPlans(ctx echo.Context) error {
	items := c.planService.ListPlans(ctx.Request().Context())
	return ctx.JSON(http.StatusOK, &types.ListPlansResponse{Plans: mapper.PlansToProto(items)})
}

func (c *BillingController) GetPlan(ctx echo.Context) error {
	req, err := types.NewGetPlanRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.planService.GetPlan(ctx.Request().Context(), req.GetId())
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "plan not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get plan failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.PlanEnvelopeResponse{Plan: mapper.PlanToProto(item)})
}

func (c *BillingController) QuoteFee(ctx echo.Context) error {
	req, err := types.NewQuoteFeeRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	quote, err := c.planService.QuoteFee(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Quote fee failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.QuoteFeeResponse{Quote: mapper.FeeQuoteToProto(quote)})
}

func (c *BillingController) CheckEntitlements(ctx echo.Context) error {
	req, err := types.NewCheckEntitlementsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.entitlementService.CheckEntitlements(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Check entitlements failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.EntitlementsResponse{Entitlements: mapper.EntitlementsToProto(result)})
}

func (c *BillingController) GetMerchantEntitlements(ctx echo.Context) error {
	req, err := types.NewGetMerchantEntitlementsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.entitlementService.GetMerchantEntitlements(ctx.Request().Context(), req.GetMerchantId())
	if err != nil {
		if errors.Is(err, service.ErrMerchantNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "merchant not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get merchant entitlements failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.EntitlementsResponse{Entitlements: mapper.EntitlementsToProto(result)})
}

func (c *BillingController) ChangeMerchantPlan(ctx echo.Context) error {
	req, err := types.NewChangeMerchantPlanRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	merchant, err := c.entitlementService.ChangeMerchantPlan(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			return c.writeError(ctx, http.StatusBadRequest, "plan not found")
		case errors.Is(err, service.ErrMerchantNotFound):
			return c.writeError(ctx, http.StatusNotFound, "merchant not found")
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Change merchant plan failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.MerchantEnvelopeResponse{Merchant: mapper.MerchantToProto(merchant)})
}

func (c *BillingController) SettleOrder(ctx echo.Context) error {
	req, err := types.NewSettleOrderRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	result, err := c.settlementService.SettleOrder(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidAmount):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMerchantNotFound):
			return c.writeError(ctx, http.StatusNotFound, "merchant not found")
		case errors.Is(err, service.ErrSettlementAlreadyExists):
			return c.writeError(ctx, http.StatusConflict, "settlement already exists")
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Settle order failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusCreated, &types.SettleOrderResponse{
		Settlement: mapper.SettlementToProto(result.Settlement),
		PaymentUrl: result.PaymentURL,
	})
}

func (c *BillingController) GetSettlement(ctx echo.Context) error {
	req, err := types.NewGetSettlementRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.settlementService.GetSettlement(ctx.Request().Context(), req.GetId())
	if err != nil {
		if errors.Is(err, service.ErrSettlementNotFound) {
			return c.writeError(ctx, http.StatusNotFound, "settlement not found")
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Get settlement failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.SettlementEnvelopeResponse{Settlement: mapper.SettlementToProto(item)})
}

func (c *BillingController) ListSettlements(ctx echo.Context) error {
	req, err := types.NewListSettlementsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	items, err := c.settlementService.ListSettlements(ctx.Request().Context(), req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("List settlements failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	return ctx.JSON(http.StatusOK, &types.ListSettlementsResponse{Settlements: mapper.SettlementsToProto(items)})
}

func (c *BillingController) ExportSettlements(ctx echo.Context) error {
	req, err := types.NewExportSettlementsRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid query params")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	var buf bytes.Buffer
	if err := c.settlementService.ExportSettlements(ctx.Request().Context(), &buf, req); err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		}
		factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Export settlements failed")
		return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
	}

	ctx.Response().Header().Set(echo.HeaderContentDisposition, settlementsXLSXDoc)
	return ctx.Blob(http.StatusOK, xlsxContentType, buf.Bytes())
}

func (c *BillingController) PayoutCallback(ctx echo.Context) error {
	req, err := types.NewPayoutCallbackRequestFromContext(ctx)
	if err != nil {
		return c.writeError(ctx, http.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return c.writeError(ctx, http.StatusBadRequest, err.Error())
	}

	item, err := c.settlementService.PayoutCallback(ctx.Request().Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidStatus):
			return c.writeError(ctx, http.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrSettlementNotFound):
			return c.writeError(ctx, http.StatusNotFound, "settlement not found")
		default:
			factory.LoggerWithContext(c.logger, ctx).WithError(err).Error("Payout callback failed")
			return c.writeError(ctx, http.StatusInternalServerError, "internal server error")
		}
	}

	return ctx.JSON(http.StatusOK, &types.MessageResponse{
		Message:    "Payout processed successfully",
		Settlement: mapper.SettlementToProto(item),
	})
}

func (c *BillingController) writeError(ctx echo.Context, statusCode int, message string) error {
	return ctx.JSON(statusCode, &types.ErrorResponse{Error: message})
}
