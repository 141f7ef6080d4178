package grpc

import (
	"context"
	"errors"

	"github.com/vibast-solutions/ms-go-billing/app/mapper"
	"github.com/vibast-solutions/ms-go-billing/app/service"
	"github.com/vibast-solutions/ms-go-billing/app/types"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Server struct {
	types.UnimplementedBillingServiceServer
	planService        *service.PlanService
	entitlementService *service.EntitlementService
	settlementService  *service.SettlementService
}

func NewServer(
	planService *service.PlanService,
	entitlementService *service.EntitlementService,
	settlementService *service.SettlementService,
) *Server {
	return &Server{
		planService:        planService,
		entitlementService: entitlementService,
		settlementService:  settlementService,
	}
}

func (s *Server) ListPlans(ctx context.Context, _ *types.ListPlansRequest) (*types.ListPlansResponse, error) {
	return &types.ListPlansResponse{Plans: mapper.PlansToProto(s.planService.ListPlans(ctx))}, nil
}

func (s *Server) GetPlan(ctx context.Context, req *types.GetPlanRequest) (*types.PlanEnvelopeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.planService.GetPlan(ctx, req.GetId())
	if err != nil {
		if errors.Is(err, service.ErrPlanNotFound) {
			return nil, status.Error(codes.NotFound, "plan not found")
		}
		loggerWithContext(ctx).WithError(err).Error("Get plan failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return &types.PlanEnvelopeResponse{Plan: mapper.PlanToProto(item)}, nil
}

func (s *Server) QuoteFee(ctx context.Context, req *types.QuoteFeeRequest) (*types.QuoteFeeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	quote, err := s.planService.QuoteFee(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidAmount) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		loggerWithContext(ctx).WithError(err).Error("Quote fee failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return &types.QuoteFeeResponse{Quote: mapper.FeeQuoteToProto(quote)}, nil
}

func (s *Server) CheckEntitlements(ctx context.Context, req *types.CheckEntitlementsRequest) (*types.EntitlementsResponse, error) {
	l := loggerWithContext(ctx)
	if err := req.Validate(); err != nil {
		l.WithError(err).Debug("Check entitlements validation failed")
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.entitlementService.CheckEntitlements(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRequest) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		l.WithError(err).Error("Check entitlements failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return &types.EntitlementsResponse{Entitlements: mapper.EntitlementsToProto(result)}, nil
}

func (s *Server) GetMerchantEntitlements(ctx context.Context, req *types.GetMerchantEntitlementsRequest) (*types.EntitlementsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.entitlementService.GetMerchantEntitlements(ctx, req.GetMerchantId())
	if err != nil {
		if errors.Is(err, service.ErrMerchantNotFound) {
			return nil, status.Error(codes.NotFound, "merchant not found")
		}
		loggerWithContext(ctx).WithError(err).Error("Get merchant entitlements failed")
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return &types.EntitlementsResponse{Entitlements: mapper.EntitlementsToProto(result)}, nil
}

func (s *Server) ChangeMerchantPlan(ctx context.Context, req *types.ChangeMerchantPlanRequest) (*types.MerchantEnvelopeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	merchant, err := s.entitlementService.ChangeMerchantPlan(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPlanNotFound):
			return nil, status.Error(codes.InvalidArgument, "plan not found")
		case errors.Is(err, service.ErrMerchantNotFound):
			return nil, status.Error(codes.NotFound, "merchant not found")
		default:
			loggerWithContext(ctx).WithError(err).Error("Change merchant plan failed")
			return nil, status.Error(codes.Internal, "internal server error")
		}
	}

	return &types.MerchantEnvelopeResponse{Merchant: mapper.MerchantToProto(merchant)}, nil
}

func (s *Server) SettleOrder(ctx context.Context, req *types.SettleOrderRequest) (*types.SettleOrderResponse, error) {
	l := loggerWithContext(ctx)
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	result, err := s.settlementService.SettleOrder(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidAmount):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, service.ErrMerchantNotFound):
			return nil, status.Error(codes.NotFound, "merchant not found")
		case errors.Is(err, service.ErrSettlementAlreadyExists):
			return nil, status.Error(codes.AlreadyExists, "settlement already exists")
		default:
			l.WithError(err).Error("Settle order failed")
			return nil, status.Error(codes.Internal, "internal server error")
		}
	}

	return &types.SettleOrderResponse{
		Settlement: mapper.SettlementToProto(result.Settlement),
		PaymentUrl: result.PaymentURL,
	}, nil
}

func (s *Server) GetSettlement(ctx context.Context, req *types.GetSettlementRequest) (*types.SettlementEnvelopeResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.settlementService.GetSettlement(ctx, req.GetId())
	if err != nil {
		if errors.Is(err, service.ErrSettlementNotFound) {
			return nil, status.Error(codes.NotFound, "settlement not found")
		}
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return &types.SettlementEnvelopeResponse{Settlement: mapper.SettlementToProto(item)}, nil
}

func (s *Server) ListSettlements(ctx context.Context, req *types.ListSettlementsRequest) (*types.ListSettlementsResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	items, err := s.settlementService.ListSettlements(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidStatus) {
			return nil, status.Error(codes.InvalidArgument, err.Error())
		}
		return nil, status.Error(codes.Internal, "internal server error")
	}

	return &types.ListSettlementsResponse{Settlements: mapper.SettlementsToProto(items)}, nil
}

func (s *Server) PayoutCallback(ctx context.Context, req *types.PayoutCallbackRequest) (*types.MessageResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}

	item, err := s.settlementService.PayoutCallback(ctx, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidRequest), errors.Is(err, service.ErrInvalidStatus):
			return nil, status.Error(codes.InvalidArgument, err.Error())
		case errors.Is(err, service.ErrSettlementNotFound):
			return nil, status.Error(codes.NotFound, "settlement not found")
		default:
			loggerWithContext(ctx).WithError(err).Error("Payout callback failed")
			return nil, status.Error(codes.Internal, "internal server error")
		}
	}

	return &types.MessageResponse{Message: "Payout processed successfully", Settlement: mapper.SettlementToProto(item)}, nil
}
