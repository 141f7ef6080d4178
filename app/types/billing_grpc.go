package types

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const BillingServiceName = "bizshop.billing.BillingService"

const (
	BillingService_ListPlans_FullMethodName               = "/" + BillingServiceName + "/ListPlans"
	BillingService_GetPlan_FullMethodName                 = "/" + BillingServiceName + "/GetPlan"
	BillingService_QuoteFee_FullMethodName                = "/" + BillingServiceName + "/QuoteFee"
	BillingService_CheckEntitlements_FullMethodName       = "/" + BillingServiceName + "/CheckEntitlements"
	BillingService_GetMerchantEntitlements_FullMethodName = "/" + BillingServiceName + "/GetMerchantEntitlements"
	BillingService_ChangeMerchantPlan_FullMethodName      = "/" + BillingServiceName + "/ChangeMerchantPlan"
	BillingService_SettleOrder_FullMethodName             = "/" + BillingServiceName + "/SettleOrder"
	BillingService_GetSettlement_FullMethodName           = "/" + BillingServiceName + "/GetSettlement"
	BillingService_ListSettlements_FullMethodName         = "/" + BillingServiceName + "/ListSettlements"
	BillingService_PayoutCallback_FullMethodName          = "/" + BillingServiceName + "/PayoutCallback"
)

type BillingServiceServer interface {
	ListPlans(context.Context, *ListPlansRequest) (*ListPlansResponse, error)
	GetPlan(context.Context, *GetPlanRequest) (*PlanEnvelopeResponse, error)
	QuoteFee(context.Context, *QuoteFeeRequest) (*QuoteFeeResponse, error)
	CheckEntitlements(context.Context, *CheckEntitlementsRequest) (*EntitlementsResponse, error)
	GetMerchantEntitlements(context.Context, *GetMerchantEntitlementsRequest) (*EntitlementsResponse, error)
	ChangeMerchantPlan(context.Context, *ChangeMerchantPlanRequest) (*MerchantEnvelopeResponse, error)
	SettleOrder(context.Context, *SettleOrderRequest) (*SettleOrderResponse, error)
	GetSettlement(context.Context, *GetSettlementRequest) (*SettlementEnvelopeResponse, error)
	ListSettlements(context.Context, *ListSettlementsRequest) (*ListSettlementsResponse, error)
	PayoutCallback(context.Context, *PayoutCallbackRequest) (*MessageResponse, error)
}

// UnimplementedBillingServiceServer can be embedded to keep servers forward compatible.
type UnimplementedBillingServiceServer struct{}

func (UnimplementedBillingServiceServer) ListPlans(context.Context, *ListPlansRequest) (*ListPlansResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListPlans not implemented")
}

func (UnimplementedBillingServiceServer) GetPlan(context.Context, *GetPlanRequest) (*PlanEnvelopeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetPlan not implemented")
}

func (UnimplementedBillingServiceServer) QuoteFee(context.Context, *QuoteFeeRequest) (*QuoteFeeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method QuoteFee not implemented")
}

func (UnimplementedBillingServiceServer) CheckEntitlements(context.Context, *CheckEntitlementsRequest) (*EntitlementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method CheckEntitlements not implemented")
}

func (UnimplementedBillingServiceServer) GetMerchantEntitlements(context.Context, *GetMerchantEntitlementsRequest) (*EntitlementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetMerchantEntitlements not implemented")
}

func (UnimplementedBillingServiceServer) ChangeMerchantPlan(context.Context, *ChangeMerchantPlanRequest) (*MerchantEnvelopeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ChangeMerchantPlan not implemented")
}

func (UnimplementedBillingServiceServer) SettleOrder(context.Context, *SettleOrderRequest) (*SettleOrderResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method SettleOrder not implemented")
}

func (UnimplementedBillingServiceServer) GetSettlement(context.Context, *GetSettlementRequest) (*SettlementEnvelopeResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method GetSettlement not implemented")
}

func (UnimplementedBillingServiceServer) ListSettlements(context.Context, *ListSettlementsRequest) (*ListSettlementsResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method ListSettlements not implemented")
}

func (UnimplementedBillingServiceServer) PayoutCallback(context.Context, *PayoutCallbackRequest) (*MessageResponse, error) {
	return nil, status.Error(codes.Unimplemented, "method PayoutCallback not implemented")
}

func RegisterBillingServiceServer(s grpc.ServiceRegistrar, srv BillingServiceServer) {
	s.RegisterService(&BillingService_ServiceDesc, srv)
}

// unaryHandler adapts a typed server method to grpc.MethodDesc.
func unaryHandler[Req any, Resp any](fullMethod string, call func(BillingServiceServer, context.Context, *Req) (*Resp, error)) grpc.MethodHandler {
	return func(srv interface{}, ctx context.Context, dec func(interface{}) error, interceptor grpc.UnaryServerInterceptor) (interface{}, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(BillingServiceServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
		handler := func(ctx context.Context, req interface{}) (interface{}, error) {
			return call(srv.(BillingServiceServer), ctx, req.(*Req))
		}
		return interceptor(ctx, in, info, handler)
	}
}

var BillingService_ServiceDesc = grpc.ServiceDesc{
	ServiceName: BillingServiceName,
	HandlerType: (*BillingServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		{MethodName: "ListPlans", Handler: unaryHandler(BillingService_ListPlans_FullMethodName, BillingServiceServer.ListPlans)},
		{MethodName: "GetPlan", Handler: unaryHandler(BillingService_GetPlan_FullMethodName, BillingServiceServer.GetPlan)},
		{MethodName: "QuoteFee", Handler: unaryHandler(BillingService_QuoteFee_FullMethodName, BillingServiceServer.QuoteFee)},
		{MethodName: "CheckEntitlements", Handler: unaryHandler(BillingService_CheckEntitlements_FullMethodName, BillingServiceServer.CheckEntitlements)},
		{MethodName: "GetMerchantEntitlements", Handler: unaryHandler(BillingService_GetMerchantEntitlements_FullMethodName, BillingServiceServer.GetMerchantEntitlements)},
		{MethodName: "ChangeMerchantPlan", Handler: unaryHandler(BillingService_ChangeMerchantPlan_FullMethodName, BillingServiceServer.ChangeMerchantPlan)},
		{MethodName: "SettleOrder", Handler: unaryHandler(BillingService_SettleOrder_FullMethodName, BillingServiceServer.SettleOrder)},
		{MethodName: "GetSettlement", Handler: unaryHandler(BillingService_GetSettlement_FullMethodName, BillingServiceServer.GetSettlement)},
		{MethodName: "ListSettlements", Handler: unaryHandler(BillingService_ListSettlements_FullMethodName, BillingServiceServer.ListSettlements)},
		{MethodName: "PayoutCallback", Handler: unaryHandler(BillingService_PayoutCallback_FullMethodName, BillingServiceServer.PayoutCallback)},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "billing",
}

type BillingServiceClient interface {
	ListPlans(ctx context.Context, in *ListPlansRequest, opts ...grpc.CallOption) (*ListPlansResponse, error)
	GetPlan(ctx context.Context, in *GetPlanRequest, opts ...grpc.CallOption) (*PlanEnvelopeResponse, error)
	QuoteFee(ctx context.Context, in *QuoteFeeRequest, opts ...grpc.CallOption) (*QuoteFeeResponse, error)
	CheckEntitlements(ctx context.Context, in *CheckEntitlementsRequest, opts ...grpc.CallOption) (*EntitlementsResponse, error)
	GetMerchantEntitlements(ctx context.Context, in *GetMerchantEntitlementsRequest, opts ...grpc.CallOption) (*EntitlementsResponse, error)
	ChangeMerchantPlan(ctx context.Context, in *ChangeMerchantPlanRequest, opts ...grpc.CallOption) (*MerchantEnvelopeResponse, error)
	SettleOrder(ctx context.Context, in *SettleOrderRequest, opts ...grpc.CallOption) (*SettleOrderResponse, error)
	GetSettlement(ctx context.Context, in *GetSettlementRequest, opts ...grpc.CallOption) (*SettlementEnvelopeResponse, error)
	ListSettlements(ctx context.Context, in *ListSettlementsRequest, opts ...grpc.CallOption) (*ListSettlementsResponse, error)
	PayoutCallback(ctx context.Context, in *PayoutCallbackRequest, opts ...grpc.CallOption) (*MessageResponse, error)
}

type billingServiceClient struct {
	cc grpc.ClientConnInterface
}

// NewBillingServiceClient returns a client that always speaks the JSON codec.
func NewBillingServiceClient(cc grpc.ClientConnInterface) BillingServiceClient {
	return &billingServiceClient{cc: cc}
}

func invoke[Resp any](ctx context.Context, cc grpc.ClientConnInterface, method string, in interface{}, opts []grpc.CallOption) (*Resp, error) {
	out := new(Resp)
	opts = append([]grpc.CallOption{grpc.CallContentSubtype(CodecName)}, opts...)
	if err := cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *billingServiceClient) ListPlans(ctx context.Context, in *ListPlansRequest, opts ...grpc.CallOption) (*ListPlansResponse, error) {
	return invoke[ListPlansResponse](ctx, c.cc, BillingService_ListPlans_FullMethodName, in, opts)
}

func (c *billingServiceClient) GetPlan(ctx context.Context, in *GetPlanRequest, opts ...grpc.CallOption) (*PlanEnvelopeResponse, error) {
	return invoke[PlanEnvelopeResponse](ctx, c.cc, BillingService_GetPlan_FullMethodName, in, opts)
}

func (c *billingServiceClient) QuoteFee(ctx context.Context, in *QuoteFeeRequest, opts ...grpc.CallOption) (*QuoteFeeResponse, error) {
	return invoke[QuoteFeeResponse](ctx, c.cc, BillingService_QuoteFee_FullMethodName, in, opts)
}

func (c *billingServiceClient) CheckEntitlements(ctx context.Context, in *CheckEntitlementsRequest, opts ...grpc.CallOption) (*EntitlementsResponse, error) {
	return invoke[EntitlementsResponse](ctx, c.cc, BillingService_CheckEntitlements_FullMethodName, in, opts)
}

func (c *billingServiceClient) GetMerchantEntitlements(ctx context.Context, in *GetMerchantEntitlementsRequest, opts ...grpc.CallOption) (*EntitlementsResponse, error) {
	return invoke[EntitlementsResponse](ctx, c.cc, BillingService_GetMerchantEntitlements_FullMethodName, in, opts)
}

func (c *billingServiceClient) ChangeMerchantPlan(ctx context.Context, in *ChangeMerchantPlanRequest, opts ...grpc.CallOption) (*MerchantEnvelopeResponse, error) {
	return invoke[MerchantEnvelopeResponse](ctx, c.cc, BillingService_ChangeMerchantPlan_FullMethodName, in, opts)
}

func (c *billingServiceClient) SettleOrder(ctx context.Context, in *SettleOrderRequest, opts ...grpc.CallOption) (*SettleOrderResponse, error) {
	return invoke[SettleOrderResponse](ctx, c.cc, BillingService_SettleOrder_FullMethodName, in, opts)
}

func (c *billingServiceClient) GetSettlement(ctx context.Context, in *GetSettlementRequest, opts ...grpc.CallOption) (*SettlementEnvelopeResponse, error) {
	return invoke[SettlementEnvelopeResponse](ctx, c.cc, BillingService_GetSettlement_FullMethodName, in, opts)
}

func (c *billingServiceClient) ListSettlements(ctx context.Context, in *ListSettlementsRequest, opts ...grpc.CallOption) (*ListSettlementsResponse, error) {
	return invoke[ListSettlementsResponse](ctx, c.cc, BillingService_ListSettlements_FullMethodName, in, opts)
}

func (c *billingServiceClient) PayoutCallback(ctx context.Context, in *PayoutCallbackRequest, opts ...grpc.CallOption) (*MessageResponse, error) {
	return invoke[MessageResponse](ctx, c.cc, BillingService_PayoutCallback_FullMethodName, in, opts)
}
