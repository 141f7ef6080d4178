package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/vibast-solutions/ms-go-billing/app/entity"
	"github.com/vibast-solutions/ms-go-billing/app/payment"
	"github.com/vibast-solutions/ms-go-billing/app/plan"
	"github.com/vibast-solutions/ms-go-billing/app/repository"
	"github.com/vibast-solutions/ms-go-billing/app/service"
	"github.com/vibast-solutions/ms-go-billing/app/types"
	"github.com/vibast-solutions/ms-go-billing/config"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
)

type grpcMerchantRepo struct {
	findByIDFn func(ctx context.Context, id uint64) (*entity.Merchant, error)
}

func (r *grpcMerchantRepo) FindByID(ctx context.Context, id uint64) (*entity.Merchant, error) {
	if r.findByIDFn != nil {
		return r.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (r *grpcMerchantRepo) UpdatePlan(context.Context, uint64, string, time.Time) error {
	return nil
}

func (r *grpcMerchantRepo) CountStores(context.Context, uint64) (int64, error) {
	return 1, nil
}

func (r *grpcMerchantRepo) CountProducts(context.Context, uint64) (int64, error) {
	return 10, nil
}

type grpcSettlementRepo struct {
	createFn        func(ctx context.Context, settlement *entity.Settlement) error
	findByOrderIDFn func(ctx context.Context, orderID string) (*entity.Settlement, error)
}

func (r *grpcSettlementRepo) Create(ctx context.Context, settlement *entity.Settlement) error {
	if r.createFn != nil {
		return r.createFn(ctx, settlement)
	}
	return nil
}

func (r *grpcSettlementRepo) Update(context.Context, *entity.Settlement) error {
	return nil
}

func (r *grpcSettlementRepo) FindByID(context.Context, uint64) (*entity.Settlement, error) {
	return nil, nil
}

func (r *grpcSettlementRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.Settlement, error) {
	if r.findByOrderIDFn != nil {
		return r.findByOrderIDFn(ctx, orderID)
	}
	return nil, nil
}

func (r *grpcSettlementRepo) List(context.Context, repository.SettlementFilter) ([]*entity.Settlement, error) {
	return nil, nil
}

func (r *grpcSettlementRepo) ListDueRetry(context.Context, time.Time, int32) ([]*entity.Settlement, error) {
	return nil, nil
}

func (r *grpcSettlementRepo) ListStalled(context.Context, time.Time, time.Time) ([]*entity.Settlement, error) {
	return nil, nil
}

type grpcPayment struct {
	result payment.Result
}

func (p *grpcPayment) Name() string {
	return "test"
}

func (p *grpcPayment) ProcessPayout(context.Context, uint64, uint64, int64, string) payment.Result {
	return p.result
}

func newGRPCServerForTest(merchantRepo *grpcMerchantRepo, settlementRepo *grpcSettlementRepo, pay *grpcPayment) *Server {
	cfg := config.BillingConfig{
		PayoutRetryInterval:  time.Minute,
		MaxPayoutAttempts:    3,
		PendingPayoutTimeout: 5 * time.Minute,
	}
	registry := plan.Default()
	return NewServer(
		service.NewPlanService(registry),
		service.NewEntitlementService(registry, merchantRepo),
		service.NewSettlementService(registry, merchantRepo, settlementRepo, pay, cfg),
	)
}

func TestGRPCGetPlanNotFound(t *testing.T) {
	srv := newGRPCServerForTest(&grpcMerchantRepo{}, &grpcSettlementRepo{}, &grpcPayment{})

	_, err := srv.GetPlan(context.Background(), &types.GetPlanRequest{Id: "gold"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGRPCQuoteFeeInvalidAmount(t *testing.T) {
	srv := newGRPCServerForTest(&grpcMerchantRepo{}, &grpcSettlementRepo{}, &grpcPayment{})

	_, err := srv.QuoteFee(context.Background(), &types.QuoteFeeRequest{PlanId: plan.IDFree, Amount: -1})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestGRPCGetMerchantEntitlements(t *testing.T) {
	srv := newGRPCServerForTest(&grpcMerchantRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Merchant, error) {
		return &entity.Merchant{ID: id, SubscriptionPlan: plan.IDFree}, nil
	}}, &grpcSettlementRepo{}, &grpcPayment{})

	resp, err := srv.GetMerchantEntitlements(context.Background(), &types.GetMerchantEntitlementsRequest{MerchantId: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	got := resp.GetEntitlements()
	if got.CanCreateStore || got.CanAddProduct {
		t.Fatalf("free plan at its caps must deny both, got %+v", got)
	}
}

func TestGRPCSettleOrderAlreadyExists(t *testing.T) {
	srv := newGRPCServerForTest(
		&grpcMerchantRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Merchant, error) {
			return &entity.Merchant{ID: id, SubscriptionPlan: plan.IDFree}, nil
		}},
		&grpcSettlementRepo{findByOrderIDFn: func(_ context.Context, orderID string) (*entity.Settlement, error) {
			return &entity.Settlement{ID: 1, OrderID: orderID}, nil
		}},
		&grpcPayment{},
	)

	_, err := srv.SettleOrder(context.Background(), &types.SettleOrderRequest{OrderId: "o-1", MerchantId: 1, Amount: 10})
	if status.Code(err) != codes.AlreadyExists {
		t.Fatalf("expected AlreadyExists, got %v", err)
	}
}

func TestGRPCSettleOrderValidation(t *testing.T) {
	srv := newGRPCServerForTest(&grpcMerchantRepo{}, &grpcSettlementRepo{}, &grpcPayment{})

	_, err := srv.SettleOrder(context.Background(), &types.SettleOrderRequest{OrderId: "o-1"})
	if status.Code(err) != codes.InvalidArgument {
		t.Fatalf("expected InvalidArgument, got %v", err)
	}
}

func TestGRPCPayoutCallbackNotFound(t *testing.T) {
	srv := newGRPCServerForTest(&grpcMerchantRepo{}, &grpcSettlementRepo{}, &grpcPayment{})

	_, err := srv.PayoutCallback(context.Background(), &types.PayoutCallbackRequest{SettlementId: 3, Status: "failed"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound, got %v", err)
	}
}

func TestGRPCOverJSONCodec(t *testing.T) {
	lis := bufconn.Listen(1024 * 1024)
	grpcServer := grpc.NewServer(
		grpc.ForceServerCodec(types.JSONCodec{}),
		grpc.ChainUnaryInterceptor(RecoveryInterceptor(), RequestIDInterceptor(), LoggingInterceptor()),
	)
	types.RegisterBillingServiceServer(grpcServer, newGRPCServerForTest(
		&grpcMerchantRepo{findByIDFn: func(_ context.Context, id uint64) (*entity.Merchant, error) {
			return &entity.Merchant{ID: id, SubscriptionPlan: plan.IDBasic}, nil
		}},
		&grpcSettlementRepo{createFn: func(_ context.Context, s *entity.Settlement) error {
			s.ID = 12
			return nil
		}},
		&grpcPayment{result: payment.Result{Type: payment.ResultTypeSuccess, TransactionID: "tx-json"}},
	))
	go func() {
		_ = grpcServer.Serve(lis)
	}()
	defer grpcServer.Stop()

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatalf("dial failed: %v", err)
	}
	defer conn.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	client := types.NewBillingServiceClient(conn)

	plans, err := client.ListPlans(ctx, &types.ListPlansRequest{})
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if len(plans.Plans) != 4 {
		t.Fatalf("expected 4 plans, got %d", len(plans.Plans))
	}

	settled, err := client.SettleOrder(ctx, &types.SettleOrderRequest{OrderId: "o-json", MerchantId: 4, Amount: 1000})
	if err != nil {
		t.Fatalf("SettleOrder failed: %v", err)
	}
	if settled.GetSettlement().GetId() != 12 || settled.GetSettlement().Fee != 30 || settled.GetSettlement().TransactionId != "tx-json" {
		t.Fatalf("unexpected settlement: %+v", settled.GetSettlement())
	}

	_, err = client.GetPlan(ctx, &types.GetPlanRequest{Id: "gold"})
	if status.Code(err) != codes.NotFound {
		t.Fatalf("expected NotFound over the wire, got %v", err)
	}
}
