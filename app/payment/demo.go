package payment

import (
	"context"

	"github.com/google/uuid"
)

// DemoService accepts every payout. It stands in for the real gateways in demo stores
// and local environments.
type DemoService struct{}

func NewDemoService() *DemoService {
	return &DemoService{}
}

func (s *DemoService) Name() string {
	return GatewayDemo
}

func (s *DemoService) ProcessPayout(ctx context.Context, _ uint64, _ uint64, _ int64, _ string) Result {
	if err := ctx.Err(); err != nil {
		return Result{Type: ResultTypeFailure, Error: err.Error()}
	}
	return Result{Type: ResultTypeSuccess, TransactionID: "demo_" + uuid.NewString()}
}

type DisabledService struct{}

func NewDisabledService() *DisabledService {
	return &DisabledService{}
}

func (s *DisabledService) Name() string {
	return GatewayDisabled
}

func (s *DisabledService) ProcessPayout(context.Context, uint64, uint64, int64, string) Result {
	return Result{Type: ResultTypeFailure, Error: "payouts are disabled"}
}
