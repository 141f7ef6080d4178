package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/vibast-solutions/ms-go-billing/app/metrics"
	"github.com/vibast-solutions/ms-go-billing/app/plan"
)

type quoteFeeRequest interface {
	GetPlanId() string
	GetAmount() int64
}

// FeeQuote is the fee and payout split of an order amount under a plan.
// Fallback is set when the plan id was unknown and the default rate applied.
type FeeQuote struct {
	PlanID     string
	Amount     int64
	FeePercent int
	Fee        int64
	Payout     int64
	Fallback   bool
}

type PlanService struct {
	registry *plan.Registry
}

func NewPlanService(registry *plan.Registry) *PlanService {
	return &PlanService{registry: registry}
}

func (s *PlanService) ListPlans(_ context.Context) []plan.Plan {
	return s.registry.List()
}

func (s *PlanService) GetPlan(_ context.Context, id string) (plan.Plan, error) {
	p, ok := s.registry.GetPlanByID(strings.TrimSpace(id))
	if !ok {
		return plan.Plan{}, ErrPlanNotFound
	}
	return p, nil
}

func (s *PlanService) QuoteFee(_ context.Context, req quoteFeeRequest) (*FeeQuote, error) {
	planID := strings.TrimSpace(req.GetPlanId())
	fee, err := s.registry.CalculateTransactionFee(req.GetAmount(), planID)
	if err != nil {
		if errors.Is(err, plan.ErrNegativeAmount) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAmount, err)
		}
		return nil, err
	}

	_, found := s.registry.GetPlanByID(planID)
	metrics.ObserveFeeQuote(planID, !found)

	return &FeeQuote{
		PlanID:     planID,
		Amount:     req.GetAmount(),
		FeePercent: s.registry.GetTransactionFeePercent(planID),
		Fee:        fee,
		Payout:     req.GetAmount() - fee,
		Fallback:   !found,
	}, nil
}
