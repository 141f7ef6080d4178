package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vibast-solutions/ms-go-billing/app/entity"
	"github.com/vibast-solutions/ms-go-billing/app/metrics"
	"github.com/vibast-solutions/ms-go-billing/app/plan"
	"github.com/vibast-solutions/ms-go-billing/app/repository"
)

type checkEntitlementsRequest interface {
	GetPlanId() string
	GetStoreCount() int64
	GetProductCount() int64
}

type changeMerchantPlanRequest interface {
	GetMerchantId() uint64
	GetPlanId() string
}

type merchantRepository interface {
	FindByID(ctx context.Context, id uint64) (*entity.Merchant, error)
	UpdatePlan(ctx context.Context, id uint64, planID string, updatedAt time.Time) error
	CountStores(ctx context.Context, merchantID uint64) (int64, error)
	CountProducts(ctx context.Context, merchantID uint64) (int64, error)
}

// Entitlements reports what a plan holder may still create. Caps are zero when the plan
// is unknown, in which case both checks deny.
type Entitlements struct {
	MerchantID     uint64
	PlanID         string
	PlanFound      bool
	StoreCount     int64
	ProductCount   int64
	MaxStores      int64
	MaxProducts    int64
	CanCreateStore bool
	CanAddProduct  bool
}

type EntitlementService struct {
	registry     *plan.Registry
	merchantRepo merchantRepository
}

func NewEntitlementService(registry *plan.Registry, merchantRepo merchantRepository) *EntitlementService {
	return &EntitlementService{
		registry:     registry,
		merchantRepo: merchantRepo,
	}
}

func (s *EntitlementService) CheckEntitlements(_ context.Context, req checkEntitlementsRequest) (*Entitlements, error) {
	if req.GetStoreCount() < 0 || req.GetProductCount() < 0 {
		return nil, fmt.Errorf("%w: counts must be non-negative", ErrInvalidRequest)
	}

	holder := plan.Subscriber{SubscriptionPlan: strings.TrimSpace(req.GetPlanId())}
	return s.evaluate(holder, req.GetStoreCount(), req.GetProductCount()), nil
}

func (s *EntitlementService) GetMerchantEntitlements(ctx context.Context, merchantID uint64) (*Entitlements, error) {
	merchant, err := s.merchantRepo.FindByID(ctx, merchantID)
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, ErrMerchantNotFound
	}

	storeCount, err := s.merchantRepo.CountStores(ctx, merchant.ID)
	if err != nil {
		return nil, err
	}
	productCount, err := s.merchantRepo.CountProducts(ctx, merchant.ID)
	if err != nil {
		return nil, err
	}

	result := s.evaluate(merchant, storeCount, productCount)
	result.MerchantID = merchant.ID
	return result, nil
}

func (s *EntitlementService) ChangeMerchantPlan(ctx context.Context, req changeMerchantPlanRequest) (*entity.Merchant, error) {
	planID := strings.TrimSpace(req.GetPlanId())
	if _, ok := s.registry.GetPlanByID(planID); !ok {
		return nil, ErrPlanNotFound
	}

	merchant, err := s.merchantRepo.FindByID(ctx, req.GetMerchantId())
	if err != nil {
		return nil, err
	}
	if merchant == nil {
		return nil, ErrMerchantNotFound
	}
	if merchant.SubscriptionPlan == planID {
		return merchant, nil
	}

	now := time.Now().UTC()
	if err := s.merchantRepo.UpdatePlan(ctx, merchant.ID, planID, now); err != nil {
		if errors.Is(err, repository.ErrMerchantNotFound) {
			return nil, ErrMerchantNotFound
		}
		return nil, err
	}

	merchant.SubscriptionPlan = planID
	merchant.UpdatedAt = now
	return merchant, nil
}

func (s *EntitlementService) evaluate(holder plan.PlanHolder, storeCount, productCount int64) *Entitlements {
	result := &Entitlements{
		PlanID:         holder.SubscriptionPlanID(),
		StoreCount:     storeCount,
		ProductCount:   productCount,
		CanCreateStore: s.registry.CanCreateStore(holder, storeCount),
		CanAddProduct:  s.registry.CanAddProduct(holder, productCount),
	}
	if p, ok := s.registry.GetPlanByID(result.PlanID); ok {
		result.PlanFound = true
		result.MaxStores = p.MaxStores
		result.MaxProducts = p.MaxProducts
	}

	metrics.ObserveEntitlementCheck(metrics.ResourceStore, result.CanCreateStore)
	metrics.ObserveEntitlementCheck(metrics.ResourceProduct, result.CanAddProduct)
	return result
}
