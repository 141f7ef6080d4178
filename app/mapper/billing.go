package mapper

import (
	"slices"
	"time"

	"github.com/vibast-solutions/ms-go-billing/app/entity"
	"github.com/vibast-solutions/ms-go-billing/app/plan"
	"github.com/vibast-solutions/ms-go-billing/app/service"
	"github.com/vibast-solutions/ms-go-billing/app/types"
)

func PlanToProto(item plan.Plan) *types.Plan {
	return &types.Plan{
		Id:                    item.ID,
		Name:                  item.Name,
		PriceInr:              item.PriceINR,
		PriceMonthly:          item.PriceMonthly,
		MaxProducts:           item.MaxProducts,
		MaxStores:             item.MaxStores,
		TransactionFeePercent: int32(item.TransactionFeePercent),
		Features:              slices.Clone(item.Features),
	}
}

func PlansToProto(items []plan.Plan) []*types.Plan {
	result := make([]*types.Plan, 0, len(items))
	for _, item := range items {
		result = append(result, PlanToProto(item))
	}
	return result
}

func FeeQuoteToProto(item *service.FeeQuote) *types.FeeQuote {
	if item == nil {
		return nil
	}

	return &types.FeeQuote{
		PlanId:     item.PlanID,
		Amount:     item.Amount,
		FeePercent: int32(item.FeePercent),
		Fee:        item.Fee,
		Payout:     item.Payout,
		Fallback:   item.Fallback,
	}
}

func EntitlementsToProto(item *service.Entitlements) *types.Entitlements {
	if item == nil {
		return nil
	}

	return &types.Entitlements{
		MerchantId:     item.MerchantID,
		PlanId:         item.PlanID,
		PlanFound:      item.PlanFound,
		StoreCount:     item.StoreCount,
		ProductCount:   item.ProductCount,
		MaxStores:      item.MaxStores,
		MaxProducts:    item.MaxProducts,
		CanCreateStore: item.CanCreateStore,
		CanAddProduct:  item.CanAddProduct,
	}
}

func MerchantToProto(item *entity.Merchant) *types.Merchant {
	if item == nil {
		return nil
	}

	return &types.Merchant{
		Id:               item.ID,
		Email:            item.Email,
		SubscriptionPlan: item.SubscriptionPlan,
		CreatedAt:        item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:        item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func SettlementToProto(item *entity.Settlement) *types.Settlement {
	if item == nil {
		return nil
	}

	return &types.Settlement{
		Id:            item.ID,
		OrderId:       item.OrderID,
		MerchantId:    item.MerchantID,
		PlanId:        item.PlanID,
		Amount:        item.Amount,
		FeePercent:    item.FeePercent,
		Fee:           item.Fee,
		Payout:        item.Payout,
		Currency:      item.Currency,
		Gateway:       item.Gateway,
		Status:        item.Status,
		TransactionId: derefString(item.TransactionID),
		Attempts:      item.Attempts,
		NextAttemptAt: formatTime(item.NextAttemptAt),
		CreatedAt:     item.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:     item.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func SettlementsToProto(items []*entity.Settlement) []*types.Settlement {
	result := make([]*types.Settlement, 0, len(items))
	for _, item := range items {
		result = append(result, SettlementToProto(item))
	}
	return result
}

func derefString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func formatTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}
