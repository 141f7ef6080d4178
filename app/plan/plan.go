// Package plan holds the subscription plan catalog of the storefront builder and the
// pure computations derived from it: transaction fees, merchant payouts and plan
// entitlements.
//
// Fee lookups fail open: an unknown plan id is charged DefaultFeePercent.
// Entitlement checks fail closed: an unknown plan id is denied.
package plan

import "slices"

const (
	// Unlimited marks a MaxStores or MaxProducts cap with no limit.
	Unlimited = -1

	// DefaultFeePercent is charged when a plan id cannot be resolved. It matches the free plan.
	DefaultFeePercent = 5
)

const (
	IDFree       = "free"
	IDBasic      = "basic"
	IDPremium    = "premium"
	IDEnterprise = "enterprise"
)

type Plan struct {
	ID                    string
	Name                  string
	PriceINR              int64
	PriceMonthly          int64
	MaxProducts           int64
	MaxStores             int64
	TransactionFeePercent int
	Features              []string
}

// IsUnlimitedStores reports whether the plan places no cap on stores.
func (p Plan) IsUnlimitedStores() bool {
	return p.MaxStores == Unlimited
}

// IsUnlimitedProducts reports whether the plan places no cap on products.
func (p Plan) IsUnlimitedProducts() bool {
	return p.MaxProducts == Unlimited
}

func (p Plan) clone() Plan {
	p.Features = slices.Clone(p.Features)
	return p
}

func builtinPlans() []Plan {
	return []Plan{
		{
			ID:                    IDFree,
			Name:                  "Free",
			PriceINR:              0,
			PriceMonthly:          0,
			MaxProducts:           10,
			MaxStores:             1,
			TransactionFeePercent: 5,
			Features: []string{
				"1 store",
				"Up to 10 products",
				"BizShop subdomain",
				"Basic templates",
				"5% transaction fee",
			},
		},
		{
			ID:                    IDBasic,
			Name:                  "Basic",
			PriceINR:              4999,
			PriceMonthly:          499,
			MaxProducts:           100,
			MaxStores:             1,
			TransactionFeePercent: 3,
			Features: []string{
				"1 store",
				"Up to 100 products",
				"Custom domain",
				"All templates",
				"3% transaction fee",
			},
		},
		{
			ID:                    IDPremium,
			Name:                  "Premium",
			PriceINR:              9999,
			PriceMonthly:          999,
			MaxProducts:           Unlimited,
			MaxStores:             3,
			TransactionFeePercent: 1,
			Features: []string{
				"Up to 3 stores",
				"Unlimited products",
				"Custom domain",
				"Priority support",
				"Sales analytics",
				"1% transaction fee",
			},
		},
		{
			ID:                    IDEnterprise,
			Name:                  "Enterprise",
			PriceINR:              29999,
			PriceMonthly:          2999,
			MaxProducts:           Unlimited,
			MaxStores:             Unlimited,
			TransactionFeePercent: 0,
			Features: []string{
				"Unlimited stores",
				"Unlimited products",
				"Dedicated account manager",
				"API access",
				"No transaction fee",
			},
		},
	}
}
