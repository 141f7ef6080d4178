package dto

// PlanCatalog is the on-disk shape of a plan catalog file.
type PlanCatalog struct {
	Plans []PlanDefinition `yaml:"plans"`
}

type PlanDefinition struct {
	ID                    string   `yaml:"id"`
	Name                  string   `yaml:"name"`
	PriceINR              int64    `yaml:"price_inr"`
	PriceMonthly          int64    `yaml:"price_monthly"`
	MaxProducts           *int64   `yaml:"max_products"`
	MaxStores             *int64   `yaml:"max_stores"`
	TransactionFeePercent *int     `yaml:"transaction_fee_percent"`
	Features              []string `yaml:"features"`
}
