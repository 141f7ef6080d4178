package plan

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/vibast-solutions/ms-go-billing/app/dto"
	"gopkg.in/yaml.v3"
)

// LoadCatalogFile builds a Registry from a YAML catalog. It is meant to run once at process start.
func LoadCatalogFile(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read plan catalog: %w", err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes a YAML catalog. Unknown keys are rejected, and caps and fee percent
// must be given explicitly so a typo cannot silently grant unlimited usage or a 0% fee.
func ParseCatalog(data []byte) (*Registry, error) {
	var catalog dto.PlanCatalog
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&catalog); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, ErrEmptyCatalog
		}
		return nil, fmt.Errorf("decode plan catalog: %w", err)
	}

	plans := make([]Plan, 0, len(catalog.Plans))
	for i, def := range catalog.Plans {
		if def.MaxProducts == nil || def.MaxStores == nil || def.TransactionFeePercent == nil {
			return nil, fmt.Errorf("%w: entry %d (%q): max_products, max_stores and transaction_fee_percent are required", ErrInvalidPlan, i, def.ID)
		}
		plans = append(plans, Plan{
			ID:                    def.ID,
			Name:                  def.Name,
			PriceINR:              def.PriceINR,
			PriceMonthly:          def.PriceMonthly,
			MaxProducts:           *def.MaxProducts,
			MaxStores:             *def.MaxStores,
			TransactionFeePercent: *def.TransactionFeePercent,
			Features:              def.Features,
		})
	}

	return NewRegistry(plans)
}
