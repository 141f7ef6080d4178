package report

import (
	"fmt"
	"io"
	"time"

	"github.com/vibast-solutions/ms-go-billing/app/entity"
	"github.com/xuri/excelize/v2"
)

const SettlementsSheet = "Settlements"

var settlementHeader = []interface{}{
	"settlement_id",
	"order_id",
	"merchant_id",
	"plan_id",
	"currency",
	"amount",
	"fee_percent",
	"fee",
	"payout",
	"status",
	"gateway",
	"transaction_id",
	"attempts",
	"created_at",
}

// WriteSettlementsXLSX writes one row per settlement followed by a totals row.
func WriteSettlementsXLSX(w io.Writer, items []*entity.Settlement) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SettlementsSheet); err != nil {
		return err
	}

	if err := f.SetSheetRow(SettlementsSheet, "A1", &settlementHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	var totalAmount, totalFee, totalPayout int64
	row := 2
	for _, item := range items {
		transactionID := ""
		if item.TransactionID != nil {
			transactionID = *item.TransactionID
		}
		values := []interface{}{
			item.ID,
			item.OrderID,
			item.MerchantID,
			item.PlanID,
			item.Currency,
			item.Amount,
			item.FeePercent,
			item.Fee,
			item.Payout,
			entity.SettlementStatusName(item.Status),
			item.Gateway,
			transactionID,
			item.Attempts,
			item.CreatedAt.UTC().Format(time.RFC3339),
		}

		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SettlementsSheet, cell, &values); err != nil {
			return fmt.Errorf("write row %d: %w", row, err)
		}

		totalAmount += item.Amount
		totalFee += item.Fee
		totalPayout += item.Payout
		row++
	}

	totals := []interface{}{"total", "", "", "", "", totalAmount, "", totalFee, totalPayout}
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SettlementsSheet, cell, &totals); err != nil {
		return fmt.Errorf("write totals: %w", err)
	}

	return f.Write(w)
}
