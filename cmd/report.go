package cmd

import (
	"context"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-billing/app/types"
)

var (
	reportOut        string
	reportMerchantID uint64
	reportFrom       string
	reportTo         string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate billing reports",
}

var reportSettlementsCmd = &cobra.Command{
	Use:   "settlements",
	Short: "Export settlements to an XLSX workbook",
	Run: func(_ *cobra.Command, _ []string) {
		req := &types.ExportSettlementsRequest{MerchantId: reportMerchantID, From: reportFrom, To: reportTo}
		if err := req.Validate(); err != nil {
			logrus.WithError(err).Fatal("Invalid report filters")
		}

		_, _, svc, cleanup := mustBootstrap()
		defer cleanup()

		f, err := os.Create(reportOut)
		if err != nil {
			logrus.WithError(err).Fatal("Failed to create report file")
		}

		if err := svc.settlements.ExportSettlements(context.Background(), f, req); err != nil {
			_ = f.Close()
			_ = os.Remove(reportOut)
			logrus.WithError(err).Fatal("Failed to export settlements")
		}
		if err := f.Close(); err != nil {
			logrus.WithError(err).Fatal("Failed to write report file")
		}
		logrus.WithField("path", reportOut).Info("Settlement report written")
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.AddCommand(reportSettlementsCmd)

	reportSettlementsCmd.Flags().StringVar(&reportOut, "out", "settlements.xlsx", "Output file path")
	reportSettlementsCmd.Flags().Uint64Var(&reportMerchantID, "merchant-id", 0, "Only include this merchant")
	reportSettlementsCmd.Flags().StringVar(&reportFrom, "from", "", "Created at or after (RFC3339)")
	reportSettlementsCmd.Flags().StringVar(&reportTo, "to", "", "Created before (RFC3339)")
}
