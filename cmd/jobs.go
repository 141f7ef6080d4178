package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vibast-solutions/ms-go-billing/app/factory"
	"github.com/vibast-solutions/ms-go-billing/app/service"
	"github.com/vibast-solutions/ms-go-billing/config"
)

var (
	retryWorker         bool
	expirePendingWorker bool
)

var payoutsCmd = &cobra.Command{
	Use:   "payouts",
	Short: "Run payout processing commands",
}

var payoutsRetryCmd = &cobra.Command{
	Use:   "retry",
	Short: "Retry failed payouts that are due",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"payouts_retry",
			retryWorker,
			func(cfg *config.Config) time.Duration { return cfg.Jobs.PayoutRetryInterval },
			func(s *service.SettlementService, ctx context.Context) error {
				return s.RunPayoutRetryBatch(ctx)
			},
		)
	},
}

var payoutsExpirePendingCmd = &cobra.Command{
	Use:   "expire-pending",
	Short: "Fail stale pending or stranded processing payouts and schedule them for retry",
	Run: func(_ *cobra.Command, _ []string) {
		runCommand(
			"payouts_expire_pending",
			expirePendingWorker,
			func(cfg *config.Config) time.Duration { return cfg.Jobs.PendingCleanupInterval },
			func(s *service.SettlementService, ctx context.Context) error {
				return s.RunPendingPayoutCleanupBatch(ctx)
			},
		)
	},
}

func init() {
	rootCmd.AddCommand(payoutsCmd)
	payoutsCmd.AddCommand(payoutsRetryCmd)
	payoutsCmd.AddCommand(payoutsExpirePendingCmd)

	payoutsRetryCmd.Flags().BoolVar(&retryWorker, "worker", false, "Run continuously using configured interval")
	payoutsExpirePendingCmd.Flags().BoolVar(&expirePendingWorker, "worker", false, "Run continuously using configured interval")
}

func runCommand(
	name string,
	worker bool,
	intervalResolver func(cfg *config.Config) time.Duration,
	fn func(s *service.SettlementService, ctx context.Context) error,
) {
	cfg, _, svc, cleanup := mustBootstrap()
	defer cleanup()

	if worker {
		runWorker(name, intervalResolver(cfg), svc.settlements, fn)
		return
	}

	ctx := context.Background()
	runJob(name, func() error { return fn(svc.settlements, ctx) })
}

// runWorker runs the job immediately and then on every tick until SIGINT or SIGTERM.
// A signal also cancels the context of a batch in flight.
func runWorker(
	name string,
	interval time.Duration,
	settlementService *service.SettlementService,
	fn func(s *service.SettlementService, ctx context.Context) error,
) {
	logger := factory.NewJobLogger(name)
	if interval <= 0 {
		logger.Fatal("invalid worker interval")
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runJob(name, func() error { return fn(settlementService, ctx) })

	for {
		select {
		case <-ctx.Done():
			logger.Info("Worker shutdown requested")
			return
		case <-ticker.C:
			runJob(name, func() error { return fn(settlementService, ctx) })
		}
	}
}

func runJob(name string, fn func() error) {
	logger := factory.NewJobLogger(name)
	start := time.Now()
	err := fn()
	latency := time.Since(start)
	if err != nil {
		logger.WithError(err).WithField("latency", latency.String()).Error("job_failed")
		return
	}
	logger.WithField("latency", latency.String()).Info("job_completed")
}
