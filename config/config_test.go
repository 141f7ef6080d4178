package config

import (
	"os"
	"testing"
	"time"
)

func setEnv(t *testing.T, key, value string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	if err := os.Setenv(key, value); err != nil {
		t.Fatalf("setenv %s failed: %v", key, err)
	}
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		} else {
			_ = os.Unsetenv(key)
		}
	})
}

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, had := os.LookupEnv(key)
	_ = os.Unsetenv(key)
	t.Cleanup(func() {
		if had {
			_ = os.Setenv(key, old)
		}
	})
}

func TestLoadRequiresMySQLDSN(t *testing.T) {
	unsetEnv(t, "MYSQL_DSN")
	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing MYSQL_DSN")
	}
}

func TestLoadRejectsNonPositiveMaxAttempts(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/billing?parseTime=true")
	setEnv(t, "MAX_PAYOUT_ATTEMPTS", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for MAX_PAYOUT_ATTEMPTS=0")
	}
}

func TestLoadRejectsMaxAttemptsBeyondInt32(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/billing?parseTime=true")
	setEnv(t, "MAX_PAYOUT_ATTEMPTS", "4294967297")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for MAX_PAYOUT_ATTEMPTS above int32 range")
	}
}

func TestLoadAcceptsMaxAttemptsAtInt32Limit(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/billing?parseTime=true")
	setEnv(t, "MAX_PAYOUT_ATTEMPTS", "2147483647")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Billing.MaxPayoutAttempts != 2147483647 {
		t.Fatalf("unexpected max attempts: %d", cfg.Billing.MaxPayoutAttempts)
	}
}

func TestLoadDefaults(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/billing?parseTime=true")
	unsetEnv(t, "PAYOUT_GATEWAY")
	unsetEnv(t, "PLAN_CATALOG_PATH")
	unsetEnv(t, "METRICS_ENABLED")
	unsetEnv(t, "MAX_PAYOUT_ATTEMPTS")
	unsetEnv(t, "MIGRATE_ON_START")
	unsetEnv(t, "PROCESSING_TIMEOUT_MINUTES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Billing.PayoutGateway != "demo" {
		t.Fatalf("expected demo gateway by default, got %q", cfg.Billing.PayoutGateway)
	}
	if cfg.Billing.PlanCatalogPath != "" {
		t.Fatalf("expected built-in catalog by default, got %q", cfg.Billing.PlanCatalogPath)
	}
	if !cfg.Metrics.Enabled {
		t.Fatal("expected metrics enabled by default")
	}
	if cfg.Billing.MaxPayoutAttempts != 5 {
		t.Fatalf("unexpected max attempts: %d", cfg.Billing.MaxPayoutAttempts)
	}
	if cfg.App.MigrateOnStart {
		t.Fatal("expected migrations off by default")
	}
	if cfg.Billing.ProcessingTimeout != 15*time.Minute {
		t.Fatalf("unexpected processing timeout: %v", cfg.Billing.ProcessingTimeout)
	}
}

func TestLoadDefaultsAndOverrides(t *testing.T) {
	setEnv(t, "MYSQL_DSN", "root:root@tcp(localhost:3306)/billing?parseTime=true")
	setEnv(t, "APP_SERVICE_NAME", "billing-test")
	setEnv(t, "HTTP_PORT", "8181")
	setEnv(t, "GRPC_PORT", "9191")
	setEnv(t, "MYSQL_MAX_OPEN_CONNS", "20")
	setEnv(t, "MYSQL_MAX_IDLE_CONNS", "8")
	setEnv(t, "MYSQL_CONN_MAX_LIFETIME_MINUTES", "40")
	setEnv(t, "PLAN_CATALOG_PATH", " /etc/billing/plans.yaml ")
	setEnv(t, "PAYOUT_GATEWAY", "Disabled")
	setEnv(t, "PAYOUT_RETRY_INTERVAL_MINUTES", "15")
	setEnv(t, "MAX_PAYOUT_ATTEMPTS", "3")
	setEnv(t, "PENDING_PAYOUT_TIMEOUT_MINUTES", "5")
	setEnv(t, "PROCESSING_TIMEOUT_MINUTES", "7")
	setEnv(t, "PAYOUT_RETRY_JOB_INTERVAL_MINUTES", "2")
	setEnv(t, "METRICS_ENABLED", "false")
	setEnv(t, "MIGRATE_ON_START", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.App.ServiceName != "billing-test" || !cfg.App.MigrateOnStart {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
	if cfg.HTTP.Port != "8181" || cfg.GRPC.Port != "9191" {
		t.Fatalf("unexpected ports: http=%s grpc=%s", cfg.HTTP.Port, cfg.GRPC.Port)
	}
	if cfg.MySQL.MaxOpenConns != 20 || cfg.MySQL.MaxIdleConns != 8 {
		t.Fatalf("unexpected mysql pool config: %+v", cfg.MySQL)
	}
	if cfg.MySQL.ConnMaxLifetime != 40*time.Minute {
		t.Fatalf("unexpected mysql lifetime: %v", cfg.MySQL.ConnMaxLifetime)
	}
	if cfg.Billing.PlanCatalogPath != "/etc/billing/plans.yaml" {
		t.Fatalf("unexpected catalog path: %q", cfg.Billing.PlanCatalogPath)
	}
	if cfg.Billing.PayoutGateway != "disabled" {
		t.Fatalf("unexpected gateway: %q", cfg.Billing.PayoutGateway)
	}
	if cfg.Billing.PayoutRetryInterval != 15*time.Minute {
		t.Fatalf("unexpected retry interval: %v", cfg.Billing.PayoutRetryInterval)
	}
	if cfg.Billing.MaxPayoutAttempts != 3 {
		t.Fatalf("unexpected max attempts: %d", cfg.Billing.MaxPayoutAttempts)
	}
	if cfg.Billing.PendingPayoutTimeout != 5*time.Minute {
		t.Fatalf("unexpected pending timeout: %v", cfg.Billing.PendingPayoutTimeout)
	}
	if cfg.Billing.ProcessingTimeout != 7*time.Minute {
		t.Fatalf("unexpected processing timeout: %v", cfg.Billing.ProcessingTimeout)
	}
	if cfg.Jobs.PayoutRetryInterval != 2*time.Minute {
		t.Fatalf("unexpected job interval: %v", cfg.Jobs.PayoutRetryInterval)
	}
	if cfg.Metrics.Enabled {
		t.Fatal("expected metrics disabled")
	}
}
