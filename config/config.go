package config

import (
	"errors"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App               AppConfig
	HTTP              ServerConfig
	GRPC              ServerConfig
	MySQL             MySQLConfig
	Log               LogConfig
	InternalEndpoints InternalEndpointsConfig
	Billing           BillingConfig
	Jobs              JobsConfig
	Metrics           MetricsConfig
}

type AppConfig struct {
	ServiceName    string
	MigrateOnStart bool
}

type ServerConfig struct {
	Host string
	Port string
}

type MySQLConfig struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type LogConfig struct {
	Level string
}

type InternalEndpointsConfig struct {
	AuthGRPCAddr string
}

// BillingConfig drives plan resolution and payout scheduling.
// An empty PlanCatalogPath keeps the built-in plan catalog. ProcessingTimeout bounds how long a
// settlement may sit in processing before the cleanup job treats the run as lost.
type BillingConfig struct {
	PlanCatalogPath      string
	PayoutGateway        string
	PayoutRetryInterval  time.Duration
	MaxPayoutAttempts    int32
	PendingPayoutTimeout time.Duration
	ProcessingTimeout    time.Duration
}

type JobsConfig struct {
	PayoutRetryInterval    time.Duration
	PendingCleanupInterval time.Duration
}

type MetricsConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		return nil, errors.New("MYSQL_DSN environment variable is required")
	}

	maxAttempts := getIntEnv("MAX_PAYOUT_ATTEMPTS", 5)
	if maxAttempts <= 0 {
		return nil, errors.New("MAX_PAYOUT_ATTEMPTS must be positive")
	}
	if maxAttempts > math.MaxInt32 {
		return nil, errors.New("MAX_PAYOUT_ATTEMPTS is out of range")
	}

	return &Config{
		App: AppConfig{
			ServiceName:    getEnv("APP_SERVICE_NAME", "billing-service"),
			MigrateOnStart: getBoolEnv("MIGRATE_ON_START", false),
		},
		HTTP: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnv("HTTP_PORT", "8080"),
		},
		GRPC: ServerConfig{
			Host: getEnv("GRPC_HOST", "0.0.0.0"),
			Port: getEnv("GRPC_PORT", "9090"),
		},
		MySQL: MySQLConfig{
			DSN:             mysqlDSN,
			MaxOpenConns:    getIntEnv("MYSQL_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getIntEnv("MYSQL_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getDurationEnv("MYSQL_CONN_MAX_LIFETIME_MINUTES", 30*time.Minute),
		},
		Log: LogConfig{Level: getEnv("LOG_LEVEL", "info")},
		InternalEndpoints: InternalEndpointsConfig{
			AuthGRPCAddr: getEnv("AUTH_SERVICE_GRPC_ADDR", "localhost:9090"),
		},
		Billing: BillingConfig{
			PlanCatalogPath:      strings.TrimSpace(os.Getenv("PLAN_CATALOG_PATH")),
			PayoutGateway:        strings.ToLower(getEnv("PAYOUT_GATEWAY", "demo")),
			PayoutRetryInterval:  getDurationEnv("PAYOUT_RETRY_INTERVAL_MINUTES", 60*time.Minute),
			MaxPayoutAttempts:    int32(maxAttempts),
			PendingPayoutTimeout: getDurationEnv("PENDING_PAYOUT_TIMEOUT_MINUTES", 30*time.Minute),
			ProcessingTimeout:    getDurationEnv("PROCESSING_TIMEOUT_MINUTES", 15*time.Minute),
		},
		Jobs: JobsConfig{
			PayoutRetryInterval:    getDurationEnv("PAYOUT_RETRY_JOB_INTERVAL_MINUTES", 5*time.Minute),
			PendingCleanupInterval: getDurationEnv("PENDING_CLEANUP_JOB_INTERVAL_MINUTES", 10*time.Minute),
		},
		Metrics: MetricsConfig{Enabled: getBoolEnv("METRICS_ENABLED", true)},
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
