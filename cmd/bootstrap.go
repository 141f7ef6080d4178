package cmd

import (
	"database/sql"
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/vibast-solutions/ms-go-billing/app/payment"
	"github.com/vibast-solutions/ms-go-billing/app/plan"
	"github.com/vibast-solutions/ms-go-billing/app/repository"
	"github.com/vibast-solutions/ms-go-billing/app/service"
	"github.com/vibast-solutions/ms-go-billing/config"

	_ "github.com/go-sql-driver/mysql"
)

type services struct {
	plans        *service.PlanService
	entitlements *service.EntitlementService
	settlements  *service.SettlementService
}

func mustLoadConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}
	if err := configureLogging(cfg); err != nil {
		logrus.WithError(err).Fatal("Failed to configure logging")
	}
	return cfg
}

func openDatabase(cfg *config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", cfg.MySQL.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MySQL.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MySQL.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MySQL.ConnMaxLifetime)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}

// loadPlanRegistry falls back to the built-in catalog when no catalog file is configured.
func loadPlanRegistry(cfg *config.Config) (*plan.Registry, error) {
	if cfg.Billing.PlanCatalogPath == "" {
		return plan.Default(), nil
	}
	registry, err := plan.LoadCatalogFile(cfg.Billing.PlanCatalogPath)
	if err != nil {
		return nil, err
	}
	logrus.WithField("path", cfg.Billing.PlanCatalogPath).WithField("plans", registry.Len()).Info("Loaded plan catalog")
	return registry, nil
}

func newServices(cfg *config.Config, db *sql.DB) (*services, error) {
	registry, err := loadPlanRegistry(cfg)
	if err != nil {
		return nil, err
	}
	gateway, err := payment.NewService(cfg.Billing.PayoutGateway)
	if err != nil {
		return nil, err
	}

	merchantRepo := repository.NewMerchantRepository(db)
	settlementRepo := repository.NewSettlementRepository(db)

	return &services{
		plans:        service.NewPlanService(registry),
		entitlements: service.NewEntitlementService(registry, merchantRepo),
		settlements:  service.NewSettlementService(registry, merchantRepo, settlementRepo, gateway, cfg.Billing),
	}, nil
}

// mustBootstrap loads config, connects to MySQL and wires the services. The returned
// cleanup closes the database.
func mustBootstrap() (*config.Config, *sql.DB, *services, func()) {
	cfg := mustLoadConfig()

	db, err := openDatabase(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}
	cleanup := func() {
		if err := db.Close(); err != nil {
			logrus.WithError(err).Warn("Failed to close database")
		}
	}

	svc, err := newServices(cfg, db)
	if err != nil {
		cleanup()
		logrus.WithError(err).Fatal("Failed to initialize services")
	}

	return cfg, db, svc, cleanup
}
