package cmd

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	authclient "github.com/vibast-solutions/lib-go-auth/client"
	authmiddleware "github.com/vibast-solutions/lib-go-auth/middleware"
	authlibservice "github.com/vibast-solutions/lib-go-auth/service"
	"github.com/vibast-solutions/ms-go-billing/app/controller"
	grpcserver "github.com/vibast-solutions/ms-go-billing/app/grpc"
	"github.com/vibast-solutions/ms-go-billing/app/migrations"
	"github.com/vibast-solutions/ms-go-billing/app/types"
	"github.com/vibast-solutions/ms-go-billing/config"
	"google.golang.org/grpc"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP and gRPC servers",
	Long:  "Start both HTTP (Echo) and gRPC servers for the billing service.",
	Run:   runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) {
	cfg, db, svc, cleanup := mustBootstrap()
	defer cleanup()

	if cfg.App.MigrateOnStart {
		if err := migrations.Up(db); err != nil {
			logrus.WithError(err).Fatal("Failed to apply migrations")
		}
	}

	grpcBillingServer := grpcserver.NewServer(svc.plans, svc.entitlements, svc.settlements)
	billingController := controller.NewBillingController(svc.plans, svc.entitlements, svc.settlements)

	authGRPCClient, err := authclient.NewGRPCClientFromAddr(context.Background(), cfg.InternalEndpoints.AuthGRPCAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to initialize auth gRPC client")
	}
	defer authGRPCClient.Close()
	internalAuthService := authlibservice.NewInternalAuthService(authGRPCClient)
	echoInternalAuthMiddleware := authmiddleware.NewEchoInternalAuthMiddleware(internalAuthService)
	grpcInternalAuthMiddleware := authmiddleware.NewGRPCInternalAuthMiddleware(internalAuthService)

	writeAccess := writeAccessName(cfg.App.ServiceName)
	e := setupHTTPServer(
		cfg,
		billingController,
		echoInternalAuthMiddleware.RequireInternalAccess(cfg.App.ServiceName),
		echoInternalAuthMiddleware.RequireInternalAccess(writeAccess),
	)
	grpcSrv, lis := setupGRPCServer(
		cfg,
		grpcBillingServer,
		grpcInternalAuthMiddleware.UnaryRequireInternalAccess(cfg.App.ServiceName),
		grpcInternalAuthMiddleware.UnaryRequireInternalAccess(writeAccess),
	)

	go func() {
		httpAddr := net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port)
		logrus.WithField("addr", httpAddr).Info("Starting HTTP server")
		if err := e.Start(httpAddr); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("HTTP server error")
		}
	}()

	go func() {
		logrus.WithField("addr", lis.Addr().String()).Info("Starting gRPC server")
		if err := grpcSrv.Serve(lis); err != nil {
			logrus.WithError(err).Fatal("gRPC server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Warn("HTTP shutdown error")
	}
	grpcSrv.GracefulStop()

	logrus.Info("Server stopped")
}

// writeAccessName is the access a caller needs to settle orders, change merchant plans
// or report payout callbacks. Plain service access covers the read routes.
func writeAccessName(serviceName string) string {
	return serviceName + ":write"
}

// setupHTTPServer registers read routes behind requireRead and money-moving routes behind
// requireWrite. Health and metrics stay public for probes and scrapers.
func setupHTTPServer(
	cfg *config.Config,
	billingController *controller.BillingController,
	requireRead echo.MiddlewareFunc,
	requireWrite echo.MiddlewareFunc,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogURI:       true,
		LogStatus:    true,
		LogMethod:    true,
		LogRemoteIP:  true,
		LogLatency:   true,
		LogUserAgent: true,
		LogError:     true,
		HandleError:  true,
		LogRequestID: true,
		LogValuesFunc: func(_ echo.Context, v echomiddleware.RequestLoggerValues) error {
			fields := logrus.Fields{
				"remote_ip":  v.RemoteIP,
				"host":       v.Host,
				"method":     v.Method,
				"uri":        v.URI,
				"status":     v.Status,
				"request_id": v.RequestID,
				"latency":    v.Latency.String(),
				"latency_ns": v.Latency.Nanoseconds(),
				"user_agent": v.UserAgent,
			}
			entry := logrus.WithFields(fields)
			if v.Error != nil {
				entry = entry.WithError(v.Error)
			}
			entry.Info("http_request")
			return nil
		},
	}))
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: func() string {
			return fmt.Sprintf("rest-%s", uuid.New().String())
		},
	}))

	e.GET("/health", billingController.Health)
	if cfg.Metrics.Enabled {
		e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	}

	plans := e.Group("/plans")
	plans.GET("", billingController.ListPlans, requireRead)
	plans.GET("/:id", billingController.GetPlan, requireRead)

	fees := e.Group("/fees")
	fees.GET("/quote", billingController.QuoteFee, requireRead)

	entitlements := e.Group("/entitlements")
	entitlements.POST("/check", billingController.CheckEntitlements, requireRead)

	merchants := e.Group("/merchants")
	merchants.GET("/:id/entitlements", billingController.GetMerchantEntitlements, requireRead)
	merchants.PATCH("/:id/plan", billingController.ChangeMerchantPlan, requireWrite)

	settlements := e.Group("/settlements")
	settlements.POST("", billingController.SettleOrder, requireWrite)
	settlements.GET("", billingController.ListSettlements, requireRead)
	settlements.GET("/export", billingController.ExportSettlements, requireRead)
	settlements.GET("/:id", billingController.GetSettlement, requireRead)

	webhooks := e.Group("/webhooks")
	webhooks.POST("/payout-callback", billingController.PayoutCallback, requireWrite)

	return e
}

func setupGRPCServer(
	cfg *config.Config,
	billingServer *grpcserver.Server,
	requireRead grpc.UnaryServerInterceptor,
	requireWrite grpc.UnaryServerInterceptor,
) (*grpc.Server, net.Listener) {
	grpcAddr := net.JoinHostPort(cfg.GRPC.Host, cfg.GRPC.Port)
	lis, err := net.Listen("tcp", grpcAddr)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to listen on gRPC port")
	}

	grpcSrv := grpc.NewServer(
		grpc.ForceServerCodec(types.JSONCodec{}),
		grpc.ChainUnaryInterceptor(
			grpcserver.RecoveryInterceptor(),
			grpcserver.RequestIDInterceptor(),
			grpcserver.LoggingInterceptor(),
			grpcserver.AccessInterceptor(requireRead, requireWrite),
		),
	)
	types.RegisterBillingServiceServer(grpcSrv, billingServer)

	return grpcSrv, lis
}
