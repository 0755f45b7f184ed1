package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/app/background"
	"github.com/esgpulse/supplier-compliance-service/internal/app/setup"
	"github.com/esgpulse/supplier-compliance-service/internal/config"
	"github.com/esgpulse/supplier-compliance-service/internal/delivery/grpcapi"
	httpdelivery "github.com/esgpulse/supplier-compliance-service/internal/delivery/http"
	"github.com/esgpulse/supplier-compliance-service/internal/delivery/http/handlers"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/tracing"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("failed to load .env")
	}
	// Reading config
	cfg := config.MustLoad()

	appLogger, err := logger.New(cfg.LogConfig)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer appLogger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing, cfg.Env, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to init tracing", "error", err)
	}

	deps, err := setup.InitializeDependencies(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to init dependencies", "error", err)
	}
	defer deps.Close()

	alerting, err := setup.InitializeAlerting(deps)
	if err != nil {
		appLogger.Fatal("Failed to init alert engine", "error", err)
	}
	useCases := setup.InitializeUseCases(deps, alerting)

	// HTTP
	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpdelivery.NewRouter(httpdelivery.RouterConfig{
		ServiceName:    cfg.Tracing.ServiceName,
		AllowedOrigins: cfg.HTTPServer.AllowedOrigins,
		HealthCheck: func(ctx context.Context) error {
			sqlDB, err := deps.DB.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}, handlers.NewComplianceHandler(useCases.ComplianceUsecase, appLogger), appLogger)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.HTTPServer.Host, cfg.HTTPServer.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// gRPC
	grpcServer, healthServer := grpcapi.NewServer(useCases.ComplianceUsecase, appLogger)
	lis, err := net.Listen("tcp", fmt.Sprintf("%s:%s", cfg.GRPCServer.Host, cfg.GRPCServer.Port))
	if err != nil {
		appLogger.Fatal("Failed to listen", "error", err)
	}

	serveErr := make(chan error, 2)
	go func() {
		appLogger.Info("HTTP server started", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http: %w", err)
		}
	}()
	go func() {
		appLogger.Info("gRPC server started", "addr", lis.Addr().String())
		if err := grpcServer.Serve(lis); err != nil {
			serveErr <- fmt.Errorf("grpc: %w", err)
		}
	}()

	tasks := background.NewBackgroundTasks(alerting.Scheduler, cfg.Scheduler.Enabled, appLogger)
	tasksDone := tasks.StartAll(ctx)

	select {
	case <-ctx.Done():
		appLogger.Info("Shutdown signal received")
	case err := <-serveErr:
		appLogger.Error("Server failed", "error", err)
		stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	healthServer.Shutdown()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("HTTP shutdown failed", "error", err)
	}
	grpcServer.GracefulStop()
	<-tasksDone

	if err := shutdownTracing(shutdownCtx); err != nil {
		appLogger.Error("Tracing shutdown failed", "error", err)
	}
	appLogger.Info("Service stopped")
}
