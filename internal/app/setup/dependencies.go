package setup

import (
	"context"
	"fmt"
	"io"

	"github.com/esgpulse/supplier-compliance-service/internal/config"
	"github.com/esgpulse/supplier-compliance-service/internal/domain"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/kafka"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/logger"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/metrics"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/migrate"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/postgres/repository"
	"github.com/esgpulse/supplier-compliance-service/internal/infrastructure/redislock"
	"github.com/prometheus/client_golang/prometheus"
	"gorm.io/gorm"
)

type Dependencies struct {
	Config       *config.ComplianceConfig
	Logger       *logger.Logger
	DB           *gorm.DB
	Publisher    domain.PublisherPort
	Lock         domain.ScanLock
	Metrics      *metrics.ScanMetrics
	Repositories *Repositories

	closers []io.Closer
}

type Repositories struct {
	SupplierRepo   domain.SupplierRepository
	DocumentRepo   domain.DocumentRepository
	EvaluationRepo domain.EvaluationRepository
	FailureRepo    domain.SupplyFailureRepository
	AlertRepo      domain.AlertRepository
	ScanRunRepo    domain.ScanRunRepository
	Procedures     domain.ComplianceProcedures
}

func InitializeDependencies(cfg *config.ComplianceConfig, log *logger.Logger) (*Dependencies, error) {
	db := postgres.MustInitDB(cfg)

	if err := migrate.RunMigrations(db, cfg.ComplianceDB.MigrationsPath, log); err != nil {
		return nil, fmt.Errorf("migrations: %w", err)
	}

	deps := &Dependencies{
		Config:       cfg,
		Logger:       log,
		DB:           db,
		Metrics:      metrics.NewScanMetrics(prometheus.DefaultRegisterer),
		Repositories: initRepositories(db),
	}

	deps.Publisher = initPublisher(deps)

	lock, err := initScanLock(deps)
	if err != nil {
		return nil, fmt.Errorf("scan lock: %w", err)
	}
	deps.Lock = lock

	return deps, nil
}

func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		SupplierRepo:   repository.NewDefaultSupplierRepository(db),
		DocumentRepo:   repository.NewDefaultDocumentRepository(db),
		EvaluationRepo: repository.NewDefaultEvaluationRepository(db),
		FailureRepo:    repository.NewDefaultSupplyFailureRepository(db),
		AlertRepo:      repository.NewDefaultAlertRepository(db),
		ScanRunRepo:    repository.NewDefaultScanRunRepository(db),
		Procedures:     repository.NewDefaultProcedureRepository(db),
	}
}

func initPublisher(deps *Dependencies) domain.PublisherPort {
	cfg := deps.Config.Kafka
	if len(cfg.Brokers) == 0 {
		deps.Logger.Info("Kafka brokers not configured, alert events disabled")
		return kafka.NoopPublisher{}
	}
	publisher := kafka.NewKafkaPublisher(cfg.Brokers, cfg.Topic)
	deps.closers = append(deps.closers, publisher)
	deps.Logger.Info("Kafka alert publisher ready", "brokers", cfg.Brokers, "topic", cfg.Topic)
	return publisher
}

func initScanLock(deps *Dependencies) (domain.ScanLock, error) {
	cfg := deps.Config.Redis
	if cfg.Addr == "" {
		deps.Logger.Info("Redis not configured, scan runs are not single-flight")
		return redislock.NoopLock{}, nil
	}

	client := redislock.NewClient(cfg)
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	deps.closers = append(deps.closers, client)

	return redislock.NewLock(client, cfg.LockTTL)
}

// Close releases the broker and Redis connections and the database pool.
func (d *Dependencies) Close() {
	for _, c := range d.closers {
		if err := c.Close(); err != nil {
			d.Logger.Warn("Failed to close dependency", "error", err)
		}
	}
	if sqlDB, err := d.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}
