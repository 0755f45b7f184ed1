package postgres

import (
	"log"
	"time"

	"github.com/esgpulse/supplier-compliance-service/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// MustInitDB opens the compliance database. The schema is owned by the SQL
// migrations, so no AutoMigrate runs here.
func MustInitDB(cfg *config.ComplianceConfig) *gorm.DB {
	logLevel := gormlogger.Warn
	if cfg.Env == "local" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.ComplianceDB.Dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		log.Fatalf("failed to init db: %v\n", err.Error())
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to get sql.DB: %v\n", err)
	}
	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	return db
}
