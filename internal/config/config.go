package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type ComplianceConfig struct {
	Env          string       `yaml:"env" env:"APP_ENV" env-default:"local"`
	HTTPServer   HTTPServer   `yaml:"http_server"`
	GRPCServer   GRPCServer   `yaml:"grpc_server"`
	ComplianceDB ComplianceDB `yaml:"compliance_db"`
	LogConfig    LogConfig    `yaml:"log_config"`
	Kafka        Kafka        `yaml:"kafka"`
	Redis        Redis        `yaml:"redis"`
	Tracing      Tracing      `yaml:"tracing"`
	Scheduler    Scheduler    `yaml:"scheduler"`
	Rules        Rules        `yaml:"rules"`
}

type HTTPServer struct {
	Host           string   `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port           string   `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:","`
}

type GRPCServer struct {
	Host string `yaml:"host" env:"GRPC_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"GRPC_PORT" env-default:"50051"`
}

type ComplianceDB struct {
	Dsn            string `yaml:"dsn" env:"COMPLIANCE_DB_DSN" env-required:"true"`
	MigrationsPath string `yaml:"migrations_path" env:"COMPLIANCE_MIGRATIONS_PATH" env-default:"migrations"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL" env-default:"info"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT" env-default:"json"`
}

// Kafka publishing is disabled when Brokers is empty.
type Kafka struct {
	Brokers []string `yaml:"brokers" env:"KAFKA_BROKERS" env-separator:","`
	Topic   string   `yaml:"topic" env:"KAFKA_ALERT_TOPIC" env-default:"supplier-alert-events"`
}

// Redis backs the single-flight scan lock. Empty Addr disables the lock.
type Redis struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	LockTTL  time.Duration `yaml:"lock_ttl" env:"SCAN_LOCK_TTL" env-default:"10m"`
}

type Tracing struct {
	Enabled     bool   `yaml:"enabled" env:"TRACING_ENABLED" env-default:"false"`
	Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"localhost:4318"`
	ServiceName string `yaml:"service_name" env:"OTEL_SERVICE_NAME" env-default:"supplier-compliance-service"`
}

type Scheduler struct {
	Enabled bool   `yaml:"enabled" env:"SCHEDULER_ENABLED" env-default:"true"`
	Spec    string `yaml:"spec" env:"SCHEDULER_SPEC" env-default:"@daily"`
}

// Rules holds the alert engine thresholds in days. A nil field was not set in
// the YAML file and falls back to the engine default, so an explicit 0 is kept.
type Rules struct {
	CriticalWithinDays       *int `yaml:"critical_within_days"`
	UrgentWithinDays         *int `yaml:"urgent_within_days"`
	AttentionWithinDays      *int `yaml:"attention_within_days"`
	MandatoryOverdueDays     *int `yaml:"mandatory_overdue_days"`
	EvaluationStaleDays      *int `yaml:"evaluation_stale_days"`
	FailureWindowDays        *int `yaml:"failure_window_days"`
	MaxFailures              *int `yaml:"max_failures"`
	ReactivationCooldownDays *int `yaml:"reactivation_cooldown_days"`
}

func MustLoad() *ComplianceConfig {
	configPath := os.Getenv("COMPLIANCE_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("COMPLIANCE_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	var cfg ComplianceConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
