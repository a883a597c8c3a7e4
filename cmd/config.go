package cmd

import (
	"errors"
	"os"
	"time"

	"codeorders/internal/core/application/usecases/commands"
	"codeorders/internal/pkg/errs"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	maxInvoiceNodeID = 1023
	maxRenderWorkers = 256
)

type Config struct {
	HTTPPort    string `env:"HTTP_PORT" envDefault:"8080"`
	StoreDriver string `env:"STORE_DRIVER" envDefault:"postgres"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME" envDefault:"codeorders"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	HomeRegion         string        `env:"HOME_REGION" envDefault:"Gujarat"`
	RenderPolicy       string        `env:"RENDER_POLICY" envDefault:"collect"`
	RenderWorkers      int           `env:"RENDER_WORKERS" envDefault:"4"`
	ProcessingTimeout  time.Duration `env:"PROCESSING_TIMEOUT" envDefault:"10m"`
	StaleOrderSchedule string        `env:"STALE_ORDER_SCHEDULE" envDefault:"@every 1m"`
	InvoiceNodeID      int64         `env:"INVOICE_NODE_ID" envDefault:"1"`

	KafkaHost              string        `env:"KAFKA_HOST"`
	KafkaOrderChangedTopic string        `env:"KAFKA_ORDER_CHANGED_TOPIC" envDefault:"order.status.changed"`
	KafkaPublishTimeout    time.Duration `env:"KAFKA_PUBLISH_TIMEOUT" envDefault:"5s"`

	RateLimitRPS       float64  `env:"RATE_LIMIT_RPS" envDefault:"0"`
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:"," envDefault:"*"`

	LogLevel       string `env:"LOG_LEVEL" envDefault:"info"`
	LogDevelopment bool   `env:"LOG_DEVELOPMENT" envDefault:"false"`
}

// LoadConfig reads .env when present, then the process environment, and validates
// the result.
func LoadConfig() (Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err = godotenv.Load(".env"); err != nil {
			return Config{}, err
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	var problems []error

	if c.HTTPPort == "" {
		problems = append(problems, errs.NewValueIsRequiredError("HTTP_PORT"))
	}
	if c.StoreDriver != StoreDriverPostgres && c.StoreDriver != StoreDriverMemory {
		problems = append(problems, errs.NewValueIsInvalidError("STORE_DRIVER"))
	}
	if _, err := commands.ParseRenderPolicy(c.RenderPolicy); err != nil {
		problems = append(problems, err)
	}
	if c.RenderWorkers < 1 || c.RenderWorkers > maxRenderWorkers {
		problems = append(problems, errs.NewValueIsOutOfRangeError("RENDER_WORKERS", c.RenderWorkers, 1, maxRenderWorkers))
	}
	if c.ProcessingTimeout <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("PROCESSING_TIMEOUT"))
	}
	if c.InvoiceNodeID < 0 || c.InvoiceNodeID > maxInvoiceNodeID {
		problems = append(problems, errs.NewValueIsOutOfRangeError("INVOICE_NODE_ID", c.InvoiceNodeID, 0, maxInvoiceNodeID))
	}
	if c.RateLimitRPS < 0 {
		problems = append(problems, errs.NewValueIsInvalidError("RATE_LIMIT_RPS"))
	}
	if c.KafkaPublishTimeout <= 0 {
		problems = append(problems, errs.NewValueIsInvalidError("KAFKA_PUBLISH_TIMEOUT"))
	}
	if len(c.CORSAllowedOrigins) == 0 {
		problems = append(problems, errs.NewValueIsRequiredError("CORS_ALLOWED_ORIGINS"))
	}
	if c.KafkaHost != "" && c.KafkaOrderChangedTopic == "" {
		problems = append(problems, errs.NewValueIsRequiredError("KAFKA_ORDER_CHANGED_TOPIC"))
	}

	return errors.Join(problems...)
}
