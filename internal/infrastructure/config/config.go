package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	JWTSecret string `env:"JWT_SECRET"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`

	// TokenTTL is the lifetime of issued session tokens.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=24h"`

	// DemoFallback allows unprovisioned emails to log in through the static
	// demo directory without a credential check. Disable in production.
	DemoFallback bool `env:"DEMO_FALLBACK, default=true"`

	Mongo     MongoConfig
	Redis     RedisConfig
	Workflow  WorkflowConfig
	Analytics AnalyticsConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=console"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

type WorkflowConfig struct {
	// WebhookURL is the n8n-style endpoint translating natural language to
	// tabular data. Empty means the mock generator answers everything.
	WebhookURL string        `env:"WORKFLOW_WEBHOOK_URL"`
	Timeout    time.Duration `env:"WORKFLOW_TIMEOUT, default=30s"`
}

type AnalyticsConfig struct {
	// DSN of the Postgres analytics database used for schema introspection.
	// Empty disables the schema endpoint.
	DSN string `env:"ANALYTICS_DSN"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
