// Package app wires configuration, logging, middleware and routing for
// the HERFISH backend.
package app

import (
	"errors"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the application.
type Config struct {
	AppEnv            string        `envconfig:"APP_ENV" default:"development"`
	AppAddr           string        `envconfig:"APP_ADDR" default:":8080"`
	AppReadTimeout    time.Duration `envconfig:"APP_READ_TIMEOUT" default:"15s"`
	AppWriteTimeout   time.Duration `envconfig:"APP_WRITE_TIMEOUT" default:"15s"`
	AppRequestTimeout time.Duration `envconfig:"APP_REQUEST_TIMEOUT" default:"30s"`

	LogFormat string `envconfig:"LOG_FORMAT" default:"pretty"`
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	// Fixed back-office identities. The operator and distributor are
	// single accounts configured here, not stored entities.
	OperatorEmail       string `envconfig:"OPERATOR_EMAIL" default:"ops@herfish.local"`
	OperatorPassword    string `envconfig:"OPERATOR_PASSWORD" required:"true"`
	OperatorPhone       string `envconfig:"OPERATOR_PHONE"`
	DistributorEmail    string `envconfig:"DISTRIBUTOR_EMAIL" default:"dispatch@herfish.local"`
	DistributorPassword string `envconfig:"DISTRIBUTOR_PASSWORD" required:"true"`
	DistributorPhone    string `envconfig:"DISTRIBUTOR_PHONE"`

	// Outbound notification providers. Disabled providers are skipped
	// with a log line, never an error.
	EmailEnabled bool   `envconfig:"EMAIL_ENABLED" default:"false"`
	SMTPHost     string `envconfig:"SMTP_HOST" default:"127.0.0.1"`
	SMTPPort     int    `envconfig:"SMTP_PORT" default:"1025"`
	SMTPFrom     string `envconfig:"SMTP_FROM" default:"no-reply@herfish.local"`

	SMSEnabled    bool   `envconfig:"SMS_ENABLED" default:"false"`
	SMSGatewayURL string `envconfig:"SMS_GATEWAY_URL"`
	SMSAPIKey     string `envconfig:"SMS_API_KEY"`
	SMSSender     string `envconfig:"SMS_SENDER" default:"HERFISH"`

	SeedDemoData bool `envconfig:"SEED_DEMO_DATA" default:"true"`
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.SMSEnabled && (cfg.SMSGatewayURL == "" || cfg.SMSAPIKey == "") {
		return nil, errors.New("sms gateway url and api key must be provided when sms is enabled")
	}
	return &cfg, nil
}

// IsProduction returns true when the application runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
