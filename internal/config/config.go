// Package config loads the immutable process configuration. It is read from
// the environment exactly once at startup and passed by value afterwards;
// request-handling code never touches ambient environment state.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// Config is the full per-stage configuration surface.
type Config struct {
	Stage  string `env:"STAGE" envDefault:"dev"`
	Region string `env:"REGION" envDefault:"us-east-1"`

	HTTPAddr        string `env:"HTTP_ADDR" envDefault:":8080"`
	FunctionBaseURL string `env:"FUNCTION_BASE_URL" envDefault:"http://localhost:9000"`

	SQLitePath string `env:"SQLITE_PATH" envDefault:"card-router.db"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:"," envDefault:"localhost:9092"`
	VoidTopic    string   `env:"VOID_TOPIC" envDefault:"card-automatic-void"`
	AlertTopic   string   `env:"ALERT_TOPIC" envDefault:"card-void-alerts"`

	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`

	// DefaultTimeoutMs bounds remote processor calls unless a per-provider
	// override is present in TimeoutMs (keyed by adapter variant).
	DefaultTimeoutMs int64            `env:"DEFAULT_PROCESSOR_TIMEOUT_MS" envDefault:"25000"`
	TimeoutMs        map[string]int64 `env:"PROCESSOR_TIMEOUT_MS" envSeparator:"," envKeyValSeparator:":"`

	// SandboxProcessors lists processor names short-circuited to the sandbox
	// adapter on non-production stages.
	SandboxProcessors []string `env:"SANDBOX_PROCESSORS" envSeparator:","`

	// VoidEligibleProcessors restricts the automatic-void sweep to acquirers
	// known to auto-expire holds.
	VoidEligibleProcessors []string `env:"VOID_ELIGIBLE_PROCESSORS" envSeparator:"," envDefault:"Kushki Acquirer Processor,Credimatic Processor,Datafast Processor"`

	TransactionTable string `env:"TRANSACTION_TABLE" envDefault:""`
}

// Load reads the configuration from the environment and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.TransactionTable == "" {
		cfg.TransactionTable = cfg.Stage + "-card-transactions"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the loaded configuration is usable.
func (c Config) Validate() error {
	if c.Stage == "" {
		return fmt.Errorf("STAGE is required")
	}
	if c.DefaultTimeoutMs <= 0 {
		return fmt.Errorf("DEFAULT_PROCESSOR_TIMEOUT_MS must be positive")
	}
	if c.FunctionBaseURL == "" {
		return fmt.Errorf("FUNCTION_BASE_URL is required")
	}
	if len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	return nil
}

// TimeoutFor returns the remote-call budget for an adapter variant.
func (c Config) TimeoutFor(provider types.CardProvider) time.Duration {
	if ms, ok := c.TimeoutMs[string(provider)]; ok && ms > 0 {
		return time.Duration(ms) * time.Millisecond
	}
	return time.Duration(c.DefaultTimeoutMs) * time.Millisecond
}

// TimeoutTable names the dedicated table that parks timed-out requests for a
// provider.
func (c Config) TimeoutTable(provider types.CardProvider) string {
	return fmt.Sprintf("%s-%s-timedout-transactions", c.Stage, provider)
}

// FunctionName renders the per-stage remote function identifier for a
// provider operation, e.g. "usrv-card-redeban-charge-dev".
func (c Config) FunctionName(provider types.CardProvider, operation string) string {
	return fmt.Sprintf("usrv-card-%s-%s-%s", provider, operation, c.Stage)
}

// TokenFunctionName is the shared token-issuing gateway function.
func (c Config) TokenFunctionName() string {
	return fmt.Sprintf("usrv-token-issue-%s", c.Stage)
}

// SandboxEnabled reports whether the named processor is short-circuited to
// the sandbox adapter on this stage. Production stages never sandbox.
func (c Config) SandboxEnabled(processor types.ProcessorName) bool {
	if c.Stage == "primary" || c.Stage == "production" {
		return false
	}
	for _, name := range c.SandboxProcessors {
		if name == string(processor) {
			return true
		}
	}
	return false
}

// VoidEligible reports whether the processor participates in automatic void
// of stale pre-authorizations.
func (c Config) VoidEligible(processor types.ProcessorName) bool {
	for _, name := range c.VoidEligibleProcessors {
		if name == string(processor) {
			return true
		}
	}
	return false
}
