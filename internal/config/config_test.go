package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cygnus-aran/serverless-card-sub004/internal/config"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "dev", cfg.Stage)
		assert.Equal(t, int64(25000), cfg.DefaultTimeoutMs)
		assert.Equal(t, "dev-card-transactions", cfg.TransactionTable)
		assert.Equal(t, "card-automatic-void", cfg.VoidTopic)
		assert.Equal(t, "card-void-alerts", cfg.AlertTopic)
	})

	t.Run("environment overrides", func(t *testing.T) {
		t.Setenv("STAGE", "qa")
		t.Setenv("PROCESSOR_TIMEOUT_MS", "niubiz:9000,redeban:12000")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")
		cfg, err := config.Load()
		require.NoError(t, err)
		assert.Equal(t, "qa-card-transactions", cfg.TransactionTable)
		assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
		assert.Equal(t, 9*time.Second, cfg.TimeoutFor(types.ProviderNiubiz))
		assert.Equal(t, 25*time.Second, cfg.TimeoutFor(types.ProviderAurus))
	})

	t.Run("invalid timeout rejected", func(t *testing.T) {
		t.Setenv("DEFAULT_PROCESSOR_TIMEOUT_MS", "0")
		_, err := config.Load()
		assert.Error(t, err)
	})
}

func TestNaming(t *testing.T) {
	cfg := config.Config{Stage: "ci"}

	assert.Equal(t, "usrv-card-redeban-charge-ci",
		cfg.FunctionName(types.ProviderRedeban, "charge"))
	assert.Equal(t, "usrv-token-issue-ci", cfg.TokenFunctionName())
	assert.Equal(t, "ci-datafast-timedout-transactions",
		cfg.TimeoutTable(types.ProviderDatafast))
}

func TestSandboxEnabled(t *testing.T) {
	t.Run("listed processor on test stage", func(t *testing.T) {
		cfg := config.Config{Stage: "qa", SandboxProcessors: []string{string(types.ProcessorRedeban)}}
		assert.True(t, cfg.SandboxEnabled(types.ProcessorRedeban))
		assert.False(t, cfg.SandboxEnabled(types.ProcessorNiubiz))
	})

	t.Run("production stages never sandbox", func(t *testing.T) {
		for _, stage := range []string{"primary", "production"} {
			cfg := config.Config{Stage: stage, SandboxProcessors: []string{string(types.ProcessorRedeban)}}
			assert.False(t, cfg.SandboxEnabled(types.ProcessorRedeban), stage)
		}
	})
}

func TestVoidEligible(t *testing.T) {
	cfg := config.Config{VoidEligibleProcessors: []string{
		string(types.ProcessorKushkiAcq),
		string(types.ProcessorCredimatic),
	}}
	assert.True(t, cfg.VoidEligible(types.ProcessorKushkiAcq))
	assert.True(t, cfg.VoidEligible(types.ProcessorCredimatic))
	assert.False(t, cfg.VoidEligible(types.ProcessorNiubiz))
}
