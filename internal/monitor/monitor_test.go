package monitor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cygnus-aran/serverless-card-sub004/internal/monitor"
)

const testSchema = `{
	"type": "object",
	"required": ["transactionReference", "processorName"],
	"properties": {
		"transactionReference": {"type": "string", "minLength": 1},
		"processorName": {"type": "string"}
	}
}`

func TestNewEventMonitor(t *testing.T) {
	t.Run("compiles valid schema", func(t *testing.T) {
		m, err := monitor.NewEventMonitor([]byte(testSchema))
		require.NoError(t, err)
		assert.NotNil(t, m)
	})

	t.Run("rejects broken schema", func(t *testing.T) {
		_, err := monitor.NewEventMonitor([]byte(`{"type": 42}`))
		assert.Error(t, err)
	})
}

func TestValidate(t *testing.T) {
	m, err := monitor.NewEventMonitor([]byte(testSchema))
	require.NoError(t, err)

	t.Run("valid event", func(t *testing.T) {
		ok, violations, err := m.Validate([]byte(`{"transactionReference":"ref-1","processorName":"Redeban Processor"}`))
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, violations)
	})

	t.Run("missing required field", func(t *testing.T) {
		ok, violations, err := m.Validate([]byte(`{"processorName":"Redeban Processor"}`))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NotEmpty(t, violations)
	})

	t.Run("wrong field type", func(t *testing.T) {
		ok, violations, err := m.Validate([]byte(`{"transactionReference":7,"processorName":"x"}`))
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NotEmpty(t, violations)
	})

	t.Run("malformed json errors", func(t *testing.T) {
		_, _, err := m.Validate([]byte(`{`))
		assert.Error(t, err)
	})
}

func TestFormatErrors(t *testing.T) {
	assert.Empty(t, monitor.FormatErrors(nil))
	assert.Equal(t, "validation errors: a; b", monitor.FormatErrors([]string{"a", "b"}))
}
