package void_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cygnus-aran/serverless-card-sub004/internal/void"
)

func TestCompileRule(t *testing.T) {
	t.Run("rejects malformed expression", func(t *testing.T) {
		_, err := void.CompileRule(void.RuleConfig{Name: "broken", Expression: "ageDays >="})
		assert.Error(t, err)
	})

	t.Run("rejects non-boolean expression", func(t *testing.T) {
		rule, err := void.CompileRule(void.RuleConfig{Name: "numeric", Expression: "ageDays + 1"})
		require.NoError(t, err)
		_, err = rule.Eligible(7, "credit", true)
		assert.Error(t, err)
	})
}

func TestDirectSweepRule(t *testing.T) {
	rule := void.MustCompileRule(void.DirectSweepRule)

	cases := []struct {
		name    string
		ageDays float64
		allowed bool
		want    bool
	}{
		{"too young", 5.9, true, false},
		{"window start", 6, true, true},
		{"mid window", 7.5, true, true},
		{"window end", 8.9, true, true},
		{"too old", 9, true, false},
		{"processor not allowed", 7, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := rule.Eligible(tc.ageDays, "credit", tc.allowed)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestDeferredSweepRules(t *testing.T) {
	debit := void.MustCompileRule(void.DebitSweepRule)
	credit := void.MustCompileRule(void.CreditSweepRule)

	t.Run("debit window", func(t *testing.T) {
		got, err := debit.Eligible(8, "debit", true)
		require.NoError(t, err)
		assert.True(t, got)

		got, err = debit.Eligible(8, "credit", true)
		require.NoError(t, err)
		assert.False(t, got, "credit cards never match the debit rule")

		got, err = debit.Eligible(11, "debit", true)
		require.NoError(t, err)
		assert.False(t, got)
	})

	t.Run("credit window", func(t *testing.T) {
		got, err := credit.Eligible(29, "credit", true)
		require.NoError(t, err)
		assert.True(t, got)

		got, err = credit.Eligible(8, "credit", true)
		require.NoError(t, err)
		assert.False(t, got, "credit holds wait a full settlement cycle")

		got, err = credit.Eligible(29, "debit", true)
		require.NoError(t, err)
		assert.False(t, got)
	})
}
