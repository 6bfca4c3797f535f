package void

import (
	"fmt"

	"github.com/Knetic/govaluate"
)

// RuleConfig pairs a rule name with a boolean eligibility expression. The
// expression sees three parameters: ageDays (float), cardType (string) and
// processorAllowed (bool).
type RuleConfig struct {
	Name       string
	Expression string
}

// Rule windows for stale pre-authorization sweeps. Direct sweeps void holds
// aged 6 to 8 days. The deferred (queue) sweeps split by card type: debit
// holds expire fast, credit holds are given a full settlement cycle.
var (
	DirectSweepRule = RuleConfig{
		Name:       "direct-preauth-window",
		Expression: "ageDays >= 6 && ageDays < 9 && processorAllowed",
	}
	DebitSweepRule = RuleConfig{
		Name:       "debit-preauth-window",
		Expression: "cardType == 'debit' && ageDays >= 7 && ageDays < 10 && processorAllowed",
	}
	CreditSweepRule = RuleConfig{
		Name:       "credit-preauth-window",
		Expression: "cardType == 'credit' && ageDays >= 28 && ageDays < 31 && processorAllowed",
	}
)

// Rule is a compiled eligibility rule.
type Rule struct {
	name string
	expr *govaluate.EvaluableExpression
}

// CompileRule parses the rule expression once, at wiring time.
func CompileRule(cfg RuleConfig) (*Rule, error) {
	expr, err := govaluate.NewEvaluableExpression(cfg.Expression)
	if err != nil {
		return nil, fmt.Errorf("compile rule %s: %w", cfg.Name, err)
	}
	return &Rule{name: cfg.Name, expr: expr}, nil
}

// MustCompileRule is CompileRule for the package-level rule constants.
func MustCompileRule(cfg RuleConfig) *Rule {
	rule, err := CompileRule(cfg)
	if err != nil {
		panic(err)
	}
	return rule
}

// Name identifies the rule in reports and logs.
func (r *Rule) Name() string { return r.name }

// Eligible evaluates the rule against a candidate transaction.
func (r *Rule) Eligible(ageDays float64, cardType string, processorAllowed bool) (bool, error) {
	result, err := r.expr.Evaluate(map[string]any{
		"ageDays":          ageDays,
		"cardType":         cardType,
		"processorAllowed": processorAllowed,
	})
	if err != nil {
		return false, fmt.Errorf("evaluate rule %s: %w", r.name, err)
	}
	ok, isBool := result.(bool)
	if !isBool {
		return false, fmt.Errorf("rule %s is not boolean", r.name)
	}
	return ok, nil
}
