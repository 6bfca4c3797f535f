package void

import "time"

// Outcome classifies what the sweep did with a single candidate.
type Outcome string

const (
	OutcomeVoided  Outcome = "voided"
	OutcomeQueued  Outcome = "queued"
	OutcomeSkipped Outcome = "skipped"
	OutcomeFailed  Outcome = "failed"
)

// Result records the decision taken for one candidate transaction.
type Result struct {
	TransactionReference string
	Processor            string
	Outcome              Outcome
	Reason               string
	Err                  error
}

// BatchReport summarizes one sweep run: how many holds were examined and how
// each ended up, with failures broken down by reason.
type BatchReport struct {
	Rule            string
	Examined        int
	Voided          int
	Queued          int
	Skipped         int
	Failed          int
	ReasonBreakdown map[string]int
	ProcessorUsage  map[string]int
	StartedAt       time.Time
	FinishedAt      time.Time
	Results         []Result
}

// NewBatchReport starts an empty report for a sweep under the named rule.
func NewBatchReport(rule string) *BatchReport {
	return &BatchReport{
		Rule:            rule,
		ReasonBreakdown: make(map[string]int),
		ProcessorUsage:  make(map[string]int),
		StartedAt:       time.Now(),
	}
}

// Add folds one candidate's result into the totals.
func (r *BatchReport) Add(res Result) {
	r.Examined++
	r.Results = append(r.Results, res)
	if res.Processor != "" {
		r.ProcessorUsage[res.Processor]++
	}
	switch res.Outcome {
	case OutcomeVoided:
		r.Voided++
	case OutcomeQueued:
		r.Queued++
	case OutcomeSkipped:
		r.Skipped++
	case OutcomeFailed:
		r.Failed++
	}
	if res.Reason != "" {
		r.ReasonBreakdown[res.Reason]++
	}
}

// Finish stamps the end of the sweep.
func (r *BatchReport) Finish() *BatchReport {
	r.FinishedAt = time.Now()
	return r
}

// Duration is the wall time the sweep took.
func (r *BatchReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
