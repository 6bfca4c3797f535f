// Package void implements the automatic-void sweeps for stale
// pre-authorizations: acquirers on the eligible list auto-expire holds that
// were never captured, so the engine voids them explicitly before the
// acquirer does it for free and the books stop matching.
package void

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cygnus-aran/serverless-card-sub004/internal/config"
	"github.com/cygnus-aran/serverless-card-sub004/internal/gateway"
	"github.com/cygnus-aran/serverless-card-sub004/internal/metrics"
	"github.com/cygnus-aran/serverless-card-sub004/internal/monitor"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

const dayMs = 24 * 60 * 60 * 1000

// Event is the queue message a deferred sweep publishes per eligible hold.
type Event struct {
	TransactionID        string              `json:"transactionId"`
	TransactionReference string              `json:"transactionReference"`
	MerchantID           string              `json:"merchantId"`
	ProcessorName        types.ProcessorName `json:"processorName"`
	CardType             types.CardType      `json:"cardType,omitempty"`
	ApprovedAmount       float64             `json:"approvedTransactionAmount"`
	Currency             string              `json:"currencyCode"`
	TicketNumber         string              `json:"ticketNumber,omitempty"`
	ApprovalCode         string              `json:"approvalCode,omitempty"`
	CreatedMs            int64               `json:"created"`
}

// EventSchema is the contract void events are validated against before any
// business logic runs.
const EventSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"title": "AutomaticVoidEvent",
	"type": "object",
	"required": ["transactionId", "transactionReference", "merchantId", "processorName", "approvedTransactionAmount", "currencyCode"],
	"properties": {
		"transactionId": {"type": "string", "minLength": 1},
		"transactionReference": {"type": "string", "minLength": 1},
		"merchantId": {"type": "string", "minLength": 1},
		"processorName": {"type": "string", "minLength": 1},
		"cardType": {"type": "string", "enum": ["credit", "debit"]},
		"approvedTransactionAmount": {"type": "number", "minimum": 0},
		"currencyCode": {"type": "string", "minLength": 3, "maxLength": 3},
		"ticketNumber": {"type": "string"},
		"approvalCode": {"type": "string"},
		"created": {"type": "integer"}
	},
	"additionalProperties": true
}`

// Service runs the sweeps and processes individual void events.
type Service struct {
	cfg     config.Config
	store   gateway.KeyValueStore
	queue   gateway.QueuePublisher
	guard   Guard
	exec    Executor
	events  *monitor.EventMonitor
	logger  *zap.Logger
	metrics *metrics.Metrics

	direct *Rule
	debit  *Rule
	credit *Rule

	// now is replaceable for tests.
	now func() time.Time
}

// NewService wires the void service. It compiles the sweep rules and the
// event schema once.
func NewService(cfg config.Config, store gateway.KeyValueStore, queue gateway.QueuePublisher, guard Guard, exec Executor, logger *zap.Logger, m *metrics.Metrics) (*Service, error) {
	events, err := monitor.NewEventMonitor([]byte(EventSchema))
	if err != nil {
		return nil, err
	}
	direct, err := CompileRule(DirectSweepRule)
	if err != nil {
		return nil, err
	}
	debit, err := CompileRule(DebitSweepRule)
	if err != nil {
		return nil, err
	}
	credit, err := CompileRule(CreditSweepRule)
	if err != nil {
		return nil, err
	}
	return &Service{
		cfg:     cfg,
		store:   store,
		queue:   queue,
		guard:   guard,
		exec:    exec,
		events:  events,
		logger:  logger,
		metrics: m,
		direct:  direct,
		debit:   debit,
		credit:  credit,
		now:     time.Now,
	}, nil
}

// Sweep voids stale approved pre-authorizations directly. One candidate's
// failure never aborts the batch; every decision lands in the report.
func (s *Service) Sweep(ctx context.Context) (*BatchReport, error) {
	report := NewBatchReport(s.direct.Name())
	candidates, err := s.candidates(ctx, 9, 6)
	if err != nil {
		return report.Finish(), err
	}
	for _, tx := range candidates {
		res := s.sweepOne(ctx, tx, s.direct)
		report.Add(res)
		s.metrics.VoidOutcomes.WithLabelValues(string(res.Outcome)).Inc()
	}
	s.logSweep(report.Finish())
	return report, nil
}

// SweepDeferred selects stale approved pre-authorizations for the given card
// type and publishes one void event per eligible hold instead of voiding
// inline. Debit holds are swept after a week, credit holds after a month.
func (s *Service) SweepDeferred(ctx context.Context, cardType types.CardType) (*BatchReport, error) {
	rule := s.debit
	var oldest, newest int64 = 10, 7
	if cardType == types.CardTypeCredit {
		rule = s.credit
		oldest, newest = 31, 28
	}
	report := NewBatchReport(rule.Name())
	candidates, err := s.candidates(ctx, oldest, newest)
	if err != nil {
		return report.Finish(), err
	}
	for _, tx := range candidates {
		res := s.queueOne(ctx, tx, rule)
		report.Add(res)
		s.metrics.VoidOutcomes.WithLabelValues(string(res.Outcome)).Inc()
	}
	s.logSweep(report.Finish())
	return report, nil
}

// ProcessAutomaticVoid handles one void event from the queue. It reports
// whether the event is finished: true means done (voided or legitimately
// skipped), false means the event should be retried or alerted on.
func (s *Service) ProcessAutomaticVoid(ctx context.Context, raw []byte) bool {
	valid, violations, err := s.events.Validate(raw)
	if err != nil {
		s.logger.Error("void event validation errored", zap.Error(err))
		return false
	}
	if !valid {
		s.logger.Error("void event rejected",
			zap.String("violations", monitor.FormatErrors(violations)))
		s.metrics.VoidOutcomes.WithLabelValues(string(OutcomeFailed)).Inc()
		return false
	}

	var event Event
	if err := json.Unmarshal(raw, &event); err != nil {
		s.logger.Error("void event unmarshal failed", zap.Error(err))
		return false
	}

	claimed, err := s.guard.Acquire(ctx, event.TransactionReference)
	if err != nil {
		s.logger.Error("void guard unavailable",
			zap.String("transactionReference", event.TransactionReference), zap.Error(err))
		return false
	}
	if !claimed {
		s.logger.Info("void already claimed, skipping",
			zap.String("transactionReference", event.TransactionReference))
		s.metrics.VoidOutcomes.WithLabelValues(string(OutcomeSkipped)).Inc()
		return true
	}

	settled, err := s.settled(ctx, event.TransactionReference)
	if err != nil {
		s.logger.Error("settlement lookup failed",
			zap.String("transactionReference", event.TransactionReference), zap.Error(err))
		return false
	}
	if settled {
		s.logger.Info("hold already settled, skipping void",
			zap.String("transactionReference", event.TransactionReference))
		s.metrics.VoidOutcomes.WithLabelValues(string(OutcomeSkipped)).Inc()
		return true
	}

	tx := types.Transaction{
		TransactionID:        event.TransactionID,
		TransactionReference: event.TransactionReference,
		MerchantID:           event.MerchantID,
		ProcessorName:        event.ProcessorName,
		CardType:             event.CardType,
		ApprovedAmount:       event.ApprovedAmount,
		Currency:             event.Currency,
		TicketNumber:         event.TicketNumber,
		ApprovalCode:         event.ApprovalCode,
		CreatedMs:            event.CreatedMs,
	}
	if err := s.exec.Void(ctx, tx); err != nil {
		s.logger.Error("automatic void failed",
			zap.String("transactionReference", event.TransactionReference), zap.Error(err))
		s.metrics.VoidOutcomes.WithLabelValues(string(OutcomeFailed)).Inc()
		s.NotifyAutomaticVoidFailed(ctx, event, err)
		return false
	}
	s.metrics.VoidOutcomes.WithLabelValues(string(OutcomeVoided)).Inc()
	return true
}

// NotifyAutomaticVoidFailed raises an alert for a hold the engine could not
// void. Best effort: a dropped alert is logged, never propagated.
func (s *Service) NotifyAutomaticVoidFailed(ctx context.Context, event Event, cause error) {
	alert := map[string]any{
		"transactionId":        event.TransactionID,
		"transactionReference": event.TransactionReference,
		"merchantId":           event.MerchantID,
		"processorName":        event.ProcessorName,
		"reason":               cause.Error(),
		"raisedAt":             s.now().UnixMilli(),
	}
	if _, err := s.queue.Put(ctx, s.cfg.AlertTopic, event.TransactionReference, alert); err != nil {
		s.logger.Error("void failure alert not published",
			zap.String("transactionReference", event.TransactionReference), zap.Error(err))
	}
}

// candidates loads approved pre-authorizations created between oldestDays and
// newestDays ago.
func (s *Service) candidates(ctx context.Context, oldestDays, newestDays int64) ([]types.Transaction, error) {
	nowMs := s.now().UnixMilli()
	fromMs := nowMs - oldestDays*dayMs
	toMs := nowMs - newestDays*dayMs
	docs, err := s.store.QueryByTypeAndCreated(ctx, s.cfg.TransactionTable,
		gateway.IndexTypeAndCreated, string(types.TransactionPreAuthorization), fromMs, toMs)
	if err != nil {
		return nil, fmt.Errorf("load void candidates: %w", err)
	}
	out := make([]types.Transaction, 0, len(docs))
	for _, doc := range docs {
		var tx types.Transaction
		if err := json.Unmarshal(doc, &tx); err != nil {
			s.logger.Warn("skipping unreadable candidate", zap.Error(err))
			continue
		}
		if tx.TransactionStatus != types.StatusApproval {
			continue
		}
		out = append(out, tx)
	}
	return out, nil
}

// sweepOne decides and executes the direct void for one candidate.
func (s *Service) sweepOne(ctx context.Context, tx types.Transaction, rule *Rule) Result {
	res := Result{
		TransactionReference: tx.TransactionReference,
		Processor:            string(tx.ProcessorName),
	}
	eligible, reason, err := s.eligible(ctx, tx, rule)
	if err != nil {
		res.Outcome, res.Reason, res.Err = OutcomeFailed, reason, err
		return res
	}
	if !eligible {
		res.Outcome, res.Reason = OutcomeSkipped, reason
		return res
	}
	if err := s.exec.Void(ctx, tx); err != nil {
		s.logger.Error("sweep void failed",
			zap.String("transactionReference", tx.TransactionReference),
			zap.String("processor", string(tx.ProcessorName)), zap.Error(err))
		res.Outcome, res.Reason, res.Err = OutcomeFailed, "void-error", err
		return res
	}
	res.Outcome = OutcomeVoided
	return res
}

// queueOne decides and publishes the deferred void event for one candidate.
func (s *Service) queueOne(ctx context.Context, tx types.Transaction, rule *Rule) Result {
	res := Result{
		TransactionReference: tx.TransactionReference,
		Processor:            string(tx.ProcessorName),
	}
	eligible, reason, err := s.eligible(ctx, tx, rule)
	if err != nil {
		res.Outcome, res.Reason, res.Err = OutcomeFailed, reason, err
		return res
	}
	if !eligible {
		res.Outcome, res.Reason = OutcomeSkipped, reason
		return res
	}
	event := Event{
		TransactionID:        tx.TransactionID,
		TransactionReference: tx.TransactionReference,
		MerchantID:           tx.MerchantID,
		ProcessorName:        tx.ProcessorName,
		CardType:             tx.CardType,
		ApprovedAmount:       tx.ApprovedAmount,
		Currency:             tx.Currency,
		TicketNumber:         tx.TicketNumber,
		ApprovalCode:         tx.ApprovalCode,
		CreatedMs:            tx.CreatedMs,
	}
	if _, err := s.queue.Put(ctx, s.cfg.VoidTopic, tx.TransactionReference, event); err != nil {
		res.Outcome, res.Reason, res.Err = OutcomeFailed, "publish-error", err
		return res
	}
	res.Outcome = OutcomeQueued
	return res
}

// eligible applies the sweep rule and the settlement check. The returned
// reason names why a candidate was excluded.
func (s *Service) eligible(ctx context.Context, tx types.Transaction, rule *Rule) (bool, string, error) {
	ageDays := float64(s.now().UnixMilli()-tx.CreatedMs) / float64(dayMs)
	ok, err := rule.Eligible(ageDays, string(tx.CardType), s.cfg.VoidEligible(tx.ProcessorName))
	if err != nil {
		return false, "rule-error", err
	}
	if !ok {
		return false, rule.Name(), nil
	}
	settled, err := s.settled(ctx, tx.TransactionReference)
	if err != nil {
		return false, "settlement-lookup-error", err
	}
	if settled {
		return false, "already-settled", nil
	}
	return true, "", nil
}

// settled reports whether the reference already has a capture or void on
// record. Voiding a settled hold would reverse money the merchant earned.
func (s *Service) settled(ctx context.Context, reference string) (bool, error) {
	docs, err := s.store.Query(ctx, s.cfg.TransactionTable,
		gateway.IndexTransactionReference, reference)
	if err != nil {
		return false, err
	}
	for _, doc := range docs {
		var tx types.Transaction
		if err := json.Unmarshal(doc, &tx); err != nil {
			continue
		}
		switch tx.TransactionType {
		case types.TransactionCapture, types.TransactionVoid:
			return true, nil
		}
	}
	return false, nil
}

func (s *Service) logSweep(report *BatchReport) {
	s.logger.Info("automatic void sweep finished",
		zap.String("rule", report.Rule),
		zap.Int("examined", report.Examined),
		zap.Int("voided", report.Voided),
		zap.Int("queued", report.Queued),
		zap.Int("skipped", report.Skipped),
		zap.Int("failed", report.Failed),
		zap.Duration("took", report.Duration()))
}
