package provider

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cygnus-aran/serverless-card-sub004/internal/gateway"
	"github.com/cygnus-aran/serverless-card-sub004/internal/mapper"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// core is the shared invocation machinery embedded by every adapter. The
// sequence inside call is strict: build request, invoke remote, on timeout
// persist, map error, raise. The persisted payload must be exactly what was
// sent, so nothing here mutates the payload after the call.
type core struct {
	profile Profile
	deps    Deps
}

func (c *core) processor() types.ProcessorName {
	return c.profile.Processor
}

// tokens is the shared tokenization path. Variants without a real token
// gateway synthesize local tokens directly.
func (c *core) tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	if c.profile.LocalTokensOnly {
		return &types.TokenResponse{Token: LocalToken()}, nil
	}
	return c.deps.Tokens.Issue(ctx, req), nil
}

// unsupported is the uniform capability-gating exit.
func (c *core) unsupported() (*types.AurusResponse, error) {
	return nil, types.NewUnsupportedError(c.processor())
}

// call invokes the variant's remote function for the operation and funnels
// every failure through the mapper so callers only observe canonical codes.
func (c *core) call(ctx context.Context, operation string, payload any, reference string) (*types.AurusResponse, error) {
	resp, err := c.invoke(ctx, operation, payload, reference)
	if err != nil {
		code := "unmapped"
		if ae, ok := mapper.AsAurusError(err); ok {
			code = ae.Code
		}
		c.deps.Metrics.InvocationErrors.WithLabelValues(string(c.profile.Variant), code).Inc()
		return nil, err
	}
	return resp, nil
}

func (c *core) invoke(ctx context.Context, operation string, payload any, reference string) (*types.AurusResponse, error) {
	breaker := c.deps.Breaker
	if breaker != nil && !breaker.Allow(string(c.processor())) {
		c.deps.Logger.Warn("circuit open, skipping processor call",
			zap.String("processor", string(c.processor())),
			zap.String("operation", operation))
		return nil, mapper.BuildUnreachableError(c.processor())
	}

	functionName := c.deps.Config.FunctionName(c.profile.Variant, operation)
	budget := c.deps.Config.TimeoutFor(c.profile.Variant)

	callCtx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	start := time.Now()
	raw, err := c.deps.Remote.Invoke(callCtx, functionName, payload)
	c.deps.Metrics.InvocationLatency.
		WithLabelValues(string(c.profile.Variant), operation).
		Observe(time.Since(start).Seconds())

	if err != nil {
		if breaker != nil {
			breaker.RecordFailure(string(c.processor()))
		}
		return nil, c.mapFailure(ctx, err, payload, reference)
	}
	if breaker != nil {
		breaker.RecordSuccess(string(c.processor()))
	}

	var resp types.AurusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return nil, fmt.Errorf("decode %s response: %w", c.profile.Variant, err)
	}
	if resp.TransactionReference == "" {
		resp.TransactionReference = reference
	}
	if resp.Approved() {
		return &resp, nil
	}
	if resp.HasOKCode() {
		// An OK code without a ticket number means the acquirer never
		// confirmed the attempt.
		return nil, mapper.BuildUnreachableError(c.processor())
	}
	// Declines delivered as a well-formed response body funnel through the
	// same canonical path as thrown declines.
	return nil, c.mapFailure(ctx, &types.RemoteError{
		Code:    resp.ResponseCode,
		Message: resp.ResponseText,
		Metadata: types.RemoteErrorMetadata{
			ResponseCode: resp.ResponseCode,
			ResponseText: resp.ResponseText,
		},
	}, payload, reference)
}

// mapFailure applies the shared error-handling policy.
func (c *core) mapFailure(ctx context.Context, err error, payload any, reference string) error {
	if ae, ok := mapper.AsAurusError(err); ok {
		return ae
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return c.timeout(ctx, payload, reference)
	}

	var remote *types.RemoteError
	if errors.As(err, &remote) {
		switch mapper.Classify(remote.Code) {
		case mapper.BandTimeout:
			return c.timeout(ctx, payload, reference)
		case mapper.BandUnreachable:
			return mapper.BuildUnreachableError(c.processor())
		case mapper.BandUnsupported:
			return types.NewUnsupportedError(c.processor())
		case mapper.BandDeclined:
			return mapper.BuildAurusError(remote, c.processor())
		default:
			// Unknown code family: re-raised unchanged.
			return remote
		}
	}
	return err
}

// timeout parks the built request for reconciliation (when the processor's
// profile requires it) and raises the canonical timeout error. A failure to
// park propagates: losing reconciliation data silently would be worse than
// surfacing the secondary fault.
func (c *core) timeout(ctx context.Context, payload any, reference string) error {
	if c.profile.PersistOnTimeout {
		record := types.TimedOutTransaction{
			TransactionReference: reference,
			Processor:            c.processor(),
			Region:               c.deps.Config.Region,
			Payload:              payload,
			CreatedMs:            time.Now().UnixMilli(),
		}
		table := c.deps.Config.TimeoutTable(c.profile.Variant)
		// The request context is likely expired at this point.
		persistCtx := context.WithoutCancel(ctx)
		written, err := c.deps.Store.Put(persistCtx, table, reference, record, gateway.ConditionAttributeNotExists)
		if err != nil {
			return fmt.Errorf("park timed out %s request: %w", c.profile.Variant, err)
		}
		if written {
			c.deps.Metrics.TimeoutsPersisted.WithLabelValues(string(c.profile.Variant)).Inc()
		}
		c.deps.Logger.Warn("processor call timed out, request parked",
			zap.String("processor", string(c.processor())),
			zap.String("transactionReference", reference),
			zap.Bool("written", written))
	} else {
		c.deps.Logger.Warn("processor call timed out",
			zap.String("processor", string(c.processor())),
			zap.String("transactionReference", reference))
	}
	return mapper.BuildTimeoutError(c.processor())
}

// deferredFlag renders the installments marker the processors expect.
func deferredFlag(months int) string {
	if months > 0 {
		return "Y"
	}
	return "N"
}

// captureAmount picks the override amount of a partial capture, falling back
// to the originally approved amount.
func captureAmount(req types.CaptureInput) float64 {
	if req.Amount != nil {
		return req.Amount.Total()
	}
	return req.Transaction.ApprovedAmount
}

// captureCurrency mirrors captureAmount for the currency code.
func captureCurrency(req types.CaptureInput) string {
	if req.Amount != nil && req.Amount.Currency != "" {
		return req.Amount.Currency
	}
	return req.Transaction.Currency
}
