// Package gateway holds the engine's external collaborators: the remote
// function invoker, the key-value storage used to park timed-out requests,
// and the queue publisher.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// RemoteInvoker invokes a named remote function with a JSON payload and
// returns its raw result. Failures surface as *types.RemoteError when the
// downstream reported a structured error, or as a wrapped transport error.
type RemoteInvoker interface {
	Invoke(ctx context.Context, functionName string, payload any) (json.RawMessage, error)
}

// HTTPInvoker invokes functions over a per-stage HTTP endpoint,
// POST <base>/<functionName> with a JSON body.
type HTTPInvoker struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTPInvoker creates an invoker against the given base URL. The client's
// own timeout stays generous; per-call budgets come from the caller context.
func NewHTTPInvoker(baseURL string, client *http.Client, logger *zap.Logger) *HTTPInvoker {
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}
	return &HTTPInvoker{baseURL: baseURL, client: client, logger: logger}
}

// Invoke posts the payload to the named function and returns the response
// body. A structured downstream error body is decoded into *types.RemoteError
// so the mapper can classify it.
func (h *HTTPInvoker) Invoke(ctx context.Context, functionName string, payload any) (json.RawMessage, error) {
	tracer := otel.Tracer("gateway")
	ctx, span := tracer.Start(ctx, "RemoteInvoker.Invoke")
	span.SetAttributes(attribute.String("function.name", functionName))
	defer span.End()

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload for %s: %w", functionName, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/"+functionName, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", functionName, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("invoke %s: %w", functionName, context.DeadlineExceeded)
		}
		h.logger.Warn("remote invocation transport failure",
			zap.String("function", functionName), zap.Error(err))
		return nil, &types.RemoteError{Code: "012", Message: types.MessageUnreachable}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response from %s: %w", functionName, err)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return respBody, nil
	}

	if resp.StatusCode >= http.StatusInternalServerError {
		// Runtime-level failure, the processor itself was never reached.
		h.logger.Warn("remote invocation runtime failure",
			zap.String("function", functionName), zap.Int("status", resp.StatusCode))
		return nil, &types.RemoteError{Code: "012", Message: types.MessageUnreachable}
	}

	var remoteErr types.RemoteError
	if err := json.Unmarshal(respBody, &remoteErr); err == nil && remoteErr.Code != "" {
		return nil, &remoteErr
	}
	return nil, &types.RemoteError{
		Code:    "E500",
		Message: fmt.Sprintf("function %s rejected request with HTTP %d", functionName, resp.StatusCode),
	}
}
