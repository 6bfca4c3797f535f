package provider

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cygnus-aran/serverless-card-sub004/internal/config"
	"github.com/cygnus-aran/serverless-card-sub004/internal/gateway"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// TokenIssuer is the single shared tokenization capability. Adapters depend
// on it instead of on each other; the dependency direction stays adapters to
// shared services.
type TokenIssuer struct {
	remote gateway.RemoteInvoker
	cfg    config.Config
	logger *zap.Logger
}

// NewTokenIssuer creates the shared issuer.
func NewTokenIssuer(remote gateway.RemoteInvoker, cfg config.Config, logger *zap.Logger) *TokenIssuer {
	return &TokenIssuer{remote: remote, cfg: cfg, logger: logger}
}

// Issue requests a token from the token gateway, falling back to a locally
// generated opaque token on any failure. Tokenization never fails the flow.
func (t *TokenIssuer) Issue(ctx context.Context, req types.TokenRequest) *types.TokenResponse {
	raw, err := t.remote.Invoke(ctx, t.cfg.TokenFunctionName(), req)
	if err == nil {
		var resp types.TokenResponse
		if jsonErr := json.Unmarshal(raw, &resp); jsonErr == nil && resp.Token != "" {
			return &resp
		}
	}
	t.logger.Warn("token gateway unavailable, issuing local token",
		zap.String("merchant", req.Merchant.PublicID), zap.Error(err))
	return &types.TokenResponse{Token: LocalToken()}
}

// LocalToken generates the fallback opaque token shared across adapters.
func LocalToken() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
