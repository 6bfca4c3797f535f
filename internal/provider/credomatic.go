package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// CredomaticAdapter services Credomatic (Central America): charge only,
// local tokens only.
type CredomaticAdapter struct {
	core
}

// NewCredomaticAdapter creates the Credomatic adapter.
func NewCredomaticAdapter(deps Deps) *CredomaticAdapter {
	return &CredomaticAdapter{core{
		profile: Profile{
			Variant:          types.ProviderCredomatic,
			Processor:        types.ProcessorCredomatic,
			PersistOnTimeout: true,
			LocalTokensOnly:  true,
		},
		deps: deps,
	}}
}

func (a *CredomaticAdapter) Name() types.CardProvider { return types.ProviderCredomatic }

func (a *CredomaticAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *CredomaticAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia": req.Token.TransactionReference,
		"comercio":   req.Merchant.PublicID,
		"terminal":   req.Processor.TerminalID,
		"token":      req.Token.VaultToken,
		"monto":      req.Amount.Total(),
		"impuesto":   req.Amount.VAT,
		"moneda":     req.Amount.Currency,
		"pais":       req.Merchant.Country,
	}
	return a.call(ctx, opCharge, payload, req.Token.TransactionReference)
}

func (a *CredomaticAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *CredomaticAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *CredomaticAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *CredomaticAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}
