package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// ProsaAdapter services Prosa (Mexico): charge and capture, local tokens
// only since Prosa exposes no tokenization endpoint.
type ProsaAdapter struct {
	core
}

// NewProsaAdapter creates the Prosa adapter.
func NewProsaAdapter(deps Deps) *ProsaAdapter {
	return &ProsaAdapter{core{
		profile: Profile{
			Variant:          types.ProviderProsa,
			Processor:        types.ProcessorProsa,
			PersistOnTimeout: true,
			LocalTokensOnly:  true,
		},
		deps: deps,
	}}
}

func (a *ProsaAdapter) Name() types.CardProvider { return types.ProviderProsa }

func (a *ProsaAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *ProsaAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia":      req.Token.TransactionReference,
		"afiliacion":      req.Merchant.PublicID,
		"terminal":        req.Processor.TerminalID,
		"token":           req.Token.VaultToken,
		"monto":           req.Amount.Total(),
		"moneda":          req.Amount.Currency,
		"mesesSinInt":     req.Token.DeferredMonths,
		"bancoAdquirente": req.Processor.AcquirerBank,
	}
	return a.call(ctx, opCharge, payload, req.Token.TransactionReference)
}

func (a *ProsaAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia": req.Transaction.TransactionReference,
		"ticket":     req.Transaction.TicketNumber,
		"afiliacion": req.Merchant.PublicID,
		"monto":      captureAmount(req),
		"moneda":     captureCurrency(req),
	}
	return a.call(ctx, opCapture, payload, req.Transaction.TransactionReference)
}

func (a *ProsaAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *ProsaAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *ProsaAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}
