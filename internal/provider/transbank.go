package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// TransbankAdapter services Transbank (Chile): charge, capture and pre-auth.
type TransbankAdapter struct {
	core
}

// NewTransbankAdapter creates the Transbank adapter.
func NewTransbankAdapter(deps Deps) *TransbankAdapter {
	return &TransbankAdapter{core{
		profile: Profile{
			Variant:          types.ProviderTransbank,
			Processor:        types.ProcessorTransbank,
			PersistOnTimeout: true,
		},
		deps: deps,
	}}
}

func (a *TransbankAdapter) Name() types.CardProvider { return types.ProviderTransbank }

func (a *TransbankAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *TransbankAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opCharge, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *TransbankAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opPreAuthorize, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *TransbankAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia":  req.Transaction.TransactionReference,
		"ticket":      req.Transaction.TicketNumber,
		"codComercio": req.Merchant.PublicID,
		"monto":       captureAmount(req),
		"moneda":      captureCurrency(req),
	}
	return a.call(ctx, opCapture, payload, req.Transaction.TransactionReference)
}

func (a *TransbankAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *TransbankAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *TransbankAdapter) transactionRequest(req types.ChargeInput) map[string]any {
	return map[string]any{
		"referencia":  req.Token.TransactionReference,
		"codComercio": req.Merchant.PublicID,
		"terminal":    req.Processor.TerminalID,
		"token":       req.Token.VaultToken,
		"monto":       req.Amount.Total(),
		"neto":        req.Amount.SubtotalTaxable,
		"exento":      req.Amount.SubtotalNonTaxable,
		"iva":         req.Amount.VAT,
		"moneda":      req.Amount.Currency,
		"cuotas":      req.Token.DeferredMonths,
	}
}
