package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// RedebanAdapter services Redeban (Colombia): charge and capture only.
type RedebanAdapter struct {
	core
}

// NewRedebanAdapter creates the Redeban adapter.
func NewRedebanAdapter(deps Deps) *RedebanAdapter {
	return &RedebanAdapter{core{
		profile: Profile{
			Variant:          types.ProviderRedeban,
			Processor:        types.ProcessorRedeban,
			PersistOnTimeout: true,
		},
		deps: deps,
	}}
}

func (a *RedebanAdapter) Name() types.CardProvider { return types.ProviderRedeban }

func (a *RedebanAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *RedebanAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia":     req.Token.TransactionReference,
		"codigoComercio": req.Merchant.PublicID,
		"terminal":       req.Processor.TerminalID,
		"token":          req.Token.VaultToken,
		"cuotas":         req.Token.DeferredMonths,
		"baseDevolucion": req.Amount.SubtotalNonTaxable,
		"baseGravable":   req.Amount.SubtotalTaxable,
		"iva":            req.Amount.VAT,
		"valorTotal":     req.Amount.Total(),
		"moneda":         req.Amount.Currency,
	}
	return a.call(ctx, opCharge, payload, req.Token.TransactionReference)
}

func (a *RedebanAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia":     req.Transaction.TransactionReference,
		"numeroRecibo":   req.Transaction.TicketNumber,
		"codigoComercio": req.Merchant.PublicID,
		"valorTotal":     captureAmount(req),
		"moneda":         captureCurrency(req),
	}
	return a.call(ctx, opCapture, payload, req.Transaction.TransactionReference)
}

func (a *RedebanAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *RedebanAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *RedebanAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}
