package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// NiubizAdapter services Niubiz (Peru): charge and capture. Per acquirer
// SLA, timed-out requests are not parked; reconciliation runs on the
// acquirer's own settlement reports.
type NiubizAdapter struct {
	core
}

// NewNiubizAdapter creates the Niubiz adapter.
func NewNiubizAdapter(deps Deps) *NiubizAdapter {
	return &NiubizAdapter{core{
		profile: Profile{
			Variant:          types.ProviderNiubiz,
			Processor:        types.ProcessorNiubiz,
			PersistOnTimeout: false,
		},
		deps: deps,
	}}
}

func (a *NiubizAdapter) Name() types.CardProvider { return types.ProviderNiubiz }

func (a *NiubizAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *NiubizAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia": req.Token.TransactionReference,
		"comercio":   req.Merchant.PublicID,
		"terminal":   req.Processor.TerminalID,
		"token":      req.Token.VaultToken,
		"importe":    req.Amount.Total(),
		"igv":        req.Amount.VAT,
		"moneda":     req.Amount.Currency,
		"cuotas":     req.Token.DeferredMonths,
		"titular":    req.Token.CardHolderName,
		"tarjetaBin": req.Token.Bin,
		"tarjetaFin": req.Token.LastFourDigits,
	}
	return a.call(ctx, opCharge, payload, req.Token.TransactionReference)
}

func (a *NiubizAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia": req.Transaction.TransactionReference,
		"ticket":     req.Transaction.TicketNumber,
		"comercio":   req.Merchant.PublicID,
		"importe":    captureAmount(req),
		"moneda":     captureCurrency(req),
	}
	return a.call(ctx, opCapture, payload, req.Transaction.TransactionReference)
}

func (a *NiubizAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *NiubizAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *NiubizAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}
