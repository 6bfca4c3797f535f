package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// DatafastAdapter services Datafast (Ecuador): charge, pre-auth and account
// validation, no capture of holds on this rail. Timed-out requests are not
// parked; Datafast replays ambiguous attempts on its own side.
type DatafastAdapter struct {
	core
}

// NewDatafastAdapter creates the Datafast adapter.
func NewDatafastAdapter(deps Deps) *DatafastAdapter {
	return &DatafastAdapter{core{
		profile: Profile{
			Variant:          types.ProviderDatafast,
			Processor:        types.ProcessorDatafast,
			PersistOnTimeout: false,
		},
		deps: deps,
	}}
}

func (a *DatafastAdapter) Name() types.CardProvider { return types.ProviderDatafast }

func (a *DatafastAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *DatafastAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opCharge, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *DatafastAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opPreAuthorize, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *DatafastAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := a.transactionRequest(req)
	payload["valorTotal"] = 0
	payload["validacion"] = true
	return a.call(ctx, opValidateAccount, payload, req.Token.TransactionReference)
}

func (a *DatafastAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *DatafastAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *DatafastAdapter) transactionRequest(req types.ChargeInput) map[string]any {
	payload := map[string]any{
		"referencia":    req.Token.TransactionReference,
		"idComercio":    req.Merchant.PublicID,
		"terminal":      req.Processor.TerminalID,
		"token":         req.Token.VaultToken,
		"baseImponible": req.Amount.SubtotalTaxable,
		"base0":         req.Amount.SubtotalNonTaxable,
		"iva":           req.Amount.VAT,
		"valorTotal":    req.Amount.Total(),
		"moneda":        req.Amount.Currency,
		"diferido":      deferredFlag(req.Token.DeferredMonths),
		"meses":         req.Token.DeferredMonths,
	}
	if req.Token.ThreeDS != nil {
		payload["3ds"] = req.Token.ThreeDS
	}
	return payload
}
