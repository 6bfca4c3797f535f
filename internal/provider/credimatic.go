package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// CredimaticAdapter services Credimatic (Ecuador). Full lifecycle support;
// like the in-house acquirer it reports its own processor code in error
// metadata.
type CredimaticAdapter struct {
	core
}

// NewCredimaticAdapter creates the Credimatic adapter.
func NewCredimaticAdapter(deps Deps) *CredimaticAdapter {
	return &CredimaticAdapter{core{
		profile: Profile{
			Variant:          types.ProviderCredimatic,
			Processor:        types.ProcessorCredimatic,
			PersistOnTimeout: true,
		},
		deps: deps,
	}}
}

func (a *CredimaticAdapter) Name() types.CardProvider { return types.ProviderCredimatic }

func (a *CredimaticAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *CredimaticAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opCharge, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *CredimaticAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opPreAuthorize, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *CredimaticAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia": req.Transaction.TransactionReference,
		"ticket":     req.Transaction.TicketNumber,
		"comercio":   req.Merchant.PublicID,
		"terminal":   req.Processor.TerminalID,
		"valorTotal": captureAmount(req),
		"moneda":     captureCurrency(req),
	}
	return a.call(ctx, opCapture, payload, req.Transaction.TransactionReference)
}

func (a *CredimaticAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia":   txn.TransactionReference,
		"autorizacion": txn.ApprovalCode,
		"comercio":     auth.MerchantID,
		"valorTotal":   amount.Total(),
		"moneda":       amount.Currency,
	}
	return a.call(ctx, opReAuthorize, payload, txn.TransactionReference)
}

func (a *CredimaticAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia": req.Token.TransactionReference,
		"comercio":   auth.MerchantID,
		"bin":        req.Token.Bin,
		"ultimos":    req.Token.LastFourDigits,
		"valorTotal": 0,
		"moneda":     req.Amount.Currency,
	}
	return a.call(ctx, opValidateAccount, payload, req.Token.TransactionReference)
}

func (a *CredimaticAdapter) transactionRequest(req types.ChargeInput) map[string]any {
	return map[string]any{
		"referencia":    req.Token.TransactionReference,
		"comercio":      req.Merchant.PublicID,
		"terminal":      req.Processor.TerminalID,
		"token":         req.Token.VaultToken,
		"diferido":      deferredFlag(req.Token.DeferredMonths),
		"meses":         req.Token.DeferredMonths,
		"baseImponible": req.Amount.SubtotalTaxable,
		"base0":         req.Amount.SubtotalNonTaxable,
		"iva":           req.Amount.VAT,
		"valorTotal":    req.Amount.Total(),
		"moneda":        req.Amount.Currency,
	}
}
