package provider

import (
	"context"
	"fmt"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// AurusAdapter services the legacy Aurus gateway: full charge, capture,
// pre-auth and re-auth lifecycle, no account validation.
type AurusAdapter struct {
	core
}

// NewAurusAdapter creates the Aurus adapter.
func NewAurusAdapter(deps Deps) *AurusAdapter {
	return &AurusAdapter{core{
		profile: Profile{
			Variant:          types.ProviderAurus,
			Processor:        types.ProcessorAurus,
			PersistOnTimeout: true,
		},
		deps: deps,
	}}
}

func (a *AurusAdapter) Name() types.CardProvider { return types.ProviderAurus }

func (a *AurusAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *AurusAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opCharge, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *AurusAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opPreAuthorize, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *AurusAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"ticket_number":         req.Transaction.TicketNumber,
		"transaction_reference": req.Transaction.TransactionReference,
		"merchant_identifier":   req.Merchant.PublicID,
		"transaction_amount": map[string]any{
			"Total_amount": fmt.Sprintf("%.2f", captureAmount(req)),
			"Currency":     captureCurrency(req),
		},
	}
	return a.call(ctx, opCapture, payload, req.Transaction.TransactionReference)
}

func (a *AurusAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	payload := map[string]any{
		"ticket_number":         txn.TicketNumber,
		"transaction_reference": txn.TransactionReference,
		"merchant_identifier":   auth.MerchantID,
		"transaction_amount": map[string]any{
			"Total_amount": fmt.Sprintf("%.2f", amount.Total()),
			"Currency":     amount.Currency,
		},
	}
	return a.call(ctx, opReAuthorize, payload, txn.TransactionReference)
}

func (a *AurusAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

// transactionRequest renders the Aurus transaction envelope. Aurus takes the
// full tax breakdown as stringified amounts and a language indicator.
func (a *AurusAdapter) transactionRequest(req types.ChargeInput) map[string]any {
	return map[string]any{
		"transaction_reference": req.Token.TransactionReference,
		"merchant_identifier":   req.Merchant.PublicID,
		"language_indicator":    "es",
		"transaction_token":     req.Token.VaultToken,
		"deferred_payment":      deferredFlag(req.Token.DeferredMonths),
		"months":                req.Token.DeferredMonths,
		"transaction_amount": map[string]any{
			"Subtotal_IVA":  fmt.Sprintf("%.2f", req.Amount.SubtotalTaxable),
			"Subtotal_IVA0": fmt.Sprintf("%.2f", req.Amount.SubtotalNonTaxable),
			"IVA":           fmt.Sprintf("%.2f", req.Amount.VAT),
			"Total_amount":  fmt.Sprintf("%.2f", req.Amount.Total()),
			"Currency":      req.Amount.Currency,
		},
	}
}
