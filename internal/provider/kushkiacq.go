package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// KushkiAcqAdapter services the in-house acquiring rails: the only variant
// besides Credimatic supporting the complete authorize/capture/reauthorize/
// validate lifecycle. Its errors embed an acquirer processor code that the
// mapper preserves over the generic response code.
type KushkiAcqAdapter struct {
	core
}

// NewKushkiAcqAdapter creates the acquirer adapter.
func NewKushkiAcqAdapter(deps Deps) *KushkiAcqAdapter {
	return &KushkiAcqAdapter{core{
		profile: Profile{
			Variant:          types.ProviderKushkiAcq,
			Processor:        types.ProcessorKushkiAcq,
			PersistOnTimeout: true,
		},
		deps: deps,
	}}
}

func (a *KushkiAcqAdapter) Name() types.CardProvider { return types.ProviderKushkiAcq }

func (a *KushkiAcqAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *KushkiAcqAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opCharge, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *KushkiAcqAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.call(ctx, opPreAuthorize, a.transactionRequest(req), req.Token.TransactionReference)
}

func (a *KushkiAcqAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"transactionReference": req.Transaction.TransactionReference,
		"ticketNumber":         req.Transaction.TicketNumber,
		"merchantId":           req.Merchant.PublicID,
		"terminalId":           req.Processor.TerminalID,
		"amount": map[string]any{
			"total":    captureAmount(req),
			"currency": captureCurrency(req),
		},
	}
	return a.call(ctx, opCapture, payload, req.Transaction.TransactionReference)
}

func (a *KushkiAcqAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	payload := map[string]any{
		"transactionReference": txn.TransactionReference,
		"approvalCode":         txn.ApprovalCode,
		"merchantId":           auth.MerchantID,
		"amount": map[string]any{
			"total":    amount.Total(),
			"currency": amount.Currency,
		},
	}
	return a.call(ctx, opReAuthorize, payload, txn.TransactionReference)
}

func (a *KushkiAcqAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"transactionReference": req.Token.TransactionReference,
		"merchantId":           auth.MerchantID,
		"card": map[string]any{
			"bin":            req.Token.Bin,
			"lastFourDigits": req.Token.LastFourDigits,
			"maskedNumber":   req.Token.MaskedNumber,
		},
		"amount": map[string]any{"total": 0, "currency": req.Amount.Currency},
	}
	return a.call(ctx, opValidateAccount, payload, req.Token.TransactionReference)
}

func (a *KushkiAcqAdapter) transactionRequest(req types.ChargeInput) map[string]any {
	payload := map[string]any{
		"transactionReference": req.Token.TransactionReference,
		"merchantId":           req.Merchant.PublicID,
		"terminalId":           req.Processor.TerminalID,
		"subMccCode":           req.Processor.SubMCCCode,
		"acquirerBank":         req.Processor.AcquirerBank,
		"isDeferred":           deferredFlag(req.Token.DeferredMonths),
		"months":               req.Token.DeferredMonths,
		"card": map[string]any{
			"bin":            req.Token.Bin,
			"lastFourDigits": req.Token.LastFourDigits,
			"maskedNumber":   req.Token.MaskedNumber,
			"holderName":     req.Token.CardHolderName,
		},
		"amount": map[string]any{
			"subtotalIva":  req.Amount.SubtotalTaxable,
			"subtotalIva0": req.Amount.SubtotalNonTaxable,
			"iva":          req.Amount.VAT,
			"extraTaxes":   req.Amount.ExtraTaxes,
			"currency":     req.Amount.Currency,
		},
	}
	// 3DS proof fields pass through unmodified.
	if req.Token.ThreeDS != nil {
		payload["3ds"] = req.Token.ThreeDS
	}
	return payload
}
