package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// FisAdapter services FIS/Worldpay rails: charge and capture.
type FisAdapter struct {
	core
}

// NewFisAdapter creates the FIS adapter.
func NewFisAdapter(deps Deps) *FisAdapter {
	return &FisAdapter{core{
		profile: Profile{
			Variant:          types.ProviderFis,
			Processor:        types.ProcessorFis,
			PersistOnTimeout: true,
		},
		deps: deps,
	}}
}

func (a *FisAdapter) Name() types.CardProvider { return types.ProviderFis }

func (a *FisAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *FisAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"reference":  req.Token.TransactionReference,
		"merchantId": req.Merchant.PublicID,
		"terminalId": req.Processor.TerminalID,
		"cardToken":  req.Token.VaultToken,
		"amount": map[string]any{
			"total":    req.Amount.Total(),
			"tax":      req.Amount.VAT,
			"currency": req.Amount.Currency,
		},
		"card": map[string]any{
			"bin":        req.Token.Bin,
			"last4":      req.Token.LastFourDigits,
			"holderName": req.Token.CardHolderName,
		},
	}
	return a.call(ctx, opCharge, payload, req.Token.TransactionReference)
}

func (a *FisAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"reference":    req.Transaction.TransactionReference,
		"ticketNumber": req.Transaction.TicketNumber,
		"merchantId":   req.Merchant.PublicID,
		"amount": map[string]any{
			"total":    captureAmount(req),
			"currency": captureCurrency(req),
		},
	}
	return a.call(ctx, opCapture, payload, req.Transaction.TransactionReference)
}

func (a *FisAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *FisAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *FisAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}
