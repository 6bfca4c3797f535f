package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// BillpocketAdapter services BillPocket (Mexico): charge only, no capture
// lifecycle, local tokens only.
type BillpocketAdapter struct {
	core
}

// NewBillpocketAdapter creates the BillPocket adapter.
func NewBillpocketAdapter(deps Deps) *BillpocketAdapter {
	return &BillpocketAdapter{core{
		profile: Profile{
			Variant:          types.ProviderBillpocket,
			Processor:        types.ProcessorBillpocket,
			PersistOnTimeout: true,
			LocalTokensOnly:  true,
		},
		deps: deps,
	}}
}

func (a *BillpocketAdapter) Name() types.CardProvider { return types.ProviderBillpocket }

func (a *BillpocketAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *BillpocketAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"reference":  req.Token.TransactionReference,
		"merchantId": req.Merchant.PublicID,
		"cardToken":  req.Token.VaultToken,
		"amount":     req.Amount.Total(),
		"currency":   req.Amount.Currency,
		"msi":        req.Token.DeferredMonths,
	}
	return a.call(ctx, opCharge, payload, req.Token.TransactionReference)
}

func (a *BillpocketAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *BillpocketAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *BillpocketAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *BillpocketAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}
