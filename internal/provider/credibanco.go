package provider

import (
	"context"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// CredibancoAdapter services Credibanco (Colombia): charge and capture,
// with 3DS passthrough on charges.
type CredibancoAdapter struct {
	core
}

// NewCredibancoAdapter creates the Credibanco adapter.
func NewCredibancoAdapter(deps Deps) *CredibancoAdapter {
	return &CredibancoAdapter{core{
		profile: Profile{
			Variant:          types.ProviderCredibanco,
			Processor:        types.ProcessorCredibanco,
			PersistOnTimeout: true,
		},
		deps: deps,
	}}
}

func (a *CredibancoAdapter) Name() types.CardProvider { return types.ProviderCredibanco }

func (a *CredibancoAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *CredibancoAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia":   req.Token.TransactionReference,
		"codComercio":  req.Merchant.PublicID,
		"terminal":     req.Processor.TerminalID,
		"token":        req.Token.VaultToken,
		"baseGravable": req.Amount.SubtotalTaxable,
		"base0":        req.Amount.SubtotalNonTaxable,
		"iva":          req.Amount.VAT,
		"valorTotal":   req.Amount.Total(),
		"moneda":       req.Amount.Currency,
		"cuotas":       req.Token.DeferredMonths,
	}
	if req.Token.ThreeDS != nil {
		payload["3ds"] = req.Token.ThreeDS
	}
	return a.call(ctx, opCharge, payload, req.Token.TransactionReference)
}

func (a *CredibancoAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	payload := map[string]any{
		"referencia":  req.Transaction.TransactionReference,
		"ticket":      req.Transaction.TicketNumber,
		"codComercio": req.Merchant.PublicID,
		"valorTotal":  captureAmount(req),
		"moneda":      captureCurrency(req),
	}
	return a.call(ctx, opCapture, payload, req.Transaction.TransactionReference)
}

func (a *CredibancoAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *CredibancoAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.unsupported()
}

func (a *CredibancoAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.unsupported()
}
