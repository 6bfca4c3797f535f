package provider

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// SandboxAdapter synthesizes approved responses locally without touching any
// acquirer. It backs the sandbox allow-list on non-production stages and
// supports the full capability set so any processor can be sandboxed.
type SandboxAdapter struct {
	core
	now func() time.Time
}

// NewSandboxAdapter creates the sandbox adapter.
func NewSandboxAdapter(deps Deps) *SandboxAdapter {
	return &SandboxAdapter{
		core: core{
			profile: Profile{
				Variant:         types.ProviderSandbox,
				Processor:       types.ProcessorSandbox,
				LocalTokensOnly: true,
			},
			deps: deps,
		},
		now: time.Now,
	}
}

func (a *SandboxAdapter) Name() types.CardProvider { return types.ProviderSandbox }

func (a *SandboxAdapter) Tokens(ctx context.Context, req types.TokenRequest) (*types.TokenResponse, error) {
	return a.tokens(ctx, req)
}

func (a *SandboxAdapter) Charge(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.approve(req, req.Amount.Total()), nil
}

func (a *SandboxAdapter) PreAuthorize(ctx context.Context, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.approve(req, req.Amount.Total()), nil
}

func (a *SandboxAdapter) Capture(ctx context.Context, req types.CaptureInput) (*types.AurusResponse, error) {
	resp := a.synthesize(req.Transaction.TransactionReference, captureAmount(req))
	resp.Details.ProcessorName = string(req.Processor.Name)
	return resp, nil
}

func (a *SandboxAdapter) ReAuthorize(ctx context.Context, amount types.Amount, auth types.AuthorizerContext, txn types.Transaction) (*types.AurusResponse, error) {
	return a.synthesize(txn.TransactionReference, amount.Total()), nil
}

func (a *SandboxAdapter) ValidateAccount(ctx context.Context, auth types.AuthorizerContext, req types.ChargeInput) (*types.AurusResponse, error) {
	return a.approve(req, 0), nil
}

func (a *SandboxAdapter) approve(req types.ChargeInput, amount float64) *types.AurusResponse {
	resp := a.synthesize(req.Token.TransactionReference, amount)
	resp.Details.BinCard = req.Token.Bin
	resp.Details.LastFourDigits = req.Token.LastFourDigits
	resp.Details.IsDeferred = deferredFlag(req.Token.DeferredMonths)
	resp.Details.ProcessorName = string(req.Processor.Name)
	return resp
}

func (a *SandboxAdapter) synthesize(reference string, amount float64) *types.AurusResponse {
	stamp := a.now().UnixNano()
	return &types.AurusResponse{
		ResponseCode:         "000",
		ResponseText:         "Transaccion aprobada",
		TicketNumber:         fmt.Sprintf("%d%04d", stamp%1e13, rand.Intn(10000)),
		TransactionID:        fmt.Sprintf("sbx-%d", stamp),
		TransactionReference: reference,
		ApprovedAmount:       fmt.Sprintf("%.2f", amount),
		Details: types.TransactionDetails{
			ApprovalCode:  fmt.Sprintf("%06d", rand.Intn(1000000)),
			IsDeferred:    "N",
			ProcessorName: string(types.ProcessorSandbox),
		},
	}
}
