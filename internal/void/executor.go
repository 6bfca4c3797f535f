package void

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cygnus-aran/serverless-card-sub004/internal/config"
	"github.com/cygnus-aran/serverless-card-sub004/internal/gateway"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

const opVoid = "void"

// Executor performs the actual void against the acquirer.
type Executor interface {
	Void(ctx context.Context, tx types.Transaction) error
}

// RemoteExecutor voids through the per-processor remote void function, the
// same transport the forward operations use.
type RemoteExecutor struct {
	remote gateway.RemoteInvoker
	cfg    config.Config
}

// NewRemoteExecutor creates the remote void executor.
func NewRemoteExecutor(remote gateway.RemoteInvoker, cfg config.Config) *RemoteExecutor {
	return &RemoteExecutor{remote: remote, cfg: cfg}
}

func (e *RemoteExecutor) Void(ctx context.Context, tx types.Transaction) error {
	variant, ok := types.ProviderFor(tx.ProcessorName)
	if !ok {
		return fmt.Errorf("no variant mapped for processor %q", tx.ProcessorName)
	}
	payload := map[string]any{
		"transactionReference": tx.TransactionReference,
		"ticketNumber":         tx.TicketNumber,
		"approvalCode":         tx.ApprovalCode,
		"merchantId":           tx.MerchantID,
		"amount":               tx.ApprovedAmount,
		"currency":             tx.Currency,
	}
	raw, err := e.remote.Invoke(ctx, e.cfg.FunctionName(variant, opVoid), payload)
	if err != nil {
		return fmt.Errorf("void %s on %s: %w", tx.TransactionReference, variant, err)
	}
	var resp types.AurusResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return fmt.Errorf("decode void response for %s: %w", tx.TransactionReference, err)
	}
	if !resp.Approved() {
		return fmt.Errorf("void %s declined with code %s", tx.TransactionReference, resp.ResponseCode)
	}
	return nil
}
