package provider

import (
	"errors"
	"fmt"

	"github.com/cygnus-aran/serverless-card-sub004/internal/config"
	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// ErrNoAdapter marks a deployment/configuration defect: a resolved variant
// has no registered adapter. It is not a per-request recoverable condition.
var ErrNoAdapter = errors.New("adapter registry misconfigured")

// Registry holds the full adapter set keyed by variant and resolves which
// adapter services a request.
type Registry struct {
	cfg      config.Config
	adapters map[types.CardProvider]Adapter
}

// NewRegistry indexes the given adapters by variant.
func NewRegistry(cfg config.Config, adapters ...Adapter) *Registry {
	indexed := make(map[types.CardProvider]Adapter, len(adapters))
	for _, a := range adapters {
		indexed[a.Name()] = a
	}
	return &Registry{cfg: cfg, adapters: indexed}
}

// Resolve picks the adapter for the processor configured on the transaction.
// Sandbox-listed processors short-circuit to the sandbox variant on
// non-production stages; that decision lives in configuration, not here.
func (r *Registry) Resolve(processor types.ProcessorName) (Adapter, error) {
	if r.cfg.SandboxEnabled(processor) {
		if a, ok := r.adapters[types.ProviderSandbox]; ok {
			return a, nil
		}
	}
	variant, ok := types.ProviderFor(processor)
	if !ok {
		return nil, fmt.Errorf("%w: no variant mapped for processor %q", ErrNoAdapter, processor)
	}
	a, ok := r.adapters[variant]
	if !ok {
		return nil, fmt.Errorf("%w: no adapter registered for variant %q", ErrNoAdapter, variant)
	}
	return a, nil
}

// NewAll constructs the complete adapter set with shared dependencies, one
// instance per variant.
func NewAll(deps Deps) []Adapter {
	return []Adapter{
		NewAurusAdapter(deps),
		NewSandboxAdapter(deps),
		NewRedebanAdapter(deps),
		NewNiubizAdapter(deps),
		NewProsaAdapter(deps),
		NewBillpocketAdapter(deps),
		NewTransbankAdapter(deps),
		NewCredomaticAdapter(deps),
		NewCredibancoAdapter(deps),
		NewKushkiAcqAdapter(deps),
		NewFisAdapter(deps),
		NewCredimaticAdapter(deps),
		NewDatafastAdapter(deps),
	}
}

// Variants lists the registered adapter variants.
func (r *Registry) Variants() []types.CardProvider {
	out := make([]types.CardProvider, 0, len(r.adapters))
	for v := range r.adapters {
		out = append(out, v)
	}
	return out
}
