package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

func TestAmountTotal(t *testing.T) {
	t.Run("sums every component", func(t *testing.T) {
		amount := types.Amount{
			SubtotalTaxable:    100,
			SubtotalNonTaxable: 20,
			VAT:                12,
			ExtraTaxes:         map[string]float64{"ice": 5, "tasaAeroportuaria": 3},
		}
		assert.InDelta(t, 140.0, amount.Total(), 1e-9)
	})

	t.Run("extra taxes are optional", func(t *testing.T) {
		amount := types.Amount{SubtotalTaxable: 50, VAT: 6}
		assert.InDelta(t, 56.0, amount.Total(), 1e-9)
	})
}

func TestAurusResponseApproved(t *testing.T) {
	t.Run("ok code with ticket", func(t *testing.T) {
		resp := &types.AurusResponse{ResponseCode: "000", TicketNumber: "181063568837500421"}
		assert.True(t, resp.Approved())
	})

	t.Run("ok code without ticket is not approved", func(t *testing.T) {
		resp := &types.AurusResponse{ResponseCode: "000"}
		assert.False(t, resp.Approved())
		assert.True(t, resp.HasOKCode())
	})

	t.Run("short ok code", func(t *testing.T) {
		resp := &types.AurusResponse{ResponseCode: "00", TicketNumber: "1"}
		assert.True(t, resp.Approved())
	})

	t.Run("decline code", func(t *testing.T) {
		resp := &types.AurusResponse{ResponseCode: "600", TicketNumber: "1"}
		assert.False(t, resp.Approved())
		assert.False(t, resp.HasOKCode())
	})

	t.Run("nil receiver", func(t *testing.T) {
		var resp *types.AurusResponse
		assert.False(t, resp.Approved())
		assert.False(t, resp.HasOKCode())
	})
}

func TestProviderFor(t *testing.T) {
	cases := []struct {
		processor types.ProcessorName
		variant   types.CardProvider
	}{
		{types.ProcessorAurus, types.ProviderAurus},
		{types.ProcessorSandbox, types.ProviderSandbox},
		{types.ProcessorRedeban, types.ProviderRedeban},
		{types.ProcessorNiubiz, types.ProviderNiubiz},
		{types.ProcessorProsa, types.ProviderProsa},
		{types.ProcessorBillpocket, types.ProviderBillpocket},
		{types.ProcessorTransbank, types.ProviderTransbank},
		{types.ProcessorCredomatic, types.ProviderCredomatic},
		{types.ProcessorCredibanco, types.ProviderCredibanco},
		{types.ProcessorKushkiAcq, types.ProviderKushkiAcq},
		{types.ProcessorFis, types.ProviderFis},
		{types.ProcessorCredimatic, types.ProviderCredimatic},
		{types.ProcessorDatafast, types.ProviderDatafast},
	}
	for _, tc := range cases {
		t.Run(string(tc.processor), func(t *testing.T) {
			variant, ok := types.ProviderFor(tc.processor)
			require.True(t, ok)
			assert.Equal(t, tc.variant, variant)
		})
	}

	t.Run("unknown processor", func(t *testing.T) {
		_, ok := types.ProviderFor("Acme Processor")
		assert.False(t, ok)
	})

	t.Run("every variant is listed", func(t *testing.T) {
		assert.Len(t, types.AllProviders(), 13)
	})
}

func TestNewUnsupportedError(t *testing.T) {
	ae := types.NewUnsupportedError(types.ProcessorBillpocket)
	assert.Equal(t, types.CodeUnsupported, ae.Code)
	assert.Equal(t, types.MessageUnsupported, ae.Message)
	assert.Equal(t, string(types.ProcessorBillpocket), ae.Metadata.ProcessorName)
	assert.Equal(t, types.CodeUnsupported, ae.Metadata.ProcessorCode)
	assert.EqualError(t, ae, "K041: method not supported by processor")
}
