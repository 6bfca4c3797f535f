// Package mapper normalizes heterogeneous processor failures into the
// canonical response and error shapes. Every function here is pure; the
// invocation layer decides what to do with the classification.
package mapper

import (
	"errors"
	"strings"

	"github.com/cygnus-aran/serverless-card-sub004/internal/types"
)

// Band is the severity classification of a processor error code.
type Band int

const (
	// BandUnknown means the code matched no known family; the original error
	// is re-raised unchanged.
	BandUnknown Band = iota
	// BandDeclined covers active processor declines (500/600 families).
	BandDeclined
	// BandUnreachable covers connectivity-class failures (012 family).
	BandUnreachable
	// BandTimeout covers budget expiry (027 family), which triggers the
	// persist-then-raise path.
	BandTimeout
	// BandUnsupported covers capability rejections (016 family).
	BandUnsupported
)

// Classify bands a processor error code by the code families the processors
// share. Declines are checked last so a code like "600012" still reads as a
// decline only when no connectivity marker is present.
func Classify(code string) Band {
	switch {
	case strings.Contains(code, "027"):
		return BandTimeout
	case strings.Contains(code, "012"):
		return BandUnreachable
	case strings.Contains(code, "016"):
		return BandUnsupported
	case strings.Contains(code, "500"), strings.Contains(code, "600"):
		return BandDeclined
	default:
		return BandUnknown
	}
}

// processors that embed their own processor code vocabulary in metadata.
var embedsProcessorCode = map[types.ProcessorName]struct{}{
	types.ProcessorKushkiAcq:  {},
	types.ProcessorCredimatic: {},
}

// BuildAurusError re-wraps a remote processor failure as the canonical
// error, preserving the original code and text in metadata. Applying it to
// metadata that already passed through it yields the same processorCode and
// responseCode pairing.
func BuildAurusError(remote *types.RemoteError, processor types.ProcessorName) *types.AurusError {
	responseCode := remote.Metadata.ResponseCode
	if responseCode == "" {
		responseCode = remote.Code
	}
	responseText := remote.Metadata.ResponseText
	if responseText == "" {
		responseText = remote.Message
	}

	processorCode := responseCode
	if _, ok := embedsProcessorCode[processor]; ok && remote.Metadata.ProcessorCode != "" {
		processorCode = remote.Metadata.ProcessorCode
	}

	return &types.AurusError{
		Code:    responseCode,
		Message: responseText,
		Metadata: types.ErrorMetadata{
			ProcessorName: string(processor),
			ProcessorCode: processorCode,
			ResponseCode:  responseCode,
			ResponseText:  responseText,
		},
	}
}

// BuildUnreachableError is the fixed unreachable error used when a
// declared-code path cannot be resolved.
func BuildUnreachableError(processor types.ProcessorName) *types.AurusError {
	return &types.AurusError{
		Code:    types.CodeUnreachable,
		Message: types.MessageUnreachable,
		Metadata: types.ErrorMetadata{
			ProcessorName: string(processor),
			ProcessorCode: types.CodeUnreachable,
			ResponseCode:  types.CodeUnreachable,
			ResponseText:  types.MessageUnreachable,
		},
	}
}

// BuildTimeoutError is the canonical timeout error raised after the built
// request has been parked for reconciliation.
func BuildTimeoutError(processor types.ProcessorName) *types.AurusError {
	return &types.AurusError{
		Code:    types.CodeTimeout,
		Message: types.MessageTimeout,
		Metadata: types.ErrorMetadata{
			ProcessorName: string(processor),
			ProcessorCode: types.CodeTimeout,
			ResponseCode:  types.CodeTimeout,
			ResponseText:  types.MessageTimeout,
		},
	}
}

// InternalServerErrorResponse synthesizes the degraded success-shaped
// response used when the system falls back instead of raising: response code
// 228, empty ticket, zeroed approval, deferred flag derived from installment
// months.
func InternalServerErrorResponse(req types.ChargeInput) *types.AurusResponse {
	deferred := "N"
	if req.Token.DeferredMonths > 0 {
		deferred = "Y"
	}
	return &types.AurusResponse{
		ResponseCode:         types.CodeUnreachableShape,
		ResponseText:         types.MessageUnreachable,
		TicketNumber:         "",
		TransactionReference: req.Token.TransactionReference,
		ApprovedAmount:       "0",
		Details: types.TransactionDetails{
			ApprovalCode:   "000000",
			BinCard:        req.Token.Bin,
			LastFourDigits: req.Token.LastFourDigits,
			IsDeferred:     deferred,
			ProcessorName:  string(req.Processor.Name),
		},
	}
}

// AsAurusError extracts the canonical error from an error chain, if present.
func AsAurusError(err error) (*types.AurusError, bool) {
	var ae *types.AurusError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
