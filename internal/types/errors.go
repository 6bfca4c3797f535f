package types

import "fmt"

// Canonical error codes surfaced to callers. Adapters never expose anything
// outside this vocabulary; raw processor errors are folded into metadata.
const (
	CodeUnsupported      = "K041" // capability not implemented by the processor
	CodeTimeout          = "E027" // remote call exceeded its budget
	CodeTimeoutMapped    = "K027"
	CodeUnreachable      = "504" // processor unreachable, declared-code path unresolved
	CodeUnreachableShape = "228" // degraded success-shaped unreachable response
)

const (
	MessageUnsupported = "method not supported by processor"
	MessageTimeout     = "processor did not respond in time"
	MessageUnreachable = "processor unreachable"
)

// ErrorMetadata preserves the original processor vocabulary alongside the
// canonical code.
type ErrorMetadata struct {
	ProcessorName string `json:"processorName"`
	ProcessorCode string `json:"processorCode"`
	ResponseCode  string `json:"responseCode"`
	ResponseText  string `json:"responseText"`
}

// AurusError is the single error shape callers observe. It is only built by
// the mapper package; adapters never construct one from a raw failure
// themselves.
type AurusError struct {
	Code     string        `json:"code"`
	Message  string        `json:"message"`
	Metadata ErrorMetadata `json:"metadata"`
}

func (e *AurusError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// RemoteError is the failure shape raised by the remote invocation gateway:
// the processor's own code and text plus whatever metadata the downstream
// function attached. The mapper classifies it into the canonical taxonomy.
type RemoteError struct {
	Code     string              `json:"code"`
	Message  string              `json:"message"`
	Metadata RemoteErrorMetadata `json:"metadata"`
}

// RemoteErrorMetadata mirrors the downstream error envelope. ProcessorCode
// is only populated by processors that embed their own code vocabulary.
type RemoteErrorMetadata struct {
	ResponseCode  string `json:"response_code"`
	ResponseText  string `json:"response_text"`
	ProcessorCode string `json:"processorCode"`
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewUnsupportedError builds the uniform capability-gating error.
func NewUnsupportedError(processor ProcessorName) *AurusError {
	return &AurusError{
		Code:    CodeUnsupported,
		Message: MessageUnsupported,
		Metadata: ErrorMetadata{
			ProcessorName: string(processor),
			ProcessorCode: CodeUnsupported,
			ResponseCode:  CodeUnsupported,
			ResponseText:  MessageUnsupported,
		},
	}
}
