package types

// Response codes the processors report for an approved transaction.
var okResponseCodes = map[string]struct{}{
	"00":  {},
	"000": {},
}

// TransactionDetails is the nested block of an AurusResponse.
type TransactionDetails struct {
	ApprovalCode      string `json:"approvalCode"`
	BinCard           string `json:"binCard"`
	CardType          string `json:"cardType,omitempty"`
	LastFourDigits    string `json:"lastFourDigitsOfCard"`
	CardHolderName    string `json:"cardHolderName,omitempty"`
	IsDeferred        string `json:"isDeferred"`
	ProcessorName     string `json:"processorName"`
	ProcessorBankName string `json:"processorBankName,omitempty"`
	Merchant          string `json:"merchantName,omitempty"`
}

// AurusResponse is the canonical success response every adapter returns.
type AurusResponse struct {
	ResponseCode         string             `json:"response_code"`
	ResponseText         string             `json:"response_text"`
	TicketNumber         string             `json:"ticket_number"`
	TransactionID        string             `json:"transaction_id"`
	TransactionReference string             `json:"transaction_reference"`
	ApprovedAmount       string             `json:"approved_transaction_amount"`
	RecapNumber          string             `json:"recap,omitempty"`
	Details              TransactionDetails `json:"transaction_details"`
}

// Approved reports whether the response represents a confirmed transaction.
// A response code in the OK set without a ticket number is still a failure:
// the ticket is the acquirer's proof the attempt was processed.
func (r *AurusResponse) Approved() bool {
	if r == nil {
		return false
	}
	if _, ok := okResponseCodes[r.ResponseCode]; !ok {
		return false
	}
	return r.TicketNumber != ""
}

// HasOKCode reports whether the response code alone is in the approved set,
// regardless of the ticket number.
func (r *AurusResponse) HasOKCode() bool {
	if r == nil {
		return false
	}
	_, ok := okResponseCodes[r.ResponseCode]
	return ok
}

// Transaction is the stored record of a processed transaction, the shape the
// automatic-void sweeps query against.
type Transaction struct {
	TransactionID        string          `json:"transactionId"`
	TransactionReference string          `json:"transactionReference"`
	MerchantID           string          `json:"merchantId"`
	ProcessorName        ProcessorName   `json:"processorName"`
	TransactionType      TransactionType `json:"transactionType"`
	TransactionStatus    string          `json:"transactionStatus"`
	CardType             CardType        `json:"cardType,omitempty"`
	ApprovedAmount       float64         `json:"approvedTransactionAmount"`
	Currency             string          `json:"currencyCode"`
	TicketNumber         string          `json:"ticketNumber,omitempty"`
	ApprovalCode         string          `json:"approvalCode,omitempty"`
	CreatedMs            int64           `json:"created"`
}

// Transaction status values as persisted.
const (
	StatusApproval = "APPROVAL"
	StatusDeclined = "DECLINED"
)

// TimedOutTransaction parks the processor request exactly as it would have
// been sent, for later manual reconciliation. Never mutated after creation.
type TimedOutTransaction struct {
	TransactionReference string        `json:"transactionReference"`
	Processor            ProcessorName `json:"processorName"`
	Region               string        `json:"region"`
	Payload              any           `json:"payload"`
	CreatedMs            int64         `json:"created"`
}
