// Package types holds the canonical data model shared by every provider
// adapter: the generic charge/capture inputs, the normalized Aurus-shaped
// response and error, the stored transaction record, and the processor to
// provider lookup table.
package types

import "encoding/json"

// TransactionType discriminates the operation a request is asking for.
type TransactionType string

const (
	TransactionCharge            TransactionType = "charge"
	TransactionPreAuthorization  TransactionType = "preauthorization"
	TransactionCapture           TransactionType = "capture"
	TransactionVoid              TransactionType = "void"
	TransactionReAuthorization   TransactionType = "reauthorization"
	TransactionAccountValidation TransactionType = "accountValidation"
)

// CardType partitions transactions for the automatic-void sweeps.
type CardType string

const (
	CardTypeCredit CardType = "credit"
	CardTypeDebit  CardType = "debit"
)

// Amount is the canonical amount breakdown. All fields are required and
// non-negative; ExtraTaxes is optional.
type Amount struct {
	SubtotalTaxable    float64            `json:"subtotalTaxable"`
	SubtotalNonTaxable float64            `json:"subtotalNonTaxable"`
	VAT                float64            `json:"vat"`
	ExtraTaxes         map[string]float64 `json:"extraTaxes,omitempty"`
	Currency           string             `json:"currency"`
}

// Total returns the full transaction amount including every tax component.
func (a Amount) Total() float64 {
	total := a.SubtotalTaxable + a.SubtotalNonTaxable + a.VAT
	for _, tax := range a.ExtraTaxes {
		total += tax
	}
	return total
}

// ThreeDSecure carries 3-D Secure proof-of-authentication fields. They are
// passed through to processor requests unmodified.
type ThreeDSecure struct {
	CAVV                 string `json:"cavv,omitempty"`
	ECI                  string `json:"eci,omitempty"`
	XID                  string `json:"xid,omitempty"`
	UCAF                 string `json:"ucaf,omitempty"`
	SpecificationVersion string `json:"specificationVersion,omitempty"`
}

// CardToken is the current-token snapshot attached to a request. The
// TransactionReference is unique per logical transaction and propagates
// through every downstream processor request and timeout record.
type CardToken struct {
	Bin                  string        `json:"bin"`
	LastFourDigits       string        `json:"lastFourDigits"`
	MaskedNumber         string        `json:"maskedCardNumber"`
	Currency             string        `json:"currency"`
	VaultToken           string        `json:"vaultToken"`
	TransactionReference string        `json:"transactionReference"`
	CardHolderName       string        `json:"cardHolderName,omitempty"`
	DeferredMonths       int           `json:"deferredMonths,omitempty"`
	ThreeDS              *ThreeDSecure `json:"3ds,omitempty"`
}

// MerchantInfo is the merchant snapshot resolved before routing.
type MerchantInfo struct {
	PublicID    string `json:"publicId"`
	Name        string `json:"merchantName"`
	Country     string `json:"country"`
	Whitelisted bool   `json:"whitelist"`
}

// ProcessorInfo is the processor configuration snapshot on the transaction.
type ProcessorInfo struct {
	PublicID     string        `json:"publicId"`
	PrivateID    string        `json:"privateId"`
	Name         ProcessorName `json:"processorName"`
	AcquirerBank string        `json:"acquirerBank,omitempty"`
	SubMCCCode   string        `json:"subMccCode,omitempty"`
	TerminalID   string        `json:"terminalId,omitempty"`
}

// AuthorizerContext carries the credential context of the caller.
type AuthorizerContext struct {
	CredentialID       string `json:"credentialId"`
	CredentialAlias    string `json:"credentialAlias,omitempty"`
	MerchantID         string `json:"merchantId"`
	PublicCredentialID string `json:"publicCredentialId,omitempty"`
}

// ChargeInput is the canonical input to every adapter operation.
type ChargeInput struct {
	Amount          Amount            `json:"amount"`
	Authorizer      AuthorizerContext `json:"authorizerContext"`
	Merchant        MerchantInfo      `json:"merchant"`
	Token           CardToken         `json:"currentToken"`
	Processor       ProcessorInfo     `json:"processor"`
	TransactionType TransactionType   `json:"transactionType"`
	// Event is the raw origin event payload, kept verbatim for audit.
	Event json.RawMessage `json:"event,omitempty"`
}

// CaptureInput scopes a ChargeInput to a previously authorized transaction.
// Amount, when set, overrides the original amount for a partial capture.
type CaptureInput struct {
	Authorizer  AuthorizerContext `json:"authorizerContext"`
	Merchant    MerchantInfo      `json:"merchant"`
	Processor   ProcessorInfo     `json:"processor"`
	Transaction Transaction       `json:"transaction"`
	Amount      *Amount           `json:"amount,omitempty"`
}

// TokenRequest asks for a tokenized card reference.
type TokenRequest struct {
	Merchant       MerchantInfo `json:"merchant"`
	Currency       string       `json:"currency"`
	TotalAmount    float64      `json:"totalAmount"`
	IsTokenCharge  bool         `json:"isTokenCharge,omitempty"`
	CardNumberHash string       `json:"cardNumberHash,omitempty"`
}

// TokenResponse is the result of tokenization, whether issued by the token
// gateway or synthesized locally.
type TokenResponse struct {
	Token string `json:"token"`
}
