package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// PaymentStatus represents payment lifecycle status
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusProcessing PaymentStatus = "processing"
	PaymentStatusCompleted  PaymentStatus = "completed"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Terminal reports whether the status is a final state.
func (s PaymentStatus) Terminal() bool {
	return s == PaymentStatusCompleted || s == PaymentStatusFailed
}

// PaymentMethod identifies how a persisted payment was initiated
type PaymentMethod string

const (
	PaymentMethodACH  PaymentMethod = "ACH"
	PaymentMethodUSDC PaymentMethod = "USDC"
	PaymentMethodBulk PaymentMethod = "BULK"
)

// ProviderPayment represents a transfer instruction as the provider sees it.
// It lives at the provider; the persisted mirror is Payment.
type ProviderPayment struct {
	ID            string            `json:"id"`
	AmountDecimal string            `json:"amountDecimal"`
	PayeeID       string            `json:"payeeId"`
	Memo          string            `json:"memo"`
	Status        PaymentStatus     `json:"status"`
	Metadata      map[string]string `json:"metadata,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

// SendPaymentInput represents a transfer instruction sent to the provider
type SendPaymentInput struct {
	AmountDecimal string            `json:"amountDecimal"`
	PayeeID       string            `json:"payeeId"`
	Memo          string            `json:"memo"`
	Metadata      map[string]string `json:"metadata,omitempty"`
}

// Payment represents the persisted payment record. Each payment references
// exactly one payee and at most one contractor.
type Payment struct {
	ID                uuid.UUID         `json:"id"`
	ContractorID      uuid.UUID         `json:"contractorId"`
	ContractorName    string            `json:"contractorName,omitempty"`
	ContractorEmail   string            `json:"contractorEmail,omitempty"`
	Amount            string            `json:"amount"`
	Memo              null.String       `json:"memo,omitempty"`
	PaymentMethod     PaymentMethod     `json:"paymentMethod"`
	PayeeID           null.String       `json:"payeeId,omitempty"`
	ExternalPaymentID null.String       `json:"externalPaymentId,omitempty"`
	Status            PaymentStatus     `json:"status"`
	Metadata          map[string]string `json:"metadata,omitempty"`
	CreatedAt         time.Time         `json:"createdAt"`
	UpdatedAt         time.Time         `json:"updatedAt"`
}

// PaymentSubmission is the result of a single payment initiation: the payee
// registered at the provider, the provider payment, and the persisted record.
type PaymentSubmission struct {
	Payee   *Payee           `json:"payee"`
	Payment *ProviderPayment `json:"payment"`
	Record  *Payment         `json:"record"`
}
