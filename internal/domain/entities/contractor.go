package entities

import (
	"time"

	"github.com/google/uuid"
)

// ContractorStatus represents contractor lifecycle status
type ContractorStatus string

const (
	ContractorStatusPending  ContractorStatus = "pending"
	ContractorStatusActive   ContractorStatus = "active"
	ContractorStatusInactive ContractorStatus = "inactive"
)

// Valid reports whether the status is one of the known lifecycle states.
func (s ContractorStatus) Valid() bool {
	switch s {
	case ContractorStatusPending, ContractorStatusActive, ContractorStatusInactive:
		return true
	}
	return false
}

// Contractor represents a contractor entity. Contractors are created in
// pending status, promoted to active on their first completed payment or by
// manual approval, and deactivated manually. They are never hard-deleted.
type Contractor struct {
	ID        uuid.UUID        `json:"id"`
	Name      string           `json:"name"`
	Email     string           `json:"email"`
	Skills    []string         `json:"skills"`
	Rate      string           `json:"rate"`
	Status    ContractorStatus `json:"status"`
	ImageURL  string           `json:"imageUrl,omitempty"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
}

// CreateContractorInput represents input for adding a contractor
type CreateContractorInput struct {
	Name     string   `json:"name" binding:"required"`
	Email    string   `json:"email" binding:"required,email"`
	Skills   []string `json:"skills"`
	Rate     string   `json:"rate" binding:"required"`
	ImageURL string   `json:"imageUrl"`
}

// UpdateContractorStatusInput represents a manual status transition
type UpdateContractorStatusInput struct {
	Status ContractorStatus `json:"status" binding:"required"`
}

// BulkPayItem identifies one contractor in a bulk payment batch
type BulkPayItem struct {
	ContractorID uuid.UUID `json:"contractorId" binding:"required"`
	Name         string    `json:"name" binding:"required"`
	Email        string    `json:"email" binding:"required,email"`
	Amount       string    `json:"amount" binding:"required"`
}

// BulkPayOutcome reports the result for one contractor in a bulk batch.
// Outcomes are independent: a failed item never affects its neighbours.
type BulkPayOutcome struct {
	ContractorID uuid.UUID     `json:"contractorId"`
	PayeeID      string        `json:"payeeId,omitempty"`
	PaymentID    string        `json:"paymentId,omitempty"`
	Status       PaymentStatus `json:"status"`
	Error        string        `json:"error,omitempty"`
}
