package models

import (
	"time"

	"github.com/google/uuid"
)

type Payment struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	ContractorID      uuid.UUID `gorm:"type:uuid;not null;index"`
	Amount            string    `gorm:"type:decimal(12,2);not null"`
	Memo              *string   `gorm:"type:text"`
	PaymentMethod     string    `gorm:"type:varchar(50);not null"`
	PayeeID           *string   `gorm:"type:varchar(255);index"`
	ExternalPaymentID *string   `gorm:"type:varchar(255);index"`
	Status            string    `gorm:"type:varchar(50);not null;index;default:'processing'"`
	Metadata          string    `gorm:"type:jsonb;default:'{}'"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Contractor Contractor `gorm:"foreignKey:ContractorID"`
}

func (Payment) TableName() string {
	return "payments"
}
