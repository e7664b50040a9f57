package models

import (
	"time"

	"github.com/google/uuid"
)

type Contractor struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Email     string    `gorm:"type:varchar(255);not null"`
	Rate      string    `gorm:"type:decimal(10,2);not null;default:'0'"`
	Skills    string    `gorm:"type:jsonb;default:'[]'"`
	Status    string    `gorm:"type:varchar(50);not null;index;default:'pending'"`
	ImageURL  string    `gorm:"type:varchar(512)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Contractor) TableName() string {
	return "contractors"
}
