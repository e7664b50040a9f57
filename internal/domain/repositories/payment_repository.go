package repositories

import (
	"context"

	"github.com/google/uuid"
	"paylance.backend/internal/domain/entities"
)

// PaymentRepository defines persisted payment data operations
type PaymentRepository interface {
	Create(ctx context.Context, payment *entities.Payment) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error)
	GetByExternalID(ctx context.Context, externalID string) (*entities.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error
	CountCompletedByContractor(ctx context.Context, contractorID uuid.UUID) (int64, error)
}
