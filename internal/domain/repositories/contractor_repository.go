package repositories

import (
	"context"

	"github.com/google/uuid"
	"paylance.backend/internal/domain/entities"
)

// ContractorRepository defines contractor data operations
type ContractorRepository interface {
	Create(ctx context.Context, contractor *entities.Contractor) error
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Contractor, error)
	List(ctx context.Context) ([]*entities.Contractor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ContractorStatus) error
}
