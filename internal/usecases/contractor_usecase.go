package usecases

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/internal/domain/repositories"
)

// ContractorUsecase handles contractor management
type ContractorUsecase struct {
	contractorRepo repositories.ContractorRepository
}

// NewContractorUsecase creates a new contractor usecase
func NewContractorUsecase(contractorRepo repositories.ContractorRepository) *ContractorUsecase {
	return &ContractorUsecase{contractorRepo: contractorRepo}
}

// List returns all contractors, newest first
func (u *ContractorUsecase) List(ctx context.Context) ([]*entities.Contractor, error) {
	return u.contractorRepo.List(ctx)
}

// GetByID returns one contractor
func (u *ContractorUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contractor, error) {
	return u.contractorRepo.GetByID(ctx, id)
}

// Create adds a contractor in pending status
func (u *ContractorUsecase) Create(ctx context.Context, input *entities.CreateContractorInput) (*entities.Contractor, error) {
	if strings.TrimSpace(input.Name) == "" {
		return nil, domainerrors.Validation("name is required")
	}
	if err := entities.ValidateAmount(input.Rate); err != nil {
		return nil, domainerrors.Validation("rate must be a positive decimal with at most 2 fractional digits")
	}

	contractor := &entities.Contractor{
		ID:       uuid.New(),
		Name:     input.Name,
		Email:    input.Email,
		Skills:   input.Skills,
		Rate:     input.Rate,
		Status:   entities.ContractorStatusPending,
		ImageURL: input.ImageURL,
	}
	if err := u.contractorRepo.Create(ctx, contractor); err != nil {
		return nil, err
	}
	return contractor, nil
}

// UpdateStatus applies a manual lifecycle transition. Contractors are never
// hard-deleted; deactivation is the terminal manual action.
func (u *ContractorUsecase) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ContractorStatus) error {
	if !status.Valid() {
		return domainerrors.Validation("status must be pending, active or inactive")
	}
	return u.contractorRepo.UpdateStatus(ctx, id, status)
}
