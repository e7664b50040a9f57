package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/internal/infrastructure/models"
)

// ContractorRepository implements contractor data operations
type ContractorRepository struct {
	db *gorm.DB
}

// NewContractorRepository creates a new contractor repository
func NewContractorRepository(db *gorm.DB) *ContractorRepository {
	return &ContractorRepository{db: db}
}

// Create inserts a contractor. Status defaults to pending when unset.
func (r *ContractorRepository) Create(ctx context.Context, contractor *entities.Contractor) error {
	if contractor.ID == uuid.Nil {
		contractor.ID = uuid.New()
	}
	if contractor.Status == "" {
		contractor.Status = entities.ContractorStatusPending
	}
	skills, err := json.Marshal(contractor.Skills)
	if err != nil {
		return err
	}

	now := time.Now()
	m := &models.Contractor{
		ID:        contractor.ID,
		Name:      contractor.Name,
		Email:     contractor.Email,
		Rate:      contractor.Rate,
		Skills:    string(skills),
		Status:    string(contractor.Status),
		ImageURL:  contractor.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	contractor.CreatedAt = m.CreatedAt
	contractor.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a contractor by ID
func (r *ContractorRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contractor, error) {
	var m models.Contractor
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toContractorEntity(&m), nil
}

// List returns all contractors ordered by creation time descending
func (r *ContractorRepository) List(ctx context.Context) ([]*entities.Contractor, error) {
	var ms []models.Contractor
	if err := r.db.WithContext(ctx).Order("created_at DESC").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]*entities.Contractor, 0, len(ms))
	for i := range ms {
		out = append(out, toContractorEntity(&ms[i]))
	}
	return out, nil
}

// UpdateStatus transitions a contractor and refreshes updated_at
func (r *ContractorRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ContractorStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Contractor{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     string(status),
			"updated_at": time.Now(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domainerrors.ErrNotFound
	}
	return nil
}

func toContractorEntity(m *models.Contractor) *entities.Contractor {
	var skills []string
	if m.Skills != "" {
		// Malformed rows surface as an empty skill list rather than an error.
		_ = json.Unmarshal([]byte(m.Skills), &skills)
	}
	return &entities.Contractor{
		ID:        m.ID,
		Name:      m.Name,
		Email:     m.Email,
		Skills:    skills,
		Rate:      m.Rate,
		Status:    entities.ContractorStatus(m.Status),
		ImageURL:  m.ImageURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
