package repositories

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/internal/infrastructure/models"
)

// PaymentRepository implements persisted payment data operations
type PaymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) *PaymentRepository {
	return &PaymentRepository{db: db}
}

// Create inserts a payment record. Status defaults to processing when unset.
func (r *PaymentRepository) Create(ctx context.Context, payment *entities.Payment) error {
	if payment.ID == uuid.Nil {
		payment.ID = uuid.New()
	}
	if payment.Status == "" {
		payment.Status = entities.PaymentStatusProcessing
	}
	metadata := "{}"
	if len(payment.Metadata) > 0 {
		raw, err := json.Marshal(payment.Metadata)
		if err != nil {
			return err
		}
		metadata = string(raw)
	}

	now := time.Now()
	m := &models.Payment{
		ID:            payment.ID,
		ContractorID:  payment.ContractorID,
		Amount:        payment.Amount,
		PaymentMethod: string(payment.PaymentMethod),
		Status:        string(payment.Status),
		Metadata:      metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if payment.Memo.Valid {
		m.Memo = &payment.Memo.String
	}
	if payment.PayeeID.Valid {
		m.PayeeID = &payment.PayeeID.String
	}
	if payment.ExternalPaymentID.Valid {
		m.ExternalPaymentID = &payment.ExternalPaymentID.String
	}

	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	payment.CreatedAt = m.CreatedAt
	payment.UpdatedAt = m.UpdatedAt
	return nil
}

// GetByID gets a payment by ID with its contractor joined
func (r *PaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	var m models.Payment
	if err := r.db.WithContext(ctx).Preload("Contractor").Where("id = ?", id).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPaymentEntity(&m), nil
}

// GetByExternalID gets a payment by the provider-assigned payment ID
func (r *PaymentRepository) GetByExternalID(ctx context.Context, externalID string) (*entities.Payment, error) {
	var m models.Payment
	if err := r.db.WithContext(ctx).Preload("Contractor").
		Where("external_payment_id = ?", externalID).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domainerrors.ErrNotFound
		}
		return nil, err
	}
	return toPaymentEntity(&m), nil
}

// List returns payments ordered by creation time descending with pagination.
// A non-positive limit returns all records.
func (r *PaymentRepository) List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error) {
	var total int64
	if err := r.db.WithContext(ctx).Model(&models.Payment{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := r.db.WithContext(ctx).Preload("Contractor").Order("created_at DESC")
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	var ms []models.Payment
	if err := q.Find(&ms).Error; err != nil {
		return nil, 0, err
	}
	out := make([]*entities.Payment, 0, len(ms))
	for i := range ms {
		out = append(out, toPaymentEntity(&ms[i]))
	}
	return out, total, nil
}

// UpdateStatus transitions a payment and refreshes updated_at
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.PaymentStatus) error {
	res := r.db.WithContext(ctx).Model(&models.Payment{}).
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

// CountCompletedByContractor counts completed payments for one contractor
func (r *PaymentRepository) CountCompletedByContractor(ctx context.Context, contractorID uuid.UUID) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&models.Payment{}).
		Where("contractor_id = ? AND status = ?", contractorID, string(entities.PaymentStatusCompleted)).
		Count(&n).Error
	return n, err
}

func toPaymentEntity(m *models.Payment) *entities.Payment {
	p := &entities.Payment{
		ID:            m.ID,
		ContractorID:  m.ContractorID,
		Amount:        m.Amount,
		PaymentMethod: entities.PaymentMethod(m.PaymentMethod),
		Status:        entities.PaymentStatus(m.Status),
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
	if m.Memo != nil {
		p.Memo = null.StringFrom(*m.Memo)
	}
	if m.PayeeID != nil {
		p.PayeeID = null.StringFrom(*m.PayeeID)
	}
	if m.ExternalPaymentID != nil {
		p.ExternalPaymentID = null.StringFrom(*m.ExternalPaymentID)
	}
	if m.Metadata != "" {
		_ = json.Unmarshal([]byte(m.Metadata), &p.Metadata)
	}
	if m.Contractor.ID != uuid.Nil {
		p.ContractorName = m.Contractor.Name
		p.ContractorEmail = m.Contractor.Email
	}
	return p
}
