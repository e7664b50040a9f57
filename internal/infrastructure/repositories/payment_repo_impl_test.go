package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null/v8"
	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
)

func seedContractor(t *testing.T, repo *ContractorRepository) *entities.Contractor {
	t.Helper()
	c := &entities.Contractor{Name: "Jane Doe", Email: "jane@example.com", Rate: "85"}
	require.NoError(t, repo.Create(context.Background(), c))
	return c
}

func TestPaymentRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	createContractorTable(t, db)
	createPaymentTable(t, db)
	contractor := seedContractor(t, NewContractorRepository(db))
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := &entities.Payment{
		ContractorID:      contractor.ID,
		Amount:            "100.00",
		Memo:              null.StringFrom("June invoice"),
		PaymentMethod:     entities.PaymentMethodACH,
		PayeeID:           null.StringFrom("pd-abc123"),
		ExternalPaymentID: null.StringFrom("pay-abc123"),
		Metadata:          map[string]string{"contractorId": contractor.ID.String()},
	}
	require.NoError(t, repo.Create(ctx, p))
	require.NotEqual(t, uuid.Nil, p.ID)
	require.Equal(t, entities.PaymentStatusProcessing, p.Status)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, "100.00", got.Amount)
	require.Equal(t, "June invoice", got.Memo.String)
	require.Equal(t, "pd-abc123", got.PayeeID.String)
	require.Equal(t, "pay-abc123", got.ExternalPaymentID.String)
	require.Equal(t, contractor.ID.String(), got.Metadata["contractorId"])
	require.Equal(t, "Jane Doe", got.ContractorName)
	require.Equal(t, "jane@example.com", got.ContractorEmail)
}

func TestPaymentRepository_GetByExternalID(t *testing.T) {
	db := newTestDB(t)
	createContractorTable(t, db)
	createPaymentTable(t, db)
	contractor := seedContractor(t, NewContractorRepository(db))
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := &entities.Payment{
		ContractorID:      contractor.ID,
		Amount:            "42.50",
		PaymentMethod:     entities.PaymentMethodUSDC,
		ExternalPaymentID: null.StringFrom("pay-xyz"),
	}
	require.NoError(t, repo.Create(ctx, p))

	got, err := repo.GetByExternalID(ctx, "pay-xyz")
	require.NoError(t, err)
	require.Equal(t, p.ID, got.ID)

	_, err = repo.GetByExternalID(ctx, "pay-missing")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestPaymentRepository_ListPagination(t *testing.T) {
	db := newTestDB(t)
	createContractorTable(t, db)
	createPaymentTable(t, db)
	contractor := seedContractor(t, NewContractorRepository(db))
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	now := time.Now()
	for i := 0; i < 5; i++ {
		mustExec(t, db, `INSERT INTO payments(id,contractor_id,amount,payment_method,status,metadata,created_at,updated_at) VALUES (?,?,?,?,?,?,?,?)`,
			uuid.New().String(), contractor.ID.String(), "10.00", "ACH", "processing", "{}",
			now.Add(time.Duration(i)*time.Second), now)
	}

	page, total, err := repo.List(ctx, 2, 0)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, page, 2)
	require.True(t, page[0].CreatedAt.After(page[1].CreatedAt))

	all, total, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	require.Equal(t, int64(5), total)
	require.Len(t, all, 5)

	offsetPage, _, err := repo.List(ctx, 2, 4)
	require.NoError(t, err)
	require.Len(t, offsetPage, 1)
}

func TestPaymentRepository_UpdateStatus(t *testing.T) {
	db := newTestDB(t)
	createContractorTable(t, db)
	createPaymentTable(t, db)
	contractor := seedContractor(t, NewContractorRepository(db))
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	p := &entities.Payment{ContractorID: contractor.ID, Amount: "10", PaymentMethod: entities.PaymentMethodACH}
	require.NoError(t, repo.Create(ctx, p))

	require.NoError(t, repo.UpdateStatus(ctx, p.ID, entities.PaymentStatusCompleted))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.Equal(t, entities.PaymentStatusCompleted, got.Status)

	require.ErrorIs(t, repo.UpdateStatus(ctx, uuid.New(), entities.PaymentStatusFailed), domainerrors.ErrNotFound)
}

func TestPaymentRepository_CountCompletedByContractor(t *testing.T) {
	db := newTestDB(t)
	createContractorTable(t, db)
	createPaymentTable(t, db)
	contractor := seedContractor(t, NewContractorRepository(db))
	repo := NewPaymentRepository(db)
	ctx := context.Background()

	statuses := []entities.PaymentStatus{
		entities.PaymentStatusCompleted,
		entities.PaymentStatusCompleted,
		entities.PaymentStatusFailed,
		entities.PaymentStatusProcessing,
	}
	for _, status := range statuses {
		p := &entities.Payment{
			ContractorID:  contractor.ID,
			Amount:        "10",
			PaymentMethod: entities.PaymentMethodACH,
			Status:        status,
		}
		require.NoError(t, repo.Create(ctx, p))
	}

	n, err := repo.CountCompletedByContractor(ctx, contractor.ID)
	require.NoError(t, err)
	require.Equal(t, int64(2), n)

	n, err = repo.CountCompletedByContractor(ctx, uuid.New())
	require.NoError(t, err)
	require.Equal(t, int64(0), n)
}
