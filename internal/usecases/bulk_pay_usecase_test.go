package usecases

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
)

func bulkItems(n int) []entities.BulkPayItem {
	items := make([]entities.BulkPayItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, entities.BulkPayItem{
			ContractorID: uuid.New(),
			Name:         "Contractor",
			Email:        "contractor@example.com",
			Amount:       "50.00",
		})
	}
	return items
}

func TestBulkPay_AllSucceed(t *testing.T) {
	paymentRepo := &fakePaymentRepo{}
	source, _ := newConfiguredSource(t)
	uc := NewBulkPayUsecase(paymentRepo, source)

	items := bulkItems(3)
	outcomes, err := uc.BulkPay(context.Background(), items, "monthly payout")
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	for i, outcome := range outcomes {
		assert.Equal(t, items[i].ContractorID, outcome.ContractorID)
		assert.NotEmpty(t, outcome.PayeeID)
		assert.NotEmpty(t, outcome.PaymentID)
		assert.Equal(t, entities.PaymentStatusProcessing, outcome.Status)
		assert.Empty(t, outcome.Error)
	}

	require.Len(t, paymentRepo.payments, 3)
	for _, record := range paymentRepo.payments {
		assert.Equal(t, entities.PaymentMethodBulk, record.PaymentMethod)
		assert.Equal(t, "monthly payout", record.Memo.String)
		assert.Equal(t, "true", record.Metadata["bulkPayment"])
	}
}

func TestBulkPay_ContinuesPastFailures(t *testing.T) {
	paymentRepo := &fakePaymentRepo{}
	source, _ := newConfiguredSource(t)
	uc := NewBulkPayUsecase(paymentRepo, source)

	items := bulkItems(3)
	items[1].Amount = "not-a-number"

	outcomes, err := uc.BulkPay(context.Background(), items, "")
	require.NoError(t, err)
	require.Len(t, outcomes, 3)

	assert.Equal(t, entities.PaymentStatusProcessing, outcomes[0].Status)
	assert.Equal(t, entities.PaymentStatusFailed, outcomes[1].Status)
	assert.NotEmpty(t, outcomes[1].Error)
	assert.Equal(t, entities.PaymentStatusProcessing, outcomes[2].Status)

	// The failed item leaves no record; the successes are kept.
	assert.Len(t, paymentRepo.payments, 2)
}

func TestBulkPay_ProviderFailurePerItem(t *testing.T) {
	paymentRepo := &fakePaymentRepo{}
	source, provider := newConfiguredSource(t)
	provider.sendErr = domainerrors.Upstream("provider down", nil)
	uc := NewBulkPayUsecase(paymentRepo, source)

	outcomes, err := uc.BulkPay(context.Background(), bulkItems(2), "")
	require.NoError(t, err)
	require.Len(t, outcomes, 2)
	for _, outcome := range outcomes {
		assert.Equal(t, entities.PaymentStatusFailed, outcome.Status)
		assert.NotEmpty(t, outcome.PayeeID)
		assert.Empty(t, outcome.PaymentID)
		assert.NotEmpty(t, outcome.Error)
	}
	assert.Empty(t, paymentRepo.payments)
}

func TestBulkPay_PersistenceFailureKeepsProviderIDs(t *testing.T) {
	paymentRepo := &fakePaymentRepo{createErr: context.DeadlineExceeded}
	source, _ := newConfiguredSource(t)
	uc := NewBulkPayUsecase(paymentRepo, source)

	outcomes, err := uc.BulkPay(context.Background(), bulkItems(1), "")
	require.NoError(t, err)
	require.Len(t, outcomes, 1)

	assert.NotEmpty(t, outcomes[0].PaymentID)
	assert.Equal(t, entities.PaymentStatusProcessing, outcomes[0].Status)
	assert.Contains(t, outcomes[0].Error, "record not persisted")
}

func TestBulkPay_UnconfiguredProvider(t *testing.T) {
	uc := NewBulkPayUsecase(&fakePaymentRepo{}, unconfiguredSource())

	_, err := uc.BulkPay(context.Background(), bulkItems(1), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, domainerrors.ErrNotConfigured)
}

func TestBulkPay_EmptyBatch(t *testing.T) {
	source, _ := newConfiguredSource(t)
	uc := NewBulkPayUsecase(&fakePaymentRepo{}, source)

	outcomes, err := uc.BulkPay(context.Background(), nil, "")
	require.NoError(t, err)
	assert.Empty(t, outcomes)
}
