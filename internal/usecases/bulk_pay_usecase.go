package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"paylance.backend/internal/domain/entities"
	"paylance.backend/internal/domain/repositories"
	"paylance.backend/internal/infrastructure/payman"
	"paylance.backend/pkg/logger"
)

// BulkPayUsecase runs a best-effort payment batch over multiple contractors.
// Items are processed strictly sequentially, one in flight at a time. The
// batch is NOT transactional: an item failure is recorded in its outcome and
// processing continues; earlier successes are never rolled back.
type BulkPayUsecase struct {
	paymentRepo repositories.PaymentRepository
	source      *payman.Source
}

// NewBulkPayUsecase creates a new bulk payment usecase
func NewBulkPayUsecase(paymentRepo repositories.PaymentRepository, source *payman.Source) *BulkPayUsecase {
	return &BulkPayUsecase{
		paymentRepo: paymentRepo,
		source:      source,
	}
}

// BulkPay creates a payee and sends a payment for every item, collecting one
// outcome per item regardless of individual failures. It returns exactly
// len(items) outcomes in input order.
func (u *BulkPayUsecase) BulkPay(ctx context.Context, items []entities.BulkPayItem, memo string) ([]entities.BulkPayOutcome, error) {
	provider, err := u.source.Current()
	if err != nil {
		return nil, err
	}

	outcomes := make([]entities.BulkPayOutcome, 0, len(items))
	for _, item := range items {
		outcomes = append(outcomes, u.payOne(ctx, provider, item, memo))
	}
	return outcomes, nil
}

func (u *BulkPayUsecase) payOne(ctx context.Context, provider payman.Provider, item entities.BulkPayItem, memo string) entities.BulkPayOutcome {
	outcome := entities.BulkPayOutcome{ContractorID: item.ContractorID}

	if err := entities.ValidateAmount(item.Amount); err != nil {
		outcome.Status = entities.PaymentStatusFailed
		outcome.Error = err.Error()
		return outcome
	}

	payee, err := provider.CreatePayee(ctx, &entities.CreatePayeeInput{
		Type:              entities.PayeeTypeACH,
		Name:              item.Name,
		Email:             item.Email,
		AccountHolderType: entities.AccountHolderIndividual,
	})
	if err != nil {
		logger.Warn(ctx, "bulk pay: payee creation failed",
			zap.String("contractor_id", item.ContractorID.String()),
			zap.Error(err))
		outcome.Status = entities.PaymentStatusFailed
		outcome.Error = err.Error()
		return outcome
	}
	outcome.PayeeID = payee.ID

	payment, err := provider.SendPayment(ctx, &entities.SendPaymentInput{
		AmountDecimal: item.Amount,
		PayeeID:       payee.ID,
		Memo:          memo,
		Metadata: map[string]string{
			"contractorId": item.ContractorID.String(),
			"bulkPayment":  "true",
		},
	})
	if err != nil {
		logger.Warn(ctx, "bulk pay: payment failed",
			zap.String("contractor_id", item.ContractorID.String()),
			zap.Error(err))
		outcome.Status = entities.PaymentStatusFailed
		outcome.Error = err.Error()
		return outcome
	}
	outcome.PaymentID = payment.ID
	outcome.Status = payment.Status

	record := &entities.Payment{
		ID:                uuid.New(),
		ContractorID:      item.ContractorID,
		Amount:            item.Amount,
		PaymentMethod:     entities.PaymentMethodBulk,
		PayeeID:           null.StringFrom(payee.ID),
		ExternalPaymentID: null.StringFrom(payment.ID),
		Status:            payment.Status,
		Metadata:          payment.Metadata,
	}
	if memo != "" {
		record.Memo = null.StringFrom(memo)
	}
	if err := u.paymentRepo.Create(ctx, record); err != nil {
		// The payment is in flight at the provider; report the record
		// failure in the outcome but keep the provider IDs.
		logger.Error(ctx, "bulk pay: failed to persist payment record",
			zap.String("payment_id", payment.ID),
			zap.Error(err))
		outcome.Error = "payment sent but record not persisted: " + err.Error()
	}
	return outcome
}
