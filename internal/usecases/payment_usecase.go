package usecases

import (
	"context"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"
	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/internal/domain/repositories"
	"paylance.backend/internal/infrastructure/payman"
	"paylance.backend/pkg/logger"
)

// PaymentUsecase handles the single-payment initiation flow and payment
// queries. Initiation is the two-step provider sequence: register a payee,
// then send the payment, then mirror the result into the persistence
// gateway. There are no automatic retries; a failed submission is retried by
// submitting again.
type PaymentUsecase struct {
	paymentRepo    repositories.PaymentRepository
	contractorRepo repositories.ContractorRepository
	source         *payman.Source
}

// NewPaymentUsecase creates a new payment usecase
func NewPaymentUsecase(
	paymentRepo repositories.PaymentRepository,
	contractorRepo repositories.ContractorRepository,
	source *payman.Source,
) *PaymentUsecase {
	return &PaymentUsecase{
		paymentRepo:    paymentRepo,
		contractorRepo: contractorRepo,
		source:         source,
	}
}

// Submit validates the form, registers a payee, sends the payment and
// persists the record. The returned submission carries all three artifacts.
func (u *PaymentUsecase) Submit(ctx context.Context, req *entities.SubmitPaymentRequest) (*entities.PaymentSubmission, error) {
	form, err := req.Form()
	if err != nil {
		return nil, err
	}
	if err := form.Validate(); err != nil {
		return nil, err
	}

	if _, err := u.contractorRepo.GetByID(ctx, req.ContractorID); err != nil {
		if err == domainerrors.ErrNotFound {
			return nil, domainerrors.NotFound("contractor not found")
		}
		return nil, err
	}

	provider, err := u.source.Current()
	if err != nil {
		return nil, err
	}

	payee, err := provider.CreatePayee(ctx, form.PayeeInput())
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "created payee",
		zap.String("payee_id", payee.ID),
		zap.String("type", string(payee.Type)))

	payment, err := provider.SendPayment(ctx, &entities.SendPaymentInput{
		AmountDecimal: req.Amount,
		PayeeID:       payee.ID,
		Memo:          req.Memo,
		Metadata: map[string]string{
			"contractorId": req.ContractorID.String(),
		},
	})
	if err != nil {
		return nil, err
	}
	logger.Info(ctx, "payment initiated",
		zap.String("payment_id", payment.ID),
		zap.String("status", string(payment.Status)))

	record := &entities.Payment{
		ID:                uuid.New(),
		ContractorID:      req.ContractorID,
		Amount:            req.Amount,
		PaymentMethod:     req.PaymentMethod,
		PayeeID:           null.StringFrom(payee.ID),
		ExternalPaymentID: null.StringFrom(payment.ID),
		Status:            payment.Status,
		Metadata:          payment.Metadata,
	}
	if req.Memo != "" {
		record.Memo = null.StringFrom(req.Memo)
	}
	if err := u.paymentRepo.Create(ctx, record); err != nil {
		// The provider accepted the payment; surface the storage failure
		// rather than pretending the whole submission failed silently.
		return nil, domainerrors.Persistence(err)
	}

	return &entities.PaymentSubmission{
		Payee:   payee,
		Payment: payment,
		Record:  record,
	}, nil
}

// GetByID returns one persisted payment
func (u *PaymentUsecase) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	return u.paymentRepo.GetByID(ctx, id)
}

// List returns persisted payments, newest first, with pagination
func (u *PaymentUsecase) List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error) {
	return u.paymentRepo.List(ctx, limit, offset)
}

// SearchPayees passes a payee search through to the provider
func (u *PaymentUsecase) SearchPayees(ctx context.Context, filter *entities.SearchPayeesFilter) ([]*entities.Payee, error) {
	provider, err := u.source.Current()
	if err != nil {
		return nil, err
	}
	return provider.SearchPayees(ctx, filter)
}

// GetSpendableBalance returns the provider's available balance for a currency
func (u *PaymentUsecase) GetSpendableBalance(ctx context.Context, currency string) (*entities.Balance, error) {
	provider, err := u.source.Current()
	if err != nil {
		return nil, err
	}
	return provider.GetSpendableBalance(ctx, currency)
}
