package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
	"paylance.backend/internal/domain/entities"
	"paylance.backend/internal/domain/repositories"
	"paylance.backend/internal/infrastructure/payman"
	"paylance.backend/pkg/logger"
)

// Settler is implemented by providers whose payments settle in-process.
// The real HTTP provider settles server-side and does not implement it.
type Settler interface {
	SettleDue(ctx context.Context, at time.Time) []*entities.ProviderPayment
}

// PaymentSettlementJob periodically resolves due mock payments and mirrors
// each outcome into the persistence gateway. A contractor is promoted from
// pending to active when a payment for them completes. The job owns the
// timer; stopping it (or cancelling the context) cancels all future
// resolution, so nothing fires after shutdown.
type PaymentSettlementJob struct {
	source         *payman.Source
	paymentRepo    repositories.PaymentRepository
	contractorRepo repositories.ContractorRepository
	interval       time.Duration
	stop           chan struct{}
}

// NewPaymentSettlementJob creates the settlement job
func NewPaymentSettlementJob(
	source *payman.Source,
	paymentRepo repositories.PaymentRepository,
	contractorRepo repositories.ContractorRepository,
	interval time.Duration,
) *PaymentSettlementJob {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	return &PaymentSettlementJob{
		source:         source,
		paymentRepo:    paymentRepo,
		contractorRepo: contractorRepo,
		interval:       interval,
		stop:           make(chan struct{}),
	}
}

// Start runs the settlement loop until Stop is called or ctx is cancelled
func (j *PaymentSettlementJob) Start(ctx context.Context) {
	logger.Info(ctx, "starting payment settlement job",
		zap.Duration("interval", j.interval))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "payment settlement job stopped (context cancelled)")
			return
		case <-j.stop:
			logger.Info(ctx, "payment settlement job stopped")
			return
		case <-ticker.C:
			j.RunOnce(ctx, time.Now())
		}
	}
}

// Stop cancels the settlement loop
func (j *PaymentSettlementJob) Stop() {
	close(j.stop)
}

// RunOnce settles everything due at the given instant and mirrors the
// outcomes. Exposed so tests can drive settlement deterministically.
func (j *PaymentSettlementJob) RunOnce(ctx context.Context, at time.Time) {
	provider, err := j.source.Current()
	if err != nil {
		// Nothing to settle until a credential is configured.
		return
	}
	settler, ok := provider.(Settler)
	if !ok {
		return
	}

	settled := settler.SettleDue(ctx, at)
	for _, payment := range settled {
		j.mirror(ctx, payment)
	}
}

func (j *PaymentSettlementJob) mirror(ctx context.Context, payment *entities.ProviderPayment) {
	logger.Info(ctx, "payment settled",
		zap.String("payment_id", payment.ID),
		zap.String("status", string(payment.Status)))

	record, err := j.paymentRepo.GetByExternalID(ctx, payment.ID)
	if err != nil {
		logger.Warn(ctx, "settled payment has no persisted record",
			zap.String("payment_id", payment.ID), zap.Error(err))
		return
	}
	if err := j.paymentRepo.UpdateStatus(ctx, record.ID, payment.Status); err != nil {
		logger.Error(ctx, "failed to update payment record status",
			zap.String("payment_id", payment.ID), zap.Error(err))
		return
	}

	if payment.Status != entities.PaymentStatusCompleted {
		return
	}
	contractor, err := j.contractorRepo.GetByID(ctx, record.ContractorID)
	if err != nil {
		logger.Warn(ctx, "settled payment references unknown contractor",
			zap.String("contractor_id", record.ContractorID.String()), zap.Error(err))
		return
	}
	if contractor.Status == entities.ContractorStatusPending {
		if err := j.contractorRepo.UpdateStatus(ctx, contractor.ID, entities.ContractorStatusActive); err != nil {
			logger.Error(ctx, "failed to activate contractor",
				zap.String("contractor_id", contractor.ID.String()), zap.Error(err))
		}
	}
}
