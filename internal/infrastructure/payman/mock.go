package payman

import (
	"context"
	"math/rand"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/pkg/crypto"
)

const (
	// DefaultSettleDelay is how long a mock payment stays in processing
	DefaultSettleDelay = 5 * time.Second
	// DefaultSuccessRate is the probability a mock payment completes
	DefaultSuccessRate = 0.8
)

// Mock simulates the payment provider in-process: payees and payments live
// in maps, balances are seeded, and each sent payment settles to exactly one
// terminal state once its delay elapses. Settlement is pull-based via
// SettleDue rather than a fire-and-forget timer, so callers can drive and
// cancel it deterministically.
type Mock struct {
	mu          sync.Mutex
	payees      map[string]*entities.Payee
	payments    map[string]*entities.ProviderPayment
	balances    map[string]float64
	pending     []pendingSettlement
	settleDelay time.Duration
	successRate float64
	now         func() time.Time
	roll        func() float64
}

type pendingSettlement struct {
	paymentID string
	dueAt     time.Time
}

// MockOption customizes a Mock
type MockOption func(*Mock)

// WithSettleDelay overrides the settlement delay
func WithSettleDelay(d time.Duration) MockOption {
	return func(m *Mock) { m.settleDelay = d }
}

// WithSuccessRate overrides the completion probability
func WithSuccessRate(rate float64) MockOption {
	return func(m *Mock) { m.successRate = rate }
}

// WithClock overrides the time source (used in tests)
func WithClock(now func() time.Time) MockOption {
	return func(m *Mock) { m.now = now }
}

// WithRoll overrides the randomness source (used in tests)
func WithRoll(roll func() float64) MockOption {
	return func(m *Mock) { m.roll = roll }
}

// NewMock creates a mock provider. The credential gets the same syntactic
// checks as the real client.
func NewMock(apiKey string, opts ...MockOption) (*Mock, error) {
	if err := crypto.ValidateAPIKey(apiKey); err != nil {
		return nil, domainerrors.InvalidCredential(err.Error())
	}
	m := &Mock{
		payees:   make(map[string]*entities.Payee),
		payments: make(map[string]*entities.ProviderPayment),
		balances: map[string]float64{
			"USD":  50000,
			"USDC": 10000,
		},
		settleDelay: DefaultSettleDelay,
		successRate: DefaultSuccessRate,
		now:         time.Now,
		roll:        rand.Float64,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// CreatePayee registers a payee in memory and assigns a provider-style ID
func (m *Mock) CreatePayee(ctx context.Context, input *entities.CreatePayeeInput) (*entities.Payee, error) {
	if input.Name == "" {
		return nil, domainerrors.Upstream("provider rejected payee: name is required", domainerrors.ErrUpstream)
	}

	id, err := crypto.GenerateID("pd")
	if err != nil {
		return nil, err
	}
	payee := &entities.Payee{
		ID:           id,
		Type:         input.Type,
		Name:         input.Name,
		Status:       "ACTIVE",
		ContactEmail: input.Email,
		CreatedAt:    m.now(),
	}
	switch input.Type {
	case entities.PayeeTypeACH:
		payee.AccountMasked = crypto.MaskAccountNumber(input.AccountNumber)
	case entities.PayeeTypeUSDC, entities.PayeeTypeCrypto:
		payee.WalletAddress = input.WalletAddress
	}

	m.mu.Lock()
	m.payees[payee.ID] = payee
	m.mu.Unlock()
	return payee, nil
}

// SendPayment creates a payment in processing state and schedules its
// settlement. No balance check happens at submission time.
func (m *Mock) SendPayment(ctx context.Context, input *entities.SendPaymentInput) (*entities.ProviderPayment, error) {
	if _, err := strconv.ParseFloat(input.AmountDecimal, 64); err != nil {
		return nil, domainerrors.Upstream("provider rejected payment: bad amount", domainerrors.ErrUpstream)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.payees[input.PayeeID]; !ok {
		return nil, domainerrors.Upstream("provider rejected payment: unknown payee "+input.PayeeID, domainerrors.ErrUpstream)
	}

	id, err := crypto.GenerateID("pay")
	if err != nil {
		return nil, err
	}
	now := m.now()
	payment := &entities.ProviderPayment{
		ID:            id,
		AmountDecimal: input.AmountDecimal,
		PayeeID:       input.PayeeID,
		Memo:          input.Memo,
		Status:        entities.PaymentStatusProcessing,
		Metadata:      input.Metadata,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	m.payments[payment.ID] = payment
	m.pending = append(m.pending, pendingSettlement{
		paymentID: payment.ID,
		dueAt:     now.Add(m.settleDelay),
	})

	out := *payment
	return &out, nil
}

// SettleDue resolves every payment whose settlement delay has elapsed at the
// given instant. Each payment transitions exactly once, to completed with
// the configured probability or to failed otherwise; completion deducts the
// payee currency's balance. The settled payments are returned so the caller
// can mirror the outcome into its own store.
func (m *Mock) SettleDue(ctx context.Context, at time.Time) []*entities.ProviderPayment {
	m.mu.Lock()
	defer m.mu.Unlock()

	var settled []*entities.ProviderPayment
	remaining := m.pending[:0]
	for _, p := range m.pending {
		if p.dueAt.After(at) {
			remaining = append(remaining, p)
			continue
		}
		payment, ok := m.payments[p.paymentID]
		if !ok || payment.Status.Terminal() {
			continue
		}
		if m.roll() < m.successRate {
			payment.Status = entities.PaymentStatusCompleted
			m.debit(payment)
		} else {
			payment.Status = entities.PaymentStatusFailed
		}
		payment.UpdatedAt = at
		out := *payment
		settled = append(settled, &out)
	}
	m.pending = remaining
	return settled
}

func (m *Mock) debit(payment *entities.ProviderPayment) {
	amount, err := strconv.ParseFloat(payment.AmountDecimal, 64)
	if err != nil {
		return
	}
	currency := "USD"
	if payee, ok := m.payees[payment.PayeeID]; ok {
		if payee.Type == entities.PayeeTypeUSDC || payee.Type == entities.PayeeTypeCrypto {
			currency = "USDC"
		}
	}
	m.balances[currency] -= amount
}

// PendingCount reports how many payments still await settlement
func (m *Mock) PendingCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.pending)
}

// GetPayment retrieves a payment by provider ID
func (m *Mock) GetPayment(ctx context.Context, id string) (*entities.ProviderPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payment, ok := m.payments[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	out := *payment
	return &out, nil
}

// ListPayments returns all payments, newest first
func (m *Mock) ListPayments(ctx context.Context) ([]*entities.ProviderPayment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entities.ProviderPayment, 0, len(m.payments))
	for _, p := range m.payments {
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// SearchPayees lists payees matching the filter, name as a case-insensitive
// substring and type as an exact match
func (m *Mock) SearchPayees(ctx context.Context, filter *entities.SearchPayeesFilter) ([]*entities.Payee, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*entities.Payee, 0, len(m.payees))
	for _, p := range m.payees {
		if filter != nil {
			if filter.Name != "" && !strings.Contains(strings.ToLower(p.Name), strings.ToLower(filter.Name)) {
				continue
			}
			if filter.Type != "" && string(p.Type) != filter.Type {
				continue
			}
		}
		cp := *p
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// GetSpendableBalance returns the simulated balance for a currency
func (m *Mock) GetSpendableBalance(ctx context.Context, currency string) (*entities.Balance, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	available, ok := m.balances[strings.ToUpper(currency)]
	if !ok {
		return nil, domainerrors.NotFound("unknown currency " + currency)
	}
	return &entities.Balance{
		Currency:  strings.ToUpper(currency),
		Available: strconv.FormatFloat(available, 'f', 2, 64),
	}, nil
}
