package payman

import (
	"context"
	"sync"

	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/pkg/crypto"
)

// Provider mediates all calls to the payment provider. Implementations must
// be safe for concurrent use. No method retries on failure; callers retry
// manually.
type Provider interface {
	CreatePayee(ctx context.Context, input *entities.CreatePayeeInput) (*entities.Payee, error)
	SendPayment(ctx context.Context, input *entities.SendPaymentInput) (*entities.ProviderPayment, error)
	GetPayment(ctx context.Context, id string) (*entities.ProviderPayment, error)
	ListPayments(ctx context.Context) ([]*entities.ProviderPayment, error)
	SearchPayees(ctx context.Context, filter *entities.SearchPayeesFilter) ([]*entities.Payee, error)
	GetSpendableBalance(ctx context.Context, currency string) (*entities.Balance, error)
}

// Factory builds a Provider from a credential.
type Factory func(apiKey string) (Provider, error)

// Source holds the currently configured provider. It is constructed
// explicitly and injected wherever a provider is needed; configuring a new
// credential replaces the provider last-write-wins. An unconfigured source
// fails fast on Current.
type Source struct {
	mu      sync.RWMutex
	factory Factory
	current Provider
	masked  string
}

// NewSource creates a provider source backed by the given factory
func NewSource(factory Factory) *Source {
	return &Source{factory: factory}
}

// Configure validates the credential, builds a provider from it and swaps it
// in. A malformed key never replaces the active provider.
func (s *Source) Configure(apiKey string) error {
	if err := crypto.ValidateAPIKey(apiKey); err != nil {
		return domainerrors.InvalidCredential(err.Error())
	}
	p, err := s.factory(apiKey)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = p
	s.masked = crypto.MaskKey(apiKey)
	return nil
}

// Current returns the active provider, or a descriptive error when no
// credential has been configured yet.
func (s *Source) Current() (Provider, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil, domainerrors.NotConfigured()
	}
	return s.current, nil
}

// MaskedKey returns the display form of the configured credential
func (s *Source) MaskedKey() (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.masked, s.current != nil
}
