package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func performJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// fakeContractorService backs the contractor handler in tests.
type fakeContractorService struct {
	contractors map[uuid.UUID]*entities.Contractor
	listErr     error
}

func newFakeContractorService() *fakeContractorService {
	return &fakeContractorService{contractors: make(map[uuid.UUID]*entities.Contractor)}
}

func (f *fakeContractorService) List(ctx context.Context) ([]*entities.Contractor, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*entities.Contractor, 0, len(f.contractors))
	for _, c := range f.contractors {
		out = append(out, c)
	}
	return out, nil
}

func (f *fakeContractorService) GetByID(ctx context.Context, id uuid.UUID) (*entities.Contractor, error) {
	c, ok := f.contractors[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return c, nil
}

func (f *fakeContractorService) Create(ctx context.Context, input *entities.CreateContractorInput) (*entities.Contractor, error) {
	c := &entities.Contractor{
		ID:     uuid.New(),
		Name:   input.Name,
		Email:  input.Email,
		Skills: input.Skills,
		Rate:   input.Rate,
		Status: entities.ContractorStatusPending,
	}
	f.contractors[c.ID] = c
	return c, nil
}

func (f *fakeContractorService) UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ContractorStatus) error {
	if !status.Valid() {
		return domainerrors.Validation("status must be pending, active or inactive")
	}
	c, ok := f.contractors[id]
	if !ok {
		return domainerrors.ErrNotFound
	}
	c.Status = status
	return nil
}

// fakePaymentService backs the payment handler in tests.
type fakePaymentService struct {
	submission *entities.PaymentSubmission
	submitErr  error
	payments   map[uuid.UUID]*entities.Payment
	payees     []*entities.Payee
	balance    *entities.Balance
	balanceErr error
}

func (f *fakePaymentService) Submit(ctx context.Context, req *entities.SubmitPaymentRequest) (*entities.PaymentSubmission, error) {
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.submission, nil
}

func (f *fakePaymentService) GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error) {
	p, ok := f.payments[id]
	if !ok {
		return nil, domainerrors.ErrNotFound
	}
	return p, nil
}

func (f *fakePaymentService) List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error) {
	out := make([]*entities.Payment, 0, len(f.payments))
	for _, p := range f.payments {
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

func (f *fakePaymentService) SearchPayees(ctx context.Context, filter *entities.SearchPayeesFilter) ([]*entities.Payee, error) {
	return f.payees, nil
}

func (f *fakePaymentService) GetSpendableBalance(ctx context.Context, currency string) (*entities.Balance, error) {
	if f.balanceErr != nil {
		return nil, f.balanceErr
	}
	return f.balance, nil
}

// fakeBulkPayService backs the bulk pay handler in tests.
type fakeBulkPayService struct {
	outcomes []entities.BulkPayOutcome
	err      error
	gotItems []entities.BulkPayItem
	gotMemo  string
}

func (f *fakeBulkPayService) BulkPay(ctx context.Context, items []entities.BulkPayItem, memo string) ([]entities.BulkPayOutcome, error) {
	f.gotItems = items
	f.gotMemo = memo
	if f.err != nil {
		return nil, f.err
	}
	return f.outcomes, nil
}

// fakeSettingsService backs the settings handler in tests.
type fakeSettingsService struct {
	configured   bool
	masked       string
	configureErr error
	gotKey       string
}

func (f *fakeSettingsService) ConfigureAPIKey(ctx context.Context, apiKey string) error {
	f.gotKey = apiKey
	if f.configureErr != nil {
		return f.configureErr
	}
	f.configured = true
	f.masked = apiKey[:4] + "****"
	return nil
}

func (f *fakeSettingsService) APIKeyStatus(ctx context.Context) (string, bool) {
	return f.masked, f.configured
}
