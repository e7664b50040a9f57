package payman

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/pkg/crypto"
)

const (
	// DefaultBaseURL is the provider's agent API endpoint
	DefaultBaseURL = "https://agent.payman.ai/api"

	secretHeader = "x-payman-api-secret"
)

// Client talks to the payment provider over HTTP. The credential travels in
// a request header on every call.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a provider client. The credential is validated
// syntactically up front; a malformed key never produces a client.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if err := crypto.ValidateAPIKey(apiKey); err != nil {
		return nil, domainerrors.InvalidCredential(err.Error())
	}
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}, nil
}

type payeeResponse struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	ContactDetails struct {
		Email string `json:"email"`
	} `json:"contactDetails"`
	CreatedAt time.Time `json:"createdAt"`
}

func (r *payeeResponse) toEntity() *entities.Payee {
	return &entities.Payee{
		ID:           r.ID,
		Type:         entities.PayeeType(r.Type),
		Name:         r.Name,
		Status:       r.Status,
		ContactEmail: r.ContactDetails.Email,
		CreatedAt:    r.CreatedAt,
	}
}

type paymentResponse struct {
	ID        string            `json:"id"`
	Status    string            `json:"status"`
	Amount    json.Number       `json:"amount"`
	PayeeID   string            `json:"payeeId"`
	Memo      string            `json:"memo"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

func (r *paymentResponse) toEntity() *entities.ProviderPayment {
	return &entities.ProviderPayment{
		ID:            r.ID,
		AmountDecimal: r.Amount.String(),
		PayeeID:       r.PayeeID,
		Memo:          r.Memo,
		Status:        entities.PaymentStatus(strings.ToLower(r.Status)),
		Metadata:      r.Metadata,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// CreatePayee registers a payment destination at the provider
func (c *Client) CreatePayee(ctx context.Context, input *entities.CreatePayeeInput) (*entities.Payee, error) {
	body := map[string]interface{}{
		"type": string(input.Type),
		"name": input.Name,
		"contactDetails": map[string]string{
			"email": input.Email,
		},
	}
	switch input.Type {
	case entities.PayeeTypeACH:
		body["accountHolderName"] = input.Name
		body["accountHolderType"] = string(input.AccountHolderType)
		body["accountNumber"] = input.AccountNumber
		body["routingNumber"] = input.RoutingNumber
		body["accountType"] = string(input.AccountType)
	case entities.PayeeTypeUSDC, entities.PayeeTypeCrypto:
		body["address"] = input.WalletAddress
	default:
		return nil, domainerrors.BadRequest(fmt.Sprintf("unsupported payee type %q", input.Type))
	}

	var resp payeeResponse
	if err := c.do(ctx, http.MethodPost, "/payments/payees", body, &resp); err != nil {
		return nil, err
	}
	return resp.toEntity(), nil
}

// SendPayment submits a transfer instruction
func (c *Client) SendPayment(ctx context.Context, input *entities.SendPaymentInput) (*entities.ProviderPayment, error) {
	amount, err := strconv.ParseFloat(input.AmountDecimal, 64)
	if err != nil {
		return nil, domainerrors.BadRequest("amount is not a valid decimal")
	}
	body := map[string]interface{}{
		"amountDecimal": amount,
		"payeeId":       input.PayeeID,
		"memo":          input.Memo,
		"metadata":      input.Metadata,
	}

	var resp paymentResponse
	if err := c.do(ctx, http.MethodPost, "/payments/send-payment", body, &resp); err != nil {
		return nil, err
	}
	return resp.toEntity(), nil
}

// GetPayment retrieves a single payment
func (c *Client) GetPayment(ctx context.Context, id string) (*entities.ProviderPayment, error) {
	var resp paymentResponse
	if err := c.do(ctx, http.MethodGet, "/payments/"+url.PathEscape(id), nil, &resp); err != nil {
		return nil, err
	}
	return resp.toEntity(), nil
}

// ListPayments retrieves all payments known to the provider
func (c *Client) ListPayments(ctx context.Context) ([]*entities.ProviderPayment, error) {
	var resp struct {
		Payments []paymentResponse `json:"payments"`
	}
	if err := c.do(ctx, http.MethodGet, "/payments", nil, &resp); err != nil {
		return nil, err
	}
	out := make([]*entities.ProviderPayment, 0, len(resp.Payments))
	for i := range resp.Payments {
		out = append(out, resp.Payments[i].toEntity())
	}
	return out, nil
}

// SearchPayees lists payees matching the filter
func (c *Client) SearchPayees(ctx context.Context, filter *entities.SearchPayeesFilter) ([]*entities.Payee, error) {
	path := "/payments/search-payees"
	if filter != nil {
		q := url.Values{}
		if filter.Name != "" {
			q.Set("name", filter.Name)
		}
		if filter.Type != "" {
			q.Set("type", filter.Type)
		}
		if len(q) > 0 {
			path += "?" + q.Encode()
		}
	}

	var resp []payeeResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	out := make([]*entities.Payee, 0, len(resp))
	for i := range resp {
		out = append(out, resp[i].toEntity())
	}
	return out, nil
}

// GetSpendableBalance returns the available balance for a currency code
func (c *Client) GetSpendableBalance(ctx context.Context, currency string) (*entities.Balance, error) {
	var resp struct {
		Available json.Number `json:"available"`
	}
	if err := c.do(ctx, http.MethodGet, "/balances/currencies/"+url.PathEscape(currency), nil, &resp); err != nil {
		return nil, err
	}
	return &entities.Balance{
		Currency:  currency,
		Available: resp.Available.String(),
	}, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set(secretHeader, c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domainerrors.Upstream("payment provider unreachable", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return domainerrors.Upstream("failed to read provider response", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		msg := fmt.Sprintf("provider returned status %d", resp.StatusCode)
		if err := json.Unmarshal(raw, &apiErr); err == nil {
			if apiErr.Error != "" {
				msg = apiErr.Error
			} else if apiErr.Message != "" {
				msg = apiErr.Message
			}
		}
		return domainerrors.Upstream(msg, domainerrors.ErrUpstream)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return domainerrors.Upstream("failed to decode provider response", err)
	}
	return nil
}
