package entities

import "time"

// PayeeType represents the payment destination kind at the provider
type PayeeType string

const (
	PayeeTypeACH    PayeeType = "US_ACH"
	PayeeTypeUSDC   PayeeType = "USDC"
	PayeeTypeCrypto PayeeType = "CRYPTO_ADDRESS"
)

// AccountType for ACH payees
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// AccountHolderType for ACH payees
type AccountHolderType string

const (
	AccountHolderIndividual AccountHolderType = "individual"
	AccountHolderCompany    AccountHolderType = "company"
)

// Payee represents a registered payment destination at the provider.
// The ID is provider-assigned and opaque. Payees are not deduplicated:
// every payment may register a fresh payee.
type Payee struct {
	ID            string    `json:"id"`
	Type          PayeeType `json:"type"`
	Name          string    `json:"name"`
	Status        string    `json:"status"`
	ContactEmail  string    `json:"contactEmail"`
	AccountMasked string    `json:"accountMasked,omitempty"`
	WalletAddress string    `json:"walletAddress,omitempty"`
	CreatedAt     time.Time `json:"createdAt"`
}

// CreatePayeeInput represents payee attributes sent to the provider
type CreatePayeeInput struct {
	Type              PayeeType         `json:"type"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	AccountNumber     string            `json:"accountNumber,omitempty"`
	RoutingNumber     string            `json:"routingNumber,omitempty"`
	AccountType       AccountType       `json:"accountType,omitempty"`
	AccountHolderType AccountHolderType `json:"accountHolderType,omitempty"`
	WalletAddress     string            `json:"walletAddress,omitempty"`
}

// SearchPayeesFilter narrows payee search results
type SearchPayeesFilter struct {
	Name string `form:"name"`
	Type string `form:"type"`
}

// Balance represents the spendable balance for one currency
type Balance struct {
	Currency  string `json:"currency"`
	Available string `json:"available"`
}
