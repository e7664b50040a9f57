package entities

import (
	"regexp"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/google/uuid"

	domainerrors "paylance.backend/internal/domain/errors"
)

// Validation is purely syntactic: no duplicate-payment detection and no
// balance check happens before submission.
var (
	amountPattern        = regexp.MustCompile(`^\d+(\.\d{1,2})?$`)
	emailPattern         = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	accountNumberPattern = regexp.MustCompile(`^\d{4,17}$`)
	routingNumberPattern = regexp.MustCompile(`^\d{9}$`)
)

// PaymentFormInput holds the fields shared by the ACH and USDC forms.
type PaymentFormInput struct {
	Name   string `json:"name"`
	Email  string `json:"email"`
	Amount string `json:"amount"`
	Memo   string `json:"memo,omitempty"`
}

// ValidateAmount checks the boundary amount format: a non-negative decimal
// with at most 2 fractional digits, greater than zero.
func ValidateAmount(amount string) error {
	if !amountPattern.MatchString(amount) {
		return domainerrors.Validation("amount must be a positive decimal with at most 2 fractional digits")
	}
	if strings.Trim(amount, "0.") == "" {
		return domainerrors.Validation("amount must be greater than zero")
	}
	return nil
}

func (i *PaymentFormInput) validateCommon() error {
	if strings.TrimSpace(i.Name) == "" {
		return domainerrors.Validation("name is required")
	}
	if !emailPattern.MatchString(i.Email) {
		return domainerrors.Validation("email must be a valid email address")
	}
	return ValidateAmount(i.Amount)
}

// ACHPaymentInput is the typed ACH payment form.
type ACHPaymentInput struct {
	PaymentFormInput
	AccountNumber     string            `json:"accountNumber"`
	RoutingNumber     string            `json:"routingNumber"`
	AccountType       AccountType       `json:"accountType"`
	AccountHolderType AccountHolderType `json:"accountHolderType"`
}

// Validate checks the ACH form syntactically and returns a field-specific
// validation error for the first violation found.
func (i *ACHPaymentInput) Validate() error {
	if err := i.validateCommon(); err != nil {
		return err
	}
	if !accountNumberPattern.MatchString(i.AccountNumber) {
		return domainerrors.Validation("accountNumber must be 4 to 17 digits")
	}
	if !routingNumberPattern.MatchString(i.RoutingNumber) {
		return domainerrors.Validation("routingNumber must be exactly 9 digits")
	}
	if i.AccountType != AccountTypeChecking && i.AccountType != AccountTypeSavings {
		return domainerrors.Validation("accountType must be checking or savings")
	}
	if i.AccountHolderType != AccountHolderIndividual && i.AccountHolderType != AccountHolderCompany {
		return domainerrors.Validation("accountHolderType must be individual or company")
	}
	return nil
}

// PayeeInput maps the form to the provider payee shape.
func (i *ACHPaymentInput) PayeeInput() *CreatePayeeInput {
	return &CreatePayeeInput{
		Type:              PayeeTypeACH,
		Name:              i.Name,
		Email:             i.Email,
		AccountNumber:     i.AccountNumber,
		RoutingNumber:     i.RoutingNumber,
		AccountType:       i.AccountType,
		AccountHolderType: i.AccountHolderType,
	}
}

// USDCPaymentInput is the typed USDC payment form.
type USDCPaymentInput struct {
	PaymentFormInput
	WalletAddress string `json:"walletAddress"`
}

// Validate checks the USDC form syntactically.
func (i *USDCPaymentInput) Validate() error {
	if err := i.validateCommon(); err != nil {
		return err
	}
	if !common.IsHexAddress(i.WalletAddress) {
		return domainerrors.Validation("walletAddress must be a valid wallet address")
	}
	return nil
}

// PayeeInput maps the form to the provider payee shape.
func (i *USDCPaymentInput) PayeeInput() *CreatePayeeInput {
	return &CreatePayeeInput{
		Type:          PayeeTypeUSDC,
		Name:          i.Name,
		Email:         i.Email,
		WalletAddress: i.WalletAddress,
	}
}

// PaymentForm is a validated payment form of either method.
type PaymentForm interface {
	Validate() error
	PayeeInput() *CreatePayeeInput
}

// SubmitPaymentRequest is the flat wire shape of the payment form: shared
// fields plus the union of ACH and USDC fields, discriminated by
// paymentMethod.
type SubmitPaymentRequest struct {
	ContractorID      uuid.UUID         `json:"contractorId" binding:"required"`
	PaymentMethod     PaymentMethod     `json:"paymentMethod" binding:"required"`
	Name              string            `json:"name"`
	Email             string            `json:"email"`
	Amount            string            `json:"amount"`
	Memo              string            `json:"memo,omitempty"`
	AccountNumber     string            `json:"accountNumber,omitempty"`
	RoutingNumber     string            `json:"routingNumber,omitempty"`
	AccountType       AccountType       `json:"accountType,omitempty"`
	AccountHolderType AccountHolderType `json:"accountHolderType,omitempty"`
	WalletAddress     string            `json:"walletAddress,omitempty"`
}

// Form narrows the request to the typed form for its payment method.
func (r *SubmitPaymentRequest) Form() (PaymentForm, error) {
	common := PaymentFormInput{
		Name:   r.Name,
		Email:  r.Email,
		Amount: r.Amount,
		Memo:   r.Memo,
	}
	switch r.PaymentMethod {
	case PaymentMethodACH:
		return &ACHPaymentInput{
			PaymentFormInput:  common,
			AccountNumber:     r.AccountNumber,
			RoutingNumber:     r.RoutingNumber,
			AccountType:       r.AccountType,
			AccountHolderType: r.AccountHolderType,
		}, nil
	case PaymentMethodUSDC:
		return &USDCPaymentInput{
			PaymentFormInput: common,
			WalletAddress:    r.WalletAddress,
		}, nil
	default:
		return nil, domainerrors.Validation("paymentMethod must be ACH or USDC")
	}
}
