package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/internal/interfaces/http/response"
	"paylance.backend/pkg/utils"
)

type PaymentService interface {
	Submit(ctx context.Context, req *entities.SubmitPaymentRequest) (*entities.PaymentSubmission, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Payment, error)
	List(ctx context.Context, limit, offset int) ([]*entities.Payment, int64, error)
	SearchPayees(ctx context.Context, filter *entities.SearchPayeesFilter) ([]*entities.Payee, error)
	GetSpendableBalance(ctx context.Context, currency string) (*entities.Balance, error)
}

// PaymentHandler handles payment endpoints
type PaymentHandler struct {
	paymentUsecase PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentUsecase PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentUsecase: paymentUsecase}
}

// CreatePayment initiates a single ACH or USDC payment
// POST /api/v1/payments
func (h *PaymentHandler) CreatePayment(c *gin.Context) {
	var req entities.SubmitPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	submission, err := h.paymentUsecase.Submit(c.Request.Context(), &req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, submission)
}

// GetPayment gets a persisted payment by ID
// GET /api/v1/payments/:id
func (h *PaymentHandler) GetPayment(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid payment ID"))
		return
	}

	payment, err := h.paymentUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Payment not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": payment})
}

// ListPayments lists persisted payments, newest first
// GET /api/v1/payments
func (h *PaymentHandler) ListPayments(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	params := utils.GetPaginationParams(page, limit)

	payments, total, err := h.paymentUsecase.List(c.Request.Context(), params.Limit, params.CalculateOffset())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"payments":   payments,
		"pagination": utils.CalculateMeta(total, params.Page, params.Limit),
	})
}

// SearchPayees searches payees at the provider
// GET /api/v1/payees
func (h *PaymentHandler) SearchPayees(c *gin.Context) {
	var filter entities.SearchPayeesFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	payees, err := h.paymentUsecase.SearchPayees(c.Request.Context(), &filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payees": payees})
}

// GetBalance returns the spendable balance for a currency code
// GET /api/v1/balances/:currency
func (h *PaymentHandler) GetBalance(c *gin.Context) {
	currency := c.Param("currency")
	if currency == "" {
		response.Error(c, domainerrors.BadRequest("Currency code is required"))
		return
	}

	balance, err := h.paymentUsecase.GetSpendableBalance(c.Request.Context(), currency)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"balance": balance})
}
