package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/internal/interfaces/http/response"
)

type BulkPayService interface {
	BulkPay(ctx context.Context, items []entities.BulkPayItem, memo string) ([]entities.BulkPayOutcome, error)
}

// BulkPayRequest is the bulk payment request body
type BulkPayRequest struct {
	Contractors []entities.BulkPayItem `json:"contractors" binding:"required,min=1,dive"`
	Memo        string                 `json:"memo"`
}

// BulkPayHandler handles the bulk payment endpoint
type BulkPayHandler struct {
	bulkPayUsecase BulkPayService
}

// NewBulkPayHandler creates a new bulk payment handler
func NewBulkPayHandler(bulkPayUsecase BulkPayService) *BulkPayHandler {
	return &BulkPayHandler{bulkPayUsecase: bulkPayUsecase}
}

// BulkPay runs a best-effort payment batch; the response carries one outcome
// per requested contractor, successes and failures alike
// POST /api/v1/payments/bulk
func (h *BulkPayHandler) BulkPay(c *gin.Context) {
	var req BulkPayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	outcomes, err := h.bulkPayUsecase.BulkPay(c.Request.Context(), req.Contractors, req.Memo)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"results": outcomes})
}
