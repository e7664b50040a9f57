package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/internal/interfaces/http/response"
)

type ContractorService interface {
	List(ctx context.Context) ([]*entities.Contractor, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Contractor, error)
	Create(ctx context.Context, input *entities.CreateContractorInput) (*entities.Contractor, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status entities.ContractorStatus) error
}

// ContractorHandler handles contractor endpoints
type ContractorHandler struct {
	contractorUsecase ContractorService
}

// NewContractorHandler creates a new contractor handler
func NewContractorHandler(contractorUsecase ContractorService) *ContractorHandler {
	return &ContractorHandler{contractorUsecase: contractorUsecase}
}

// ListContractors lists all contractors, newest first
// GET /api/v1/contractors
func (h *ContractorHandler) ListContractors(c *gin.Context) {
	contractors, err := h.contractorUsecase.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contractors": contractors})
}

// GetContractor gets a contractor by ID
// GET /api/v1/contractors/:id
func (h *ContractorHandler) GetContractor(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contractor ID"))
		return
	}

	contractor, err := h.contractorUsecase.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Contractor not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"contractor": contractor})
}

// CreateContractor adds a contractor in pending status
// POST /api/v1/contractors
func (h *ContractorHandler) CreateContractor(c *gin.Context) {
	var input entities.CreateContractorInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	contractor, err := h.contractorUsecase.Create(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"contractor": contractor})
}

// UpdateContractorStatus applies a manual status transition
// PUT /api/v1/contractors/:id/status
func (h *ContractorHandler) UpdateContractorStatus(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("Invalid contractor ID"))
		return
	}

	var input entities.UpdateContractorStatusInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.contractorUsecase.UpdateStatus(c.Request.Context(), id, input.Status); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.NotFound("Contractor not found"))
			return
		}
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "status": input.Status})
}
