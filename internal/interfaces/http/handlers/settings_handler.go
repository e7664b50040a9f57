package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	domainerrors "paylance.backend/internal/domain/errors"
	"paylance.backend/internal/interfaces/http/response"
)

type SettingsService interface {
	ConfigureAPIKey(ctx context.Context, apiKey string) error
	APIKeyStatus(ctx context.Context) (masked string, configured bool)
}

// UpdateAPIKeyRequest carries a replacement provider credential
type UpdateAPIKeyRequest struct {
	APIKey string `json:"apiKey" binding:"required"`
}

// SettingsHandler handles provider credential configuration
type SettingsHandler struct {
	settingsUsecase SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsUsecase SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsUsecase: settingsUsecase}
}

// GetAPIKey reports whether a credential is configured, in masked form
// GET /api/v1/settings/api-key
func (h *SettingsHandler) GetAPIKey(c *gin.Context) {
	masked, configured := h.settingsUsecase.APIKeyStatus(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{
		"configured": configured,
		"apiKey":     masked,
	})
}

// UpdateAPIKey validates and installs a new credential, replacing the
// previous one
// PUT /api/v1/settings/api-key
func (h *SettingsHandler) UpdateAPIKey(c *gin.Context) {
	var req UpdateAPIKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.settingsUsecase.ConfigureAPIKey(c.Request.Context(), req.APIKey); err != nil {
		response.Error(c, err)
		return
	}

	masked, _ := h.settingsUsecase.APIKeyStatus(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{
		"configured": true,
		"apiKey":     masked,
	})
}
