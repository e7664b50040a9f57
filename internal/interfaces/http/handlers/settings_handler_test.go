package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "paylance.backend/internal/domain/errors"
)

func settingsRouter(svc SettingsService) *gin.Engine {
	h := NewSettingsHandler(svc)
	r := gin.New()
	r.GET("/settings/api-key", h.GetAPIKey)
	r.PUT("/settings/api-key", h.UpdateAPIKey)
	return r
}

func TestGetAPIKey(t *testing.T) {
	t.Run("unconfigured", func(t *testing.T) {
		router := settingsRouter(&fakeSettingsService{})

		w := performJSON(t, router, http.MethodGet, "/settings/api-key", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, false, body["configured"])
	})

	t.Run("configured", func(t *testing.T) {
		router := settingsRouter(&fakeSettingsService{configured: true, masked: "dGVz****"})

		w := performJSON(t, router, http.MethodGet, "/settings/api-key", nil)
		require.Equal(t, http.StatusOK, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, true, body["configured"])
		assert.Equal(t, "dGVz****", body["apiKey"])
	})
}

func TestUpdateAPIKey(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		svc := &fakeSettingsService{}
		router := settingsRouter(svc)

		w := performJSON(t, router, http.MethodPut, "/settings/api-key", gin.H{
			"apiKey": "dGVzdC1hcGkta2V5LXRoYXQtaXMtbG9uZy1lbm91Z2g=",
		})
		require.Equal(t, http.StatusOK, w.Code)

		assert.Equal(t, "dGVzdC1hcGkta2V5LXRoYXQtaXMtbG9uZy1lbm91Z2g=", svc.gotKey)
		body := decodeBody(t, w)
		assert.Equal(t, true, body["configured"])
		assert.NotContains(t, body["apiKey"], "bG9uZy1lbm91Z2g=")
	})

	t.Run("missing key", func(t *testing.T) {
		router := settingsRouter(&fakeSettingsService{})
		w := performJSON(t, router, http.MethodPut, "/settings/api-key", gin.H{})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("rejected key", func(t *testing.T) {
		router := settingsRouter(&fakeSettingsService{
			configureErr: domainerrors.InvalidCredential("api key must be at least 32 characters"),
		})
		w := performJSON(t, router, http.MethodPut, "/settings/api-key", gin.H{"apiKey": "short"})
		require.Equal(t, http.StatusUnauthorized, w.Code)

		body := decodeBody(t, w)
		assert.Equal(t, "api key must be at least 32 characters", body["message"])
	})
}
