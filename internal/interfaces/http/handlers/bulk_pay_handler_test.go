package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paylance.backend/internal/domain/entities"
	domainerrors "paylance.backend/internal/domain/errors"
)

func bulkPayRouter(svc BulkPayService) *gin.Engine {
	h := NewBulkPayHandler(svc)
	r := gin.New()
	r.POST("/payments/bulk", h.BulkPay)
	return r
}

func TestBulkPay(t *testing.T) {
	contractorID := uuid.New()
	svc := &fakeBulkPayService{
		outcomes: []entities.BulkPayOutcome{
			{ContractorID: contractorID, PayeeID: "pd-1", PaymentID: "pay-1", Status: entities.PaymentStatusProcessing},
			{ContractorID: uuid.New(), Status: entities.PaymentStatusFailed, Error: "amount must be greater than zero"},
		},
	}
	router := bulkPayRouter(svc)

	w := performJSON(t, router, http.MethodPost, "/payments/bulk", gin.H{
		"contractors": []gin.H{
			{"contractorId": contractorID, "name": "Jane Doe", "email": "jane@example.com", "amount": "50.00"},
		},
		"memo": "monthly payout",
	})
	require.Equal(t, http.StatusOK, w.Code)

	assert.Equal(t, "monthly payout", svc.gotMemo)
	require.Len(t, svc.gotItems, 1)
	assert.Equal(t, contractorID, svc.gotItems[0].ContractorID)

	body := decodeBody(t, w)
	results := body["results"].([]interface{})
	require.Len(t, results, 2)
	first := results[0].(map[string]interface{})
	assert.Equal(t, "processing", first["status"])
	second := results[1].(map[string]interface{})
	assert.Equal(t, "failed", second["status"])
	assert.NotEmpty(t, second["error"])
}

func TestBulkPayBadRequests(t *testing.T) {
	router := bulkPayRouter(&fakeBulkPayService{})

	t.Run("empty batch", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/payments/bulk", gin.H{"contractors": []gin.H{}})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("item missing amount", func(t *testing.T) {
		w := performJSON(t, router, http.MethodPost, "/payments/bulk", gin.H{
			"contractors": []gin.H{
				{"contractorId": uuid.New(), "name": "Jane", "email": "jane@example.com"},
			},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestBulkPayUnconfiguredProvider(t *testing.T) {
	router := bulkPayRouter(&fakeBulkPayService{err: domainerrors.NotConfigured()})

	w := performJSON(t, router, http.MethodPost, "/payments/bulk", gin.H{
		"contractors": []gin.H{
			{"contractorId": uuid.New(), "name": "Jane", "email": "jane@example.com", "amount": "1.00"},
		},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
