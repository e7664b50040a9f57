package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"paylance.backend/internal/interfaces/http/handlers"
	"paylance.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	contractorHandler *handlers.ContractorHandler
	paymentHandler    *handlers.PaymentHandler
	bulkPayHandler    *handlers.BulkPayHandler
	settingsHandler   *handlers.SettingsHandler
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		contractors := v1.Group("/contractors")
		{
			contractors.GET("", d.contractorHandler.ListContractors)
			contractors.POST("", d.contractorHandler.CreateContractor)
			contractors.GET("/:id", d.contractorHandler.GetContractor)
			contractors.PUT("/:id/status", d.contractorHandler.UpdateContractorStatus)
		}

		payments := v1.Group("/payments")
		{
			payments.POST("", middleware.IdempotencyMiddleware(), d.paymentHandler.CreatePayment)
			payments.POST("/bulk", d.bulkPayHandler.BulkPay)
			payments.GET("", d.paymentHandler.ListPayments)
			payments.GET("/:id", d.paymentHandler.GetPayment)
		}

		v1.GET("/payees", d.paymentHandler.SearchPayees)
		v1.GET("/balances/:currency", d.paymentHandler.GetBalance)

		settings := v1.Group("/settings")
		{
			settings.GET("/api-key", d.settingsHandler.GetAPIKey)
			settings.PUT("/api-key", d.settingsHandler.UpdateAPIKey)
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
			c.Header("Access-Control-Allow-Headers", "Authorization, Content-Type, X-Request-ID, Idempotency-Key")
			c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		}
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})
}
